package extractor

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/internal/extractor/extractortest"
)

var balanceSheet = extractortest.Sheet{Name: "BS YTD", Rows: [][]any{
	{"", "Nov", "Dec"},
	{"Accounts Receivable", 280000, 300000},
	{"Inventory", 400000, 405000},
	{"Accounts Payable", 130000, 135000},
}}

func TestReadFinancials(t *testing.T) {
	period := domain.MustParsePeriod("25.12")

	tests := []struct {
		name     string
		sheets   []extractortest.Sheet
		validate func(t *testing.T, got domain.FinancialStatements, err error)
	}{
		{
			name: "missing profit and loss sheet",
			sheets: []extractortest.Sheet{
				balanceSheet,
			},
			validate: func(t *testing.T, _ domain.FinancialStatements, err error) {
				var missing *MissingRequiredInputError
				require.True(t, errors.As(err, &missing), err)
				assert.Equal(t, SheetProfitAndLoss, missing.Sheet)
				assert.Contains(t, err.Error(), `"PL YTD"`)
			},
		},
		{
			name: "missing required revenue row",
			sheets: []extractortest.Sheet{
				{Name: "PL YTD", Rows: [][]any{
					{"", "Dec"},
					{"Cost of Goods Sold", 450000},
				}},
				balanceSheet,
			},
			validate: func(t *testing.T, _ domain.FinancialStatements, err error) {
				var missing *MissingRequiredInputError
				require.True(t, errors.As(err, &missing), err)
				assert.Equal(t, "revenue row", missing.Label)
			},
		},
		{
			name: "missing current month column",
			sheets: []extractortest.Sheet{
				{Name: "PL YTD", Rows: [][]any{
					{"", "Oct", "Nov"},
					{"Revenue", 900000, 950000},
					{"COGS", 400000, 420000},
				}},
				balanceSheet,
			},
			validate: func(t *testing.T, _ domain.FinancialStatements, err error) {
				var missing *MissingRequiredInputError
				require.True(t, errors.As(err, &missing), err)
				assert.Equal(t, "Dec column", missing.Label)
			},
		},
		{
			name: "derived gross profit and built up EBITDA",
			sheets: []extractortest.Sheet{
				{Name: "pl ytd", Rows: [][]any{
					{"Income Statement"},
					{"", "Dec-25"},
					{"Sales", "1,000,000"},
					{"Cost of Sales", "$450,000"},
					{"Interest Expense", "(10,000)"},
					{"Income Tax Expense", 20000},
					{"Depreciation", 15000},
					{"Amortization", 5000},
					{"Net Income", 100000},
				}},
				balanceSheet,
			},
			validate: func(t *testing.T, got domain.FinancialStatements, err error) {
				require.NoError(t, err)
				require.Len(t, got.Months, 1)
				dec := got.Months[0]
				assert.Equal(t, time.December, dec.Month)
				assert.Equal(t, "550000", dec.GrossProfit.String())
				assert.Equal(t, "150000", dec.EBITDA.String())
				assert.True(t, dec.OperatingCashFlow.IsZero())
			},
		},
		{
			name: "title row naming the month above the header",
			sheets: []extractortest.Sheet{
				{Name: "PL YTD", Rows: [][]any{
					{"December 2025"},
					{"", "Nov", "Dec"},
					{"Revenue", 950000, 1000000},
					{"COGS", 420000, 450000},
				}},
				balanceSheet,
			},
			validate: func(t *testing.T, got domain.FinancialStatements, err error) {
				require.NoError(t, err)
				require.Len(t, got.Months, 2)
				assert.Equal(t, "1000000", got.Months[1].Revenue.String())
			},
		},
		{
			name: "month header stored as dates",
			sheets: []extractortest.Sheet{
				{Name: "PL YTD", Rows: [][]any{
					{"", 45962, 45992},
					{"Revenue", 950000, 1000000},
					{"COGS", 420000, 450000},
				}},
				balanceSheet,
			},
			validate: func(t *testing.T, got domain.FinancialStatements, err error) {
				require.NoError(t, err)
				require.Len(t, got.Months, 2)
				assert.Equal(t, time.December, got.Months[1].Month)
			},
		},
		{
			name: "combined D&A row wins over split rows",
			sheets: []extractortest.Sheet{
				{Name: "PL YTD", Rows: [][]any{
					{"", "December"},
					{"Revenue", 1000000},
					{"COGS", 450000},
					{"D&A", 30000},
					{"Depreciation", 999},
					{"Net Income", 100000},
				}},
				balanceSheet,
			},
			validate: func(t *testing.T, got domain.FinancialStatements, err error) {
				require.NoError(t, err)
				assert.Equal(t, "130000", got.Months[0].EBITDA.String())
			},
		},
		{
			name: "malformed statement cell is fatal",
			sheets: []extractortest.Sheet{
				{Name: "PL YTD", Rows: [][]any{
					{"", "Dec"},
					{"Revenue", "n/a"},
					{"COGS", 450000},
				}},
				balanceSheet,
			},
			validate: func(t *testing.T, _ domain.FinancialStatements, err error) {
				var parseErr *ParseError
				require.True(t, errors.As(err, &parseErr), err)
				assert.Equal(t, 2, parseErr.Row)
				assert.Equal(t, "B", parseErr.Column)
				assert.ErrorIs(t, err, ErrInvalidCell)
			},
		},
		{
			name: "blank optional cells read as zero",
			sheets: []extractortest.Sheet{
				{Name: "PL YTD", Rows: [][]any{
					{"", "Nov", "Dec"},
					{"Revenue", 900000, 1000000},
					{"COGS", 400000, 450000},
					{"Net Income", "-", ""},
				}},
				balanceSheet,
			},
			validate: func(t *testing.T, got domain.FinancialStatements, err error) {
				require.NoError(t, err)
				require.Len(t, got.Months, 2)
				assert.Equal(t, time.November, got.Months[0].Month)
				assert.True(t, got.Months[1].NetIncome.IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "financials.xlsx")
			extractortest.WriteWorkbook(t, path, tt.sheets...)

			got, err := readFinancials(path, period)
			tt.validate(t, got, err)
		})
	}
}

func TestReadProducts(t *testing.T) {
	period := domain.MustParsePeriod("25.03")
	path := filepath.Join(t.TempDir(), "products.xlsx")
	extractortest.WriteWorkbook(t, path, extractortest.Sheet{Name: "Product Sales", Rows: [][]any{
		{"Product Line", "Jan", "Feb", "Mar"},
		{"Brake Rotors", 100, 200, 300},
		{"Hub Assemblies", 10, 20, 30},
	}})

	got, err := readProducts(path, period)
	require.NoError(t, err)

	rotors := got.Series[domain.ProductRotors]
	require.Len(t, rotors, 3)
	assert.Equal(t, "300", rotors[2].Sales.String())
	assert.True(t, rotors[2].COGS.IsZero())
	assert.Equal(t, "30", got.Series[domain.ProductHubs][2].Sales.String())

	pads := got.Series[domain.ProductPads]
	require.Len(t, pads, 3)
	assert.True(t, pads[0].Sales.IsZero())
}
