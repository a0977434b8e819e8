package deriving

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

func statementMonth(m time.Month, revenue, cogs int64) domain.StatementMonth {
	return domain.StatementMonth{
		Month:              m,
		Revenue:            decimal.NewFromInt(revenue),
		COGS:               decimal.NewFromInt(cogs),
		GrossProfit:        decimal.NewFromInt(revenue - cogs),
		EBITDA:             decimal.NewFromInt(revenue * 15 / 100),
		NetIncome:          decimal.NewFromInt(revenue * 8 / 100),
		AccountsReceivable: decimal.NewFromInt(300000),
		Inventory:          decimal.NewFromInt(405000),
		AccountsPayable:    decimal.NewFromInt(135000),
		OperatingCashFlow:  decimal.NewFromInt(50000),
	}
}

func sourceData() *domain.SourceData {
	return &domain.SourceData{
		Period:       domain.MustParsePeriod("25.12"),
		SnapshotDate: snapshot,
		Statements: domain.FinancialStatements{Months: []domain.StatementMonth{
			statementMonth(time.October, 800000, 400000),
			statementMonth(time.November, 900000, 450000),
			statementMonth(time.December, 1000000, 450000),
		}},
		Products: domain.ProductStatements{Series: map[domain.Product][]domain.ProductMonth{
			domain.ProductRotors: {
				{Month: time.November, Sales: decimal.NewFromInt(200000), COGS: decimal.NewFromInt(120000)},
				{Month: time.December, Sales: decimal.NewFromInt(250000), COGS: decimal.NewFromInt(100000)},
			},
		}},
		Sales: samplePopulation(),
		Backlog: []domain.BacklogLine{
			backlogLine("SO-1", 10, 1000, "Acme", "Jordan", "East", nil),
		},
		Notes:          []byte("# Notes"),
		Files:          []domain.SourceFile{{Kind: "financials", Name: "financial_statements.xlsx"}},
		SkippedRecords: 2,
	}
}

func TestDerive(t *testing.T) {
	bundle, err := NewService().Derive(sourceData())
	require.NoError(t, err)

	dash := bundle.Dashboard
	assert.Equal(t, domain.Metadata{
		Period:         "25.12",
		ReportingMonth: "December",
		ReportingYear:  2025,
		SnapshotDate:   "2025-12-31",
		SourceFiles:    []string{"financial_statements.xlsx"},
		SkippedRecords: 2,
	}, dash.Metadata)

	current := dash.CurrentMonth
	assert.Equal(t, "Dec 2025", current.Month)
	assert.Equal(t, "55", current.GrossMarginPct.String())
	assert.Equal(t, "15", current.EBITDAMarginPct.String())
	assert.Equal(t, "8", current.NetMarginPct.String())
	assert.Equal(t, "9", current.DSO.String())
	assert.Equal(t, "27", current.DIO.String())
	assert.Equal(t, "9", current.DPO.String())
	assert.Equal(t, "27", current.CCC.String())

	require.Len(t, dash.MonthlySeries, 3)
	assert.Equal(t, "Oct 2025", dash.MonthlySeries[0].Month)

	assert.Equal(t, "YTD 2025", dash.YTDSummary.Label)
	assert.Equal(t, "2700000", dash.YTDSummary.TotalRevenue.String())
	assert.Equal(t, "51.85", dash.YTDSummary.AvgGrossMarginPct.String())
	assert.Equal(t, "Q4 2025", dash.QuarterSummary.Label)
	assert.Equal(t, []string{"Oct 2025", "Nov 2025", "Dec 2025"}, dash.QuarterSummary.Months)

	assert.Equal(t, "570000", dash.NWC.NWC.String())
	assert.Equal(t, "21.11", dash.NWC.NWCPctRevenue.String())

	require.Len(t, dash.Products, len(domain.Products))
	rotors := dash.Products[2]
	assert.Equal(t, domain.ProductRotors, rotors.Product)
	assert.Equal(t, "Rotors", rotors.Name)
	assert.Equal(t, "60", rotors.Current.GrossMarginPct.String())
	assert.Equal(t, "450000", rotors.YTDSales.String())
	assert.Equal(t, "51.11", rotors.YTDMarginPct.String())
	assert.Equal(t, "Dec 2025", dash.Products[0].Current.Month)
	assert.True(t, dash.Products[0].Current.Sales.IsZero())

	assert.Equal(t, "2025-01-01 to 2025-12-31", bundle.Customers.L12MWindow)
	assert.Equal(t, "2025-10-01 to 2025-12-31", bundle.Customers.L3MWindow)
	assert.Len(t, bundle.Customers.TopCustomers, 5)
	assert.Len(t, bundle.RFM, 5)

	assert.Equal(t, 1, bundle.Backlog.Summary.TotalOrders)
	assert.Equal(t, []byte("# Notes"), bundle.Notes)
}

func TestDeriveIsDeterministic(t *testing.T) {
	first, err := NewService().Derive(sourceData())
	require.NoError(t, err)
	second, err := NewService().Derive(sourceData())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDeriveErrors(t *testing.T) {
	t.Run("reporting month missing from statements", func(t *testing.T) {
		data := sourceData()
		data.Statements.Months = data.Statements.Months[:2]

		_, err := NewService().Derive(data)
		assert.ErrorIs(t, err, ErrNoCurrentMonth)
	})

	t.Run("order after snapshot", func(t *testing.T) {
		data := sourceData()
		data.Backlog = append(data.Backlog, backlogLine("SO-2", -3, 1, "Acme", "", "", nil))

		_, err := NewService().Derive(data)
		assert.ErrorIs(t, err, ErrNegativeAge)
	})
}
