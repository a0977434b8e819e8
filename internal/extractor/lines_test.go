package extractor

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durabrake/financial-dashboard/internal/extractor/extractortest"
)

func TestReadSales(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	extractortest.WriteWorkbook(t, path, extractortest.Sheet{Name: "Sales Detail", Rows: [][]any{
		{"Customer Sales Report"},
		{"Num", "Customer Name", "Date", "Amount", "Gross Profit"},
		{"1001", "Acme Fleet", "2025-12-01", "1,200.50", "400"},
		{"1002", "Acme Fleet", 45992, 800, "(50)"},
		{"", "Total Acme Fleet", "", 2000.5, 350},
		{"1003", "", "2025-12-02", 100, 10},
		{"1004", "Metro Transit", "not a date", 100, 10},
		{"1005", "Metro Transit", "12/15/2025", "abc", 10},
		{"1006", "Metro Transit", "12/15/2025", 300, 90},
	}})

	lines, failures, err := readSales(path)
	require.NoError(t, err)

	require.Len(t, lines, 3)
	assert.Equal(t, "1001", lines[0].Invoice)
	assert.Equal(t, "1200.5", lines[0].Sales.String())
	assert.True(t, lines[0].HasGrossProfit)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), lines[0].Date)

	assert.Equal(t, "-50", lines[1].GrossProfit.String())
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), lines[1].Date)

	assert.Equal(t, time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC), lines[2].Date)

	require.Len(t, failures, 3)
	assert.Equal(t, 6, failures[0].Row)
	assert.Equal(t, "missing customer", failures[0].Reason)
	assert.Equal(t, colDate, failures[1].Column)
	assert.Equal(t, colSales, failures[2].Column)
	assert.ErrorIs(t, failures, ErrInvalidCell)
	assert.Contains(t, failures.Error(), "and 2 more invalid records")
}

func TestReadSalesDerivesGrossProfitFromCOGS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	extractortest.WriteWorkbook(t, path, extractortest.Sheet{Name: "Sales Detail", Rows: [][]any{
		{"Customer", "Invoice Date", "Sales", "Cost"},
		{"Acme Fleet", "2025-11-03", 1000, 600},
	}})

	lines, failures, err := readSales(path)
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, lines, 1)
	assert.Equal(t, "400", lines[0].GrossProfit.String())
	assert.Empty(t, lines[0].Invoice)
}

func TestReadSalesMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	extractortest.WriteWorkbook(t, path, extractortest.Sheet{Name: "Sales Detail", Rows: [][]any{
		{"Customer", "Invoice Date"},
		{"Acme Fleet", "2025-11-03"},
	}})

	_, _, err := readSales(path)
	var missing *MissingRequiredInputError
	require.True(t, errors.As(err, &missing), err)
	assert.Equal(t, "sales column", missing.Label)
}

func TestReadBacklog(t *testing.T) {
	snapshot := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "backlog.xlsx")
	extractortest.WriteWorkbook(t, path, extractortest.Sheet{Name: "BACKLOG", Rows: [][]any{
		{"SO Number", "Customer", "Order Date", "Promise Date", "Open Amount", "Rep", "Territory"},
		{"SO-1", "Acme Fleet", "2025-12-01", "2026-01-15", 5000, "Jordan", "East"},
		{"SO-2", "Acme Fleet", "2026-01-05", "", 100, "Jordan", "East"},
		{"SO-3", "Metro Transit", "2025-10-01", "", 2500, "", ""},
		{"SO-4", "Metro Transit", "2025-10-01", "soon", 2500, "", ""},
		{"Total", "", "", "", 7600, "", ""},
	}})

	lines, failures, err := readBacklog(path, snapshot)
	require.NoError(t, err)

	require.Len(t, lines, 2)
	assert.Equal(t, "SO-1", lines[0].OrderID)
	assert.Equal(t, "Jordan", lines[0].SalesRep)
	assert.Equal(t, "East", lines[0].Region)
	require.NotNil(t, lines[0].ShipDate)
	assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), *lines[0].ShipDate)
	assert.Nil(t, lines[1].ShipDate)

	require.Len(t, failures, 2)
	assert.Equal(t, "order date after snapshot date", failures[0].Reason)
	assert.Equal(t, colShipDate, failures[1].Column)
}
