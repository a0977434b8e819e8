// Package extractortest builds small accounting workbooks for tests.
package extractortest

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

// Default workbook names, matching the configuration defaults.
const (
	FinancialsFile = "financial_statements.xlsx"
	ProductsFile   = "product_sales.xlsx"
	CustomersFile  = "customer_sales.xlsx"
	BacklogFile    = "backlog.xlsx"
	NotesFile      = "notes.md"
)

type Sheet struct {
	Name string
	Rows [][]any
}

// WriteWorkbook saves sheets to path in order.
func WriteWorkbook(t testing.TB, path string, sheets ...Sheet) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet.Name))
		} else {
			_, err := f.NewSheet(sheet.Name)
			require.NoError(t, err)
		}
		for r, row := range sheet.Rows {
			values := row
			require.NoError(t, f.SetSheetRow(sheet.Name, "A"+strconv.Itoa(r+1), &values))
		}
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, f.SaveAs(path))
}

func monthHeader(through time.Month) []any {
	row := []any{"Account"}
	for m := time.January; m <= through; m++ {
		row = append(row, m.String()[:3])
	}
	return row
}

func monthly(label string, through time.Month, value func(m time.Month) float64) []any {
	row := []any{label}
	for m := time.January; m <= through; m++ {
		row = append(row, value(m))
	}
	return row
}

func constant(v float64) func(time.Month) float64 {
	return func(time.Month) float64 { return v }
}

// Revenue for month m in the sample statements. December is 1,000,000.
func Revenue(m time.Month) float64 { return 880000 + 10000*float64(m) }

// COGS is 45% of revenue.
func COGS(m time.Month) float64 { return pct(Revenue(m), 45) }

func pct(v float64, p int) float64 { return v * float64(p) / 100 }

// Balance sheet values held flat across the year.
const (
	AccountsReceivable = 300000
	Inventory          = 405000
	AccountsPayable    = 135000
)

// FinancialSheets returns PL YTD, BS YTD and CF YTD through month.
func FinancialSheets(through time.Month) []Sheet {
	return []Sheet{
		{Name: "PL YTD", Rows: [][]any{
			{"DuraBrake Inc. Income Statement"},
			monthHeader(through),
			monthly("Total Revenue", through, Revenue),
			monthly("Cost of Goods Sold", through, COGS),
			monthly("Gross Profit", through, func(m time.Month) float64 { return Revenue(m) - COGS(m) }),
			monthly("Operating Expenses", through, func(m time.Month) float64 { return pct(Revenue(m), 30) }),
			monthly("EBITDA", through, func(m time.Month) float64 { return pct(Revenue(m), 15) }),
			monthly("Net Income", through, func(m time.Month) float64 { return pct(Revenue(m), 8) }),
		}},
		{Name: "BS YTD", Rows: [][]any{
			monthHeader(through),
			monthly("Cash", through, constant(120000)),
			monthly("Accounts Receivable", through, constant(AccountsReceivable)),
			monthly("Inventory", through, constant(Inventory)),
			monthly("Accounts Payable", through, constant(AccountsPayable)),
		}},
		{Name: "CF YTD", Rows: [][]any{
			monthHeader(through),
			monthly("Net Cash Provided by Operating Activities", through, constant(50000)),
			monthly("Net Cash Used in Investing Activities", through, constant(-20000)),
			monthly("Net Cash Provided by Financing Activities", through, constant(-5000)),
		}},
	}
}

// ProductShares split revenue across the product line, in percent.
var ProductShares = map[string]int{
	"Cast Drums":        20,
	"Steel Shell Drums": 15,
	"Rotors":            25,
	"Calipers":          10,
	"Pads":              20,
	"Hubs":              10,
}

var productOrder = []string{"Cast Drums", "Steel Shell Drums", "Rotors", "Calipers", "Pads", "Hubs"}

func ProductSheets(through time.Month) []Sheet {
	sales := [][]any{monthHeader(through)}
	cogs := [][]any{monthHeader(through)}
	for _, name := range productOrder {
		share := ProductShares[name]
		sales = append(sales, monthly(name, through, func(m time.Month) float64 { return pct(Revenue(m), share) }))
		cogs = append(cogs, monthly(name, through, func(m time.Month) float64 { return pct(COGS(m), share) }))
	}
	return []Sheet{
		{Name: "Product Sales", Rows: sales},
		{Name: "Product COGS", Rows: cogs},
	}
}

// SalesLines returns twelve months of invoices for eight customers ending at
// the period end.
func SalesLines(period domain.Period) [][]any {
	rows := [][]any{{"Invoice #", "Customer", "Invoice Date", "Sales", "COGS"}}
	end := period.EndDate()
	invoice := 1000

	add := func(customer string, daysAgo int, amount float64) {
		invoice++
		date := end.AddDate(0, 0, -daysAgo).Format(time.DateOnly)
		rows = append(rows, []any{"INV-" + strconv.Itoa(invoice), customer, date, amount, pct(amount, 60)})
	}

	// frequent, recent, large
	for i := 0; i < 12; i++ {
		add("Acme Fleet", 5+i*30, 40000)
		add("Northern Freight", 10+i*30, 30000)
	}
	for i := 0; i < 6; i++ {
		add("Metro Transit", 20+i*45, 15000)
	}
	add("Valley Trucking", 3, 8000)
	add("Valley Trucking", 40, 6000)
	add("Summit Logistics", 200, 25000)
	add("Summit Logistics", 250, 25000)
	add("Summit Logistics", 300, 25000)
	add("Coastal Parts", 330, 2000)
	add("Harbor Supply", 90, 5000)
	add("Harbor Supply", 120, 5000)
	add("Prairie Auto", 15, 1200)

	rows = append(rows, []any{"", "Total", "", 0, 0})
	// outside the trailing twelve months
	rows = append(rows, []any{"INV-0001", "Coastal Parts", end.AddDate(-1, 0, -10).Format(time.DateOnly), 9999, 1})
	return rows
}

// BacklogLines returns open orders aged 0, 30, 31, 90, 181 and 400 days.
func BacklogLines(period domain.Period) [][]any {
	end := period.EndDate()
	day := func(daysAgo int) string { return end.AddDate(0, 0, -daysAgo).Format(time.DateOnly) }
	ship := func(daysOut int) string { return end.AddDate(0, 0, daysOut).Format(time.DateOnly) }

	return [][]any{
		{"Order #", "Order Date", "Customer", "Sales Rep", "Region", "Ship Date", "Amount"},
		{"SO-1", day(0), "Acme Fleet", "Jordan", "East", ship(10), 50000},
		{"SO-2", day(30), "Acme Fleet", "Jordan", "East", ship(45), 30000},
		{"SO-3", day(31), "Northern Freight", "Casey", "West", ship(-5), 20000},
		{"SO-4", day(90), "Metro Transit", "Casey", "West", "", 10000},
		{"SO-5", day(181), "Summit Logistics", "Riley", "South", ship(120), 15000},
		{"SO-6", day(400), "Harbor Supply", "Riley", "South", ship(70), 5000},
	}
}

// WriteSampleInputs writes a complete, valid input set for period under
// inputDir and returns the period directory.
func WriteSampleInputs(t testing.TB, inputDir string, period domain.Period) string {
	t.Helper()

	dir := filepath.Join(inputDir, period.String())
	WriteWorkbook(t, filepath.Join(dir, FinancialsFile), FinancialSheets(period.Month())...)
	WriteWorkbook(t, filepath.Join(dir, ProductsFile), ProductSheets(period.Month())...)
	WriteWorkbook(t, filepath.Join(dir, CustomersFile), Sheet{Name: "Sales Detail", Rows: SalesLines(period)})
	WriteWorkbook(t, filepath.Join(dir, BacklogFile), Sheet{Name: "Backlog", Rows: BacklogLines(period)})
	require.NoError(t, os.WriteFile(filepath.Join(dir, NotesFile), []byte("# Notes\n\nDecember close was *clean*.\n"), 0o644))

	return dir
}
