package extractor

import (
	"strings"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

const SheetSalesDetail = "Sales Detail"

const (
	colCustomer    = "customer"
	colDate        = "date"
	colSales       = "sales"
	colInvoice     = "invoice"
	colCOGS        = "cogs"
	colGrossProfit = "gross profit"
)

var salesColumns = []columnSpec{
	{labelSpec: labelSpec{name: colCustomer, candidates: []string{"customer name", "customer", "client", "sold to", "account name"}, excludes: []string{"id", "number", "po"}}, required: true},
	{labelSpec: labelSpec{name: colDate, candidates: []string{"invoice date", "date", "transaction date", "posting date", "ship date"}}, required: true},
	{labelSpec: labelSpec{name: colGrossProfit, candidates: []string{"gross profit", "gp", "gross margin"}, excludes: []string{"percent", "pct"}}},
	{labelSpec: labelSpec{name: colCOGS, candidates: []string{"cogs", "cost of goods sold", "extended cost", "cost"}}},
	{labelSpec: labelSpec{name: colSales, candidates: []string{"sales", "net sales", "sales amount", "amount", "revenue", "extended price", "total"}, excludes: []string{"rep", "person", "tax"}}, required: true},
	{labelSpec: labelSpec{name: colInvoice, candidates: []string{"invoice number", "invoice no", "invoice", "document number", "doc no", "num"}}},
}

func readSales(path string) ([]domain.SalesLine, ParseErrors, error) {
	wb, err := openWorkbook(path)
	if err != nil {
		return nil, nil, err
	}
	defer wb.Close()

	rows, err := wb.requiredRows(SheetSalesDetail)
	if err != nil {
		return nil, nil, err
	}

	table, err := locateColumns(wb.name, SheetSalesDetail, rows, salesColumns)
	if err != nil {
		return nil, nil, err
	}

	var lines []domain.SalesLine
	var failures ParseErrors
	table.each(func(row []string, rowNum int) {
		customer := cell(row, table.col(colCustomer))
		if isSubtotal(customer) || isSubtotal(cell(row, 0)) {
			return
		}
		if customer == "" {
			failures = append(failures, table.parseError(rowNum, colCustomer, "", "missing customer"))
			return
		}

		rawDate := cell(row, table.col(colDate))
		date, err := parseDate(rawDate)
		if err != nil {
			failures = append(failures, table.parseError(rowNum, colDate, rawDate, err.Error()))
			return
		}

		rawSales := cell(row, table.col(colSales))
		sales, _, err := parseAmount(rawSales)
		if err != nil {
			failures = append(failures, table.parseError(rowNum, colSales, rawSales, err.Error()))
			return
		}

		line := domain.SalesLine{
			Customer: customer,
			Invoice:  cell(row, table.col(colInvoice)),
			Date:     date,
			Sales:    sales,
		}

		switch {
		case table.has(colGrossProfit):
			raw := cell(row, table.col(colGrossProfit))
			gp, _, err := parseAmount(raw)
			if err != nil {
				failures = append(failures, table.parseError(rowNum, colGrossProfit, raw, err.Error()))
				return
			}
			line.GrossProfit, line.HasGrossProfit = gp, true
		case table.has(colCOGS):
			raw := cell(row, table.col(colCOGS))
			cogs, _, err := parseAmount(raw)
			if err != nil {
				failures = append(failures, table.parseError(rowNum, colCOGS, raw, err.Error()))
				return
			}
			line.GrossProfit, line.HasGrossProfit = sales.Sub(cogs), true
		}

		lines = append(lines, line)
	})

	return lines, failures, nil
}

// isSubtotal spots the "Total ..." rows accounting exports interleave.
func isSubtotal(s string) bool {
	l := normalizeLabel(s)
	return l == "total" || strings.HasPrefix(l, "total ") || l == "grand total"
}
