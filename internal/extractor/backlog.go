package extractor

import (
	"time"

	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/pkg/utils"
)

const SheetBacklog = "Backlog"

const (
	colOrderID   = "order"
	colOrderDate = "order date"
	colAmount    = "amount"
	colSalesRep  = "sales rep"
	colRegion    = "region"
	colShipDate  = "ship date"
)

var backlogColumns = []columnSpec{
	{labelSpec: labelSpec{name: colOrderDate, candidates: []string{"order date", "date ordered", "so date", "date"}, excludes: []string{"ship", "due", "promise", "request"}}, required: true},
	{labelSpec: labelSpec{name: colShipDate, candidates: []string{"ship date", "expected ship date", "scheduled ship date", "promise date", "due date", "requested date"}}},
	{labelSpec: labelSpec{name: colCustomer, candidates: []string{"customer name", "customer", "client", "sold to"}, excludes: []string{"id", "number", "po"}}, required: true},
	{labelSpec: labelSpec{name: colSalesRep, candidates: []string{"sales rep", "salesperson", "sales person", "rep"}}},
	{labelSpec: labelSpec{name: colAmount, candidates: []string{"open amount", "backlog amount", "amount", "open value", "value", "total"}}, required: true},
	{labelSpec: labelSpec{name: colRegion, candidates: []string{"region", "territory", "sales region"}}},
	{labelSpec: labelSpec{name: colOrderID, candidates: []string{"order number", "order no", "order", "sales order", "so number", "so", "num"}}, required: true},
}

// readBacklog reads open orders. Order dates after the snapshot date would
// produce a negative age and are rejected as parse failures.
func readBacklog(path string, snapshot time.Time) ([]domain.BacklogLine, ParseErrors, error) {
	wb, err := openWorkbook(path)
	if err != nil {
		return nil, nil, err
	}
	defer wb.Close()

	rows, err := wb.requiredRows(SheetBacklog)
	if err != nil {
		return nil, nil, err
	}

	table, err := locateColumns(wb.name, SheetBacklog, rows, backlogColumns)
	if err != nil {
		return nil, nil, err
	}

	var lines []domain.BacklogLine
	var failures ParseErrors
	table.each(func(row []string, rowNum int) {
		orderID := cell(row, table.col(colOrderID))
		customer := cell(row, table.col(colCustomer))
		if isSubtotal(orderID) || isSubtotal(customer) {
			return
		}
		if orderID == "" {
			failures = append(failures, table.parseError(rowNum, colOrderID, "", "missing order number"))
			return
		}

		rawDate := cell(row, table.col(colOrderDate))
		orderDate, err := parseDate(rawDate)
		if err != nil {
			failures = append(failures, table.parseError(rowNum, colOrderDate, rawDate, err.Error()))
			return
		}
		if utils.DaysBetween(orderDate, snapshot) < 0 {
			failures = append(failures, table.parseError(rowNum, colOrderDate, rawDate, "order date after snapshot date"))
			return
		}

		rawAmount := cell(row, table.col(colAmount))
		amount, _, err := parseAmount(rawAmount)
		if err != nil {
			failures = append(failures, table.parseError(rowNum, colAmount, rawAmount, err.Error()))
			return
		}

		line := domain.BacklogLine{
			OrderID:   orderID,
			OrderDate: orderDate,
			Customer:  customer,
			Amount:    amount,
			SalesRep:  cell(row, table.col(colSalesRep)),
			Region:    cell(row, table.col(colRegion)),
		}

		if rawShip := cell(row, table.col(colShipDate)); rawShip != "" {
			shipDate, err := parseDate(rawShip)
			if err != nil {
				failures = append(failures, table.parseError(rowNum, colShipDate, rawShip, err.Error()))
				return
			}
			line.ShipDate = &shipDate
		}

		lines = append(lines, line)
	})

	return lines, failures, nil
}
