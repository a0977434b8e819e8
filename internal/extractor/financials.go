package extractor

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

const (
	SheetProfitAndLoss = "PL YTD"
	SheetBalanceSheet  = "BS YTD"
	SheetCashFlow      = "CF YTD"
)

var (
	labelRevenue = labelSpec{
		name:       "revenue",
		candidates: []string{"total revenue", "revenue", "net revenue", "total net sales", "net sales", "total sales", "sales"},
		excludes:   []string{"cost", "cogs", "returns", "discounts"},
	}
	labelCOGS = labelSpec{
		name:       "cost of goods sold",
		candidates: []string{"total cost of goods sold", "cost of goods sold", "total cost of sales", "cost of sales", "cogs", "cost of revenue"},
	}
	labelGrossProfit = labelSpec{
		name:       "gross profit",
		candidates: []string{"gross profit", "gross margin"},
		excludes:   []string{"percent", "pct", "ratio"},
	}
	labelEBITDA = labelSpec{
		name:       "EBITDA",
		candidates: []string{"ebitda", "adjusted ebitda"},
		excludes:   []string{"margin", "percent", "pct"},
	}
	labelNetIncome = labelSpec{
		name:       "net income",
		candidates: []string{"net income", "net income loss", "net profit", "net earnings"},
		excludes:   []string{"margin", "percent", "pct", "before"},
	}
	labelInterest = labelSpec{
		name:       "interest expense",
		candidates: []string{"interest expense", "total interest expense", "interest"},
		excludes:   []string{"income"},
	}
	labelTaxes = labelSpec{
		name:       "income taxes",
		candidates: []string{"income tax expense", "income taxes", "provision for income taxes", "taxes"},
		excludes:   []string{"before", "payable"},
	}
	labelDepreciationAndAmortization = labelSpec{
		name:       "depreciation and amortization",
		candidates: []string{"depreciation and amortization", "d and a"},
	}
	labelDepreciation = labelSpec{
		name:       "depreciation",
		candidates: []string{"depreciation expense", "depreciation"},
		excludes:   []string{"accumulated"},
	}
	labelAmortization = labelSpec{
		name:       "amortization",
		candidates: []string{"amortization expense", "amortization"},
		excludes:   []string{"accumulated"},
	}

	labelAccountsReceivable = labelSpec{
		name:       "accounts receivable",
		candidates: []string{"accounts receivable net", "accounts receivable", "total accounts receivable", "trade receivables", "a r", "receivables"},
		excludes:   []string{"allowance", "other"},
	}
	labelInventory = labelSpec{
		name:       "inventory",
		candidates: []string{"total inventory", "inventory", "inventories", "total inventories"},
		excludes:   []string{"reserve", "obsolescence"},
	}
	labelAccountsPayable = labelSpec{
		name:       "accounts payable",
		candidates: []string{"accounts payable", "total accounts payable", "trade payables", "a p"},
		excludes:   []string{"other"},
	}

	labelOperatingCashFlow = labelSpec{
		name:       "operating cash flow",
		candidates: []string{"net cash provided by operating activities", "net cash from operating activities", "net cash provided by used in operating activities", "operating cash flow", "operating activities"},
	}
	labelInvestingCashFlow = labelSpec{
		name:       "investing cash flow",
		candidates: []string{"net cash used in investing activities", "net cash from investing activities", "net cash provided by used in investing activities", "investing cash flow", "investing activities"},
	}
	labelFinancingCashFlow = labelSpec{
		name:       "financing cash flow",
		candidates: []string{"net cash provided by financing activities", "net cash from financing activities", "net cash provided by used in financing activities", "financing cash flow", "financing activities"},
	}
)

type statementReader struct {
	pl *statementSheet
	bs *statementSheet
	cf *statementSheet
}

func readFinancials(path string, period domain.Period) (domain.FinancialStatements, error) {
	wb, err := openWorkbook(path)
	if err != nil {
		return domain.FinancialStatements{}, err
	}
	defer wb.Close()

	r := &statementReader{}
	if r.pl, err = requiredStatement(wb, SheetProfitAndLoss); err != nil {
		return domain.FinancialStatements{}, err
	}
	if r.bs, err = requiredStatement(wb, SheetBalanceSheet); err != nil {
		return domain.FinancialStatements{}, err
	}

	cfRows, ok, err := wb.rows(SheetCashFlow)
	if err != nil {
		return domain.FinancialStatements{}, err
	}
	if ok {
		if r.cf, err = parseStatementSheet(wb.name, SheetCashFlow, cfRows); err != nil {
			// an unreadable optional sheet counts as absent
			r.cf = nil
		}
	}

	current := period.Month()
	if !r.pl.hasMonth(current) {
		return domain.FinancialStatements{}, &MissingRequiredInputError{File: wb.name, Sheet: SheetProfitAndLoss, Label: current.String()[:3] + " column"}
	}
	if !r.bs.hasMonth(current) {
		return domain.FinancialStatements{}, &MissingRequiredInputError{File: wb.name, Sheet: SheetBalanceSheet, Label: current.String()[:3] + " column"}
	}

	var statements domain.FinancialStatements
	for m := time.January; m <= current; m++ {
		if !r.pl.hasMonth(m) {
			continue
		}
		sm, err := r.month(m)
		if err != nil {
			return domain.FinancialStatements{}, err
		}
		statements.Months = append(statements.Months, sm)
	}

	return statements, nil
}

func requiredStatement(wb *workbook, sheet string) (*statementSheet, error) {
	rows, err := wb.requiredRows(sheet)
	if err != nil {
		return nil, err
	}
	return parseStatementSheet(wb.name, sheet, rows)
}

func (r *statementReader) month(m time.Month) (domain.StatementMonth, error) {
	sm := domain.StatementMonth{Month: m}
	var err error

	if sm.Revenue, _, err = r.pl.lookup(labelRevenue, m, true); err != nil {
		return sm, err
	}
	if sm.COGS, _, err = r.pl.lookup(labelCOGS, m, true); err != nil {
		return sm, err
	}

	var found bool
	if sm.GrossProfit, found, err = r.pl.lookup(labelGrossProfit, m, false); err != nil {
		return sm, err
	}
	if !found {
		sm.GrossProfit = sm.Revenue.Sub(sm.COGS)
	}

	if sm.NetIncome, _, err = r.pl.lookup(labelNetIncome, m, false); err != nil {
		return sm, err
	}

	if sm.EBITDA, found, err = r.pl.lookup(labelEBITDA, m, false); err != nil {
		return sm, err
	}
	if !found {
		if sm.EBITDA, err = r.buildEBITDA(sm.NetIncome, m); err != nil {
			return sm, err
		}
	}

	if sm.AccountsReceivable, _, err = r.bs.lookup(labelAccountsReceivable, m, true); err != nil {
		return sm, err
	}
	if sm.Inventory, _, err = r.bs.lookup(labelInventory, m, true); err != nil {
		return sm, err
	}
	if sm.AccountsPayable, _, err = r.bs.lookup(labelAccountsPayable, m, true); err != nil {
		return sm, err
	}

	if r.cf != nil {
		if sm.OperatingCashFlow, _, err = r.cf.lookup(labelOperatingCashFlow, m, false); err != nil {
			return sm, err
		}
		if sm.InvestingCashFlow, _, err = r.cf.lookup(labelInvestingCashFlow, m, false); err != nil {
			return sm, err
		}
		if sm.FinancingCashFlow, _, err = r.cf.lookup(labelFinancingCashFlow, m, false); err != nil {
			return sm, err
		}
	}

	return sm, nil
}

// buildEBITDA adds back interest, taxes, depreciation and amortization when
// the P&L carries no EBITDA row.
func (r *statementReader) buildEBITDA(netIncome decimal.Decimal, m time.Month) (decimal.Decimal, error) {
	total := netIncome
	for _, spec := range []labelSpec{labelInterest, labelTaxes} {
		v, _, err := r.pl.lookup(spec, m, false)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(v.Abs())
	}

	da, found, err := r.pl.lookup(labelDepreciationAndAmortization, m, false)
	if err != nil {
		return decimal.Zero, err
	}
	if found {
		return total.Add(da.Abs()), nil
	}

	for _, spec := range []labelSpec{labelDepreciation, labelAmortization} {
		v, _, err := r.pl.lookup(spec, m, false)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(v.Abs())
	}

	return total, nil
}
