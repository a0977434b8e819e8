package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product string

const (
	ProductCastDrums       Product = "cast_drums"
	ProductSteelShellDrums Product = "steel_shell_drums"
	ProductRotors          Product = "rotors"
	ProductCalipers        Product = "calipers"
	ProductPads            Product = "pads"
	ProductHubs            Product = "hubs"
)

// Products is the fixed product line, in display order.
var Products = []Product{
	ProductCastDrums,
	ProductSteelShellDrums,
	ProductRotors,
	ProductCalipers,
	ProductPads,
	ProductHubs,
}

var productNames = map[Product]string{
	ProductCastDrums:       "Cast Drums",
	ProductSteelShellDrums: "Steel Shell Drums",
	ProductRotors:          "Rotors",
	ProductCalipers:        "Calipers",
	ProductPads:            "Pads",
	ProductHubs:            "Hubs",
}

func (p Product) DisplayName() string {
	if name, ok := productNames[p]; ok {
		return name
	}
	return string(p)
}

// StatementMonth holds the raw statement values read for one month column.
type StatementMonth struct {
	Month              time.Month
	Revenue            decimal.Decimal
	COGS               decimal.Decimal
	GrossProfit        decimal.Decimal
	EBITDA             decimal.Decimal
	NetIncome          decimal.Decimal
	AccountsReceivable decimal.Decimal
	Inventory          decimal.Decimal
	AccountsPayable    decimal.Decimal
	OperatingCashFlow  decimal.Decimal
	InvestingCashFlow  decimal.Decimal
	FinancingCashFlow  decimal.Decimal
}

// FinancialStatements are the P&L, balance sheet and cash flow months from
// January through the reporting month, in calendar order.
type FinancialStatements struct {
	Months []StatementMonth
}

// Month returns the statement values for m.
func (f FinancialStatements) Month(m time.Month) (StatementMonth, bool) {
	for _, sm := range f.Months {
		if sm.Month == m {
			return sm, true
		}
	}
	return StatementMonth{}, false
}

type ProductMonth struct {
	Month time.Month
	Sales decimal.Decimal
	COGS  decimal.Decimal
}

// ProductStatements maps each product to its monthly sales and COGS.
type ProductStatements struct {
	Series map[Product][]ProductMonth
}

// FinancialSnapshot is one month of statement values plus the metrics derived
// from them.
type FinancialSnapshot struct {
	Month              string          `json:"month"`
	Revenue            decimal.Decimal `json:"revenue"`
	COGS               decimal.Decimal `json:"cogs"`
	GrossProfit        decimal.Decimal `json:"gross_profit"`
	EBITDA             decimal.Decimal `json:"ebitda"`
	NetIncome          decimal.Decimal `json:"net_income"`
	AccountsReceivable decimal.Decimal `json:"accounts_receivable"`
	Inventory          decimal.Decimal `json:"inventory"`
	AccountsPayable    decimal.Decimal `json:"accounts_payable"`
	OperatingCashFlow  decimal.Decimal `json:"operating_cash_flow"`
	InvestingCashFlow  decimal.Decimal `json:"investing_cash_flow"`
	FinancingCashFlow  decimal.Decimal `json:"financing_cash_flow"`
	GrossMarginPct     decimal.Decimal `json:"gross_margin_pct"`
	EBITDAMarginPct    decimal.Decimal `json:"ebitda_margin_pct"`
	NetMarginPct       decimal.Decimal `json:"net_margin_pct"`
	NWC                decimal.Decimal `json:"nwc"`
	DSO                decimal.Decimal `json:"dso"`
	DIO                decimal.Decimal `json:"dio"`
	DPO                decimal.Decimal `json:"dpo"`
	CCC                decimal.Decimal `json:"ccc"`
}

// PeriodSummary aggregates a run of months (year to date or quarter to date).
type PeriodSummary struct {
	Label              string          `json:"label"`
	Months             []string        `json:"months"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalCOGS          decimal.Decimal `json:"total_cogs"`
	TotalGrossProfit   decimal.Decimal `json:"total_gross_profit"`
	TotalEBITDA        decimal.Decimal `json:"total_ebitda"`
	TotalNetIncome     decimal.Decimal `json:"total_net_income"`
	TotalOperatingCF   decimal.Decimal `json:"total_operating_cf"`
	AvgGrossMarginPct  decimal.Decimal `json:"avg_gross_margin_pct"`
	AvgEBITDAMarginPct decimal.Decimal `json:"avg_ebitda_margin_pct"`
	AvgNWC             decimal.Decimal `json:"avg_nwc"`
}

// NWCSummary is the working capital position at the end of the reporting month.
type NWCSummary struct {
	AccountsReceivable decimal.Decimal `json:"accounts_receivable"`
	Inventory          decimal.Decimal `json:"inventory"`
	AccountsPayable    decimal.Decimal `json:"accounts_payable"`
	NWC                decimal.Decimal `json:"nwc"`
	YTDRevenue         decimal.Decimal `json:"ytd_revenue"`
	NWCPctRevenue      decimal.Decimal `json:"nwc_pct_revenue"`
	DSO                decimal.Decimal `json:"dso"`
	DIO                decimal.Decimal `json:"dio"`
	DPO                decimal.Decimal `json:"dpo"`
	CCC                decimal.Decimal `json:"ccc"`
}

type ProductSnapshot struct {
	Month          string          `json:"month"`
	Sales          decimal.Decimal `json:"sales"`
	COGS           decimal.Decimal `json:"cogs"`
	GrossProfit    decimal.Decimal `json:"gross_profit"`
	GrossMarginPct decimal.Decimal `json:"gross_margin_pct"`
}

type ProductDetail struct {
	Product       Product           `json:"product"`
	Name          string            `json:"name"`
	Current       ProductSnapshot   `json:"current"`
	MonthlySeries []ProductSnapshot `json:"monthly_series"`
	YTDSales      decimal.Decimal   `json:"ytd_sales"`
	YTDMarginPct  decimal.Decimal   `json:"ytd_gross_margin_pct"`
}
