package deriving

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/pkg/utils"
)

func monthLabel(year int, m time.Month) string {
	return domain.PeriodOf(time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)).ShortName()
}

// Snapshot derives margins and working capital ratios for one month.
func Snapshot(year int, sm domain.StatementMonth) domain.FinancialSnapshot {
	dso := DSO(sm.AccountsReceivable, sm.Revenue)
	dio := DIO(sm.Inventory, sm.COGS)
	dpo := DPO(sm.AccountsPayable, sm.COGS)

	return domain.FinancialSnapshot{
		Month:              monthLabel(year, sm.Month),
		Revenue:            sm.Revenue,
		COGS:               sm.COGS,
		GrossProfit:        sm.GrossProfit,
		EBITDA:             sm.EBITDA,
		NetIncome:          sm.NetIncome,
		AccountsReceivable: sm.AccountsReceivable,
		Inventory:          sm.Inventory,
		AccountsPayable:    sm.AccountsPayable,
		OperatingCashFlow:  sm.OperatingCashFlow,
		InvestingCashFlow:  sm.InvestingCashFlow,
		FinancingCashFlow:  sm.FinancingCashFlow,
		GrossMarginPct:     Margin(sm.GrossProfit, sm.Revenue),
		EBITDAMarginPct:    Margin(sm.EBITDA, sm.Revenue),
		NetMarginPct:       Margin(sm.NetIncome, sm.Revenue),
		NWC:                NWC(sm.AccountsReceivable, sm.Inventory, sm.AccountsPayable),
		DSO:                dso,
		DIO:                dio,
		DPO:                dpo,
		CCC:                CCC(dso, dio, dpo),
	}
}

// MonthlySeries derives one snapshot per statement month, January first.
func MonthlySeries(year int, statements domain.FinancialStatements) []domain.FinancialSnapshot {
	series := make([]domain.FinancialSnapshot, 0, len(statements.Months))
	for _, sm := range statements.Months {
		series = append(series, Snapshot(year, sm))
	}
	return series
}

// Summarize totals a run of months. Average margins are weighted by revenue.
func Summarize(label string, months []domain.FinancialSnapshot) domain.PeriodSummary {
	summary := domain.PeriodSummary{Label: label, Months: []string{}}
	nwc := decimal.Zero
	for _, m := range months {
		summary.Months = append(summary.Months, m.Month)
		summary.TotalRevenue = summary.TotalRevenue.Add(m.Revenue)
		summary.TotalCOGS = summary.TotalCOGS.Add(m.COGS)
		summary.TotalGrossProfit = summary.TotalGrossProfit.Add(m.GrossProfit)
		summary.TotalEBITDA = summary.TotalEBITDA.Add(m.EBITDA)
		summary.TotalNetIncome = summary.TotalNetIncome.Add(m.NetIncome)
		summary.TotalOperatingCF = summary.TotalOperatingCF.Add(m.OperatingCashFlow)
		nwc = nwc.Add(m.NWC)
	}

	summary.AvgGrossMarginPct = Margin(summary.TotalGrossProfit, summary.TotalRevenue)
	summary.AvgEBITDAMarginPct = Margin(summary.TotalEBITDA, summary.TotalRevenue)
	summary.AvgNWC = utils.Average(nwc, len(months))

	return summary
}

// YearToDate summarizes January through the period month.
func YearToDate(period domain.Period, series []domain.FinancialSnapshot) domain.PeriodSummary {
	return Summarize(fmt.Sprintf("YTD %d", period.Year()), series)
}

// QuarterToDate summarizes the months of the period's quarter up to and
// including the period month.
func QuarterToDate(period domain.Period, statements domain.FinancialStatements) domain.PeriodSummary {
	first := time.Month((period.Quarter()-1)*3 + 1)
	var months []domain.FinancialSnapshot
	for _, sm := range statements.Months {
		if sm.Month >= first && sm.Month <= period.Month() {
			months = append(months, Snapshot(period.Year(), sm))
		}
	}
	return Summarize(fmt.Sprintf("Q%d %d", period.Quarter(), period.Year()), months)
}

// WorkingCapital is the NWC position at the end of the reporting month.
func WorkingCapital(current domain.FinancialSnapshot, ytd domain.PeriodSummary) domain.NWCSummary {
	return domain.NWCSummary{
		AccountsReceivable: current.AccountsReceivable,
		Inventory:          current.Inventory,
		AccountsPayable:    current.AccountsPayable,
		NWC:                current.NWC,
		YTDRevenue:         ytd.TotalRevenue,
		NWCPctRevenue:      utils.Percent(current.NWC, ytd.TotalRevenue),
		DSO:                current.DSO,
		DIO:                current.DIO,
		DPO:                current.DPO,
		CCC:                current.CCC,
	}
}
