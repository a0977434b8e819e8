package presenting

import (
	"html/template"

	"github.com/shopspring/decimal"

	"github.com/durabrake/financial-dashboard/internal/config"
	"github.com/durabrake/financial-dashboard/internal/domain"
	"github.com/durabrake/financial-dashboard/pkg/utils"
)

var (
	three  = decimal.NewFromInt(3)
	twelve = decimal.NewFromInt(12)
)

type comparedMetric struct {
	label  string
	points bool
	pick   func(domain.FinancialSnapshot) decimal.Decimal
}

var comparedMetrics = []comparedMetric{
	{"Revenue", false, func(s domain.FinancialSnapshot) decimal.Decimal { return s.Revenue }},
	{"Gross Profit", false, func(s domain.FinancialSnapshot) decimal.Decimal { return s.GrossProfit }},
	{"EBITDA", false, func(s domain.FinancialSnapshot) decimal.Decimal { return s.EBITDA }},
	{"Net Income", false, func(s domain.FinancialSnapshot) decimal.Decimal { return s.NetIncome }},
	{"Gross Margin %", true, func(s domain.FinancialSnapshot) decimal.Decimal { return s.GrossMarginPct }},
	{"EBITDA Margin %", true, func(s domain.FinancialSnapshot) decimal.Decimal { return s.EBITDAMarginPct }},
}

func comparison(label string, v Variance) Comparison {
	current := Currency(v.Current)
	if v.Points {
		current = Percent(v.Current)
	}
	return Comparison{
		Label:   label,
		Current: current,
		Average: Average(v),
		Delta:   Change(v),
		Status:  v.status(),
		Value:   v,
	}
}

// targetStatus colors a margin against its budget: green at or above it,
// yellow within five points. No target, no color.
func targetStatus(value decimal.Decimal, target float64) domain.Status {
	if target <= 0 {
		return domain.StatusNone
	}
	return domain.MarginStatus(value.InexactFloat64(), target)
}

func (s *Service) summaryTab(doc *domain.DashboardDocument, prior []priorMonth, notes template.HTML) *SummaryTab {
	cm := doc.CurrentMonth
	tab := &SummaryTab{
		Snapshot: []Metric{
			{Label: "Revenue", Value: Currency(cm.Revenue)},
			{Label: "Gross Profit", Value: Currency(cm.GrossProfit)},
			{Label: "EBITDA", Value: Currency(cm.EBITDA)},
			{Label: "Net Income", Value: Currency(cm.NetIncome)},
			{Label: "Gross Margin %", Value: Percent(cm.GrossMarginPct), Status: targetStatus(cm.GrossMarginPct, s.targets.GrossMarginPct)},
			{Label: "EBITDA Margin %", Value: Percent(cm.EBITDAMarginPct), Status: targetStatus(cm.EBITDAMarginPct, s.targets.EBITDAMarginPct)},
			{Label: "NWC", Value: Currency(cm.NWC)},
			{Label: "Operating CF", Value: Currency(cm.OperatingCashFlow)},
		},
		YTDLabel: doc.YTDSummary.Label,
		YTD:      summaryMetrics(doc.YTDSummary, true),
		Quarter:  doc.QuarterSummary.Label,
		Notes:    notes,
		HasNotes: notes != "",
	}
	tab.QuarterData = summaryMetrics(doc.QuarterSummary, false)

	if target := s.targets.GrossMarginPct; target > 0 {
		tab.Targets = append(tab.Targets, targetMetric("Gross Margin Target", cm.GrossMarginPct, target))
	}
	if target := s.targets.EBITDAMarginPct; target > 0 {
		tab.Targets = append(tab.Targets, targetMetric("EBITDA Margin Target", cm.EBITDAMarginPct, target))
	}

	for _, m := range comparedMetrics {
		v := Compare(m.pick(cm), priorValues(prior, m.pick), m.points)
		tab.Comparisons = append(tab.Comparisons, comparison(m.label, v))
	}
	for _, m := range prior {
		tab.Basis = append(tab.Basis, m.basis())
	}

	for _, snap := range doc.MonthlySeries {
		tab.Monthly = append(tab.Monthly, MonthRow{
			Month:           snap.Month,
			Revenue:         Currency(snap.Revenue),
			GrossProfit:     Currency(snap.GrossProfit),
			EBITDA:          Currency(snap.EBITDA),
			NetIncome:       Currency(snap.NetIncome),
			GrossMarginPct:  Percent(snap.GrossMarginPct),
			EBITDAMarginPct: Percent(snap.EBITDAMarginPct),
		})
	}

	for i, v := range Rolling(doc.MonthlySeries) {
		tab.Rolling = append(tab.Rolling, RollingRow{
			Month:   doc.MonthlySeries[i+TrailingMonths].Month,
			Revenue: Currency(v.Current),
			Average: Average(v),
			Delta:   Change(v),
			Status:  v.status(),
		})
	}

	return tab
}

func targetMetric(label string, value decimal.Decimal, target float64) Metric {
	t := decimal.NewFromFloat(target)
	return Metric{
		Label:  label,
		Value:  Percent(t),
		Status: targetStatus(value, target),
		Delta:  Change(Variance{Defined: true, Points: true, Change: value.Sub(t)}),
	}
}

func summaryMetrics(sum domain.PeriodSummary, ytd bool) []Metric {
	if !ytd {
		return []Metric{
			{Label: "Revenue", Value: Currency(sum.TotalRevenue)},
			{Label: "Gross Profit", Value: Currency(sum.TotalGrossProfit), Caption: Percent(sum.AvgGrossMarginPct) + " margin"},
			{Label: "EBITDA", Value: Currency(sum.TotalEBITDA), Caption: Percent(sum.AvgEBITDAMarginPct) + " margin"},
			{Label: "Net Income", Value: Currency(sum.TotalNetIncome)},
		}
	}
	return []Metric{
		{Label: "Total Revenue", Value: Currency(sum.TotalRevenue)},
		{Label: "Total Gross Profit", Value: Currency(sum.TotalGrossProfit)},
		{Label: "Total EBITDA", Value: Currency(sum.TotalEBITDA)},
		{Label: "Total Net Income", Value: Currency(sum.TotalNetIncome)},
		{Label: "Avg Gross Margin %", Value: Percent(sum.AvgGrossMarginPct)},
		{Label: "Avg EBITDA Margin %", Value: Percent(sum.AvgEBITDAMarginPct)},
		{Label: "Avg NWC", Value: Currency(sum.AvgNWC)},
		{Label: "Total Operating CF", Value: Currency(sum.TotalOperatingCF)},
	}
}

func productsTab(doc *domain.DashboardDocument, prior []priorMonth) *ProductsTab {
	tab := &ProductsTab{}
	for _, p := range doc.Products {
		sales := Compare(p.Current.Sales, priorProductValues(prior, p.Product, func(ps domain.ProductSnapshot) decimal.Decimal { return ps.Sales }), false)
		gp := Compare(p.Current.GrossProfit, priorProductValues(prior, p.Product, func(ps domain.ProductSnapshot) decimal.Decimal { return ps.GrossProfit }), false)
		margin := Compare(p.Current.GrossMarginPct, priorProductValues(prior, p.Product, func(ps domain.ProductSnapshot) decimal.Decimal { return ps.GrossMarginPct }), true)

		view := ProductView{
			Name: p.Name,
			Metrics: []Metric{
				{Label: "Sales", Value: Currency(p.Current.Sales), Delta: Change(sales), Caption: "L3M Avg: " + Average(sales)},
				{Label: "Gross Profit", Value: Currency(p.Current.GrossProfit), Delta: Change(gp), Caption: "L3M Avg: " + Average(gp)},
				{Label: "Gross Margin %", Value: Percent(p.Current.GrossMarginPct), Delta: Change(margin), Caption: "L3M Avg: " + Average(margin)},
				{Label: "YTD Sales", Value: Currency(p.YTDSales), Caption: Percent(p.YTDMarginPct) + " margin"},
			},
		}
		for _, ps := range p.MonthlySeries {
			view.Monthly = append(view.Monthly, ProductRow{
				Month:          ps.Month,
				Sales:          Currency(ps.Sales),
				GrossProfit:    Currency(ps.GrossProfit),
				GrossMarginPct: Percent(ps.GrossMarginPct),
			})
		}
		tab.Products = append(tab.Products, view)
	}
	return tab
}

func (s *Service) nwcTab(doc *domain.DashboardDocument) *NWCTab {
	nwc := doc.NWC
	eval := func(metric string, v decimal.Decimal) domain.Status {
		return s.thresholds.For(metric).Evaluate(v.InexactFloat64())
	}

	tab := &NWCTab{
		Components: []Metric{
			{Label: "Accounts Receivable", Value: Currency(nwc.AccountsReceivable)},
			{Label: "Inventory", Value: Currency(nwc.Inventory)},
			{Label: "Accounts Payable", Value: Currency(nwc.AccountsPayable)},
			{Label: "Net Working Capital", Value: Currency(nwc.NWC)},
		},
		Ratios: []Metric{
			{Label: "NWC as % of Revenue", Value: Percent(nwc.NWCPctRevenue), Status: eval(config.MetricNWCPct, nwc.NWCPctRevenue), Caption: "Based on YTD revenue"},
			{Label: "Days Sales Outstanding", Value: Days(nwc.DSO), Status: eval(config.MetricDSO, nwc.DSO)},
			{Label: "Days Inventory Outstanding", Value: Days(nwc.DIO), Status: eval(config.MetricDIO, nwc.DIO)},
			{Label: "Days Payable Outstanding", Value: Days(nwc.DPO), Status: eval(config.MetricDPO, nwc.DPO)},
			{Label: "Cash Conversion Cycle", Value: Days(nwc.CCC), Status: eval(config.MetricCCC, nwc.CCC), Caption: "DSO + DIO - DPO"},
		},
	}

	for _, snap := range doc.MonthlySeries {
		tab.Trend = append(tab.Trend, NWCRow{
			Month: snap.Month,
			AR:    Currency(snap.AccountsReceivable),
			Inv:   Currency(snap.Inventory),
			AP:    Currency(snap.AccountsPayable),
			NWC:   Currency(snap.NWC),
			DSO:   Days(snap.DSO),
			DIO:   Days(snap.DIO),
			DPO:   Days(snap.DPO),
			CCC:   Days(snap.CCC),
		})
	}
	return tab
}

// weightedMargin is the sales-weighted GP margin of the top customers, the
// reference for coloring each customer's margin.
func weightedMargin(doc *domain.CustomerDocument) decimal.Decimal {
	sales, gp := decimal.Zero, decimal.Zero
	for _, c := range doc.TopCustomers {
		sales = sales.Add(c.L12MSales)
		gp = gp.Add(c.L12MGrossProfit)
	}
	if sales.IsZero() {
		return doc.Summary.AvgGrossMarginPct
	}
	return utils.Percent(gp, sales)
}

// salesTrend compares the L3M monthly run rate with the L12M one.
func salesTrend(l3m, l12m decimal.Decimal) Variance {
	monthly := l12m.Div(twelve)
	return Compare(l3m.DivRound(three, 16), []decimal.Decimal{monthly}, false)
}

func customerRows(doc *domain.CustomerDocument, limit int) []CustomerRow {
	avg := weightedMargin(doc).InexactFloat64()
	rows := []CustomerRow{}
	for _, c := range doc.TopCustomers {
		if limit > 0 && len(rows) == limit {
			break
		}
		trend := salesTrend(c.L3MSales, c.L12MSales)
		trendStatus := domain.StatusNone
		if trend.Defined {
			trendStatus = domain.TrendStatus(trend.Change.InexactFloat64())
		}
		rows = append(rows, CustomerRow{
			Rank:         c.Rank,
			Customer:     c.Customer,
			L12MSales:    Currency(c.L12MSales),
			L3MSales:     Currency(c.L3MSales),
			L12MShare:    Percent(c.L12MSharePct),
			GPMargin:     Percent(c.L12MGPMargin),
			MarginStatus: domain.MarginStatus(c.L12MGPMargin.InexactFloat64(), avg),
			Trend:        Change(trend),
			TrendStatus:  trendStatus,
			Segment:      string(c.Segment),
		})
	}
	return rows
}

func customersTab(doc *domain.CustomerDocument) *CustomersTab {
	sum := doc.Summary
	tab := &CustomersTab{
		L12MWindow: doc.L12MWindow,
		L3MWindow:  doc.L3MWindow,
		Summary: []Metric{
			{Label: "Total Customers", Value: Count(sum.TotalCustomers)},
			{Label: "Active Customers (L3M)", Value: Count(sum.ActiveCustomersL3M)},
			{Label: "L12M Sales", Value: Currency(sum.TotalL12MSales)},
			{Label: "L3M Sales", Value: Currency(sum.TotalL3MSales)},
			{Label: "Avg Gross Margin %", Value: Percent(sum.AvgGrossMarginPct)},
			{Label: "Avg Revenue per Customer", Value: Currency(sum.AvgRevenuePerCustomer)},
		},
		TopCustomers: customerRows(doc, 0),
	}

	for _, seg := range doc.Segments {
		tab.Segments = append(tab.Segments, SegmentRow{
			Segment:        string(seg.Segment),
			Customers:      seg.CustomerCount,
			Revenue:        Currency(seg.TotalRevenue),
			SharePct:       Percent(seg.RevenueSharePct),
			AvgRevenue:     Currency(seg.AvgRevenuePerCustomer),
			AvgRecencyDays: Days(seg.AvgRecencyDays),
			AvgFrequency:   Decimal(seg.AvgFrequency),
		})
	}

	l12m, l3m := decimal.Zero, decimal.Zero
	for _, c := range doc.TopCustomers {
		l12m = l12m.Add(c.L12MSales)
		l3m = l3m.Add(c.L3MSales)
	}
	n := len(doc.TopCustomers)
	tab.TopL12M = []Metric{
		{Label: "Top L12M Sales", Value: Currency(l12m)},
		{Label: "% of Total L12M Sales", Value: Percent(utils.Percent(l12m, sum.TotalL12MSales))},
		{Label: "Avg L12M Sales", Value: Currency(utils.Average(l12m, n))},
	}
	tab.TopL3M = []Metric{
		{Label: "Top L3M Sales", Value: Currency(l3m)},
		{Label: "% of Total L3M Sales", Value: Percent(utils.Percent(l3m, sum.TotalL3MSales))},
		{Label: "Avg L3M Sales", Value: Currency(utils.Average(l3m, n))},
	}
	return tab
}

func (s *Service) backlogSummary(sum domain.BacklogSummary) []Metric {
	return []Metric{
		{Label: "Total Backlog Value", Value: Currency(sum.TotalBacklogValue)},
		{Label: "Total Orders", Value: Count(sum.TotalOrders)},
		{Label: "Average Order Value", Value: Currency(sum.AvgOrderValue)},
		{
			Label:  "Average Order Age",
			Value:  Days(sum.AvgAgeDays),
			Status: s.thresholds.For(config.MetricBacklogAge).Evaluate(sum.AvgAgeDays.InexactFloat64()),
		},
		{
			Label:   "Orders > 90 Days",
			Value:   Percent(sum.OldOrdersPct),
			Status:  s.thresholds.For(config.MetricOldOrdersPct).Evaluate(sum.OldOrdersPct.InexactFloat64()),
			Caption: Count(sum.OldOrdersCount) + " orders",
		},
	}
}

func (s *Service) backlogTab(doc *domain.BacklogDocument) *BacklogTab {
	tab := &BacklogTab{
		Summary:      s.backlogSummary(doc.Summary),
		TopCustomers: s.groupRows(doc.TopCustomers),
		BySalesRep:   s.groupRows(doc.BySalesRep),
		ByRegion:     s.groupRows(doc.ByRegion),
	}
	for _, b := range doc.AgeDistribution {
		tab.Ages = append(tab.Ages, BucketRow{
			Name:   string(b.Bucket),
			Orders: b.OrderCount,
			Value:  Currency(b.TotalValue),
			Share:  Percent(b.ValuePct),
		})
	}
	total := doc.Summary.TotalBacklogValue
	for _, w := range doc.ShipDateDistribution {
		tab.ShipDates = append(tab.ShipDates, BucketRow{
			Name:   string(w.Window),
			Orders: w.OrderCount,
			Value:  Currency(w.TotalValue),
			Share:  Percent(utils.Percent(w.TotalValue, total)),
		})
	}
	return tab
}

func (s *Service) groupRows(groups []domain.BacklogGroup) []GroupRow {
	age := s.thresholds.For(config.MetricBacklogAge)
	rows := []GroupRow{}
	for _, g := range groups {
		rows = append(rows, GroupRow{
			Name:      g.Name,
			Orders:    g.OrderCount,
			Value:     Currency(g.TotalValue),
			Share:     Percent(g.ValuePct),
			AvgAge:    Days(g.AvgAgeDays),
			AgeStatus: age.Evaluate(g.AvgAgeDays.InexactFloat64()),
		})
	}
	return rows
}
