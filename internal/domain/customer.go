package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Segment is the RFM customer segment. The set is closed.
type Segment string

const (
	SegmentChampions          Segment = "Champions"
	SegmentLoyalCustomers     Segment = "Loyal Customers"
	SegmentPotentialLoyalists Segment = "Potential Loyalists"
	SegmentNewCustomers       Segment = "New Customers"
	SegmentPromising          Segment = "Promising"
	SegmentNeedAttention      Segment = "Need Attention"
	SegmentAboutToSleep       Segment = "About To Sleep"
	SegmentAtRisk             Segment = "At Risk"
	SegmentCannotLoseThem     Segment = "Cannot Lose Them"
	SegmentHibernating        Segment = "Hibernating"
)

// Segments lists every segment from best to worst.
var Segments = []Segment{
	SegmentChampions,
	SegmentLoyalCustomers,
	SegmentPotentialLoyalists,
	SegmentNewCustomers,
	SegmentPromising,
	SegmentNeedAttention,
	SegmentAboutToSleep,
	SegmentAtRisk,
	SegmentCannotLoseThem,
	SegmentHibernating,
}

// SegmentFor maps an RFM score tuple to its segment. Scores outside 1..5 are
// clamped.
func SegmentFor(r, f, m int) Segment {
	return segmentTable[clampScore(r)-1][clampScore(f)-1][clampScore(m)-1]
}

func clampScore(s int) int {
	if s < 1 {
		return 1
	}
	if s > 5 {
		return 5
	}
	return s
}

// segmentTable is indexed [R-1][F-1][M-1].
var segmentTable = [5][5][5]Segment{
	{ // R=1
		{SegmentHibernating, SegmentHibernating, SegmentHibernating, SegmentAtRisk, SegmentAtRisk},  // F=1
		{SegmentHibernating, SegmentHibernating, SegmentAtRisk, SegmentAtRisk, SegmentAtRisk},       // F=2
		{SegmentHibernating, SegmentAtRisk, SegmentAtRisk, SegmentAtRisk, SegmentAtRisk},            // F=3
		{SegmentAtRisk, SegmentAtRisk, SegmentAtRisk, SegmentAtRisk, SegmentCannotLoseThem},         // F=4
		{SegmentAtRisk, SegmentAtRisk, SegmentAtRisk, SegmentCannotLoseThem, SegmentCannotLoseThem}, // F=5
	},
	{ // R=2
		{SegmentHibernating, SegmentHibernating, SegmentHibernating, SegmentAtRisk, SegmentAtRisk},  // F=1
		{SegmentHibernating, SegmentHibernating, SegmentAtRisk, SegmentAtRisk, SegmentAtRisk},       // F=2
		{SegmentHibernating, SegmentAtRisk, SegmentAtRisk, SegmentAtRisk, SegmentAtRisk},            // F=3
		{SegmentAtRisk, SegmentAtRisk, SegmentAtRisk, SegmentAtRisk, SegmentCannotLoseThem},         // F=4
		{SegmentAtRisk, SegmentAtRisk, SegmentAtRisk, SegmentCannotLoseThem, SegmentCannotLoseThem}, // F=5
	},
	{ // R=3
		{SegmentAboutToSleep, SegmentAboutToSleep, SegmentAboutToSleep, SegmentNeedAttention, SegmentNeedAttention},        // F=1
		{SegmentAboutToSleep, SegmentAboutToSleep, SegmentNeedAttention, SegmentNeedAttention, SegmentLoyalCustomers},      // F=2
		{SegmentAboutToSleep, SegmentNeedAttention, SegmentNeedAttention, SegmentLoyalCustomers, SegmentLoyalCustomers},    // F=3
		{SegmentNeedAttention, SegmentNeedAttention, SegmentLoyalCustomers, SegmentLoyalCustomers, SegmentLoyalCustomers},  // F=4
		{SegmentNeedAttention, SegmentLoyalCustomers, SegmentLoyalCustomers, SegmentLoyalCustomers, SegmentLoyalCustomers}, // F=5
	},
	{ // R=4
		{SegmentPromising, SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentPotentialLoyalists},      // F=1
		{SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentLoyalCustomers}, // F=2
		{SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentLoyalCustomers, SegmentLoyalCustomers},     // F=3
		{SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentLoyalCustomers, SegmentLoyalCustomers, SegmentLoyalCustomers},         // F=4
		{SegmentPotentialLoyalists, SegmentLoyalCustomers, SegmentLoyalCustomers, SegmentLoyalCustomers, SegmentLoyalCustomers},             // F=5
	},
	{ // R=5
		{SegmentNewCustomers, SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentPotentialLoyalists}, // F=1
		{SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentChampions},    // F=2
		{SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentChampions, SegmentChampions},             // F=3
		{SegmentPotentialLoyalists, SegmentPotentialLoyalists, SegmentChampions, SegmentChampions, SegmentChampions},                      // F=4
		{SegmentPotentialLoyalists, SegmentChampions, SegmentChampions, SegmentChampions, SegmentChampions},                               // F=5
	},
}

// SalesLine is one invoice line from the customer sales detail.
type SalesLine struct {
	Customer       string
	Invoice        string
	Date           time.Time
	Sales          decimal.Decimal
	GrossProfit    decimal.Decimal
	HasGrossProfit bool
}

// CustomerRecord is the per-customer result of one period's RFM analysis.
type CustomerRecord struct {
	Customer         string          `json:"customer"`
	L3MSales         decimal.Decimal `json:"l3m_sales"`
	L12MSales        decimal.Decimal `json:"l12m_sales"`
	L3MGrossProfit   decimal.Decimal `json:"l3m_gross_profit"`
	L12MGrossProfit  decimal.Decimal `json:"l12m_gross_profit"`
	L12MGPMargin     decimal.Decimal `json:"l12m_gp_margin"`
	LastPurchaseDate string          `json:"last_purchase_date"`
	RecencyDays      int             `json:"recency_days"`
	Frequency        int             `json:"frequency"`
	Monetary         decimal.Decimal `json:"monetary"`
	RScore           int             `json:"r_score"`
	FScore           int             `json:"f_score"`
	MScore           int             `json:"m_score"`
	Segment          Segment         `json:"segment"`
}

type TopCustomer struct {
	Rank            int             `json:"rank"`
	Customer        string          `json:"customer"`
	L12MSales       decimal.Decimal `json:"l12m_sales"`
	L3MSales        decimal.Decimal `json:"l3m_sales"`
	L12MGrossProfit decimal.Decimal `json:"l12m_gross_profit"`
	L12MGPMargin    decimal.Decimal `json:"l12m_gp_margin"`
	L12MSharePct    decimal.Decimal `json:"l12m_share_pct"`
	L3MSharePct     decimal.Decimal `json:"l3m_share_pct"`
	Segment         Segment         `json:"segment"`
}

type SegmentSummary struct {
	Segment               Segment         `json:"segment"`
	CustomerCount         int             `json:"customer_count"`
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	RevenueSharePct       decimal.Decimal `json:"revenue_share_pct"`
	AvgRevenuePerCustomer decimal.Decimal `json:"avg_revenue_per_customer"`
	AvgRecencyDays        decimal.Decimal `json:"avg_recency_days"`
	AvgFrequency          decimal.Decimal `json:"avg_frequency"`
}

type CustomerSummary struct {
	TotalCustomers        int             `json:"total_customers"`
	ActiveCustomersL3M    int             `json:"active_customers_l3m"`
	TotalL12MSales        decimal.Decimal `json:"total_l12m_sales"`
	TotalL3MSales         decimal.Decimal `json:"total_l3m_sales"`
	TotalL12MGrossProfit  decimal.Decimal `json:"total_l12m_gross_profit"`
	AvgGrossMarginPct     decimal.Decimal `json:"avg_gross_margin_pct"`
	AvgRevenuePerCustomer decimal.Decimal `json:"avg_revenue_per_customer"`
}
