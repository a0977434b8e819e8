package presenting

import (
	"html/template"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

// Tab identifiers, in display order.
const (
	TabSummary     = "summary"
	TabProducts    = "products"
	TabNWC         = "nwc"
	TabCustomers   = "customers"
	TabBacklog     = "backlog"
	TabHistoricals = "historicals"
)

var Tabs = []TabLink{
	{ID: TabSummary, Title: "Summary"},
	{ID: TabProducts, Title: "Product Details"},
	{ID: TabNWC, Title: "NWC Details"},
	{ID: TabCustomers, Title: "Customers"},
	{ID: TabBacklog, Title: "Order Backlog"},
	{ID: TabHistoricals, Title: "Historicals"},
}

type TabLink struct {
	ID     string
	Title  string
	Active bool
}

// Request selects what the dashboard shows. Empty Period means the newest
// archived period; empty Historical means the newest as well.
type Request struct {
	Period     string
	Tab        string
	Historical string
}

// Metric is one formatted figure with its optional color and delta.
type Metric struct {
	Label   string        `json:"label"`
	Value   string        `json:"value"`
	Status  domain.Status `json:"status,omitempty"`
	Delta   string        `json:"delta,omitempty"`
	Caption string        `json:"caption,omitempty"`
}

type PeriodOption struct {
	Period   string
	Title    string
	Selected bool
}

// DashboardView is the whole page for one period. A nil tab means its
// documents could not be read; templates render "no data" for it.
type DashboardView struct {
	Period      string
	Title       string
	SourceFiles []string
	Skipped     int
	NoData      bool
	Tabs        []TabLink
	Active      string
	Periods     []PeriodOption
	Summary     *SummaryTab
	Products    *ProductsTab
	NWC         *NWCTab
	Customers   *CustomersTab
	Backlog     *BacklogTab
	Historicals *HistoricalsTab
}

type SummaryTab struct {
	Snapshot    []Metric
	Targets     []Metric
	Comparisons []Comparison
	Basis       []string
	Monthly     []MonthRow
	Rolling     []RollingRow
	YTDLabel    string
	YTD         []Metric
	Quarter     string
	QuarterData []Metric
	Notes       template.HTML
	HasNotes    bool
}

// Comparison is the current month against the trailing three month average.
type Comparison struct {
	Label   string        `json:"label"`
	Current string        `json:"current"`
	Average string        `json:"average"`
	Delta   string        `json:"delta"`
	Status  domain.Status `json:"status,omitempty"`
	Value   Variance      `json:"-"`
}

type MonthRow struct {
	Month           string
	Revenue         string
	GrossProfit     string
	EBITDA          string
	NetIncome       string
	GrossMarginPct  string
	EBITDAMarginPct string
}

type RollingRow struct {
	Month   string
	Revenue string
	Average string
	Delta   string
	Status  domain.Status
}

type ProductsTab struct {
	Products []ProductView
}

type ProductView struct {
	Name    string
	Metrics []Metric
	Monthly []ProductRow
}

type ProductRow struct {
	Month          string
	Sales          string
	GrossProfit    string
	GrossMarginPct string
}

type NWCTab struct {
	Components []Metric
	Ratios     []Metric
	Trend      []NWCRow
}

type NWCRow struct {
	Month string
	AR    string
	Inv   string
	AP    string
	NWC   string
	DSO   string
	DIO   string
	DPO   string
	CCC   string
}

type CustomersTab struct {
	L12MWindow   string
	L3MWindow    string
	Summary      []Metric
	Segments     []SegmentRow
	TopCustomers []CustomerRow
	TopL12M      []Metric
	TopL3M       []Metric
}

type SegmentRow struct {
	Segment        string
	Customers      int
	Revenue        string
	SharePct       string
	AvgRevenue     string
	AvgRecencyDays string
	AvgFrequency   string
}

type CustomerRow struct {
	Rank         int           `json:"rank"`
	Customer     string        `json:"customer"`
	L12MSales    string        `json:"l12m_sales"`
	L3MSales     string        `json:"l3m_sales"`
	L12MShare    string        `json:"l12m_share"`
	GPMargin     string        `json:"gp_margin"`
	MarginStatus domain.Status `json:"margin_status,omitempty"`
	Trend        string        `json:"trend"`
	TrendStatus  domain.Status `json:"trend_status,omitempty"`
	Segment      string        `json:"segment"`
}

type BacklogTab struct {
	Summary      []Metric
	Ages         []BucketRow
	ShipDates    []BucketRow
	TopCustomers []GroupRow
	BySalesRep   []GroupRow
	ByRegion     []GroupRow
}

type BucketRow struct {
	Name   string
	Orders int
	Value  string
	Share  string
}

type GroupRow struct {
	Name      string
	Orders    int
	Value     string
	Share     string
	AvgAge    string
	AgeStatus domain.Status
}

type HistoricalsTab struct {
	Cards    []PeriodCard
	Selected *HistoricalView
}

type PeriodCard struct {
	Period   string
	Title    string
	Revenue  string
	Margin   string
	EBITDA   string
	Selected bool
}

// HistoricalView is the condensed dashboard of one archived period.
type HistoricalView struct {
	Period       string        `json:"period"`
	Title        string        `json:"title"`
	NoData       bool          `json:"no_data"`
	KeyMetrics   []Metric      `json:"key_metrics"`
	TopCustomers []CustomerRow `json:"top_customers"`
	Backlog      []Metric      `json:"backlog"`
}
