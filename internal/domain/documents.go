package domain

// Names of the files written into each period archive.
const (
	DashboardFile   = "dashboard_data.json"
	CustomerFile    = "customer_dashboard_data.json"
	BacklogFile     = "backlog_dashboard_data.json"
	CustomerRFMFile = "customer_rfm_scores.csv"
	NotesFile       = "notes.md"
)

type Metadata struct {
	Period         string   `json:"period"`
	ReportingMonth string   `json:"reporting_month"`
	ReportingYear  int      `json:"reporting_year"`
	SnapshotDate   string   `json:"snapshot_date"`
	SourceFiles    []string `json:"source_files"`
	SkippedRecords int      `json:"skipped_records"`
}

// DashboardDocument is the content of dashboard_data.json.
type DashboardDocument struct {
	Metadata       Metadata            `json:"metadata"`
	CurrentMonth   FinancialSnapshot   `json:"current_month"`
	MonthlySeries  []FinancialSnapshot `json:"monthly_series"`
	YTDSummary     PeriodSummary       `json:"ytd_summary"`
	QuarterSummary PeriodSummary       `json:"quarter_summary"`
	NWC            NWCSummary          `json:"nwc"`
	Products       []ProductDetail     `json:"products"`
}

// CustomerDocument is the content of customer_dashboard_data.json.
type CustomerDocument struct {
	Metadata     Metadata         `json:"metadata"`
	L12MWindow   string           `json:"analysis_period_l12m"`
	L3MWindow    string           `json:"analysis_period_l3m"`
	Summary      CustomerSummary  `json:"summary"`
	TopCustomers []TopCustomer    `json:"top_15_customers"`
	Segments     []SegmentSummary `json:"rfm_segments"`
	Distribution map[Segment]int  `json:"rfm_distribution"`
}

// BacklogDocument is the content of backlog_dashboard_data.json.
type BacklogDocument struct {
	Metadata             Metadata            `json:"metadata"`
	Summary              BacklogSummary      `json:"summary"`
	AgeDistribution      []AgeBucketSummary  `json:"age_distribution"`
	ShipDateDistribution []ShipWindowSummary `json:"ship_date_distribution"`
	TopCustomers         []BacklogGroup      `json:"top_customers"`
	BySalesRep           []BacklogGroup      `json:"by_sales_rep"`
	ByRegion             []BacklogGroup      `json:"by_region"`
	Orders               []BacklogRecord     `json:"orders"`
}

// Bundle is everything published for one period.
type Bundle struct {
	Period    Period
	Dashboard *DashboardDocument
	Customers *CustomerDocument
	Backlog   *BacklogDocument
	RFM       []CustomerRecord
	Notes     []byte
}
