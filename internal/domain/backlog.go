package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AgeBucket string

const (
	AgeBucket0To30   AgeBucket = "0-30 days"
	AgeBucket31To60  AgeBucket = "31-60 days"
	AgeBucket61To90  AgeBucket = "61-90 days"
	AgeBucket91To180 AgeBucket = "91-180 days"
	AgeBucketOver180 AgeBucket = "180+ days"
)

// AgeBuckets lists the buckets youngest first.
var AgeBuckets = []AgeBucket{
	AgeBucket0To30,
	AgeBucket31To60,
	AgeBucket61To90,
	AgeBucket91To180,
	AgeBucketOver180,
}

// AgeBucketFor places a non-negative age in days. Each bucket includes its
// lower edge: 31 is 31-60, 181 is 180+. Negative ages have no bucket.
func AgeBucketFor(days int) (AgeBucket, bool) {
	switch {
	case days < 0:
		return "", false
	case days <= 30:
		return AgeBucket0To30, true
	case days <= 60:
		return AgeBucket31To60, true
	case days <= 90:
		return AgeBucket61To90, true
	case days <= 180:
		return AgeBucket91To180, true
	default:
		return AgeBucketOver180, true
	}
}

// IsOld reports whether the bucket holds orders older than 90 days.
func (b AgeBucket) IsOld() bool {
	return b == AgeBucket91To180 || b == AgeBucketOver180
}

// ShipWindow groups open orders by how far out the expected ship date is.
type ShipWindow string

const (
	ShipWindowPastDue ShipWindow = "Past Due"
	ShipWindow0To30   ShipWindow = "0-30 days"
	ShipWindow31To60  ShipWindow = "31-60 days"
	ShipWindow61To90  ShipWindow = "61-90 days"
	ShipWindowOver90  ShipWindow = "90+ days"
	ShipWindowNoDate  ShipWindow = "No Date"
)

var ShipWindows = []ShipWindow{
	ShipWindowPastDue,
	ShipWindow0To30,
	ShipWindow31To60,
	ShipWindow61To90,
	ShipWindowOver90,
	ShipWindowNoDate,
}

// ShipWindowFor classifies days until the expected ship date. ok=false means
// no ship date was given.
func ShipWindowFor(daysOut int, ok bool) ShipWindow {
	switch {
	case !ok:
		return ShipWindowNoDate
	case daysOut < 0:
		return ShipWindowPastDue
	case daysOut <= 30:
		return ShipWindow0To30
	case daysOut <= 60:
		return ShipWindow31To60
	case daysOut <= 90:
		return ShipWindow61To90
	default:
		return ShipWindowOver90
	}
}

// BacklogLine is one open order as read from the backlog workbook.
type BacklogLine struct {
	OrderID   string
	OrderDate time.Time
	Customer  string
	Amount    decimal.Decimal
	SalesRep  string
	Region    string
	ShipDate  *time.Time
}

type BacklogRecord struct {
	OrderID    string          `json:"order_id"`
	OrderDate  string          `json:"order_date"`
	Customer   string          `json:"customer"`
	Amount     decimal.Decimal `json:"amount"`
	SalesRep   string          `json:"sales_rep,omitempty"`
	Region     string          `json:"region,omitempty"`
	ShipDate   string          `json:"ship_date,omitempty"`
	AgeDays    int             `json:"age_days"`
	AgeBucket  AgeBucket       `json:"age_bucket"`
	ShipWindow ShipWindow      `json:"ship_window"`
}

type BacklogSummary struct {
	TotalBacklogValue decimal.Decimal `json:"total_backlog_value"`
	TotalOrders       int             `json:"total_orders"`
	CustomerCount     int             `json:"customer_count"`
	AvgOrderValue     decimal.Decimal `json:"avg_order_value"`
	AvgAgeDays        decimal.Decimal `json:"avg_age_days"`
	OldOrdersCount    int             `json:"old_orders_count"`
	OldOrdersPct      decimal.Decimal `json:"old_orders_pct"`
}

type AgeBucketSummary struct {
	Bucket     AgeBucket       `json:"bucket"`
	OrderCount int             `json:"order_count"`
	TotalValue decimal.Decimal `json:"total_value"`
	ValuePct   decimal.Decimal `json:"value_pct"`
}

type ShipWindowSummary struct {
	Window     ShipWindow      `json:"window"`
	OrderCount int             `json:"order_count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// BacklogGroup aggregates open orders by customer, sales rep or region.
type BacklogGroup struct {
	Name       string          `json:"name"`
	OrderCount int             `json:"order_count"`
	TotalValue decimal.Decimal `json:"total_value"`
	AvgAgeDays decimal.Decimal `json:"avg_age_days"`
	ValuePct   decimal.Decimal `json:"value_pct"`
}
