package domain

// AvailablePeriods lists the archived periods, newest first.
type AvailablePeriods struct {
	Periods []string `json:"periods"` // YY.MM
	Years   []int    `json:"years"`
	Latest  string   `json:"latest,omitempty"`
}
