package domain

// Status is the traffic-light color of a metric.
type Status string

const (
	StatusNone   Status = ""
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
)

// Threshold is a (green, yellow, direction) triple. For lower-is-better
// metrics a value at or below Green is green and at or below Yellow is
// yellow. HigherIsBetter mirrors the comparisons.
type Threshold struct {
	Green          float64 `mapstructure:"green" json:"green"`
	Yellow         float64 `mapstructure:"yellow" json:"yellow"`
	HigherIsBetter bool    `mapstructure:"higher_is_better" json:"higher_is_better"`
}

func (t Threshold) Evaluate(value float64) Status {
	if t.HigherIsBetter {
		switch {
		case value >= t.Green:
			return StatusGreen
		case value >= t.Yellow:
			return StatusYellow
		default:
			return StatusRed
		}
	}

	switch {
	case value <= t.Green:
		return StatusGreen
	case value <= t.Yellow:
		return StatusYellow
	default:
		return StatusRed
	}
}

// MarginStatus colors a gross margin against a reference average: green at
// or above it, yellow within five points below.
func MarginStatus(margin, average float64) Status {
	switch {
	case margin >= average:
		return StatusGreen
	case margin >= average-5:
		return StatusYellow
	default:
		return StatusRed
	}
}

// TrendStatus colors a percentage change: above +10 green, below -10 red.
func TrendStatus(changePct float64) Status {
	switch {
	case changePct > 10:
		return StatusGreen
	case changePct < -10:
		return StatusRed
	default:
		return StatusYellow
	}
}

// Emoji is the marker used in terminal reports.
func (s Status) Emoji() string {
	switch s {
	case StatusGreen:
		return "🟢"
	case StatusYellow:
		return "🟡"
	case StatusRed:
		return "🔴"
	default:
		return ""
	}
}
