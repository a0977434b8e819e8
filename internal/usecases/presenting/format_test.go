package presenting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/durabrake/financial-dashboard/internal/domain"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func decs(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		out = append(out, dec(v))
	}
	return out
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "$1,000,000", Currency(dec(1000000)))
	assert.Equal(t, "-$20,000", Currency(dec(-20000.4)))
	assert.Equal(t, "$0", Currency(decimal.Zero))
	assert.Equal(t, "$1,000", Currency(dec(999.6)))

	assert.Equal(t, "55.0%", Percent(dec(55)))
	assert.Equal(t, "33.3%", Percent(dec(33.33)))
	assert.Equal(t, "9 days", Days(dec(9)))
	assert.Equal(t, "22 days", Days(dec(21.67)))
	assert.Equal(t, "1,234", Count(1234))
	assert.Equal(t, "2.5", Decimal(dec(2.5)))
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		prior   []float64
		points  bool
		defined bool
		change  string
		average string
		status  domain.Status
	}{
		{
			name:    "percentage against trailing average",
			current: 1000000,
			prior:   []float64{900000, 980000, 970000},
			defined: true,
			change:  "+5.3%",
			average: "$950,000",
			status:  domain.StatusGreen,
		},
		{
			name:    "decline is red",
			current: -50,
			prior:   []float64{100},
			defined: true,
			change:  "-150.0%",
			average: "$100",
			status:  domain.StatusRed,
		},
		{
			name:    "improvement over a negative average is positive",
			current: -50,
			prior:   []float64{-100},
			defined: true,
			change:  "+50.0%",
			average: "-$100",
			status:  domain.StatusGreen,
		},
		{
			name:    "zero average is undefined",
			current: 10,
			prior:   []float64{0, 0},
			change:  "N/A",
			average: "$0",
		},
		{
			name:    "margins use points",
			current: 55,
			prior:   []float64{52, 55, 55},
			points:  true,
			defined: true,
			change:  "+1.0 pts",
			average: "54.0%",
			status:  domain.StatusGreen,
		},
		{
			name:    "no prior months",
			current: 55,
			change:  "N/A",
			average: "N/A",
		},
		{
			name:    "swings of a thousand percent are not shown",
			current: 5000,
			prior:   []float64{100},
			defined: true,
			change:  "N/A",
			average: "$100",
			status:  domain.StatusGreen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Compare(dec(tt.current), decs(tt.prior...), tt.points)
			assert.Equal(t, tt.defined, v.Defined)
			assert.Equal(t, len(tt.prior), v.Months)
			assert.Equal(t, tt.change, Change(v))
			assert.Equal(t, tt.average, Average(v))
			assert.Equal(t, tt.status, v.status())
		})
	}
}

func TestRolling(t *testing.T) {
	series := []domain.FinancialSnapshot{}
	for _, r := range []float64{100, 200, 300, 400, 500} {
		series = append(series, domain.FinancialSnapshot{Revenue: dec(r)})
	}

	out := Rolling(series)

	assert.Len(t, out, 2)
	assert.Equal(t, "200", out[0].Average.String())
	assert.Equal(t, "+100.0%", Change(out[0]))
	assert.Equal(t, "300", out[1].Average.String())
	assert.Equal(t, "+66.7%", Change(out[1]))

	assert.Empty(t, Rolling(series[:3]))
}

func TestRenderNotes(t *testing.T) {
	html, err := RenderNotes([]byte("# Notes\n\nDecember close was *clean*.\n\n<script>alert(1)</script>\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"))

	assert.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Notes</h1>")
	assert.Contains(t, string(html), "<em>clean</em>")
	assert.Contains(t, string(html), "<table>")
	assert.NotContains(t, string(html), "<script>")
}

func TestSalesTrend(t *testing.T) {
	growing := salesTrend(dec(200000), dec(600000))
	assert.Equal(t, "+33.3%", Change(growing))
	assert.Equal(t, domain.StatusGreen, domain.TrendStatus(growing.Change.InexactFloat64()))

	declining := salesTrend(dec(50000), dec(400000))
	assert.Equal(t, "-50.0%", Change(declining))
	assert.Equal(t, domain.StatusRed, domain.TrendStatus(declining.Change.InexactFloat64()))

	assert.False(t, salesTrend(dec(100), decimal.Zero).Defined)
}
