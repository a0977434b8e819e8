package deriving

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMargin(t *testing.T) {
	assert.Equal(t, "55", Margin(d("550000"), d("1000000")).String())
	assert.Equal(t, "33.33", Margin(d("1"), d("3")).String())
	assert.Equal(t, "-12.5", Margin(d("-125"), d("1000")).String())
	assert.True(t, Margin(d("100"), decimal.Zero).IsZero())
}

func TestWorkingCapitalRatios(t *testing.T) {
	tests := []struct {
		name               string
		ar, inv, ap        string
		revenue, cogs      string
		dso, dio, dpo, ccc string
		nwc                string
	}{
		{
			name: "reference month",
			ar:   "300000", inv: "405000", ap: "135000",
			revenue: "1000000", cogs: "450000",
			dso: "9", dio: "27", dpo: "9", ccc: "27", nwc: "570000",
		},
		{
			name: "zero revenue and cogs",
			ar:   "300000", inv: "405000", ap: "135000",
			revenue: "0", cogs: "0",
			dso: "0", dio: "0", dpo: "0", ccc: "0", nwc: "570000",
		},
		{
			name: "payables outrun receivables",
			ar:   "10000", inv: "20000", ap: "90000",
			revenue: "100000", cogs: "60000",
			dso: "3", dio: "10", dpo: "45", ccc: "-32", nwc: "-60000",
		},
		{
			name: "repeating fractions",
			ar:   "100", inv: "100", ap: "100",
			revenue: "700", cogs: "900",
			dso: "4.29", dio: "3.33", dpo: "3.33", ccc: "4.29", nwc: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dso := DSO(d(tt.ar), d(tt.revenue))
			dio := DIO(d(tt.inv), d(tt.cogs))
			dpo := DPO(d(tt.ap), d(tt.cogs))
			ccc := CCC(dso, dio, dpo)

			assert.Equal(t, tt.dso, dso.String())
			assert.Equal(t, tt.dio, dio.String())
			assert.Equal(t, tt.dpo, dpo.String())
			assert.Equal(t, tt.ccc, ccc.String())
			assert.True(t, ccc.Equal(dso.Add(dio).Sub(dpo)))
			assert.Equal(t, tt.nwc, NWC(d(tt.ar), d(tt.inv), d(tt.ap)).String())
		})
	}
}

func TestDayRatiosNonNegative(t *testing.T) {
	values := []string{"0", "1", "999.99", "30000", "1250000"}
	for _, balance := range values {
		for _, flow := range values {
			assert.False(t, DSO(d(balance), d(flow)).IsNegative(), "%s/%s", balance, flow)
			assert.False(t, DIO(d(balance), d(flow)).IsNegative(), "%s/%s", balance, flow)
			assert.False(t, DPO(d(balance), d(flow)).IsNegative(), "%s/%s", balance, flow)
		}
	}
}
