package deriving

import (
	"github.com/shopspring/decimal"

	"github.com/durabrake/financial-dashboard/pkg/utils"
)

// DaysInMonth is the fixed month length used by every day-based ratio,
// whatever the calendar length of the reporting month.
const DaysInMonth = 30

var daysInMonth = decimal.NewFromInt(DaysInMonth)

// Margin is numerator as a percent of revenue, zero when revenue is zero.
func Margin(numerator, revenue decimal.Decimal) decimal.Decimal {
	return utils.Percent(numerator, revenue)
}

func NWC(ar, inventory, ap decimal.Decimal) decimal.Decimal {
	return ar.Add(inventory).Sub(ap)
}

func DSO(ar, revenue decimal.Decimal) decimal.Decimal {
	return days(ar, revenue)
}

func DIO(inventory, cogs decimal.Decimal) decimal.Decimal {
	return days(inventory, cogs)
}

func DPO(ap, cogs decimal.Decimal) decimal.Decimal {
	return days(ap, cogs)
}

// CCC is computed from the already rounded day ratios so that the stored
// values satisfy CCC = DSO + DIO - DPO exactly.
func CCC(dso, dio, dpo decimal.Decimal) decimal.Decimal {
	return dso.Add(dio).Sub(dpo)
}

func days(balance, flow decimal.Decimal) decimal.Decimal {
	return utils.SafeDiv(balance, flow).Mul(daysInMonth).Round(2)
}
