package presenting

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	usd          = money.GetCurrency(money.USD)
	wholeDollars = money.NewFormatter(0, usd.Decimal, usd.Thousand, usd.Grapheme, usd.Template)
	printer      = message.NewPrinter(language.English)

	thousand = decimal.NewFromInt(1000)
)

const notAvailable = "N/A"

// Currency renders whole dollars, "$1,000,000" or "-$20,000".
func Currency(v decimal.Decimal) string {
	amount := v.Round(0).IntPart()
	if amount < 0 {
		return "-" + wholeDollars.Format(-amount)
	}
	return wholeDollars.Format(amount)
}

// Percent renders one decimal place, "55.0%".
func Percent(v decimal.Decimal) string {
	return printer.Sprintf("%.1f%%", v.Round(1).InexactFloat64())
}

func Days(v decimal.Decimal) string {
	return printer.Sprintf("%.0f days", v.Round(0).InexactFloat64())
}

func Count(n int) string {
	return printer.Sprintf("%d", n)
}

func Decimal(v decimal.Decimal) string {
	return printer.Sprintf("%.1f", v.Round(1).InexactFloat64())
}

func signed(v decimal.Decimal) string {
	v = v.Round(1)
	s := printer.Sprintf("%.1f", v.InexactFloat64())
	if !v.IsNegative() {
		s = "+" + s
	}
	return s
}

// Change renders a variance as "+5.2%" or "-0.4 pts". Undefined variances
// and swings of a thousand percent or more render N/A.
func Change(v Variance) string {
	switch {
	case !v.Defined:
		return notAvailable
	case v.Points:
		return signed(v.Change) + " pts"
	case v.Change.Abs().GreaterThanOrEqual(thousand):
		return notAvailable
	default:
		return signed(v.Change) + "%"
	}
}

// Average renders the comparison base in the unit of the metric.
func Average(v Variance) string {
	if v.Months == 0 {
		return notAvailable
	}
	if v.Points {
		return Percent(v.Average)
	}
	return Currency(v.Average)
}
