// Package money holds the rounding rules for salary amounts: two decimal
// places, half away from zero, applied only where an amount is derived.
package money

import "github.com/shopspring/decimal"

const Places = 2

var twelve = decimal.NewFromInt(12)

// Round rounds d to two places, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Annualize returns round(monthly * 12, 2).
func Annualize(monthly decimal.Decimal) decimal.Decimal {
	return Round(monthly.Mul(twelve))
}

// MonthlyShare returns round(annual * ratio / 12, 2). Multiplying first
// keeps the quotient exact when it ends on a half cent.
func MonthlyShare(annual, ratio decimal.Decimal) decimal.Decimal {
	return Round(annual.Mul(ratio).Div(twelve))
}

// MonthlyPercent returns round(annual * pct / 1200, 2), the monthly value of
// pct percent of an annual figure.
func MonthlyPercent(annual, pct decimal.Decimal) decimal.Decimal {
	return Round(annual.Mul(pct).Div(decimal.NewFromInt(1200)))
}

// Percent returns round(base * pct / 100, 2).
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return Round(base.Mul(pct).Div(decimal.NewFromInt(100)))
}

// Sum adds amounts and rounds the result.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Round(total)
}
