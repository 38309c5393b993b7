package pipeline

import "github.com/shopspring/decimal"

// Rounding is half away from zero everywhere: 2.5 -> 3, 0.25 -> 0.3.

// ratio returns num/den as a decimal, or zero when den is zero.
func ratio(num, den int64) decimal.Decimal {
	if den == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(num).Div(decimal.NewFromInt(den))
}

// percent returns num*100/den rounded to one decimal.
func percent(num, den int64) float64 {
	f, _ := ratio(num*100, den).Round(1).Float64()
	return f
}

// round1 rounds a ratio to one decimal.
func round1(num, den int64) float64 {
	f, _ := ratio(num, den).Round(1).Float64()
	return f
}

// formatOneDecimal renders a value the way the statistics table shows it,
// always with one decimal place.
func formatOneDecimal(f float64) string {
	return decimal.NewFromFloat(f).StringFixed(1)
}
