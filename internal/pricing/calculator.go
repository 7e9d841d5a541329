// Package pricing computes reservation totals. It is pure arithmetic with
// no store or clock dependency so the discount rules can be tested in
// isolation.
package pricing

import "time"

// MonthlyThresholdDays is the minimum stay length, in days, that earns
// the office's monthly discount.
const MonthlyThresholdDays = 28

// Days returns the inclusive day count of a calendar range: whole days
// between the start and end dates plus one. Both arguments are expected
// to be date-only values (midnight UTC); any time-of-day component is
// truncated first.
func Days(start, end time.Time) int {
	s := start.UTC().Truncate(24 * time.Hour)
	e := end.UTC().Truncate(24 * time.Hour)
	return int(e.Sub(s).Hours()/24) + 1
}

// Total computes the price of a stay. The base price is days times the
// daily rate; stays of MonthlyThresholdDays or more are discounted by
// monthlyDiscount percent. All arithmetic is integer and the discount
// floors toward zero, so totals never gain fractional currency units.
func Total(days int, pricePerDay, monthlyDiscount int64) int64 {
	price := int64(days) * pricePerDay
	if days >= MonthlyThresholdDays {
		price -= price * monthlyDiscount / 100
	}
	return price
}
