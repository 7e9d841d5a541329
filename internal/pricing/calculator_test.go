package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTotalAppliesMonthlyDiscount(t *testing.T) {
	// 40 days at 1000/day with a 10% monthly discount: 40000 - 4000.
	assert.Equal(t, int64(36000), Total(40, 1000, 10))
}

func TestTotalShortStayHasNoDiscount(t *testing.T) {
	assert.Equal(t, int64(2000), Total(2, 1000, 10))
}

func TestTotalThresholdBoundary(t *testing.T) {
	// 27 days stays full price, 28 earns the discount.
	assert.Equal(t, int64(27000), Total(27, 1000, 10))
	assert.Equal(t, int64(25200), Total(28, 1000, 10))
}

func TestTotalFloorsOnInexactDivision(t *testing.T) {
	// 29 * 999 = 28971; 15% of that is 4345.65 -> floor to 4345.
	assert.Equal(t, int64(28971-4345), Total(29, 999, 15))
}

func TestTotalZeroDiscount(t *testing.T) {
	assert.Equal(t, int64(30000), Total(30, 1000, 0))
}

func TestDaysInclusiveCount(t *testing.T) {
	date := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("parse %s: %v", s, err)
		}
		return d
	}
	assert.Equal(t, 2, Days(date("2024-03-01"), date("2024-03-02")))
	assert.Equal(t, 31, Days(date("2024-03-01"), date("2024-03-31")))
	// Across a month boundary and a leap day.
	assert.Equal(t, 30, Days(date("2024-02-15"), date("2024-03-15")))
}
