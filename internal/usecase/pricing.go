package usecase

import (
	"math"
	"time"
)

// StayMonths returns the number of billed months between start and end:
// every started block of 30 days counts, with a minimum of one.
func StayMonths(start, end time.Time) int {
	days := math.Ceil(end.Sub(start).Hours() / 24)
	months := int(math.Ceil(days / 30))
	if months < 1 {
		return 1
	}
	return months
}

// StayTotal is the rent due for the stay at a monthly price.
func StayTotal(price float64, start, end time.Time) float64 {
	return price * float64(StayMonths(start, end))
}
