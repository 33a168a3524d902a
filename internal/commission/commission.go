// Package commission holds the platform's cut of every settled payment.
// Callers must go through these functions rather than applying Rate inline.
package commission

import "math"

// Rate is the platform commission on a settled amount.
const Rate = 0.05

// Of returns the commission on x, rounded to the nearest FCFA.
func Of(x float64) float64 {
	return math.Round(x * Rate)
}

// Net returns what is left of x after the rounded commission.
func Net(x float64) float64 {
	return x - Of(x)
}

// Share returns the unrounded commission on x, used for revenue summaries.
func Share(x float64) float64 {
	return x * Rate
}

// ChargeFor returns the amount charged to a tenant for a booking total:
// the total inflated by its commission.
func ChargeFor(total float64) float64 {
	return total + Of(total)
}

// OwnerNet returns the owner's part of a charged amount.
func OwnerNet(amount float64) float64 {
	return amount - Share(amount)
}
