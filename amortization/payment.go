// Package amortization is the pure calculation core: the level-payment
// formula, the month-by-month balance simulation, the bisection rate solver
// and the original-versus-refinance comparison. Nothing here does I/O.
package amortization

import (
	"math"
	"time"
)

// BalanceTolerance absorbs the floating-point residue the payment formula
// leaves in the final month. It is far below a cent.
const BalanceTolerance = 1e-6

// MonthlyPayment returns the level principal-and-interest payment
// M = P * r(1+r)^n / ((1+r)^n - 1), with M = P/n when the rate is zero.
func MonthlyPayment(principal float64, termYears int, annualRatePercent float64) float64 {
	n := termYears * 12
	if n <= 0 || principal <= 0 {
		return 0
	}
	return levelPayment(principal, n, annualRatePercent/100/12)
}

func levelPayment(principal float64, n int, monthlyRate float64) float64 {
	if monthlyRate == 0 {
		return principal / float64(n)
	}
	factor := math.Pow(1+monthlyRate, float64(n))
	return principal * (monthlyRate * factor) / (factor - 1)
}

// TotalInterest is the interest paid over the full term at the level payment.
func TotalInterest(principal float64, termYears int, annualRatePercent float64) float64 {
	return MonthlyPayment(principal, termYears, annualRatePercent)*float64(termYears*12) - principal
}

// MonthsBetween counts whole calendar months from start to asOf, ignoring
// the day of month. It is negative when asOf is before start.
func MonthsBetween(start, asOf time.Time) int {
	return (asOf.Year()-start.Year())*12 + int(asOf.Month()) - int(start.Month())
}

// AddMonths behaves like a spreadsheet EDATE: the day is clamped to the end
// of the target month instead of rolling over into the next one.
func AddMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
