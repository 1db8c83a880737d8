package amortization

import "math"

const (
	solverMinRate      = 0.0
	solverMaxRate      = 20.0
	solverMaxIter      = 100
	solverBracketWidth = 0.0001

	// InterestTolerance and PaymentTolerance are the absolute currency
	// distances at which a candidate rate is accepted.
	InterestTolerance = 10.0
	PaymentTolerance  = 0.01
)

// SolveRateForTargetInterest returns the annual rate (percent) at which a
// level-payment loan of loanAmount over termYears costs targetTotalCost in
// principal plus interest. A target below the principal yields zero.
func SolveRateForTargetInterest(loanAmount float64, termYears int, targetTotalCost float64) float64 {
	if targetTotalCost < loanAmount {
		return 0
	}
	n := float64(termYears * 12)
	targetInterest := targetTotalCost - loanAmount
	return bisect(func(rate float64) float64 {
		return MonthlyPayment(loanAmount, termYears, rate)*n - loanAmount
	}, targetInterest, InterestTolerance)
}

// SolveRateForTargetPayment returns the annual rate (percent) whose level
// payment for loanAmount over termYears is targetMonthlyPayment.
func SolveRateForTargetPayment(loanAmount float64, termYears int, targetMonthlyPayment float64) float64 {
	return bisect(func(rate float64) float64 {
		return MonthlyPayment(loanAmount, termYears, rate)
	}, targetMonthlyPayment, PaymentTolerance)
}

// bisect searches [solverMinRate, solverMaxRate] for the rate where the
// increasing function f reaches target. It returns the last midpoint when the
// iteration budget runs out before the tolerance is met.
func bisect(f func(rate float64) float64, target, tolerance float64) float64 {
	low, high := solverMinRate, solverMaxRate
	mid := (low + high) / 2

	for iter := 0; iter < solverMaxIter && high-low > solverBracketWidth; iter++ {
		mid = (low + high) / 2
		value := f(mid)

		if math.Abs(value-target) <= tolerance {
			return mid
		}
		if value < target {
			low = mid
		} else {
			high = mid
		}
	}

	return mid
}
