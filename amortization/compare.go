package amortization

import (
	"math"
	"time"

	"refi-compare/domain"
)

// DefaultInterestReductionGoal is the share of the original loan's interest
// the suggested rate aims to cut.
const DefaultInterestReductionGoal = 0.20

// Compare simulates both loans as of the same day and derives the refinance
// metrics, suggesting a rate that cuts the original interest by the default
// goal.
func Compare(original, proposed domain.LoanSpec, asOf time.Time) domain.ComparisonResult {
	return CompareWithGoal(original, proposed, asOf, DefaultInterestReductionGoal)
}

// CompareWithGoal is Compare with an explicit interest reduction goal in (0, 1).
func CompareWithGoal(original, proposed domain.LoanSpec, asOf time.Time, goal float64) domain.ComparisonResult {
	orig := Simulate(original, asOf)
	prop := Simulate(proposed, asOf)

	paymentDelta := proposed.MonthlyPayment - original.MonthlyPayment
	totalCostWithClosing := prop.TotalAmountPaid + proposed.ClosingCosts

	targetInterest := orig.TotalInterestPaid * (1 - goal)
	suggested := SolveRateForTargetInterest(proposed.Principal, proposed.TermYears, proposed.Principal+targetInterest)

	return domain.ComparisonResult{
		Original:             orig,
		Proposed:             prop,
		PaymentDelta:         paymentDelta,
		InterestDelta:        prop.TotalInterestPaid - orig.TotalInterestPaid,
		TotalPaidDelta:       prop.TotalAmountPaid - orig.TotalAmountPaid,
		TotalCostWithClosing: totalCostWithClosing,
		NetSavings:           orig.TotalAmountPaid - totalCostWithClosing,
		BreakEvenMonths:      BreakEvenMonths(proposed.ClosingCosts, paymentDelta),
		TargetInterest:       targetInterest,
		SuggestedRate:        suggested,
	}
}

// BreakEvenMonths is the number of months of payment savings needed to
// recover closing costs. It is zero unless there are closing costs and the
// new payment is lower.
func BreakEvenMonths(closingCosts, paymentDelta float64) int {
	if closingCosts <= 0 || paymentDelta >= 0 {
		return 0
	}
	return int(math.Ceil(closingCosts / math.Abs(paymentDelta)))
}
