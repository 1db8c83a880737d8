package amortization

import (
	"errors"
	"math"
	"time"

	"refi-compare/domain"
)

// ErrDoesNotAmortize is reported when the payment never retires the balance
// within the safety cap.
var ErrDoesNotAmortize = errors.New("payment does not amortize the loan within the horizon")

// MaxIterationsFactor bounds the month loop at this many times the term.
const MaxIterationsFactor = 2

// Simulate walks the loan month by month from its start date and reports the
// outcome relative to asOf. For a loan that has already started the interest,
// extra payment and total paid figures cover only the months after asOf; for
// a loan that starts this month or later they cover the whole life.
//
// When the configured payment cannot retire the balance before the safety cap
// the result has Amortizes set to false, a zero PayoffDate, and figures
// truncated at the cap.
func Simulate(spec domain.LoanSpec, asOf time.Time) domain.SimulationResult {
	start := spec.StartDate.Time
	monthlyRate := spec.AnnualRatePercent / 100 / 12
	horizon := spec.TermYears * 12
	elapsed := clampMonths(MonthsBetween(start, asOf), horizon)
	pi := spec.PrincipalAndInterest()

	balance := math.Max(spec.Principal, 0)
	if balance == 0 {
		return domain.SimulationResult{
			PayoffDate:    spec.StartDate,
			MonthsElapsed: elapsed,
			Amortizes:     true,
		}
	}

	if elapsed == 0 && spec.OneTimePayment > 0 {
		balance = math.Max(balance-spec.OneTimePayment, 0)
		if balance == 0 {
			return domain.SimulationResult{
				TotalAmountPaid:  spec.Principal,
				PayoffDate:       spec.StartDate,
				RemainingBalance: spec.Principal,
				Amortizes:        true,
			}
		}
	}

	var (
		totalInterest, totalExtra   float64
		futureInterest, futureExtra float64
		todayBalance                float64
		month                       int
		paidOff                     bool
	)

	maxMonths := MaxIterationsFactor * horizon
	for month < maxMonths {
		month++

		if elapsed > 0 && month == elapsed && spec.OneTimePayment > 0 {
			balance = math.Max(balance-spec.OneTimePayment, 0)
			if balance == 0 {
				paidOff = true
				break
			}
		}

		interest := balance * monthlyRate
		principalPortion := pi - interest

		extra := 0.0
		if elapsed == 0 || month <= elapsed || spec.ContinueExtraPayments {
			extra = spec.ExtraPayment
		}
		totalPrincipal := principalPortion + extra

		if totalPrincipal+BalanceTolerance >= balance {
			neededExtra := math.Min(math.Max(balance-principalPortion, 0), extra)
			totalInterest += interest
			totalExtra += neededExtra
			if month > elapsed {
				futureInterest += interest
				futureExtra += neededExtra
			}
			balance = 0
			paidOff = true
			break
		}

		// Interest the payment does not cover is not capitalized, so the
		// balance never grows.
		balance -= math.Max(totalPrincipal, 0)
		totalInterest += interest
		totalExtra += extra
		if month > elapsed {
			futureInterest += interest
			futureExtra += extra
		}
		if month == elapsed {
			todayBalance = balance
		}
	}

	if elapsed == 0 {
		todayBalance = spec.Principal
		futureInterest = totalInterest
		futureExtra = totalExtra
	}

	remaining := month
	if elapsed > 0 {
		remaining = max(month-elapsed, 0)
	}

	result := domain.SimulationResult{
		TotalInterestPaid:    futureInterest,
		TotalAmountPaid:      todayBalance + futureInterest,
		TotalExtraPaid:       futureExtra,
		LifetimeInterestPaid: totalInterest,
		MonthsToPayout:       remaining,
		RemainingBalance:     todayBalance,
		MonthsElapsed:        elapsed,
		Amortizes:            paidOff,
	}
	// A truncated walk has no payoff date.
	if paidOff {
		result.PayoffDate = domain.Date{Time: AddMonths(start, month)}
	}
	return result
}

// Check returns ErrDoesNotAmortize for a result that hit the safety cap.
func Check(result domain.SimulationResult) error {
	if !result.Amortizes {
		return ErrDoesNotAmortize
	}
	return nil
}

func clampMonths(months, horizon int) int {
	if months < 0 {
		return 0
	}
	if months > horizon {
		return horizon
	}
	return months
}
