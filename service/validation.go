package service

import (
	"errors"
	"fmt"

	"refi-compare/domain"
)

// ErrInvalidInput wraps every validation failure so handlers can map it to
// a client error.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateLoan(label string, l domain.LoanSpec) error {
	if l.Principal < 0 {
		return invalid("%s principal must not be negative", label)
	}
	if l.Principal > MaxLoanAmount {
		return invalid("%s principal exceeds the maximum of $%.2f", label, MaxLoanAmount)
	}
	if err := validateTermAndRate(label, l.TermYears, l.AnnualRatePercent); err != nil {
		return err
	}
	if l.StartDate.IsZero() {
		return invalid("%s start date is required", label)
	}
	if l.Escrow < 0 || l.ExtraPayment < 0 || l.OneTimePayment < 0 || l.ClosingCosts < 0 {
		return invalid("%s escrow, extra payment, one-time payment and closing costs must not be negative", label)
	}
	if l.MonthlyPayment < l.Escrow {
		return invalid("%s monthly payment ($%.2f) must cover escrow ($%.2f)", label, l.MonthlyPayment, l.Escrow)
	}
	return nil
}

func validateTermAndRate(label string, termYears int, rate float64) error {
	if termYears < MinTermYears || termYears > MaxTermYears {
		return invalid("%s term must be between %d and %d years", label, MinTermYears, MaxTermYears)
	}
	if rate < 0 {
		return invalid("%s interest rate must not be negative", label)
	}
	if rate > MaxInterestRate {
		return invalid("%s interest rate exceeds the maximum of %.2f%%", label, MaxInterestRate)
	}
	return nil
}
