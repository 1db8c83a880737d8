package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"refi-compare/amortization"
	"refi-compare/domain"
	"refi-compare/repository"
)

// ErrSnapshotNotFound is returned when no loan pair has been saved.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore persists the original/proposed loan pair.
type SnapshotStore interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snap domain.Snapshot) error
	Delete(ctx context.Context) error
}

// Explainer turns a comparison into a short narrative for the user.
type Explainer interface {
	ExplainComparison(ctx context.Context, original, proposed domain.LoanSpec, result domain.ComparisonResult) string
}

type LoanService struct {
	snapshots SnapshotStore
	explainer Explainer
	goal      float64
	now       func() time.Time
}

// NewLoanService creates a LoanService. explainer may be nil.
func NewLoanService(
	snapshots SnapshotStore,
	explainer Explainer,
	interestReductionGoal float64,
) *LoanService {
	if interestReductionGoal <= 0 || interestReductionGoal >= 1 {
		interestReductionGoal = amortization.DefaultInterestReductionGoal
	}
	return &LoanService{
		snapshots: snapshots,
		explainer: explainer,
		goal:      interestReductionGoal,
		now:       time.Now,
	}
}

// WithClock replaces the source of "today".
func (s *LoanService) WithClock(now func() time.Time) *LoanService {
	s.now = now
	return s
}

func (s *LoanService) today() time.Time {
	return domain.DateOf(s.now()).Time
}

// Simulate runs the balance walk for one loan as of today.
func (s *LoanService) Simulate(spec domain.LoanSpec) (domain.SimulationResult, error) {
	if err := validateLoan("loan", spec); err != nil {
		return domain.SimulationResult{}, err
	}

	result := amortization.Simulate(spec, s.today())
	if err := amortization.Check(result); err != nil {
		log.Printf("Warning: %v (principal $%.2f, payment $%.2f)", err, spec.Principal, spec.MonthlyPayment)
	}

	return roundSimulation(result), nil
}

// Compare simulates the existing and proposed loans and derives the
// refinance metrics.
func (s *LoanService) Compare(
	ctx context.Context,
	original domain.LoanSpec,
	proposed domain.LoanSpec,
) (domain.ComparisonResult, error) {
	if err := validateLoan("original", original); err != nil {
		return domain.ComparisonResult{}, err
	}
	if err := validateLoan("proposed", proposed); err != nil {
		return domain.ComparisonResult{}, err
	}

	result := amortization.CompareWithGoal(original, proposed, s.today(), s.goal)
	if !result.Original.Amortizes || !result.Proposed.Amortizes {
		log.Printf("Warning: comparison includes a loan that does not amortize (original=%t proposed=%t)",
			result.Original.Amortizes, result.Proposed.Amortizes)
	}

	result = roundComparison(result)
	if s.explainer != nil {
		result.Explanation = s.explainer.ExplainComparison(ctx, original, proposed, result)
	}
	return result, nil
}

// MonthlyPayment previews the level principal-and-interest payment.
func (s *LoanService) MonthlyPayment(input domain.PaymentInput) (domain.PaymentResult, error) {
	if input.Principal <= 0 {
		return domain.PaymentResult{}, invalid("principal must be positive")
	}
	if input.Principal > MaxLoanAmount {
		return domain.PaymentResult{}, invalid("principal exceeds the maximum of $%.2f", MaxLoanAmount)
	}
	if err := validateTermAndRate("loan", input.TermYears, input.AnnualRatePercent); err != nil {
		return domain.PaymentResult{}, err
	}

	payment := amortization.MonthlyPayment(input.Principal, input.TermYears, input.AnnualRatePercent)
	total := payment * float64(input.TermYears*12)

	return domain.PaymentResult{
		MonthlyPayment: roundCents(payment),
		TotalPayment:   roundCents(total),
		TotalInterest:  roundCents(total - input.Principal),
	}, nil
}

// SolveRate finds the annual rate that meets exactly one of the targets in
// input.
func (s *LoanService) SolveRate(input domain.RateSolveInput) (domain.RateSolveResult, error) {
	if input.LoanAmount <= 0 {
		return domain.RateSolveResult{}, invalid("loan amount must be positive")
	}
	if input.LoanAmount > MaxLoanAmount {
		return domain.RateSolveResult{}, invalid("loan amount exceeds the maximum of $%.2f", MaxLoanAmount)
	}
	if input.TermYears < MinTermYears || input.TermYears > MaxTermYears {
		return domain.RateSolveResult{}, invalid("term must be between %d and %d years", MinTermYears, MaxTermYears)
	}
	hasPayment := input.TargetMonthlyPayment > 0
	hasCost := input.TargetTotalCost > 0
	if hasPayment == hasCost {
		return domain.RateSolveResult{}, invalid("exactly one of target_monthly_payment and target_total_cost is required")
	}
	if input.TargetMonthlyPayment < 0 || input.TargetTotalCost < 0 {
		return domain.RateSolveResult{}, invalid("targets must not be negative")
	}

	var rate float64
	if hasPayment {
		rate = amortization.SolveRateForTargetPayment(input.LoanAmount, input.TermYears, input.TargetMonthlyPayment)
	} else {
		rate = amortization.SolveRateForTargetInterest(input.LoanAmount, input.TermYears, input.TargetTotalCost)
	}

	payment := amortization.MonthlyPayment(input.LoanAmount, input.TermYears, rate)
	return domain.RateSolveResult{
		AnnualRatePercent: roundRate(rate),
		MonthlyPayment:    roundCents(payment),
		TotalInterest:     roundCents(payment*float64(input.TermYears*12) - input.LoanAmount),
	}, nil
}

func (s *LoanService) SaveSnapshot(ctx context.Context, snap domain.Snapshot) error {
	if err := validateLoan("original", snap.Original); err != nil {
		return err
	}
	if err := validateLoan("proposed", snap.Proposed); err != nil {
		return err
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *LoanService) LoadSnapshot(ctx context.Context) (domain.Snapshot, error) {
	snap, err := s.snapshots.Load(ctx)
	if errors.Is(err, repository.ErrCacheMiss) {
		return domain.Snapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

func (s *LoanService) DeleteSnapshot(ctx context.Context) error {
	if err := s.snapshots.Delete(ctx); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// SyncProposedPrincipal sets the saved proposed loan's principal to the
// original loan's balance as of today and saves the result. Callers run it
// after every change to the original loan.
func (s *LoanService) SyncProposedPrincipal(ctx context.Context) (domain.Snapshot, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	original := amortization.Simulate(snap.Original, s.today())
	snap.Proposed.Principal = roundCents(original.RemainingBalance)

	if err := s.SaveSnapshot(ctx, snap); err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}
