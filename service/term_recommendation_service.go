package service

import (
	"context"
	"sort"

	"refi-compare/amortization"
	"refi-compare/domain"
)

type TermExplainer interface {
	ExplainTerm(ctx context.Context, input domain.TermRecommendationInput, top domain.TermRecommendation, alternatives []domain.TermRecommendation) string
}

type TermRecommendationService struct {
	loanService *LoanService
	explainer   TermExplainer
}

// NewTermRecommendationService creates the service. explainer may be nil.
func NewTermRecommendationService(loanService *LoanService, explainer TermExplainer) *TermRecommendationService {
	return &TermRecommendationService{
		loanService: loanService,
		explainer:   explainer,
	}
}

// RecommendTerm evaluates every whole-year term in the requested range for a
// new loan starting today and ranks the affordable ones by preference.
func (s *TermRecommendationService) RecommendTerm(
	ctx context.Context,
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {
	if input.Principal <= 0 {
		return domain.TermRecommendationResult{}, invalid("principal must be positive")
	}
	if input.Principal > MaxLoanAmount {
		return domain.TermRecommendationResult{}, invalid("principal exceeds the maximum of $%.2f", MaxLoanAmount)
	}
	if err := validateTermAndRate("minimum", input.MinTermYears, input.AnnualRatePercent); err != nil {
		return domain.TermRecommendationResult{}, err
	}
	if err := validateTermAndRate("maximum", input.MaxTermYears, input.AnnualRatePercent); err != nil {
		return domain.TermRecommendationResult{}, err
	}
	if input.MinTermYears > input.MaxTermYears {
		return domain.TermRecommendationResult{}, invalid("minimum term is greater than maximum term")
	}
	if input.MaxTermYears-input.MinTermYears > MaxTermRangeYears {
		return domain.TermRecommendationResult{}, invalid("term range exceeds %d years", MaxTermRangeYears)
	}
	if input.MaxMonthlyPayment <= 0 {
		return domain.TermRecommendationResult{}, invalid("maximum monthly payment must be positive")
	}
	if !validPreferences[input.Preference] {
		return domain.TermRecommendationResult{}, invalid("unknown preference %q", input.Preference)
	}

	today := s.loanService.today()
	recommendations := []domain.TermRecommendation{}

	for term := input.MinTermYears; term <= input.MaxTermYears; term++ {
		payment := amortization.MonthlyPayment(input.Principal, term, input.AnnualRatePercent)
		if payment > input.MaxMonthlyPayment {
			continue
		}

		sim := amortization.Simulate(domain.LoanSpec{
			Principal:         input.Principal,
			TermYears:         term,
			AnnualRatePercent: input.AnnualRatePercent,
			StartDate:         domain.DateOf(today),
			MonthlyPayment:    payment,
		}, today)

		rec := domain.TermRecommendation{
			TermYears:      term,
			MonthlyPayment: roundCents(payment),
			TotalInterest:  roundCents(sim.TotalInterestPaid),
			PayoffDate:     sim.PayoffDate,
		}
		rec.Score = s.calculateScore(rec, input)
		rec.Reason = generateReason(input.Preference)
		recommendations = append(recommendations, rec)
	}

	if len(recommendations) == 0 {
		return domain.TermRecommendationResult{}, invalid("no term in the range fits the maximum monthly payment")
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	maxAlternatives := 3
	alternatives := recommendations[1:min(len(recommendations), maxAlternatives+1)]
	if s.explainer != nil {
		recommendations[0].Reason = s.explainer.ExplainTerm(ctx, input, recommendations[0], alternatives)
	}

	return domain.TermRecommendationResult{
		RecommendedTermYears: recommendations[0].TermYears,
		Recommendations:      recommendations,
	}, nil
}

// calculateScore rates a term from 0 to 10 by mixing how close it is to the
// cheapest interest, the lowest payment and the shortest term in the range.
func (s *TermRecommendationService) calculateScore(
	rec domain.TermRecommendation,
	input domain.TermRecommendationInput,
) float64 {
	minInterest := amortization.TotalInterest(input.Principal, input.MinTermYears, input.AnnualRatePercent)
	maxInterest := amortization.TotalInterest(input.Principal, input.MaxTermYears, input.AnnualRatePercent)
	minPayment := amortization.MonthlyPayment(input.Principal, input.MaxTermYears, input.AnnualRatePercent)

	interestRange := maxInterest - minInterest
	paymentRange := input.MaxMonthlyPayment - minPayment
	termRange := float64(input.MaxTermYears - input.MinTermYears)

	interestScore := 10.0
	paymentScore := 10.0
	termScore := 10.0

	if interestRange > 0 {
		interestScore = 10.0 * (1.0 - (rec.TotalInterest-minInterest)/interestRange)
	}
	if paymentRange > 0 {
		paymentScore = 10.0 * (1.0 - (rec.MonthlyPayment-minPayment)/paymentRange)
	}
	if termRange > 0 {
		termScore = 10.0 * (1.0 - float64(rec.TermYears-input.MinTermYears)/termRange)
	}

	var score float64
	switch input.Preference {
	case "minimize_interest":
		score = 0.6*interestScore + 0.2*paymentScore + 0.2*termScore
	case "minimize_payment":
		score = 0.2*interestScore + 0.6*paymentScore + 0.2*termScore
	case "balanced":
		score = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
	}

	return roundCents(clampScore(score))
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

func generateReason(preference string) string {
	switch preference {
	case "minimize_interest":
		return "Term chosen to minimize total interest"
	case "minimize_payment":
		return "Term chosen to minimize the monthly payment"
	case "balanced":
		return "Balance between monthly payment and total interest"
	}
	return "Recommendation based on the provided parameters"
}
