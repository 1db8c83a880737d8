package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"refi-compare/domain"
)

type AIService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
}

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// NewAIService returns a service that only produces fallback text when
// apiKey is empty.
func NewAIService(apiKey, apiURL, model string, timeout time.Duration) *AIService {
	return &AIService{
		apiKey:  apiKey,
		apiURL:  apiURL,
		model:   model,
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ExplainComparison describes whether the refinance pays off.
func (s *AIService) ExplainComparison(
	ctx context.Context,
	original domain.LoanSpec,
	proposed domain.LoanSpec,
	result domain.ComparisonResult,
) string {
	if !s.enabled {
		return s.fallbackComparison(result)
	}

	prompt := fmt.Sprintf(`Explain this mortgage refinance decision to a homeowner.

CURRENT LOAN:
- Balance today: $%.2f
- Rate: %.3f%%, %d-year term, started %s
- Monthly payment: $%.2f (escrow $%.2f)
- Interest still to pay: $%.2f, paid off %s

PROPOSED LOAN:
- Principal: $%.2f
- Rate: %.3f%%, %d-year term
- Monthly payment: $%.2f (escrow $%.2f)
- Closing costs: $%.2f
- Total interest: $%.2f, paid off %s

RESULT:
- Monthly payment change: $%.2f
- Net savings after closing costs: $%.2f
- Break-even: %d months
- Rate needed to cut interest to $%.2f: %.3f%%

Write 3-4 plain sentences: is the refinance worth it, when the closing costs are recovered, and how the suggested rate compares to the offered one.`,
		result.Original.RemainingBalance,
		original.AnnualRatePercent, original.TermYears, original.StartDate,
		original.MonthlyPayment, original.Escrow,
		result.Original.TotalInterestPaid, result.Original.PayoffDate,
		proposed.Principal,
		proposed.AnnualRatePercent, proposed.TermYears,
		proposed.MonthlyPayment, proposed.Escrow,
		proposed.ClosingCosts,
		result.Proposed.TotalInterestPaid, result.Proposed.PayoffDate,
		result.PaymentDelta,
		result.NetSavings,
		result.BreakEvenMonths,
		result.TargetInterest, result.SuggestedRate,
	)

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		log.Printf("Error calling AI service for refinance comparison: %v", err)
		return s.fallbackComparison(result)
	}

	return explanation
}

// ExplainTerm describes why a refinance term was ranked first.
func (s *AIService) ExplainTerm(ctx context.Context, input domain.TermRecommendationInput, top domain.TermRecommendation, alternatives []domain.TermRecommendation) string {
	if !s.enabled {
		return fallbackTermReason(input.Preference, top)
	}

	var alt strings.Builder
	for _, a := range alternatives {
		fmt.Fprintf(&alt, "- %d years: $%.2f/month, $%.2f interest\n", a.TermYears, a.MonthlyPayment, a.TotalInterest)
	}

	prompt := fmt.Sprintf(`A homeowner is refinancing $%.2f at %.3f%% and wants to %s.
The recommended term is %d years: $%.2f/month, $%.2f total interest, paid off %s.
Alternatives:
%s
Explain the recommendation in 2-3 plain sentences.`,
		input.Principal, input.AnnualRatePercent, preferenceText(input.Preference),
		top.TermYears, top.MonthlyPayment, top.TotalInterest, top.PayoffDate,
		alt.String())

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		log.Printf("Error calling AI service for term recommendation: %v", err)
		return fallbackTermReason(input.Preference, top)
	}
	return explanation
}

func (s *AIService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: s.model,
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a mortgage advisor. You explain refinance numbers clearly and conservatively, quote the figures you are given, and never invent rates or fees.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	return strings.TrimSpace(openAIResp.Choices[0].Message.Content), nil
}

func (s *AIService) fallbackComparison(result domain.ComparisonResult) string {
	var b strings.Builder

	switch {
	case result.PaymentDelta < 0:
		fmt.Fprintf(&b, "The new loan lowers your monthly payment by $%.2f.", -result.PaymentDelta)
	case result.PaymentDelta > 0:
		fmt.Fprintf(&b, "The new loan raises your monthly payment by $%.2f.", result.PaymentDelta)
	default:
		b.WriteString("The new loan keeps your monthly payment the same.")
	}

	if result.BreakEvenMonths > 0 {
		fmt.Fprintf(&b, " Closing costs are recovered after %d months.", result.BreakEvenMonths)
	}

	if result.NetSavings > 0 {
		fmt.Fprintf(&b, " Over the life of the loan you save $%.2f after closing costs.", result.NetSavings)
	} else {
		fmt.Fprintf(&b, " Over the life of the loan the refinance costs $%.2f more, including closing costs.", -result.NetSavings)
	}

	if !result.Original.Amortizes || !result.Proposed.Amortizes {
		b.WriteString(" At least one payment is too small to pay off its loan, so the totals are incomplete.")
	}

	fmt.Fprintf(&b, " A rate near %.3f%% would cut the remaining interest to about $%.2f.",
		result.SuggestedRate, result.TargetInterest)

	return b.String()
}

func preferenceText(preference string) string {
	switch preference {
	case "minimize_interest":
		return "minimize total interest"
	case "minimize_payment":
		return "minimize the monthly payment"
	default:
		return "balance the monthly payment against total interest"
	}
}

func fallbackTermReason(preference string, top domain.TermRecommendation) string {
	switch preference {
	case "minimize_interest":
		return fmt.Sprintf("A %d-year term keeps total interest to $%.2f while staying within your payment limit at $%.2f a month.",
			top.TermYears, top.TotalInterest, top.MonthlyPayment)
	case "minimize_payment":
		return fmt.Sprintf("A %d-year term brings the payment down to $%.2f a month, leaving the most room in your budget.",
			top.TermYears, top.MonthlyPayment)
	default:
		return fmt.Sprintf("A %d-year term balances a $%.2f monthly payment against $%.2f of total interest.",
			top.TermYears, top.MonthlyPayment, top.TotalInterest)
	}
}
