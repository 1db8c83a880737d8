package domain

// LoanSpec describes one mortgage. MonthlyPayment is the full contractual
// payment including escrow.
type LoanSpec struct {
	Principal             float64 `json:"principal"`
	TermYears             int     `json:"term_years"`
	AnnualRatePercent     float64 `json:"annual_rate_percent"`
	StartDate             Date    `json:"start_date"`
	MonthlyPayment        float64 `json:"monthly_payment"`
	Escrow                float64 `json:"escrow"`
	ExtraPayment          float64 `json:"extra_payment"`
	OneTimePayment        float64 `json:"one_time_payment"`
	ClosingCosts          float64 `json:"closing_costs"`
	ContinueExtraPayments bool    `json:"continue_extra_payments"`
}

// PrincipalAndInterest returns the part of the payment that amortizes the loan.
func (l LoanSpec) PrincipalAndInterest() float64 {
	return l.MonthlyPayment - l.Escrow
}

// SimulationResult holds the outcome of one balance walk. When the loan has
// already started the money figures are prospective (from today onward).
type SimulationResult struct {
	TotalInterestPaid    float64 `json:"total_interest_paid"`
	TotalAmountPaid      float64 `json:"total_amount_paid"`
	TotalExtraPaid       float64 `json:"total_extra_paid"`
	LifetimeInterestPaid float64 `json:"lifetime_interest_paid"`
	MonthsToPayout       int     `json:"months_to_payout"`
	PayoffDate           Date    `json:"payoff_date"`
	RemainingBalance     float64 `json:"remaining_balance"`
	MonthsElapsed        int     `json:"months_elapsed"`
	Amortizes            bool    `json:"amortizes"`
}

// ComparisonResult pairs the original and proposed simulations. Deltas are
// proposed minus original, so negative values are savings.
type ComparisonResult struct {
	Original             SimulationResult `json:"original"`
	Proposed             SimulationResult `json:"proposed"`
	PaymentDelta         float64          `json:"payment_delta"`
	InterestDelta        float64          `json:"interest_delta"`
	TotalPaidDelta       float64          `json:"total_paid_delta"`
	TotalCostWithClosing float64          `json:"total_cost_with_closing"`
	NetSavings           float64          `json:"net_savings"`
	BreakEvenMonths      int              `json:"break_even_months"`
	TargetInterest       float64          `json:"target_interest"`
	SuggestedRate        float64          `json:"suggested_rate"`
	Explanation          string           `json:"explanation,omitempty"`
}

// Snapshot is the persisted pair of loan inputs.
type Snapshot struct {
	Original LoanSpec `json:"original"`
	Proposed LoanSpec `json:"proposed"`
}

type PaymentInput struct {
	Principal         float64 `json:"principal"`
	TermYears         int     `json:"term_years"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
}

type PaymentResult struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
}

// RateSolveInput asks for the rate that produces either a target monthly
// payment or a target total cost (principal plus interest). Exactly one
// target must be set.
type RateSolveInput struct {
	LoanAmount           float64 `json:"loan_amount"`
	TermYears            int     `json:"term_years"`
	TargetMonthlyPayment float64 `json:"target_monthly_payment,omitempty"`
	TargetTotalCost      float64 `json:"target_total_cost,omitempty"`
}

type RateSolveResult struct {
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	MonthlyPayment    float64 `json:"monthly_payment"`
	TotalInterest     float64 `json:"total_interest"`
}
