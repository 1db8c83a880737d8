package service

const (
	MaxLoanAmount   = 1_000_000_000.0
	MaxInterestRate = 100.0 // percent per year
	MaxTermYears    = 50
	MinTermYears    = 1

	// Term option search
	MaxTermRangeYears = 40
)

var validPreferences = map[string]bool{
	"minimize_interest": true,
	"minimize_payment":  true,
	"balanced":          true,
}
