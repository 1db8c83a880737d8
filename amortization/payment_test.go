package amortization

import (
	"math"
	"testing"
	"time"
)

const moneyTolerance = 0.01

func assertMoney(t *testing.T, expected, actual float64, description string) {
	t.Helper()
	if math.Abs(expected-actual) > moneyTolerance {
		t.Errorf("%s: expected $%.2f, got $%.2f (diff: $%.4f)",
			description, expected, actual, actual-expected)
	}
}

func TestMonthlyPayment_ClosedForm(t *testing.T) {
	tests := []struct {
		principal float64
		termYears int
		rate      float64
		expected  float64
		desc      string
	}{
		{300000, 30, 6.5, 1896.20, "$300k @ 6.5% for 30 years"},
		{200000, 25, 4, 1055.67, "$200k @ 4% for 25 years"},
		{1200, 1, 0, 100, "zero rate divides evenly"},
		{120000, 10, 0, 1000, "zero rate over ten years"},
		{0, 30, 6.5, 0, "no principal"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := MonthlyPayment(tt.principal, tt.termYears, tt.rate)
			assertMoney(t, tt.expected, math.Round(got*100)/100, tt.desc)
		})
	}
}

func TestMonthlyPayment_CoversPrincipal(t *testing.T) {
	for _, principal := range []float64{1, 1000, 250000, 1_500_000} {
		for _, term := range []int{1, 5, 15, 30, 40} {
			for _, rate := range []float64{0, 0.25, 3, 6.5, 12, 20} {
				m := MonthlyPayment(principal, term, rate)
				if m*12*float64(term) < principal-1e-6 {
					t.Errorf("payment %.4f under-covers principal %.2f (term %d, rate %.2f)",
						m, principal, term, rate)
				}
			}
		}
	}
}

func TestTotalInterest_ZeroRate(t *testing.T) {
	if got := TotalInterest(120000, 10, 0); math.Abs(got) > 1e-9 {
		t.Errorf("expected no interest at 0%%, got %.6f", got)
	}
}

func TestMonthsBetween(t *testing.T) {
	start := time.Date(2021, time.March, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		asOf     time.Time
		expected int
	}{
		{time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2021, time.April, 1, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), 60},
		{time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC), -3},
	}

	for _, tt := range tests {
		if got := MonthsBetween(start, tt.asOf); got != tt.expected {
			t.Errorf("MonthsBetween(%s): expected %d, got %d", tt.asOf.Format("2006-01-02"), tt.expected, got)
		}
	}
}

func TestAddMonths_ClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		start    time.Time
		months   int
		expected time.Time
	}{
		{time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC), 360, time.Date(2054, time.May, 15, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), -1, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		if got := AddMonths(tt.start, tt.months); !got.Equal(tt.expected) {
			t.Errorf("AddMonths(%s, %d): expected %s, got %s",
				tt.start.Format("2006-01-02"), tt.months, tt.expected.Format("2006-01-02"), got.Format("2006-01-02"))
		}
	}
}
