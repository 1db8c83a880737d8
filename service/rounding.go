package service

import (
	"github.com/shopspring/decimal"

	"refi-compare/domain"
)

func roundCents(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

func roundRate(value float64) float64 {
	return decimal.NewFromFloat(value).Round(4).InexactFloat64()
}

func roundSimulation(r domain.SimulationResult) domain.SimulationResult {
	r.TotalInterestPaid = roundCents(r.TotalInterestPaid)
	r.TotalAmountPaid = roundCents(r.TotalAmountPaid)
	r.TotalExtraPaid = roundCents(r.TotalExtraPaid)
	r.LifetimeInterestPaid = roundCents(r.LifetimeInterestPaid)
	r.RemainingBalance = roundCents(r.RemainingBalance)
	return r
}

func roundComparison(c domain.ComparisonResult) domain.ComparisonResult {
	c.Original = roundSimulation(c.Original)
	c.Proposed = roundSimulation(c.Proposed)
	c.PaymentDelta = roundCents(c.PaymentDelta)
	c.InterestDelta = roundCents(c.InterestDelta)
	c.TotalPaidDelta = roundCents(c.TotalPaidDelta)
	c.TotalCostWithClosing = roundCents(c.TotalCostWithClosing)
	c.NetSavings = roundCents(c.NetSavings)
	c.TargetInterest = roundCents(c.TargetInterest)
	c.SuggestedRate = roundRate(c.SuggestedRate)
	return c
}
