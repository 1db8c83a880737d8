package http

import "net/http"

// NewRouter registers every endpoint behind the rate limiter and request log.
func NewRouter(
	loans *LoanHandler,
	terms *TermRecommendationHandler,
	limiter *RateLimiter,
) http.Handler {
	mux := http.NewServeMux()

	routes := map[string]http.HandlerFunc{
		"/loan/simulate":       loans.Simulate,
		"/loan/compare":        loans.Compare,
		"/loan/payment":        loans.MonthlyPayment,
		"/loan/solve-rate":     loans.SolveRate,
		"/loan/snapshot":       loans.Snapshot,
		"/loan/snapshot/sync":  loans.SyncSnapshot,
		"/loan/recommend-term": terms.RecommendTerm,
	}
	for path, handler := range routes {
		mux.Handle(path, RateLimitMiddleware(limiter, handler))
	}

	return RequestLogMiddleware(mux)
}
