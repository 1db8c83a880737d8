package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"refi-compare/domain"
	"refi-compare/repository"
	"refi-compare/service"
)

var fixedNow = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

const existingLoanJSON = `{
	"principal": 300000,
	"term_years": 30,
	"annual_rate_percent": 7.25,
	"start_date": "2021-10-01",
	"monthly_payment": 2446.54,
	"escrow": 400,
	"extra_payment": 100
}`

const proposedLoanJSON = `{
	"principal": 280000,
	"term_years": 30,
	"annual_rate_percent": 6,
	"start_date": "2026-11-01",
	"monthly_payment": 2078.73,
	"escrow": 400,
	"closing_costs": 5000
}`

const snapshotJSON = `{"original": ` + existingLoanJSON + `, "proposed": ` + proposedLoanJSON + `}`

func newTestHandler() (*LoanHandler, *repository.MockCache) {
	cache := repository.NewMockCache()
	snapshots := repository.NewSnapshotRepository(cache, "test:snapshot", 0)
	svc := service.NewLoanService(snapshots, nil, 0.20).WithClock(func() time.Time { return fixedNow })
	return NewLoanHandler(svc), cache
}

func do(handler http.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestSimulateHandler_OK(t *testing.T) {
	handler, _ := newTestHandler()

	w := do(handler.Simulate, http.MethodPost, "/loan/simulate", existingLoanJSON)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result domain.SimulationResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.MonthsElapsed != 60 {
		t.Errorf("expected 60 months elapsed, got %d", result.MonthsElapsed)
	}
	if !result.Amortizes || result.PayoffDate.IsZero() {
		t.Errorf("expected a payoff date, got %+v", result)
	}
}

func TestSimulateHandler_MethodNotAllowed(t *testing.T) {
	handler, _ := newTestHandler()

	w := do(handler.Simulate, http.MethodGet, "/loan/simulate", "")

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestSimulateHandler_BadRequest(t *testing.T) {
	handler, _ := newTestHandler()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{invalid-json}`},
		{"bad date", `{"principal": 1000, "term_years": 1, "start_date": "10/01/2021", "monthly_payment": 100}`},
		{"zero term", `{"principal": 1000, "term_years": 0, "start_date": "2021-10-01", "monthly_payment": 100}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(handler.Simulate, http.MethodPost, "/loan/simulate", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestCompareHandler_OK(t *testing.T) {
	handler, _ := newTestHandler()

	w := do(handler.Compare, http.MethodPost, "/loan/compare", snapshotJSON)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result domain.ComparisonResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.BreakEvenMonths != 14 {
		t.Errorf("expected break-even in 14 months, got %d", result.BreakEvenMonths)
	}
	if result.Proposed.MonthsElapsed != 0 {
		t.Errorf("expected proposed loan not started, got %d months", result.Proposed.MonthsElapsed)
	}
}

func TestPaymentHandler_OK(t *testing.T) {
	handler, _ := newTestHandler()

	w := do(handler.MonthlyPayment, http.MethodPost, "/loan/payment",
		`{"principal": 300000, "term_years": 30, "annual_rate_percent": 6.5}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var result domain.PaymentResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.MonthlyPayment != 1896.20 {
		t.Errorf("expected 1896.20, got %.2f", result.MonthlyPayment)
	}
}

func TestSolveRateHandler(t *testing.T) {
	handler, _ := newTestHandler()

	ok := do(handler.SolveRate, http.MethodPost, "/loan/solve-rate",
		`{"loan_amount": 300000, "term_years": 30, "target_monthly_payment": 1896.20}`)
	if ok.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ok.Code, ok.Body.String())
	}
	var result domain.RateSolveResult
	if err := json.NewDecoder(ok.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.AnnualRatePercent < 6.49 || result.AnnualRatePercent > 6.51 {
		t.Errorf("expected about 6.5%%, got %.4f", result.AnnualRatePercent)
	}

	bad := do(handler.SolveRate, http.MethodPost, "/loan/solve-rate",
		`{"loan_amount": 300000, "term_years": 30}`)
	if bad.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a target, got %d", bad.Code)
	}
}

func TestSnapshotHandler_Lifecycle(t *testing.T) {
	handler, _ := newTestHandler()

	if w := do(handler.Snapshot, http.MethodGet, "/loan/snapshot", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before save, got %d", w.Code)
	}

	if w := do(handler.Snapshot, http.MethodPut, "/loan/snapshot", snapshotJSON); w.Code != http.StatusOK {
		t.Fatalf("expected 200 on save, got %d: %s", w.Code, w.Body.String())
	}

	w := do(handler.Snapshot, http.MethodGet, "/loan/snapshot", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on load, got %d", w.Code)
	}
	var snap domain.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if snap.Original.StartDate.String() != "2021-10-01" {
		t.Errorf("expected original start date 2021-10-01, got %s", snap.Original.StartDate)
	}

	sync := do(handler.SyncSnapshot, http.MethodPost, "/loan/snapshot/sync", "")
	if sync.Code != http.StatusOK {
		t.Fatalf("expected 200 on sync, got %d", sync.Code)
	}
	var synced domain.Snapshot
	if err := json.NewDecoder(sync.Body).Decode(&synced); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if synced.Proposed.Principal >= 300000 || synced.Proposed.Principal == 280000 {
		t.Errorf("expected proposed principal to follow today's balance, got %.2f", synced.Proposed.Principal)
	}

	if w := do(handler.Snapshot, http.MethodDelete, "/loan/snapshot", ""); w.Code != http.StatusNoContent {
		t.Errorf("expected 204 on delete, got %d", w.Code)
	}
	if w := do(handler.Snapshot, http.MethodPost, "/loan/snapshot", ""); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for POST, got %d", w.Code)
	}
}

func TestSnapshotHandler_StoreFailure(t *testing.T) {
	handler, cache := newTestHandler()
	cache.Err = errors.New("connection refused")

	w := do(handler.Snapshot, http.MethodGet, "/loan/snapshot", "")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestRecommendTermHandler(t *testing.T) {
	cache := repository.NewMockCache()
	svc := service.NewLoanService(repository.NewSnapshotRepository(cache, "k", 0), nil, 0.20).
		WithClock(func() time.Time { return fixedNow })
	handler := NewTermRecommendationHandler(service.NewTermRecommendationService(svc, nil))

	body := `{"principal": 300000, "annual_rate_percent": 6, "min_term_years": 10, "max_term_years": 30,
		"max_monthly_payment": 2000, "preference": "minimize_payment"}`

	w := do(handler.RecommendTerm, http.MethodPost, "/loan/recommend-term", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result domain.TermRecommendationResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.RecommendedTermYears != 30 {
		t.Errorf("expected 30 years, got %d", result.RecommendedTermYears)
	}

	req := httptest.NewRequest(http.MethodPost, "/loan/recommend-term", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	handler.RecommendTerm(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", rec.Code)
	}
}
