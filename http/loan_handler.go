package http

import (
	"net/http"

	"refi-compare/domain"
	"refi-compare/service"
)

type LoanHandler struct {
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

func (h *LoanHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	var input domain.LoanSpec
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Simulate(input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	var input domain.Snapshot
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Compare(r.Context(), input.Original, input.Proposed)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) MonthlyPayment(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	var input domain.PaymentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.MonthlyPayment(input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) SolveRate(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	var input domain.RateSolveInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.SolveRate(input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Snapshot serves GET, PUT and DELETE on the saved loan pair.
func (h *LoanHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPut, http.MethodDelete) {
		return
	}

	switch r.Method {
	case http.MethodGet:
		snap, err := h.service.LoadSnapshot(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)

	case http.MethodPut:
		var snap domain.Snapshot
		if !decodeJSON(w, r, &snap) {
			return
		}
		if err := h.service.SaveSnapshot(r.Context(), snap); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)

	case http.MethodDelete:
		if err := h.service.DeleteSnapshot(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SyncSnapshot copies the original loan's balance today into the saved
// proposed loan.
func (h *LoanHandler) SyncSnapshot(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	snap, err := h.service.SyncProposedPrincipal(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}
