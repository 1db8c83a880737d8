package http

import (
	"net/http"
	"strings"

	"refi-compare/domain"
	"refi-compare/service"
)

type TermRecommendationHandler struct {
	service *service.TermRecommendationService
}

func NewTermRecommendationHandler(service *service.TermRecommendationService) *TermRecommendationHandler {
	return &TermRecommendationHandler{service: service}
}

func (h *TermRecommendationHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var input domain.TermRecommendationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.RecommendTerm(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
