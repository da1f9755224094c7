package handlers

import (
	"encoding/json"
	"net/http"

	"edu-backend/internal/health"
)

type HealthHandler struct {
	Checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{Checker: checker}
}

// BasicHealth is the liveness probe.
func (h *HealthHandler) BasicHealth(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.CheckBasic()
	writeHealth(w, status.Status, status)
}

// ReadinessHealth reports whether the backing stores answer.
func (h *HealthHandler) ReadinessHealth(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.CheckBasic()
	writeHealth(w, status.Status, status)
}

// DetailedHealth adds host CPU, memory and disk usage.
func (h *HealthHandler) DetailedHealth(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.CheckDetailed()
	writeHealth(w, status.Status, status)
}

func writeHealth(w http.ResponseWriter, status string, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(body)
}
