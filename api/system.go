package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/garnizeh/trivia/pkg/repository"
)

type SystemHandler struct {
	categoryRepo repository.CategoryRepo
}

func NewSystemHandler(cr repository.CategoryRepo) *SystemHandler {
	return &SystemHandler{categoryRepo: cr}
}

// HealthHandler reports ok when the store answers a trivial query.
func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.categoryRepo != nil {
		if _, err := h.categoryRepo.CountCategories(r.Context()); err != nil {
			requestLogger(r.Context()).Error("health check failed", slog.Any("err", err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintln(w, `{"status":"unavailable","service":"trivia"}`)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, `{"status":"ok","service":"trivia"}`)
}

func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"version":"%s","buildTime":"%s"}`, version, buildTime)
	}
}
