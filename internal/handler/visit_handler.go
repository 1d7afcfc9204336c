package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sweetspot260/sweetlife/internal/middleware"
	"github.com/sweetspot260/sweetlife/internal/service"
	apperrors "github.com/sweetspot260/sweetlife/pkg/errors"
	"github.com/sweetspot260/sweetlife/pkg/logger"
)

// VisitHandler handles the manual visit endpoint. The tracker middleware
// already records visits for every API request; this endpoint is kept for
// clients calling it explicitly and reports today's ledger count.
type VisitHandler struct {
	tracker service.TrackerService
	logger  *logger.Logger
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(tracker service.TrackerService, logger *logger.Logger) *VisitHandler {
	return &VisitHandler{
		tracker: tracker,
		logger:  logger,
	}
}

// RecordVisit handles POST /api/visit
func (h *VisitHandler) RecordVisit(w http.ResponseWriter, r *http.Request) {
	h.tracker.Track(r.Context(), middleware.VisitorKey(r))

	today, err := h.tracker.CountToday(r.Context())
	if err != nil {
		writeError(w, apperrors.NewStorageError("Failed to update visit count", err), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"today":   today,
	}, h.logger)
}

// RegisterRoutes registers visit routes with the router
func (h *VisitHandler) RegisterRoutes(r chi.Router) {
	r.Post("/visit", h.RecordVisit)
}
