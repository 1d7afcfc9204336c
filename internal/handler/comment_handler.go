package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sweetspot260/sweetlife/internal/middleware"
	"github.com/sweetspot260/sweetlife/internal/service"
	apperrors "github.com/sweetspot260/sweetlife/pkg/errors"
	"github.com/sweetspot260/sweetlife/pkg/logger"
)

// CommentHandler handles public comment submission
type CommentHandler struct {
	commentService service.CommentService
	logger         *logger.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService service.CommentService, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// commentRequest is the submission body
type commentRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Submit handles POST /api/video/comment
func (h *CommentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("Invalid request body", nil), h.logger)
		return
	}

	if err := h.commentService.Submit(r.Context(), req.Name, req.Text, middleware.VisitorKey(r)); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Comment submitted for approval",
	}, h.logger)
}

// RegisterRoutes registers comment routes with the router
func (h *CommentHandler) RegisterRoutes(r chi.Router) {
	r.Post("/video/comment", h.Submit)
}
