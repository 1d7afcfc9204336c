package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sweetspot260/sweetlife/internal/service"
	apperrors "github.com/sweetspot260/sweetlife/pkg/errors"
	"github.com/sweetspot260/sweetlife/pkg/logger"
)

// VideoHandler handles the public video API
type VideoHandler struct {
	videoService service.VideoService
	logger       *logger.Logger
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(videoService service.VideoService, logger *logger.Logger) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		logger:       logger,
	}
}

// GetVideo handles GET /api/video
func (h *VideoHandler) GetVideo(w http.ResponseWriter, r *http.Request) {
	payload, err := h.videoService.GetVideo(r.Context())
	if err != nil {
		writeError(w, apperrors.NewStorageError("Failed to load video data", err), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, payload, h.logger)
}

// Watch handles POST /api/video/watch
func (h *VideoHandler) Watch(w http.ResponseWriter, r *http.Request) {
	views, err := h.videoService.RecordWatch(r.Context())
	if err != nil {
		writeError(w, apperrors.NewStorageError("Failed to update view count", err), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "View added",
		"views":   views,
	}, h.logger)
}

// Download handles POST /api/video/download
func (h *VideoHandler) Download(w http.ResponseWriter, r *http.Request) {
	downloads, err := h.videoService.RecordDownload(r.Context())
	if err != nil {
		writeError(w, apperrors.NewStorageError("Failed to update download count", err), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Download counted",
		"downloads": downloads,
		"url":       h.videoService.VideoURL(),
	}, h.logger)
}

// AppDownload handles POST /api/app/download
func (h *VideoHandler) AppDownload(w http.ResponseWriter, r *http.Request) {
	appDownloads, err := h.videoService.RecordAppDownload(r.Context())
	if err != nil {
		writeError(w, apperrors.NewStorageError("Failed to update app download count", err), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "App download counted",
		"appDownloads": appDownloads,
		"url":          h.videoService.AppURL(),
	}, h.logger)
}

// RegisterRoutes registers video routes with the router
func (h *VideoHandler) RegisterRoutes(r chi.Router) {
	r.Get("/video", h.GetVideo)
	r.Post("/video/watch", h.Watch)
	r.Post("/video/download", h.Download)
	r.Post("/app/download", h.AppDownload)
}
