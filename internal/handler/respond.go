package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/sweetspot260/sweetlife/pkg/errors"
	"github.com/sweetspot260/sweetlife/pkg/logger"
)

// ErrorBody is the JSON error payload shape
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// writeError maps an error to the standard JSON error body. AppErrors keep
// their taxonomy and status; anything else is a generic 500.
func writeError(w http.ResponseWriter, err error, log *logger.Logger) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError("Something went wrong", err)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
	}

	body := map[string]interface{}{
		"success": false,
		"error": ErrorBody{
			Type:    string(appErr.Type),
			Message: appErr.Message,
		},
	}
	writeJSON(w, appErr.StatusCode, body, log)
}
