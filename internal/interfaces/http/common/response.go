package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/aiagencydirectory/api/internal/directory"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *zap.SugaredLogger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Errorf("json encode failed: %v", err)
	}
}

// WriteError maps a service error onto an HTTP status and a JSON body.
func WriteError(logger *zap.SugaredLogger, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, directory.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, directory.ErrNotEligible):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, directory.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, directory.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, directory.ErrUploadFailed):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError && logger != nil {
		logger.Errorf("request failed: %v", err)
	}
	WriteJSON(logger, w, status, map[string]string{"error": err.Error()})
}
