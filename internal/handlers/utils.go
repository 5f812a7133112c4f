package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/physai/bookrag/internal/adapter"
	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/internal/rag"
	"github.com/physai/bookrag/pkg/logger_i"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger_i.NewLogger("handlers").Error("Could not encode response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	writeJsonResponse(w, statusCode, adapter.BadRequest(message, statusCode))
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any, log *logger_i.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		log.Warn("Bad request body", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return false
	}
	return true
}

func (h *Handler) requestLogger(r *http.Request) *logger_i.Logger {
	return h.logger.With("traceId", r.Context().Value(config.TRACE_ID_KEY))
}

// mapServiceError turns service sentinels into HTTP status codes.
func mapServiceError(err error) int {
	switch {
	case errors.Is(err, rag.ErrEmptyQuestion),
		errors.Is(err, rag.ErrQuestionTooLong),
		errors.Is(err, rag.ErrSelectionTooShort),
		errors.Is(err, rag.ErrSelectionTooLong):
		return http.StatusBadRequest
	case errors.Is(err, rag.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, log *logger_i.Logger, err error) {
	statusCode := mapServiceError(err)
	if statusCode >= http.StatusInternalServerError {
		log.Error("Query failed", "error", err)
	} else {
		log.Warn("Query rejected", "error", err)
	}
	WriteErrorResponse(w, statusCode, err.Error())
}
