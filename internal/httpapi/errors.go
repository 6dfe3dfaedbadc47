package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/finseva/finseva/internal/calculation"
	"github.com/finseva/finseva/internal/logging"
	"github.com/finseva/finseva/internal/repository"
)

// apiError is the JSON error envelope returned by every route.
type apiError struct {
	Code    string
	Message string
	Status  int
	Details map[string]any
}

func newError(code, message string, status int) apiError {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return apiError{Code: code, Message: sanitize(message, 512), Status: status}
}

func (e apiError) withDetails(details map[string]any) apiError {
	e.Details = details
	return e
}

var (
	errInternal          = newError("internal_server_error", "internal server error", http.StatusInternalServerError)
	errInvalidJSON       = newError("invalid_json", "request body is not valid JSON", http.StatusBadRequest)
	errAssistantDisabled = newError("assistant_unavailable", "the assistant is not configured", http.StatusServiceUnavailable)
	errKnowledgeDisabled = newError("knowledge_unavailable", "document retrieval is not configured", http.StatusServiceUnavailable)
	errProfileNotFound   = newError("not_found", "no profile saved for this user", http.StatusNotFound)
	errNewsUnavailable   = newError("news_unavailable", "tax news could not be fetched", http.StatusBadGateway)
)

// errorFor maps domain errors to API errors
func errorFor(err error) apiError {
	var invalid *calculation.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		return newError("invalid_input", invalid.Error(), http.StatusBadRequest).withDetails(map[string]any{
			"field":  invalid.Field,
			"value":  invalid.Value,
			"reason": invalid.Reason,
		})
	case errors.Is(err, calculation.ErrInvalidInput):
		return newError("invalid_input", err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrNotFound):
		return errProfileNotFound
	default:
		return errInternal
	}
}

// writeError writes the structured error as JSON
func writeError(ctx context.Context, w http.ResponseWriter, apiErr apiError) {
	status := apiErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	payload := map[string]any{
		"error":   apiErr.Code,
		"message": apiErr.Message,
		"status":  status,
	}
	if requestID := sanitize(middleware.GetReqID(ctx), 80); requestID != "" {
		payload["request_id"] = requestID
	}
	if len(apiErr.Details) > 0 {
		payload["details"] = apiErr.Details
	}

	writeJSON(w, status, payload)
}

// writeErr logs unexpected failures before writing the mapped error
func writeErr(ctx context.Context, w http.ResponseWriter, err error) {
	apiErr := errorFor(err)
	if apiErr.Status >= http.StatusInternalServerError {
		logging.FromContext(ctx).Error("request failed", zap.Error(err))
	}
	writeError(ctx, w, apiErr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func sanitize(value string, limit int) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.TrimSpace(value)
	if len(value) > limit {
		value = value[:limit]
	}
	return value
}
