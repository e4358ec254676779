package response

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/nikhil/zsechat/internal/apperrors"
	"github.com/nikhil/zsechat/internal/logger"
)

// ExceptionResponse is the body of every error answer.
type ExceptionResponse struct {
	ResponseCode     int               `json:"responseCode"`
	ExceptionMessage string            `json:"exceptionMessage,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	FieldErrors      map[string]string `json:"fieldErrors,omitempty"`
}

// ValidationError carries per-field messages of a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "request validation failed"
}

var statusByError = []struct {
	err    error
	status int
}{
	{apperrors.ErrMissingToken, http.StatusUnauthorized},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized},
	{apperrors.ErrChannelNotFound, http.StatusNotFound},
	{apperrors.ErrMessageNotFound, http.StatusNotFound},
	{apperrors.ErrUserNotFound, http.StatusNotFound},
	{apperrors.ErrChannelAccessDenied, http.StatusForbidden},
	{apperrors.ErrChannelUpdateDenied, http.StatusForbidden},
	{apperrors.ErrMessageUpdateDenied, http.StatusForbidden},
	{apperrors.ErrNicknameTaken, http.StatusBadRequest},
	{apperrors.ErrEmailTaken, http.StatusBadRequest},
	{apperrors.ErrMissingField, http.StatusBadRequest},
	{apperrors.ErrMalformedPayload, http.StatusBadRequest},
}

// StatusFor maps a domain error to its HTTP status, 500 when unknown.
func StatusFor(err error) int {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	for _, entry := range statusByError {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// Error writes err as an ExceptionResponse. Unknown errors are logged and
// answered with a generic message.
func Error(w http.ResponseWriter, l *logger.Logger, err error) {
	status := StatusFor(err)
	body := ExceptionResponse{
		ResponseCode:     status,
		ExceptionMessage: err.Error(),
		Timestamp:        time.Now().UTC(),
	}

	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		body.ExceptionMessage = ""
		body.FieldErrors = validationErr.Fields
	case status == http.StatusInternalServerError:
		l.Error("Request failed", "error", err)
		body.ExceptionMessage = http.StatusText(status)
	case status == http.StatusForbidden:
		l.Error("Generating action forbidden response", "reason", err.Error())
	default:
		l.Warn("Generating error response", "status", status, "reason", err.Error())
	}
	JSON(w, status, body)
}

// JSON writes payload with the given status code.
func JSON(w http.ResponseWriter, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling JSON: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}

// NoContent answers 204 without a body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
