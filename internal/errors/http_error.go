package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
)

// Machine-readable codes carried in the error envelope.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidDate  = "INVALID_DATE"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "SLOT_CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// HTTPError represents an error with an associated HTTP status code and a
// machine-readable code the UI can branch on.
type HTTPError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given status, code and message.
func NewHTTPError(status int, code, message string) *HTTPError {
	return &HTTPError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Helpers for common errors
var (
	ErrValidation   = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, CodeValidation, msg) }
	ErrInvalidDate  = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, CodeInvalidDate, msg) }
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, msg) }
	ErrNotFound     = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, CodeNotFound, msg) }
	ErrConflict     = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, CodeConflict, msg) }
	ErrInternal     = func(msg string) *HTTPError { return NewHTTPError(http.StatusInternalServerError, CodeInternal, msg) }
)

// WriteJSON renders err as the structured error envelope. Errors that are
// not HTTPError become a 500 with a generic message.
func WriteJSON(w http.ResponseWriter, err error) {
	var he *HTTPError
	if !stderrors.As(err, &he) {
		he = ErrInternal("internal server error")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.Status)
	json.NewEncoder(w).Encode(he)
}
