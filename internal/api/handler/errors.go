package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/octiline/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest  = apierr.CodeInvalidRequest
	CodeInvalidGridSize = apierr.CodeInvalidGridSize
	CodeUnknownStrategy = apierr.CodeUnknownStrategy
	CodeSessionNotFound = apierr.CodeSessionNotFound
	CodeGameOver        = apierr.CodeGameOver
	CodeGameFailed      = apierr.CodeGameFailed
	CodeNoLegalMoves    = apierr.CodeNoLegalMoves
	CodeInternalError   = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// decodeBody decodes an optional JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return NewInvalidRequestError("Invalid request body")
	}
	return nil
}
