package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/matzehuels/kle/pkg/errors"
	"github.com/matzehuels/kle/pkg/kle"
)

// APIError is the JSON body of every error response. Row and Item locate
// decode errors in the raw document; both are -1 when the location is
// unknown and omitted for non-decode errors.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
	Row     *int   `json:"row,omitempty"`
	Item    *int   `json:"item,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch {
	case errors.IsDecodeCode(code):
		return http.StatusUnprocessableEntity
	case code == errors.ErrCodeInvalidFormat, code == errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case code == errors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case code == errors.ErrCodeNotFound:
		return http.StatusNotFound
	case code == errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// toAPIError converts any error into its response form. Internal errors
// keep their cause out of the body.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	out := &APIError{
		Status:  statusFor(code),
		Code:    string(code),
		Message: errors.UserMessage(err),
	}

	var de *kle.DecodeError
	if stderrors.As(err, &de) {
		row, item := de.Row, de.Item
		out.Message = de.Msg
		out.Field = de.Field
		out.Row = &row
		out.Item = &item
		if de.Err != nil {
			out.Details = de.Err.Error()
		}
	}

	if out.Status == http.StatusInternalServerError {
		out.Message = "internal error"
		out.Details = ""
	}
	return out
}

// writeError writes err as a JSON APIError.
func writeError(w http.ResponseWriter, err error) {
	apiErr := toAPIError(err)
	writeJSON(w, apiErr.Status, apiErr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
