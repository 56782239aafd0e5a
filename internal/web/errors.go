package web

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/HyungjinO/k-novel-dashboard/internal/errors"
)

// APIError is the JSON error body of the API. It implements huma.StatusError.
type APIError struct { //nolint:revive // mirrors the error code vocabulary
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string { return e.Message }

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int { return e.status }

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string { return "application/json" }

// apiError converts a domain error into a huma status error carrying its
// own code. Other errors pass through and become 500s.
func apiError(err error) error {
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		return huma.NewError(domainErr.Code.HTTPStatus(), domainErr.Message, err)
	}
	return err
}

// RegisterErrorHandler makes huma report domain errors with their own code
// and status.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var domainErr *domainerrors.Error
			if errors.As(err, &domainErr) {
				return &APIError{
					status:  domainErr.Code.HTTPStatus(),
					Code:    string(domainErr.Code),
					Message: domainErr.Message,
					Details: domainErr.Details,
				}
			}
		}
		return &APIError{status: status, Code: statusToCode(status), Message: message}
	}
}

func statusToCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return string(domainerrors.CodeValidation)
	case http.StatusNotFound:
		return string(domainerrors.CodeNotFound)
	default:
		return string(domainerrors.CodeInternal)
	}
}
