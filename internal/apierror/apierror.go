package apierror

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

type ErrorCode string

const (
	ErrNotFound            ErrorCode = "NOT_FOUND"
	ErrConflict            ErrorCode = "CONFLICT"
	ErrBadRequest          ErrorCode = "BAD_REQUEST"
	ErrInvalidInput        ErrorCode = "INVALID_INPUT"
	ErrInsufficientStock   ErrorCode = "INSUFFICIENT_STOCK"
	ErrChecklistIncomplete ErrorCode = "CHECKLIST_INCOMPLETE"
	ErrPreconditionFailed  ErrorCode = "PRECONDITION_FAILED"
	ErrInternalServer      ErrorCode = "INTERNAL_SERVER_ERROR"
)

type APIError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code ErrorCode, message string, details interface{}) APIError {
	logrus.Error(details)
	return APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Retryable reports whether the failure is transient (a persistence error)
// rather than a rejected request. Validation failures, insufficient stock and
// missing resources are final; only internal errors should be retried.
func Retryable(err error) bool {
	if apiErr, ok := err.(APIError); ok {
		return apiErr.Code == ErrInternalServer
	}
	return false
}

func MapErrorToHTTPStatus(err error) int {
	if apiErr, ok := err.(APIError); ok {
		switch apiErr.Code {
		case ErrNotFound:
			return http.StatusNotFound
		case ErrConflict, ErrInsufficientStock:
			return http.StatusConflict
		case ErrPreconditionFailed:
			return http.StatusPreconditionFailed
		case ErrInvalidInput, ErrBadRequest, ErrChecklistIncomplete:
			return http.StatusBadRequest
		case ErrInternalServer:
			return http.StatusInternalServerError
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}
