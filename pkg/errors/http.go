package errors

import (
	"errors"
)

const genericMessage = "An unexpected error occurred"

func HTTPStatusCode(err error) int {
	switch GetErrorType(err) {
	case ErrorTypeNotFound:
		return StatusNotFound
	case ErrorTypeInvalidRequest:
		return StatusBadRequest
	case ErrorTypeUnauthorized:
		return StatusUnauthorized
	case ErrorTypeRateLimitExceeded:
		return StatusTooManyRequests
	case ErrorTypeSinkUnavailable:
		return StatusServiceUnavailable
	default:
		return StatusInternalServerError
	}
}

// GetHumanReadableMessage never returns the text of a wrapped cause.
func GetHumanReadableMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}

	return genericMessage
}
