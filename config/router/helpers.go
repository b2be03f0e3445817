package router

import (
	"net/http"

	"github.com/akeren/bizguard-leads/internal/log"
)

// GetLogger returns the correlated logger injected by the router middleware.
func GetLogger(ctx *RequestContext) *log.Logger {
	if logger := ctx.Request.Context().Value(log.LoggerKeyForContext); logger != nil {
		if l, ok := logger.(*log.Logger); ok {
			return l
		}
	}

	return log.NewLoggerWithJSONOutput().WithCorrelationID(ctx.Request.Context())
}

// ErrorResult is the envelope for any status; the named helpers below fix the code.
func ErrorResult(statusCode int, message string, data any) *ServiceResult {
	return &ServiceResult{StatusCode: statusCode, Data: data, Message: message}
}

func OKResult(data any, message string) *ServiceResult {
	return ErrorResult(http.StatusOK, message, data)
}

func TooManyRequestsResult(data RateLimitResponse) *ServiceResult {
	return ErrorResult(http.StatusTooManyRequests, "Too Many Requests", data)
}

func BadRequestResult(message string, payload any) *ServiceResult {
	return ErrorResult(http.StatusBadRequest, message, payload)
}

func UnauthorizedResult(message string) *ServiceResult {
	return ErrorResult(http.StatusUnauthorized, message, nil)
}

func NotFoundResult(message string) *ServiceResult {
	return ErrorResult(http.StatusNotFound, message, nil)
}

func InternalServerErrorResult(message string) *ServiceResult {
	return ErrorResult(http.StatusInternalServerError, message, nil)
}

// RawResult writes body as JSON without the envelope.
func RawResult(statusCode int, body any) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Body:       body,
	}
}

func HTMLResult(statusCode int, page Renderer) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		HTML:       page,
	}
}

// SeeOtherResult redirects a form POST to a GET of location.
func SeeOtherResult(location string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusSeeOther,
		Location:   location,
	}
}
