// Package httputil holds the response writers and query parsing shared by the HTTP handlers.
package httputil

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/storefront/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DetailResponse is the body written when the request gate denies a request.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// RateLimitResponse is the body written when a caller exceeds its request budget.
type RateLimitResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after"`
}

type errorMapping struct {
	status  int
	message string
}

// errorMappings keys HTTP responses by apperrors code. An empty message means the
// error text itself is safe to return.
var errorMappings = map[string]errorMapping{
	apperrors.CodeNotFound:        {http.StatusNotFound, "The requested resource was not found"},
	apperrors.CodeConflict:        {http.StatusConflict, "A conflict occurred with existing data"},
	apperrors.CodeInvalidInput:    {http.StatusUnprocessableEntity, ""},
	apperrors.CodeUnauthorized:    {http.StatusUnauthorized, "Could not validate credentials"},
	apperrors.CodeForbidden:       {http.StatusForbidden, "You don't have permission to access this resource"},
	apperrors.CodeTooManyRequests: {http.StatusTooManyRequests, "Too many requests, please retry later"},
	apperrors.CodeInternal:        {http.StatusInternalServerError, "An internal error occurred"},
}

// HandleErrorGin maps a domain error to its status code and writes an ErrorResponse.
// Internal errors are logged in full but never exposed.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	code := apperrors.Code(err)
	mapping := errorMappings[code]

	message := mapping.message
	if message == "" {
		message = err.Error()
	}
	if code == apperrors.CodeUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}

	if logger != nil {
		level := slog.LevelError
		if mapping.status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", mapping.status),
			slog.String("error_code", code),
			slog.Any("error", err),
		)
	}

	c.JSON(mapping.status, ErrorResponse{Error: code, Message: message})
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	}

	c.JSON(http.StatusBadRequest, errorResponse)
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors using Gin.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	}

	c.JSON(http.StatusUnprocessableEntity, errorResponse)
}

// AbortWithDetail aborts the request with statusCode and a {"detail": ...} body.
func AbortWithDetail(c *gin.Context, statusCode int, detail string) {
	c.AbortWithStatusJSON(statusCode, DetailResponse{Detail: detail})
}

// AbortWithRateLimit aborts the request with 429, a Retry-After header and a
// {"error", "retry_after"} body. retryAfter is rounded up to whole seconds, minimum one.
// The rejection is attached to c.Errors as ErrTooManyRequests for the request logger.
func AbortWithRateLimit(c *gin.Context, retryAfter time.Duration) {
	seconds := RetryAfterSeconds(retryAfter)
	_ = c.Error(apperrors.Wrapf(apperrors.ErrTooManyRequests, "retry after %ds", seconds))
	c.Header("Retry-After", strconv.Itoa(seconds))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, RateLimitResponse{
		Error:      "Rate limit exceeded",
		RetryAfter: seconds,
	})
}

// RetryAfterSeconds converts d to the whole number of seconds advertised to clients.
func RetryAfterSeconds(d time.Duration) int {
	seconds := int(math.Ceil(d.Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}
