package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"snap/internal/repository"
	"snap/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrOtpNotRequested),
		errors.Is(err, service.ErrOtpExpired),
		errors.Is(err, service.ErrOtpMismatch),
		errors.Is(err, service.ErrPhoneNotVerified),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrScoreOutOfRange),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidChargeID),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidPhone),
		errors.Is(err, service.ErrInvalidOrderType),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrNameTaken),
		errors.Is(err, repository.ErrInsufficientFunds):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Conflict errors
	case errors.Is(err, service.ErrWalletBusy):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
