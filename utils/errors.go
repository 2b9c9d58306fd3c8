package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrRateUnavailable is returned by the FX resolver when a rate cannot be
// obtained. It is a soft failure: the owning expense is excluded from
// aggregation rather than aborting the whole computation.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// AppError represents a custom application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common error constructors
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewInternalError(message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewShareMismatchError reports custom shares that do not sum to the expense
// total. Rejected at write time; it never reaches the aggregator.
func NewShareMismatchError(expected, got int64) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "shares do not sum to expense total",
		Details: fmt.Sprintf("expected %d minor units, got %d", expected, got),
	}
}

// IsShareMismatch reports whether err is a share mismatch error
func IsShareMismatch(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message == "shares do not sum to expense total"
	}
	return false
}

// NewInternalInconsistencyError reports a settlement residual beyond the
// rounding tolerance. This is a defect condition and is never swallowed.
func NewInternalInconsistencyError(residual int64) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: "settlement optimization left a nonzero residual",
		Details: fmt.Sprintf("residual %d minor units exceeds rounding tolerance", residual),
	}
}

// HandleError sends an appropriate HTTP response for an error
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	// Default to internal server error
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// HandleSuccess sends a success response
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}
