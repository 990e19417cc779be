package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/tuitionsvc/domain"
)

// respondError maps a domain error to its HTTP status and discriminator
// code so callers can branch on the failure kind, not the message text.
func respondError(c *gin.Context, err error) {
	var insufficientErr *domain.InsufficientBalanceError
	var invalidCodeErr *domain.InvalidCodeError

	switch {
	case errors.Is(err, domain.ErrStudentNotFound),
		errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrNoOutstandingBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "NO_OUTSTANDING_BALANCE"})

	case errors.As(err, &insufficientErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"code":      "INSUFFICIENT_BALANCE",
			"required":  insufficientErr.Required,
			"available": insufficientErr.Available,
		})

	case errors.Is(err, domain.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INSUFFICIENT_BALANCE"})

	case errors.Is(err, domain.ErrPaymentInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "PAYMENT_IN_PROGRESS"})

	case errors.Is(err, domain.ErrPaymentNotPending):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "PAYMENT_NOT_PENDING"})

	case errors.Is(err, domain.ErrOTPNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "OTP_NOT_FOUND"})

	case errors.Is(err, domain.ErrOTPExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "OTP_EXPIRED"})

	case errors.Is(err, domain.ErrOTPMaxAttempts):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "MAX_ATTEMPTS_REACHED"})

	case errors.As(err, &invalidCodeErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":              err.Error(),
			"code":               "INVALID_OTP",
			"remaining_attempts": invalidCodeErr.Remaining,
		})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// tokenUserID pulls the authenticated payer out of the gin context
func tokenUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok && userID != ""
}
