package domain

import (
	"errors"
	"fmt"
)

// Lookup errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Payment reservation errors
var (
	ErrNoOutstandingBalance = errors.New("no outstanding tuition balance")
	ErrPaymentInProgress    = errors.New("payment already in progress for this student")
	ErrPaymentNotPending    = errors.New("payment is not pending")
)

// OTP errors
var (
	ErrOTPNotFound    = errors.New("otp not found")
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
)

// Balance errors
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized access")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// InsufficientBalanceError carries the amounts the caller needs to show
// the shortfall. It matches ErrInsufficientBalance under errors.Is.
type InsufficientBalanceError struct {
	Required  int64
	Available int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %d, available %d", e.Required, e.Available)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// InvalidCodeError reports a wrong OTP submission and how many attempts
// remain before the payment is cancelled. Matches ErrOTPInvalid.
type InvalidCodeError struct {
	Remaining int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid otp code: %d attempts remaining", e.Remaining)
}

func (e *InvalidCodeError) Is(target error) bool {
	return target == ErrOTPInvalid
}
