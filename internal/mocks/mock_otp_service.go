package mocks

import (
	"context"
	"time"

	"github.com/you/tuitionsvc/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc  func(ctx context.Context, paymentID string) (*domain.OTPChallenge, error)
	VerifyFunc func(ctx context.Context, paymentID, code string) error
	ResendFunc func(ctx context.Context, paymentID string) (*domain.OTPChallenge, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue binds a fresh challenge to the payment
func (m *MockOTPService) Issue(ctx context.Context, paymentID string) (*domain.OTPChallenge, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, paymentID)
	}
	// Default behavior: a fixed, unexpired challenge
	return &domain.OTPChallenge{
		Code:      "123456",
		PaymentID: paymentID,
		ExpiresAt: time.Now().Add(time.Minute),
	}, nil
}

// Verify checks a submitted code against the bound challenge
func (m *MockOTPService) Verify(ctx context.Context, paymentID, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, paymentID, code)
	}
	// Default behavior: verified
	return nil
}

// Resend replaces the bound challenge
func (m *MockOTPService) Resend(ctx context.Context, paymentID string) (*domain.OTPChallenge, error) {
	if m.ResendFunc != nil {
		return m.ResendFunc(ctx, paymentID)
	}
	return m.Issue(ctx, paymentID)
}

// Verify interface compliance at compile time
var _ domain.OTPService = (*MockOTPService)(nil)
