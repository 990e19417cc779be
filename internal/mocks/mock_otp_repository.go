package mocks

import (
	"context"

	"github.com/you/tuitionsvc/domain"
)

// MockOTPRepository implements domain.OTPRepository interface for testing
type MockOTPRepository struct {
	SaveFunc            func(ctx context.Context, challenge *domain.OTPChallenge) error
	FindByPaymentIDFunc func(ctx context.Context, paymentID string) (*domain.OTPChallenge, error)
	DeleteFunc          func(ctx context.Context, paymentID string) error
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

// Save stores a challenge, replacing any prior one for the payment
func (m *MockOTPRepository) Save(ctx context.Context, challenge *domain.OTPChallenge) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, challenge)
	}
	return nil
}

// FindByPaymentID finds the challenge bound to a payment
func (m *MockOTPRepository) FindByPaymentID(ctx context.Context, paymentID string) (*domain.OTPChallenge, error) {
	if m.FindByPaymentIDFunc != nil {
		return m.FindByPaymentIDFunc(ctx, paymentID)
	}
	// Default behavior: not found
	return nil, domain.ErrOTPNotFound
}

// Delete removes the challenge bound to a payment
func (m *MockOTPRepository) Delete(ctx context.Context, paymentID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, paymentID)
	}
	return nil
}

// Verify interface compliance at compile time
var _ domain.OTPRepository = (*MockOTPRepository)(nil)
