package mocks

import (
	"context"
	"time"

	"github.com/you/tuitionsvc/domain"
)

// MockPaymentRepository implements domain.PaymentRepository interface for testing
type MockPaymentRepository struct {
	CreateFunc      func(ctx context.Context, payment *domain.Payment) error
	FindByIDFunc    func(ctx context.Context, paymentID string) (*domain.Payment, error)
	UpdateFunc      func(ctx context.Context, payment *domain.Payment) error
	AcquireGateFunc func(ctx context.Context, userID, studentID string, ttl time.Duration) (bool, error)
	ReleaseGateFunc func(ctx context.Context, userID, studentID string) error
}

// NewMockPaymentRepository creates a new MockPaymentRepository with default behaviors
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{}
}

// Create stores a payment reservation
func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, payment)
	}
	return nil
}

// FindByID finds a payment by ID
func (m *MockPaymentRepository) FindByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, paymentID)
	}
	// Default behavior: not found
	return nil, domain.ErrPaymentNotFound
}

// Update stores the new state of a payment
func (m *MockPaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, payment)
	}
	return nil
}

// AcquireGate claims the single-in-flight slot for a (user, student) pair
func (m *MockPaymentRepository) AcquireGate(ctx context.Context, userID, studentID string, ttl time.Duration) (bool, error) {
	if m.AcquireGateFunc != nil {
		return m.AcquireGateFunc(ctx, userID, studentID, ttl)
	}
	// Default behavior: gate is free
	return true, nil
}

// ReleaseGate frees the slot for a (user, student) pair
func (m *MockPaymentRepository) ReleaseGate(ctx context.Context, userID, studentID string) error {
	if m.ReleaseGateFunc != nil {
		return m.ReleaseGateFunc(ctx, userID, studentID)
	}
	return nil
}

// Verify interface compliance at compile time
var _ domain.PaymentRepository = (*MockPaymentRepository)(nil)
