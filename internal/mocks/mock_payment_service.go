package mocks

import (
	"context"

	"github.com/you/tuitionsvc/domain"
)

// MockPaymentService implements domain.PaymentService interface for testing
type MockPaymentService struct {
	ReserveFunc    func(ctx context.Context, userID, studentID, studentName string, debtSemesters []domain.SemesterTuition) (*domain.Payment, error)
	CancelFunc     func(ctx context.Context, paymentID string) error
	GetPaymentFunc func(ctx context.Context, paymentID string) (*domain.Payment, error)
}

// NewMockPaymentService creates a new MockPaymentService with default behaviors
func NewMockPaymentService() *MockPaymentService {
	return &MockPaymentService{}
}

// Reserve creates a pending payment for a student's debt snapshot
func (m *MockPaymentService) Reserve(ctx context.Context, userID, studentID, studentName string, debtSemesters []domain.SemesterTuition) (*domain.Payment, error) {
	if m.ReserveFunc != nil {
		return m.ReserveFunc(ctx, userID, studentID, studentName, debtSemesters)
	}
	// Default behavior: echo a pending payment
	var amount int64
	for _, sem := range debtSemesters {
		amount += sem.Amount
	}
	return &domain.Payment{
		ID:          "pay_mock",
		UserID:      userID,
		StudentID:   studentID,
		StudentName: studentName,
		Amount:      amount,
		Status:      domain.PaymentPending,
		IsLocked:    true,
		Semesters:   debtSemesters,
	}, nil
}

// Cancel cancels a payment
func (m *MockPaymentService) Cancel(ctx context.Context, paymentID string) error {
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, paymentID)
	}
	return nil
}

// GetPayment finds a payment by ID
func (m *MockPaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetPaymentFunc != nil {
		return m.GetPaymentFunc(ctx, paymentID)
	}
	// Default behavior: not found
	return nil, domain.ErrPaymentNotFound
}

// Verify interface compliance at compile time
var _ domain.PaymentService = (*MockPaymentService)(nil)
