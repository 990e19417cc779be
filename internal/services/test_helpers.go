package services

import (
	"context"
	"testing"
	"time"

	"github.com/you/tuitionsvc/domain"
	"github.com/you/tuitionsvc/internal/mocks"
)

// createTestContext creates a context for testing with timeout
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// createTestUser creates a payer with a comfortable balance
func createTestUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           "user2",
		Username:     "jane_smith",
		PasswordHash: "hashed_password123",
		FullName:     "Jane Smith",
		Email:        "jane.smith@example.com",
		Phone:        "0987654321",
		Role:         "user",
		Balance:      10000000,
	}
}

// createTestStudent creates a student with two 4M debt semesters
func createTestStudent(t *testing.T) *domain.Student {
	t.Helper()

	return &domain.Student{
		StudentID:   "SV005",
		StudentName: "Hoang Van E",
		Semesters: []domain.SemesterTuition{
			{ID: "SV005_2025_S1", Name: "Semester 1", SchoolYear: "2025-2026", Amount: 4000000, Status: domain.SemesterDebt},
			{ID: "SV005_2025_S2", Name: "Semester 2", SchoolYear: "2025-2026", Amount: 4000000, Status: domain.SemesterDebt},
			{ID: "SV005_2026_S1", Name: "Semester 1", SchoolYear: "2026-2027", Amount: 4000000, Status: domain.SemesterPaid},
		},
	}
}

// createPendingPayment creates a pending, locked payment for the test pair
func createPendingPayment(t *testing.T) *domain.Payment {
	t.Helper()

	return &domain.Payment{
		ID:          "pay_test",
		UserID:      "user2",
		StudentID:   "SV005",
		StudentName: "Hoang Van E",
		Amount:      8000000,
		Status:      domain.PaymentPending,
		CreatedAt:   time.Now(),
		IsLocked:    true,
		Semesters: []domain.SemesterTuition{
			{ID: "SV005_2025_S1", Name: "Semester 1", SchoolYear: "2025-2026", Amount: 4000000, Status: domain.SemesterDebt},
			{ID: "SV005_2025_S2", Name: "Semester 2", SchoolYear: "2025-2026", Amount: 4000000, Status: domain.SemesterDebt},
		},
	}
}

// createActiveChallenge creates an unexpired challenge with no attempts
func createActiveChallenge(t *testing.T, paymentID string) *domain.OTPChallenge {
	t.Helper()

	return &domain.OTPChallenge{
		Code:      "123456",
		PaymentID: paymentID,
		ExpiresAt: time.Now().Add(time.Minute),
	}
}

// paymentStore wires a MockPaymentRepository to an in-memory map so
// service code sees its own updates.
func paymentStore(t *testing.T, repo *mocks.MockPaymentRepository, payments ...*domain.Payment) map[string]*domain.Payment {
	t.Helper()

	store := make(map[string]*domain.Payment)
	for _, p := range payments {
		store[p.ID] = p
	}

	repo.CreateFunc = func(ctx context.Context, payment *domain.Payment) error {
		store[payment.ID] = payment
		return nil
	}
	repo.FindByIDFunc = func(ctx context.Context, paymentID string) (*domain.Payment, error) {
		if p, ok := store[paymentID]; ok {
			copied := *p
			return &copied, nil
		}
		return nil, domain.ErrPaymentNotFound
	}
	repo.UpdateFunc = func(ctx context.Context, payment *domain.Payment) error {
		if _, ok := store[payment.ID]; !ok {
			return domain.ErrPaymentNotFound
		}
		store[payment.ID] = payment
		return nil
	}

	return store
}

// challengeStore wires a MockOTPRepository to an in-memory map
func challengeStore(t *testing.T, repo *mocks.MockOTPRepository, challenges ...*domain.OTPChallenge) map[string]*domain.OTPChallenge {
	t.Helper()

	store := make(map[string]*domain.OTPChallenge)
	for _, c := range challenges {
		store[c.PaymentID] = c
	}

	repo.SaveFunc = func(ctx context.Context, challenge *domain.OTPChallenge) error {
		store[challenge.PaymentID] = challenge
		return nil
	}
	repo.FindByPaymentIDFunc = func(ctx context.Context, paymentID string) (*domain.OTPChallenge, error) {
		if c, ok := store[paymentID]; ok {
			copied := *c
			return &copied, nil
		}
		return nil, domain.ErrOTPNotFound
	}
	repo.DeleteFunc = func(ctx context.Context, paymentID string) error {
		delete(store, paymentID)
		return nil
	}

	return store
}
