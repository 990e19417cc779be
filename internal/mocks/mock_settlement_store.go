package mocks

import (
	"context"

	"github.com/you/tuitionsvc/domain"
)

// MockSettlementStore implements domain.SettlementStore interface for testing
type MockSettlementStore struct {
	DebitAndMarkPaidFunc func(ctx context.Context, userID string, amount int64, studentID string, semesterIDs []string) (int64, error)
}

// NewMockSettlementStore creates a new MockSettlementStore with default behaviors
func NewMockSettlementStore() *MockSettlementStore {
	return &MockSettlementStore{}
}

// DebitAndMarkPaid debits the user and marks the semesters paid atomically
func (m *MockSettlementStore) DebitAndMarkPaid(ctx context.Context, userID string, amount int64, studentID string, semesterIDs []string) (int64, error) {
	if m.DebitAndMarkPaidFunc != nil {
		return m.DebitAndMarkPaidFunc(ctx, userID, amount, studentID, semesterIDs)
	}
	// Default behavior: debit succeeds with a zero remainder
	return 0, nil
}

// Verify interface compliance at compile time
var _ domain.SettlementStore = (*MockSettlementStore)(nil)
