package mocks

import (
	"context"

	"github.com/you/tuitionsvc/domain"
)

// MockTransactionRepository implements domain.TransactionRepository interface for testing
type MockTransactionRepository struct {
	AppendFunc       func(ctx context.Context, txn *domain.Transaction) error
	FindByIDFunc     func(ctx context.Context, txnID string) (*domain.Transaction, error)
	FindByUserIDFunc func(ctx context.Context, userID string) ([]*domain.Transaction, error)
}

// NewMockTransactionRepository creates a new MockTransactionRepository with default behaviors
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// Append writes one ledger entry
func (m *MockTransactionRepository) Append(ctx context.Context, txn *domain.Transaction) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, txn)
	}
	return nil
}

// FindByID finds a ledger entry by ID
func (m *MockTransactionRepository) FindByID(ctx context.Context, txnID string) (*domain.Transaction, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, txnID)
	}
	// Default behavior: not found
	return nil, domain.ErrTransactionNotFound
}

// FindByUserID returns a user's ledger entries in append order
func (m *MockTransactionRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	// Default behavior: empty history
	return nil, nil
}

// Verify interface compliance at compile time
var _ domain.TransactionRepository = (*MockTransactionRepository)(nil)
