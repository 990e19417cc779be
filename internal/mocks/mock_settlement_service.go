package mocks

import (
	"context"

	"github.com/you/tuitionsvc/domain"
)

// MockSettlementService implements domain.SettlementService interface for testing
type MockSettlementService struct {
	SettleFunc         func(ctx context.Context, paymentID string) (*domain.Transaction, error)
	GetTransactionFunc func(ctx context.Context, txnID string) (*domain.Transaction, error)
	HistoryFunc        func(ctx context.Context, userID string) ([]*domain.Transaction, error)
}

// NewMockSettlementService creates a new MockSettlementService with default behaviors
func NewMockSettlementService() *MockSettlementService {
	return &MockSettlementService{}
}

// Settle commits a verified payment to the ledger
func (m *MockSettlementService) Settle(ctx context.Context, paymentID string) (*domain.Transaction, error) {
	if m.SettleFunc != nil {
		return m.SettleFunc(ctx, paymentID)
	}
	// Default behavior: a success transaction for the payment
	return &domain.Transaction{
		ID:        "txn_mock",
		PaymentID: paymentID,
		Status:    domain.TransactionSuccess,
	}, nil
}

// GetTransaction finds a ledger entry by ID
func (m *MockSettlementService) GetTransaction(ctx context.Context, txnID string) (*domain.Transaction, error) {
	if m.GetTransactionFunc != nil {
		return m.GetTransactionFunc(ctx, txnID)
	}
	// Default behavior: not found
	return nil, domain.ErrTransactionNotFound
}

// History returns a user's ledger entries
func (m *MockSettlementService) History(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, userID)
	}
	// Default behavior: empty history
	return nil, nil
}

// Verify interface compliance at compile time
var _ domain.SettlementService = (*MockSettlementService)(nil)
