package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/you/tuitionsvc/domain"
)

func testTransaction(id, userID string) *domain.Transaction {
	return &domain.Transaction{
		ID:          id,
		PaymentID:   "pay_" + id,
		UserID:      userID,
		StudentID:   "SV005",
		StudentName: "Hoang Van E",
		Amount:      8000000,
		Status:      domain.TransactionSuccess,
		CreatedAt:   time.Now(),
	}
}

func TestTransactionRepositoryImpl_AppendAndFind(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewTransactionRepository(client)
	ctx := context.Background()

	txn := testTransaction("txn_1", "user2")
	if err := repo.Append(ctx, txn); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := repo.FindByID(ctx, "txn_1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.PaymentID != "pay_txn_1" || got.Amount != 8000000 {
		t.Errorf("FindByID() = %+v", got)
	}

	// Ledger entries are permanent.
	if ttl := client.TTL(ctx, "txn:txn_1").Val(); ttl > 0 {
		t.Errorf("expected no TTL on ledger entry, got %v", ttl)
	}
}

func TestTransactionRepositoryImpl_FindByID_NotFound(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewTransactionRepository(client)

	_, err := repo.FindByID(context.Background(), "txn_missing")
	if err != domain.ErrTransactionNotFound {
		t.Errorf("FindByID() error = %v, want %v", err, domain.ErrTransactionNotFound)
	}
}

func TestTransactionRepositoryImpl_HistoryOrder(t *testing.T) {
	client := setupTestRedis(t)
	repo := NewTransactionRepository(client)
	ctx := context.Background()

	for _, id := range []string{"txn_a", "txn_b", "txn_c"} {
		if err := repo.Append(ctx, testTransaction(id, "user2")); err != nil {
			t.Fatalf("Append(%s) error = %v", id, err)
		}
	}
	if err := repo.Append(ctx, testTransaction("txn_other", "user3")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	txns, err := repo.FindByUserID(ctx, "user2")
	if err != nil {
		t.Fatalf("FindByUserID() error = %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("len(txns) = %d, want 3", len(txns))
	}
	for i, want := range []string{"txn_a", "txn_b", "txn_c"} {
		if txns[i].ID != want {
			t.Errorf("txns[%d].ID = %s, want %s", i, txns[i].ID, want)
		}
	}

	empty, err := repo.FindByUserID(ctx, "user_without_history")
	if err != nil {
		t.Fatalf("FindByUserID() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("len(empty) = %d, want 0", len(empty))
	}
}
