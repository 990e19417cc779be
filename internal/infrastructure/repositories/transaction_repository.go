package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/you/tuitionsvc/domain"
)

// TransactionRepositoryImpl implements domain.TransactionRepository using
// Redis. Ledger entries are written once under "txn:<id>" with no TTL and
// indexed per user in a list, so history survives restarts and reads back
// in append order.
type TransactionRepositoryImpl struct {
	client *redis.Client
	prefix string
}

// NewTransactionRepository creates a new transaction ledger repository
func NewTransactionRepository(client *redis.Client) domain.TransactionRepository {
	return &TransactionRepositoryImpl{
		client: client,
		prefix: "txn:",
	}
}

// Append implements domain.TransactionRepository
func (r *TransactionRepositoryImpl) Append(ctx context.Context, txn *domain.Transaction) error {
	data, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.prefix+txn.ID, data, 0)
	pipe.RPush(ctx, r.prefix+"user:"+txn.UserID, txn.ID)
	_, err = pipe.Exec(ctx)
	return err
}

// FindByID implements domain.TransactionRepository
func (r *TransactionRepositoryImpl) FindByID(ctx context.Context, txnID string) (*domain.Transaction, error) {
	data, err := r.client.Get(ctx, r.prefix+txnID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	var txn domain.Transaction
	if err := json.Unmarshal([]byte(data), &txn); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return &txn, nil
}

// FindByUserID implements domain.TransactionRepository
func (r *TransactionRepositoryImpl) FindByUserID(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	ids, err := r.client.LRange(ctx, r.prefix+"user:"+userID, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	txns := make([]*domain.Transaction, 0, len(ids))
	for _, id := range ids {
		txn, err := r.FindByID(ctx, id)
		if err != nil {
			if err == domain.ErrTransactionNotFound {
				continue
			}
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, nil
}
