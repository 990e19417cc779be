package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/tuitionsvc/domain"
)

// PaymentRepositoryImpl implements domain.PaymentRepository using Redis.
// Payments live under "payment:<id>" with the reservation TTL; the
// single-in-flight gate for a (user, student) pair is a separate SETNX key
// so claiming it is one atomic round trip.
type PaymentRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(client *redis.Client, ttl time.Duration) domain.PaymentRepository {
	return &PaymentRepositoryImpl{
		client: client,
		prefix: "payment:",
		ttl:    ttl,
	}
}

func (r *PaymentRepositoryImpl) gateKey(userID, studentID string) string {
	return fmt.Sprintf("%sgate:%s:%s", r.prefix, userID, studentID)
}

// Create implements domain.PaymentRepository
func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *domain.Payment) error {
	key := r.prefix + payment.ID
	data, err := json.Marshal(payment)
	if err != nil {
		return fmt.Errorf("failed to marshal payment: %w", err)
	}

	return r.client.Set(ctx, key, data, r.ttl).Err()
}

// FindByID implements domain.PaymentRepository
func (r *PaymentRepositoryImpl) FindByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	key := r.prefix + paymentID
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}

	var payment domain.Payment
	if err := json.Unmarshal([]byte(data), &payment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment: %w", err)
	}

	return &payment, nil
}

// Update implements domain.PaymentRepository. The remaining TTL of the
// reservation is preserved so status flips never extend its life, and the
// write is XX-guarded: a reservation whose TTL has lapsed stays gone
// instead of being recreated without one.
func (r *PaymentRepositoryImpl) Update(ctx context.Context, payment *domain.Payment) error {
	key := r.prefix + payment.ID
	data, err := json.Marshal(payment)
	if err != nil {
		return fmt.Errorf("failed to marshal payment: %w", err)
	}

	err = r.client.SetArgs(ctx, key, data, redis.SetArgs{Mode: "XX", KeepTTL: true}).Err()
	if err == redis.Nil {
		return domain.ErrPaymentNotFound
	}
	return err
}

// AcquireGate implements domain.PaymentRepository
func (r *PaymentRepositoryImpl) AcquireGate(ctx context.Context, userID, studentID string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, r.gateKey(userID, studentID), time.Now().Unix(), ttl).Result()
}

// ReleaseGate implements domain.PaymentRepository
func (r *PaymentRepositoryImpl) ReleaseGate(ctx context.Context, userID, studentID string) error {
	return r.client.Del(ctx, r.gateKey(userID, studentID)).Err()
}
