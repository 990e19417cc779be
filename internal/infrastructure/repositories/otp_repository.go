package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/tuitionsvc/domain"
)

// OTPRepositoryImpl implements domain.OTPRepository using Redis.
// ExpiresAt inside the stored challenge is the expiry authority; the Redis
// TTL is only a cleanup backstop set to twice the challenge lifetime, so
// a stale challenge is still readable and can be reported as expired
// rather than missing.
type OTPRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewOTPRepository creates a new OTP challenge repository
func NewOTPRepository(client *redis.Client, ttl time.Duration) domain.OTPRepository {
	return &OTPRepositoryImpl{
		client: client,
		prefix: "otp:payment:",
		ttl:    ttl,
	}
}

// Save implements domain.OTPRepository. Saving over an existing challenge
// replaces it, which is how reissue keeps at most one code per payment.
func (r *OTPRepositoryImpl) Save(ctx context.Context, challenge *domain.OTPChallenge) error {
	key := r.prefix + challenge.PaymentID
	data, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal otp challenge: %w", err)
	}

	return r.client.Set(ctx, key, data, 2*r.ttl).Err()
}

// FindByPaymentID implements domain.OTPRepository
func (r *OTPRepositoryImpl) FindByPaymentID(ctx context.Context, paymentID string) (*domain.OTPChallenge, error) {
	key := r.prefix + paymentID
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}

	var challenge domain.OTPChallenge
	if err := json.Unmarshal([]byte(data), &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp challenge: %w", err)
	}

	return &challenge, nil
}

// Delete implements domain.OTPRepository
func (r *OTPRepositoryImpl) Delete(ctx context.Context, paymentID string) error {
	key := r.prefix + paymentID
	return r.client.Del(ctx, key).Err()
}
