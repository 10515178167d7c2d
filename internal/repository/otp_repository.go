package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPRepository holds one-time login codes in Redis. Codes expire on their
// own; the throttle key rate-limits resends per phone number.
type OTPRepository interface {
	Store(ctx context.Context, phone, codeHash string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (string, error)
	Delete(ctx context.Context, phone string) error
	Throttle(ctx context.Context, phone string, window time.Duration) (bool, error)
}

type otpRepository struct {
	client *redis.Client
}

func NewOTPRepository(client *redis.Client) OTPRepository {
	return &otpRepository{client: client}
}

func codeKey(phone string) string {
	return fmt.Sprintf("otp:code:%s", phone)
}

func throttleKey(phone string) string {
	return fmt.Sprintf("otp:throttle:%s", phone)
}

func (r *otpRepository) Store(ctx context.Context, phone, codeHash string, ttl time.Duration) error {
	return r.client.Set(ctx, codeKey(phone), codeHash, ttl).Err()
}

// Get returns the stored code hash, or "" when no code is pending.
func (r *otpRepository) Get(ctx context.Context, phone string) (string, error) {
	hash, err := r.client.Get(ctx, codeKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

func (r *otpRepository) Delete(ctx context.Context, phone string) error {
	return r.client.Del(ctx, codeKey(phone)).Err()
}

// Throttle reports whether a new code may be sent, claiming the window when
// it is free.
func (r *otpRepository) Throttle(ctx context.Context, phone string, window time.Duration) (bool, error) {
	return r.client.SetNX(ctx, throttleKey(phone), "1", window).Result()
}
