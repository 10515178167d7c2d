package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type OTPRepository struct {
	mock.Mock
}

func (m *OTPRepository) Store(ctx context.Context, phone, codeHash string, ttl time.Duration) error {
	args := m.Called(ctx, phone, codeHash, ttl)
	return args.Error(0)
}

func (m *OTPRepository) Get(ctx context.Context, phone string) (string, error) {
	args := m.Called(ctx, phone)
	return args.String(0), args.Error(1)
}

func (m *OTPRepository) Delete(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

func (m *OTPRepository) Throttle(ctx context.Context, phone string, window time.Duration) (bool, error) {
	args := m.Called(ctx, phone, window)
	return args.Bool(0), args.Error(1)
}
