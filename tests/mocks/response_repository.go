package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"donorlink/internal/domain"
)

type ResponseRepository struct {
	mock.Mock
}

func (m *ResponseRepository) Create(ctx context.Context, resp *domain.Response) error {
	args := m.Called(ctx, resp)
	return args.Error(0)
}

func (m *ResponseRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Response, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Response), args.Error(1)
}
