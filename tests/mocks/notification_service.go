package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"donorlink/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Record(ctx context.Context, notif *domain.Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) int64 {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64)
}

func (m *NotificationService) NotifyBloodRequest(ctx context.Context, req *domain.BloodRequest, donors []domain.DonorMatch, radiusKm float64) error {
	args := m.Called(ctx, req, donors, radiusKm)
	return args.Error(0)
}

func (m *NotificationService) NotifyDonorResponse(ctx context.Context, req *domain.BloodRequest, decision domain.ResponseDecision) error {
	args := m.Called(ctx, req, decision)
	return args.Error(0)
}
