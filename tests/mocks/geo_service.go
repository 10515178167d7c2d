package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"donorlink/internal/domain"
)

type GeoService struct {
	mock.Mock
}

func (m *GeoService) FindDonorsWithinRadius(ctx context.Context, center domain.Coordinate, radiusKm float64, bloodType *string) ([]domain.DonorMatch, error) {
	args := m.Called(ctx, center, radiusKm, bloodType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DonorMatch), args.Error(1)
}

func (m *GeoService) FindRequestsWithinRadius(ctx context.Context, center domain.Coordinate, radiusKm float64, bloodType *string) ([]domain.RequestMatch, error) {
	args := m.Called(ctx, center, radiusKm, bloodType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RequestMatch), args.Error(1)
}
