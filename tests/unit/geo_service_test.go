package unit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"donorlink/internal/domain"
	"donorlink/internal/service/geo"
	"donorlink/tests/mocks"
)

func TestDistance(t *testing.T) {
	t.Run("Symmetric", func(t *testing.T) {
		a := domain.Coordinate{Lat: 52.52, Lng: 13.405}
		b := domain.Coordinate{Lat: 48.8566, Lng: 2.3522}

		assert.Equal(t, domain.Distance(a, b), domain.Distance(b, a))
	})

	t.Run("Zero For Identical Points", func(t *testing.T) {
		p := domain.Coordinate{Lat: -6.2, Lng: 106.8}
		assert.Equal(t, 0.0, domain.Distance(p, p))
	})

	t.Run("One Degree Longitude At Equator", func(t *testing.T) {
		d := domain.Distance(domain.Coordinate{Lat: 0, Lng: 0}, domain.Coordinate{Lat: 0, Lng: 1})
		assert.InDelta(t, 111.2, d, 0.1)
	})

	t.Run("Antipodal Points", func(t *testing.T) {
		d := domain.Distance(domain.Coordinate{Lat: 0, Lng: 0}, domain.Coordinate{Lat: 0, Lng: 180})
		assert.InDelta(t, 20015, d, 1)
	})
}

func TestGeoService_FindDonorsWithinRadius(t *testing.T) {
	ctx := context.Background()
	center := domain.Coordinate{Lat: 0, Lng: 0}

	near := domain.User{ID: uuid.New(), Phone: "+6281000000001", Latitude: floatPtr(0), Longitude: floatPtr(0.05)}
	mid := domain.User{ID: uuid.New(), Phone: "+6281000000002", Latitude: floatPtr(0), Longitude: floatPtr(0.1)}
	noLocation := domain.User{ID: uuid.New(), Phone: "+6281000000003"}
	far := domain.User{ID: uuid.New(), Phone: "+6281000000004", Latitude: floatPtr(0), Longitude: floatPtr(3)}

	t.Run("Filters Sorts And Rounds", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		requestRepo := new(mocks.RequestRepository)
		svc := geo.NewService(userRepo, requestRepo)

		userRepo.On("List", ctx, (*string)(nil)).
			Return([]domain.User{mid, far, noLocation, near}, nil).Once()

		matches, err := svc.FindDonorsWithinRadius(ctx, center, 25, nil)

		assert.NoError(t, err)
		assert.Len(t, matches, 2)
		assert.Equal(t, near.ID, matches[0].ID)
		assert.Equal(t, 5.6, matches[0].Distance)
		assert.Equal(t, mid.ID, matches[1].ID)
		assert.Equal(t, 11.1, matches[1].Distance)
	})

	t.Run("Radius Boundary", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		requestRepo := new(mocks.RequestRepository)
		svc := geo.NewService(userRepo, requestRepo)

		oneDegree := domain.User{ID: uuid.New(), Phone: "+6281000000005", Latitude: floatPtr(0), Longitude: floatPtr(1)}
		userRepo.On("List", ctx, (*string)(nil)).Return([]domain.User{oneDegree}, nil).Twice()

		excluded, err := svc.FindDonorsWithinRadius(ctx, center, 100, nil)
		assert.NoError(t, err)
		assert.Empty(t, excluded)

		included, err := svc.FindDonorsWithinRadius(ctx, center, 120, nil)
		assert.NoError(t, err)
		assert.Len(t, included, 1)
		assert.Equal(t, 111.2, included[0].Distance)
	})

	t.Run("Blood Type Filter Is Pushed To Storage", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		requestRepo := new(mocks.RequestRepository)
		svc := geo.NewService(userRepo, requestRepo)

		bloodType := "O-"
		userRepo.On("List", ctx, &bloodType).Return([]domain.User{}, nil).Once()

		matches, err := svc.FindDonorsWithinRadius(ctx, center, 25, &bloodType)

		assert.NoError(t, err)
		assert.Empty(t, matches)
		userRepo.AssertExpectations(t)
	})

	t.Run("Storage Error Propagates", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		requestRepo := new(mocks.RequestRepository)
		svc := geo.NewService(userRepo, requestRepo)

		userRepo.On("List", ctx, (*string)(nil)).Return(nil, errors.New("db error")).Once()

		matches, err := svc.FindDonorsWithinRadius(ctx, center, 25, nil)

		assert.Error(t, err)
		assert.Nil(t, matches)
	})
}

func TestGeoService_FindRequestsWithinRadius(t *testing.T) {
	ctx := context.Background()
	center := domain.Coordinate{Lat: 0, Lng: 0}

	nearNormal := domain.BloodRequest{ID: uuid.New(), Urgency: "Normal", Latitude: 0, Longitude: 0.02}
	farUrgent := domain.BloodRequest{ID: uuid.New(), Urgency: domain.UrgencyUrgent, Latitude: 0, Longitude: 0.2}
	nearUrgent := domain.BloodRequest{ID: uuid.New(), Urgency: domain.UrgencyUrgent, Latitude: 0, Longitude: 0.1}
	outOfRange := domain.BloodRequest{ID: uuid.New(), Urgency: domain.UrgencyUrgent, Latitude: 0, Longitude: 5}

	t.Run("Urgent First Then Distance", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		requestRepo := new(mocks.RequestRepository)
		svc := geo.NewService(userRepo, requestRepo)

		requestRepo.On("List", ctx, (*string)(nil)).
			Return([]domain.BloodRequest{nearNormal, farUrgent, nearUrgent, outOfRange}, nil).Once()

		matches, err := svc.FindRequestsWithinRadius(ctx, center, 25, nil)

		assert.NoError(t, err)
		assert.Len(t, matches, 3)
		// Urgent entries precede the closer non-urgent one.
		assert.Equal(t, nearUrgent.ID, matches[0].ID)
		assert.Equal(t, farUrgent.ID, matches[1].ID)
		assert.Equal(t, nearNormal.ID, matches[2].ID)
	})

	t.Run("Storage Error Propagates", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		requestRepo := new(mocks.RequestRepository)
		svc := geo.NewService(userRepo, requestRepo)

		requestRepo.On("List", ctx, (*string)(nil)).Return(nil, errors.New("db error")).Once()

		matches, err := svc.FindRequestsWithinRadius(ctx, center, 25, nil)

		assert.Error(t, err)
		assert.Nil(t, matches)
	})
}

func floatPtr(f float64) *float64 {
	return &f
}
