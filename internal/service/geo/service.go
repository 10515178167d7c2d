// Package geo answers radius queries over donor profiles and blood requests.
// It scans the full collection (optionally pre-filtered by blood type at the
// storage layer) and refines by haversine distance in memory. Fine at current
// collection sizes; anything larger wants a bounding-box pre-filter first.
package geo

import (
	"context"
	"sort"

	"donorlink/internal/domain"
	"donorlink/internal/repository"
)

type Service interface {
	FindDonorsWithinRadius(ctx context.Context, center domain.Coordinate, radiusKm float64, bloodType *string) ([]domain.DonorMatch, error)
	FindRequestsWithinRadius(ctx context.Context, center domain.Coordinate, radiusKm float64, bloodType *string) ([]domain.RequestMatch, error)
}

type service struct {
	userRepo    repository.UserRepository
	requestRepo repository.RequestRepository
}

func NewService(userRepo repository.UserRepository, requestRepo repository.RequestRepository) Service {
	return &service{
		userRepo:    userRepo,
		requestRepo: requestRepo,
	}
}

// FindDonorsWithinRadius returns profiles within radiusKm of center, sorted
// ascending by distance. Profiles without a stored location are skipped.
func (s *service) FindDonorsWithinRadius(ctx context.Context, center domain.Coordinate, radiusKm float64, bloodType *string) ([]domain.DonorMatch, error) {
	users, err := s.userRepo.List(ctx, bloodType)
	if err != nil {
		return nil, err
	}

	matches := make([]domain.DonorMatch, 0, len(users))
	for _, user := range users {
		loc := user.Location()
		if loc == nil {
			continue
		}

		d := domain.Distance(center, *loc)
		if d <= radiusKm {
			matches = append(matches, domain.DonorMatch{
				User:     user,
				Distance: domain.RoundDistance(d),
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	return matches, nil
}

// FindRequestsWithinRadius returns requests within radiusKm of center. Urgent
// requests sort before all others regardless of distance, keeping their
// relative order; within the same urgency class, nearest first.
func (s *service) FindRequestsWithinRadius(ctx context.Context, center domain.Coordinate, radiusKm float64, bloodType *string) ([]domain.RequestMatch, error) {
	requests, err := s.requestRepo.List(ctx, bloodType)
	if err != nil {
		return nil, err
	}

	matches := make([]domain.RequestMatch, 0, len(requests))
	for _, req := range requests {
		d := domain.Distance(center, req.Location())
		if d <= radiusKm {
			matches = append(matches, domain.RequestMatch{
				BloodRequest: req,
				Distance:     domain.RoundDistance(d),
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].IsUrgent() != matches[j].IsUrgent() {
			return matches[i].IsUrgent()
		}
		return matches[i].Distance < matches[j].Distance
	})

	return matches, nil
}
