// Package request orchestrates the blood-request lifecycle: creation with
// donor fan-out, donor responses, owner-only deletion, and nearby discovery
// for donors.
package request

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"donorlink/internal/domain"
	"donorlink/internal/repository"
	"donorlink/internal/service/geo"
	"donorlink/internal/service/notification"
)

var (
	ErrRequestNotFound  = errors.New("request not found")
	ErrDonorNotFound    = errors.New("donor profile not found")
	ErrNotRequestOwner  = errors.New("only the requester may delete this request")
	ErrLocationNotSet   = errors.New("profile location not set")
	ErrInvalidBloodType = errors.New("invalid blood type")
	ErrInvalidDecision  = errors.New("decision must be accepted or rejected")
)

type Service interface {
	Create(ctx context.Context, requesterID uuid.UUID, input domain.CreateRequestInput) (*domain.BloodRequest, error)
	Respond(ctx context.Context, requestID, donorID uuid.UUID, decision domain.ResponseDecision) (*domain.Response, error)
	Delete(ctx context.Context, requestID, callerID uuid.UUID) error
	NearbyForDonor(ctx context.Context, donorID uuid.UUID) ([]domain.RequestMatch, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]domain.BloodRequest, error)
	ListResponses(ctx context.Context, requestID uuid.UUID) ([]domain.Response, error)
}

type service struct {
	requestRepo    repository.RequestRepository
	responseRepo   repository.ResponseRepository
	userRepo       repository.UserRepository
	geoSvc         geo.Service
	notifSvc       notification.Service
	searchRadiusKm float64
}

func NewService(
	requestRepo repository.RequestRepository,
	responseRepo repository.ResponseRepository,
	userRepo repository.UserRepository,
	geoSvc geo.Service,
	notifSvc notification.Service,
	searchRadiusKm float64,
) Service {
	return &service{
		requestRepo:    requestRepo,
		responseRepo:   responseRepo,
		userRepo:       userRepo,
		geoSvc:         geoSvc,
		notifSvc:       notifSvc,
		searchRadiusKm: searchRadiusKm,
	}
}

// Create persists a pending request, then fans out to matching donors within
// the search radius. Fan-out is advisory: its failure never fails creation.
func (s *service) Create(ctx context.Context, requesterID uuid.UUID, input domain.CreateRequestInput) (*domain.BloodRequest, error) {
	if !domain.BloodType(input.BloodType).IsValid() {
		return nil, ErrInvalidBloodType
	}

	req := &domain.BloodRequest{
		ID:          uuid.New(),
		RequesterID: requesterID,
		BloodType:   input.BloodType,
		Urgency:     input.Urgency,
		Latitude:    input.Location.Lat,
		Longitude:   input.Location.Lng,
		Status:      domain.RequestPending,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	if err := s.notifyNearbyDonors(ctx, req); err != nil {
		log.Printf("failed to notify nearby donors for request %s: %v", req.ID, err)
	}

	return req, nil
}

func (s *service) notifyNearbyDonors(ctx context.Context, req *domain.BloodRequest) error {
	donors, err := s.geoSvc.FindDonorsWithinRadius(ctx, req.Location(), s.searchRadiusKm, &req.BloodType)
	if err != nil {
		return err
	}

	return s.notifSvc.NotifyBloodRequest(ctx, req, donors, s.searchRadiusKm)
}

// Respond always appends the donor's decision. Accepting additionally moves
// the request to accepted with this donor assigned and notifies the
// requester; rejecting changes nothing else. Concurrent accepts both land
// their response rows and resolve last-write-wins on the request.
func (s *service) Respond(ctx context.Context, requestID, donorID uuid.UUID, decision domain.ResponseDecision) (*domain.Response, error) {
	if !decision.IsValid() {
		return nil, ErrInvalidDecision
	}

	resp := &domain.Response{
		ID:        uuid.New(),
		RequestID: requestID,
		DonorID:   donorID,
		Decision:  decision,
	}

	if err := s.responseRepo.Create(ctx, resp); err != nil {
		return nil, err
	}

	if decision == domain.DecisionAccepted {
		if err := s.requestRepo.Accept(ctx, requestID, donorID); err != nil {
			return nil, err
		}

		s.notifyRequester(ctx, requestID, decision)
	}

	return resp, nil
}

func (s *service) notifyRequester(ctx context.Context, requestID uuid.UUID, decision domain.ResponseDecision) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil || req == nil {
		if err != nil {
			log.Printf("failed to load request %s for requester notification: %v", requestID, err)
		}
		return
	}

	if err := s.notifSvc.NotifyDonorResponse(ctx, req, decision); err != nil {
		log.Printf("failed to notify requester of request %s: %v", requestID, err)
	}
}

// Delete removes the request and all of its responses. Only the requester may
// delete; the cascade runs in one transaction.
func (s *service) Delete(ctx context.Context, requestID, callerID uuid.UUID) error {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrRequestNotFound
	}
	if req.RequesterID != callerID {
		return ErrNotRequestOwner
	}

	return s.requestRepo.DeleteWithResponses(ctx, requestID)
}

// NearbyForDonor lists open requests around the donor's stored location,
// any blood type, urgent first.
func (s *service) NearbyForDonor(ctx context.Context, donorID uuid.UUID) ([]domain.RequestMatch, error) {
	donor, err := s.userRepo.GetByID(ctx, donorID)
	if err != nil {
		return nil, err
	}
	if donor == nil {
		return nil, ErrDonorNotFound
	}

	loc := donor.Location()
	if loc == nil {
		return nil, ErrLocationNotSet
	}

	return s.geoSvc.FindRequestsWithinRadius(ctx, *loc, s.searchRadiusKm, nil)
}

func (s *service) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]domain.BloodRequest, error) {
	return s.requestRepo.ListByRequester(ctx, requesterID)
}

func (s *service) ListResponses(ctx context.Context, requestID uuid.UUID) ([]domain.Response, error) {
	return s.responseRepo.ListByRequest(ctx, requestID)
}
