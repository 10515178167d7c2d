package unit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"donorlink/internal/domain"
	"donorlink/internal/service/request"
	"donorlink/tests/mocks"
)

type requestServiceMocks struct {
	requestRepo  *mocks.RequestRepository
	responseRepo *mocks.ResponseRepository
	userRepo     *mocks.UserRepository
	geoSvc       *mocks.GeoService
	notifSvc     *mocks.NotificationService
}

func newRequestService(radiusKm float64) (request.Service, *requestServiceMocks) {
	m := &requestServiceMocks{
		requestRepo:  new(mocks.RequestRepository),
		responseRepo: new(mocks.ResponseRepository),
		userRepo:     new(mocks.UserRepository),
		geoSvc:       new(mocks.GeoService),
		notifSvc:     new(mocks.NotificationService),
	}
	svc := request.NewService(m.requestRepo, m.responseRepo, m.userRepo, m.geoSvc, m.notifSvc, radiusKm)
	return svc, m
}

func TestRequestService_Create(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	input := domain.CreateRequestInput{
		BloodType: "A+",
		Urgency:   domain.UrgencyUrgent,
		Location:  domain.Coordinate{Lat: -6.2, Lng: 106.8},
	}

	t.Run("Success With Fan-Out", func(t *testing.T) {
		svc, m := newRequestService(25)

		donors := []domain.DonorMatch{
			{User: domain.User{ID: uuid.New(), Phone: "+6281000000001"}, Distance: 3.2},
		}

		m.requestRepo.On("Create", ctx, mock.MatchedBy(func(req *domain.BloodRequest) bool {
			return req.RequesterID == requesterID &&
				req.BloodType == "A+" &&
				req.Status == domain.RequestPending &&
				req.Latitude == input.Location.Lat &&
				req.Longitude == input.Location.Lng
		})).Return(nil).Once()
		m.geoSvc.On("FindDonorsWithinRadius", ctx, input.Location, 25.0, mock.MatchedBy(func(bt *string) bool {
			return bt != nil && *bt == "A+"
		})).Return(donors, nil).Once()
		m.notifSvc.On("NotifyBloodRequest", ctx, mock.Anything, donors, 25.0).Return(nil).Once()

		req, err := svc.Create(ctx, requesterID, input)

		assert.NoError(t, err)
		assert.NotNil(t, req)
		assert.Equal(t, domain.RequestPending, req.Status)
		m.requestRepo.AssertExpectations(t)
		m.geoSvc.AssertExpectations(t)
		m.notifSvc.AssertExpectations(t)
	})

	t.Run("Fan-Out Failure Does Not Fail Creation", func(t *testing.T) {
		svc, m := newRequestService(25)

		m.requestRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		m.geoSvc.On("FindDonorsWithinRadius", ctx, input.Location, 25.0, mock.Anything).
			Return(nil, errors.New("db error")).Once()

		req, err := svc.Create(ctx, requesterID, input)

		assert.NoError(t, err)
		assert.NotNil(t, req)
		m.notifSvc.AssertNotCalled(t, "NotifyBloodRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid Blood Type", func(t *testing.T) {
		svc, m := newRequestService(25)

		bad := input
		bad.BloodType = "Z+"

		req, err := svc.Create(ctx, requesterID, bad)

		assert.ErrorIs(t, err, request.ErrInvalidBloodType)
		assert.Nil(t, req)
		m.requestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Persistence Failure", func(t *testing.T) {
		svc, m := newRequestService(25)

		m.requestRepo.On("Create", ctx, mock.Anything).Return(errors.New("db error")).Once()

		req, err := svc.Create(ctx, requesterID, input)

		assert.Error(t, err)
		assert.Nil(t, req)
		m.geoSvc.AssertNotCalled(t, "FindDonorsWithinRadius", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRequestService_Respond(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	donorID := uuid.New()

	t.Run("Accepted Assigns Donor And Notifies Requester", func(t *testing.T) {
		svc, m := newRequestService(25)

		req := &domain.BloodRequest{ID: requestID, RequesterID: uuid.New(), Status: domain.RequestAccepted}

		m.responseRepo.On("Create", ctx, mock.MatchedBy(func(resp *domain.Response) bool {
			return resp.RequestID == requestID &&
				resp.DonorID == donorID &&
				resp.Decision == domain.DecisionAccepted
		})).Return(nil).Once()
		m.requestRepo.On("Accept", ctx, requestID, donorID).Return(nil).Once()
		m.requestRepo.On("GetByID", ctx, requestID).Return(req, nil).Once()
		m.notifSvc.On("NotifyDonorResponse", ctx, req, domain.DecisionAccepted).Return(nil).Once()

		resp, err := svc.Respond(ctx, requestID, donorID, domain.DecisionAccepted)

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		m.requestRepo.AssertExpectations(t)
		m.notifSvc.AssertExpectations(t)
	})

	t.Run("Rejected Only Records The Response", func(t *testing.T) {
		svc, m := newRequestService(25)

		m.responseRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		resp, err := svc.Respond(ctx, requestID, donorID, domain.DecisionRejected)

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		m.requestRepo.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything, mock.Anything)
		m.notifSvc.AssertNotCalled(t, "NotifyDonorResponse", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Notification Failure Does Not Fail Response", func(t *testing.T) {
		svc, m := newRequestService(25)

		m.responseRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		m.requestRepo.On("Accept", ctx, requestID, donorID).Return(nil).Once()
		m.requestRepo.On("GetByID", ctx, requestID).Return(nil, errors.New("db error")).Once()

		resp, err := svc.Respond(ctx, requestID, donorID, domain.DecisionAccepted)

		assert.NoError(t, err)
		assert.NotNil(t, resp)
	})

	t.Run("Invalid Decision", func(t *testing.T) {
		svc, m := newRequestService(25)

		resp, err := svc.Respond(ctx, requestID, donorID, domain.ResponseDecision("maybe"))

		assert.ErrorIs(t, err, request.ErrInvalidDecision)
		assert.Nil(t, resp)
		m.responseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRequestService_Delete(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	ownerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, m := newRequestService(25)

		m.requestRepo.On("GetByID", ctx, requestID).
			Return(&domain.BloodRequest{ID: requestID, RequesterID: ownerID}, nil).Once()
		m.requestRepo.On("DeleteWithResponses", ctx, requestID).Return(nil).Once()

		err := svc.Delete(ctx, requestID, ownerID)

		assert.NoError(t, err)
		m.requestRepo.AssertExpectations(t)
	})

	t.Run("Not Owner", func(t *testing.T) {
		svc, m := newRequestService(25)

		m.requestRepo.On("GetByID", ctx, requestID).
			Return(&domain.BloodRequest{ID: requestID, RequesterID: ownerID}, nil).Once()

		err := svc.Delete(ctx, requestID, uuid.New())

		assert.ErrorIs(t, err, request.ErrNotRequestOwner)
		m.requestRepo.AssertNotCalled(t, "DeleteWithResponses", mock.Anything, mock.Anything)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc, m := newRequestService(25)

		m.requestRepo.On("GetByID", ctx, requestID).Return(nil, nil).Once()

		err := svc.Delete(ctx, requestID, ownerID)

		assert.ErrorIs(t, err, request.ErrRequestNotFound)
	})
}

func TestRequestService_NearbyForDonor(t *testing.T) {
	ctx := context.Background()
	donorID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, m := newRequestService(25)

		donor := &domain.User{ID: donorID, Phone: "+6281000000001", Latitude: floatPtr(-6.2), Longitude: floatPtr(106.8)}
		matches := []domain.RequestMatch{
			{BloodRequest: domain.BloodRequest{ID: uuid.New(), Urgency: domain.UrgencyUrgent}, Distance: 4.1},
		}

		m.userRepo.On("GetByID", ctx, donorID).Return(donor, nil).Once()
		m.geoSvc.On("FindRequestsWithinRadius", ctx, domain.Coordinate{Lat: -6.2, Lng: 106.8}, 25.0, (*string)(nil)).
			Return(matches, nil).Once()

		result, err := svc.NearbyForDonor(ctx, donorID)

		assert.NoError(t, err)
		assert.Equal(t, matches, result)
	})

	t.Run("Location Not Set", func(t *testing.T) {
		svc, m := newRequestService(25)

		m.userRepo.On("GetByID", ctx, donorID).
			Return(&domain.User{ID: donorID, Phone: "+6281000000001"}, nil).Once()

		result, err := svc.NearbyForDonor(ctx, donorID)

		assert.ErrorIs(t, err, request.ErrLocationNotSet)
		assert.Nil(t, result)
		m.geoSvc.AssertNotCalled(t, "FindRequestsWithinRadius", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Donor Not Found", func(t *testing.T) {
		svc, m := newRequestService(25)

		m.userRepo.On("GetByID", ctx, donorID).Return(nil, nil).Once()

		result, err := svc.NearbyForDonor(ctx, donorID)

		assert.ErrorIs(t, err, request.ErrDonorNotFound)
		assert.Nil(t, result)
	})
}
