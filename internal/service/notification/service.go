package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"donorlink/internal/domain"
	"donorlink/internal/repository"
	"donorlink/internal/service/email"
	"donorlink/internal/service/push"
)

type Service interface {
	Record(ctx context.Context, notif *domain.Notification) error
	List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) int64

	NotifyBloodRequest(ctx context.Context, req *domain.BloodRequest, donors []domain.DonorMatch, radiusKm float64) error
	NotifyDonorResponse(ctx context.Context, req *domain.BloodRequest, decision domain.ResponseDecision) error
}

type service struct {
	notifRepo  repository.NotificationRepository
	userRepo   repository.UserRepository
	emailSvc   email.Service
	pushSender push.Sender
}

func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, emailSvc email.Service, pushSender push.Sender) Service {
	return &service{
		notifRepo:  notifRepo,
		userRepo:   userRepo,
		emailSvc:   emailSvc,
		pushSender: pushSender,
	}
}

func (s *service) Record(ctx context.Context, notif *domain.Notification) error {
	return s.notifRepo.Create(ctx, notif)
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

// UnreadCount degrades to 0 on any failure so a badge render never surfaces a
// storage error.
func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) int64 {
	count, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		log.Printf("failed to count unread notifications for user %s: %v", userID, err)
		return 0
	}
	return count
}

// NotifyBloodRequest fans a new request out to candidate donors, skipping the
// requester. Ledger entries land in one atomic batch; push and email ride on
// top best-effort.
func (s *service) NotifyBloodRequest(ctx context.Context, req *domain.BloodRequest, donors []domain.DonorMatch, radiusKm float64) error {
	title := fmt.Sprintf("New %s Blood Request", req.Urgency)
	message := fmt.Sprintf("%s blood needed within %.0fkm", req.BloodType, radiusKm)

	data, _ := json.Marshal(map[string]string{
		"request_id": req.ID.String(),
		"blood_type": req.BloodType,
		"urgency":    req.Urgency,
	})

	var notifs []*domain.Notification
	var recipients []domain.DonorMatch
	for _, donor := range donors {
		if donor.ID == req.RequesterID {
			continue
		}
		notifs = append(notifs, &domain.Notification{
			ID:          uuid.New(),
			RecipientID: donor.ID,
			Type:        domain.NotifBloodRequest,
			Title:       title,
			Message:     message,
			Data:        json.RawMessage(data),
		})
		recipients = append(recipients, donor)
	}

	if err := s.notifRepo.CreateBatch(ctx, notifs); err != nil {
		return fmt.Errorf("failed to record donor notifications: %w", err)
	}

	for _, donor := range recipients {
		s.sendPush(ctx, &donor.User, title, message, map[string]string{"request_id": req.ID.String()})

		if s.emailSvc != nil && donor.Email != nil {
			go func(toEmail string) {
				ctx := context.Background()
				if err := s.emailSvc.SendBloodRequestEmail(ctx, toEmail, req.BloodType, req.Urgency, radiusKm); err != nil {
					log.Printf("failed to email %s: %v", toEmail, err)
				}
			}(*donor.Email)
		}
	}

	return nil
}

// NotifyDonorResponse tells the requester a donor answered their request.
func (s *service) NotifyDonorResponse(ctx context.Context, req *domain.BloodRequest, decision domain.ResponseDecision) error {
	title := "Donor Response"
	message := fmt.Sprintf("A donor has %s your blood request", decision)

	data, _ := json.Marshal(map[string]string{
		"request_id": req.ID.String(),
		"decision":   string(decision),
	})

	notif := &domain.Notification{
		ID:          uuid.New(),
		RecipientID: req.RequesterID,
		Type:        domain.NotifDonorResponse,
		Title:       title,
		Message:     message,
		Data:        json.RawMessage(data),
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to record requester notification: %w", err)
	}

	requester, err := s.userRepo.GetByID(ctx, req.RequesterID)
	if err != nil || requester == nil {
		return nil
	}

	s.sendPush(ctx, requester, title, message, map[string]string{"request_id": req.ID.String()})

	if s.emailSvc != nil && requester.Email != nil {
		go func(toEmail string) {
			ctx := context.Background()
			if err := s.emailSvc.SendDonorResponseEmail(ctx, toEmail, string(decision)); err != nil {
				log.Printf("failed to email %s: %v", toEmail, err)
			}
		}(*requester.Email)
	}

	return nil
}

// sendPush addresses the user's registered device. Advisory only; failures
// are logged, never propagated.
func (s *service) sendPush(ctx context.Context, user *domain.User, title, message string, data map[string]string) {
	if user.FCMToken == nil {
		return
	}

	msg := push.Message{
		Token: *user.FCMToken,
		Title: title,
		Body:  message,
		Data:  data,
	}
	if err := s.pushSender.Send(ctx, msg); err != nil {
		log.Printf("failed to push to user %s: %v", user.ID, err)
	}
}
