package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"donorlink/internal/config"
)

// Service sends best-effort transactional email mirroring in-app
// notifications. Callers treat failures as advisory.
type Service interface {
	SendBloodRequestEmail(ctx context.Context, toEmail, bloodType, urgency string, radiusKm float64) error
	SendDonorResponseEmail(ctx context.Context, toEmail, decision string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

func (s *service) sendEmail(toEmail, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("DonorLink <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    fmt.Sprintf("<p>%s</p>", body),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendBloodRequestEmail(ctx context.Context, toEmail, bloodType, urgency string, radiusKm float64) error {
	subject := fmt.Sprintf("New %s Blood Request", urgency)
	body := fmt.Sprintf("%s blood is needed within %.0fkm of your location. Open DonorLink to respond.", bloodType, radiusKm)
	return s.sendEmail(toEmail, subject, body)
}

func (s *service) SendDonorResponseEmail(ctx context.Context, toEmail, decision string) error {
	subject := "Donor Response"
	body := fmt.Sprintf("A donor has %s your blood request.", decision)
	return s.sendEmail(toEmail, subject, body)
}
