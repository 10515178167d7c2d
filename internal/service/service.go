package service

import (
	"github.com/minio/minio-go/v7"

	"donorlink/internal/config"
	"donorlink/internal/repository"
	"donorlink/internal/service/auth"
	"donorlink/internal/service/email"
	"donorlink/internal/service/geo"
	"donorlink/internal/service/notification"
	"donorlink/internal/service/push"
	"donorlink/internal/service/request"
	"donorlink/internal/service/sms"
	"donorlink/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Geo          geo.Service
	Request      request.Service
	Notification notification.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, minioClient *minio.Client, cfg *config.Config) *Services {
	var emailService email.Service
	if cfg.ResendAPIKey != "" {
		emailService = email.NewService(cfg)
	}
	smsSender := sms.NewLogSender()
	pushSender := push.NewLogSender()

	authService := auth.NewService(repos.User, repos.Session, repos.OTP, smsSender, cfg)
	geoService := geo.NewService(repos.User, repos.Request)
	notificationService := notification.NewService(repos.Notification, repos.User, emailService, pushSender)
	requestService := request.NewService(repos.Request, repos.Response, repos.User, geoService, notificationService, cfg.SearchRadiusKm)
	userService := user.NewService(repos.User, geoService, minioClient, cfg)

	return &Services{
		Auth:         authService,
		User:         userService,
		Geo:          geoService,
		Request:      requestService,
		Notification: notificationService,
		Email:        emailService,
	}
}
