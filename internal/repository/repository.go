package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Repositories struct {
	User         UserRepository
	Request      RequestRepository
	Response     ResponseRepository
	Notification NotificationRepository
	Session      SessionRepository
	OTP          OTPRepository
}

func NewRepositories(db *sqlx.DB, redisClient *redis.Client) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Request:      NewRequestRepository(db),
		Response:     NewResponseRepository(db),
		Notification: NewNotificationRepository(db),
		Session:      NewSessionRepository(db),
		OTP:          NewOTPRepository(redisClient),
	}
}
