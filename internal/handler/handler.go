package handler

import "donorlink/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Request      *RequestHandler
	Notification *NotificationHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Request:      NewRequestHandler(services.Request),
		Notification: NewNotificationHandler(services.Notification),
	}
}
