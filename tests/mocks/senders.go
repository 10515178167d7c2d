package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"donorlink/internal/service/push"
)

type SMSSender struct {
	mock.Mock
}

func (m *SMSSender) Send(ctx context.Context, phone, message string) error {
	args := m.Called(ctx, phone, message)
	return args.Error(0)
}

type PushSender struct {
	mock.Mock
}

func (m *PushSender) Send(ctx context.Context, msg push.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
