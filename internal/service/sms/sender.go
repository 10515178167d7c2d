// Package sms abstracts one-time code delivery so an SMS provider can be
// swapped in without touching the auth service.
package sms

import (
	"context"
	"log"
)

type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

type logSender struct{}

// NewLogSender returns a sender that only logs, for development and tests.
func NewLogSender() Sender {
	return logSender{}
}

func (logSender) Send(ctx context.Context, phone, message string) error {
	log.Printf("sms to %s: %s", phone, message)
	return nil
}
