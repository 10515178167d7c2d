// Package push prepares device-addressed notification payloads. The ledger
// entry is the durable record; push delivery is best-effort on top of it.
package push

import (
	"context"
	"log"
)

type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type logSender struct{}

// NewLogSender returns a sender that logs the prepared payload.
// TODO: deliver through the FCM HTTP v1 API once a service account is provisioned.
func NewLogSender() Sender {
	return logSender{}
}

func (logSender) Send(ctx context.Context, msg Message) error {
	log.Printf("push prepared for token %s: %s - %s", msg.Token, msg.Title, msg.Body)
	return nil
}
