package usecase

import "context"

// Notification is a plain-text note delivered out of band (email today).
type Notification struct {
	To      string
	Subject string
	Body    string
}

// Notifier delivers notifications best effort. Services log failures and
// never let delivery break a committed operation.
type Notifier interface {
	Send(ctx context.Context, item Notification) error
}

// NopNotifier drops every notification. Used when no relay is configured.
type NopNotifier struct{}

func (NopNotifier) Send(context.Context, Notification) error { return nil }
