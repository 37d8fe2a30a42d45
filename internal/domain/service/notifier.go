package service

import "context"

// Recipient is the addressee of an account notification.
type Recipient struct {
	Name  string
	Email string
}

// Notifier sends account lifecycle messages.
type Notifier interface {
	SendWelcome(ctx context.Context, to Recipient) error
	SendCancellation(ctx context.Context, to Recipient) error
}
