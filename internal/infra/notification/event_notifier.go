package notification

import (
	"context"

	deliverycontext "tasker/internal/delivery/context"
	"tasker/internal/domain/service"

	"github.com/pkg/errors"
)

// eventNotifier hands messages to a downstream mailer through the event bus.
type eventNotifier struct {
	publisher service.EventPublisher
}

// NewEventNotifier publishes account events carrying the rendered message.
func NewEventNotifier(publisher service.EventPublisher) service.Notifier {
	return &eventNotifier{publisher: publisher}
}

func (n *eventNotifier) SendWelcome(ctx context.Context, to service.Recipient) error {
	return n.publish(ctx, service.AccountEventRegistered, to, welcomeMessage(to))
}

func (n *eventNotifier) SendCancellation(ctx context.Context, to service.Recipient) error {
	return n.publish(ctx, service.AccountEventDeleted, to, cancellationMessage(to))
}

func (n *eventNotifier) publish(ctx context.Context, eventType string, to service.Recipient, msg message) error {
	event := &service.AccountEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Type:      eventType,
		Name:      to.Name,
		Email:     to.Email,
		Subject:   msg.Subject,
		Body:      msg.Body,
	}

	return errors.Wrap(n.publisher.PublishAccountEvent(ctx, event), "failed to publish account event")
}
