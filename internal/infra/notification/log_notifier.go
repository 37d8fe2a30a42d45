package notification

import (
	"context"
	"log/slog"

	deliverycontext "tasker/internal/delivery/context"
	"tasker/internal/domain/service"
)

// logNotifier only logs the message. Used in development.
type logNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) service.Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) SendWelcome(ctx context.Context, to service.Recipient) error {
	n.log(ctx, "welcome", to, welcomeMessage(to))

	return nil
}

func (n *logNotifier) SendCancellation(ctx context.Context, to service.Recipient) error {
	n.log(ctx, "cancellation", to, cancellationMessage(to))

	return nil
}

func (n *logNotifier) log(ctx context.Context, kind string, to service.Recipient, msg message) {
	deliverycontext.GetLoggerOrDefault(ctx, n.logger).Info("email sent (dev mode)",
		slog.String("type", kind),
		slog.String("to", to.Email),
		slog.String("subject", msg.Subject),
	)
}

type noopNotifier struct{}

func (noopNotifier) SendWelcome(context.Context, service.Recipient) error      { return nil }
func (noopNotifier) SendCancellation(context.Context, service.Recipient) error { return nil }
