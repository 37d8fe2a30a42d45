package notification

import (
	"context"
	"log/slog"

	deliverycontext "tasker/internal/delivery/context"
	"tasker/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
)

// emailSender is the part of the resend client used here.
type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type resendNotifier struct {
	emails emailSender
	from   string
	logger *slog.Logger
}

// NewResendNotifier sends plain-text emails through Resend.
func NewResendNotifier(apiKey, from string, logger *slog.Logger) (service.Notifier, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key is required")
	}
	if from == "" {
		return nil, errors.New("sender address is required")
	}

	return &resendNotifier{
		emails: resend.NewClient(apiKey).Emails,
		from:   from,
		logger: logger,
	}, nil
}

func (n *resendNotifier) SendWelcome(ctx context.Context, to service.Recipient) error {
	return n.send(ctx, "welcome", to, welcomeMessage(to))
}

func (n *resendNotifier) SendCancellation(ctx context.Context, to service.Recipient) error {
	return n.send(ctx, "cancellation", to, cancellationMessage(to))
}

func (n *resendNotifier) send(ctx context.Context, kind string, to service.Recipient, msg message) error {
	sent, err := n.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{to.Email},
		Subject: msg.Subject,
		Text:    msg.Body,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to send %s email", kind)
	}

	attrs := []any{slog.String("type", kind), slog.String("to", to.Email)}
	if sent != nil {
		attrs = append(attrs, slog.String("email_id", sent.Id))
	}
	deliverycontext.GetLoggerOrDefault(ctx, n.logger).Info("email sent", attrs...)

	return nil
}
