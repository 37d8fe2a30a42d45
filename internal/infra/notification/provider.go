package notification

import (
	"context"
	"log/slog"

	"tasker/config"
	"tasker/internal/domain/constants"
	"tasker/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// NotifierParams holds dependencies for Notifier, injected by Fx
type NotifierParams struct {
	fx.In

	Lc        fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Publisher service.EventPublisher
}

// NewNotifier selects the delivery channel from notification.provider and
// wraps it for asynchronous dispatch.
func NewNotifier(params NotifierParams) (service.Notifier, error) {
	cfg := notificationConfig(params.Config)
	logger := params.Logger

	var next service.Notifier
	if cfg.Provider == constants.NotificationProviderPubSub {
		if params.Config.PubSub == nil || params.Config.PubSub.Provider == "" {
			return nil, errors.New("pubsub must be configured for the pubsub notification provider")
		}
		next = NewEventNotifier(params.Publisher)
	} else {
		sender, err := NewSender(params.Config, logger)
		if err != nil {
			return nil, err
		}
		next = sender
	}

	logger.Info("Using notification provider", slog.String("provider", cfg.Provider))

	async := NewAsyncNotifier(next, cfg.Timeout, logger)

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Waiting for in-flight notifications")

			return errors.WithStack(async.Wait(ctx))
		},
	})

	return async, nil
}

// NewSender returns a notifier that delivers synchronously to the recipient.
// The pubsub provider only relays events, so it is rejected here.
func NewSender(cfg *config.Config, logger *slog.Logger) (service.Notifier, error) {
	notification := notificationConfig(cfg)

	switch notification.Provider {
	case constants.NotificationProviderLog, "":
		return NewLogNotifier(logger), nil

	case constants.NotificationProviderNoop:
		return noopNotifier{}, nil

	case constants.NotificationProviderResend:
		return NewResendNotifier(notification.Resend.APIKey, notification.From, logger)

	case constants.NotificationProviderPubSub:
		return nil, errors.New("pubsub notification provider cannot deliver messages directly")

	default:
		return nil, errors.Errorf("unknown notification provider: %s", notification.Provider)
	}
}

func notificationConfig(cfg *config.Config) *config.NotificationConfig {
	if cfg.Notification == nil {
		return &config.NotificationConfig{Provider: constants.NotificationProviderLog}
	}

	return cfg.Notification
}
