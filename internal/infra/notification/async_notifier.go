package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "tasker/internal/delivery/context"
	"tasker/internal/domain/lifecycle"
	"tasker/internal/domain/service"
)

// AsyncNotifier sends on a detached goroutine. Callers never see delivery
// errors; failures are logged at WARN.
type AsyncNotifier struct {
	next    service.Notifier
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewAsyncNotifier wraps next with fire-and-forget dispatch bounded by timeout.
func NewAsyncNotifier(next service.Notifier, timeout time.Duration, logger *slog.Logger) *AsyncNotifier {
	if timeout <= 0 {
		timeout = lifecycle.DefaultTimeout
	}

	return &AsyncNotifier{
		next:    next,
		timeout: timeout,
		logger:  logger,
	}
}

func (n *AsyncNotifier) SendWelcome(ctx context.Context, to service.Recipient) error {
	n.dispatch(ctx, "welcome", func(sendCtx context.Context) error {
		return n.next.SendWelcome(sendCtx, to)
	})

	return nil
}

func (n *AsyncNotifier) SendCancellation(ctx context.Context, to service.Recipient) error {
	n.dispatch(ctx, "cancellation", func(sendCtx context.Context) error {
		return n.next.SendCancellation(sendCtx, to)
	})

	return nil
}

func (n *AsyncNotifier) dispatch(ctx context.Context, kind string, send func(context.Context) error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, n.logger)
	// Keep request-scoped values but not the request's cancellation.
	detached := context.WithoutCancel(ctx)

	n.wg.Go(func() {
		sendCtx, cancel := context.WithTimeout(detached, n.timeout)
		defer cancel()

		if err := send(sendCtx); err != nil {
			logger.Warn("Failed to send notification", slog.String("type", kind), slog.Any("error", err))
		}
	})
}

// Wait blocks until in-flight sends finish or ctx is done.
func (n *AsyncNotifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
