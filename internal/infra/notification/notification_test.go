package notification

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"tasker/config"
	deliverycontext "tasker/internal/delivery/context"
	"tasker/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

var ann = service.Recipient{Name: "Ann", Email: "ann@x.io"}

type fakeSender struct {
	mu       sync.Mutex
	requests []*resend.SendEmailRequest
	err      error
}

func (f *fakeSender) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, params)
	if f.err != nil {
		return nil, f.err
	}

	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

type fakePublisher struct {
	events []*service.AccountEvent
}

func (f *fakePublisher) PublishAccountEvent(_ context.Context, event *service.AccountEvent) error {
	f.events = append(f.events, event)

	return nil
}

func (f *fakePublisher) Close() error { return nil }

type blockingNotifier struct {
	release chan struct{}
	calls   chan string
	err     error
}

func (b *blockingNotifier) SendWelcome(ctx context.Context, _ service.Recipient) error {
	<-b.release
	b.calls <- "welcome"

	return b.err
}

func (b *blockingNotifier) SendCancellation(ctx context.Context, _ service.Recipient) error {
	<-b.release
	b.calls <- "cancellation"

	return b.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestResendNotifier_Messages(t *testing.T) {
	sender := &fakeSender{}
	notifier := &resendNotifier{emails: sender, from: "app@x.io", logger: discardLogger()}

	require.NoError(t, notifier.SendWelcome(context.Background(), ann))
	require.NoError(t, notifier.SendCancellation(context.Background(), ann))

	require.Len(t, sender.requests, 2)
	assert.Equal(t, "app@x.io", sender.requests[0].From)
	assert.Equal(t, []string{"ann@x.io"}, sender.requests[0].To)
	assert.Equal(t, "Welcome to the App!", sender.requests[0].Subject)
	assert.Equal(t, "Hi, Ann Enjoy using the app", sender.requests[0].Text)
	assert.Equal(t, "Thanks for using the app", sender.requests[1].Subject)
	assert.Equal(t, "Hi, Ann Your details are removed", sender.requests[1].Text)
}

func TestResendNotifier_Errors(t *testing.T) {
	notifier := &resendNotifier{emails: &fakeSender{err: errors.New("rate limited")}, from: "app@x.io", logger: discardLogger()}

	err := notifier.SendWelcome(context.Background(), ann)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")

	_, err = NewResendNotifier("", "app@x.io", discardLogger())
	assert.Error(t, err)
}

func TestEventNotifier_PublishesRenderedMessage(t *testing.T) {
	publisher := &fakePublisher{}
	ctx := deliverycontext.WithRequestID(context.Background(), "req-9")

	require.NoError(t, NewEventNotifier(publisher).SendCancellation(ctx, ann))

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, service.AccountEventDeleted, event.Type)
	assert.Equal(t, "req-9", event.RequestID)
	assert.Equal(t, "Thanks for using the app", event.Subject)
	assert.Equal(t, "ann@x.io", event.Email)
}

func TestAsyncNotifier_ReturnsBeforeDelivery(t *testing.T) {
	next := &blockingNotifier{release: make(chan struct{}), calls: make(chan string, 1), err: errors.New("smtp down")}
	async := NewAsyncNotifier(next, time.Second, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, async.SendWelcome(ctx, ann))
	cancel()

	close(next.release)
	select {
	case kind := <-next.calls:
		assert.Equal(t, "welcome", kind)
	case <-time.After(time.Second):
		t.Fatal("notification was not delivered")
	}

	require.NoError(t, async.Wait(context.Background()))
}

func TestAsyncNotifier_WaitHonoursContext(t *testing.T) {
	next := &blockingNotifier{release: make(chan struct{}), calls: make(chan string, 1)}
	async := NewAsyncNotifier(next, time.Second, discardLogger())
	require.NoError(t, async.SendCancellation(context.Background(), ann))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, async.Wait(ctx), context.DeadlineExceeded)

	close(next.release)
	require.NoError(t, async.Wait(context.Background()))
}

func TestNewNotifier_Providers(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr string
	}{
		{name: "default log", cfg: &config.Config{}},
		{name: "noop", cfg: &config.Config{Notification: &config.NotificationConfig{Provider: "noop", Timeout: time.Second}}},
		{name: "resend without key", cfg: &config.Config{Notification: &config.NotificationConfig{Provider: "resend"}}, wantErr: "api key"},
		{name: "pubsub without bus", cfg: &config.Config{Notification: &config.NotificationConfig{Provider: "pubsub"}}, wantErr: "pubsub must be configured"},
		{name: "unknown", cfg: &config.Config{Notification: &config.NotificationConfig{Provider: "fax"}}, wantErr: "unknown notification provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier, err := NewNotifier(NotifierParams{
				Lc:        fxtest.NewLifecycle(t),
				Config:    tt.cfg,
				Logger:    discardLogger(),
				Publisher: &fakePublisher{},
			})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.IsType(t, &AsyncNotifier{}, notifier)
		})
	}
}

func TestNewSender_RejectsRelayProvider(t *testing.T) {
	cfg := &config.Config{Notification: &config.NotificationConfig{Provider: "pubsub"}}

	_, err := NewSender(cfg, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot deliver messages directly")

	sender, err := NewSender(&config.Config{}, discardLogger())
	require.NoError(t, err)
	assert.NoError(t, sender.SendWelcome(context.Background(), ann))
}
