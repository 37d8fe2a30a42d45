package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"tasker/config"
	deliverycontext "tasker/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferedGormLogger(t *testing.T, cfg *config.Config) (logger.Interface, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	base := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return newGormSlogLogger(base, cfg), buf
}

func sqlFn() (string, int64) {
	return "SELECT 1", 1
}

func TestGormSlogLogger_LogsFailedQueries(t *testing.T) {
	l, buf := newBufferedGormLogger(t, &config.Config{})

	l.Trace(context.Background(), time.Now(), sqlFn, errors.New("boom"))

	assert.Contains(t, buf.String(), "GORM query failed")
	assert.Contains(t, buf.String(), "boom")
}

func TestGormSlogLogger_IgnoresRecordNotFound(t *testing.T) {
	l, buf := newBufferedGormLogger(t, &config.Config{})

	l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestGormSlogLogger_SlowQueryUsesConfiguredThreshold(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.SlowThreshold = time.Millisecond
	l, buf := newBufferedGormLogger(t, cfg)

	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)

	assert.Contains(t, buf.String(), "GORM slow query")
}

func TestGormSlogLogger_DebugLogsEveryQuery(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Debug = true
	l, buf := newBufferedGormLogger(t, cfg)

	l.Trace(context.Background(), time.Now(), sqlFn, nil)

	assert.Contains(t, buf.String(), `"msg":"GORM query"`)
}

func TestGormSlogLogger_UsesRequestScopedLogger(t *testing.T) {
	l, base := newBufferedGormLogger(t, &config.Config{})

	scoped := &bytes.Buffer{}
	reqLogger := slog.New(slog.NewJSONHandler(scoped, nil)).With(slog.String("request_id", "req-1"))
	ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

	l.Trace(ctx, time.Now(), sqlFn, errors.New("boom"))
	l.Warn(ctx, "pool %s", "busy")

	assert.Empty(t, base.String())
	assert.Contains(t, scoped.String(), `"request_id":"req-1"`)
	assert.Contains(t, scoped.String(), "pool busy")
}
