package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/yourusername/inventory-tracker/internal/domain/entity"
	"github.com/yourusername/inventory-tracker/internal/domain/repository"
)

const (
	DefaultCapacity          = 100
	DefaultLowStockThreshold = 10
)

// SessionProvider joriy sessiya (jurnal yozuvlari kimga tegishli)
type SessionProvider interface {
	Current() entity.Session
}

// MetricsRecorder operatsiya metrikalari
type MetricsRecorder interface {
	Operation(op, outcome string)
	ActivityAppendFailed()
	SetProducts(n int)
}

type noopMetrics struct{}

func (noopMetrics) Operation(string, string) {}
func (noopMetrics) ActivityAppendFailed()    {}
func (noopMetrics) SetProducts(int)          {}

type options struct {
	capacity int
	logger   *slog.Logger
	metrics  MetricsRecorder
	now      func() time.Time
}

// Option use case sozlamasi
type Option func(*options)

// WithCapacity katalog sig'imi (<= 0 - standart)
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithLogger diagnostika logger
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics metrika yozuvchisi
func WithMetrics(m MetricsRecorder) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithClock vaqt manbai (testlar uchun)
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		capacity: DefaultCapacity,
		logger:   slog.Default(),
		metrics:  noopMetrics{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// activityLogger jurnalga yozish; xatolar yutiladi, operatsiyani to'xtatmaydi
type activityLogger struct {
	repo    repository.ActivityRepository
	now     func() time.Time
	logger  *slog.Logger
	metrics MetricsRecorder
}

func newActivityLogger(repo repository.ActivityRepository, o options) *activityLogger {
	return &activityLogger{repo: repo, now: o.now, logger: o.logger, metrics: o.metrics}
}

func (a *activityLogger) record(ctx context.Context, username, action string) {
	entry := entity.ActivityEntry{
		Timestamp: a.now(),
		Username:  username,
		Action:    action,
	}
	if err := a.repo.Append(ctx, entry); err != nil {
		a.metrics.ActivityAppendFailed()
		a.logger.WarnContext(ctx, "activity log append failed", "action", action, "error", err)
	}
}
