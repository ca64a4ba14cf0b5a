// Package health implements the fixed read procedures exposed to the app shell.
package health

import (
	"log/slog"
	"time"

	"github.com/sleepdoctor/sleepdoc/internal/client/fitness"
)

const (
	stepWindow  = 24 * time.Hour
	stepBucket  = 24 * time.Hour
	sleepWindow = 30 * 24 * time.Hour
	bodyWindow  = 30 * 24 * time.Hour
)

type Reader struct {
	history fitness.History
	now     func() time.Time
	logger  *slog.Logger
}

type Option func(*Reader)

// WithClock replaces time.Now as the end of every read window.
func WithClock(now func() time.Time) Option {
	return func(r *Reader) { r.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) { r.logger = logger }
}

func NewReader(history fitness.History, opts ...Option) *Reader {
	r := &Reader{
		history: history,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
