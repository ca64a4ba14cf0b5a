// Package bridge exposes the health reads to the app shell as named methods on a
// single channel.
package bridge

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sleepdoctor/sleepdoc/internal/client/fitness"
	"github.com/sleepdoctor/sleepdoc/internal/consent"
	"github.com/sleepdoctor/sleepdoc/internal/health"
	"github.com/sleepdoctor/sleepdoc/internal/xslog"
)

const ChannelName = "com.sleepdoctor.app/healthdata"

const (
	MethodGetSleepData = "getSleepData"
	MethodGetBodyData  = "getBodyData"
)

const (
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeCallInProgress   = "CALL_IN_PROGRESS"
	CodeUnavailable      = "UNAVAILABLE"
)

const (
	MessagePermissionDenied = "Google Fit permission denied"
	MessageCallInProgress   = "Another health data call is still in progress"
)

type Authorizer interface {
	Authorize(ctx context.Context) error
}

// Reader runs the reads reachable through the channel.
type Reader interface {
	Sleep(ctx context.Context) ([]health.SleepSegment, error)
	Body(ctx context.Context) ([]health.Measurement, error)
}

type handler func(ctx context.Context) (any, error)

type Channel struct {
	name     string
	gate     Authorizer
	tracker  *Tracker
	handlers map[string]handler
	logger   *slog.Logger
}

func NewChannel(gate Authorizer, reader Reader, logger *slog.Logger) *Channel {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Channel{
		name:    ChannelName,
		gate:    gate,
		tracker: &Tracker{},
		logger:  logger,
	}
	c.handlers = map[string]handler{
		MethodGetSleepData: func(ctx context.Context) (any, error) {
			segments, err := reader.Sleep(ctx)
			if err != nil {
				return nil, err
			}
			return sleepPayload(segments), nil
		},
		MethodGetBodyData: func(ctx context.Context) (any, error) {
			measurements, err := reader.Body(ctx)
			if err != nil {
				return nil, err
			}
			return bodyPayload(measurements), nil
		},
	}
	return c
}

func (c *Channel) Name() string {
	return c.name
}

// Methods returns the names the channel handles.
func (c *Channel) Methods() []string {
	return []string{MethodGetSleepData, MethodGetBodyData}
}

// Pending returns the call currently in flight, or nil.
func (c *Channel) Pending() *Pending {
	return c.tracker.Current()
}

// Invoke runs call and resolves result exactly once before returning. Args are
// ignored; no method takes any.
func (c *Channel) Invoke(ctx context.Context, call Call, result Result) {
	result = &once{result: result}

	h, ok := c.handlers[call.Method]
	if !ok {
		c.logger.DebugContext(ctx, "method not implemented", xslog.Channel(c.name), xslog.Method(call.Method))
		result.NotImplemented()
		return
	}

	pending := &Pending{
		ID:      uuid.NewString(),
		Method:  call.Method,
		Started: time.Now(),
	}
	ctx, logger := xslog.With(ctx, xslog.Channel(c.name), xslog.Method(call.Method), xslog.CallID(pending.ID))

	if err := c.tracker.Acquire(pending); err != nil {
		logger.WarnContext(ctx, "rejected overlapping call", xslog.Error(err))
		result.Error(CodeCallInProgress, MessageCallInProgress, nil)
		return
	}
	defer c.tracker.Release(pending)

	if err := c.gate.Authorize(ctx); err != nil {
		c.fail(ctx, logger, result, err)
		return
	}

	value, err := h(ctx)
	if err != nil {
		c.fail(ctx, logger, result, err)
		return
	}

	logger.InfoContext(ctx, "call succeeded", xslog.Duration(time.Since(pending.Started)))
	result.Success(value)
}

func (c *Channel) fail(ctx context.Context, logger *slog.Logger, result Result, err error) {
	code, message := CodeUnavailable, err.Error()

	var readErr *health.ReadError
	switch {
	case errors.Is(err, consent.ErrPermissionDenied):
		code, message = CodePermissionDenied, MessagePermissionDenied
	case errors.As(err, &readErr):
		code, message = readErr.Code, readErr.Message
	}

	attrs := []any{xslog.Code(code), xslog.Error(err)}
	if status := fitness.StatusCode(err); status != 0 {
		attrs = append(attrs, xslog.HTTPStatus(status))
	}
	logger.WarnContext(ctx, "call failed", attrs...)
	result.Error(code, message, nil)
}

func sleepPayload(segments []health.SleepSegment) []map[string]any {
	out := make([]map[string]any, 0, len(segments))
	for _, s := range segments {
		out = append(out, s.Map())
	}
	return out
}

func bodyPayload(measurements []health.Measurement) []map[string]any {
	out := make([]map[string]any, 0, len(measurements))
	for _, m := range measurements {
		out = append(out, m.Map())
	}
	return out
}
