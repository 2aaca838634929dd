package providers

import (
	"context"

	"studyguide/internal/logger"
)

const (
	AttemptOK     = "ok"
	AttemptFailed = "failed"
)

// AttemptEvent describes one request against one endpoint.
type AttemptEvent struct {
	RequestID    string
	Operation    string
	Attempt      int
	Endpoint     string
	Provider     string
	Model        string
	Status       string
	ErrorClass   ErrorClass
	ErrorMessage string
	LatencyMs    int64
}

// Observer receives attempt events. Implementations must not block for long;
// their failures never change the outcome of a request.
type Observer interface {
	OnAttempt(ctx context.Context, ev AttemptEvent)
}

type NoopObserver struct{}

func (NoopObserver) OnAttempt(context.Context, AttemptEvent) {}

type LogObserver struct {
	log *logger.Logger
}

func NewLogObserver(log *logger.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnAttempt(_ context.Context, ev AttemptEvent) {
	kv := []interface{}{
		"request_id", ev.RequestID,
		"operation", ev.Operation,
		"attempt", ev.Attempt,
		"endpoint", ev.Endpoint,
		"model", ev.Model,
		"latency_ms", ev.LatencyMs,
	}
	if ev.Status == AttemptOK {
		o.log.Info("llm endpoint attempt succeeded", kv...)
		return
	}
	kv = append(kv, "error_class", string(ev.ErrorClass), "error", ev.ErrorMessage)
	if ev.ErrorClass == ErrorRetryable {
		o.log.Warn("llm endpoint unavailable, trying next", kv...)
		return
	}
	o.log.Error("llm endpoint attempt failed", kv...)
}

// MultiObserver fans events out in order.
type MultiObserver []Observer

func (m MultiObserver) OnAttempt(ctx context.Context, ev AttemptEvent) {
	for _, o := range m {
		if o != nil {
			o.OnAttempt(ctx, ev)
		}
	}
}
