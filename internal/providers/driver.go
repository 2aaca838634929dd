package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studyguide/internal/util"
)

type NamedLLMProvider struct {
	Ref      EndpointRef
	Provider LLMProvider
}

// Accept inspects the text payload of a successful response.
// Any error it returns aborts the fallback loop without trying later endpoints.
type Accept func(text string) error

// Driver walks an ordered endpoint list until one request produces an accepted payload.
type Driver struct {
	endpoints []NamedLLMProvider
	observer  Observer
}

func NewDriver(endpoints []NamedLLMProvider, observer Observer) *Driver {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Driver{endpoints: endpoints, observer: observer}
}

func (d *Driver) Endpoints() []EndpointRef {
	out := make([]EndpointRef, 0, len(d.endpoints))
	for _, ep := range d.endpoints {
		out = append(out, ep.Ref)
	}
	return out
}

// Run issues at most one request per endpoint, in list order.
// Only errors classified ErrorRetryable move on to the next endpoint; everything
// else, including envelope, format and schema failures, is returned immediately.
func (d *Driver) Run(ctx context.Context, req GenerateRequest, accept Accept) (ProviderInfo, error) {
	if len(d.endpoints) == 0 {
		return ProviderInfo{}, fmt.Errorf("%w: no model endpoints configured", util.ErrConfig)
	}
	var lastErr error
	for i, ep := range d.endpoints {
		start := time.Now()
		resp, info, err := ep.Provider.Generate(ctx, req)
		if err == nil && strings.TrimSpace(resp.Text) == "" {
			err = fmt.Errorf("%w: no response text from %s", util.ErrMalformedEnvelope, ep.Ref.Raw)
		}
		if err == nil && accept != nil {
			err = accept(resp.Text)
		}
		ev := AttemptEvent{
			RequestID: req.RequestID,
			Operation: req.Operation,
			Attempt:   i + 1,
			Endpoint:  ep.Ref.Raw,
			Provider:  info.Name,
			Model:     ep.Ref.Model,
			Status:    AttemptOK,
			LatencyMs: time.Since(start).Milliseconds(),
		}
		if err == nil {
			d.observer.OnAttempt(ctx, ev)
			return info, nil
		}

		ev.Status = AttemptFailed
		ev.ErrorClass = ClassifyError(err)
		ev.ErrorMessage = err.Error()
		d.observer.OnAttempt(ctx, ev)
		if ev.ErrorClass == ErrorRetryable {
			lastErr = fmt.Errorf("%w: %s: %s", util.ErrEndpointUnavailable, ep.Ref.Raw, err.Error())
			continue
		}
		return info, err
	}
	return ProviderInfo{}, fmt.Errorf("%w. Last error: %s\n\nPlease check your API key and ensure it has access to the configured models (%s).",
		util.ErrEndpointsExhausted, lastErr.Error(), strings.Join(d.rawNames(), ", "))
}

func (d *Driver) rawNames() []string {
	out := make([]string, 0, len(d.endpoints))
	for _, ep := range d.endpoints {
		out = append(out, ep.Ref.Raw)
	}
	return out
}
