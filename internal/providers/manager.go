package providers

import (
	"context"
	"fmt"
	"time"

	"studyguide/internal/config"
	"studyguide/internal/util"
)

// BuildEndpoints turns the configured endpoint list into providers, preserving order.
// A missing key is not an error here; the pipeline reports it before any request.
func BuildEndpoints(ctx context.Context, cfg config.Config) ([]NamedLLMProvider, error) {
	refs := ParseEndpointList(cfg.GeminiModels, cfg.GeminiTransport)
	if len(refs) == 0 {
		refs = ParseEndpointList(config.DefaultGeminiModels, cfg.GeminiTransport)
	}
	timeout := time.Duration(cfg.RequestTimeoutSecs) * time.Second
	out := make([]NamedLLMProvider, 0, len(refs))
	for _, ref := range refs {
		p, err := buildProvider(ctx, ref, cfg, timeout)
		if err != nil {
			return nil, err
		}
		out = append(out, NamedLLMProvider{Ref: ref, Provider: p})
	}
	return out, nil
}

func buildProvider(ctx context.Context, ref EndpointRef, cfg config.Config, timeout time.Duration) (LLMProvider, error) {
	if ref.Model == "" {
		return nil, fmt.Errorf("%w: endpoint %q has no model name", util.ErrConfig, ref.Raw)
	}
	switch ref.Transport {
	case TransportMock:
		return NewMockProvider(ref.Model), nil
	case TransportREST:
		return NewGeminiProvider(cfg.GeminiBaseURL, ref.Model, cfg.GeminiAPIKey, timeout), nil
	case TransportSDK:
		return NewGenAIProvider(ctx, cfg.GeminiBaseURL, ref.Model, cfg.GeminiAPIKey, timeout)
	default:
		return nil, fmt.Errorf("%w: unsupported endpoint transport: %s", util.ErrConfig, ref.Transport)
	}
}
