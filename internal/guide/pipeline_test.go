package guide

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"studyguide/internal/config"
	"studyguide/internal/providers"
	"studyguide/internal/util"
)

type scriptedProvider struct {
	text  string
	err   error
	calls int
	mu    sync.Mutex
	last  string
}

func (p *scriptedProvider) Generate(_ context.Context, req providers.GenerateRequest) (providers.GenerateResponse, providers.ProviderInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.last = req.Prompt
	return providers.GenerateResponse{Text: p.text}, providers.ProviderInfo{Name: "scripted", Model: "m"}, p.err
}

func driverFor(ps ...*scriptedProvider) *providers.Driver {
	eps := make([]providers.NamedLLMProvider, 0, len(ps))
	for i, p := range ps {
		name := string(rune('a' + i))
		eps = append(eps, providers.NamedLLMProvider{Ref: providers.EndpointRef{Raw: name, Model: name}, Provider: p})
	}
	return providers.NewDriver(eps, nil)
}

func TestPipelineMissingCredentialMakesNoRequest(t *testing.T) {
	p := &scriptedProvider{text: fullGuide}
	cfg := config.Config{}
	_, err := NewPipeline(driverFor(p), cfg.RequireGeminiKey, nil).GenerateText(context.Background(), "cells")
	if !errors.Is(err, util.ErrConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Fatalf("error should name the key: %v", err)
	}
	if p.calls != 0 {
		t.Fatalf("expected no requests, got %d", p.calls)
	}
}

func TestPipelineBuildsPromptAndParses(t *testing.T) {
	p := &scriptedProvider{text: "```json\n" + fullGuide + "\n```"}
	cfg := config.Config{GeminiAPIKey: "k"}
	res, err := NewPipeline(driverFor(p), cfg.RequireGeminiKey, nil).GenerateText(context.Background(), "  chlorophyll absorbs light  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Guide.Title != "Photosynthesis" || res.Provider.Name != "scripted" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !strings.Contains(p.last, "Content to process:\nchlorophyll absorbs light\n") {
		t.Fatalf("content not embedded in prompt: %q", p.last)
	}
	if strings.Contains(p.last, "%s") {
		t.Fatalf("placeholder left in prompt")
	}
}

func TestPipelineSchemaErrorNotRetried(t *testing.T) {
	a := &scriptedProvider{text: `{"summary":"no title","sections":[]}`}
	b := &scriptedProvider{text: fullGuide}
	_, err := NewPipeline(driverFor(a, b), nil, nil).GenerateText(context.Background(), "x")
	if !errors.Is(err, util.ErrSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if a.calls != 1 || b.calls != 0 {
		t.Fatalf("expected a single request, got a=%d b=%d", a.calls, b.calls)
	}
}

func TestPipelineFallsBackAfterNotFound(t *testing.T) {
	a := &scriptedProvider{err: &providers.EndpointError{Endpoint: "a", StatusCode: 404, Message: "models/a is not found"}}
	b := &scriptedProvider{text: fullGuide}
	res, err := NewPipeline(driverFor(a, b), nil, nil).GenerateText(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Guide.Title != "Photosynthesis" || a.calls != 1 || b.calls != 1 {
		t.Fatalf("unexpected fallback: %+v a=%d b=%d", res, a.calls, b.calls)
	}
}

type blockingGenerator struct {
	mu      sync.Mutex
	active  int
	maxSeen int
}

func (g *blockingGenerator) Generate(context.Context, Input) (Result, error) {
	g.mu.Lock()
	g.active++
	if g.active > g.maxSeen {
		g.maxSeen = g.active
	}
	g.mu.Unlock()
	time.Sleep(10 * time.Millisecond)
	g.mu.Lock()
	g.active--
	g.mu.Unlock()
	return Result{}, nil
}

func TestSerializedRunsOneAtATime(t *testing.T) {
	inner := &blockingGenerator{}
	s := NewSerialized(inner)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Generate(context.Background(), Input{Text: "x"})
		}()
	}
	wg.Wait()
	if inner.maxSeen != 1 {
		t.Fatalf("expected at most one concurrent generation, saw %d", inner.maxSeen)
	}
	if s.Busy() {
		t.Fatalf("expected idle after all calls returned")
	}
}

func TestSerializedHonoursCancellation(t *testing.T) {
	s := NewSerialized(&blockingGenerator{})
	if !s.sem.TryAcquire(1) {
		t.Fatalf("expected free semaphore")
	}
	defer s.sem.Release(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Generate(ctx, Input{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
