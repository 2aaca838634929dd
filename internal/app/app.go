package app

import (
	"context"
	"fmt"
	"time"

	"studyguide/internal/config"
	"studyguide/internal/falai"
	"studyguide/internal/guide"
	"studyguide/internal/logger"
	"studyguide/internal/providers"
	"studyguide/internal/storage"
	"studyguide/internal/visual"

	tclient "go.temporal.io/sdk/client"
)

// App holds the generator and the connections it owns.
type App struct {
	Generator *guide.Serialized
	Endpoints []providers.EndpointRef
	closers   []func()
}

// Build wires the text pipeline, the optional audit store and the optional infographic pipeline.
func Build(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	a := &App{}
	endpoints, err := providers.BuildEndpoints(ctx, cfg)
	if err != nil {
		return nil, err
	}

	observers := providers.MultiObserver{providers.NewLogObserver(log)}
	if cfg.PostgresURL != "" {
		dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		db, err := storage.NewDB(dbCtx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		repo := storage.NewLLMAuditRepo(db)
		if err := repo.EnsureSchema(dbCtx); err != nil {
			a.Close()
			return nil, err
		}
		observers = append(observers, storage.NewAuditObserver(repo, log))
	}

	driver := providers.NewDriver(endpoints, observers)
	a.Endpoints = driver.Endpoints()
	var requireKey func() error
	if providers.NeedsCredential(a.Endpoints) {
		requireKey = cfg.RequireGeminiKey
	}
	text := guide.NewPipeline(driver, requireKey, log.With("component", "guide"))

	var vis guide.VisualGenerator
	if cfg.VisualEnabled {
		c, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("dial temporal: %w", err)
		}
		a.closers = append(a.closers, c.Close)
		runner := visual.NewTemporalRunner(c, NewFalClient(cfg), cfg.TemporalTaskQueue, time.Duration(cfg.WorkflowTimeoutSecs)*time.Second)
		vis = visual.NewPipeline(runner, cfg.RequireFalKey, guide.ProviderInfo{
			Name:     "fal.ai",
			Model:    cfg.FalLLMModel,
			Endpoint: cfg.FalImageApp,
		}, log.With("component", "visual"))
	}

	a.Generator = guide.NewSerialized(guide.NewRouter(text, vis))
	return a, nil
}

func NewFalClient(cfg config.Config) *falai.Client {
	return falai.New(falai.Options{
		APIKey:       cfg.FalAPIKey,
		QueueURL:     cfg.FalQueueURL,
		StorageURL:   cfg.FalStorageURL,
		Timeout:      time.Duration(cfg.RequestTimeoutSecs) * time.Second,
		PollInterval: time.Duration(cfg.WorkflowPollIntervalMs) * time.Millisecond,
	})
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
