package main

import (
	"log"

	"studyguide/internal/activities"
	"studyguide/internal/app"
	"studyguide/internal/config"
	"studyguide/internal/logger"
	"studyguide/internal/workflows"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()
	if err := cfg.RequireFalKey(); err != nil {
		lg.Warn("infographic activities will fail until the key is set", "error", err.Error())
	}

	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		lg.Fatal("dial temporal", "error", err.Error())
	}
	defer c.Close()

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)
	activities.Register(w, activities.New(cfg, app.NewFalClient(cfg), lg.With("component", "activities")))

	lg.Info("studyguide worker listening", "temporal", cfg.TemporalAddress, "queue", cfg.TemporalTaskQueue, "image_app", cfg.FalImageApp)
	if err := w.Run(worker.InterruptCh()); err != nil {
		lg.Fatal("worker stopped", "error", err.Error())
	}
}
