package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"studyguide/internal/api"
	"studyguide/internal/app"
	"studyguide/internal/config"
	"studyguide/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	a, err := app.Build(ctx, cfg, lg)
	cancel()
	if err != nil {
		lg.Fatal("startup failed", "error", err.Error())
	}
	defer a.Close()

	h := api.NewServer(cfg, a.Generator, lg.With("component", "api"))
	lg.Info("studyguide api listening",
		"addr", cfg.APIAddr,
		"endpoints", cfg.GeminiModels,
		"visual_enabled", cfg.VisualEnabled,
		"gemini_key_set", cfg.GeminiAPIKey != "",
	)
	srv := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		lg.Fatal("api server stopped", "error", err.Error())
	}
}
