package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"studyguide/internal/util"
)

const (
	GeminiKeyName = "GEMINI_API_KEY"
	FalKeyName    = "FAL_KEY"

	DefaultGeminiModels = "gemini-2.5-flash|gemini-2.5-pro|gemini-2.5-pro-preview-06-05"
)

type Config struct {
	APIAddr                string
	LogMode                string
	GeminiAPIKey           string
	GeminiBaseURL          string
	GeminiModels           string
	GeminiTransport        string
	RequestTimeoutSecs     int
	FalAPIKey              string
	FalQueueURL            string
	FalStorageURL          string
	FalLLMModel            string
	FalImageApp            string
	VisualEnabled          bool
	TemporalAddress        string
	TemporalTaskQueue      string
	PostgresURL            string
	MaxUploadMB            int
	WorkflowTimeoutSecs    int
	WorkflowPollIntervalMs int
}

func Load() Config {
	return Config{
		APIAddr:                getenv("STUDYGUIDE_API_ADDR", ":8080"),
		LogMode:                getenv("STUDYGUIDE_LOG_MODE", "dev"),
		GeminiAPIKey:           strings.TrimSpace(os.Getenv(GeminiKeyName)),
		GeminiBaseURL:          getenv("STUDYGUIDE_GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModels:           getenv("STUDYGUIDE_GEMINI_MODELS", DefaultGeminiModels),
		GeminiTransport:        getenv("STUDYGUIDE_GEMINI_TRANSPORT", "rest"),
		RequestTimeoutSecs:     getenvInt("STUDYGUIDE_REQUEST_TIMEOUT_SECONDS", 120),
		FalAPIKey:              strings.TrimSpace(os.Getenv(FalKeyName)),
		FalQueueURL:            getenv("STUDYGUIDE_FAL_QUEUE_URL", "https://queue.fal.run"),
		FalStorageURL:          getenv("STUDYGUIDE_FAL_STORAGE_URL", "https://rest.alpha.fal.ai"),
		FalLLMModel:            getenv("STUDYGUIDE_FAL_LLM_MODEL", "meta-llama/llama-3.2-90b-vision-instruct"),
		FalImageApp:            getenv("STUDYGUIDE_FAL_IMAGE_APP", "fal-ai/nano-banana-pro"),
		VisualEnabled:          getenvBool("STUDYGUIDE_VISUAL_ENABLED", false),
		TemporalAddress:        getenv("STUDYGUIDE_TEMPORAL_ADDRESS", "localhost:7233"),
		TemporalTaskQueue:      getenv("STUDYGUIDE_TEMPORAL_TASK_QUEUE", "studyguide"),
		PostgresURL:            os.Getenv("STUDYGUIDE_POSTGRES_URL"),
		MaxUploadMB:            getenvInt("STUDYGUIDE_MAX_UPLOAD_MB", 20),
		WorkflowTimeoutSecs:    getenvInt("STUDYGUIDE_WORKFLOW_TIMEOUT_SECONDS", 600),
		WorkflowPollIntervalMs: getenvInt("STUDYGUIDE_FAL_POLL_INTERVAL_MS", 1000),
	}
}

// RequireGeminiKey reports a configuration error when the Gemini credential is unset.
func (c Config) RequireGeminiKey() error {
	return requireKey(c.GeminiAPIKey, GeminiKeyName)
}

func (c Config) RequireFalKey() error {
	return requireKey(c.FalAPIKey, FalKeyName)
}

func requireKey(v, name string) error {
	if strings.TrimSpace(v) == "" {
		return MissingKeyError(name)
	}
	return nil
}

// MissingKeyError builds the configuration error raised when a credential is absent.
func MissingKeyError(name string) error {
	return fmt.Errorf("%w: %s is not configured, set %s in your environment or .env file", util.ErrConfig, name, name)
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(k string, fallback bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(k)))
	switch v {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
