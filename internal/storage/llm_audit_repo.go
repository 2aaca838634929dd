package storage

import (
	"context"
	"fmt"
	"time"

	"studyguide/internal/logger"
	"studyguide/internal/providers"

	"github.com/google/uuid"
)

const llmCallsSchema = `
CREATE TABLE IF NOT EXISTS llm_calls (
  call_id       uuid PRIMARY KEY,
  request_id    text NOT NULL,
  operation     text NOT NULL,
  attempt       integer NOT NULL,
  endpoint      text NOT NULL,
  provider_name text NOT NULL,
  model         text NOT NULL,
  status        text NOT NULL,
  error_class   text,
  error_message text,
  latency_ms    bigint NOT NULL DEFAULT 0,
  created_at    timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS llm_calls_request_idx ON llm_calls(request_id);`

type LLMCallRecord struct {
	CallID       string
	RequestID    string
	Operation    string
	Attempt      int
	Endpoint     string
	ProviderName string
	Model        string
	Status       string
	ErrorClass   string
	ErrorMessage string
	LatencyMs    int64
}

type LLMAuditRepo struct {
	db *DB
}

func NewLLMAuditRepo(db *DB) *LLMAuditRepo {
	return &LLMAuditRepo{db: db}
}

func (r *LLMAuditRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, llmCallsSchema); err != nil {
		return fmt.Errorf("create llm_calls: %w", err)
	}
	return nil
}

func (r *LLMAuditRepo) Insert(ctx context.Context, rec LLMCallRecord) error {
	if rec.CallID == "" {
		rec.CallID = uuid.NewString()
	}
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO llm_calls(call_id, request_id, operation, attempt, endpoint, provider_name, model, status, error_class, error_message, latency_ms)
VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, NULLIF($9,''), NULLIF($10,''), $11)`,
		rec.CallID, rec.RequestID, rec.Operation, rec.Attempt, rec.Endpoint, rec.ProviderName, rec.Model, rec.Status, rec.ErrorClass, rec.ErrorMessage, rec.LatencyMs)
	if err != nil {
		return fmt.Errorf("insert llm call: %w", err)
	}
	return nil
}

// AuditObserver records every endpoint attempt. Insert failures are logged and dropped.
type AuditObserver struct {
	repo *LLMAuditRepo
	log  *logger.Logger
}

func NewAuditObserver(repo *LLMAuditRepo, log *logger.Logger) *AuditObserver {
	if log == nil {
		log = logger.Nop()
	}
	return &AuditObserver{repo: repo, log: log}
}

func (o *AuditObserver) OnAttempt(ctx context.Context, ev providers.AttemptEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := o.repo.Insert(ctx, RecordFromEvent(ev)); err != nil {
		o.log.Warn("llm audit insert failed", "request_id", ev.RequestID, "error", err.Error())
	}
}

func RecordFromEvent(ev providers.AttemptEvent) LLMCallRecord {
	provider := ev.Provider
	if provider == "" {
		provider = "unknown"
	}
	return LLMCallRecord{
		RequestID:    ev.RequestID,
		Operation:    ev.Operation,
		Attempt:      ev.Attempt,
		Endpoint:     ev.Endpoint,
		ProviderName: provider,
		Model:        ev.Model,
		Status:       ev.Status,
		ErrorClass:   string(ev.ErrorClass),
		ErrorMessage: ev.ErrorMessage,
		LatencyMs:    ev.LatencyMs,
	}
}
