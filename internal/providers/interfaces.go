package providers

import "context"

type ProviderInfo struct {
	Name     string `json:"name"`
	Model    string `json:"model"`
	Endpoint string `json:"endpoint"`
}

type GenerateRequest struct {
	Operation string `json:"operation"`
	RequestID string `json:"request_id"`
	Prompt    string `json:"prompt"`
}

type GenerateResponse struct {
	Text string `json:"text"`
}

// LLMProvider is one named model endpoint. Generate issues exactly one upstream request.
type LLMProvider interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error)
}
