package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"studyguide/internal/util"

	genai "google.golang.org/genai"
)

// GenAIProvider reaches the same Gemini models through the official SDK.
// The key is carried in the client configuration.
type GenAIProvider struct {
	client *genai.Client
	model  string
}

func NewGenAIProvider(ctx context.Context, baseURL, model, apiKey string, timeout time.Duration) (*GenAIProvider, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	if b := strings.TrimSpace(baseURL); b != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(b, "/") + "/"}
	}
	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenAIProvider{client: c, model: model}, nil
}

func (p *GenAIProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	info := ProviderInfo{Name: "gemini-sdk", Model: p.model, Endpoint: "models/" + p.model}
	res, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), nil)
	if err != nil {
		return GenerateResponse{}, info, sdkEndpointError(p.model, err)
	}
	text := ""
	if res != nil {
		text = res.Text()
	}
	if text == "" {
		return GenerateResponse{}, info, fmt.Errorf("%w: no response text from Gemini API", util.ErrMalformedEnvelope)
	}
	return GenerateResponse{Text: text}, info, nil
}

func sdkEndpointError(model string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiEndpointError(model, apiErr)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiEndpointError(model, *apiErrPtr)
	}
	return &EndpointError{Endpoint: model, Message: "gemini sdk request failed: " + stripURL(err).Error()}
}

func apiEndpointError(model string, apiErr genai.APIError) *EndpointError {
	msg := strings.TrimSpace(apiErr.Message)
	if msg == "" {
		msg = "API request failed: " + http.StatusText(apiErr.Code)
	}
	return &EndpointError{Endpoint: model, StatusCode: apiErr.Code, Message: msg}
}
