package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studyguide/internal/util"
)

// GeminiProvider calls the generateContent REST endpoint of one Gemini model.
// The key travels as the "key" query parameter, never inside the prompt.
type GeminiProvider struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

func NewGeminiProvider(baseURL, model, apiKey string, timeout time.Duration) *GeminiProvider {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &GeminiProvider{
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (g *GeminiProvider) path() string {
	return "/v1beta/models/" + g.model + ":generateContent"
}

func (g *GeminiProvider) info() ProviderInfo {
	return ProviderInfo{Name: "gemini", Model: g.model, Endpoint: g.path()}
}

func (g *GeminiProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	info := g.info()
	payload, err := json.Marshal(geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{{Text: req.Prompt}}}}})
	if err != nil {
		return GenerateResponse{}, info, fmt.Errorf("encode gemini request: %w", err)
	}
	endpoint := g.baseURL + g.path() + "?key=" + url.QueryEscape(g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return GenerateResponse{}, info, fmt.Errorf("build gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return GenerateResponse{}, info, &EndpointError{Endpoint: g.model, Message: "gemini request failed: " + stripURL(err).Error()}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return GenerateResponse{}, info, &EndpointError{Endpoint: g.model, StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, body)}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return GenerateResponse{}, info, fmt.Errorf("%w: decode gemini response: %v", util.ErrMalformedEnvelope, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 || parsed.Candidates[0].Content.Parts[0].Text == "" {
		return GenerateResponse{}, info, fmt.Errorf("%w: no response text from Gemini API", util.ErrMalformedEnvelope)
	}
	return GenerateResponse{Text: parsed.Candidates[0].Content.Parts[0].Text}, info, nil
}

// errorMessage prefers the structured error.message of the body.
func errorMessage(status int, body []byte) string {
	var parsed geminiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && strings.TrimSpace(parsed.Error.Message) != "" {
		return parsed.Error.Message
	}
	text := http.StatusText(status)
	if text == "" {
		text = fmt.Sprintf("status %d", status)
	}
	return "API request failed: " + text
}

// stripURL drops the request URL from client errors so the key never leaks into messages.
func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err
	}
	return err
}
