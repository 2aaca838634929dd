package falai

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

const (
	StatusInQueue    = "IN_QUEUE"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

type Options struct {
	APIKey       string
	QueueURL     string
	StorageURL   string
	Timeout      time.Duration
	PollInterval time.Duration
}

// Client talks to the fal.ai storage and queue REST APIs.
type Client struct {
	apiKey     string
	queueURL   string
	storageURL string
	poll       time.Duration
	http       *http.Client
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		queueURL:   strings.TrimRight(defaultString(opts.QueueURL, "https://queue.fal.run"), "/"),
		storageURL: strings.TrimRight(defaultString(opts.StorageURL, "https://rest.alpha.fal.ai"), "/"),
		poll:       opts.PollInterval,
		http:       &http.Client{Timeout: opts.Timeout},
	}
}

// APIError is a non-success response from fal.ai.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fal.ai request failed (%d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return util.ErrTransport
}

type uploadInitiateRequest struct {
	ContentType string `json:"content_type"`
	FileName    string `json:"file_name"`
}

type uploadInitiateResponse struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
}

// Upload stores data in fal.ai storage and returns its public URL.
func (c *Client) Upload(ctx context.Context, data []byte, contentType, fileName string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	var init uploadInitiateResponse
	if err := c.doJSON(ctx, http.MethodPost, c.storageURL+"/storage/upload/initiate", uploadInitiateRequest{
		ContentType: contentType,
		FileName:    fileName,
	}, &init); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if init.UploadURL == "" || init.FileURL == "" {
		return "", fmt.Errorf("failed to upload image: %w: missing upload url", util.ErrMalformedEnvelope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, init.UploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w: %v", util.ErrTransport, stripURL(err))
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to upload image: %w", apiError(resp.StatusCode, body))
	}
	return init.FileURL, nil
}

type queueSubmitResponse struct {
	RequestID   string `json:"request_id"`
	StatusURL   string `json:"status_url"`
	ResponseURL string `json:"response_url"`
}

type queueStatus struct {
	Status        string `json:"status"`
	QueuePosition int    `json:"queue_position"`
}

// Subscribe submits input to the app's queue, waits for completion and decodes the result into out.
func (c *Client) Subscribe(ctx context.Context, app string, input any, out any) error {
	app = strings.Trim(strings.TrimSpace(app), "/")
	if app == "" {
		return fmt.Errorf("%w: fal.ai app id is empty", util.ErrConfig)
	}
	var sub queueSubmitResponse
	if err := c.doJSON(ctx, http.MethodPost, c.queueURL+"/"+app, input, &sub); err != nil {
		return err
	}
	if sub.RequestID == "" {
		return fmt.Errorf("%w: fal.ai queue returned no request id", util.ErrMalformedEnvelope)
	}
	statusURL := defaultString(sub.StatusURL, c.queueURL+"/"+appBase(app)+"/requests/"+sub.RequestID+"/status")
	responseURL := defaultString(sub.ResponseURL, c.queueURL+"/"+appBase(app)+"/requests/"+sub.RequestID)

	t := time.NewTicker(c.poll)
	defer t.Stop()
	for {
		var st queueStatus
		if err := c.doJSON(ctx, http.MethodGet, statusURL, nil, &st); err != nil {
			return err
		}
		if st.Status == StatusCompleted {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return c.doJSON(ctx, http.MethodGet, responseURL, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode fal.ai request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build fal.ai request: %w", err)
	}
	req.Header.Set("Authorization", "Key "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: fal.ai: %v", util.ErrTransport, stripURL(err))
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	// The status endpoint answers 202 while the request is still queued.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode fal.ai response: %v", util.ErrMalformedEnvelope, err)
	}
	return nil
}

// apiError prefers the "detail" field fal.ai puts on failures.
func apiError(status int, body []byte) *APIError {
	var parsed struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &parsed); err == nil {
		var s string
		switch {
		case json.Unmarshal(parsed.Detail, &s) == nil && s != "":
			msg = s
		case len(parsed.Detail) > 0 && string(parsed.Detail) != "null":
			msg = string(parsed.Detail)
		case parsed.Error != "":
			msg = parsed.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}

// appBase drops a sub-path, e.g. "fal-ai/flux/dev" -> "fal-ai/flux"; status URLs use the base app id.
func appBase(app string) string {
	parts := strings.Split(app, "/")
	if len(parts) > 2 {
		return strings.Join(parts[:2], "/")
	}
	return app
}

func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err
	}
	return err
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
