package providers

import (
	"errors"
	"strings"

	"studyguide/internal/util"
)

type ErrorClass string

const (
	ErrorRetryable ErrorClass = "retryable"
	ErrorFatal     ErrorClass = "fatal"
)

// EndpointError is a failed request or non-success status from one endpoint.
// Message is the human-readable text extracted from the upstream response.
type EndpointError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *EndpointError) Error() string {
	return e.Message
}

func (e *EndpointError) Unwrap() error {
	return util.ErrTransport
}

// ClassifyError decides whether the driver may move on to the next endpoint.
// Only endpoint errors saying the model is unknown or unsupported are retryable.
func ClassifyError(err error) ErrorClass {
	if err == nil {
		return ""
	}
	var epErr *EndpointError
	if !errors.As(err, &epErr) {
		return ErrorFatal
	}
	return classifyMessage(epErr.Message)
}

func classifyMessage(msg string) ErrorClass {
	m := strings.ToLower(msg)
	switch {
	case strings.Contains(m, "not found"), strings.Contains(m, "not supported"):
		return ErrorRetryable
	default:
		return ErrorFatal
	}
}
