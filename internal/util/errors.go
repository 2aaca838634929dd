package util

import "errors"

var (
	ErrConfig = errors.New("configuration error")

	ErrEndpointUnavailable = errors.New("model endpoint unavailable")
	ErrEndpointsExhausted  = errors.New("all model endpoints failed")
	ErrTransport           = errors.New("upstream request failed")
	ErrMalformedEnvelope   = errors.New("malformed upstream response")

	// ErrFormat marks model output that is not JSON after fence stripping.
	ErrFormat = errors.New("invalid JSON in model response")
	ErrSchema = errors.New("invalid study guide structure")

	ErrUnsupportedInput = errors.New("unsupported input")
	ErrNoImage          = errors.New("no images generated")
)
