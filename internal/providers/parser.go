package providers

import "strings"

const (
	TransportREST = "rest"
	TransportSDK  = "sdk"
	TransportMock = "mock"
)

// EndpointRef names one entry of the ordered endpoint list.
type EndpointRef struct {
	Raw       string
	Transport string
	Model     string
}

// ParseEndpointList splits a "|" separated list such as
// "gemini-2.5-flash|sdk:gemini-2.5-pro|mock". Order is preserved exactly.
func ParseEndpointList(raw, defaultTransport string) []EndpointRef {
	defaultTransport = strings.ToLower(strings.TrimSpace(defaultTransport))
	if defaultTransport == "" {
		defaultTransport = TransportREST
	}
	parts := strings.Split(raw, "|")
	out := make([]EndpointRef, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		ref := EndpointRef{Raw: p, Transport: defaultTransport, Model: p}
		if strings.EqualFold(p, TransportMock) {
			ref.Transport = TransportMock
			ref.Model = "mock-study-guide-v1"
		} else if strings.Contains(p, ":") {
			x := strings.SplitN(p, ":", 2)
			ref.Transport = strings.ToLower(strings.TrimSpace(x[0]))
			ref.Model = strings.TrimSpace(x[1])
		}
		out = append(out, ref)
	}
	return out
}

// NeedsCredential reports whether any endpoint reaches a real upstream.
func NeedsCredential(refs []EndpointRef) bool {
	for _, r := range refs {
		if r.Transport != TransportMock {
			return true
		}
	}
	return false
}
