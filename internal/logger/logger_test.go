package logger

import "testing"

func TestSanitizeKVsRedactsCredentials(t *testing.T) {
	out := sanitizeKVs([]interface{}{"endpoint", "gemini-2.5-flash", "api_key", "abc123", "Authorization", "Key xyz"})
	if len(out) != 6 {
		t.Fatalf("expected 6 values, got %d", len(out))
	}
	if out[1] != "gemini-2.5-flash" {
		t.Fatalf("unexpected value for endpoint: %v", out[1])
	}
	if out[3] != "[REDACTED]" || out[5] != "[REDACTED]" {
		t.Fatalf("expected credentials redacted, got %v", out)
	}
}

func TestSanitizeKVsKeepsDanglingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"a", 1, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}
