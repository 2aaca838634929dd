package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteJSONAtomicAndText(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	jp := filepath.Join(dir, "guide.json")
	if err := WriteJSONAtomic(jp, map[string]any{"title": "A & B"}); err != nil {
		t.Fatalf("write json: %v", err)
	}
	b, err := os.ReadFile(jp)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	if string(b) != "{\n  \"title\": \"A & B\"\n}\n" {
		t.Fatalf("unexpected json: %q", b)
	}

	tp := filepath.Join(dir, "guide.md")
	if err := WriteTextAtomic(tp, "# A"); err != nil {
		t.Fatalf("write text: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}
