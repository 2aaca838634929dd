package guide

import (
	"encoding/json"
	"fmt"
	"strings"

	"studyguide/internal/util"
)

const (
	fenceJSON  = "```json"
	fencePlain = "```"
)

// StripCodeFence removes one markdown fence wrapping the model output.
// A json-labelled opener takes precedence over a bare one.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(s, fenceJSON):
		s = strings.TrimPrefix(s, fenceJSON)
	case strings.HasPrefix(s, fencePlain):
		s = strings.TrimPrefix(s, fencePlain)
	default:
		return s
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, fencePlain)
	return strings.TrimSpace(s)
}

// Normalize strips fencing from raw and checks that what remains is JSON.
func Normalize(raw string) (json.RawMessage, error) {
	s := StripCodeFence(raw)
	if s == "" || !json.Valid([]byte(s)) {
		return nil, fmt.Errorf("%w: the model may have returned malformed JSON", util.ErrFormat)
	}
	return json.RawMessage(s), nil
}

// Decode normalizes raw and unmarshals it into T.
// Any failure is a format error; callers needing schema checks use ParseStudyGuide.
func Decode[T any](raw string) (T, error) {
	var zero T
	msg, err := Normalize(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(msg, &out); err != nil {
		return zero, fmt.Errorf("%w: %v", util.ErrFormat, err)
	}
	return out, nil
}
