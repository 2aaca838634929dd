package guide

import (
	"context"
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"

	"studyguide/internal/util"
)

const supportedKinds = "text/plain, image/jpeg, image/png, image/gif"

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// Router picks the pipeline for an input. visual may be nil when the
// infographic capability is disabled.
type Router struct {
	text   TextGenerator
	visual VisualGenerator
}

func NewRouter(text TextGenerator, visual VisualGenerator) *Router {
	return &Router{text: text, visual: visual}
}

func (r *Router) Generate(ctx context.Context, in Input) (Result, error) {
	mode := in.Mode
	if mode == "" {
		mode = ModeGuide
	}
	if mode != ModeGuide && mode != ModeInfographic {
		return Result{}, fmt.Errorf("%w: unknown mode %q", util.ErrUnsupportedInput, mode)
	}
	if in.File == nil {
		return r.fromText(ctx, in.Text, mode)
	}

	kind := MediaType(in.File.ContentType)
	switch {
	case kind == "text/plain":
		text, err := DecodeText(in.File.Data)
		if err != nil {
			return Result{}, err
		}
		return r.fromText(ctx, text, mode)
	case imageTypes[kind]:
		if r.visual == nil {
			return Result{}, fmt.Errorf("%w: image uploads need the infographic pipeline, which is not enabled", util.ErrUnsupportedInput)
		}
		if len(in.File.Data) == 0 {
			return Result{}, fmt.Errorf("%w: uploaded file is empty", util.ErrUnsupportedInput)
		}
		return r.visual.FromImage(ctx, *in.File)
	default:
		if kind == "" {
			kind = "unknown"
		}
		return Result{}, fmt.Errorf("%w: file type %s is not supported, use one of %s", util.ErrUnsupportedInput, kind, supportedKinds)
	}
}

func (r *Router) fromText(ctx context.Context, text string, mode Mode) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, fmt.Errorf("%w: content is empty", util.ErrUnsupportedInput)
	}
	if mode == ModeInfographic {
		if r.visual == nil {
			return Result{}, fmt.Errorf("%w: infographic mode is not enabled", util.ErrUnsupportedInput)
		}
		return r.visual.FromText(ctx, text)
	}
	return r.text.GenerateText(ctx, text)
}

// MediaType lowercases a Content-Type and drops its parameters.
func MediaType(contentType string) string {
	ct := strings.TrimSpace(contentType)
	if ct == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return strings.ToLower(mt)
	}
	return strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
}

// DecodeText reads an uploaded text file as UTF-8 and strips control characters.
func DecodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: text file is not valid UTF-8", util.ErrUnsupportedInput)
	}
	text := util.SanitizeText(string(data))
	if text == "" {
		return "", fmt.Errorf("%w: content is empty", util.ErrUnsupportedInput)
	}
	return text, nil
}
