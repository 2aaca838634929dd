package guide

import "context"

// Generator is the single content-to-guide capability shared by the HTTP API and the CLI.
type Generator interface {
	Generate(ctx context.Context, in Input) (Result, error)
}

// TextGenerator produces a guide from plain text.
type TextGenerator interface {
	GenerateText(ctx context.Context, content string) (Result, error)
}

// VisualGenerator produces a guide plus an infographic image.
type VisualGenerator interface {
	FromText(ctx context.Context, content string) (Result, error)
	FromImage(ctx context.Context, f File) (Result, error)
}
