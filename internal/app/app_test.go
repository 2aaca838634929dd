package app

import (
	"context"
	"testing"

	"studyguide/internal/config"
	"studyguide/internal/guide"
	"studyguide/internal/logger"

	"github.com/stretchr/testify/require"
)

func TestBuildMockOnlyNeedsNoKey(t *testing.T) {
	a, err := Build(context.Background(), config.Config{GeminiModels: "mock", GeminiTransport: "rest"}, logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	res, err := a.Generator.Generate(context.Background(), guide.Input{Text: "The water cycle moves water around Earth."})
	require.NoError(t, err)
	require.Contains(t, res.Guide.Title, "Mock Study Guide")
	require.Equal(t, "mock", res.Provider.Name)
	require.Len(t, res.Guide.Sections, 1)
}

func TestBuildRealEndpointsRequireKey(t *testing.T) {
	a, err := Build(context.Background(), config.Config{GeminiModels: "gemini-2.5-flash", GeminiTransport: "rest"}, logger.Nop())
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Generator.Generate(context.Background(), guide.Input{Text: "x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestBuildRejectsUnknownTransport(t *testing.T) {
	_, err := Build(context.Background(), config.Config{GeminiModels: "grpc:gemini-2.5-flash"}, logger.Nop())
	require.Error(t, err)
}
