package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"studyguide/internal/guide"

	"github.com/stretchr/testify/require"
)

func TestGenerateWithMockEndpoint(t *testing.T) {
	t.Setenv("STUDYGUIDE_GEMINI_MODELS", "mock")
	t.Setenv("STUDYGUIDE_LOG_MODE", "prod")
	t.Setenv("STUDYGUIDE_POSTGRES_URL", "")
	t.Setenv("STUDYGUIDE_VISUAL_ENABLED", "false")
	dir := t.TempDir()
	out := filepath.Join(dir, "guide.json")
	md := filepath.Join(dir, "guide.md")

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"generate", "--text", "Osmosis moves water across membranes.", "--out", out, "--markdown", md})
	require.NoError(t, cmd.Execute())

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	var g guide.StudyGuide
	require.NoError(t, json.Unmarshal(b, &g))
	require.True(t, strings.HasPrefix(g.Title, "Mock Study Guide"))

	m, err := os.ReadFile(md)
	require.NoError(t, err)
	require.Contains(t, string(m), "## Overview")
}

func TestReadInputRequiresSource(t *testing.T) {
	_, err := readInput(generateOpts{mode: "guide"})
	require.Error(t, err)

	dir := t.TempDir()
	p := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(p, []byte("atoms"), 0o644))
	in, err := readInput(generateOpts{file: p})
	require.NoError(t, err)
	require.Equal(t, "text/plain", guide.MediaType(in.File.ContentType))
}
