package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"studyguide/internal/config"
	"studyguide/internal/guide"
	"studyguide/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	got guide.Input
	res guide.Result
	err error
}

func (s *stubGenerator) Generate(_ context.Context, in guide.Input) (guide.Result, error) {
	s.got = in
	return s.res, s.err
}

func sampleResult() guide.Result {
	return guide.Result{
		Guide: guide.StudyGuide{
			Title:               "Cell Biology",
			Summary:             "Cells",
			StudentBenefitFocus: guide.DefaultBenefitFocus,
			Sections:            []guide.Section{{Header: "Organelles", BulletPoints: []string{"Nucleus"}, VisualSuggestions: []string{}, ReminderTips: []string{}}},
			InfographicStyle:    "clean",
		},
		Provider: guide.ProviderInfo{Name: "gemini", Model: "gemini-2.5-flash"},
	}
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(gen guide.Generator) http.Handler {
	return NewServer(config.Config{MaxUploadMB: 1}, gen, nil).Routes()
}

func TestGenerateFromJSON(t *testing.T) {
	gen := &stubGenerator{res: sampleResult()}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/guides", strings.NewReader(`{"content":"cells are small","mode":"Guide"}`))
	newTestServer(gen).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cells are small", gen.got.Text)
	assert.Equal(t, guide.ModeGuide, gen.got.Mode)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, string(body["study_guide"]), `"title":"Cell Biology"`)
	_, hasImage := body["infographic_url"]
	assert.False(t, hasImage)
}

func TestDownloadReturnsAttachment(t *testing.T) {
	gen := &stubGenerator{res: sampleResult()}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/guides?download=1", strings.NewReader(`{"content":"cells"}`))
	newTestServer(gen).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename=study-guide-cell-biology.json`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "{\n  \"title\": \"Cell Biology\""))
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: GEMINI_API_KEY is not configured", util.ErrConfig), http.StatusInternalServerError, "SG-CFG-5001"},
		{fmt.Errorf("%w: content is empty", util.ErrUnsupportedInput), http.StatusBadRequest, "SG-API-4001"},
		{fmt.Errorf("%w: file type application/pdf is not supported", util.ErrUnsupportedInput), http.StatusUnsupportedMediaType, "SG-API-4015"},
		{fmt.Errorf("%w. Last error: nope", util.ErrEndpointsExhausted), http.StatusBadGateway, "SG-UP-5022"},
		{fmt.Errorf("%w: bad", util.ErrFormat), http.StatusBadGateway, "SG-UP-5024"},
		{fmt.Errorf("%w: bad", util.ErrSchema), http.StatusBadGateway, "SG-UP-5025"},
		{fmt.Errorf("%w: none", util.ErrNoImage), http.StatusBadGateway, "SG-UP-5026"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "SG-API-5000"},
	}
	for _, tc := range cases {
		gen := &stubGenerator{err: tc.err}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/guides", strings.NewReader(`{"content":"x"}`))
		newTestServer(gen).ServeHTTP(rec, req)

		require.Equal(t, tc.status, rec.Code, tc.err.Error())
		var body errorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.code, body.Error.Code)
		assert.NotEmpty(t, body.Error.Message)
	}
}

func TestInvalidJSONAndMethod(t *testing.T) {
	h := newTestServer(&stubGenerator{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/guides", strings.NewReader(`{`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Malformed JSON request body.")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guides", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func multipartBody(t *testing.T, filename, contentType string, data []byte, mode string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	if mode != "" {
		require.NoError(t, mw.WriteField("mode", mode))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadPassesFile(t *testing.T) {
	gen := &stubGenerator{res: sampleResult()}
	body, ct := multipartBody(t, "notes.txt", "text/plain; charset=utf-8", []byte("mitochondria"), "infographic")
	req := httptest.NewRequest(http.MethodPost, "/guides/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	newTestServer(gen).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gen.got.File)
	assert.Equal(t, "text/plain", gen.got.File.ContentType)
	assert.Equal(t, "notes.txt", gen.got.File.Name)
	assert.Equal(t, []byte("mitochondria"), gen.got.File.Data)
	assert.Equal(t, guide.ModeInfographic, gen.got.Mode)
}

func TestUploadInfersTypeFromExtension(t *testing.T) {
	assert.Equal(t, "image/png", uploadContentType("application/octet-stream", "diagram.PNG", nil))
	assert.Equal(t, "text/plain", uploadContentType("", "noext", []byte("plain words")))
}

func TestUploadWithoutFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("mode", "guide"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/guides/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	newTestServer(&stubGenerator{}).ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No file was provided")
}

func TestUploadTooLarge(t *testing.T) {
	body, ct := multipartBody(t, "big.txt", "text/plain", bytes.Repeat([]byte("a"), 2<<20), "")
	req := httptest.NewRequest(http.MethodPost, "/guides/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	newTestServer(&stubGenerator{}).ServeHTTP(rec, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(&stubGenerator{}).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/guides", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
