package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"studyguide/internal/config"
	"studyguide/internal/guide"
	"studyguide/internal/logger"
	"studyguide/internal/util"
)

var errInvalidJSON = errors.New("invalid json")

type Server struct {
	cfg config.Config
	gen guide.Generator
	log *logger.Logger
}

type generateRequest struct {
	Content string `json:"content"`
	Mode    string `json:"mode"`
}

func NewServer(cfg config.Config, gen guide.Generator, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{cfg: cfg, gen: gen, log: log}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/guides", s.handleGuides)
	mux.HandleFunc("/guides/upload", s.handleUpload)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	out := map[string]any{"ok": true, "visual_enabled": s.cfg.VisualEnabled}
	if b, ok := s.gen.(interface{ Busy() bool }); ok {
		out["busy"] = b.Busy()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGuides(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req generateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, s.maxBytes())).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("%w: %v", errInvalidJSON, err))
		return
	}
	s.generate(w, r, guide.Input{Text: req.Content, Mode: guide.Mode(strings.ToLower(strings.TrimSpace(req.Mode)))})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes())
	if err := r.ParseMultipartForm(s.maxBytes()); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, http.StatusRequestEntityTooLarge, fmt.Errorf("%w: file exceeds %d MB", util.ErrUnsupportedInput, s.cfg.MaxUploadMB))
			return
		}
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return
	}
	fh, hdr, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no file provided"))
		return
	}
	defer fh.Close()
	data, err := io.ReadAll(fh)
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("read upload: %w", err))
		return
	}
	file := &guide.File{
		Name:        filepath.Base(hdr.Filename),
		ContentType: uploadContentType(hdr.Header.Get("Content-Type"), hdr.Filename, data),
		Data:        data,
	}
	s.log.Info("upload received", "file", file.Name, "content_type", file.ContentType, "bytes", len(data))
	s.generate(w, r, guide.Input{File: file, Mode: guide.Mode(strings.ToLower(strings.TrimSpace(r.FormValue("mode"))))})
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, in guide.Input) {
	res, err := s.gen.Generate(r.Context(), in)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	if r.URL.Query().Get("download") == "1" {
		b, err := guide.MarshalIndent(res.Guide)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": guide.DownloadName(res.Guide)}))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) maxBytes() int64 {
	mb := s.cfg.MaxUploadMB
	if mb <= 0 {
		mb = 20
	}
	return int64(mb) << 20
}

// uploadContentType trusts the part header unless it is missing or generic.
func uploadContentType(header, filename string, data []byte) string {
	ct := guide.MediaType(header)
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if byExt := guide.MediaType(mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))); byExt != "" {
		return byExt
	}
	return guide.MediaType(http.DetectContentType(data))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, util.ErrConfig):
		return http.StatusInternalServerError
	case errors.Is(err, util.ErrUnsupportedInput):
		if strings.Contains(err.Error(), "not supported") {
			return http.StatusUnsupportedMediaType
		}
		return http.StatusBadRequest
	case errors.Is(err, util.ErrEndpointsExhausted),
		errors.Is(err, util.ErrMalformedEnvelope),
		errors.Is(err, util.ErrFormat),
		errors.Is(err, util.ErrSchema),
		errors.Is(err, util.ErrNoImage),
		errors.Is(err, util.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}

	switch {
	case errors.Is(err, util.ErrConfig):
		return apiError{Code: "SG-CFG-5001", Message: msg}
	case errors.Is(err, util.ErrUnsupportedInput) && status == http.StatusRequestEntityTooLarge:
		return apiError{Code: "SG-API-4013", Message: msg}
	case errors.Is(err, util.ErrUnsupportedInput) && status == http.StatusUnsupportedMediaType:
		return apiError{Code: "SG-API-4015", Message: msg}
	case errors.Is(err, util.ErrUnsupportedInput):
		return apiError{Code: "SG-API-4001", Message: msg}
	case errors.Is(err, util.ErrEndpointsExhausted):
		return apiError{Code: "SG-UP-5022", Message: msg}
	case errors.Is(err, util.ErrMalformedEnvelope):
		return apiError{Code: "SG-UP-5023", Message: msg}
	case errors.Is(err, util.ErrFormat):
		return apiError{Code: "SG-UP-5024", Message: msg}
	case errors.Is(err, util.ErrSchema):
		return apiError{Code: "SG-UP-5025", Message: msg}
	case errors.Is(err, util.ErrNoImage):
		return apiError{Code: "SG-UP-5026", Message: msg}
	case errors.Is(err, util.ErrTransport):
		return apiError{Code: "SG-UP-5021", Message: msg}
	}

	switch {
	case status >= 500:
		return apiError{Code: "SG-API-5000", Message: "Internal server error. Please retry or check service logs."}
	case status == http.StatusMethodNotAllowed:
		return apiError{Code: "SG-API-4005", Message: "This endpoint does not support the requested method."}
	}

	// For 4xx, keep user-safe validation context only.
	low := strings.ToLower(msg)
	switch {
	case strings.Contains(low, "invalid json"):
		msg = "Malformed JSON request body."
	case strings.Contains(low, "no file provided"):
		msg = "No file was provided. Upload a text or image file in the \"file\" field."
	case strings.Contains(low, "invalid multipart"):
		msg = "Malformed multipart upload."
	default:
		msg = "Invalid request. Check inputs and retry."
	}
	return apiError{Code: "SG-API-4001", Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
