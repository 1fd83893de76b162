// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/evalio/callaudit/pkg/metrics"
)

// Multipart form field carrying the recording.
const audioFormField = "audio"

// Accepted audio container extensions. The server trusts the extension;
// the upstream transcription service rejects anything it cannot decode.
var allowedExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".ogg":  true,
	".webm": true,
}

// AnalyzeHandler handles call analysis requests.
type AnalyzeHandler struct {
	deps           Dependencies
	maxUploadBytes int64
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(deps Dependencies, maxUploadBytes int64) *AnalyzeHandler {
	return &AnalyzeHandler{deps: deps, maxUploadBytes: maxUploadBytes}
}

// HandleAnalyze handles POST /analyze requests. The body is
// multipart/form-data with the recording in the "audio" field. Client input
// problems fail before any external call is attempted.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile(audioFormField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing_file", WrapKind(op, ErrMissingFile, err))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		writeError(w, http.StatusBadRequest, "unsupported_media", NewKind(op, ErrUnsupportedMedia))
		return
	}
	metrics.RecordUploadBytes(header.Size)

	result, err := h.deps.Analyze(r.Context(), header.Filename, file)
	if err != nil {
		// Only a transcription failure reaches this branch; everything
		// downstream degrades inside the orchestrator instead.
		writeError(w, http.StatusBadGateway, "transcription_failed", WrapKind(op, ErrUpstream, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
