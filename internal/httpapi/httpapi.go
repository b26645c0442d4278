// Package httpapi implements the HTTP upload endpoint: a multipart
// upload of a columnar input file and a mapping document, returning
// the same job summary shape as cmd/colmap.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/colmap/colmap/internal/runner"
	"github.com/colmap/colmap/internal/writer"
)

// Handler serves one endpoint: POST multipart/form-data with fields
// "input" (the columnar file) and "mapping" (the mapping document),
// writing a "delimited" output under OutputDir and responding with
// the job summary as JSON. Minimal by design: no auth, no routing
// beyond the one path it is mounted at.
type Handler struct {
	OutputDir string
	Log       *logrus.Logger
}

func New(outputDir string, log *logrus.Logger) *Handler {
	return &Handler{OutputDir: outputDir, Log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runID := uuid.NewString()

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.fail(w, err, "failed to parse multipart form")
		return
	}

	inputPath, cleanupInput, err := h.stageUpload(r, "input", runID+"-input")
	if err != nil {
		h.fail(w, err, "failed to stage input file")
		return
	}
	defer cleanupInput()

	mappingPath, cleanupMapping, err := h.stageUpload(r, "mapping", runID+"-mapping")
	if err != nil {
		h.fail(w, err, "failed to stage mapping file")
		return
	}
	defer cleanupMapping()

	summary, err := runner.Run(r.Context(), runID, runner.Options{
		InputPath:   inputPath,
		MappingPath: mappingPath,
		OutputBase:  filepath.Join(h.OutputDir, runID),
		Format:      writer.Delimited,
		Log:         h.Log,
	})
	if err != nil {
		h.fail(w, err, "pipeline run failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

func (h *Handler) stageUpload(r *http.Request, field, name string) (string, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", func() {}, err
	}
	defer file.Close()

	if err := os.MkdirAll(h.OutputDir, 0o755); err != nil {
		return "", func() {}, err
	}
	path := filepath.Join(h.OutputDir, name+filepath.Ext(header.Filename))
	out, err := os.Create(path)
	if err != nil {
		return "", func() {}, err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", func() {}, err
	}
	return path, func() { os.Remove(path) }, nil
}

func (h *Handler) fail(w http.ResponseWriter, err error, msg string) {
	if h.Log != nil {
		h.Log.WithError(err).Error(msg)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": msg + ": " + err.Error()})
}
