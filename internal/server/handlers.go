package server

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hyperjump/henkan/internal/convert"
	"github.com/hyperjump/henkan/internal/extract"
	"go.uber.org/zap"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

type convertResponse struct {
	Text        string `json:"text"`
	Artifact    string `json:"artifact"`
	DownloadURL string `json:"download_url"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, map[string]string{"Title": s.config.UI.Title}); err != nil {
		s.logger.Error("render index failed", zap.Error(err))
	}
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.config.Convert.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var upload *convert.Upload
	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		content, readErr := io.ReadAll(file)
		if readErr != nil {
			s.respondError(w, http.StatusBadRequest, "failed to read upload")
			return
		}
		upload = &convert.Upload{Name: filepath.Base(header.Filename), Content: content}
	case errors.Is(err, http.ErrMissingFile):
		// leave upload nil; the converter answers with its no-file message
	default:
		s.respondError(w, http.StatusBadRequest, "invalid file field")
		return
	}

	outputName := r.FormValue("output_name")
	s.logger.Debug("convert request",
		zap.String("file", uploadName(upload)),
		zap.String("output_name", outputName),
	)

	result, err := s.converter.Convert(upload, outputName)
	if err != nil {
		s.respondConvertError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, convertResponse{
		Text:        result.Text,
		Artifact:    filepath.Base(result.ArtifactPath),
		DownloadURL: downloadURL(result.ArtifactPath),
	})
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	dir := chi.URLParam(r, "dir")
	name := chi.URLParam(r, "name")
	if !validScratchDir(dir) || !validArtifactName(name) {
		s.respondError(w, http.StatusBadRequest, "invalid artifact path")
		return
	}
	path := filepath.Join(s.converter.ScratchRoot(), dir, name)
	if _, err := os.Stat(path); err != nil {
		s.respondError(w, http.StatusNotFound, "artifact not found")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"formats": s.extractor.Formats(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondConvertError maps orchestrator errors onto user-facing responses.
func (s *Server) respondConvertError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, convert.ErrNoFile):
		s.respondError(w, http.StatusBadRequest, "Please upload a file.")
	case errors.Is(err, extract.ErrUnsupportedFormat), errors.Is(err, extract.ErrFormatUnavailable):
		s.respondError(w, http.StatusBadRequest, "Unsupported file format: "+err.Error())
	default:
		s.logger.Error("conversion failed", zap.Error(err))
		s.respondError(w, http.StatusUnprocessableEntity, "Error processing file: "+err.Error())
	}
}

// downloadURL maps an artifact path onto the download endpoint. Only the
// scratch directory name and the artifact name survive into the URL.
func downloadURL(artifactPath string) string {
	dir := filepath.Base(filepath.Dir(artifactPath))
	name := filepath.Base(artifactPath)
	return "/api/v1/artifacts/" + url.PathEscape(dir) + "/" + url.PathEscape(name)
}

// validScratchDir accepts only directory names the converter generates.
func validScratchDir(dir string) bool {
	return strings.HasPrefix(dir, convert.ScratchPrefix) &&
		dir == filepath.Base(dir) &&
		!strings.Contains(dir, "..")
}

// validArtifactName accepts only plain .txt filenames.
func validArtifactName(name string) bool {
	return name != "" &&
		name == filepath.Base(name) &&
		!strings.Contains(name, "..") &&
		strings.HasSuffix(name, ".txt")
}

func uploadName(upload *convert.Upload) string {
	if upload == nil {
		return ""
	}
	return upload.Name
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
