package server

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperjump/henkan/internal/automation"
	"github.com/hyperjump/henkan/internal/capability"
	"github.com/hyperjump/henkan/internal/config"
	"github.com/hyperjump/henkan/internal/convert"
	"github.com/hyperjump/henkan/internal/extract"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, bridge automation.Bridge) *Server {
	t.Helper()
	caps := capability.Detect(bridge)
	extractor := extract.NewExtractor(caps, bridge)
	conv := convert.NewConverter(extractor, t.TempDir(), false, zap.NewNop())
	return NewServer(conv, extractor, config.Default(), zap.NewNop())
}

func minimalDocx(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(`<w:document><w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body></w:document>`)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// multipartBody builds a convert request body; filename "" omits the file part.
func multipartBody(t *testing.T, filename string, content []byte, outputName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.WriteField("output_name", outputName); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func postConvert(t *testing.T, srv *Server, filename string, content []byte, outputName string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, filename, content, outputName)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/convert", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.router().ServeHTTP(w, r)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out.Error
}

func TestHandleConvert_docx(t *testing.T) {
	srv := newTestServer(t, &automation.FakeBridge{})
	w := postConvert(t, srv, "memo.docx", minimalDocx(t, "Hello upload"), "report")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	var out convertResponse
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Text != "Hello upload" {
		t.Errorf("text: got %q", out.Text)
	}
	if out.Artifact != "report.txt" {
		t.Errorf("artifact: got %q", out.Artifact)
	}
	if !strings.HasPrefix(out.DownloadURL, "/api/v1/artifacts/"+convert.ScratchPrefix) {
		t.Fatalf("download_url: got %q", out.DownloadURL)
	}

	// the artifact must be downloadable through the returned URL
	r := httptest.NewRequest(http.MethodGet, out.DownloadURL, nil)
	dl := httptest.NewRecorder()
	srv.router().ServeHTTP(dl, r)
	if dl.Code != http.StatusOK {
		t.Fatalf("download status: got %d", dl.Code)
	}
	if dl.Body.String() != out.Text {
		t.Errorf("downloaded artifact differs from text: %q", dl.Body.String())
	}
}

func TestHandleConvert_missingFile(t *testing.T) {
	srv := newTestServer(t, &automation.FakeBridge{})
	w := postConvert(t, srv, "", nil, "report")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", w.Code)
	}
	if msg := decodeError(t, w); msg != "Please upload a file." {
		t.Errorf("message: got %q", msg)
	}
}

func TestHandleConvert_unsupportedExtension(t *testing.T) {
	srv := newTestServer(t, &automation.FakeBridge{})
	w := postConvert(t, srv, "notes.pdf", []byte("%PDF-1.4"), "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", w.Code)
	}
	if msg := decodeError(t, w); !strings.Contains(msg, ".pdf") {
		t.Errorf("message should name the extension: %q", msg)
	}
}

func TestHandleConvert_extractionFailure(t *testing.T) {
	srv := newTestServer(t, &automation.FakeBridge{})
	w := postConvert(t, srv, "bad.docx", []byte("garbage"), "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d", w.Code)
	}
	if msg := decodeError(t, w); !strings.HasPrefix(msg, "Error processing file: ") {
		t.Errorf("message: got %q", msg)
	}
}

func TestHandleConvert_legacyUnavailable(t *testing.T) {
	srv := newTestServer(t, &automation.FakeBridge{Unavailable: true})
	w := postConvert(t, srv, "old.doc", []byte{0xD0, 0xCF}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", w.Code)
	}
	if msg := decodeError(t, w); !strings.Contains(msg, ".doc") {
		t.Errorf("message should name the extension: %q", msg)
	}
}

func TestHandleFormats(t *testing.T) {
	srv := newTestServer(t, &automation.FakeBridge{Unavailable: true})
	r := httptest.NewRequest(http.MethodGet, "/api/v1/formats", nil)
	w := httptest.NewRecorder()
	srv.router().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Formats []extract.Format `json:"formats"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Formats) != 6 {
		t.Fatalf("want 6 formats, got %d", len(out.Formats))
	}
	for _, f := range out.Formats {
		legacy := f.Capability == capability.LegacyAutomation
		if f.Available == legacy {
			t.Errorf("availability wrong for %s: %+v", f.Extension, f)
		}
	}
}

func TestHandleArtifact_rejectsForeignDir(t *testing.T) {
	srv := newTestServer(t, &automation.FakeBridge{})
	r := httptest.NewRequest(http.MethodGet, "/api/v1/artifacts/evil/out.txt", nil)
	w := httptest.NewRecorder()
	srv.router().ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d", w.Code)
	}
}

func TestHandleArtifact_notFound(t *testing.T) {
	srv := newTestServer(t, &automation.FakeBridge{})
	r := httptest.NewRequest(http.MethodGet, "/api/v1/artifacts/"+convert.ScratchPrefix+"missing/out.txt", nil)
	w := httptest.NewRecorder()
	srv.router().ServeHTTP(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d", w.Code)
	}
}

func TestValidArtifactName(t *testing.T) {
	if validArtifactName("../../etc/passwd") || validArtifactName("notes.pdf") || validArtifactName("") {
		t.Error("invalid names accepted")
	}
	if !validArtifactName("report.txt") {
		t.Error("plain .txt name rejected")
	}
}

func TestHandleIndex(t *testing.T) {
	srv := newTestServer(t, &automation.FakeBridge{})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.router().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), config.Default().UI.Title) {
		t.Error("index page should carry the configured title")
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, &automation.FakeBridge{})
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.router().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
}
