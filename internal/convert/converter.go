// Package convert orchestrates one upload-to-text conversion: persist the
// upload to scratch storage, dispatch extraction by extension, write the
// text artifact next to the input.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hyperjump/henkan/internal/extract"
	"github.com/hyperjump/henkan/pkg/utils"
	"go.uber.org/zap"
)

// DefaultOutputName is used when the caller leaves the output name blank.
const DefaultOutputName = "output.txt"

// ScratchPrefix names every per-conversion scratch directory. The download
// handler only serves paths matching this scheme.
const ScratchPrefix = "henkan-"

// ErrNoFile is returned when no upload was provided at all.
var ErrNoFile = errors.New("no file uploaded")

// Upload is one uploaded document: its original filename and raw bytes.
type Upload struct {
	Name    string
	Content []byte
}

// Result is a successful conversion: the flattened text and the path of
// the .txt artifact written into the conversion's scratch directory.
type Result struct {
	Text         string
	ArtifactPath string
}

// Converter runs conversions. Each call gets a fresh scratch directory so
// concurrent conversions never collide on input filenames.
type Converter struct {
	extractor        *extract.Extractor
	scratchRoot      string
	cleanupOnFailure bool
	logger           *zap.Logger
}

// NewConverter returns a converter writing scratch directories under
// scratchRoot (the OS temp directory when blank). When cleanupOnFailure is
// set, conversions that produce no artifact remove their scratch directory.
func NewConverter(extractor *extract.Extractor, scratchRoot string, cleanupOnFailure bool, logger *zap.Logger) *Converter {
	if scratchRoot == "" {
		scratchRoot = os.TempDir()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		extractor:        extractor,
		scratchRoot:      scratchRoot,
		cleanupOnFailure: cleanupOnFailure,
		logger:           logger,
	}
}

// ScratchRoot returns the directory under which scratch directories are created.
func (c *Converter) ScratchRoot() string { return c.scratchRoot }

// NormalizeOutputName defaults blank names to "output.txt" and appends
// ".txt" when missing. An unrelated extension is kept, so "report.doc"
// becomes "report.doc.txt".
func NormalizeOutputName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultOutputName
	}
	if !strings.HasSuffix(name, ".txt") {
		name += ".txt"
	}
	return name
}

// Convert runs one conversion. Either both the text and the artifact are
// produced, or neither is; a failure never leaves a partial artifact.
func (c *Converter) Convert(upload *Upload, outputName string) (*Result, error) {
	if upload == nil || upload.Name == "" {
		return nil, ErrNoFile
	}
	outputName = NormalizeOutputName(outputName)

	dir := filepath.Join(c.scratchRoot, ScratchPrefix+uuid.NewString())
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}
	inputPath := filepath.Join(dir, filepath.Base(upload.Name))
	if err := os.WriteFile(inputPath, upload.Content, 0600); err != nil {
		c.discard(dir)
		return nil, fmt.Errorf("write upload: %w", err)
	}

	text, err := c.extractor.Extract(inputPath)
	if err != nil {
		c.logger.Warn("extraction failed", zap.String("file", upload.Name), zap.Error(err))
		c.discard(dir)
		return nil, err
	}

	artifactPath := filepath.Join(dir, outputName)
	if err := os.WriteFile(artifactPath, []byte(text), 0600); err != nil {
		c.discard(dir)
		return nil, fmt.Errorf("write artifact: %w", err)
	}

	c.logger.Debug("converted",
		zap.String("file", upload.Name),
		zap.String("artifact", artifactPath),
		zap.String("preview", utils.Truncate(text, 80)),
	)
	return &Result{Text: text, ArtifactPath: artifactPath}, nil
}

// discard removes the scratch directory of a failed conversion when cleanup
// is enabled. Directories of successful conversions are never removed here;
// the artifact must stay downloadable, and reclaiming old directories is
// left to the OS temp lifecycle.
func (c *Converter) discard(dir string) {
	if !c.cleanupOnFailure {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		c.logger.Warn("scratch cleanup failed", zap.String("dir", dir), zap.Error(err))
	}
}
