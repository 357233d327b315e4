// Package extract converts office documents into flattened plain text.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hyperjump/henkan/internal/automation"
	"github.com/hyperjump/henkan/internal/capability"
)

// ErrUnsupportedFormat is returned for extensions outside the recognized set.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrFormatUnavailable is returned when the extension is recognized but its
// backing capability was absent at startup.
var ErrFormatUnavailable = errors.New("format support unavailable on this platform")

// Extractor dispatches files to a per-format extraction routine by
// extension. Dispatch is a pure function of the lowercased extension and
// the capability set; file content is never sniffed.
type Extractor struct {
	caps   capability.Set
	bridge automation.Bridge
}

// NewExtractor returns an extractor gated by the given capability set.
// The bridge is only touched by the legacy formats.
func NewExtractor(caps capability.Set, bridge automation.Bridge) *Extractor {
	return &Extractor{caps: caps, bridge: bridge}
}

// handler ties one extension to the capability it needs and the routine
// that produces its flattened text.
type handler struct {
	needs capability.Capability
	fn    func(*Extractor, string) (string, error)
}

var handlers = map[string]handler{
	".docx": {capability.WordProcessing, (*Extractor).extractDOCX},
	".xlsx": {capability.Spreadsheet, (*Extractor).extractXLSX},
	".pptx": {capability.Presentation, (*Extractor).extractPPTX},
	".doc":  {capability.LegacyAutomation, (*Extractor).extractDOC},
	".xls":  {capability.LegacyAutomation, (*Extractor).extractXLS},
	".ppt":  {capability.LegacyAutomation, (*Extractor).extractPPT},
}

// Extract reads the file at path and returns its flattened text. The
// format is chosen from the filename extension (case-insensitive).
func (e *Extractor) Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	h, ok := handlers[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if !e.caps.Has(h.needs) {
		return "", fmt.Errorf("%w: %s", ErrFormatUnavailable, ext)
	}
	return h.fn(e, path)
}

// Supports reports whether ext (with leading dot, any case) maps to an
// extractor whose capability is present.
func (e *Extractor) Supports(ext string) bool {
	h, ok := handlers[strings.ToLower(ext)]
	return ok && e.caps.Has(h.needs)
}

// Format describes one recognized extension and whether it can be handled.
type Format struct {
	Extension  string                `json:"extension"`
	Capability capability.Capability `json:"capability"`
	Available  bool                  `json:"available"`
}

// Formats returns every recognized extension in a stable order.
func (e *Extractor) Formats() []Format {
	exts := make([]string, 0, len(handlers))
	for ext := range handlers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	out := make([]Format, 0, len(exts))
	for _, ext := range exts {
		h := handlers[ext]
		out = append(out, Format{
			Extension:  ext,
			Capability: h.needs,
			Available:  e.caps.Has(h.needs),
		})
	}
	return out
}
