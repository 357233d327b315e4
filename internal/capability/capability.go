// Package capability tracks which document-processing backends are usable.
// The set is built once at startup and treated as read-only afterwards.
package capability

import "github.com/hyperjump/henkan/internal/automation"

// Capability identifies one backing library or platform feature.
type Capability string

const (
	WordProcessing   Capability = "word-processing"
	Spreadsheet      Capability = "spreadsheet"
	Presentation     Capability = "presentation"
	LegacyAutomation Capability = "legacy-automation"
)

// All lists every known capability in a stable order.
var All = []Capability{WordProcessing, Spreadsheet, Presentation, LegacyAutomation}

// Set is an immutable record of which capabilities were present at startup.
type Set struct {
	available map[Capability]bool
}

// NewSet builds a set from the given availability flags. The input map is
// copied so later mutation cannot leak into the set.
func NewSet(available map[Capability]bool) Set {
	m := make(map[Capability]bool, len(available))
	for c, ok := range available {
		m[c] = ok
	}
	return Set{available: m}
}

// Detect probes each capability independently. The modern-format backends
// are compiled into the binary, so only legacy automation can come up
// absent; its absence never disables the others.
func Detect(bridge automation.Bridge) Set {
	return NewSet(map[Capability]bool{
		WordProcessing:   true,
		Spreadsheet:      true,
		Presentation:     true,
		LegacyAutomation: bridge != nil && bridge.Available(),
	})
}

// Has reports whether c was available at startup.
func (s Set) Has(c Capability) bool { return s.available[c] }
