package capability

import (
	"testing"

	"github.com/hyperjump/henkan/internal/automation"
)

func TestDetect_bridgeAvailable(t *testing.T) {
	set := Detect(&automation.FakeBridge{})
	for _, c := range All {
		if !set.Has(c) {
			t.Errorf("capability %s should be available", c)
		}
	}
}

func TestDetect_bridgeUnavailable(t *testing.T) {
	set := Detect(&automation.FakeBridge{Unavailable: true})
	if set.Has(LegacyAutomation) {
		t.Error("legacy automation should be unavailable")
	}
	for _, c := range []Capability{WordProcessing, Spreadsheet, Presentation} {
		if !set.Has(c) {
			t.Errorf("capability %s should stay available", c)
		}
	}
}

func TestDetect_nilBridge(t *testing.T) {
	set := Detect(nil)
	if set.Has(LegacyAutomation) {
		t.Error("legacy automation should be unavailable without a bridge")
	}
}

func TestNewSet_copiesInput(t *testing.T) {
	flags := map[Capability]bool{Spreadsheet: true}
	set := NewSet(flags)
	flags[Spreadsheet] = false
	if !set.Has(Spreadsheet) {
		t.Error("set should not observe mutation of the input map")
	}
}

func TestSet_unknownCapability(t *testing.T) {
	set := NewSet(nil)
	if set.Has(WordProcessing) {
		t.Error("empty set should report nothing available")
	}
}
