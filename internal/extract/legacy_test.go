package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/hyperjump/henkan/internal/automation"
)

func newLegacyExtractor(bridge *automation.FakeBridge) *Extractor {
	return NewExtractor(fullCaps(), bridge)
}

func TestExtractDOC_bodyAsOneBlock(t *testing.T) {
	word := &automation.FakeWordSession{Body: "Full body text.\rSecond sentence."}
	e := newLegacyExtractor(&automation.FakeBridge{WordApp: word})

	got, err := e.Extract("/tmp/letter.doc")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "Full body text.\rSecond sentence." {
		t.Errorf("got %q", got)
	}
	if word.OpenedPath != "/tmp/letter.doc" {
		t.Errorf("opened %q", word.OpenedPath)
	}
	if !word.CloseCalled || !word.QuitCalled {
		t.Error("document must be closed and application quit")
	}
}

func TestExtractDOC_quitsOnReadFailure(t *testing.T) {
	word := &automation.FakeWordSession{TextErr: errors.New("document is locked")}
	e := newLegacyExtractor(&automation.FakeBridge{WordApp: word})

	_, err := e.Extract("/tmp/broken.doc")
	if err == nil || !strings.Contains(err.Error(), "document is locked") {
		t.Fatalf("want wrapped read error, got %v", err)
	}
	if !word.QuitCalled {
		t.Error("application must be quit even when reading fails")
	}
	if !word.CloseCalled {
		t.Error("document must be closed even when reading fails")
	}
}

func TestExtractDOC_quitsOnOpenFailure(t *testing.T) {
	word := &automation.FakeWordSession{OpenErr: errors.New("no such document")}
	e := newLegacyExtractor(&automation.FakeBridge{WordApp: word})

	if _, err := e.Extract("/tmp/missing.doc"); err == nil {
		t.Fatal("expected open error")
	}
	if !word.QuitCalled {
		t.Error("application must be quit when open fails")
	}
}

func TestExtractDOC_sessionStartFailure(t *testing.T) {
	e := newLegacyExtractor(&automation.FakeBridge{WordErr: automation.ErrUnavailable})
	_, err := e.Extract("/tmp/letter.doc")
	if !errors.Is(err, automation.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestExtractXLS_usedRangeFlattening(t *testing.T) {
	excel := &automation.FakeExcelSession{SheetList: []*automation.FakeSheet{
		{SheetName: "Sheet1", Grid: [][]string{
			{"a", "b"},
			{"", ""},
			{"c"},
		}},
	}}
	e := newLegacyExtractor(&automation.FakeBridge{ExcelApp: excel})

	got, err := e.Extract("/tmp/data.xls")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	// the fully-empty row is omitted, not emitted blank
	if got != "Sheet: Sheet1\na\tb\nc" {
		t.Errorf("got %q", got)
	}
	if !excel.CloseCalled || !excel.QuitCalled {
		t.Error("workbook must be closed and application quit")
	}
}

func TestExtractXLS_sparseCells(t *testing.T) {
	excel := &automation.FakeExcelSession{SheetList: []*automation.FakeSheet{
		{SheetName: "Budget", Grid: [][]string{{"x", "", "y"}}},
	}}
	e := newLegacyExtractor(&automation.FakeBridge{ExcelApp: excel})

	got, err := e.Extract("/tmp/budget.xls")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "Sheet: Budget\nx\ty" {
		t.Errorf("got %q", got)
	}
}

func TestExtractXLS_multipleSheets(t *testing.T) {
	excel := &automation.FakeExcelSession{SheetList: []*automation.FakeSheet{
		{SheetName: "First", Grid: [][]string{{"1"}}},
		{SheetName: "Second", Grid: nil},
	}}
	e := newLegacyExtractor(&automation.FakeBridge{ExcelApp: excel})

	got, err := e.Extract("/tmp/two.xls")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "Sheet: First\n1\nSheet: Second" {
		t.Errorf("got %q", got)
	}
}

func TestExtractXLS_quitsOnCellFailure(t *testing.T) {
	excel := &automation.FakeExcelSession{SheetList: []*automation.FakeSheet{
		{SheetName: "Bad", Grid: [][]string{{"x"}}, CellErr: errors.New("automation fault")},
	}}
	e := newLegacyExtractor(&automation.FakeBridge{ExcelApp: excel})

	if _, err := e.Extract("/tmp/bad.xls"); err == nil {
		t.Fatal("expected cell read error")
	}
	if !excel.QuitCalled {
		t.Error("application must be quit when a cell read fails")
	}
}

func TestExtractPPT_slidesAndTextFrames(t *testing.T) {
	pp := &automation.FakePowerPointSession{SlideList: []*automation.FakeSlide{
		{ShapeList: []*automation.FakeShape{
			{HasFrame: true, Body: "Hello"},
			{HasFrame: false, Body: "ignored"},
		}},
		{},
	}}
	e := newLegacyExtractor(&automation.FakeBridge{PowerPointApp: pp})

	got, err := e.Extract("/tmp/deck.ppt")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "Slide 1\nHello\nSlide 2" {
		t.Errorf("got %q", got)
	}
	if !pp.CloseCalled || !pp.QuitCalled {
		t.Error("presentation must be closed and application quit")
	}
}

func TestExtractPPT_quitsOnSlideFailure(t *testing.T) {
	pp := &automation.FakePowerPointSession{
		SlideList: []*automation.FakeSlide{{}},
		SlideErr:  errors.New("slide fetch failed"),
	}
	e := newLegacyExtractor(&automation.FakeBridge{PowerPointApp: pp})

	if _, err := e.Extract("/tmp/deck.ppt"); err == nil {
		t.Fatal("expected slide error")
	}
	if !pp.QuitCalled {
		t.Error("application must be quit when a slide read fails")
	}
}
