//go:build windows

package automation

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// NewBridge returns the COM automation bridge for Windows.
func NewBridge() Bridge { return comBridge{} }

type comBridge struct{}

// Available probes COM itself, not the individual applications. A missing
// application surfaces later as a session start failure.
func (comBridge) Available() bool {
	if err := ole.CoInitialize(0); err != nil {
		return false
	}
	ole.CoUninitialize()
	return true
}

// startApp initializes COM and launches the application behind progID.
// The caller owns the returned dispatch and must pair it with endApp.
func startApp(progID string) (*ole.IDispatch, error) {
	if err := ole.CoInitialize(0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	unknown, err := oleutil.CreateObject(progID)
	if err != nil {
		ole.CoUninitialize()
		return nil, fmt.Errorf("%w: start %s: %v", ErrUnavailable, progID, err)
	}
	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		ole.CoUninitialize()
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, progID, err)
	}
	return app, nil
}

// endApp quits the application and tears down the COM state startApp set up.
func endApp(app *ole.IDispatch) error {
	_, err := oleutil.CallMethod(app, "Quit")
	app.Release()
	ole.CoUninitialize()
	if err != nil {
		return fmt.Errorf("quit application: %w", err)
	}
	return nil
}

func (comBridge) Word() (WordSession, error) {
	app, err := startApp("Word.Application")
	if err != nil {
		return nil, err
	}
	_, _ = oleutil.PutProperty(app, "Visible", false)
	return &wordSession{app: app}, nil
}

type wordSession struct{ app *ole.IDispatch }

func (s *wordSession) Open(path string) (WordDocument, error) {
	docs, err := oleutil.GetProperty(s.app, "Documents")
	if err != nil {
		return nil, fmt.Errorf("word documents: %w", err)
	}
	defer docs.Clear()
	v, err := oleutil.CallMethod(docs.ToIDispatch(), "Open", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &wordDocument{doc: v.ToIDispatch()}, nil
}

func (s *wordSession) Quit() error { return endApp(s.app) }

type wordDocument struct{ doc *ole.IDispatch }

func (d *wordDocument) Text() (string, error) {
	content, err := oleutil.GetProperty(d.doc, "Content")
	if err != nil {
		return "", fmt.Errorf("document content: %w", err)
	}
	defer content.Clear()
	text, err := oleutil.GetProperty(content.ToIDispatch(), "Text")
	if err != nil {
		return "", fmt.Errorf("content text: %w", err)
	}
	defer text.Clear()
	return text.ToString(), nil
}

func (d *wordDocument) Close() error {
	_, err := oleutil.CallMethod(d.doc, "Close", false)
	d.doc.Release()
	if err != nil {
		return fmt.Errorf("close document: %w", err)
	}
	return nil
}

func (comBridge) Excel() (ExcelSession, error) {
	app, err := startApp("Excel.Application")
	if err != nil {
		return nil, err
	}
	_, _ = oleutil.PutProperty(app, "Visible", false)
	_, _ = oleutil.PutProperty(app, "DisplayAlerts", false)
	return &excelSession{app: app}, nil
}

type excelSession struct{ app *ole.IDispatch }

func (s *excelSession) Open(path string) (Workbook, error) {
	books, err := oleutil.GetProperty(s.app, "Workbooks")
	if err != nil {
		return nil, fmt.Errorf("excel workbooks: %w", err)
	}
	defer books.Clear()
	v, err := oleutil.CallMethod(books.ToIDispatch(), "Open", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &workbook{wb: v.ToIDispatch()}, nil
}

func (s *excelSession) Quit() error { return endApp(s.app) }

type workbook struct{ wb *ole.IDispatch }

func (w *workbook) Sheets() ([]Worksheet, error) {
	sheets, err := oleutil.GetProperty(w.wb, "Worksheets")
	if err != nil {
		return nil, fmt.Errorf("worksheets: %w", err)
	}
	defer sheets.Clear()
	sd := sheets.ToIDispatch()
	countV, err := oleutil.GetProperty(sd, "Count")
	if err != nil {
		return nil, fmt.Errorf("worksheet count: %w", err)
	}
	count := int(countV.Val)
	countV.Clear()
	out := make([]Worksheet, 0, count)
	for i := 1; i <= count; i++ {
		item, err := oleutil.GetProperty(sd, "Item", i)
		if err != nil {
			return nil, fmt.Errorf("worksheet %d: %w", i, err)
		}
		ws := item.ToIDispatch()
		nameV, err := oleutil.GetProperty(ws, "Name")
		if err != nil {
			return nil, fmt.Errorf("worksheet %d name: %w", i, err)
		}
		name := nameV.ToString()
		nameV.Clear()
		out = append(out, &worksheet{ws: ws, name: name})
	}
	return out, nil
}

func (w *workbook) Close() error {
	_, err := oleutil.CallMethod(w.wb, "Close", false)
	w.wb.Release()
	if err != nil {
		return fmt.Errorf("close workbook: %w", err)
	}
	return nil
}

type worksheet struct {
	ws   *ole.IDispatch
	name string
}

func (w *worksheet) Name() string { return w.name }

func (w *worksheet) UsedRange() (int, int, error) {
	ur, err := oleutil.GetProperty(w.ws, "UsedRange")
	if err != nil {
		return 0, 0, fmt.Errorf("used range: %w", err)
	}
	defer ur.Clear()
	rows, err := dispatchCount(ur.ToIDispatch(), "Rows")
	if err != nil {
		return 0, 0, err
	}
	cols, err := dispatchCount(ur.ToIDispatch(), "Columns")
	if err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}

func (w *worksheet) Cell(row, col int) (string, bool, error) {
	cell, err := oleutil.GetProperty(w.ws, "Cells", row, col)
	if err != nil {
		return "", false, fmt.Errorf("cell (%d,%d): %w", row, col, err)
	}
	defer cell.Clear()
	val, err := oleutil.GetProperty(cell.ToIDispatch(), "Value")
	if err != nil {
		return "", false, fmt.Errorf("cell (%d,%d) value: %w", row, col, err)
	}
	defer val.Clear()
	if val.VT == ole.VT_EMPTY || val.VT == ole.VT_NULL {
		return "", false, nil
	}
	return fmt.Sprint(val.Value()), true, nil
}

func (comBridge) PowerPoint() (PowerPointSession, error) {
	app, err := startApp("PowerPoint.Application")
	if err != nil {
		return nil, err
	}
	return &powerPointSession{app: app}, nil
}

type powerPointSession struct{ app *ole.IDispatch }

func (s *powerPointSession) Open(path string) (Presentation, error) {
	pres, err := oleutil.GetProperty(s.app, "Presentations")
	if err != nil {
		return nil, fmt.Errorf("powerpoint presentations: %w", err)
	}
	defer pres.Clear()
	// Open(FileName, ReadOnly, Untitled, WithWindow): read-only, no window.
	v, err := oleutil.CallMethod(pres.ToIDispatch(), "Open", path, true, false, false)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &presentation{p: v.ToIDispatch()}, nil
}

func (s *powerPointSession) Quit() error { return endApp(s.app) }

type presentation struct{ p *ole.IDispatch }

func (p *presentation) SlideCount() (int, error) {
	slides, err := oleutil.GetProperty(p.p, "Slides")
	if err != nil {
		return 0, fmt.Errorf("slides: %w", err)
	}
	defer slides.Clear()
	countV, err := oleutil.GetProperty(slides.ToIDispatch(), "Count")
	if err != nil {
		return 0, fmt.Errorf("slide count: %w", err)
	}
	defer countV.Clear()
	return int(countV.Val), nil
}

func (p *presentation) Slide(i int) (Slide, error) {
	slides, err := oleutil.GetProperty(p.p, "Slides")
	if err != nil {
		return nil, fmt.Errorf("slides: %w", err)
	}
	defer slides.Clear()
	item, err := oleutil.CallMethod(slides.ToIDispatch(), "Item", i)
	if err != nil {
		return nil, fmt.Errorf("slide %d: %w", i, err)
	}
	return &slide{s: item.ToIDispatch()}, nil
}

func (p *presentation) Close() error {
	_, err := oleutil.CallMethod(p.p, "Close")
	p.p.Release()
	if err != nil {
		return fmt.Errorf("close presentation: %w", err)
	}
	return nil
}

type slide struct{ s *ole.IDispatch }

func (sl *slide) Shapes() ([]Shape, error) {
	shapes, err := oleutil.GetProperty(sl.s, "Shapes")
	if err != nil {
		return nil, fmt.Errorf("shapes: %w", err)
	}
	defer shapes.Clear()
	sd := shapes.ToIDispatch()
	countV, err := oleutil.GetProperty(sd, "Count")
	if err != nil {
		return nil, fmt.Errorf("shape count: %w", err)
	}
	count := int(countV.Val)
	countV.Clear()
	out := make([]Shape, 0, count)
	for i := 1; i <= count; i++ {
		item, err := oleutil.GetProperty(sd, "Item", i)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		out = append(out, &shape{sh: item.ToIDispatch()})
	}
	return out, nil
}

type shape struct{ sh *ole.IDispatch }

func (s *shape) HasText() (bool, error) {
	hasFrame, err := oleutil.GetProperty(s.sh, "HasTextFrame")
	if err != nil {
		return false, fmt.Errorf("HasTextFrame: %w", err)
	}
	ok := variantBool(hasFrame)
	hasFrame.Clear()
	if !ok {
		return false, nil
	}
	frame, err := oleutil.GetProperty(s.sh, "TextFrame")
	if err != nil {
		return false, fmt.Errorf("TextFrame: %w", err)
	}
	defer frame.Clear()
	hasText, err := oleutil.GetProperty(frame.ToIDispatch(), "HasText")
	if err != nil {
		return false, fmt.Errorf("HasText: %w", err)
	}
	defer hasText.Clear()
	return variantBool(hasText), nil
}

func (s *shape) Text() (string, error) {
	frame, err := oleutil.GetProperty(s.sh, "TextFrame")
	if err != nil {
		return "", fmt.Errorf("TextFrame: %w", err)
	}
	defer frame.Clear()
	tr, err := oleutil.GetProperty(frame.ToIDispatch(), "TextRange")
	if err != nil {
		return "", fmt.Errorf("TextRange: %w", err)
	}
	defer tr.Clear()
	text, err := oleutil.GetProperty(tr.ToIDispatch(), "Text")
	if err != nil {
		return "", fmt.Errorf("TextRange text: %w", err)
	}
	defer text.Clear()
	return text.ToString(), nil
}

// dispatchCount reads the Count property of the named sub-collection.
func dispatchCount(disp *ole.IDispatch, collection string) (int, error) {
	coll, err := oleutil.GetProperty(disp, collection)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", collection, err)
	}
	defer coll.Clear()
	countV, err := oleutil.GetProperty(coll.ToIDispatch(), "Count")
	if err != nil {
		return 0, fmt.Errorf("%s count: %w", collection, err)
	}
	defer countV.Clear()
	return int(countV.Val), nil
}

// variantBool reports whether v holds a true value. Office returns
// MsoTriState integers (-1 for true) for some boolean properties.
func variantBool(v *ole.VARIANT) bool {
	switch x := v.Value().(type) {
	case bool:
		return x
	case int32:
		return x != 0
	case int64:
		return x != 0
	default:
		return false
	}
}
