// Package automation drives host Office applications through COM to read
// legacy document formats (.doc, .xls, .ppt). Every session follows an
// open, read, close, quit lifecycle; callers must guarantee Quit on all
// paths, otherwise a live application instance is leaked.
package automation

import "errors"

// ErrUnavailable is returned when COM automation does not exist on this
// platform or the host application could not be started.
var ErrUnavailable = errors.New("host application automation unavailable")

// Bridge opens automation sessions with the host Office applications.
type Bridge interface {
	// Available reports whether automation can be used at all. It is probed
	// once at startup; a false result disables the legacy formats only.
	Available() bool
	Word() (WordSession, error)
	Excel() (ExcelSession, error)
	PowerPoint() (PowerPointSession, error)
}

// WordSession is a running Word application instance.
type WordSession interface {
	Open(path string) (WordDocument, error)
	Quit() error
}

// WordDocument is one open legacy Word document.
type WordDocument interface {
	// Text returns the entire document body as one block.
	Text() (string, error)
	Close() error
}

// ExcelSession is a running Excel application instance.
type ExcelSession interface {
	Open(path string) (Workbook, error)
	Quit() error
}

// Workbook is one open legacy Excel workbook.
type Workbook interface {
	Sheets() ([]Worksheet, error)
	Close() error
}

// Worksheet exposes the used cell rectangle of one sheet.
type Worksheet interface {
	Name() string
	// UsedRange returns the row and column counts of the used range.
	UsedRange() (rows, cols int, err error)
	// Cell returns the value at 1-based (row, col) and whether the cell
	// holds a value at all.
	Cell(row, col int) (value string, ok bool, err error)
}

// PowerPointSession is a running PowerPoint application instance.
type PowerPointSession interface {
	Open(path string) (Presentation, error)
	Quit() error
}

// Presentation is one open legacy PowerPoint presentation.
type Presentation interface {
	SlideCount() (int, error)
	// Slide returns the 1-based i-th slide.
	Slide(i int) (Slide, error)
	Close() error
}

// Slide is one slide of an open presentation.
type Slide interface {
	Shapes() ([]Shape, error)
}

// Shape is one drawable on a slide. Only shapes with a populated text
// frame carry text.
type Shape interface {
	HasText() (bool, error)
	Text() (string, error)
}
