package automation

// FakeBridge is a scriptable Bridge for tests. Sessions record whether
// Quit and Close were called so lifecycle guarantees can be asserted.
type FakeBridge struct {
	Unavailable   bool
	WordErr       error
	ExcelErr      error
	PowerPointErr error

	WordApp       *FakeWordSession
	ExcelApp      *FakeExcelSession
	PowerPointApp *FakePowerPointSession
}

func (b *FakeBridge) Available() bool { return !b.Unavailable }

func (b *FakeBridge) Word() (WordSession, error) {
	if b.WordErr != nil {
		return nil, b.WordErr
	}
	if b.WordApp == nil {
		b.WordApp = &FakeWordSession{}
	}
	return b.WordApp, nil
}

func (b *FakeBridge) Excel() (ExcelSession, error) {
	if b.ExcelErr != nil {
		return nil, b.ExcelErr
	}
	if b.ExcelApp == nil {
		b.ExcelApp = &FakeExcelSession{}
	}
	return b.ExcelApp, nil
}

func (b *FakeBridge) PowerPoint() (PowerPointSession, error) {
	if b.PowerPointErr != nil {
		return nil, b.PowerPointErr
	}
	if b.PowerPointApp == nil {
		b.PowerPointApp = &FakePowerPointSession{}
	}
	return b.PowerPointApp, nil
}

// FakeWordSession serves one document with fixed body text.
type FakeWordSession struct {
	Body    string
	OpenErr error
	TextErr error

	OpenedPath  string
	QuitCalled  bool
	CloseCalled bool
}

func (s *FakeWordSession) Open(path string) (WordDocument, error) {
	if s.OpenErr != nil {
		return nil, s.OpenErr
	}
	s.OpenedPath = path
	return &fakeWordDocument{s: s}, nil
}

func (s *FakeWordSession) Quit() error {
	s.QuitCalled = true
	return nil
}

type fakeWordDocument struct{ s *FakeWordSession }

func (d *fakeWordDocument) Text() (string, error) {
	if d.s.TextErr != nil {
		return "", d.s.TextErr
	}
	return d.s.Body, nil
}

func (d *fakeWordDocument) Close() error {
	d.s.CloseCalled = true
	return nil
}

// FakeSheet is one worksheet backed by a grid; "" marks an empty cell.
type FakeSheet struct {
	SheetName string
	Grid      [][]string
	CellErr   error
}

func (s *FakeSheet) Name() string { return s.SheetName }

func (s *FakeSheet) UsedRange() (int, int, error) {
	cols := 0
	for _, row := range s.Grid {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return len(s.Grid), cols, nil
}

func (s *FakeSheet) Cell(row, col int) (string, bool, error) {
	if s.CellErr != nil {
		return "", false, s.CellErr
	}
	if row < 1 || row > len(s.Grid) || col < 1 || col > len(s.Grid[row-1]) {
		return "", false, nil
	}
	v := s.Grid[row-1][col-1]
	return v, v != "", nil
}

// FakeExcelSession serves one workbook built from fake sheets.
type FakeExcelSession struct {
	SheetList []*FakeSheet
	OpenErr   error
	SheetsErr error

	OpenedPath  string
	QuitCalled  bool
	CloseCalled bool
}

func (s *FakeExcelSession) Open(path string) (Workbook, error) {
	if s.OpenErr != nil {
		return nil, s.OpenErr
	}
	s.OpenedPath = path
	return &fakeWorkbook{s: s}, nil
}

func (s *FakeExcelSession) Quit() error {
	s.QuitCalled = true
	return nil
}

type fakeWorkbook struct{ s *FakeExcelSession }

func (w *fakeWorkbook) Sheets() ([]Worksheet, error) {
	if w.s.SheetsErr != nil {
		return nil, w.s.SheetsErr
	}
	out := make([]Worksheet, len(w.s.SheetList))
	for i, sh := range w.s.SheetList {
		out[i] = sh
	}
	return out, nil
}

func (w *fakeWorkbook) Close() error {
	w.s.CloseCalled = true
	return nil
}

// FakeShape is one slide shape; HasFrame false models a shape without a
// populated text frame.
type FakeShape struct {
	HasFrame bool
	Body     string
}

func (s *FakeShape) HasText() (bool, error) { return s.HasFrame, nil }

func (s *FakeShape) Text() (string, error) { return s.Body, nil }

// FakeSlide holds an ordered list of shapes.
type FakeSlide struct {
	ShapeList []*FakeShape
}

func (s *FakeSlide) Shapes() ([]Shape, error) {
	out := make([]Shape, len(s.ShapeList))
	for i, sh := range s.ShapeList {
		out[i] = sh
	}
	return out, nil
}

// FakePowerPointSession serves one presentation built from fake slides.
type FakePowerPointSession struct {
	SlideList []*FakeSlide
	OpenErr   error
	SlideErr  error

	OpenedPath  string
	QuitCalled  bool
	CloseCalled bool
}

func (s *FakePowerPointSession) Open(path string) (Presentation, error) {
	if s.OpenErr != nil {
		return nil, s.OpenErr
	}
	s.OpenedPath = path
	return &fakePresentation{s: s}, nil
}

func (s *FakePowerPointSession) Quit() error {
	s.QuitCalled = true
	return nil
}

type fakePresentation struct{ s *FakePowerPointSession }

func (p *fakePresentation) SlideCount() (int, error) { return len(p.s.SlideList), nil }

func (p *fakePresentation) Slide(i int) (Slide, error) {
	if p.s.SlideErr != nil {
		return nil, p.s.SlideErr
	}
	if i < 1 || i > len(p.s.SlideList) {
		return nil, ErrUnavailable
	}
	return p.s.SlideList[i-1], nil
}

func (p *fakePresentation) Close() error {
	p.s.CloseCalled = true
	return nil
}
