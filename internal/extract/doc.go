package extract

import "fmt"

// extractDOC reads a legacy Word document through the automation bridge.
// The body comes back as one opaque block; this interface does not expose
// paragraph boundaries. The application is quit on every path.
func (e *Extractor) extractDOC(path string) (string, error) {
	word, err := e.bridge.Word()
	if err != nil {
		return "", fmt.Errorf("start Word: %w", err)
	}
	defer word.Quit()

	doc, err := word.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer doc.Close()

	text, err := doc.Text()
	if err != nil {
		return "", fmt.Errorf("read document body: %w", err)
	}
	return text, nil
}
