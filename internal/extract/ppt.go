package extract

import (
	"fmt"
	"strings"
)

// extractPPT reads a legacy PowerPoint presentation through the automation
// bridge: slides 1-based in order, then shapes in order, emitting text only
// for shapes with a populated text frame. The application is quit on every
// path.
func (e *Extractor) extractPPT(path string) (string, error) {
	pp, err := e.bridge.PowerPoint()
	if err != nil {
		return "", fmt.Errorf("start PowerPoint: %w", err)
	}
	defer pp.Quit()

	pres, err := pp.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer pres.Close()

	count, err := pres.SlideCount()
	if err != nil {
		return "", fmt.Errorf("count slides: %w", err)
	}
	var lines []string
	for i := 1; i <= count; i++ {
		lines = append(lines, fmt.Sprintf("Slide %d", i))
		slide, err := pres.Slide(i)
		if err != nil {
			return "", fmt.Errorf("slide %d: %w", i, err)
		}
		shapes, err := slide.Shapes()
		if err != nil {
			return "", fmt.Errorf("shapes of slide %d: %w", i, err)
		}
		for _, shape := range shapes {
			ok, err := shape.HasText()
			if err != nil {
				return "", fmt.Errorf("shape on slide %d: %w", i, err)
			}
			if !ok {
				continue
			}
			text, err := shape.Text()
			if err != nil {
				return "", fmt.Errorf("shape text on slide %d: %w", i, err)
			}
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n"), nil
}
