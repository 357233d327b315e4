package extract

import (
	"fmt"
	"strings"
)

// extractXLS reads a legacy Excel workbook through the automation bridge,
// walking the used cell rectangle of each sheet row-major with 1-based
// indices. Flattening follows the same marker and tab-join rules as the
// modern spreadsheet format. The application is quit on every path.
func (e *Extractor) extractXLS(path string) (string, error) {
	excel, err := e.bridge.Excel()
	if err != nil {
		return "", fmt.Errorf("start Excel: %w", err)
	}
	defer excel.Quit()

	wb, err := excel.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer wb.Close()

	sheets, err := wb.Sheets()
	if err != nil {
		return "", fmt.Errorf("list sheets: %w", err)
	}
	var lines []string
	for _, sheet := range sheets {
		lines = append(lines, "Sheet: "+sheet.Name())
		rows, cols, err := sheet.UsedRange()
		if err != nil {
			return "", fmt.Errorf("used range of sheet %q: %w", sheet.Name(), err)
		}
		for r := 1; r <= rows; r++ {
			var cells []string
			for c := 1; c <= cols; c++ {
				value, ok, err := sheet.Cell(r, c)
				if err != nil {
					return "", fmt.Errorf("cell (%d,%d) of sheet %q: %w", r, c, sheet.Name(), err)
				}
				if ok {
					cells = append(cells, value)
				}
			}
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, "\t"))
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}
