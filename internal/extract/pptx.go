package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// pptxSlideRe matches slide XML paths inside a .pptx zip and captures the
// slide number. Zip entry order is not presentation order (slide10 sorts
// before slide2 lexically), so slides are ordered by this number.
var pptxSlideRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// spBlock matches one shape element. Shapes do not nest; grouped shapes use
// a different tag.
var spBlock = regexp.MustCompile(`(?s)<p:sp(?:\s[^>]*)?>.*?</p:sp>`)

// txBody captures the text body of a shape, when it has one.
var txBody = regexp.MustCompile(`(?s)<p:txBody(?:\s[^>]*)?>(.*?)</p:txBody>`)

// apBlock matches one paragraph within a text body, self-closing or with a body.
var apBlock = regexp.MustCompile(`(?s)<a:p(?:\s[^>]*)?/>|<a:p(?:\s[^>]*)?>(.*?)</a:p>`)

// atTag matches <a:t>text</a:t> (and any attributes).
var atTag = regexp.MustCompile(`<a:t[^>]*>([^<]*)</a:t>`)

func (e *Extractor) extractPPTX(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return pptxText(content)
}

// pptxText flattens a presentation: a "Slide <n>" marker per slide (1-based,
// numeric slide order), then one line per shape that carries a text body.
// Shapes without a text body are skipped; an empty text body still yields an
// empty line.
func pptxText(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract PPTX: not a zip: %w", err)
	}

	type slideEntry struct {
		num  int
		file *zip.File
	}
	var slides []slideEntry
	for _, f := range zr.File {
		m := pptxSlideRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slideEntry{num: n, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var lines []string
	for i, s := range slides {
		lines = append(lines, fmt.Sprintf("Slide %d", i+1))
		slideXML, err := readZipEntry(s.file)
		if err != nil {
			return "", fmt.Errorf("extract PPTX: read %s: %w", s.file.Name, err)
		}
		for _, sp := range spBlock.FindAllString(string(slideXML), -1) {
			body := txBody.FindStringSubmatch(sp)
			if body == nil {
				continue
			}
			lines = append(lines, shapeText(body[1]))
		}
	}
	return strings.Join(lines, "\n"), nil
}

// shapeText rebuilds a shape's text: runs concatenated within a paragraph,
// paragraphs joined with newlines.
func shapeText(body string) string {
	var paras []string
	for _, p := range apBlock.FindAllStringSubmatch(body, -1) {
		var b strings.Builder
		for _, t := range atTag.FindAllStringSubmatch(p[1], -1) {
			b.WriteString(xmlUnescape(t[1]))
		}
		paras = append(paras, b.String())
	}
	return strings.Join(paras, "\n")
}
