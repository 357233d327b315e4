package extract

import (
	"archive/zip"
	"bytes"
	"strings"
)

// xmlEscapes undoes the predefined XML entities in extracted text nodes.
var xmlEscapes = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

func xmlUnescape(s string) string { return xmlEscapes.Replace(s) }

// readZipEntry reads one file of an OOXML package into memory.
func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// findZipEntry returns the named file of an OOXML package, or nil.
func findZipEntry(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}
