// Package zip bundles generated media files into a single downloadable
// archive.
package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Entry is one file to include in the archive.
type Entry struct {
	Filename string
	Data     []byte
}

// Archive writes every entry into a zip archive and returns its bytes.
// Entries without a filename are skipped.
func Archive(entries []Entry) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, entry := range entries {
		if entry.Filename == "" {
			continue
		}
		w, err := zw.Create(entry.Filename)
		if err != nil {
			return nil, fmt.Errorf("zip: create %s: %w", entry.Filename, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("zip: write %s: %w", entry.Filename, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close: %w", err)
	}
	return buf.Bytes(), nil
}
