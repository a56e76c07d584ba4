package export

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// ZipWriter builds the bundle as an in-memory zip archive with the same
// relative layout as DirWriter and flushes it to a single file on Finalize.
type ZipWriter struct {
	dest string
	buf  bytes.Buffer
	zw   *zip.Writer
}

// NewZipWriter returns a writer producing <destRoot>/<name>.zip.
func NewZipWriter(destRoot, name string) *ZipWriter {
	w := &ZipWriter{dest: filepath.Join(destRoot, name+".zip")}
	w.zw = zip.NewWriter(&w.buf)
	return w
}

// AddFile adds one archive entry.
func (w *ZipWriter) AddFile(path string, data []byte) error {
	f, err := w.zw.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// AddText adds one text entry.
func (w *ZipWriter) AddText(path, text string) error {
	return w.AddFile(path, []byte(text))
}

// Finalize closes the archive and writes it to the destination file.
func (w *ZipWriter) Finalize() (string, error) {
	if err := w.zw.Close(); err != nil {
		return "", &WriteError{Path: w.dest, Err: err}
	}
	if err := os.WriteFile(w.dest, w.buf.Bytes(), 0o644); err != nil {
		return "", &WriteError{Path: w.dest, Err: err}
	}
	return w.dest, nil
}
