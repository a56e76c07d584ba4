package export

import (
	"os"
	"path/filepath"
)

// DirWriter writes bundle files directly into a folder under the destination
// root. The folder is created (or reused) up front so a write-permission
// problem surfaces before any image work happens.
type DirWriter struct {
	dir string
}

// NewDirWriter creates the album folder under destRoot and returns a writer
// into it.
func NewDirWriter(destRoot, folderName string) (*DirWriter, error) {
	dir := filepath.Join(destRoot, folderName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &WriteError{Path: dir, Err: err}
	}
	return &DirWriter{dir: dir}, nil
}

// AddFile writes one file, creating intermediate directories as needed.
func (w *DirWriter) AddFile(path string, data []byte) error {
	dst := filepath.Join(w.dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return &WriteError{Path: dst, Err: err}
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return &WriteError{Path: dst, Err: err}
	}
	return nil
}

// AddText writes one text file.
func (w *DirWriter) AddText(path, text string) error {
	return w.AddFile(path, []byte(text))
}

// Finalize returns the folder the bundle was written into.
func (w *DirWriter) Finalize() (string, error) {
	return w.dir, nil
}
