package export

import "fmt"

// BundleWriter receives the files of one export bundle. Paths are relative,
// slash-separated (e.g. "images/Лето_320.jpg" or "index.html"). The two
// implementations must produce byte-identical payloads under identical
// relative paths; only the transport differs.
type BundleWriter interface {
	AddFile(path string, data []byte) error
	AddText(path, text string) error
	// Finalize flushes the bundle and returns the destination it landed at.
	Finalize() (string, error)
}

// WriteError reports a destination write failure. It aborts the whole export;
// already-written files are not cleaned up.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
