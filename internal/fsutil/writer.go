// Package fsutil writes downloaded content to the local filesystem.
package fsutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/udesa-vision/i308-utils/internal/debug"
)

// DefaultChunkSize is the copy buffer size used when streaming content to disk.
const DefaultChunkSize = 1024

// Writer writes files to the filesystem.
type Writer interface {
	// WriteFile streams r into path and returns the number of bytes written.
	WriteFile(path string, r io.Reader, mode os.FileMode) (int64, error)

	// CreateDir creates a directory and any necessary parent directories.
	CreateDir(path string) error

	// Exists checks if a file or directory exists at the given path.
	Exists(path string) bool
}

// FileWriter implements Writer for filesystem operations.
type FileWriter struct {
	chunkSize int
}

// NewFileWriter creates a FileWriter that copies in chunks of chunkSize bytes.
// A non-positive chunkSize selects DefaultChunkSize.
func NewFileWriter(chunkSize int) *FileWriter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &FileWriter{chunkSize: chunkSize}
}

// WriteFile streams r into path.
// Creates parent directories if they don't exist. Content goes to a temporary
// file in the same directory which is renamed over path only once fully
// written, so path never holds a partial file.
func (w *FileWriter) WriteFile(path string, r io.Reader, mode os.FileMode) (int64, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := w.CreateDir(dir); err != nil {
			return 0, err
		}
	}

	if mode == 0 {
		mode = 0644
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, newWriteError("failed to create temporary file", path, err)
	}
	tempFile := f.Name()
	debug.Debug("[fsutil] Streaming %s via %s", path, tempFile)

	n, err := io.CopyBuffer(f, r, make([]byte, w.chunkSize))
	closeErr := f.Close()

	if err != nil {
		_ = os.Remove(tempFile)
		return n, newWriteError("failed to write file content", path, err)
	}
	if closeErr != nil {
		_ = os.Remove(tempFile)
		return n, newWriteError("failed to close file", path, closeErr)
	}

	if err := os.Chmod(tempFile, mode); err != nil {
		_ = os.Remove(tempFile)
		return n, newWriteError("failed to set file mode", path, err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return n, newWriteError("failed to rename temporary file", path, err)
	}

	debug.Debug("[fsutil] Wrote %s (%d bytes)", path, n)
	return n, nil
}

// CreateDir creates a directory and any necessary parent directories.
// Uses 0755 permissions for created directories.
func (w *FileWriter) CreateDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return newWriteError("failed to create directory", path, err)
	}
	return nil
}

// Exists checks if a file or directory exists at the given path.
func (w *FileWriter) Exists(path string) bool {
	return Exists(path)
}

// Exists reports whether anything occupies path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir reports whether path is an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
