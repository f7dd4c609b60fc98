package resources

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/udesa-vision/i308-utils/internal/debug"
	"github.com/udesa-vision/i308-utils/internal/fsutil"
)

// sizedReaderAt is satisfied by *bytes.Reader, *strings.Reader and
// *io.SectionReader.
type sizedReaderAt interface {
	io.ReaderAt
	Size() int64
}

// Unzip extracts a zip archive into targetDir (the working directory when
// empty), creating targetDir if needed.
//
// src may be a file path (string), raw archive bytes ([]byte), or an
// io.Reader. Readers that also implement io.ReaderAt and Size are read in
// place; other readers are buffered in memory. Entries that would land
// outside targetDir are rejected.
func Unzip(src interface{}, targetDir string) error {
	if targetDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		targetDir = cwd
	}

	w := fsutil.NewFileWriter(0)
	if err := w.CreateDir(targetDir); err != nil {
		return err
	}

	switch s := src.(type) {
	case string:
		zr, err := zip.OpenReader(s)
		if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
			return newExtractError("", "failed to open archive "+s, err)
		}
		defer zr.Close()
		return extract(&zr.Reader, targetDir, w)
	case []byte:
		return extractFrom(bytes.NewReader(s), targetDir, w)
	case sizedReaderAt:
		return extractFrom(s, targetDir, w)
	case io.Reader:
		data, err := io.ReadAll(s)
		if err != nil {
			return newExtractError("", "failed to read archive", err)
		}
		return extractFrom(bytes.NewReader(data), targetDir, w)
	default:
		return fmt.Errorf("%w: got %T", ErrUnsupportedSource, src)
	}
}

func extractFrom(r sizedReaderAt, targetDir string, w *fsutil.FileWriter) error {
	// ErrInsecurePath still returns a usable reader; extract rejects those entries itself.
	zr, err := zip.NewReader(r, r.Size())
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return newExtractError("", "invalid zip archive", err)
	}
	return extract(zr, targetDir, w)
}

func extract(zr *zip.Reader, targetDir string, w *fsutil.FileWriter) error {
	for _, f := range zr.File {
		target := filepath.Join(targetDir, filepath.FromSlash(f.Name))
		if !fsutil.WithinDir(targetDir, target) {
			return newExtractError(f.Name, "entry escapes target directory", nil)
		}

		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			if err := w.CreateDir(target); err != nil {
				return newExtractError(f.Name, "failed to create directory", err)
			}
			continue
		}

		if err := extractFile(f, target, w); err != nil {
			return err
		}
	}

	debug.Debug("[resources] Extraction done to: %s (%d entries)", targetDir, len(zr.File))
	return nil
}

func extractFile(f *zip.File, target string, w *fsutil.FileWriter) error {
	rc, err := f.Open()
	if err != nil {
		return newExtractError(f.Name, "failed to open entry", err)
	}
	defer rc.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	if _, err := w.WriteFile(target, rc, mode|0600); err != nil {
		return newExtractError(f.Name, "failed to write entry", err)
	}
	return nil
}
