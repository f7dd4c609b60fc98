package resources

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type zipEntry struct {
	name    string
	content string
}

func buildZip(t *testing.T, entries []zipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("zip Create(%s) error = %v", e.name, err)
		}
		if _, err := w.Write([]byte(e.content)); err != nil {
			t.Fatalf("zip Write(%s) error = %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close() error = %v", err)
	}
	return buf.Bytes()
}

// readTree returns relative path -> content for every file under dir.
func readTree(t *testing.T, dir string) map[string]string {
	t.Helper()
	got := map[string]string{}
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		got[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	return got
}

var sampleEntries = []zipEntry{
	{name: "images/"},
	{name: "images/lena.png", content: "png"},
	{name: "README.md", content: "# readme"},
}

var sampleTree = map[string]string{
	"images/lena.png": "png",
	"README.md":       "# readme",
}

func TestUnzip_Sources(t *testing.T) {
	data := buildZip(t, sampleEntries)
	archivePath := filepath.Join(t.TempDir(), "sample.zip")
	if err := os.WriteFile(archivePath, data, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		src  func() interface{}
	}{
		{name: "file path", src: func() interface{} { return archivePath }},
		{name: "raw bytes", src: func() interface{} { return data }},
		{name: "bytes reader", src: func() interface{} { return bytes.NewReader(data) }},
		{name: "plain reader", src: func() interface{} { return io.MultiReader(bytes.NewReader(data)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := filepath.Join(t.TempDir(), "out", "nested")
			if err := Unzip(tt.src(), target); err != nil {
				t.Fatalf("Unzip() error = %v", err)
			}
			if diff := cmp.Diff(sampleTree, readTree(t, target)); diff != "" {
				t.Errorf("extracted tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnzip_DefaultsToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if err := Unzip(buildZip(t, sampleEntries), ""); err != nil {
		t.Fatalf("Unzip() error = %v", err)
	}
	if diff := cmp.Diff(sampleTree, readTree(t, dir)); diff != "" {
		t.Errorf("extracted tree mismatch (-want +got):\n%s", diff)
	}
}

func TestUnzip_RejectsEscapingEntries(t *testing.T) {
	parent := t.TempDir()
	target := filepath.Join(parent, "target")
	data := buildZip(t, []zipEntry{{name: "../evil.txt", content: "x"}})

	err := Unzip(data, target)
	var extractErr *ExtractError
	if !errors.As(err, &extractErr) {
		t.Fatalf("Unzip() error = %v, want *ExtractError", err)
	}
	if extractErr.Entry != "../evil.txt" {
		t.Errorf("ExtractError.Entry = %q, want %q", extractErr.Entry, "../evil.txt")
	}
	if _, err := os.Stat(filepath.Join(parent, "evil.txt")); !os.IsNotExist(err) {
		t.Errorf("evil.txt should not be written, Stat error = %v", err)
	}
}

func TestUnzip_Errors(t *testing.T) {
	target := t.TempDir()

	if err := Unzip(42, target); !errors.Is(err, ErrUnsupportedSource) {
		t.Errorf("Unzip(int) error = %v, want ErrUnsupportedSource", err)
	}

	err := Unzip([]byte("not a zip"), target)
	if err == nil || !strings.Contains(err.Error(), "invalid zip archive") {
		t.Errorf("Unzip(garbage) error = %v, want invalid zip archive", err)
	}

	if err := Unzip(filepath.Join(target, "missing.zip"), target); err == nil {
		t.Error("Unzip(missing path) expected error but got none")
	}
}
