// Package mirror copies the contents of a remote GitHub repository, or a
// subdirectory of it, into a local directory tree.
//
// Mirroring is idempotent: files that already exist locally are never
// overwritten, so an interrupted run can simply be repeated. A failed
// directory listing aborts the run; a failed file download is logged,
// recorded in the Result, and the traversal continues.
package mirror

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/udesa-vision/i308-utils/internal/debug"
	"github.com/udesa-vision/i308-utils/internal/fsutil"
)

// Mirror downloads repository trees depth-first, one request at a time.
type Mirror struct {
	lister Lister
	client *http.Client
	writer fsutil.Writer
}

// New creates a Mirror. A nil httpClient selects http.DefaultClient and a nil
// writer selects an fsutil.FileWriter with the default chunk size.
func New(lister Lister, httpClient *http.Client, writer fsutil.Writer) *Mirror {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if writer == nil {
		writer = fsutil.NewFileWriter(0)
	}
	return &Mirror{
		lister: lister,
		client: httpClient,
		writer: writer,
	}
}

// Mirror copies every file under loc into outputDir, recursing into
// subdirectories. Branch defaults to DefaultBranch and outputDir to the
// working directory.
//
// The returned Result is non-nil even when an error is returned and reflects
// the files written before the failing listing.
func (m *Mirror) Mirror(ctx context.Context, loc Location, outputDir string) (*Result, error) {
	if loc.Branch == "" {
		loc.Branch = DefaultBranch
	}
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return &Result{}, fmt.Errorf("failed to get working directory: %w", err)
		}
		outputDir = cwd
	}

	debug.DebugSection("[mirror] Mirror start")
	debug.DebugValue("[mirror] Location", loc)
	debug.DebugValue("[mirror] OutputDir", outputDir)

	start := time.Now()
	result := &Result{}
	err := m.mirrorDir(ctx, loc, outputDir, result)
	recordMirror(loc.Repository, err == nil, start)

	debug.DebugJSON("[mirror] Result", result)
	return result, err
}

func (m *Mirror) mirrorDir(ctx context.Context, loc Location, outputDir string, result *Result) error {
	entries, err := m.lister.List(ctx, loc)
	recordListing(loc.Repository, err == nil)
	if err != nil {
		return err
	}

	if err := m.writer.CreateDir(outputDir); err != nil {
		return err
	}
	result.Directories++

	for _, entry := range entries {
		if entry.Path == "" {
			entry.Path = path.Join(loc.Path, entry.Name)
		}
		if !validName(entry.Name) {
			m.fail(loc, entry, NewFileFetchError(entry, 0, errInvalidName), result)
			continue
		}

		switch entry.Kind {
		case KindFile:
			m.mirrorFile(ctx, loc, entry, filepath.Join(outputDir, entry.Name), result)
		case KindDir:
			child := loc
			child.Path = path.Join(loc.Path, entry.Name)
			if err := m.mirrorDir(ctx, child, filepath.Join(outputDir, entry.Name), result); err != nil {
				return err
			}
		default:
			debug.Debug("[mirror] Ignoring %s (not a file or directory)", entry.Path)
		}
	}
	return nil
}

func (m *Mirror) mirrorFile(ctx context.Context, loc Location, entry Entry, localPath string, result *Result) {
	if m.writer.Exists(localPath) {
		debug.Debug("[mirror] Skipping (already exists): %s", localPath)
		result.FilesSkipped++
		recordFile(loc.Repository, outcomeSkipped)
		return
	}

	if err := m.download(ctx, entry, localPath); err != nil {
		m.fail(loc, entry, err, result)
		return
	}

	debug.Debug("[mirror] Downloaded: %s", localPath)
	result.FilesDownloaded++
	result.Files = append(result.Files, localPath)
	recordFile(loc.Repository, outcomeDownloaded)
}

func (m *Mirror) fail(loc Location, entry Entry, err error, result *Result) {
	debug.Warn("%v", err)
	result.FilesFailed++
	result.Errors = append(result.Errors, err)
	recordFile(loc.Repository, outcomeFailed)
}

func (m *Mirror) download(ctx context.Context, entry Entry, localPath string) error {
	if entry.DownloadURL == "" {
		return NewFileFetchError(entry, 0, errNoDownloadURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, entry.DownloadURL, nil)
	if err != nil {
		return NewFileFetchError(entry, 0, err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return NewFileFetchError(entry, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewFileFetchError(entry, resp.StatusCode, nil)
	}

	if _, err := m.writer.WriteFile(localPath, resp.Body, 0644); err != nil {
		return NewFileFetchError(entry, resp.StatusCode, err)
	}
	return nil
}

// validName rejects names that would place a file outside its directory.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`)
}
