// Package resources downloads and unpacks tutorial resources.
package resources

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/udesa-vision/i308-utils/internal/debug"
	"github.com/udesa-vision/i308-utils/internal/fsutil"
)

// DefaultFilename is used when neither the URL nor the response names the file.
const DefaultFilename = "downloaded"

// GuessFilename infers a file name from the URL path or, when the path has
// no file component, from the Content-Disposition header. header may be nil.
func GuessFilename(rawURL string, header http.Header) string {
	if name := filenameFromURL(rawURL); name != "" {
		return name
	}
	if header != nil {
		if name := filenameFromDisposition(header.Get("Content-Disposition")); name != "" {
			return name
		}
	}
	return DefaultFilename
}

func filenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" || strings.HasSuffix(u.Path, "/") {
		return ""
	}
	return cleanFilename(path.Base(u.Path))
}

func filenameFromDisposition(cd string) string {
	if cd == "" {
		return ""
	}
	if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
		return cleanFilename(params["filename"])
	}
	// Fall back to the raw value after the last filename= for headers
	// mime rejects (unquoted spaces and the like).
	idx := strings.LastIndex(cd, "filename=")
	if idx < 0 {
		return ""
	}
	value := cd[idx+len("filename="):]
	if i := strings.IndexByte(value, ';'); i >= 0 {
		value = value[:i]
	}
	return cleanFilename(strings.Trim(value, `"' `))
}

// cleanFilename keeps only the last path component.
func cleanFilename(name string) string {
	name = filepath.Base(filepath.FromSlash(name))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

// DownloadResult describes a Download call.
type DownloadResult struct {
	// Path is the local file path.
	Path string
	// Skipped is true when the file already existed and was not downloaded.
	Skipped bool
	// Bytes is the number of bytes written.
	Bytes int64
}

// Downloader fetches URLs to local files.
type Downloader struct {
	client *http.Client
	writer fsutil.Writer
}

// NewDownloader creates a Downloader. A nil client selects http.DefaultClient;
// chunkSize is the copy buffer size (fsutil.DefaultChunkSize when <= 0).
func NewDownloader(client *http.Client, chunkSize int) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{
		client: client,
		writer: fsutil.NewFileWriter(chunkSize),
	}
}

// Download saves rawURL to saveName.
//
// saveName is treated as a directory when it is empty, an existing directory,
// or has no "." in its last element; the file name is then guessed with
// GuessFilename, issuing a HEAD request when the URL alone does not name the
// file. Unless reDownload is set, an existing target is left untouched.
// Intermediate directories are created as needed.
func (d *Downloader) Download(ctx context.Context, rawURL, saveName string, reDownload bool) (*DownloadResult, error) {
	saveName, err := fsutil.ExpandHome(saveName)
	if err != nil {
		return nil, newDownloadError(rawURL, 0, "invalid save path", err)
	}

	if isDirTarget(saveName) {
		filename := filenameFromURL(rawURL)
		if filename == "" {
			header, err := d.head(ctx, rawURL)
			if err != nil {
				return nil, err
			}
			filename = GuessFilename(rawURL, header)
		}
		saveName = filepath.Join(saveName, filename)
	}
	debug.DebugValue("[resources] Download target", saveName)

	if !reDownload && d.writer.Exists(saveName) {
		debug.Debug("[resources] File already exists, skipping download: %s", saveName)
		return &DownloadResult{Path: saveName, Skipped: true}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, newDownloadError(rawURL, 0, "invalid request", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, newDownloadError(rawURL, 0, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newDownloadError(rawURL, resp.StatusCode, "unexpected response", nil)
	}

	n, err := d.writer.WriteFile(saveName, resp.Body, 0644)
	if err != nil {
		return nil, newDownloadError(rawURL, resp.StatusCode, "failed to save download", err)
	}

	debug.Debug("[resources] Downloaded: %s (%d bytes)", saveName, n)
	return &DownloadResult{Path: saveName, Bytes: n}, nil
}

func (d *Downloader) head(ctx context.Context, rawURL string) (http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return nil, newDownloadError(rawURL, 0, "invalid request", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, newDownloadError(rawURL, 0, "HEAD request failed", err)
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newDownloadError(rawURL, resp.StatusCode, "unexpected HEAD response", nil)
	}
	return resp.Header, nil
}

func isDirTarget(saveName string) bool {
	if saveName == "" || fsutil.IsDir(saveName) {
		return true
	}
	return !strings.Contains(filepath.Base(saveName), ".")
}
