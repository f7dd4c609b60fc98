package app

import (
	"context"
	"net/http"

	"github.com/udesa-vision/i308-utils/internal/config"
	"github.com/udesa-vision/i308-utils/internal/debug"
	"github.com/udesa-vision/i308-utils/internal/resources"
)

// DownloadOptions contains options for downloading a resource.
type DownloadOptions struct {
	// URL is the resource to fetch.
	URL string
	// SaveName is the target file or directory (working directory when empty).
	SaveName string
	// ReDownload replaces an existing target instead of skipping it.
	ReDownload bool
	// Config supplies chunk size and timeout. Nil means config.DefaultConfig().
	Config *config.Config
}

// Download fetches a resource to disk.
func Download(ctx context.Context, opts DownloadOptions) (*resources.DownloadResult, error) {
	if opts.URL == "" {
		return nil, NewValidationError("URL cannot be empty", nil)
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	debug.DebugSection("[app] Download workflow start")
	debug.DebugValue("[app] URL", opts.URL)
	debug.DebugValue("[app] SaveName", opts.SaveName)

	client := &http.Client{Timeout: cfg.Download.TimeoutDuration()}
	d := resources.NewDownloader(client, cfg.Download.ChunkSize)

	result, err := d.Download(ctx, opts.URL, opts.SaveName, opts.ReDownload)
	if err != nil {
		return nil, NewDownloadError("failed to download "+opts.URL, err)
	}
	return result, nil
}

// UnzipOptions contains options for extracting an archive.
type UnzipOptions struct {
	// Archive is the zip file path.
	Archive string
	// TargetDir is the extraction directory (working directory when empty).
	TargetDir string
}

// Unzip extracts an archive from disk.
func Unzip(opts UnzipOptions) error {
	if opts.Archive == "" {
		return NewValidationError("archive path cannot be empty", nil)
	}

	debug.DebugSection("[app] Unzip workflow start")
	debug.DebugValue("[app] Archive", opts.Archive)
	debug.DebugValue("[app] TargetDir", opts.TargetDir)

	if err := resources.Unzip(opts.Archive, opts.TargetDir); err != nil {
		return NewExtractError("failed to extract "+opts.Archive, err)
	}
	return nil
}
