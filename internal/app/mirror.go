package app

import (
	"context"
	"path"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/udesa-vision/i308-utils/internal/config"
	"github.com/udesa-vision/i308-utils/internal/debug"
	"github.com/udesa-vision/i308-utils/internal/fsutil"
	"github.com/udesa-vision/i308-utils/internal/mirror"
)

// MirrorOptions contains options for mirroring a GitHub repository path.
type MirrorOptions struct {
	// Repository is owner/repo or any GitHub URL form mirror.ParseLocation accepts.
	Repository string
	// Path is joined onto any path carried by Repository.
	Path string
	// Branch overrides the branch named by Repository and the configured default.
	Branch string
	// OutputDir is the local destination (working directory when empty).
	OutputDir string
	// GitHubToken is the GitHub personal access token (optional).
	GitHubToken string
	// MetricsFile is a Prometheus textfile written after the run (optional).
	// Falls back to Config.Metrics.File.
	MetricsFile string
	// Config supplies API URL, timeout, default branch and metrics namespace.
	// Nil means config.DefaultConfig().
	Config *config.Config
}

// MirrorGitHub mirrors a repository path into a local directory.
// A failed file download is reported in the result; a failed directory
// listing aborts the run and is returned as an AppError wrapping
// *mirror.RemoteListingError. The result is returned in both cases.
func MirrorGitHub(ctx context.Context, opts MirrorOptions) (*mirror.Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	loc, err := mirror.ParseLocation(opts.Repository)
	if err != nil {
		return nil, NewValidationError("invalid repository", err)
	}
	if opts.Path != "" {
		loc.Path = path.Join(loc.Path, opts.Path)
	}
	switch {
	case opts.Branch != "":
		loc.Branch = opts.Branch
	case loc.Branch == "":
		loc.Branch = cfg.GitHub.DefaultBranch
	}

	outputDir, err := fsutil.ExpandHome(opts.OutputDir)
	if err != nil {
		return nil, NewValidationError("invalid output directory", err)
	}

	token := opts.GitHubToken
	if token == "" {
		token = cfg.GitHub.Token
	}

	metricsFile := opts.MetricsFile
	if metricsFile == "" {
		metricsFile = cfg.Metrics.File
	}
	var registry *prometheus.Registry
	if metricsFile != "" {
		registry = prometheus.NewRegistry()
		mirror.EnableMetrics(cfg.Metrics.Namespace, registry)
	}

	debug.DebugSection("[app] Mirror workflow start")
	debug.DebugValue("[app] Location", loc)
	debug.DebugValue("[app] OutputDir", outputDir)
	debug.DebugValue("[app] Token set", token != "")

	m, err := mirror.NewGitHubMirror(mirror.ClientOptions{
		Token:   token,
		APIURL:  cfg.GitHub.APIURL,
		Timeout: cfg.GitHub.TimeoutDuration(),
	})
	if err != nil {
		return nil, NewMirrorError("failed to create GitHub client", err)
	}

	result, mirrorErr := m.Mirror(ctx, loc, outputDir)

	if registry != nil {
		metricsFile, err = fsutil.ExpandHome(metricsFile)
		if err == nil {
			err = prometheus.WriteToTextfile(metricsFile, registry)
		}
		if err != nil {
			debug.Warn("failed to write metrics to %s: %v", metricsFile, err)
		} else {
			debug.Debug("[app] Metrics written to %s", metricsFile)
		}
	}

	if mirrorErr != nil {
		return result, NewMirrorError("failed to mirror "+loc.String(), mirrorErr)
	}
	return result, nil
}
