package app

import (
	"github.com/udesa-vision/i308-utils/internal/config"
	"github.com/udesa-vision/i308-utils/internal/debug"
	"github.com/udesa-vision/i308-utils/internal/fsutil"
)

// ConfigInitOptions contains options for configuration initialization.
type ConfigInitOptions struct {
	// Path is the configuration file to create. Empty means config.DefaultConfigPath().
	Path string
	// Force overwrites an existing file.
	Force bool
}

// InitConfig writes a configuration file populated with defaults and
// returns its path.
func InitConfig(opts ConfigInitOptions) (string, error) {
	path := opts.Path
	if path == "" {
		path = config.DefaultConfigPath()
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return "", NewValidationError("invalid configuration path", err)
	}

	debug.DebugSection("[app] Config init workflow start")
	debug.DebugValue("[app] Path", path)
	debug.DebugValue("[app] Force", opts.Force)

	if fsutil.IsDir(path) {
		return "", NewConfigInitError(path+" exists but is a directory", nil)
	}
	if fsutil.Exists(path) && !opts.Force {
		return "", NewConfigInitError(
			"configuration already exists at "+path+" (use --force to overwrite)", nil)
	}

	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return "", NewConfigInitError("failed to save configuration", err)
	}
	debug.Debug("[app] Config init workflow completed successfully")
	return path, nil
}
