package config

import (
	"bytes"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udesa-vision/i308-utils/internal/debug"
	"github.com/udesa-vision/i308-utils/internal/fsutil"
)

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
	LoadOrDefault(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements the Loader interface for file-based configuration loading.
// The format is chosen by extension: .json, or .yaml / .yml.
type FileLoader struct{}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from the specified file path.
func (l *FileLoader) Load(path string) (*Config, error) {
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, NewConfigError(ConfigInvalid, path, "invalid configuration path", err)
	}

	unmarshal, err := unmarshalerFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigError(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigError(ConfigInvalid, path, "failed to read configuration file", err)
	}

	var cfg Config
	if err := unmarshal(data, &cfg); err != nil {
		return nil, NewConfigError(ConfigInvalid, path, "invalid syntax", err)
	}

	mergeConfig(&cfg, DefaultConfig())
	if err := l.Validate(&cfg); err != nil {
		if cfgErr, ok := err.(*ConfigError); ok {
			cfgErr.File = path
		}
		return nil, err
	}

	debug.Debug("[config] Loaded configuration from %s", path)
	return &cfg, nil
}

// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := l.Load(path)
	if err != nil {
		if cfgErr, ok := err.(*ConfigError); ok && cfgErr.Type == ConfigNotFound {
			debug.Debug("[config] %s not found, using defaults", path)
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	if config.GitHub.Timeout < 0 {
		return NewFieldError("", "github.timeout", "timeout cannot be negative")
	}
	if config.Download.Timeout < 0 {
		return NewFieldError("", "download.timeout", "timeout cannot be negative")
	}
	if config.Download.ChunkSize < 0 {
		return NewFieldError("", "download.chunk_size", "chunk size cannot be negative")
	}
	if u, err := url.Parse(config.GitHub.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		return NewFieldError("", "github.api_url", "API URL must be an absolute URL")
	}
	return nil
}

func unmarshalerFor(path string) (func([]byte, interface{}) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal, nil
	case ".yaml", ".yml":
		return yaml.Unmarshal, nil
	default:
		return nil, NewConfigError(ConfigUnsupportedFormat, path,
			"unsupported configuration format (use .json, .yaml or .yml)", nil)
	}
}

// mergeConfig merges missing fields from defaults into cfg.
func mergeConfig(cfg, defaults *Config) {
	// GitHub
	if cfg.GitHub.DefaultBranch == "" {
		cfg.GitHub.DefaultBranch = defaults.GitHub.DefaultBranch
	}
	if cfg.GitHub.APIURL == "" {
		cfg.GitHub.APIURL = defaults.GitHub.APIURL
	}

	// Download
	if cfg.Download.ChunkSize == 0 {
		cfg.Download.ChunkSize = defaults.Download.ChunkSize
	}

	// Metrics
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = defaults.Metrics.Namespace
	}
}

// TimeoutDuration converts the configured seconds to a duration.
func (c GitHubConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// TimeoutDuration converts the configured seconds to a duration.
func (c DownloadConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Save writes cfg to path in the format implied by its extension.
// The file is created with 0600 permissions since it may hold a token.
func Save(path string, cfg *Config) error {
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return NewConfigError(ConfigInvalid, path, "invalid configuration path", err)
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		return NewConfigError(ConfigUnsupportedFormat, path,
			"unsupported configuration format (use .json, .yaml or .yml)", nil)
	}
	if err != nil {
		return NewConfigError(ConfigInvalid, path, "failed to encode configuration", err)
	}

	if _, err := fsutil.NewFileWriter(0).WriteFile(path, bytes.NewReader(data), 0600); err != nil {
		return NewConfigError(ConfigInvalid, path, "failed to write configuration file", err)
	}
	debug.Debug("[config] Saved configuration to %s", path)
	return nil
}
