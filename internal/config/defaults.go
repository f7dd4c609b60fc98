package config

import (
	"os"
	"path/filepath"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			Token:         "",
			DefaultBranch: "main",
			APIURL:        "https://api.github.com/",
			Timeout:       0,
		},
		Download: DownloadConfig{
			ChunkSize: 1024,
			Timeout:   0,
		},
		Metrics: MetricsConfig{
			Namespace: "i308",
		},
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "i308", "config.yaml")
}
