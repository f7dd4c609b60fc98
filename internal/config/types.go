package config

// Config represents the global i308 configuration.
type Config struct {
	// GitHub configuration for repository mirroring.
	GitHub GitHubConfig `json:"github" yaml:"github"`
	// Download configuration for the generic downloader.
	Download DownloadConfig `json:"download" yaml:"download"`
	// Output configuration for display and logging.
	Output OutputConfig `json:"output" yaml:"output"`
	// Metrics configuration for mirror metrics export.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
}

// GitHubConfig represents GitHub-specific settings.
type GitHubConfig struct {
	// Token is the GitHub personal access token. Environment variables take precedence.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
	// DefaultBranch is the branch mirrored when none is given.
	DefaultBranch string `json:"default_branch" yaml:"default_branch"`
	// APIURL is the GitHub API URL (for enterprise installations).
	APIURL string `json:"api_url" yaml:"api_url"`
	// Timeout is the request timeout in seconds (0 = no timeout).
	Timeout int `json:"timeout" yaml:"timeout"`
}

// DownloadConfig represents downloader settings.
type DownloadConfig struct {
	// ChunkSize is the streaming buffer size in bytes.
	ChunkSize int `json:"chunk_size" yaml:"chunk_size"`
	// Timeout is the request timeout in seconds (0 = no timeout).
	Timeout int `json:"timeout" yaml:"timeout"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// NoColor disables colored terminal output.
	NoColor bool `json:"no_color" yaml:"no_color"`
	// Quiet suppresses non-error output.
	Quiet bool `json:"quiet" yaml:"quiet"`
	// Debug enables debug logging.
	Debug bool `json:"debug" yaml:"debug"`
}

// MetricsConfig represents mirror metrics settings.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string `json:"namespace" yaml:"namespace"`
	// File is a Prometheus textfile written after each mirror run. Empty disables export.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}
