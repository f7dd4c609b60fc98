package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/udesa-vision/i308-utils/internal/mirror"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagOutput      = "output"
	FlagConfig      = "config"
	FlagBranch      = "branch"
	FlagForce       = "force"
	FlagMetricsFile = "metrics-file"
	FlagReDownload  = "re-download"
	FlagNoColor     = "no-color"
	FlagQuiet       = "quiet"
	FlagDebug       = "debug"

	// Flag descriptions
	DescOutput      = "Output directory"
	DescConfig      = "Path to config file (default ~/.config/i308/config.yaml)"
	DescBranch      = "Git branch to mirror (default from config, usually main)"
	DescForce       = "Force overwrite"
	DescMetricsFile = "Write Prometheus metrics for the run to this file"
	DescReDownload  = "Download even if the target file exists"
	DescNoColor     = "Disable colored output"
	DescQuiet       = "Suppress output"
	DescDebug       = "Enable debug logging"
)

// Validation patterns
var (
	// Git branch names, including slashes (feature/x) and dots (v1.2)
	refBranchPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-/\.]+$`)
	// RxC grid layout
	gridPattern = regexp.MustCompile(`^(\d+)[xX](\d+)$`)
)

// ValidateGitRef validates a branch name.
func ValidateGitRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("git reference cannot be empty")
	}
	if !refBranchPattern.MatchString(ref) || strings.Contains(ref, "..") {
		return fmt.Errorf("invalid git reference: %s", ref)
	}
	return nil
}

// ValidateRepository checks that ref names a GitHub repository.
func ValidateRepository(ref string) error {
	_, err := mirror.ParseLocation(ref)
	return err
}

// ParseGrid parses an RxC grid such as "2x3". An empty string means
// the default layout and returns 0, 0.
func ParseGrid(s string) (rows, cols int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	m := gridPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid grid %q, expected RxC (for example 2x3)", s)
	}
	rows, _ = strconv.Atoi(m[1])
	cols, _ = strconv.Atoi(m[2])
	if rows == 0 || cols == 0 {
		return 0, 0, fmt.Errorf("invalid grid %q, rows and columns must be positive", s)
	}
	return rows, cols, nil
}

// getGitHubToken retrieves a GitHub token.
// Priority: GITHUB_TOKEN env > GH_TOKEN env > gh auth token command > config file
func getGitHubToken() string {
	if token := mirror.TokenFromEnv(); token != "" {
		return token
	}
	return loadedConfig.GitHub.Token
}
