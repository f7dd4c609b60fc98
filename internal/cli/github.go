package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/udesa-vision/i308-utils/internal/app"
)

// githubCmd represents the github command
var githubCmd = &cobra.Command{
	Use:   "github [owner/repo] [path]",
	Short: "Mirror a directory of a GitHub repository",
	Long: `Recursively copy a directory of a GitHub repository to a local directory.

Files that already exist locally are left untouched, so re-running the
command only fetches what is missing. A file that fails to download is
reported and skipped; a directory that cannot be listed aborts the run.

The repository may be given as owner/repo, owner/repo/path, or any GitHub
URL, including https://github.com/owner/repo/tree/<branch>/<path>. When it
is omitted you are prompted for it.

A token from GITHUB_TOKEN, GH_TOKEN, "gh auth token" or the config file is
used when available.

Examples:
  i308 github udesa-vision/i308-resources tp1
  i308 github udesa-vision/i308-resources tp1 -o ./resources
  i308 github https://github.com/udesa-vision/i308-resources/tree/2024/tp1
  i308 github udesa-vision/i308-resources -b develop --metrics-file mirror.prom`,
	Args: cobra.MaximumNArgs(2),
	RunE: runGitHub,
}

// GitHub command flags
var (
	githubBranch      string
	githubOutput      string
	githubMetricsFile string
)

func init() {
	githubCmd.Flags().StringVarP(&githubBranch, FlagBranch, "b", "", DescBranch)
	githubCmd.Flags().StringVarP(&githubOutput, FlagOutput, "o", "", DescOutput+" (default: current directory)")
	githubCmd.Flags().StringVar(&githubMetricsFile, FlagMetricsFile, "", DescMetricsFile)
}

func runGitHub(cmd *cobra.Command, args []string) error {
	var repository, path string
	switch len(args) {
	case 0:
		var err error
		repository, path, err = PromptForRepository()
		if err != nil {
			return fmt.Errorf("failed to read repository: %w", err)
		}
	case 1:
		repository = args[0]
	default:
		repository, path = args[0], args[1]
	}

	if githubBranch != "" {
		if err := ValidateGitRef(githubBranch); err != nil {
			return err
		}
	}

	printProgress(fmt.Sprintf("Mirroring %s", repository))
	if path != "" {
		printInfo(fmt.Sprintf("Path: %s", path))
	}
	if githubOutput != "" {
		printInfo(fmt.Sprintf("Output: %s", githubOutput))
	}

	result, err := app.MirrorGitHub(cmd.Context(), app.MirrorOptions{
		Repository:  repository,
		Path:        path,
		Branch:      githubBranch,
		OutputDir:   githubOutput,
		GitHubToken: getGitHubToken(),
		MetricsFile: githubMetricsFile,
		Config:      loadedConfig,
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Mirror failed: %v", err))
		if result != nil && result.FilesDownloaded > 0 {
			printInfo(fmt.Sprintf("  %d files were written before the failure", result.FilesDownloaded))
		}
		return err
	}

	printSuccess("Mirror complete")
	printHeader("Summary")
	printInfo(fmt.Sprintf("  Downloaded: %d files", result.FilesDownloaded))
	if result.FilesSkipped > 0 {
		printInfo(fmt.Sprintf("  Skipped: %d files (already exist)", result.FilesSkipped))
	}
	printInfo(fmt.Sprintf("  Directories: %d", result.Directories))

	if len(result.Errors) > 0 {
		printWarning(fmt.Sprintf("%d files could not be downloaded:", len(result.Errors)))
		for _, e := range result.Errors {
			printWarning(fmt.Sprintf("  - %v", e))
		}
	}
	return nil
}
