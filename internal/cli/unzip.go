package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/udesa-vision/i308-utils/internal/app"
)

// unzipCmd represents the unzip command
var unzipCmd = &cobra.Command{
	Use:   "unzip <archive> [target-dir]",
	Short: "Extract a zip archive",
	Long: `Extract a zip archive into target-dir (default: current directory).

Entries that would be written outside target-dir are rejected.

Examples:
  i308 unzip images.zip
  i308 unzip images.zip ./data`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runUnzip,
}

func runUnzip(cmd *cobra.Command, args []string) error {
	targetDir := ""
	if len(args) > 1 {
		targetDir = args[1]
	}

	if err := app.Unzip(app.UnzipOptions{Archive: args[0], TargetDir: targetDir}); err != nil {
		printErrorMsg(fmt.Sprintf("Extraction failed: %v", err))
		return err
	}

	if targetDir == "" {
		targetDir = "."
	}
	printSuccess(fmt.Sprintf("Extracted %s to %s", args[0], targetDir))
	return nil
}
