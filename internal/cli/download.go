package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/udesa-vision/i308-utils/internal/app"
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <url> [save-name]",
	Short: "Download a file",
	Long: `Download a URL to a local file.

save-name is treated as a directory when it is omitted, names an existing
directory, or has no extension; the file name is then taken from the URL or
the Content-Disposition header. Existing files are kept unless
--re-download is given.

Examples:
  i308 download https://example.com/data/lena.png
  i308 download https://example.com/data/lena.png ~/datasets
  i308 download https://example.com/get?id=3 images/sample.jpg --re-download`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDownload,
}

var downloadReDownload bool

func init() {
	downloadCmd.Flags().BoolVar(&downloadReDownload, FlagReDownload, false, DescReDownload)
}

func runDownload(cmd *cobra.Command, args []string) error {
	saveName := ""
	if len(args) > 1 {
		saveName = args[1]
	}

	printProgress(fmt.Sprintf("Downloading %s", args[0]))
	result, err := app.Download(cmd.Context(), app.DownloadOptions{
		URL:        args[0],
		SaveName:   saveName,
		ReDownload: downloadReDownload,
		Config:     loadedConfig,
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Download failed: %v", err))
		return err
	}

	if result.Skipped {
		printInfo(fmt.Sprintf("File already exists, skipping download: %s", result.Path))
		return nil
	}
	printSuccess(fmt.Sprintf("Saved %s (%s)", result.Path, formatBytes(result.Bytes)))
	return nil
}
