package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/udesa-vision/i308-utils/internal/app"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <image>...",
	Short: "Lay out images in a grid and save the figure",
	Long: `Render one or more images into a single PNG figure.

Images are placed left to right, top to bottom. The grid defaults to a
single row. Grayscale images are drawn in gray; --cmap gray forces it for
color images. Use -o - to write the PNG to standard output.

Examples:
  i308 show lena.png
  i308 show a.png b.png c.png d.png --grid 2x2 --titles a,b,c,d -o grid.png
  i308 show lena.png --cmap gray --title "Lena" -o - > lena_gray.png`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

// Show command flags
var (
	showGrid     string
	showTitles   []string
	showCmap     string
	showTitle    string
	showSubtitle string
	showOutput   string
)

func init() {
	showCmd.Flags().StringVar(&showGrid, "grid", "", "Grid layout as RxC (default: one row)")
	showCmd.Flags().StringSliceVar(&showTitles, "titles", nil, "Comma-separated per-image titles")
	showCmd.Flags().StringVar(&showCmap, "cmap", "", "Colormap applied to every image (gray)")
	showCmd.Flags().StringVar(&showTitle, "title", "", "Figure title")
	showCmd.Flags().StringVar(&showSubtitle, "subtitle", "", "Figure subtitle")
	showCmd.Flags().StringVarP(&showOutput, FlagOutput, "o", app.DefaultFigureFile, "Output PNG file, - for stdout")
}

func runShow(cmd *cobra.Command, args []string) error {
	rows, cols, err := ParseGrid(showGrid)
	if err != nil {
		return err
	}

	out, err := app.Show(app.ShowOptions{
		Images:   args,
		Titles:   showTitles,
		Colormap: showCmap,
		Rows:     rows,
		Cols:     cols,
		Title:    showTitle,
		Subtitle: showSubtitle,
		Output:   showOutput,
		Stdout:   cmd.OutOrStdout(),
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Show failed: %v", err))
		return err
	}

	if out != "-" {
		printSuccess(fmt.Sprintf("Figure saved to %s", out))
	}
	return nil
}
