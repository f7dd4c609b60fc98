package app

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/udesa-vision/i308-utils/internal/debug"
	"github.com/udesa-vision/i308-utils/internal/display"
	"github.com/udesa-vision/i308-utils/internal/fsutil"
)

// DefaultFigureFile is the PNG written by Show when no output is given.
const DefaultFigureFile = "figure.png"

// ShowOptions contains options for rendering images into a figure.
type ShowOptions struct {
	// Images are the image file paths, one per grid cell.
	Images []string
	// Titles are per-image titles matched by position. Missing entries are blank.
	Titles []string
	// Colormap applies to every image.
	Colormap string
	// Rows and Cols define the grid. Zero means one row.
	Rows, Cols int
	// Title and Subtitle label the whole figure.
	Title, Subtitle string
	// Output is the PNG path; "-" writes to Stdout. Empty means DefaultFigureFile.
	Output string
	// Stdout receives the PNG when Output is "-". Nil means os.Stdout.
	Stdout io.Writer
}

// Show decodes images, lays them out and writes the figure as PNG.
// It returns the path written, or "-" for standard output.
func Show(opts ShowOptions) (string, error) {
	if len(opts.Images) == 0 {
		return "", NewValidationError("at least one image is required", nil)
	}
	if len(opts.Titles) > len(opts.Images) {
		return "", NewValidationError(
			fmt.Sprintf("%d titles given for %d images", len(opts.Titles), len(opts.Images)), nil)
	}

	debug.DebugSection("[app] Show workflow start")
	debug.DebugValue("[app] Images", opts.Images)

	panels := make([]display.Panel, len(opts.Images))
	for i, p := range opts.Images {
		img, err := decodeImage(p)
		if err != nil {
			return "", NewDisplayError("failed to load image "+p, err)
		}
		panels[i] = display.Panel{Image: img, Colormap: opts.Colormap}
		if i < len(opts.Titles) {
			panels[i].Title = opts.Titles[i]
		}
	}

	fig, err := display.ShowImages(panels, display.Options{
		Rows:     opts.Rows,
		Cols:     opts.Cols,
		Title:    opts.Title,
		Subtitle: opts.Subtitle,
	})
	if err != nil {
		return "", NewDisplayError("failed to render figure", err)
	}

	output := opts.Output
	if output == "" {
		output = DefaultFigureFile
	}
	if output == "-" {
		w := opts.Stdout
		if w == nil {
			w = os.Stdout
		}
		if err := fig.WritePNG(w); err != nil {
			return "", NewDisplayError("failed to write figure", err)
		}
		return output, nil
	}

	output, err = fsutil.ExpandHome(output)
	if err != nil {
		return "", NewValidationError("invalid output path", err)
	}
	var buf bytes.Buffer
	if err := fig.WritePNG(&buf); err != nil {
		return "", NewDisplayError("failed to encode figure", err)
	}
	if _, err := fsutil.NewFileWriter(0).WriteFile(output, &buf, 0644); err != nil {
		return "", NewDisplayError("failed to write figure", err)
	}
	debug.Debug("[app] Figure written to %s", output)
	return output, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	debug.Debug("[app] Decoded %s image %s (%dx%d)", format, path, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}
