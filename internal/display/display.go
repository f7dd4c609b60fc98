// Package display lays out one or more images in a grid and renders the
// result as a PNG figure, with optional per-image titles and a figure title
// and subtitle.
package display

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Colormaps understood by Panel.Colormap.
const (
	// ColormapNone draws the image with its own colors.
	ColormapNone = ""
	// ColormapGray draws the image as grayscale.
	ColormapGray = "gray"
)

const (
	padding    = 8
	textHeight = 16
)

var (
	errNoImages = errors.New("no images to display")
	errNoOutput = errors.New("show requested but no output writer set")
)

// Panel is one cell of a figure.
type Panel struct {
	Image image.Image
	// Title is drawn above the image when non-empty.
	Title string
	// Colormap overrides how the image is drawn. Grayscale images
	// (image.Gray, image.Gray16) default to ColormapGray.
	Colormap string
}

// Options controls figure layout and output.
type Options struct {
	// Rows and Cols define the grid. Zero means a single row with one
	// column per panel.
	Rows, Cols int
	// Title is drawn centered at the top of the figure.
	Title string
	// Subtitle is drawn centered at the bottom of the figure.
	Subtitle string
	// Show encodes the figure as PNG to Output instead of returning it.
	Show bool
	// Output receives the PNG when Show is set.
	Output io.Writer
}

// Figure is a rendered grid of panels.
type Figure struct {
	*image.RGBA
	Rows, Cols int
}

// WritePNG encodes the figure as PNG.
func (f *Figure) WritePNG(w io.Writer) error {
	return png.Encode(w, f.RGBA)
}

// Imshow renders a single image with an optional title as PNG to w.
func Imshow(img image.Image, title string, w io.Writer) error {
	_, err := ShowImages([]Panel{{Image: img, Title: title}}, Options{Show: true, Output: w})
	return err
}

// ShowImages renders panels into a grid. With opts.Show the figure is written
// to opts.Output and nil is returned; otherwise the figure is returned.
// Grid cells beyond the number of panels are left blank.
func ShowImages(panels []Panel, opts Options) (*Figure, error) {
	if len(panels) == 0 {
		return nil, errNoImages
	}
	if opts.Show && opts.Output == nil {
		return nil, errNoOutput
	}

	rows, cols := opts.Rows, opts.Cols
	if rows == 0 && cols == 0 {
		rows, cols = 1, len(panels)
	}
	if rows <= 0 || cols <= 0 || rows*cols < len(panels) {
		return nil, fmt.Errorf("grid %dx%d cannot hold %d images", rows, cols, len(panels))
	}

	cellW, cellH, titled := 0, 0, false
	for i, p := range panels {
		if p.Image == nil {
			return nil, fmt.Errorf("panel %d has no image", i)
		}
		if p.Colormap != ColormapNone && p.Colormap != ColormapGray {
			return nil, fmt.Errorf("panel %d: unknown colormap %q", i, p.Colormap)
		}
		b := p.Image.Bounds()
		cellW = max(cellW, b.Dx())
		cellH = max(cellH, b.Dy())
		titled = titled || p.Title != ""
	}

	titleBand := 0
	if titled {
		titleBand = textHeight
	}
	top, bottom := padding, padding
	if opts.Title != "" {
		top += textHeight
	}
	if opts.Subtitle != "" {
		bottom += textHeight
	}

	width := cols*cellW + (cols+1)*padding
	height := top + rows*(cellH+titleBand) + (rows-1)*padding + bottom
	fig := &Figure{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
		Rows: rows,
		Cols: cols,
	}
	draw.Draw(fig.RGBA, fig.Bounds(), image.White, image.Point{}, draw.Src)

	if opts.Title != "" {
		drawCentered(fig.RGBA, opts.Title, width/2, padding+textHeight-4)
	}

	for i, p := range panels {
		row, col := i/cols, i%cols
		x0 := padding + col*(cellW+padding)
		y0 := top + row*(cellH+titleBand+padding)

		if p.Title != "" {
			drawCentered(fig.RGBA, p.Title, x0+cellW/2, y0+textHeight-4)
		}

		b := p.Image.Bounds()
		dx := x0 + (cellW-b.Dx())/2
		dy := y0 + titleBand + (cellH-b.Dy())/2
		dst := image.Rect(dx, dy, dx+b.Dx(), dy+b.Dy())
		draw.Draw(fig.RGBA, dst, prepare(p), b.Min, draw.Src)
	}

	if opts.Subtitle != "" {
		drawCentered(fig.RGBA, opts.Subtitle, width/2, height-padding-4)
	}

	if opts.Show {
		return nil, fig.WritePNG(opts.Output)
	}
	return fig, nil
}

// prepare applies the panel colormap.
func prepare(p Panel) image.Image {
	cmap := p.Colormap
	if cmap == ColormapNone {
		switch p.Image.(type) {
		case *image.Gray, *image.Gray16:
			cmap = ColormapGray
		}
	}
	if cmap != ColormapGray {
		return p.Image
	}

	b := p.Image.Bounds()
	gray := image.NewGray(b)
	draw.Draw(gray, b, p.Image, b.Min, draw.Src)
	return gray
}

// drawCentered draws s with its baseline at y, horizontally centered on x.
func drawCentered(dst draw.Image, s string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	w := d.MeasureString(s).Round()
	d.Dot = fixed.P(x-w/2, y)
	d.DrawString(s)
}
