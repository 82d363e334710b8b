package countries

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	summaryWidth  = 600
	summaryHeight = 400
)

var summaryBackground = color.RGBA{R: 240, G: 240, B: 240, A: 255}

// Summary is the content of the summary image
type Summary struct {
	TotalCountries int64
	RefreshedAt    time.Time
	Top            []*Country
}

// Lines returns the text lines drawn on the image, in order
func (s Summary) Lines() []string {
	lines := []string{
		fmt.Sprintf("Total Countries: %d", s.TotalCountries),
		fmt.Sprintf("Last Refresh: %s", s.RefreshedAt.UTC().Format("2006-01-02 15:04:05 UTC")),
		"Top 5 by GDP:",
	}
	for i, c := range s.Top {
		lines = append(lines, fmt.Sprintf("%d. %s - %s", i+1, c.Name, strconv.FormatFloat(c.EstimatedGDP, 'f', 2, 64)))
	}
	return lines
}

// RenderSummary draws the summary as a PNG onto w
func RenderSummary(w io.Writer, s Summary) error {
	img := image.NewRGBA(image.Rect(0, 0, summaryWidth, summaryHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(summaryBackground), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}

	// Header lines at fixed offsets, ranking rows below
	offsets := []int{20, 50, 80}
	for i, line := range s.Lines() {
		y := 100 + (i-len(offsets)+1)*25
		if i < len(offsets) {
			y = offsets[i]
		}

		drawer.Dot = fixed.P(20, y+face.Ascent)
		drawer.DrawString(line)
	}

	return png.Encode(w, img)
}

// WriteSummary renders the summary to path, replacing any previous file atomically
func WriteSummary(path string, s Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".summary-*.png")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := RenderSummary(tmp, s); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
