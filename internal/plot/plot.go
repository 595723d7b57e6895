// Package plot renders simple line and stem charts to PNG. It exists so the
// tutorial binaries can save figures without pulling in a plotting library;
// the analysis packages never depend on it.
package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
)

const (
	defaultWidth  = 800
	defaultHeight = 400
	margin        = 10
)

// Config controls the rendered image. Zero values select 800x400.
type Config struct {
	Width  int
	Height int
}

func (c Config) normalize() Config {
	if c.Width <= 0 {
		c.Width = defaultWidth
	}
	if c.Height <= 0 {
		c.Height = defaultHeight
	}
	return c
}

var palette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, // blue
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, // red
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, // green
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}, // orange
}

var axisColor = color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}

// Line renders one or more series as connected polylines sharing the same
// axes and writes the PNG to w. Series are colored from a fixed palette.
func Line(w io.Writer, series [][]float64, cfg Config) error {
	return render(w, series, cfg, false)
}

// Stem renders each sample as a vertical line from the zero axis, the
// conventional view of a discrete spectrum.
func Stem(w io.Writer, series [][]float64, cfg Config) error {
	return render(w, series, cfg, true)
}

func render(w io.Writer, series [][]float64, cfg Config, stems bool) error {
	if len(series) == 0 {
		return fmt.Errorf("plot: no series to draw")
	}
	n := 0
	for i, s := range series {
		if len(s) == 0 {
			return fmt.Errorf("plot: series %d is empty", i)
		}
		if len(s) > n {
			n = len(s)
		}
		for _, v := range s {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("plot: series %d contains non-finite values", i)
			}
		}
	}

	cfg = cfg.normalize()
	// White background.
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	lo, hi := dataRange(series)

	plotW := cfg.Width - 2*margin
	plotH := cfg.Height - 2*margin

	toX := func(i int) int {
		if n == 1 {
			return margin
		}
		return margin + i*(plotW-1)/(n-1)
	}
	toY := func(v float64) int {
		frac := (v - lo) / (hi - lo)
		return margin + plotH - 1 - int(math.Round(frac*float64(plotH-1)))
	}

	// Zero axis, when zero is inside the data range.
	if lo <= 0 && hi >= 0 {
		y := toY(0)
		for x := margin; x < margin+plotW; x++ {
			img.SetRGBA(x, y, axisColor)
		}
	}

	zeroY := toY(math.Max(lo, math.Min(hi, 0)))
	for si, s := range series {
		col := palette[si%len(palette)]
		if stems {
			for i, v := range s {
				drawVLine(img, toX(i), zeroY, toY(v), col)
			}
			continue
		}
		prevX, prevY := toX(0), toY(s[0])
		for i := 1; i < len(s); i++ {
			x, y := toX(i), toY(s[i])
			drawLine(img, prevX, prevY, x, y, col)
			prevX, prevY = x, y
		}
		if len(s) == 1 {
			img.SetRGBA(prevX, prevY, col)
		}
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("plot: encode png: %w", err)
	}
	return nil
}

func dataRange(series [][]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo == hi {
		lo -= 1
		hi += 1
	}
	return lo, hi
}

func drawVLine(img *image.RGBA, x, y0, y1 int, col color.RGBA) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x, y, col)
	}
}

// drawLine draws with the integer Bresenham algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.SetRGBA(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
