// Package brush rasterizes paint strokes into per-pixel edits.
package brush

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"fourier-paint/internal/spectrum"
)

// Pen describes the paint applied by a stroke: the color written into the
// visualization and the stroke diameter in pixels.
type Pen struct {
	R, G, B  uint8
	Diameter int
}

// Color returns the pen color as a color.RGBA.
func (p Pen) Color() color.RGBA {
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 255}
}

// Dot rasterizes a single click at (x, y) on a w by h canvas.
func Dot(w, h, x, y int, pen Pen) []spectrum.PixelEdit {
	if pen.Diameter <= 1 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return nil
		}
		return []spectrum.PixelEdit{{X: x, Y: y, R: pen.R, G: pen.G, B: pen.B}}
	}

	mask := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8U)
	defer mask.Close()
	gocv.Circle(&mask, image.Pt(x, y), pen.Diameter/2, color.RGBA{R: 255, A: 255}, -1)
	return collect(mask, pen)
}

// Segment rasterizes the stroke segment between two pointer samples. The
// pointer moves faster than events arrive, so each segment is drawn as a
// full line rather than a pair of dots.
func Segment(w, h, x1, y1, x2, y2 int, pen Pen) []spectrum.PixelEdit {
	if pen.Diameter <= 1 {
		return thinSegment(w, h, x1, y1, x2, y2, pen)
	}

	mask := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8U)
	defer mask.Close()
	gocv.Line(&mask, image.Pt(x1, y1), image.Pt(x2, y2), color.RGBA{R: 255, A: 255}, pen.Diameter)
	// Line caps are square; round the endpoints to match the dot stamp.
	gocv.Circle(&mask, image.Pt(x1, y1), pen.Diameter/2, color.RGBA{R: 255, A: 255}, -1)
	gocv.Circle(&mask, image.Pt(x2, y2), pen.Diameter/2, color.RGBA{R: 255, A: 255}, -1)
	return collect(mask, pen)
}

// thinSegment walks the segment with Bresenham's algorithm.
func thinSegment(w, h, x1, y1, x2, y2 int, pen Pen) []spectrum.PixelEdit {
	var edits []spectrum.PixelEdit

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		if x1 >= 0 && y1 >= 0 && x1 < w && y1 < h {
			edits = append(edits, spectrum.PixelEdit{X: x1, Y: y1, R: pen.R, G: pen.G, B: pen.B})
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
	return edits
}

// collect converts the nonzero pixels of a stroke mask into edits.
func collect(mask gocv.Mat, pen Pen) []spectrum.PixelEdit {
	var edits []spectrum.PixelEdit
	rows, cols := mask.Rows(), mask.Cols()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if mask.GetUCharAt(y, x) != 0 {
				edits = append(edits, spectrum.PixelEdit{X: x, Y: y, R: pen.R, G: pen.G, B: pen.B})
			}
		}
	}
	return edits
}
