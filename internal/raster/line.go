package raster

import (
	"math"

	"obj-tga-renderer/internal/tga"
)

// LineAlgo selects one of three interchangeable line strategies. All
// three touch the identical pixel set for any endpoints; they differ
// only in numeric method, which makes them useful for cross-checking.
type LineAlgo int

const (
	// LineParametric interpolates the minor coordinate as floating
	// point from the parameter t along the major axis.
	LineParametric LineAlgo = iota
	// LineFloatError accumulates the fractional slope and steps the
	// minor coordinate when the error passes one half.
	LineFloatError
	// LineBresenham is the integer variant: the error threshold is
	// doubled so no fractions appear.
	LineBresenham
)

// DrawLine rasterizes the segment (x0,y0)-(x1,y1). Lines steeper than
// 45 degrees are drawn in transposed space so every strategy steps
// along the dominant axis only; endpoint order is irrelevant.
func (r *Renderer) DrawLine(x0, y0, x1, y1 int, c tga.Color, algo LineAlgo) {
	steep := false
	if abs(x0-x1) < abs(y0-y1) {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
		steep = true
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	put := func(x, y int) {
		if steep {
			r.img.Set(y, x, c)
		} else {
			r.img.Set(x, y, c)
		}
	}

	switch algo {
	case LineParametric:
		if x0 == x1 {
			put(x0, y0)
			return
		}
		for x := x0; x <= x1; x++ {
			t := float64(x-x0) / float64(x1-x0)
			y := float64(y0) + float64(y1-y0)*t
			// ties round toward the starting endpoint, matching the
			// error-accumulation strategies pixel for pixel
			var yi int
			if y1 >= y0 {
				yi = int(math.Ceil(y - 0.5))
			} else {
				yi = int(math.Floor(y + 0.5))
			}
			put(x, yi)
		}

	case LineFloatError:
		derror := math.Abs(float64(y1-y0) / float64(x1-x0))
		err := 0.0
		y := y0
		ystep := 1
		if y1 < y0 {
			ystep = -1
		}
		for x := x0; x <= x1; x++ {
			put(x, y)
			err += derror
			if err > 0.5 {
				y += ystep
				err -= 1.0
			}
		}

	default: // LineBresenham
		dx := x1 - x0
		derror := abs(y1-y0) * 2
		err := 0
		y := y0
		ystep := 1
		if y1 < y0 {
			ystep = -1
		}
		for x := x0; x <= x1; x++ {
			put(x, y)
			err += derror
			if err > dx {
				y += ystep
				err -= dx * 2
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
