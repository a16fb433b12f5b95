package raster

import (
	"fmt"
	"math"

	"obj-tga-renderer/internal/mathutil"
	"obj-tga-renderer/internal/tga"
)

// sampleTexture fetches the nearest texel for a UV pair. Coordinates
// map as (|u|*W, |v|*H) truncated. A sample landing outside the texture
// means the mesh and texture disagree; the error carries the pixel and
// UV so the offending face can be traced.
func sampleTexture(tex *tga.Image, x, y int, uv mathutil.Vec2) (tga.Color, error) {
	tx := int(math.Abs(uv[0]) * float64(tex.Width()))
	ty := int(math.Abs(uv[1]) * float64(tex.Height()))
	c, ok := tex.At(tx, ty)
	if !ok {
		return tga.Color{}, fmt.Errorf(
			"raster: pixel (%d,%d): uv (%.4f,%.4f) samples texel (%d,%d) outside %dx%d texture",
			x, y, uv[0], uv[1], tx, ty, tex.Width(), tex.Height())
	}
	return c, nil
}

// shade scales the color channels by the light intensity. Alpha is
// coverage, not brightness, and passes through unchanged.
func shade(c tga.Color, intensity float64) tga.Color {
	if c.Bytes == 1 {
		return tga.NewGray(mulByte(c.Raw[0], intensity))
	}
	cr, cg, cb, ca := c.RGBA()
	return tga.NewRGBA(mulByte(cr, intensity), mulByte(cg, intensity), mulByte(cb, intensity), ca)
}

func mulByte(b byte, f float64) byte {
	v := float64(b) * f
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return byte(v)
}
