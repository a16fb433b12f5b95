package raster

import (
	"fmt"
	"math"

	"obj-tga-renderer/internal/mathutil"
	"obj-tga-renderer/internal/tga"
)

// Vertex is a screen-space triangle corner: integer pixel coordinates,
// integer depth and the texture coordinate carried for interpolation.
type Vertex struct {
	X, Y, Z int
	UV      mathutil.Vec2
}

// FillRule selects the triangle fill strategy.
type FillRule int

const (
	// FillScanline sorts the corners by y and walks horizontal spans.
	FillScanline FillRule = iota
	// FillBarycentric tests every pixel of the bounding box against the
	// triangle's edge functions.
	FillBarycentric
)

// FillTriangle rasterizes one triangle with depth testing. When tex is
// nil the fill is a flat grey of the given intensity; otherwise each
// pixel samples tex at the interpolated UV and scales the sample by the
// intensity. A sample outside the texture is a hard error.
func (r *Renderer) FillTriangle(v0, v1, v2 Vertex, tex *tga.Image, intensity float64, rule FillRule) error {
	if rule == FillBarycentric {
		return r.fillBarycentric(v0, v1, v2, tex, intensity)
	}
	return r.fillScanline(v0, v1, v2, tex, intensity)
}

// fvert is the float-space vertex used while interpolating along edges.
type fvert struct {
	x, y, z float64
	uv      mathutil.Vec2
}

func toF(v Vertex) fvert {
	return fvert{x: float64(v.X), y: float64(v.Y), z: float64(v.Z), uv: v.UV}
}

func lerpF(a, b fvert, t float64) fvert {
	return fvert{
		x:  a.x + (b.x-a.x)*t,
		y:  a.y + (b.y-a.y)*t,
		z:  a.z + (b.z-a.z)*t,
		uv: a.uv.Lerp(b.uv, t),
	}
}

// fillScanline splits the triangle at the middle vertex and fills rows
// [y0,y2) with spans [left,right), both half-open so adjacent triangles
// sharing an edge never double-fill.
func (r *Renderer) fillScanline(v0, v1, v2 Vertex, tex *tga.Image, intensity float64) error {
	if v0.Y == v1.Y && v0.Y == v2.Y {
		return nil // no area
	}
	if v0.Y > v1.Y {
		v0, v1 = v1, v0
	}
	if v0.Y > v2.Y {
		v0, v2 = v2, v0
	}
	if v1.Y > v2.Y {
		v1, v2 = v2, v1
	}

	totalHeight := v2.Y - v0.Y
	if totalHeight == 0 {
		return fmt.Errorf("raster: zero-height triangle span at y=%d", v0.Y)
	}
	a, b, c := toF(v0), toF(v1), toF(v2)

	for y := v0.Y; y < v2.Y; y++ {
		secondHalf := y >= v1.Y
		segHeight := v1.Y - v0.Y
		if secondHalf {
			segHeight = v2.Y - v1.Y
		}
		if segHeight == 0 {
			return fmt.Errorf("raster: zero-height segment at y=%d", y)
		}
		alpha := float64(y-v0.Y) / float64(totalHeight)
		var beta float64
		if secondHalf {
			beta = float64(y-v1.Y) / float64(segHeight)
		} else {
			beta = float64(y-v0.Y) / float64(segHeight)
		}

		pa := lerpF(a, c, alpha)
		var pb fvert
		if secondHalf {
			pb = lerpF(b, c, beta)
		} else {
			pb = lerpF(a, b, beta)
		}
		if pa.x > pb.x {
			pa, pb = pb, pa
		}

		for x := int(math.Ceil(pa.x)); float64(x) < pb.x; x++ {
			if x < 0 || x >= r.width || y < 0 || y >= r.height {
				continue
			}
			var phi float64
			if pb.x != pa.x {
				phi = (float64(x) - pa.x) / (pb.x - pa.x)
			}
			p := lerpF(pa, pb, phi)
			if err := r.putShaded(x, y, int64(p.z), p.uv, tex, intensity); err != nil {
				return err
			}
		}
	}
	return nil
}

// fillBarycentric walks the clamped bounding box and keeps pixels whose
// barycentric coordinates are all non-negative. Zero-weight pixels sit
// exactly on an edge; they are kept only when the edge passes the
// top-left tie-break, so a shared edge belongs to exactly one triangle.
func (r *Renderer) fillBarycentric(v0, v1, v2 Vertex, tex *tga.Image, intensity float64) error {
	// orient counter-clockwise so the edge functions are non-negative
	// inside the triangle
	det := (v1.X-v0.X)*(v2.Y-v0.Y) - (v1.Y-v0.Y)*(v2.X-v0.X)
	if det < 0 {
		v1, v2 = v2, v1
		det = -det
	}
	if float64(det) < 1 {
		return nil // near-degenerate, skip
	}
	invDet := 1 / float64(det)

	minX := clamp(min3(v0.X, v1.X, v2.X), 0, r.width-1)
	maxX := clamp(max3(v0.X, v1.X, v2.X), 0, r.width-1)
	minY := clamp(min3(v0.Y, v1.Y, v2.Y), 0, r.height-1)
	maxY := clamp(max3(v0.Y, v1.Y, v2.Y), 0, r.height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			e0 := edgeFn(v1, v2, x, y)
			e1 := edgeFn(v2, v0, x, y)
			e2 := edgeFn(v0, v1, x, y)
			if e0 < 0 || e1 < 0 || e2 < 0 {
				continue
			}
			if (e0 == 0 && !topLeft(v1, v2)) ||
				(e1 == 0 && !topLeft(v2, v0)) ||
				(e2 == 0 && !topLeft(v0, v1)) {
				continue
			}
			w0 := float64(e0) * invDet
			w1 := float64(e1) * invDet
			w2 := float64(e2) * invDet
			z := w0*float64(v0.Z) + w1*float64(v1.Z) + w2*float64(v2.Z)
			uv := mathutil.Vec2{
				w0*v0.UV[0] + w1*v1.UV[0] + w2*v2.UV[0],
				w0*v0.UV[1] + w1*v1.UV[1] + w2*v2.UV[1],
			}
			if err := r.putShaded(x, y, int64(z), uv, tex, intensity); err != nil {
				return err
			}
		}
	}
	return nil
}

// edgeFn is the doubled signed area of (a, b, P), positive when P lies
// to the left of a->b for counter-clockwise winding. Integer inputs, so
// the sign is exact.
func edgeFn(a, b Vertex, px, py int) int {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

// topLeft reports whether a->b is a top or left edge of a
// counter-clockwise triangle. A shared edge runs in opposite directions
// in the two adjacent triangles, so exactly one side claims it.
func topLeft(a, b Vertex) bool {
	dy := b.Y - a.Y
	return dy > 0 || (dy == 0 && b.X < a.X)
}

// putShaded depth-tests one pixel and writes the shaded color when it
// wins. Nearer pixels have strictly greater depth; an equal depth keeps
// the earlier write.
func (r *Renderer) putShaded(x, y int, depth int64, uv mathutil.Vec2, tex *tga.Image, intensity float64) error {
	idx := y*r.width + x
	if depth <= r.zbuf[idx] {
		return nil
	}
	r.zbuf[idx] = depth

	var c tga.Color
	if tex == nil {
		g := byte(intensity * 255)
		c = tga.NewRGB(g, g, g)
	} else {
		s, err := sampleTexture(tex, x, y, uv)
		if err != nil {
			return err
		}
		c = shade(s, intensity)
	}
	r.img.Set(x, y, c)
	return nil
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
