package raster

import (
	"testing"

	"obj-tga-renderer/internal/tga"
)

var allAlgos = []struct {
	name string
	algo LineAlgo
}{
	{"parametric", LineParametric},
	{"floaterror", LineFloatError},
	{"bresenham", LineBresenham},
}

func drawnPixels(im *tga.Image) map[[2]int]bool {
	set := make(map[[2]int]bool)
	for y := 0; y < im.Height(); y++ {
		for x := 0; x < im.Width(); x++ {
			c, _ := im.At(x, y)
			if c.Raw[0] != 0 || c.Raw[1] != 0 || c.Raw[2] != 0 {
				set[[2]int{x, y}] = true
			}
		}
	}
	return set
}

func lineSet(x0, y0, x1, y1 int, algo LineAlgo) map[[2]int]bool {
	r := New(32, 32)
	r.DrawLine(x0, y0, x1, y1, tga.NewRGB(255, 255, 255), algo)
	return drawnPixels(r.Image())
}

func sameSet(a, b map[[2]int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for p := range a {
		if !b[p] {
			return false
		}
	}
	return true
}

func TestLineKnownPixels(t *testing.T) {
	want := map[[2]int]bool{
		{0, 0}: true, {1, 1}: true, {2, 1}: true, {3, 2}: true, {4, 2}: true,
		{5, 3}: true, {6, 4}: true, {7, 4}: true, {8, 5}: true,
	}
	for _, a := range allAlgos {
		t.Run(a.name, func(t *testing.T) {
			got := lineSet(0, 0, 8, 5, a.algo)
			if !sameSet(got, want) {
				t.Errorf("pixel set = %v, want %v", got, want)
			}
		})
	}
}

func TestLineStrategiesAgree(t *testing.T) {
	segments := [][4]int{
		{0, 0, 8, 5},
		{8, 5, 0, 0},   // reversed endpoints
		{0, 5, 8, 0},   // descending
		{2, 1, 5, 9},   // steep
		{5, 9, 2, 1},   // steep reversed
		{9, 8, 1, 20},  // steep descending in x
		{0, 4, 9, 4},   // horizontal
		{4, 0, 4, 9},   // vertical
		{3, 3, 3, 3},   // single point
		{0, 0, 10, 10}, // diagonal
		{1, 2, 12, 7},
		{12, 7, 1, 2},
	}
	for _, seg := range segments {
		ref := lineSet(seg[0], seg[1], seg[2], seg[3], LineBresenham)
		if len(ref) == 0 {
			t.Fatalf("segment %v drew nothing", seg)
		}
		for _, a := range allAlgos {
			got := lineSet(seg[0], seg[1], seg[2], seg[3], a.algo)
			if !sameSet(got, ref) {
				t.Errorf("%s on %v = %v, bresenham = %v", a.name, seg, got, ref)
			}
		}
	}
}

func TestLineEndpointSymmetry(t *testing.T) {
	for _, a := range allAlgos {
		fwd := lineSet(1, 2, 12, 7, a.algo)
		rev := lineSet(12, 7, 1, 2, a.algo)
		if !sameSet(fwd, rev) {
			t.Errorf("%s: forward %v != reverse %v", a.name, fwd, rev)
		}
	}
}

func TestLineTouchesEndpoints(t *testing.T) {
	for _, a := range allAlgos {
		set := lineSet(2, 3, 11, 9, a.algo)
		if !set[[2]int{2, 3}] || !set[[2]int{11, 9}] {
			t.Errorf("%s: endpoints missing from %v", a.name, set)
		}
	}
}

func TestLineOffCanvasIsSafe(t *testing.T) {
	r := New(8, 8)
	r.DrawLine(-5, -5, 20, 13, tga.NewRGB(255, 255, 255), LineBresenham)
	if len(drawnPixels(r.Image())) == 0 {
		t.Error("clipped line drew nothing on the canvas")
	}
}
