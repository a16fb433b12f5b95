// Package texture locates, decodes and caches diffuse maps for meshes.
package texture

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ftrvxmtrx/tga"

	"obj-tga-renderer/internal/tga"
)

// Load reads a diffuse map into a TGA pixel buffer oriented for UV
// sampling: row 0 is the bottom of the picture, so v=0 maps to row 0.
// Files with a .tga extension go through the native codec; anything
// else is handed to image.Decode, which also understands PNG, JPEG and
// TGA streams via the registered decoders.
func Load(path string) (*tga.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		im, err := tga.ReadFile(path)
		if err != nil {
			return nil, err
		}
		im.FlipVertically()
		return im, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return fromImage(src), nil
}

// fromImage converts any decoded image to an RGBA pixel buffer,
// inverting rows so row 0 holds the bottom of the picture.
func fromImage(src image.Image) *tga.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := tga.New(w, h, tga.RGBA)
	for y := 0; y < h; y++ {
		srcY := b.Min.Y + (h - 1 - y)
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, srcY)).(color.NRGBA)
			dst.Set(x, y, tga.NewRGBA(c.R, c.G, c.B, c.A))
		}
	}
	return dst
}
