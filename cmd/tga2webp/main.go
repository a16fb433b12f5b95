package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"obj-tga-renderer/internal/tga"
)

func main() {
	output := flag.String("o", "", "Output path (default: input with .webp extension)")
	width := flag.Int("width", 0, "Resize to this width (0 keeps original)")
	height := flag.Int("height", 0, "Resize to this height (0 keeps original)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tga2webp [-o out.webp] [-width N] [-height N] <file.tga>")
		os.Exit(2)
	}
	in := flag.Arg(0)

	out := *output
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ".webp"
	}

	if err := convert(in, out, *width, *height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", out)
}

func convert(in, out string, width, height int) error {
	src, err := tga.ReadFile(in)
	if err != nil {
		return err
	}

	img := toNRGBA(src)
	if width > 0 || height > 0 {
		if width <= 0 {
			width = img.Rect.Dx() * height / img.Rect.Dy()
		}
		if height <= 0 {
			height = img.Rect.Dy() * width / img.Rect.Dx()
		}
		dst := image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = dst
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("webp encode: %w", err)
	}
	return f.Close()
}

// toNRGBA converts the decoded TGA buffer, which is normalized to
// top-left origin, into the stdlib image type webp encoding expects.
func toNRGBA(src *tga.Image) *image.NRGBA {
	w, h := src.Width(), src.Height()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, _ := src.At(x, y)
			i := dst.PixOffset(x, y)
			if c.Bytes == 1 {
				v := c.Raw[0]
				dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = v, v, v, 255
				continue
			}
			r, g, b, a := c.RGBA()
			if c.Bytes < 4 {
				a = 255
			}
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = r, g, b, a
		}
	}
	return dst
}
