package main

import (
	"fmt"
	"os"

	"obj-tga-renderer/internal/tga"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: tgainfo <file.tga> [...]")
		os.Exit(2)
	}

	failed := false
	for _, path := range os.Args[1:] {
		info, err := tga.ReadInfo(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed = true
			continue
		}

		kind := "true-color"
		if info.Grayscale {
			kind = "grayscale"
		}
		compression := "raw"
		if info.RLE {
			compression = "RLE"
		}
		origin := "bottom-left"
		if info.TopOrigin {
			origin = "top-left"
		}

		fmt.Printf("%s: %dx%d %d-bit %s, %s (type %d)\n",
			path, info.Width, info.Height, info.BitsPerPixel, kind, compression, info.ImageType)
		fmt.Printf("  origin: %s, right-to-left: %v, footer: %v\n",
			origin, info.RightToLeft, info.Footer)

		if im, err := tga.ReadFile(path); err == nil {
			printStats(im)
		}
	}

	if failed {
		os.Exit(1)
	}
}

// printStats reports how much of the image carries data, which is
// usually enough to spot an all-black render or a bad decode.
func printStats(im *tga.Image) {
	bpp := im.BytesPerPixel()
	data := im.Data()
	total := im.Width() * im.Height()

	nonZero := 0
	colors := make(map[[4]byte]struct{})
	for i := 0; i < len(data); i += bpp {
		var key [4]byte
		copy(key[:], data[i:i+bpp])
		colors[key] = struct{}{}
		for b := 0; b < bpp; b++ {
			if data[i+b] != 0 {
				nonZero++
				break
			}
		}
	}
	fmt.Printf("  pixels: %d, non-black: %d (%.1f%%), distinct colors: %d\n",
		total, nonZero, float64(nonZero)*100/float64(total), len(colors))
}
