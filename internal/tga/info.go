package tga

import (
	"bytes"
	"fmt"
	"os"
)

// Info summarizes a TGA file's header and footer without decoding
// pixel data.
type Info struct {
	Width        int
	Height       int
	BitsPerPixel int
	ImageType    byte
	RLE          bool
	Grayscale    bool
	TopOrigin    bool
	RightToLeft  bool
	Footer       bool // file ends with the TRUEVISION-XFILE signature
}

// ReadInfo inspects the file at path. Unlike Decode it accepts any
// image type byte, so it can describe files the codec refuses.
func ReadInfo(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("tga: read %s: %w", path, err)
	}
	if len(data) < 18 {
		return Info{}, fmt.Errorf("tga: %s: %w: %d bytes is too short for a header", path, ErrFormat, len(data))
	}
	var hb [18]byte
	copy(hb[:], data)
	h := unpackHeader(hb)

	info := Info{
		Width:        int(h.width),
		Height:       int(h.height),
		BitsPerPixel: int(h.bitsPerPixel),
		ImageType:    h.imageType,
		RLE:          h.imageType == typeRLE || h.imageType == typeRLEGray,
		Grayscale:    h.imageType == typeRawGray || h.imageType == typeRLEGray,
		TopOrigin:    h.descriptor&descTopLeft != 0,
		RightToLeft:  h.descriptor&descFlippedX != 0,
	}
	if len(data) >= 18+26 && bytes.Equal(data[len(data)-len(footerSignature):], footerSignature) {
		info.Footer = true
	}
	return info, nil
}
