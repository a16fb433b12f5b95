package tga

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrFormat reports a structurally invalid or unsupported TGA file.
var ErrFormat = errors.New("invalid TGA data")

const (
	typeRaw      = 2 // uncompressed true-color
	typeRawGray  = 3 // uncompressed grayscale
	typeRLE      = 10
	typeRLEGray  = 11
	descTopLeft  = 0x20 // descriptor bit 5: origin at top
	descFlippedX = 0x10 // descriptor bit 4: right-to-left pixel order
	maxRun       = 128  // RLE packets cover at most 128 pixels
)

var footerSignature = []byte("TRUEVISION-XFILE.\x00")

// header mirrors the fixed 18-byte file header. Multi-byte fields are
// little-endian on disk; pack/unpack below spell the layout out byte by
// byte instead of relying on struct memory layout.
type header struct {
	idLength       byte
	colorMapType   byte
	imageType      byte
	colorMapOrigin uint16
	colorMapLength uint16
	colorMapDepth  byte
	xOrigin        uint16
	yOrigin        uint16
	width          uint16
	height         uint16
	bitsPerPixel   byte
	descriptor     byte
}

func (h header) pack() [18]byte {
	var b [18]byte
	b[0] = h.idLength
	b[1] = h.colorMapType
	b[2] = h.imageType
	binary.LittleEndian.PutUint16(b[3:5], h.colorMapOrigin)
	binary.LittleEndian.PutUint16(b[5:7], h.colorMapLength)
	b[7] = h.colorMapDepth
	binary.LittleEndian.PutUint16(b[8:10], h.xOrigin)
	binary.LittleEndian.PutUint16(b[10:12], h.yOrigin)
	binary.LittleEndian.PutUint16(b[12:14], h.width)
	binary.LittleEndian.PutUint16(b[14:16], h.height)
	b[16] = h.bitsPerPixel
	b[17] = h.descriptor
	return b
}

func unpackHeader(b [18]byte) header {
	return header{
		idLength:       b[0],
		colorMapType:   b[1],
		imageType:      b[2],
		colorMapOrigin: binary.LittleEndian.Uint16(b[3:5]),
		colorMapLength: binary.LittleEndian.Uint16(b[5:7]),
		colorMapDepth:  b[7],
		xOrigin:        binary.LittleEndian.Uint16(b[8:10]),
		yOrigin:        binary.LittleEndian.Uint16(b[10:12]),
		width:          binary.LittleEndian.Uint16(b[12:14]),
		height:         binary.LittleEndian.Uint16(b[14:16]),
		bitsPerPixel:   b[16],
		descriptor:     b[17],
	}
}

// ReadFile loads a TGA file into a fresh Image. On error no image is
// returned, so a failed reload never disturbs an existing container.
func ReadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tga: open %s: %w", path, err)
	}
	defer f.Close()

	im, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("tga: read %s: %w", path, err)
	}
	return im, nil
}

// Decode parses a TGA stream. The returned buffer is normalized to the
// canonical orientation: flipped vertically unless the descriptor's
// top-origin bit is set, flipped horizontally if the right-to-left bit
// is set.
func Decode(r io.Reader) (*Image, error) {
	var hb [18]byte
	if _, err := io.ReadFull(r, hb[:]); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	h := unpackHeader(hb)

	if h.colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped images not supported", ErrFormat)
	}
	w, ht := int(h.width), int(h.height)
	if w <= 0 || ht <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrFormat, w, ht)
	}
	bytespp := int(h.bitsPerPixel) >> 3
	switch bytespp {
	case 1, 3, 4:
	default:
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrFormat, h.bitsPerPixel)
	}

	if h.idLength > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(h.idLength)); err != nil {
			return nil, fmt.Errorf("image id: %w", err)
		}
	}

	im := &Image{
		data:    make([]byte, w*ht*bytespp),
		width:   w,
		height:  ht,
		bytespp: bytespp,
	}

	switch h.imageType {
	case typeRaw, typeRawGray:
		if _, err := io.ReadFull(r, im.data); err != nil {
			return nil, fmt.Errorf("pixel data: %w", err)
		}
	case typeRLE, typeRLEGray:
		if err := decodeRLE(r, im.data, bytespp); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: image type %d", ErrFormat, h.imageType)
	}

	if h.descriptor&descTopLeft == 0 {
		im.FlipVertically()
	}
	if h.descriptor&descFlippedX != 0 {
		im.FlipHorizontally()
	}
	return im, nil
}

// WriteFile serializes the image to path, RLE-compressed when rle is set.
func (im *Image) WriteFile(path string, rle bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tga: create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := im.Encode(bw, rle); err != nil {
		f.Close()
		return fmt.Errorf("tga: write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("tga: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("tga: write %s: %w", path, err)
	}
	return nil
}

// Encode writes the 18-byte header, pixel data and 26-byte footer. The
// descriptor is fixed to top-origin, so readers need not re-flip.
func (im *Image) Encode(w io.Writer, rle bool) error {
	imageType := byte(typeRaw)
	if im.bytespp == 1 {
		imageType = typeRawGray
	}
	if rle {
		imageType += 8
	}
	h := header{
		imageType:    imageType,
		width:        uint16(im.width),
		height:       uint16(im.height),
		bitsPerPixel: byte(im.bytespp * 8),
		descriptor:   descTopLeft,
	}
	hb := h.pack()
	if _, err := w.Write(hb[:]); err != nil {
		return err
	}

	if rle {
		if err := encodeRLE(w, im.data, im.bytespp); err != nil {
			return err
		}
	} else {
		if _, err := w.Write(im.data); err != nil {
			return err
		}
	}

	// footer: developer area offset, extension area offset, signature
	var areaRefs [8]byte
	if _, err := w.Write(areaRefs[:]); err != nil {
		return err
	}
	_, err := w.Write(footerSignature)
	return err
}

// decodeRLE expands packets into dst. A header byte below 128 announces
// header+1 literal pixels; 128 or above announces header-127 repetitions
// of the single following pixel.
func decodeRLE(r io.Reader, dst []byte, bytespp int) error {
	var hdr [1]byte
	pix := make([]byte, bytespp)
	off := 0
	for off < len(dst) {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return fmt.Errorf("rle packet header: %w", err)
		}
		if hdr[0] < 128 {
			n := (int(hdr[0]) + 1) * bytespp
			if off+n > len(dst) {
				return fmt.Errorf("%w: rle run past end of image", ErrFormat)
			}
			if _, err := io.ReadFull(r, dst[off:off+n]); err != nil {
				return fmt.Errorf("rle literals: %w", err)
			}
			off += n
		} else {
			n := int(hdr[0]) - 127
			if off+n*bytespp > len(dst) {
				return fmt.Errorf("%w: rle run past end of image", ErrFormat)
			}
			if _, err := io.ReadFull(r, pix); err != nil {
				return fmt.Errorf("rle pixel: %w", err)
			}
			for i := 0; i < n; i++ {
				off += copy(dst[off:], pix)
			}
		}
	}
	return nil
}

// encodeRLE groups pixels into raw or packeted runs of at most 128
// pixels. The run kind is locked in by the first adjacent comparison and
// extends while it keeps holding.
func encodeRLE(w io.Writer, data []byte, bytespp int) error {
	npixels := len(data) / bytespp
	cur := 0
	for cur < npixels {
		chunkStart := cur * bytespp
		curByte := chunkStart
		runLength := 1
		raw := true
		for cur+runLength < npixels && runLength < maxRun {
			succEq := bytes.Equal(
				data[curByte:curByte+bytespp],
				data[curByte+bytespp:curByte+2*bytespp],
			)
			curByte += bytespp
			if runLength == 1 {
				raw = !succEq
			}
			if raw && succEq {
				// next pixel starts a packeted run; leave it behind
				runLength--
				break
			}
			if !raw && !succEq {
				break
			}
			runLength++
		}
		cur += runLength
		if raw {
			if _, err := w.Write([]byte{byte(runLength - 1)}); err != nil {
				return err
			}
			if _, err := w.Write(data[chunkStart : chunkStart+runLength*bytespp]); err != nil {
				return err
			}
		} else {
			if _, err := w.Write([]byte{byte(runLength + 127)}); err != nil {
				return err
			}
			if _, err := w.Write(data[chunkStart : chunkStart+bytespp]); err != nil {
				return err
			}
		}
	}
	return nil
}
