// Package tga implements the in-memory image container and binary codec
// for Truevision TGA files, including run-length compression.
package tga

// Image is a row-major pixel buffer. The data slice length is always
// exactly width*height*bytespp; Scale and Decode replace it atomically
// together with the dimensions.
type Image struct {
	data          []byte
	width, height int
	bytespp       int
}

// New allocates a zero-filled image for the given format.
func New(w, h int, f Format) *Image {
	bytespp := int(f)
	return &Image{
		data:    make([]byte, w*h*bytespp),
		width:   w,
		height:  h,
		bytespp: bytespp,
	}
}

func (im *Image) Width() int         { return im.width }
func (im *Image) Height() int        { return im.height }
func (im *Image) BytesPerPixel() int { return im.bytespp }

// Data exposes the raw pixel buffer (B,G,R,A channel order).
func (im *Image) Data() []byte { return im.data }

// At returns the color at (x, y), or false when the point is outside
// [0,width) x [0,height).
func (im *Image) At(x, y int) (Color, bool) {
	if x < 0 || y < 0 || x >= im.width || y >= im.height {
		return Color{}, false
	}
	idx := (x + y*im.width) * im.bytespp
	return colorFrom(im.data[idx : idx+im.bytespp]), true
}

// Set writes exactly bytespp bytes of c at (x, y). Out-of-bounds writes
// are a no-op returning false; the buffer is never partially written.
func (im *Image) Set(x, y int, c Color) bool {
	if x < 0 || y < 0 || x >= im.width || y >= im.height {
		return false
	}
	idx := (x + y*im.width) * im.bytespp
	copy(im.data[idx:idx+im.bytespp], c.Raw[:im.bytespp])
	return true
}

// Clear zeroes the pixel buffer.
func (im *Image) Clear() {
	for i := range im.data {
		im.data[i] = 0
	}
}

// FlipVertically mirrors the image across its horizontal midline in
// place. Applying it twice restores the original. Returns false on an
// empty buffer.
func (im *Image) FlipVertically() bool {
	if len(im.data) == 0 {
		return false
	}
	line := im.width * im.bytespp
	tmp := make([]byte, line)
	for j := 0; j < im.height/2; j++ {
		top := im.data[j*line : (j+1)*line]
		bot := im.data[(im.height-1-j)*line : (im.height-j)*line]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
	return true
}

// FlipHorizontally mirrors the image across its vertical midline in place.
func (im *Image) FlipHorizontally() bool {
	if len(im.data) == 0 {
		return false
	}
	for i := 0; i < im.width/2; i++ {
		for j := 0; j < im.height; j++ {
			idx1 := (i + j*im.width) * im.bytespp
			idx2 := ((im.width - 1 - i) + j*im.width) * im.bytespp
			for b := 0; b < im.bytespp; b++ {
				im.data[idx1+b], im.data[idx2+b] = im.data[idx2+b], im.data[idx1+b]
			}
		}
	}
	return true
}

// Scale resamples to w x h with nearest-neighbor selection driven by
// integer error accumulation: the error terms decide when the source
// pointer advances along each axis, so every destination pixel is
// written exactly once and source pixels are visited in order.
func (im *Image) Scale(w, h int) bool {
	if w <= 0 || h <= 0 || len(im.data) == 0 {
		return false
	}
	tdata := make([]byte, w*h*im.bytespp)
	nline := w * im.bytespp
	oline := im.width * im.bytespp
	nscan, oscan := 0, 0
	erry := 0
	for j := 0; j < im.height; j++ {
		errx := im.width - w
		nx := -im.bytespp
		ox := -im.bytespp
		for i := 0; i < im.width; i++ {
			ox += im.bytespp
			errx += w
			for errx >= im.width {
				errx -= im.width
				nx += im.bytespp
				copy(tdata[nscan+nx:nscan+nx+im.bytespp], im.data[oscan+ox:oscan+ox+im.bytespp])
			}
		}
		erry += h
		oscan += oline
		for erry >= im.height {
			if erry >= im.height<<1 {
				// this source row fills more than one destination
				// row: duplicate the one just written
				copy(tdata[nscan+nline:nscan+2*nline], tdata[nscan:nscan+nline])
			}
			erry -= im.height
			nscan += nline
		}
	}
	im.data = tdata
	im.width = w
	im.height = h
	return true
}
