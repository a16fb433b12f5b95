package tga

// Format selects the pixel layout of an Image by its byte width.
type Format int

const (
	Grayscale Format = 1
	RGB       Format = 3
	RGBA      Format = 4
)

// Color holds up to four raw channel bytes in the TGA on-disk order
// (B, G, R, A). Bytes tags how many of the leading bytes are meaningful;
// comparisons and pixel writes touch only that many.
type Color struct {
	Raw   [4]byte
	Bytes int
}

// NewRGBA builds a 4-byte color from conventional R,G,B,A components.
func NewRGBA(r, g, b, a byte) Color {
	return Color{Raw: [4]byte{b, g, r, a}, Bytes: 4}
}

// NewRGB builds a 3-byte color from conventional R,G,B components.
func NewRGB(r, g, b byte) Color {
	return Color{Raw: [4]byte{b, g, r, 0}, Bytes: 3}
}

// NewGray builds a 1-byte grayscale color.
func NewGray(v byte) Color {
	return Color{Raw: [4]byte{v, 0, 0, 0}, Bytes: 1}
}

func colorFrom(p []byte) Color {
	var c Color
	c.Bytes = copy(c.Raw[:], p)
	return c
}

// Equal reports whether the meaningful bytes of both colors match.
func (c Color) Equal(o Color) bool {
	if c.Bytes != o.Bytes {
		return false
	}
	for i := 0; i < c.Bytes; i++ {
		if c.Raw[i] != o.Raw[i] {
			return false
		}
	}
	return true
}

// RGBA returns the conventional components. Missing channels read as zero.
func (c Color) RGBA() (r, g, b, a byte) {
	return c.Raw[2], c.Raw[1], c.Raw[0], c.Raw[3]
}
