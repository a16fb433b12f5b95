// Package raster draws meshes into a TGA image: line strategies,
// scanline and barycentric triangle fills, z-buffered flat shading.
package raster

import (
	"fmt"
	"math"

	"obj-tga-renderer/internal/mathutil"
	"obj-tga-renderer/internal/model"
	"obj-tga-renderer/internal/tga"
)

// depthScale maps normalized device z in [-1,1] onto [0,depthScale].
const depthScale = 65535

// DefaultLight points straight into the screen.
var DefaultLight = mathutil.Vec3{0, 0, -1}

// Renderer owns a color buffer and a z-buffer of the same dimensions.
// Depth starts at the minimum so any drawn pixel beats an empty one.
type Renderer struct {
	width, height int
	img           *tga.Image
	zbuf          []int64
}

// New allocates a black RGB canvas with a cleared depth buffer.
func New(width, height int) *Renderer {
	r := &Renderer{
		width:  width,
		height: height,
		img:    tga.New(width, height, tga.RGB),
		zbuf:   make([]int64, width*height),
	}
	r.clearDepth()
	return r
}

func (r *Renderer) clearDepth() {
	for i := range r.zbuf {
		r.zbuf[i] = math.MinInt64
	}
}

// Reset blanks the canvas and depth buffer for another pass.
func (r *Renderer) Reset() {
	r.img.Clear()
	r.clearDepth()
}

func (r *Renderer) Image() *tga.Image { return r.img }

// project maps a vertex from normalized device coordinates ([-1,1] per
// axis) to screen space, truncating to integers. Depth keeps 16 bits of
// precision so the integer z-buffer can still order close surfaces.
func (r *Renderer) project(v mathutil.Vec3) Vertex {
	return Vertex{
		X: int((v[0] + 1) * float64(r.width) / 2),
		Y: int((v[1] + 1) * float64(r.height) / 2),
		Z: int((v[2] + 1) * depthScale / 2),
	}
}

// RenderWireframe draws every face edge of the mesh with the chosen
// line strategy. No depth testing; later lines overdraw earlier ones.
func (r *Renderer) RenderWireframe(m *model.Mesh, c tga.Color, algo LineAlgo) {
	for i := 0; i < m.FaceCount(); i++ {
		f := m.Face(i)
		for j := 0; j < 3; j++ {
			a := r.project(m.Vert(f[j].Vertex))
			b := r.project(m.Vert(f[(j+1)%3].Vertex))
			r.DrawLine(a.X, a.Y, b.X, b.Y, c, algo)
		}
	}
}

// RenderShaded flat-shades the mesh under a directional light. Faces
// turned away from the light are culled. When tex is non-nil and a face
// carries UV indices, pixels sample the texture; otherwise they get a
// grey proportional to the light intensity.
func (r *Renderer) RenderShaded(m *model.Mesh, tex *tga.Image, light mathutil.Vec3, rule FillRule) error {
	for i := 0; i < m.FaceCount(); i++ {
		f := m.Face(i)
		var world [3]mathutil.Vec3
		var screen [3]Vertex
		for j := 0; j < 3; j++ {
			world[j] = m.Vert(f[j].Vertex)
			screen[j] = r.project(world[j])
		}

		n := world[2].Sub(world[0]).Cross(world[1].Sub(world[0])).Normalize()
		intensity := n.Dot(light)
		if intensity <= 0 {
			continue // facing away from the light
		}

		faceTex := tex
		if faceTex != nil {
			for j := 0; j < 3; j++ {
				if f[j].UV < 0 {
					faceTex = nil
					break
				}
			}
		}
		if faceTex != nil {
			for j := 0; j < 3; j++ {
				screen[j].UV = m.UV(f[j].UV)
			}
		}

		if err := r.FillTriangle(screen[0], screen[1], screen[2], faceTex, intensity, rule); err != nil {
			return fmt.Errorf("face %d: %w", i, err)
		}
	}
	return nil
}

// Save writes the canvas to a TGA file. The buffer is flipped so the
// mesh's y-up coordinates land with the origin at the bottom left.
func (r *Renderer) Save(path string, rle bool) error {
	r.img.FlipVertically()
	return r.img.WriteFile(path, rle)
}
