// Package model reads Wavefront OBJ meshes into the index-triple form
// consumed by the rasterizer.
package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"obj-tga-renderer/internal/mathutil"
)

// FaceVertex selects one triangle corner by attribute indices into the
// mesh arrays, 0-based. UV and Normal are -1 when the face omits them.
type FaceVertex struct {
	Vertex int
	UV     int
	Normal int
}

// Face is an ordered triangle of index groups.
type Face [3]FaceVertex

// Mesh holds the parsed attribute arrays and triangulated faces. All
// indices are validated at parse time, so lookups never go out of range.
type Mesh struct {
	verts   []mathutil.Vec3
	uvs     []mathutil.Vec2
	normals []mathutil.Vec3
	faces   []Face
}

// Load reads an OBJ file from disk.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("model: parse %s: %w", path, err)
	}
	return m, nil
}

// Parse reads line-oriented OBJ data: v, vt, vn and f records. Faces
// with more than three corners are fan-triangulated.
func Parse(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNum, err)
			}
			m.verts = append(m.verts, v)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: texture coord needs u v", lineNum)
			}
			u, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coord: %w", lineNum, err)
			}
			v, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coord: %w", lineNum, err)
			}
			m.uvs = append(m.uvs, mathutil.Vec2{u, v})

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNum, err)
			}
			m.normals = append(m.normals, n.Normalize())

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 corners", lineNum)
			}
			corners := make([]FaceVertex, 0, len(fields)-1)
			for _, part := range fields[1:] {
				fv, err := m.parseCorner(part)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				corners = append(corners, fv)
			}
			for i := 1; i < len(corners)-1; i++ {
				m.faces = append(m.faces, Face{corners[0], corners[i], corners[i+1]})
			}

		default:
			// mtllib, usemtl, o, g, s and anything unknown are ignored
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return m, nil
}

func parseVec3(fields []string) (mathutil.Vec3, error) {
	if len(fields) < 3 {
		return mathutil.Vec3{}, fmt.Errorf("need x y z")
	}
	var v mathutil.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return mathutil.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}

// parseCorner parses "v", "v/vt", "v/vt/vn" or "v//vn", translating the
// OBJ file's 1-based (or negative, from-the-end) indices to 0-based and
// bounds-checking each against the arrays seen so far.
func (m *Mesh) parseCorner(s string) (FaceVertex, error) {
	parts := strings.Split(s, "/")

	vi, err := strconv.Atoi(parts[0])
	if err != nil {
		return FaceVertex{}, fmt.Errorf("vertex index %q: %w", parts[0], err)
	}
	fv := FaceVertex{
		Vertex: resolveIndex(vi, len(m.verts)),
		UV:     -1,
		Normal: -1,
	}
	if fv.Vertex < 0 || fv.Vertex >= len(m.verts) {
		return FaceVertex{}, fmt.Errorf("vertex index %d out of range", vi)
	}

	if len(parts) > 1 && parts[1] != "" {
		ti, err := strconv.Atoi(parts[1])
		if err != nil {
			return FaceVertex{}, fmt.Errorf("uv index %q: %w", parts[1], err)
		}
		fv.UV = resolveIndex(ti, len(m.uvs))
		if fv.UV < 0 || fv.UV >= len(m.uvs) {
			return FaceVertex{}, fmt.Errorf("uv index %d out of range", ti)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		ni, err := strconv.Atoi(parts[2])
		if err != nil {
			return FaceVertex{}, fmt.Errorf("normal index %q: %w", parts[2], err)
		}
		fv.Normal = resolveIndex(ni, len(m.normals))
		if fv.Normal < 0 || fv.Normal >= len(m.normals) {
			return FaceVertex{}, fmt.Errorf("normal index %d out of range", ni)
		}
	}
	return fv, nil
}

// resolveIndex converts a 1-based or negative OBJ index to 0-based.
func resolveIndex(idx, count int) int {
	if idx < 0 {
		return count + idx
	}
	return idx - 1
}

func (m *Mesh) VertexCount() int { return len(m.verts) }
func (m *Mesh) FaceCount() int   { return len(m.faces) }

func (m *Mesh) Vert(i int) mathutil.Vec3 { return m.verts[i] }

func (m *Mesh) UV(i int) mathutil.Vec2 { return m.uvs[i] }

func (m *Mesh) Normal(i int) mathutil.Vec3 { return m.normals[i] }

func (m *Mesh) Face(i int) Face { return m.faces[i] }

// HasUVs reports whether every face corner carries a UV index, i.e. the
// mesh can be texture-mapped.
func (m *Mesh) HasUVs() bool {
	if len(m.faces) == 0 {
		return false
	}
	for _, f := range m.faces {
		for _, c := range f {
			if c.UV < 0 {
				return false
			}
		}
	}
	return true
}
