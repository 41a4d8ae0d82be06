package vox

import (
	"errors"
	"math"
)

const (
	// VerticesPerVoxel is six faces of two triangles each.
	VerticesPerVoxel = 36
	PositionStride   = 3
	ColorStride      = 4
)

type faceSpec struct {
	name    string
	normal  [3]float32
	corners [6][3]float32
}

// faces lists the unit-cube faces in emission order. Every triangle is
// counter-clockwise when seen from outside the cube.
var faces = [6]faceSpec{
	{"bottom", [3]float32{0, 0, -1}, [6][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}}},
	{"top", [3]float32{0, 0, 1}, [6][3]float32{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	{"front", [3]float32{0, -1, 0}, [6][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	{"back", [3]float32{0, 1, 0}, [6][3]float32{{0, 1, 0}, {0, 1, 1}, {1, 1, 0}, {1, 1, 0}, {0, 1, 1}, {1, 1, 1}}},
	{"left", [3]float32{-1, 0, 0}, [6][3]float32{{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {0, 1, 0}, {0, 0, 1}, {0, 1, 1}}},
	{"right", [3]float32{1, 0, 0}, [6][3]float32{{1, 0, 0}, {1, 1, 0}, {1, 0, 1}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
}

// Mesh is a flat, non-indexed triangle list ready for a rasterizer.
// Positions holds 3 floats per vertex, Colors 4 normalized floats per vertex.
type Mesh struct {
	Positions []float32
	Colors    []float32
}

func (m *Mesh) VertexCount() int { return len(m.Positions) / PositionStride }

// BuildMesh expands every voxel into a unit cube of 36 vertices, in voxel
// order, colored from the palette. Adjacent faces are not culled.
// Any voxel with an unusable color index, or outside the model size when
// opts.Strict is set and the model has a size, fails the whole build.
func BuildMesh(model *Model, opts Options) (*Mesh, error) {
	n := len(model.Voxels)
	mesh := &Mesh{
		Positions: make([]float32, 0, n*VerticesPerVoxel*PositionStride),
		Colors:    make([]float32, 0, n*VerticesPerVoxel*ColorStride),
	}
	for i, v := range model.Voxels {
		if opts.Strict && model.HasSize && !model.Contains(v) {
			return nil, newError(ErrRange, IDXYZI, 0, "voxel %d at (%d,%d,%d) outside size %dx%dx%d",
				i, v.X, v.Y, v.Z, model.Size.X, model.Size.Y, model.Size.Z)
		}
		c, err := model.ColorOf(v, opts.IndexBase)
		if errors.Is(err, ErrRange) {
			return nil, newError(ErrRange, IDXYZI, 0, "voxel %d: color index %d invalid for %s palette", i, v.ColorIndex, opts.IndexBase)
		}
		if err != nil {
			return nil, err
		}
		rgba := c.Normalized()
		x, y, z := float32(v.X), float32(v.Y), float32(v.Z)
		for _, f := range faces {
			for _, p := range f.corners {
				mesh.Positions = append(mesh.Positions, x+p[0], y+p[1], z+p[2])
				mesh.Colors = append(mesh.Colors, rgba[0], rgba[1], rgba[2], rgba[3])
			}
		}
	}
	return mesh, nil
}

// FlatNormals returns one normal per vertex, shared by the three vertices
// of each triangle.
func (m *Mesh) FlatNormals() [][3]float32 {
	normals := make([][3]float32, m.VertexCount())
	for i := 0; i+2 < len(normals); i += 3 {
		p0, p1, p2 := m.Vertex(i), m.Vertex(i+1), m.Vertex(i+2)
		vec1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		vec2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		cross := [3]float32{
			vec1[1]*vec2[2] - vec1[2]*vec2[1],
			vec1[2]*vec2[0] - vec1[0]*vec2[2],
			vec1[0]*vec2[1] - vec1[1]*vec2[0],
		}
		length := float32(math.Sqrt(float64(cross[0]*cross[0] + cross[1]*cross[1] + cross[2]*cross[2])))
		if length > 0 {
			cross[0] /= length
			cross[1] /= length
			cross[2] /= length
		}
		normals[i], normals[i+1], normals[i+2] = cross, cross, cross
	}
	return normals
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) [3]float32 {
	p := m.Positions[i*PositionStride:]
	return [3]float32{p[0], p[1], p[2]}
}

// VertexColor returns the RGBA color of vertex i.
func (m *Mesh) VertexColor(i int) [4]float32 {
	c := m.Colors[i*ColorStride:]
	return [4]float32{c[0], c[1], c[2], c[3]}
}

// HasAlpha reports whether any vertex is not fully opaque.
func (m *Mesh) HasAlpha() bool {
	for i := ColorStride - 1; i < len(m.Colors); i += ColorStride {
		if m.Colors[i] < 1 {
			return true
		}
	}
	return false
}
