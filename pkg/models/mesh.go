// Package models provides colored triangle meshes and their loaders.
package models

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// White is the vertex color used when a model carries none.
var White = math3d.RGBA(255, 255, 255, 255)

// Mesh represents a 3D mesh with colored vertices, faces, and materials.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Color    math3d.Vec4 // RGBA in 0-255 range
}

// Face represents a triangle face with vertex indices and material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is the part of a PBR material the rasterizer can show.
type Material struct {
	Name      string
	BaseColor [4]float64 // RGBA factor in 0-1 range
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Transform applies a transformation matrix to all vertex positions.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.TransformPoint(m.Vertices[i].Position)
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it so its largest dimension
// equals extent.
func (m *Mesh) Fit(extent float64) {
	m.CalculateBounds()
	size := m.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim == 0 {
		return
	}
	center := m.Center().Scale(-1)
	m.Transform(math3d.ScaleUniform(extent / maxDim).Mul(math3d.Translation(math3d.V4FromV3(center, 1))))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// VertexColor returns the color of corner k of face i: the vertex color
// multiplied by the face material's base color factor.
func (m *Mesh) VertexColor(i, k int) math3d.Vec4 {
	f := m.Faces[i]
	c := m.Vertices[f.V[k]].Color
	if mat := m.GetMaterial(f.Material); mat != nil {
		b := mat.BaseColor
		c = c.Mul(math3d.V4(b[0], b[1], b[2], b[3]))
	}
	return c
}

// Draw fills every face.
func (m *Mesh) Draw(t render.Target) {
	for i, f := range m.Faces {
		t.DrawTriangle3D(
			m.VertexColor(i, 0), m.Vertices[f.V[0]].Position.Point(),
			m.VertexColor(i, 1), m.Vertices[f.V[1]].Position.Point(),
			m.VertexColor(i, 2), m.Vertices[f.V[2]].Position.Point(),
		)
	}
}

// Outline draws the three edges of every face.
func (m *Mesh) Outline(t render.Target) {
	for i, f := range m.Faces {
		for k := range 3 {
			a, b := f.V[k], f.V[(k+1)%3]
			t.DrawLine3D(
				m.VertexColor(i, k), m.Vertices[a].Position.Point(),
				m.VertexColor(i, (k+1)%3), m.Vertices[b].Position.Point(),
			)
		}
	}
}
