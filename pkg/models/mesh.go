// Package models loads triangle meshes from model files so they can be
// placed into a scene as triangle collections.
package models

import (
	"github.com/taigrr/lumen/pkg/math3d"
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds the attributes the tracer uses. Faces are shaded flat,
// so only the position is kept.
type MeshVertex struct {
	Position math3d.Vec3
}

// Face is a triangle. V is wound counter-clockwise seen from outside, so
// cross(V1-V0, V2-V0) points out of the surface.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is the subset of a glTF PBR material lumen maps onto its own
// materials.
type Material struct {
	Name      string
	BaseColor [4]float64 // RGBA in 0-1 range
	Metallic  float64    // 0 = dielectric, 1 = metal
	Roughness float64    // 0 = smooth, 1 = rough
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
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

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// GetMaterial returns the material at index i, or nil for -1 or an
// out-of-range index.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// Triangle returns the corner positions of face i.
func (m *Mesh) Triangle(i int) (a, b, c math3d.Vec3) {
	f := m.Faces[i]
	return m.Vertices[f.V[0]].Position, m.Vertices[f.V[1]].Position, m.Vertices[f.V[2]].Position
}

// Degenerate reports whether face i has (near) zero area.
func (m *Mesh) Degenerate(i int) bool {
	a, b, c := m.Triangle(i)
	return b.Sub(a).Cross(c.Sub(a)).LenSq() < 1e-20
}

// Transform applies an affine transform to every vertex.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulPoint(m.Vertices[i].Position)
	}
	m.CalculateBounds()
}

// FitTransform returns the transform that scales the mesh so its largest
// dimension equals size, centres it on X and Z over base, and rests its
// lowest point on base.Y.
func (m *Mesh) FitTransform(size float64, base math3d.Vec3) math3d.Mat4 {
	m.CalculateBounds()
	dims := m.Size()
	maxDim := dims.MaxComponent()
	scale := 1.0
	if maxDim > 0 {
		scale = size / maxDim
	}
	c := m.Center()
	pivot := math3d.V3(c.X, m.BoundsMin.Y, c.Z)
	return math3d.Translate(base).Mul(math3d.ScaleUniform(scale)).Mul(math3d.Translate(pivot.Negate()))
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
