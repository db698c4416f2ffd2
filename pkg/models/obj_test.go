package models

import (
	"math"
	"strings"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

const quadOBJ = `# unit quad in the XY plane
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
usemtl white
f 1 2 3 4
`

func TestParseOBJQuad(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.Name != "quad" {
		t.Errorf("Name = %q, want quad", mesh.Name)
	}
	if mesh.VertexCount() != 4 {
		t.Errorf("VertexCount() = %d, want 4", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 2 {
		t.Fatalf("TriangleCount() = %d, want 2", mesh.TriangleCount())
	}
	if mesh.Faces[1].V != [3]int{0, 2, 3} {
		t.Errorf("second fan face = %v, want [0 2 3]", mesh.Faces[1].V)
	}
	if mesh.Faces[0].Material != 0 || mesh.Materials[0].Name != "white" {
		t.Errorf("face material = %d (%v), want 0 (white)", mesh.Faces[0].Material, mesh.Materials)
	}

	// CCW in XY seen from +Z.
	for i := range mesh.Faces {
		a, b, c := mesh.Triangle(i)
		if n := b.Sub(a).Cross(c.Sub(a)).Normalize(); math.Abs(n.Z-1) > 1e-9 {
			t.Errorf("face %d normal = %v, want +Z", i, n)
		}
	}
}

func TestParseOBJIndexForms(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1 -2//2 -1\n"
	mesh, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.Faces[0].V != [3]int{0, 1, 2} {
		t.Errorf("face = %v, want [0 1 2]", mesh.Faces[0].V)
	}
	if mesh.Faces[0].Material != -1 {
		t.Errorf("material = %d, want -1", mesh.Faces[0].Material)
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad float", "v 1 x 2\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"out of range", "v 0 0 0\nf 1 2 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tt.src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFitTransform(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	base := math3d.V3(3, -1, 2)
	mesh.Transform(mesh.FitTransform(4, base))

	if got := mesh.Size().MaxComponent(); math.Abs(got-4) > 1e-9 {
		t.Errorf("fitted size = %v, want 4", got)
	}
	if math.Abs(mesh.BoundsMin.Y-base.Y) > 1e-9 {
		t.Errorf("BoundsMin.Y = %v, want %v", mesh.BoundsMin.Y, base.Y)
	}
	c := mesh.Center()
	if math.Abs(c.X-base.X) > 1e-9 || math.Abs(c.Z-base.Z) > 1e-9 {
		t.Errorf("center = %v, want X/Z over %v", c, base)
	}
}

func TestDegenerateFace(t *testing.T) {
	mesh := NewMesh("line")
	mesh.Vertices = []MeshVertex{
		{Position: math3d.V3(0, 0, 0)},
		{Position: math3d.V3(1, 0, 0)},
		{Position: math3d.V3(2, 0, 0)},
	}
	mesh.Faces = []Face{{V: [3]int{0, 1, 2}}}
	if !mesh.Degenerate(0) {
		t.Error("collinear face should be degenerate")
	}
}
