package models

import (
	"testing"
)

// TestFaceMaterialIndex verifies per-face material assignment.
func TestFaceMaterialIndex(t *testing.T) {
	mesh := NewMesh("test")

	mesh.Materials = []Material{
		{Name: "red", BaseColor: [4]float64{1, 0, 0, 1}},
		{Name: "green", BaseColor: [4]float64{0, 1, 0, 1}},
	}
	mesh.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{3, 4, 5}, Material: 1},
		{V: [3]int{6, 7, 8}, Material: -1},
	}

	tests := []struct {
		face int
		want string
	}{
		{0, "red"},
		{1, "green"},
		{2, ""},
	}
	for _, tt := range tests {
		mat := mesh.GetMaterial(mesh.Faces[tt.face].Material)
		got := ""
		if mat != nil {
			got = mat.Name
		}
		if got != tt.want {
			t.Errorf("face %d material = %q, want %q", tt.face, got, tt.want)
		}
	}

	if mesh.GetMaterial(5) != nil {
		t.Error("GetMaterial(5) should be nil for out-of-range index")
	}
	if mesh.MaterialCount() != 2 {
		t.Errorf("MaterialCount() = %d, want 2", mesh.MaterialCount())
	}
}

// TestCloneIndependent verifies Clone deep-copies its slices.
func TestCloneIndependent(t *testing.T) {
	mesh := NewMesh("orig")
	mesh.Materials = []Material{{Name: "a"}}
	mesh.Faces = []Face{{V: [3]int{0, 1, 2}}}

	c := mesh.Clone()
	c.Materials[0].Name = "b"
	c.Faces[0].Material = 7

	if mesh.Materials[0].Name != "a" {
		t.Error("Clone shares Materials with original")
	}
	if mesh.Faces[0].Material != 0 {
		t.Error("Clone shares Faces with original")
	}
}
