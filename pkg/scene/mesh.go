package scene

import (
	"math"

	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/material"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
)

// MeshOptions controls how a mesh becomes scene objects.
type MeshOptions struct {
	// Material replaces every file material when set.
	Material *material.Material
	// Tint multiplies every face colour.
	Tint math3d.Vec3
	// Scale multiplies the fitted size; zero means 1.
	Scale float64
	// Yaw turns the mesh about the vertical axis, in radians.
	Yaw float64
}

// FromMesh converts a mesh into one triangle Collection per material
// group, wrapped in a List. Degenerate faces are dropped. Metallic file
// materials become mirrors; everything else is diffuse.
func FromMesh(m *models.Mesh, opts MeshOptions) Object {
	tint := opts.Tint
	if tint == (math3d.Vec3{}) {
		tint = math3d.One3()
	}

	groups := map[int][]geometry.Shape{}
	var order []int
	for i, f := range m.Faces {
		if m.Degenerate(i) {
			continue
		}
		if _, ok := groups[f.Material]; !ok {
			order = append(order, f.Material)
		}
		a, b, c := m.Triangle(i)
		groups[f.Material] = append(groups[f.Material], geometry.NewTriangle(a, b, c))
	}

	list := NewList()
	for _, idx := range order {
		mat, color := meshMaterial(m.GetMaterial(idx))
		if opts.Material != nil {
			mat = *opts.Material
		}
		list.Add(NewCollection(groups[idx], mat, color.Mul(tint)))
	}
	return list
}

func meshMaterial(src *models.Material) (material.Material, math3d.Vec3) {
	if src == nil {
		return material.LambertCos(0.8), math3d.One3()
	}
	color := math3d.V3(src.BaseColor[0], src.BaseColor[1], src.BaseColor[2])
	if src.Metallic >= 0.5 {
		return material.Mirror(1 - 0.5*src.Roughness), color
	}
	return material.LambertCos(0.8), color
}

// MeshScene places a mesh on a floor under the sky, fitted into a two
// unit box resting on the floor, then scaled and turned by opts.
func MeshScene(m *models.Mesh, opts MeshOptions) Scene {
	m = m.Clone()
	base := math3d.V3(0, -1, 0)
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	fit := m.FitTransform(2, math3d.Zero3())
	m.Transform(math3d.Placement(base, scale, opts.Yaw).Mul(fit))

	y := math3d.UnitY()
	floor := NewObject(
		geometry.NewPlane(y, base),
		material.LambertCos(0.9), math3d.V3(0.3, 0.25, 0.25))
	sun := NewObject(
		geometry.NewSphere(math3d.V3(-20, 20, -20), 2),
		material.LightUni(4), math3d.V3(1, 0.95, 0.85))

	pos := math3d.V3(0, 0.5, -4.5)
	return Scene{
		Name:        "mesh",
		Description: "mesh " + m.Name + " on a floor under a sky",
		Root:        NewList(floor, sun, FromMesh(m, opts)),
		View: View{
			Position:      pos,
			LookAt:        math3d.Zero3(),
			Up:            y,
			FOV:           math.Pi / 3,
			FocalDistance: pos.Len(),
		},
		Background: "sky",
		Depth:      6,
	}
}
