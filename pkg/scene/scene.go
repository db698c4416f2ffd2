package scene

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/material"
	"github.com/taigrr/lumen/pkg/math3d"
)

// ErrUnknownScene is returned by Builtin for an unregistered name.
var ErrUnknownScene = errors.New("unknown scene")

// View is where a scene expects to be looked at from. FOV is horizontal,
// in radians.
type View struct {
	Position      math3d.Vec3
	LookAt        math3d.Vec3
	Up            math3d.Vec3
	FOV           float64
	FocalDistance float64
	Aperture      float64
}

// Forward returns the unit viewing direction.
func (v View) Forward() math3d.Vec3 {
	return v.LookAt.Sub(v.Position).Normalize()
}

// Scene is an immutable description handed to the renderer.
type Scene struct {
	Name        string
	Description string
	Root        Object
	View        View
	Background  string
	Depth       int
}

var builtins = map[string]func() Scene{
	"cornell": Cornell,
	"planes":  Planes,
	"fog":     Fog,
	"spheres": Spheres,
}

// Names lists the built-in scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Builtin constructs the named built-in scene.
func Builtin(name string) (Scene, error) {
	build, ok := builtins[strings.ToLower(name)]
	if !ok {
		return Scene{}, fmt.Errorf("%w: %q (have %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	return build(), nil
}

var (
	white = math3d.One3()
	red   = math3d.V3(0.71, 0, 0)
	green = math3d.V3(0, 0.71, 0)
)

// Cornell is a closed-back box of quads with a rectangular ceiling light,
// a mirror ball and a glass block.
func Cornell() Scene {
	const f = 1.01 // extends each wall slightly past the box edge
	x, y, z := math3d.UnitX(), math3d.UnitY(), math3d.UnitZ()
	wall := material.LambertCos(0.8)

	at := func(base math3d.Vec3, u, v float64, du, dv math3d.Vec3) math3d.Vec3 {
		return base.Add(du.Scale(u * f)).Add(dv.Scale(v * f))
	}

	floor := Square(
		at(y.Negate(), 1, 1, z, x), at(y.Negate(), 1, -1, z, x),
		at(y.Negate(), -1, -1, z, x), at(y.Negate(), -1, 1, z, x),
		wall, white)
	ceiling := Square(
		at(y, 1, 1, z, x), at(y, -1, 1, z, x),
		at(y, -1, -1, z, x), at(y, 1, -1, z, x),
		wall, white)
	left := Square(
		at(x, 1, -1, y, z), at(x, 1, 1, y, z),
		at(x, -1, 1, y, z), at(x, -1, -1, y, z),
		wall, red)
	right := Square(
		at(x.Negate(), 1, 1, y, z), at(x.Negate(), 1, -1, y, z),
		at(x.Negate(), -1, -1, y, z), at(x.Negate(), -1, 1, y, z),
		wall, green)
	back := Square(
		z.Add(x.Add(y).Scale(1.05)), at(z, -1, 1, x, y),
		at(z, -1, -1, x, y), at(z, 1, -1, x, y),
		wall, white)

	lamp := y.Scale(0.99)
	light := Square(
		lamp.Add(z.Add(x).Scale(0.6)), lamp.Add(x.Sub(z).Scale(0.6)),
		lamp.Add(z.Add(x).Scale(-0.6)), lamp.Add(z.Sub(x).Scale(0.6)),
		material.Light(6), math3d.V3(1, 0.776, 0.4))

	mirrorBall := NewObject(geometry.NewSphere(math3d.V3(0.45, -0.7, 0), 0.3), material.Mirror(1), white)

	const s = 0.2828
	glassBlock := Cuboid(
		math3d.V3(-0.45, -0.65, -0.2),
		y.Scale(0.7),
		math3d.V3(3*s, 0, s).Scale(0.5),
		math3d.V3(-s, 0, 3*s).Scale(0.5),
		material.Glass(1.54), white)

	pos := math3d.V3(0, 0, -3.1)
	return Scene{
		Name:        "cornell",
		Description: "quad Cornell box, ceiling panel light, mirror ball, glass block",
		Root:        NewList(floor, ceiling, left, right, back, light, mirrorBall, glassBlock),
		View: View{
			Position:      pos,
			LookAt:        math3d.Zero3(),
			Up:            y,
			FOV:           math.Pi / 3,
			FocalDistance: pos.Len(),
		},
		Background: "black",
		Depth:      12,
	}
}

// planeBox is a box of infinite planes one unit from the origin, open
// toward -Z, lit by a warm sphere.
func planeBox() []Object {
	wall := material.LambertCos(0.8)
	x, y, z := math3d.UnitX(), math3d.UnitY(), math3d.UnitZ()
	return []Object{
		NewObject(geometry.NewPlaneOffset(y, -1), wall, white),
		NewObject(geometry.NewPlaneOffset(y.Negate(), -1), wall, white),
		NewObject(geometry.NewPlaneOffset(x.Negate(), -1), wall, red),
		NewObject(geometry.NewPlaneOffset(x, -1), wall, green),
		NewObject(geometry.NewPlaneOffset(z.Negate(), -1), wall, white),
		NewObject(geometry.NewSphere(y, 0.6), material.Light(3), math3d.V3(0.859, 0.776, 0.569)),
	}
}

// Planes is the box built from planes with a mirror ball and a glass ball.
func Planes() Scene {
	objects := append(planeBox(),
		NewObject(geometry.NewSphere(math3d.V3(0.45, -0.7, 0), 0.3), material.Mirror(1), white),
		NewObject(geometry.NewSphere(math3d.V3(-0.45, -0.6, -0.2), 0.4), material.Glass(1.54), white),
	)
	return Scene{
		Name:        "planes",
		Description: "box of infinite planes, sphere light, mirror and glass balls",
		Root:        NewList(objects...),
		View: View{
			Position:      math3d.V3(0, 0, -0.99),
			LookAt:        math3d.Zero3(),
			Up:            math3d.UnitY(),
			FOV:           math.Pi / 2,
			FocalDistance: 1,
		},
		Background: "black",
		Depth:      12,
	}
}

// Fog fills the plane box with a forward-scattering medium.
func Fog() Scene {
	sc := Planes()
	sc.Name = "fog"
	sc.Description = "plane box filled with a Henyey-Greenstein medium"
	sc.Root.Add(NewMedium(1, material.Scatter(0.65), white))
	sc.Depth = 8
	return sc
}

// Spheres is an outdoor test scene: glass ball, diffuse block, tinted
// mirror, floor plane and a distant one-sided light under a sky.
func Spheres() Scene {
	x, y, z := math3d.UnitX(), math3d.UnitY(), math3d.UnitZ()
	glass := NewObject(geometry.NewSphere(x, 1), material.Glass(1.54), white)
	block := Cuboid(
		math3d.V3(-1, -0.25, 0),
		y.Scale(1.5), x.Scale(1.5), z.Scale(1.5),
		material.LambertCos(0.9), math3d.V3(1, 1, 0))
	mirror := NewObject(
		geometry.NewSphere(x.Scale(-3).Sub(y.Scale(0.2)), 0.8),
		material.Mirror(0.95), math3d.V3(0.8, 0.4, 0.4))
	floor := NewObject(
		geometry.NewPlane(y, y.Negate()),
		material.LambertCos(0.9), math3d.V3(0.3, 0.25, 0.25))
	sun := NewObject(
		geometry.NewSphere(z.Scale(40).Add(x.Scale(6)).Sub(y.Scale(0.5)), 0.5),
		material.LightUni(4), math3d.V3(0, 173, 223).Scale(1.0/255))

	pos := math3d.V3(4, 0.6, -8)
	return Scene{
		Name:        "spheres",
		Description: "glass, diffuse block and mirror on a floor under a sky",
		Root:        NewList(glass, block, mirror, floor, sun),
		View: View{
			Position:      pos,
			LookAt:        math3d.Zero3(),
			Up:            y,
			FOV:           math.Pi / 3,
			FocalDistance: pos.Len(),
			Aperture:      0.1,
		},
		Background: "sky",
		Depth:      5,
	}
}
