package scene

import (
	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/material"
	"github.com/taigrr/lumen/pkg/math3d"
)

// SquareShapes splits the quad a, b, c, d into triangles (a, d, b) and
// (b, d, c). With the corners listed clockwise as seen from the viewer,
// both triangles face the viewer.
func SquareShapes(a, b, c, d math3d.Vec3) []geometry.Shape {
	return []geometry.Shape{
		geometry.NewTriangle(a, d, b),
		geometry.NewTriangle(b, d, c),
	}
}

// Square is a two-triangle quad object.
func Square(a, b, c, d math3d.Vec3, m material.Material, color math3d.Vec3) Object {
	return NewCollection(SquareShapes(a, b, c, d), m, color)
}

// CuboidShapes builds the twelve outward-facing triangles of the
// parallelepiped spanned by up, side1 and side2 from corner.
func CuboidShapes(corner, up, side1, side2 math3d.Vec3) []geometry.Shape {
	center := corner.Add(up.Add(side1).Add(side2).Scale(0.5))
	faces := [][2]math3d.Vec3{
		{side1, side2},
		{side1, up},
		{side2, up},
	}
	shapes := make([]geometry.Shape, 0, 12)
	for _, f := range faces {
		u, v := f[0], f[1]
		// The face spanned by u, v and its opposite, offset by the third edge.
		third := up.Add(side1).Add(side2).Sub(u).Sub(v)
		for _, base := range []math3d.Vec3{corner, corner.Add(third)} {
			a, b := base, base.Add(u)
			c, d := base.Add(u).Add(v), base.Add(v)
			quad := SquareShapes(a, b, c, d)
			// Flip both triangles if they face the centre.
			if quad[0].Normal.Dot(center.Sub(a)) > 0 {
				quad = SquareShapes(a, d, c, b)
			}
			shapes = append(shapes, quad...)
		}
	}
	return shapes
}

// Cuboid is a closed box object.
func Cuboid(corner, up, side1, side2 math3d.Vec3, m material.Material, color math3d.Vec3) Object {
	return NewCollection(CuboidShapes(corner, up, side1, side2), m, color)
}
