// Package geometry implements analytic ray intersection for the
// primitive shapes lumen scenes are built from.
package geometry

import (
	"fmt"
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

const (
	// Epsilon gates every denominator and rejects hits at or behind the
	// ray origin.
	Epsilon = 1e-6

	// EdgeTolerance widens the triangle inside test so rays crossing a
	// shared edge are not lost to rounding.
	EdgeTolerance = 1e-9
)

// Kind identifies the variant held by a Shape.
type Kind uint8

const (
	KindTriangle Kind = iota
	KindSphere
	KindPlane
)

func (k Kind) String() string {
	switch k {
	case KindTriangle:
		return "triangle"
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Hit describes where a ray met a shape.
type Hit struct {
	Dist   float64
	Point  math3d.Vec3
	Normal math3d.Vec3
}

// Shape is a closed sum over the supported primitives. Which fields are
// meaningful depends on Kind:
//
//	Triangle: A, B, C, Normal (unit, cross(B-A, C-A))
//	Sphere:   Center, Radius
//	Plane:    Normal (unit), Offset (Normal·p for any p on the plane)
type Shape struct {
	Kind   Kind
	A      math3d.Vec3
	B      math3d.Vec3
	C      math3d.Vec3
	Normal math3d.Vec3
	Center math3d.Vec3
	Radius float64
	Offset float64
}

// NewTriangle creates a single-sided triangle facing cross(b-a, c-a).
func NewTriangle(a, b, c math3d.Vec3) Shape {
	return Shape{
		Kind:   KindTriangle,
		A:      a,
		B:      b,
		C:      c,
		Normal: b.Sub(a).Cross(c.Sub(a)).Normalize(),
	}
}

// NewSphere creates a sphere.
func NewSphere(center math3d.Vec3, radius float64) Shape {
	if radius <= 0 {
		math3d.Degenerate("sphere radius <= 0")
	}
	return Shape{Kind: KindSphere, Center: center, Radius: radius}
}

// NewPlane creates the plane through point with the given normal.
func NewPlane(normal, point math3d.Vec3) Shape {
	n := normal.Normalize()
	return Shape{Kind: KindPlane, Normal: n, Offset: n.Dot(point)}
}

// NewPlaneOffset creates the plane {p : normal·p = offset}.
func NewPlaneOffset(normal math3d.Vec3, offset float64) Shape {
	return Shape{Kind: KindPlane, Normal: normal.Normalize(), Offset: offset}
}

// Intersect returns the nearest hit in front of the ray origin.
func (s Shape) Intersect(ray math3d.Ray) (Hit, bool) {
	switch s.Kind {
	case KindTriangle:
		return s.intersectTriangle(ray)
	case KindSphere:
		return s.intersectSphere(ray)
	case KindPlane:
		return s.intersectPlane(ray)
	default:
		return Hit{}, false
	}
}

func (s Shape) intersectTriangle(ray math3d.Ray) (Hit, bool) {
	denom := s.Normal.Dot(ray.Direction)
	// Single-sided: parallel and back-facing rays both miss.
	if denom > -Epsilon {
		return Hit{}, false
	}

	t := (s.Normal.Dot(s.A) - s.Normal.Dot(ray.Origin)) / denom
	if t <= Epsilon {
		return Hit{}, false
	}

	p := ray.At(t)
	if s.Normal.Dot(p.Sub(s.A).Cross(s.B.Sub(s.A))) > EdgeTolerance ||
		s.Normal.Dot(p.Sub(s.B).Cross(s.C.Sub(s.B))) > EdgeTolerance ||
		s.Normal.Dot(p.Sub(s.C).Cross(s.A.Sub(s.C))) > EdgeTolerance {
		return Hit{}, false
	}

	return Hit{Dist: t, Point: p, Normal: s.Normal}, true
}

func (s Shape) intersectSphere(ray math3d.Ray) (Hit, bool) {
	oc := ray.Origin.Sub(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	if a < Epsilon {
		return Hit{}, false
	}
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < Epsilon {
		return Hit{}, false
	}
	sq := math.Sqrt(disc)

	t := (-b - sq) / (2 * a)
	if t <= Epsilon {
		t = (-b + sq) / (2 * a)
		if t <= Epsilon {
			return Hit{}, false
		}
	}

	p := ray.At(t)
	return Hit{Dist: t, Point: p, Normal: p.Sub(s.Center).Div(s.Radius)}, true
}

func (s Shape) intersectPlane(ray math3d.Ray) (Hit, bool) {
	denom := s.Normal.Dot(ray.Direction)
	if math.Abs(denom) < Epsilon {
		return Hit{}, false
	}

	t := (s.Offset - s.Normal.Dot(ray.Origin)) / denom
	if t <= 0 {
		return Hit{}, false
	}

	return Hit{Dist: t, Point: ray.At(t), Normal: s.Normal}, true
}
