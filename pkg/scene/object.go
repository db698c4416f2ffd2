// Package scene assembles shapes and materials into the object tree the
// tracer intersects, and ships the built-in scenes.
package scene

import (
	"fmt"
	"math"

	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/material"
	"github.com/taigrr/lumen/pkg/math3d"
)

// Kind identifies the variant held by an Object.
type Kind uint8

const (
	// KindSingle is one shape with a material and colour.
	KindSingle Kind = iota
	// KindCollection is many shapes sharing one material and colour.
	KindCollection
	// KindList is an ordered list of heterogeneous objects.
	KindList
	// KindMedium is a homogeneous participating medium with no boundary.
	KindMedium
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindCollection:
		return "collection"
	case KindList:
		return "list"
	case KindMedium:
		return "medium"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// ObjectHit is a resolved intersection with everything needed to shade it.
type ObjectHit struct {
	Dist     float64
	Point    math3d.Vec3
	Normal   math3d.Vec3
	Material material.Material
	Color    math3d.Vec3
}

// Object is a closed sum over the scene node kinds. Shape is used by
// Single, Shapes by Collection, Objects by List and Density by Medium.
// Material and Color apply to every kind except List.
//
// Objects are read-only once rendering starts and may be shared between
// goroutines.
type Object struct {
	Kind     Kind
	Shape    geometry.Shape
	Shapes   []geometry.Shape
	Objects  []Object
	Density  float64
	Material material.Material
	Color    math3d.Vec3
}

// NewObject wraps a single shape.
func NewObject(s geometry.Shape, m material.Material, color math3d.Vec3) Object {
	return Object{Kind: KindSingle, Shape: s, Material: m, Color: color}
}

// NewCollection wraps shapes that share a material, such as a mesh.
func NewCollection(shapes []geometry.Shape, m material.Material, color math3d.Vec3) Object {
	return Object{Kind: KindCollection, Shapes: shapes, Material: m, Color: color}
}

// NewList groups objects; the nearest hit among them wins.
func NewList(objects ...Object) Object {
	return Object{Kind: KindList, Objects: objects}
}

// NewMedium creates a participating medium of the given density.
func NewMedium(density float64, m material.Material, color math3d.Vec3) Object {
	if density <= 0 {
		math3d.Degenerate("medium density <= 0")
		density = math.SmallestNonzeroFloat64
	}
	return Object{Kind: KindMedium, Density: density, Material: m, Color: color}
}

// Add appends objects to a list.
func (o *Object) Add(objects ...Object) {
	o.Objects = append(o.Objects, objects...)
}

// Primitives counts the shapes under o. A medium counts as one.
func (o Object) Primitives() int {
	switch o.Kind {
	case KindSingle, KindMedium:
		return 1
	case KindCollection:
		return len(o.Shapes)
	case KindList:
		n := 0
		for _, c := range o.Objects {
			n += c.Primitives()
		}
		return n
	default:
		return 0
	}
}

// Intersect returns the nearest hit along ray. Only media consume
// randomness. Ties keep the first object encountered.
func (o Object) Intersect(ray math3d.Ray, rng *math3d.Rand) (ObjectHit, bool) {
	switch o.Kind {
	case KindSingle:
		h, ok := o.Shape.Intersect(ray)
		if !ok {
			return ObjectHit{}, false
		}
		return o.resolve(h), true

	case KindCollection:
		var best geometry.Hit
		found := false
		for _, s := range o.Shapes {
			if h, ok := s.Intersect(ray); ok && (!found || h.Dist < best.Dist) {
				best, found = h, true
			}
		}
		if !found {
			return ObjectHit{}, false
		}
		return o.resolve(best), true

	case KindList:
		var best ObjectHit
		found := false
		for _, c := range o.Objects {
			if h, ok := c.Intersect(ray, rng); ok && (!found || h.Dist < best.Dist) {
				best, found = h, true
			}
		}
		return best, found

	case KindMedium:
		dist := FreePath(o.Density, rng)
		return ObjectHit{
			Dist:     dist,
			Point:    ray.At(dist),
			Normal:   ray.Direction,
			Material: o.Material,
			Color:    o.Color,
		}, true

	default:
		return ObjectHit{}, false
	}
}

func (o Object) resolve(h geometry.Hit) ObjectHit {
	return ObjectHit{
		Dist:     h.Dist,
		Point:    h.Point,
		Normal:   h.Normal,
		Material: o.Material,
		Color:    o.Color,
	}
}

// FreePath samples the distance to the next interaction in a homogeneous
// medium: -ln(1-U)/density.
func FreePath(density float64, rng *math3d.Rand) float64 {
	return -math.Log1p(-rng.Float64()) / density
}
