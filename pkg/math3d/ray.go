package math3d

// Ray is a half-line. Direction is not normalised by the type; callers
// that need a unit direction normalise before constructing.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a ray.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At evaluates the ray at parameter t.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
