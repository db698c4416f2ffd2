package math3d

import "math"

// RandomUnitVector returns a direction uniformly distributed on the unit
// sphere.
func RandomUnitVector(rng *Rand) Vec3 {
	z := 1 - 2*rng.Float64()
	phi := 2 * math.Pi * rng.Float64()
	r := math.Sqrt(math.Max(0, 1-z*z))
	return Vec3{r * math.Cos(phi), r * math.Sin(phi), z}
}

// RandomHemisphere returns a direction uniformly distributed over the
// hemisphere around n. Samples from the opposite side are flipped.
func RandomHemisphere(n Vec3, rng *Rand) Vec3 {
	v := RandomUnitVector(rng)
	if v.Dot(n) < 0 {
		return v.Negate()
	}
	return v
}

// RandomCosineDirection returns a cosine-weighted direction in the
// hemisphere around +Z.
func RandomCosineDirection(rng *Rand) Vec3 {
	r1, r2 := rng.Float64(), rng.Float64()
	phi := 2 * math.Pi * r1
	s := math.Sqrt(r2)
	return Vec3{
		math.Cos(phi) * s,
		math.Sin(phi) * s,
		math.Sqrt(1 - r2),
	}
}

// RandomHemisphereCosine returns a cosine-weighted direction in the
// hemisphere around the unit normal n.
func RandomHemisphereCosine(n Vec3, rng *Rand) Vec3 {
	t, b := Basis(n)
	d := RandomCosineDirection(rng)
	return t.Scale(d.X).Add(b.Scale(d.Y)).Add(n.Scale(d.Z))
}

// RandomSignedHemisphere returns a cosine-weighted +Z hemisphere sample
// multiplied by a random sign. The result covers the whole sphere but
// concentrates around the Z axis; it is not a uniform sphere sampler.
func RandomSignedHemisphere(rng *Rand) Vec3 {
	return RandomCosineDirection(rng).Scale(rng.Sign())
}

// RandomInUnitDisk returns a point uniformly distributed in the unit disk
// (z = 0), using a square-root radius.
func RandomInUnitDisk(rng *Rand) Vec3 {
	r := math.Sqrt(rng.Float64())
	theta := 2 * math.Pi * rng.Float64()
	return Vec3{r * math.Cos(theta), r * math.Sin(theta), 0}
}

// Basis returns two unit vectors t and b such that (t, b, n) is a
// right-handed orthonormal frame. n must be unit length.
func Basis(n Vec3) (t, b Vec3) {
	sign := math.Copysign(1, n.Z)
	a := -1 / (sign + n.Z)
	c := n.X * n.Y * a
	t = Vec3{1 + sign*n.X*n.X*a, sign * c, -sign * n.X}
	b = Vec3{c, sign + n.Y*n.Y*a, -n.Y}
	return t, b
}
