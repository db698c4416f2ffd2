package material

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Reflect mirrors v about n: v - 2(v·n)n.
func Reflect(v, n math3d.Vec3) math3d.Vec3 {
	return v.Reflect(n)
}

// Refract bends the unit vector v through an interface with unit normal n
// facing against v, where ratio is n_incident / n_transmitted. It reports
// false under total internal reflection.
func Refract(v, n math3d.Vec3, ratio float64) (math3d.Vec3, bool) {
	dt := v.Dot(n)
	disc := 1 - ratio*ratio*(1-dt*dt)
	if disc <= 0 {
		return math3d.Vec3{}, false
	}
	return v.Add(n.Scale(math.Abs(dt))).Scale(ratio).Sub(n.Scale(math.Sqrt(disc))), true
}

// Schlick approximates Fresnel reflectance for a dielectric of index n at
// an angle with the given cosine.
func Schlick(cos, n float64) float64 {
	r0 := (1 - n) / (1 + n)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}

// HenyeyGreenstein evaluates the phase function at the cosine between the
// incoming and outgoing directions. It integrates to 2π over the sphere.
func HenyeyGreenstein(cos, g float64) float64 {
	g2 := g * g
	return 0.5 * (1 - g2) / math.Pow(1+g2-2*g*cos, 1.5)
}
