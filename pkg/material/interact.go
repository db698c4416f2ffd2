package material

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// SurfaceEpsilon is how far continuation rays are pushed off a surface to
// avoid re-hitting it.
const SurfaceEpsilon = 1e-4

// lightCosExponent sets the falloff of LightCos emitters.
const lightCosExponent = 100

// Event says what happened when a ray met a material.
type Event uint8

const (
	// EventAbsorb ends the path with no light.
	EventAbsorb Event = iota
	// EventEmit ends the path with Emission (times white).
	EventEmit
	// EventScatter continues along Ray, scaling the result by Weight.
	EventScatter
)

// Interaction is the outcome of Interact.
type Interaction struct {
	Event    Event
	Ray      math3d.Ray
	Weight   float64
	Emission float64

	// BelowSurface marks a Lambert sample whose direction did not end up
	// above the surface. The sample is still returned unchanged.
	BelowSurface bool
}

func absorb() Interaction { return Interaction{Event: EventAbsorb} }

func emit(v float64) Interaction { return Interaction{Event: EventEmit, Emission: v} }

func scatter(origin, dir math3d.Vec3, w float64) Interaction {
	return Interaction{Event: EventScatter, Ray: math3d.NewRay(origin, dir), Weight: w}
}

// Interact samples how ray, having hit point p with normal n, continues.
// The ray direction is expected to be unit length.
func Interact(m Material, ray math3d.Ray, p, n math3d.Vec3, rng *math3d.Rand) Interaction {
	d := ray.Direction

	switch m.Kind {
	case KindLambert:
		dir := math3d.RandomHemisphere(n, rng)
		cos := dir.Dot(n)
		in := scatter(p.Add(n.Scale(SurfaceEpsilon)), dir, 2*math.Max(0, cos)*m.Param)
		in.BelowSurface = cos <= 0
		return in

	case KindLambertCos:
		if d.Dot(n) >= 0 {
			return absorb()
		}
		dir := math3d.RandomHemisphereCosine(n, rng)
		return scatter(p.Add(n.Scale(SurfaceEpsilon)), dir, m.Param)

	case KindMirror:
		return scatter(p.Add(n.Scale(SurfaceEpsilon)), Reflect(d, n), m.Param)

	case KindGlass:
		return glass(m.Param, d, p, n, rng)

	case KindScatter:
		dir := math3d.RandomSignedHemisphere(rng)
		w := HenyeyGreenstein(dir.Dot(d), m.Param) / (2 * math.Pi)
		return scatter(p, dir, w)

	case KindLight:
		return emit(m.Param)

	case KindLightUni:
		if n.Dot(d) < 0 {
			return emit(m.Param)
		}
		return emit(0)

	case KindLightCos:
		c := math.Max(0, d.Dot(n.Negate()))
		return emit(math.Pow(c, lightCosExponent) * m.Param)

	case KindTest:
		return emit(1)

	default:
		return absorb()
	}
}

// glass picks reflection or transmission at a dielectric interface.
// The facing normal s*n points back toward the side the ray came from.
func glass(index float64, d, p, n math3d.Vec3, rng *math3d.Rand) Interaction {
	cos := d.Dot(n)
	ratio := index
	if cos < 0 {
		ratio = 1 / index
	}
	s := -math.Copysign(1, cos)
	facing := n.Scale(s)
	above := p.Add(facing.Scale(SurfaceEpsilon))

	refracted, ok := Refract(d, facing, ratio)
	if !ok {
		return scatter(above, Reflect(d, n), 1)
	}
	if rng.Float64() < Schlick(math.Abs(cos), index) {
		return scatter(above, Reflect(d, facing), 1)
	}
	return scatter(p.Sub(facing.Scale(SurfaceEpsilon)), refracted, 1)
}
