// Package material defines the closed set of surface and volume
// materials and how each one turns an incoming ray into emission or a
// continuation ray.
package material

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownMaterial is returned by Parse for an unrecognised kind.
var ErrUnknownMaterial = errors.New("unknown material")

// Kind identifies the variant held by a Material.
type Kind uint8

const (
	KindLambert Kind = iota
	KindLambertCos
	KindMirror
	KindGlass
	KindLight
	KindLightUni
	KindLightCos
	KindScatter
	KindTest
)

var kindNames = [...]string{
	KindLambert:    "lambert",
	KindLambertCos: "lambertcos",
	KindMirror:     "mirror",
	KindGlass:      "glass",
	KindLight:      "light",
	KindLightUni:   "lightuni",
	KindLightCos:   "lightcos",
	KindScatter:    "scatter",
	KindTest:       "test",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Material is a value type with no positional state. Param holds the
// single parameter of the kind:
//
//	Lambert, LambertCos, Mirror: albedo
//	Glass:                       refractive index
//	Light, LightUni, LightCos:   intensity
//	Scatter:                     Henyey-Greenstein anisotropy g
//	Test:                        unused
type Material struct {
	Kind  Kind
	Param float64
}

// Lambert is a diffuse surface sampled uniformly over the hemisphere.
func Lambert(albedo float64) Material { return Material{KindLambert, albedo} }

// LambertCos is a one-sided diffuse surface with cosine-weighted sampling.
func LambertCos(albedo float64) Material { return Material{KindLambertCos, albedo} }

// Mirror is a perfect specular reflector.
func Mirror(albedo float64) Material { return Material{KindMirror, albedo} }

// Glass is a dielectric with the given refractive index.
func Glass(index float64) Material { return Material{KindGlass, index} }

// Light emits intensity in every direction, including behind the surface.
func Light(intensity float64) Material { return Material{KindLight, intensity} }

// LightUni emits intensity only on the side the normal faces.
func LightUni(intensity float64) Material { return Material{KindLightUni, intensity} }

// LightCos emits with a sharp cos^100 falloff around the inverted normal.
func LightCos(intensity float64) Material { return Material{KindLightCos, intensity} }

// Scatter is a volumetric phase function for participating media.
func Scatter(g float64) Material { return Material{KindScatter, g} }

// Test always returns white.
func Test() Material { return Material{Kind: KindTest} }

// Terminal reports whether the material ends a path.
func (m Material) Terminal() bool {
	switch m.Kind {
	case KindLight, KindLightUni, KindLightCos, KindTest:
		return true
	default:
		return false
	}
}

func (m Material) String() string {
	if m.Kind == KindTest {
		return m.Kind.String()
	}
	return m.Kind.String() + ":" + strconv.FormatFloat(m.Param, 'g', -1, 64)
}

// Parse reads the "kind:param" form produced by String, e.g. "glass:1.54".
// The parameter defaults to 1 when omitted.
func Parse(s string) (Material, error) {
	name, param, hasParam := strings.Cut(strings.TrimSpace(strings.ToLower(s)), ":")
	value := 1.0
	if hasParam {
		v, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return Material{}, fmt.Errorf("material %q: %w", s, err)
		}
		value = v
	}
	for k, n := range kindNames {
		if n == name {
			return Material{Kind: Kind(k), Param: value}, nil
		}
	}
	return Material{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
}
