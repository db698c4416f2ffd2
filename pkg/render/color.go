package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/lumen/pkg/math3d"
)

// ErrUnknownExposure is returned by ParseExposure.
var ErrUnknownExposure = errors.New("unknown exposure curve")

// Gamma is the display gamma applied after exposure.
const Gamma = 2.2

// Exposure maps HDR radiance into [0, 1).
type Exposure uint8

const (
	// ExposureExp is 1 - e^(-2x).
	ExposureExp Exposure = iota
	// ExposureFilmic is the ACES filmic curve fit.
	ExposureFilmic
)

func (e Exposure) String() string {
	switch e {
	case ExposureExp:
		return "exp"
	case ExposureFilmic:
		return "filmic"
	default:
		return fmt.Sprintf("Exposure(%d)", e)
	}
}

// Next cycles to the following curve.
func (e Exposure) Next() Exposure {
	return (e + 1) % 2
}

// ParseExposure accepts exp or filmic.
func ParseExposure(s string) (Exposure, error) {
	switch strings.ToLower(s) {
	case "exp":
		return ExposureExp, nil
	case "filmic", "aces":
		return ExposureFilmic, nil
	default:
		return 0, fmt.Errorf("%w: %q (want exp or filmic)", ErrUnknownExposure, s)
	}
}

// Apply maps one channel. Negative input is treated as zero.
func (e Exposure) Apply(x float64) float64 {
	x = math.Max(0, x)
	switch e {
	case ExposureFilmic:
		return x * (2.51*x + 0.03) / (x*(2.43*x+0.59) + 0.14)
	default:
		return 1 - math.Exp(-2*x)
	}
}

func (e Exposure) channel(x float64) float64 {
	return math.Pow(math.Min(1, e.Apply(x)), 1/Gamma)
}

// Encode turns linear radiance into an opaque 8-bit display colour.
func Encode(c math3d.Vec3, e Exposure) color.RGBA {
	r, g, b := colorful.Color{
		R: e.channel(c.X),
		G: e.channel(c.Y),
		B: e.channel(c.Z),
	}.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Pack encodes c as 0xRRGGBB.
func Pack(c math3d.Vec3, e Exposure) uint32 {
	rgba := Encode(c, e)
	return uint32(rgba.R)<<16 | uint32(rgba.G)<<8 | uint32(rgba.B)
}

// ParseTint reads a #rrggbb colour into 0-1 components.
func ParseTint(hex string) (math3d.Vec3, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return math3d.Vec3{}, fmt.Errorf("parse tint: %w", err)
	}
	return math3d.V3(c.R, c.G, c.B), nil
}
