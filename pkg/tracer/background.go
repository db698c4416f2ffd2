package tracer

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/taigrr/lumen/pkg/math3d"
)

// ErrUnknownBackground is returned by ParseBackground.
var ErrUnknownBackground = errors.New("unknown background")

// Background gives the radiance seen along a ray that escapes the scene.
type Background func(dir math3d.Vec3) math3d.Vec3

var (
	sunDirection = math3d.V3(-0.57735, 0.57735, -0.57735)
	skyHorizon   = math3d.V3(0.45, 0.68, 0.87)
)

const (
	sunPower = 300
	skyScale = 0.4
)

// Sky is a blue gradient brightening toward the zenith with a small
// hard sun.
func Sky(dir math3d.Vec3) math3d.Vec3 {
	sun := math.Pow(clamp01(sunDirection.Dot(dir)+0.03), sunPower)
	t := math.Pow(clamp01(0.5+dir.Y/2), 1.5)
	sky := skyHorizon.Lerp(math3d.One3(), t)
	return sky.Scale(skyScale).Add(math3d.One3().Scale(sun))
}

// Black is an empty void.
func Black(math3d.Vec3) math3d.Vec3 {
	return math3d.Zero3()
}

var backgrounds = map[string]Background{
	"sky":   Sky,
	"black": Black,
}

// ParseBackground looks up a background by name.
func ParseBackground(name string) (Background, error) {
	bg, ok := backgrounds[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want sky or black)", ErrUnknownBackground, name)
	}
	return bg, nil
}

func clamp01(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}
