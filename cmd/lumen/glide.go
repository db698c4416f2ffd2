package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/lumen/pkg/math3d"
)

// settleDistance is how close an axis must be to its target, with a
// negligible velocity, before it snaps and stops moving.
const settleDistance = 1e-4

// glideAxis springs one camera-local axis toward its target offset.
type glideAxis struct {
	pos, vel, target float64
	spring           harmonica.Spring
}

func (a *glideAxis) step() float64 {
	if a.pos == a.target && a.vel == 0 {
		return 0
	}
	prev := a.pos
	a.pos, a.vel = a.spring.Update(a.pos, a.vel, a.target)
	if math.Abs(a.target-a.pos) < settleDistance && math.Abs(a.vel) < settleDistance {
		a.pos, a.vel = a.target, 0
	}
	return a.pos - prev
}

// Glide turns discrete key presses into smooth camera motion. Each press
// moves the target; Step returns the local translation for one tick.
type Glide struct {
	axes [3]glideAxis
}

// NewGlide creates a glide ticking at fps.
func NewGlide(fps int) *Glide {
	g := &Glide{}
	for i := range g.axes {
		// Frequency 6.0 = quick, damping 1.0 = critically damped (no overshoot)
		g.axes[i].spring = harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)
	}
	return g
}

// Push queues a local translation (forward, side, up).
func (g *Glide) Push(local math3d.Vec3) {
	g.axes[0].target += local.X
	g.axes[1].target += local.Y
	g.axes[2].target += local.Z
}

// Step advances one tick and returns the translation to apply.
func (g *Glide) Step() math3d.Vec3 {
	return math3d.V3(g.axes[0].step(), g.axes[1].step(), g.axes[2].step())
}
