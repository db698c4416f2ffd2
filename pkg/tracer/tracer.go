// Package tracer estimates radiance along camera rays by recursively
// sampling light paths through a scene.
package tracer

import (
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/taigrr/lumen/pkg/material"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/scene"
)

// Warning is returned by Radiance in place of a non-finite sample.
var Warning = math3d.V3(1, 0, 1)

// Tracer is safe for concurrent use once constructed: the scene is read
// only and the counters are atomic. Each goroutine must bring its own
// random stream.
type Tracer struct {
	root       scene.Object
	background Background
	logger     *log.Logger

	nan          atomic.Int64
	belowSurface atomic.Int64
}

// Stats are diagnostic counters accumulated across all traces.
type Stats struct {
	// NaN counts samples replaced by the warning colour.
	NaN int64
	// BelowSurface counts Lambert samples that left below the surface.
	BelowSurface int64
}

// New creates a tracer over root. A nil background is black and a nil
// logger discards output.
func New(root scene.Object, background Background, logger *log.Logger) *Tracer {
	if background == nil {
		background = Black
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tracer{root: root, background: background, logger: logger}
}

// Trace returns the radiance arriving along ray, following at most depth
// bounces. Depth zero is black.
func (t *Tracer) Trace(ray math3d.Ray, depth int, rng *math3d.Rand) math3d.Vec3 {
	if depth <= 0 {
		return math3d.Zero3()
	}

	hit, ok := t.root.Intersect(ray, rng)
	if !ok {
		return t.background(ray.Direction)
	}

	in := material.Interact(hit.Material, ray, hit.Point, hit.Normal, rng)
	switch in.Event {
	case material.EventEmit:
		return hit.Color.Scale(in.Emission)
	case material.EventScatter:
		if in.BelowSurface {
			t.belowSurface.Add(1)
			t.logger.Debug("sample below surface", "material", hit.Material, "point", hit.Point)
		}
		return hit.Color.Mul(t.Trace(in.Ray, depth-1, rng)).Scale(in.Weight)
	default:
		return math3d.Zero3()
	}
}

// Radiance is Trace with non-finite results replaced by Warning.
func (t *Tracer) Radiance(ray math3d.Ray, depth int, rng *math3d.Rand) math3d.Vec3 {
	c := t.Trace(ray, depth, rng)
	if !c.IsFinite() {
		if t.nan.Add(1) == 1 {
			t.logger.Warn("non-finite radiance", "origin", ray.Origin, "direction", ray.Direction)
		}
		return Warning
	}
	return c
}

// Stats returns a snapshot of the diagnostic counters.
func (t *Tracer) Stats() Stats {
	return Stats{
		NaN:          t.nan.Load(),
		BelowSurface: t.belowSurface.Load(),
	}
}
