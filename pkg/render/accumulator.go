package render

import (
	"fmt"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Accumulator keeps a running per-pixel radiance sum and one shared
// sample count. It is not safe for concurrent use.
type Accumulator struct {
	Width   int
	Height  int
	sum     []math3d.Vec3
	samples int
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator(width, height int) *Accumulator {
	return &Accumulator{
		Width:  width,
		Height: height,
		sum:    make([]math3d.Vec3, width*height),
	}
}

// AddFrame adds one sample per pixel. frame is row-major and must match
// the accumulator size.
func (a *Accumulator) AddFrame(frame []math3d.Vec3) {
	if len(frame) != len(a.sum) {
		panic(fmt.Sprintf("render: frame has %d pixels, accumulator %d", len(frame), len(a.sum)))
	}
	for i, c := range frame {
		a.sum[i] = a.sum[i].Add(c)
	}
	a.samples++
}

// Average returns the mean radiance of pixel i, black before any sample.
func (a *Accumulator) Average(i int) math3d.Vec3 {
	if a.samples == 0 {
		return math3d.Zero3()
	}
	return a.sum[i].Scale(1 / float64(a.samples))
}

// Samples returns the number of frames accumulated since the last reset.
func (a *Accumulator) Samples() int {
	return a.samples
}

// Reset clears the sums and the sample count.
func (a *Accumulator) Reset() {
	clear(a.sum)
	a.samples = 0
}
