package render

import (
	"context"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/tracer"
)

// ProgressiveConfig contains configuration for progressive rendering.
type ProgressiveConfig struct {
	Width  int
	Height int
	Depth  int    // Maximum bounces per path
	Seed   uint64 // Base seed; frame and row select the stream
	// Workers bounds concurrent rows (0 = use CPU count).
	Workers int
	Logger  *log.Logger
}

// Progressive renders one sample per pixel per frame and averages frames
// until the camera moves.
type Progressive struct {
	tracer  *tracer.Tracer
	depth   int
	seed    uint64
	workers int
	logger  *log.Logger

	mu         sync.Mutex
	camera     Camera
	acc        *Accumulator
	generation uint64
	frame      uint64
}

// NewProgressive creates a progressive renderer.
func NewProgressive(tr *tracer.Tracer, camera Camera, cfg ProgressiveConfig) *Progressive {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Progressive{
		tracer:  tr,
		depth:   cfg.Depth,
		seed:    cfg.Seed,
		workers: workers,
		logger:  logger,
		camera:  camera,
		acc:     NewAccumulator(cfg.Width, cfg.Height),
	}
}

// frameSeed mixes the base seed with the frame index (splitmix64 step).
func frameSeed(seed, frame uint64) uint64 {
	z := seed + (frame+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// RenderFrame traces one sample for every pixel and commits it to the
// accumulator. It reports false without error when the frame was
// discarded because the camera moved or the view was reset meanwhile.
// Cancellation is checked between rows; a cancelled frame is discarded.
func (p *Progressive) RenderFrame(ctx context.Context) (bool, error) {
	p.mu.Lock()
	cam := p.camera
	gen := p.generation
	frame := p.frame
	p.frame++
	w, h := p.acc.Width, p.acc.Height
	p.mu.Unlock()

	start := time.Now()
	buf := make([]math3d.Vec3, w*h)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	seed := frameSeed(p.seed, frame)
	for y := range h {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := math3d.NewRand(seed, uint64(y))
			row := buf[y*w : (y+1)*w]
			for x := range row {
				ray := cam.GenerateRay(x, y, w, h, rng)
				row[x] = p.tracer.Radiance(ray, p.depth, rng)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		p.logger.Debug("discarding stale frame", "frame", frame, "generation", gen)
		return false, nil
	}
	p.acc.AddFrame(buf)
	p.logger.Debug("frame", "frame", frame, "samples", p.acc.Samples(), "elapsed", time.Since(start))
	return true, nil
}

// Render accumulates frames until samples is reached or ctx ends.
func (p *Progressive) Render(ctx context.Context, samples int) error {
	start := time.Now()
	for p.Samples() < samples {
		if _, err := p.RenderFrame(ctx); err != nil {
			return err
		}
	}
	stats := p.tracer.Stats()
	p.logger.Info("render complete",
		"samples", p.Samples(),
		"elapsed", time.Since(start).Round(time.Millisecond),
		"nan", stats.NaN,
		"below_surface", stats.BelowSurface,
		"degenerate", math3d.DegenerateCount())
	return nil
}

func (p *Progressive) invalidate() {
	p.acc.Reset()
	p.generation++
}

// Move translates the camera in its local basis and restarts
// accumulation. Frames already in flight are discarded on commit.
func (p *Progressive) Move(local math3d.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.camera.Translate(local)
	p.invalidate()
}

// Reset restarts accumulation without moving the camera.
func (p *Progressive) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invalidate()
}

// Resize changes the image size and restarts accumulation.
func (p *Progressive) Resize(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if width == p.acc.Width && height == p.acc.Height {
		return
	}
	p.acc = NewAccumulator(width, height)
	p.generation++
}

// Camera returns a copy of the current camera.
func (p *Progressive) Camera() Camera {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.camera
}

// Samples returns the number of frames in the current average.
func (p *Progressive) Samples() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acc.Samples()
}

// Snapshot encodes the current average into fb, resizing it if needed.
func (p *Progressive) Snapshot(fb *Framebuffer, e Exposure) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fb.Resize(p.acc.Width, p.acc.Height)
	for i := range fb.Pixels {
		fb.Pixels[i] = Encode(p.acc.Average(i), e)
	}
}

// Packed returns the current average as row-major 0xRRGGBB values.
func (p *Progressive) Packed(e Exposure) []uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]uint32, p.acc.Width*p.acc.Height)
	for i := range out {
		out[i] = Pack(p.acc.Average(i), e)
	}
	return out
}

// Stats returns the tracer's diagnostic counters.
func (p *Progressive) Stats() tracer.Stats {
	return p.tracer.Stats()
}
