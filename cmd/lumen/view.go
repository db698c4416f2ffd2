package main

import (
	"context"
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
)

// moveStep is the camera translation per key press.
const moveStep = 0.1

var hudStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#e8e8e8")).
	Background(lipgloss.Color("#202030")).
	Padding(0, 1)

func newViewCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Preview a scene progressively in the terminal",
		Long: `Preview a scene in the terminal. The image refines while the camera is
still and restarts whenever it moves.

  W/S forward/back   A/D strafe   Space/C up/down
  R restart          E exposure   Esc quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runView(cmd.Context(), o)
		},
	}
	cmd.Flags().IntVar(&o.fps, "fps", 30, "display refresh rate")
	return cmd
}

// keyMoves maps keys to camera-local translations (forward, side, up).
var keyMoves = []struct {
	keys []string
	move math3d.Vec3
}{
	{[]string{"w", "up"}, math3d.V3(moveStep, 0, 0)},
	{[]string{"s", "down"}, math3d.V3(-moveStep, 0, 0)},
	{[]string{"a", "left"}, math3d.V3(0, moveStep, 0)},
	{[]string{"d", "right"}, math3d.V3(0, -moveStep, 0)},
	{[]string{"space"}, math3d.V3(0, 0, moveStep)},
	{[]string{"c"}, math3d.V3(0, 0, -moveStep)},
}

// imageSize reserves the bottom row for the HUD and doubles the rest for
// half-block pixels.
func imageSize(width, height int) (int, int) {
	return width, max(height-1, 1) * 2
}

func runView(ctx context.Context, o *options) error {
	if o.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", o.fps)
	}
	sc, err := o.loadScene()
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	fbWidth, fbHeight := imageSize(width, height)
	p, exposure, err := o.progressive(sc, fbWidth, fbHeight)
	if err != nil {
		return err
	}
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		return fmt.Errorf("resize terminal: %w", err)
	}
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			o.logger.Error("shutdown terminal", "err", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Frames render continuously in the background; camera moves and
	// resizes invalidate whatever is in flight.
	renderDone := make(chan error, 1)
	go func() {
		renderDone <- renderLoop(ctx, p)
	}()

	glide := NewGlide(o.fps)
	hud := newHUD(sc.Name)
	ticker := time.NewTicker(time.Second / time.Duration(o.fps))
	defer ticker.Stop()

	o.logger.Info("viewing", "scene", sc.Name, "size", fmt.Sprintf("%dx%d", fbWidth, fbHeight))

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-renderDone:
			if err == nil {
				return nil
			}
			return fmt.Errorf("render: %w", err)

		case ev, ok := <-term.Events():
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				if err := term.Resize(width, height); err != nil {
					return fmt.Errorf("resize terminal: %w", err)
				}
				p.Resize(imageSize(width, height))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c", "q"):
					cancel()
				case ev.MatchString("r"):
					p.Reset()
				case ev.MatchString("e"):
					exposure = exposure.Next()
				default:
					for _, km := range keyMoves {
						if ev.MatchString(km.keys...) {
							glide.Push(km.move)
							break
						}
					}
				}
			}

		case <-ticker.C:
			if d := glide.Step(); d != (math3d.Vec3{}) {
				p.Move(d)
			}

			p.Snapshot(fb, exposure)
			fb.Draw(term, uv.Rect(0, 0, width, height-1))
			hud.update(p.Samples())
			line := hudStyle.Width(width).Render(hud.line(p, exposure))
			uv.NewStyledString(line).Draw(term, uv.Rect(0, height-1, width, 1))

			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

// renderLoop renders frames until ctx ends. Cancellation is a normal stop
// and returns nil.
func renderLoop(ctx context.Context, p *render.Progressive) error {
	for {
		if _, err := p.RenderFrame(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// hud tracks the convergence rate shown in the status line.
type hud struct {
	scene       string
	rate        float64
	lastSamples int
	lastTime    time.Time
}

func newHUD(scene string) *hud {
	return &hud{scene: scene, lastTime: time.Now()}
}

// update refreshes the samples-per-second estimate about once a second.
func (h *hud) update(samples int) {
	elapsed := time.Since(h.lastTime)
	if samples < h.lastSamples {
		h.lastSamples, h.lastTime = samples, time.Now()
		return
	}
	if elapsed >= time.Second {
		h.rate = float64(samples-h.lastSamples) / elapsed.Seconds()
		h.lastSamples, h.lastTime = samples, time.Now()
	}
}

func (h *hud) line(p *render.Progressive, e render.Exposure) string {
	cam := p.Camera().Position
	s := fmt.Sprintf("%s  %d spp  %.1f spp/s  %s  (%.2f, %.2f, %.2f)",
		h.scene, p.Samples(), h.rate, e, cam.X, cam.Y, cam.Z)
	if st := p.Stats(); st.NaN > 0 {
		s += fmt.Sprintf("  nan %d", st.NaN)
	}
	return s
}
