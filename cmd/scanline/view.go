package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/scene"
)

// holdTimeout releases an arrow key when no press or repeat has arrived for
// this long; not every terminal reports key releases.
const holdTimeout = 150 * time.Millisecond

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Animate the scene in the terminal",
		Long: `Animate the scene in the terminal using half-block cells.

Controls:
  Left/Right  - Rotate
  Up/Down     - Move closer/farther
  +/-         - Dolly in larger steps
  Space       - Random spin
  X           - Toggle wireframe
  R           - Reset
  Q/Esc       - Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runView(cmd.Context(), cfg)
		},
	}
}

// heldKeys tracks arrow keys with the time of their last press.
type heldKeys struct {
	left, right, up, down time.Time
}

func (h *heldKeys) press(ev uv.KeyPressEvent, now time.Time) bool {
	switch {
	case ev.MatchString("left"):
		h.left = now
	case ev.MatchString("right"):
		h.right = now
	case ev.MatchString("up"):
		h.up = now
	case ev.MatchString("down"):
		h.down = now
	default:
		return false
	}
	return true
}

func (h *heldKeys) release(ev uv.KeyReleaseEvent) {
	switch {
	case ev.MatchString("left"):
		h.left = time.Time{}
	case ev.MatchString("right"):
		h.right = time.Time{}
	case ev.MatchString("up"):
		h.up = time.Time{}
	case ev.MatchString("down"):
		h.down = time.Time{}
	}
}

func (h *heldKeys) keys(now time.Time) scene.Keys {
	held := func(t time.Time) bool { return !t.IsZero() && now.Sub(t) < holdTimeout }
	return scene.Keys{
		Left:  held(h.left),
		Right: held(h.right),
		Up:    held(h.up),
		Down:  held(h.down),
	}
}

func runView(ctx context.Context, cfg config.Config) error {
	s, err := buildScene(cfg)
	if err != nil {
		return err
	}
	bg, _ := cfg.BackgroundColor()

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	newRasterizer := func(w, h int) *render.Rasterizer {
		surface := render.NewTerminalSurface(term, w, h, term.Display)
		surface.Background = bg
		return render.NewRasterizer(surface)
	}
	rast := newRasterizer(width, height)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	rig := scene.NewRig(cfg.FPS)
	var held heldKeys
	events := term.Events()

	targetDuration := time.Second / time.Duration(cfg.FPS)
	lastFrame := time.Now()

	for {
		now := time.Now()

		// Drain pending input before the frame so all state is touched by
		// this goroutine only.
	input:
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					width, height = ev.Width, ev.Height
					term.Erase()
					term.Resize(width, height)
					rast = newRasterizer(width, height)
					render.Logger().Debug("resized", "cols", width, "rows", height)

				case uv.KeyPressEvent:
					if held.press(ev, now) {
						continue
					}
					switch {
					case ev.MatchString("escape", "ctrl+c", "q"):
						return nil
					case ev.MatchString("r"):
						rig.Reset()
						held = heldKeys{}
					case ev.MatchString("x"):
						s.Wireframe = !s.Wireframe
					case ev.MatchString("space"):
						rig.ApplyImpulse((rand.Float64() - 0.5) * 6)
					case ev.MatchString("+", "="):
						rig.Dolly(1)
					case ev.MatchString("-", "_"):
						rig.Dolly(-1)
					}

				case uv.KeyReleaseEvent:
					held.release(ev)
				}
			default:
				break input
			}
		}

		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		rig.Held = held.keys(now)
		rig.Update(dt)
		if err := s.Render(rast, rig); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
