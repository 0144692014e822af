package render

import (
	"fmt"
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalSurface is a Framebuffer presented on a terminal screen. Each cell
// shows two vertically stacked pixels with the upper half block (▀), so the
// framebuffer is twice as tall as the screen in rows.
type TerminalSurface struct {
	*Framebuffer

	scr     uv.Screen
	present func() error
	cols    int
	rows    int
}

// NewTerminalSurface creates a surface covering cols x rows terminal cells.
// present is called after the cells are written, typically the terminal's
// Display method; it may be nil.
func NewTerminalSurface(scr uv.Screen, cols, rows int, present func() error) *TerminalSurface {
	return &TerminalSurface{
		Framebuffer: NewFramebuffer(cols, rows*2),
		scr:         scr,
		present:     present,
		cols:        cols,
		rows:        rows,
	}
}

// Area returns the screen rectangle the surface draws into.
func (t *TerminalSurface) Area() uv.Rectangle {
	return uv.Rectangle(image.Rect(0, 0, t.cols, t.rows))
}

// Flush writes the frame to the screen as half-block cells and presents it.
func (t *TerminalSurface) Flush() error {
	t.Draw(t.scr, t.Area())
	if t.present == nil {
		return nil
	}
	if err := t.present(); err != nil {
		Logger().Warn("terminal present failed", "err", err)
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Draw converts the framebuffer to terminal cells inside area.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.Pixel(col, topY)),
					Bg: cellColor(fb.Pixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// cellColor converts color.RGBA to a cell color; transparent means unset.
func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
