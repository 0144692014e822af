package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Framebuffer is an in-memory Surface holding packed colors and a depth
// buffer of the same size.
type Framebuffer struct {
	width      int
	height     int
	Pixels     []color.RGBA // Row-major pixel data
	Depth      []float64    // Row-major depth, FarDepth after Clear
	Background color.RGBA   // Color written by Clear
}

// NewFramebuffer creates a framebuffer with the given dimensions, cleared to
// opaque black.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		width:      width,
		height:     height,
		Pixels:     make([]color.RGBA, width*height),
		Depth:      make([]float64, width*height),
		Background: color.RGBA{0, 0, 0, 255},
	}
	fb.Clear()
	return fb
}

// Width returns the width in pixels.
func (fb *Framebuffer) Width() int {
	return fb.width
}

// Height returns the height in pixels.
func (fb *Framebuffer) Height() int {
	return fb.height
}

// Clear fills the color buffer with Background and the depth buffer with
// FarDepth.
func (fb *Framebuffer) Clear() {
	// Use copy-doubling for faster clearing
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	fb.Pixels[0] = fb.Background
	fb.Depth[0] = FarDepth
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
		copy(fb.Depth[i:], fb.Depth[:i])
	}
}

// SetPixel writes c at (x, y) when z is strictly less than the stored depth.
// Equal depths keep the pixel already there.
func (fb *Framebuffer) SetPixel(x, y int, z float64, c math3d.Vec4) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	i := y*fb.width + x
	if !(z < fb.Depth[i]) {
		return
	}
	fb.Pixels[i] = ToRGBA(c)
	fb.Depth[i] = z
}

// Pixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) Pixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.width+x]
}

// DepthAt returns the stored depth at (x, y), or FarDepth if out of bounds.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return FarDepth
	}
	return fb.Depth[y*fb.width+x]
}

// Flush is a no-op; the pixels are already in memory.
func (fb *Framebuffer) Flush() error {
	return nil
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.width+x])
		}
	}
	return img
}

// Scaled returns the frame enlarged so each pixel covers a pixelSize square.
func (fb *Framebuffer) Scaled(pixelSize int) *image.RGBA {
	src := fb.ToImage()
	if pixelSize <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, fb.width*pixelSize, fb.height*pixelSize))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// ToRGBA packs a color vector with channels in [0,255] into color.RGBA.
// Channels are clamped and truncated.
func ToRGBA(c math3d.Vec4) color.RGBA {
	return color.RGBA{channel(c.X), channel(c.Y), channel(c.Z), channel(c.W)}
}

// FromRGBA unpacks a color into a color vector.
func FromRGBA(c color.RGBA) math3d.Vec4 {
	return math3d.RGBA(float64(c.R), float64(c.G), float64(c.B), float64(c.A))
}

func channel(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
