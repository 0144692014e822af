package render

import "github.com/taigrr/scanline/pkg/math3d"

// FarDepth is the depth every pixel holds after Clear.
const FarDepth = 1.0

// Surface is the output sink the rasterizer writes into. Implementations own
// the color and depth storage and perform the depth test.
type Surface interface {
	// Clear resets every pixel to the background color and FarDepth.
	Clear()
	// SetPixel writes color c at (x, y) if z is strictly nearer than the
	// stored depth. Out-of-range coordinates are ignored.
	SetPixel(x, y int, z float64, c math3d.Vec4)
	// Flush presents the finished frame.
	Flush() error
	Width() int
	Height() int
}

// Target is what scene objects draw themselves into. *Rasterizer implements it.
type Target interface {
	DrawTriangle3D(c1, v1, c2, v2, c3, v3 math3d.Vec4)
	DrawQuad3D(c1, v1, c2, v2, c3, v3, c4, v4 math3d.Vec4)
	DrawLine3D(c1, v1, c2, v2 math3d.Vec4)
}

var _ Target = (*Rasterizer)(nil)
