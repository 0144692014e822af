// Package render provides scanline software rasterization and the surfaces
// it draws into.
package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Projection parameters fixed for every rasterizer.
const (
	ZNear       = 0.1
	ZFar        = 2000.0
	FieldOfView = math.Pi / 2
)

// Frame holds the transforms applied to every vertex.
type Frame struct {
	Modelview  math3d.Mat4
	Projection math3d.Mat4
}

// Stats counts rasterizer work since the last ResetStats.
type Stats struct {
	Triangles    int // Triangles submitted through DrawTriangle3D
	NearRejected int // Triangles dropped because a vertex failed projection
	Rasterized   int // Triangles filled by DrawTriangle
	Spans        int // Non-empty spans walked
	Pixels       int // Pixels offered to the surface
}

// Rasterizer fills triangles into a Surface one scanline at a time.
// It is not safe for concurrent use.
type Rasterizer struct {
	surface  Surface
	width    int
	height   int
	centerX  float64
	centerY  float64
	frame    Frame
	combined math3d.Mat4 // projection * modelview
	stats    Stats
}

// NewRasterizer creates a rasterizer sized to the surface. The projection is
// fixed at construction; recreate the rasterizer when the surface resizes.
func NewRasterizer(surface Surface) *Rasterizer {
	w, h := surface.Width(), surface.Height()
	r := &Rasterizer{
		surface: surface,
		width:   w,
		height:  h,
		centerX: float64(w) / 2,
		centerY: float64(h) / 2,
		frame: Frame{
			Modelview:  math3d.Identity(),
			Projection: math3d.Perspective(FieldOfView, float64(w)/float64(h), ZNear, ZFar),
		},
	}
	r.combined = r.frame.Projection.Mul(r.frame.Modelview)
	Logger().Debug("rasterizer created", "width", w, "height", h)
	return r
}

// Width returns the surface width.
func (r *Rasterizer) Width() int {
	return r.width
}

// Height returns the surface height.
func (r *Rasterizer) Height() int {
	return r.height
}

// SetModelviewMatrix replaces the modelview transform for subsequent draws.
func (r *Rasterizer) SetModelviewMatrix(m math3d.Mat4) {
	r.frame.Modelview = m
	r.combined = r.frame.Projection.Mul(m)
}

// ModelviewMatrix returns the current modelview transform.
func (r *Rasterizer) ModelviewMatrix() math3d.Mat4 {
	return r.frame.Modelview
}

// ProjectionMatrix returns the projection transform.
func (r *Rasterizer) ProjectionMatrix() math3d.Mat4 {
	return r.frame.Projection
}

// Frame returns a copy of the current transforms.
func (r *Rasterizer) Frame() Frame {
	return r.frame
}

// Stats returns the counters accumulated since the last reset.
func (r *Rasterizer) Stats() Stats {
	return r.stats
}

// ResetStats zeroes the counters (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.stats = Stats{}
}

// Clear resets the surface for a new frame.
func (r *Rasterizer) Clear() {
	r.surface.Clear()
}

// Flush presents the frame through the surface.
func (r *Rasterizer) Flush() error {
	return r.surface.Flush()
}

// ProjectVertex maps a model-space point to screen space. W of the input is
// forced to 1. The result holds pixel X/Y, depth Z and the clip-space W.
// ok is false when the projected z lies in front of the near plane value;
// the test runs on the projected z, before the divide.
func (r *Rasterizer) ProjectVertex(v math3d.Vec4) (math3d.Vec4, bool) {
	v.W = 1
	p := r.combined.Transform(v)
	if p.Z < ZNear {
		return math3d.Vec4{}, false
	}

	x, y, z := p.X/p.W, p.Y/p.W, p.Z/p.W
	return math3d.Vec4{
		X: r.centerX + r.centerX*x,
		Y: r.centerY - r.centerY*y,
		Z: z / ZFar,
		W: p.W,
	}, true
}

// DrawTriangle3D projects and fills a model-space triangle. The triangle is
// dropped if any vertex fails projection.
func (r *Rasterizer) DrawTriangle3D(c1, v1, c2, v2, c3, v3 math3d.Vec4) {
	r.stats.Triangles++

	p1, ok1 := r.ProjectVertex(v1)
	p2, ok2 := r.ProjectVertex(v2)
	p3, ok3 := r.ProjectVertex(v3)
	if !ok1 || !ok2 || !ok3 {
		r.stats.NearRejected++
		return
	}

	r.DrawTriangle(c1, p1, c2, p2, c3, p3)
}

// DrawQuad3D draws the quad as triangles (1,2,3) and (3,2,4).
func (r *Rasterizer) DrawQuad3D(c1, v1, c2, v2, c3, v3, c4, v4 math3d.Vec4) {
	r.DrawTriangle3D(c1, v1, c2, v2, c3, v3)
	r.DrawTriangle3D(c3, v3, c2, v2, c4, v4)
}

// DrawTriangle fills a screen-space triangle. The edge with the greatest
// vertical extent is walked against each of the two shorter edges.
func (r *Rasterizer) DrawTriangle(c1, v1, c2, v2, c3, v3 math3d.Vec4) {
	r.stats.Rasterized++

	edges := [3]Edge{
		MakeEdge(c1, v1, c2, v2),
		MakeEdge(c2, v2, c3, v3),
		MakeEdge(c3, v3, c1, v1),
	}

	long := 0
	maxLength := edges[0].YDiff()
	for i := 1; i < 3; i++ {
		if l := edges[i].YDiff(); l > maxLength {
			maxLength = l
			long = i
		}
	}

	r.drawSpansBetweenEdges(edges[long], edges[(long+1)%3])
	r.drawSpansBetweenEdges(edges[long], edges[(long+2)%3])
}

// drawSpansBetweenEdges fills the rows covered by the short edge e2, taking
// the other end of each span from the long edge e1.
func (r *Rasterizer) drawSpansBetweenEdges(e1, e2 Edge) {
	e1ydiff := e1.YDiff()
	if e1ydiff == 0 {
		return
	}
	e2ydiff := e2.YDiff()
	if e2ydiff == 0 {
		return
	}

	// Rows are the half-open range [e2.Y1, e2.Y2).
	y := e2.Y1
	if y < 0 {
		y = 0
	}
	h := float64(r.height)

	for ; y < e2.Y2; y++ {
		if y >= h {
			break
		}

		// Positions use multiply-then-divide so integral endpoints stay exact.
		x1 := e1.X1 + (e1.X2-e1.X1)*(y-e1.Y1)/e1ydiff
		x2 := e2.X1 + (e2.X2-e2.X1)*(y-e2.Y1)/e2ydiff
		factor1 := (y - e1.Y1) / e1ydiff
		factor2 := (y - e2.Y1) / e2ydiff

		span := MakeSpan(
			e1.Color1.Lerp(e1.Color2, factor1), x1, math3d.Lerp(e1.Z1, e1.Z2, factor1),
			e2.Color1.Lerp(e2.Color2, factor2), x2, math3d.Lerp(e2.Z1, e2.Z2, factor2),
		)
		r.drawSpan(span, int(y))
	}
}

// drawSpan writes the pixels x = X1+k for k = 0, 1, ... while x < X2.
// The pixel at X2 belongs to the neighboring span.
func (r *Rasterizer) drawSpan(span Span, y int) {
	if y < 0 || y >= r.height {
		return
	}
	xdiff := span.X2 - span.X1
	if xdiff == 0 {
		return
	}
	r.stats.Spans++

	// Skip columns left of the surface without changing which pixels the
	// walk lands on.
	k := 0.0
	if span.X1 < 0 {
		k = math.Ceil(-span.X1)
	}
	w := float64(r.width)

	for ; ; k++ {
		x := span.X1 + k
		if x >= span.X2 || x >= w {
			break
		}
		f := k / xdiff
		r.stats.Pixels++
		r.surface.SetPixel(
			int(math.Floor(x)), y,
			math3d.Lerp(span.Z1, span.Z2, f),
			span.Color1.Lerp(span.Color2, f),
		)
	}
}
