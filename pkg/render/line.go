package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// DrawLine draws a screen-space line at depth 0, stepping one pixel along the
// major axis and interpolating color between the endpoints.
func (r *Rasterizer) DrawLine(c1 math3d.Vec4, x1, y1 float64, c2 math3d.Vec4, x2, y2 float64) {
	r.drawLine(c1, x1, y1, 0, c2, x2, y2, 0)
}

// DrawLine3D projects both endpoints and draws the line between them with
// interpolated depth. Nothing is drawn if either endpoint fails projection.
func (r *Rasterizer) DrawLine3D(c1, v1, c2, v2 math3d.Vec4) {
	p1, ok1 := r.ProjectVertex(v1)
	p2, ok2 := r.ProjectVertex(v2)
	if !ok1 || !ok2 {
		return
	}
	r.drawLine(c1, p1.X, p1.Y, p1.Z, c2, p2.X, p2.Y, p2.Z)
}

func (r *Rasterizer) drawLine(c1 math3d.Vec4, x1, y1, z1 float64, c2 math3d.Vec4, x2, y2, z2 float64) {
	xdiff := x2 - x1
	ydiff := y2 - y1

	if xdiff == 0 && ydiff == 0 {
		r.plot(x1, y1, z1, c1)
		return
	}

	if math.Abs(xdiff) > math.Abs(ydiff) {
		xmin, xmax := x1, x2
		if x2 < x1 {
			xmin, xmax = x2, x1
		}
		slope := ydiff / xdiff
		for x := skipNegative(xmin); x <= xmax && x < float64(r.width); x++ {
			f := (x - x1) / xdiff
			r.plot(x, y1+(x-x1)*slope, math3d.Lerp(z1, z2, f), c1.Lerp(c2, f))
		}
		return
	}

	ymin, ymax := y1, y2
	if y2 < y1 {
		ymin, ymax = y2, y1
	}
	slope := xdiff / ydiff
	for y := skipNegative(ymin); y <= ymax && y < float64(r.height); y++ {
		f := (y - y1) / ydiff
		r.plot(x1+(y-y1)*slope, y, math3d.Lerp(z1, z2, f), c1.Lerp(c2, f))
	}
}

// skipNegative advances a major-axis start by whole steps until it is on or
// past zero, so off-surface steps are skipped without moving the lattice.
func skipNegative(v float64) float64 {
	if v < 0 {
		return v + math.Ceil(-v)
	}
	return v
}

func (r *Rasterizer) plot(x, y, z float64, c math3d.Vec4) {
	r.stats.Pixels++
	r.surface.SetPixel(int(math.Floor(x)), int(math.Floor(y)), z, c)
}
