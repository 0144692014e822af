package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Edge is a triangle edge in screen space, ordered top to bottom.
// X and Y are snapped to the containing pixel so scanlines land on whole rows.
type Edge struct {
	Color1     math3d.Vec4
	X1, Y1, Z1 float64
	Color2     math3d.Vec4
	X2, Y2, Z2 float64
}

// MakeEdge builds an edge between two screen-space vertices with Y1 <= Y2.
func MakeEdge(c1, v1, c2, v2 math3d.Vec4) Edge {
	if v1.Y < v2.Y {
		return Edge{
			Color1: c1, X1: math.Floor(v1.X), Y1: math.Floor(v1.Y), Z1: v1.Z,
			Color2: c2, X2: math.Floor(v2.X), Y2: math.Floor(v2.Y), Z2: v2.Z,
		}
	}
	return Edge{
		Color1: c2, X1: math.Floor(v2.X), Y1: math.Floor(v2.Y), Z1: v2.Z,
		Color2: c1, X2: math.Floor(v1.X), Y2: math.Floor(v1.Y), Z2: v1.Z,
	}
}

// YDiff returns the vertical extent of the edge.
func (e Edge) YDiff() float64 {
	return e.Y2 - e.Y1
}

// Span is a horizontal run of pixels on one scanline, ordered left to right.
type Span struct {
	Color1 math3d.Vec4
	X1, Z1 float64
	Color2 math3d.Vec4
	X2, Z2 float64
}

// MakeSpan builds a span with X1 <= X2.
func MakeSpan(c1 math3d.Vec4, x1, z1 float64, c2 math3d.Vec4, x2, z2 float64) Span {
	if x1 <= x2 {
		return Span{Color1: c1, X1: x1, Z1: z1, Color2: c2, X2: x2, Z2: z2}
	}
	return Span{Color1: c2, X1: x2, Z1: z2, Color2: c1, X2: x1, Z2: z1}
}
