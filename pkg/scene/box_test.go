package scene

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

type quadCall struct {
	colors [4]math3d.Vec4
	verts  [4]math3d.Vec4
}

// recordingTarget records draw calls instead of rasterizing them.
type recordingTarget struct {
	triangles int
	quads     []quadCall
	lines     int
}

func (r *recordingTarget) DrawTriangle3D(c1, v1, c2, v2, c3, v3 math3d.Vec4) {
	r.triangles++
}

func (r *recordingTarget) DrawQuad3D(c1, v1, c2, v2, c3, v3, c4, v4 math3d.Vec4) {
	r.quads = append(r.quads, quadCall{
		colors: [4]math3d.Vec4{c1, c2, c3, c4},
		verts:  [4]math3d.Vec4{v1, v2, v3, v4},
	})
}

func (r *recordingTarget) DrawLine3D(c1, v1, c2, v2 math3d.Vec4) {
	r.lines++
}

func TestBoxShadeColor(t *testing.T) {
	b := NewBox(math3d.Point(0, 0, 0), 1, math3d.RGBA(200, 100, 40, 128))
	got := b.ShadeColor()
	want := math3d.RGBA(150, 75, 30, 128)
	if got != want {
		t.Errorf("ShadeColor() = %v, want %v", got, want)
	}
}

func TestBoxDraw(t *testing.T) {
	base := math3d.RGBA(255, 0, 0, 255)
	b := NewBox(math3d.Point(2, -1, 3), 2, base)
	shade := b.ShadeColor()

	var rt recordingTarget
	b.Draw(&rt)

	if len(rt.quads) != 6 {
		t.Fatalf("got %d quads, want 6", len(rt.quads))
	}

	for i, q := range rt.quads {
		for _, v := range q.verts {
			if math.Abs(v.X-2) != 1 || math.Abs(v.Y+1) != 1 || math.Abs(v.Z-3) != 1 {
				t.Errorf("quad %d vertex %v is not a box corner", i, v)
			}
			if v.W != 1 {
				t.Errorf("quad %d vertex %v is not a point", i, v)
			}
		}
	}

	top := rt.quads[4]
	bottom := rt.quads[5]
	for i := range 4 {
		if top.colors[i] != base {
			t.Errorf("top color %d = %v", i, top.colors[i])
		}
		if bottom.colors[i] != shade {
			t.Errorf("bottom color %d = %v", i, bottom.colors[i])
		}
	}

	front := rt.quads[0]
	want := [4]math3d.Vec4{base, shade, base, shade}
	if front.colors != want {
		t.Errorf("front colors = %v, want %v", front.colors, want)
	}
	// Upper corners carry the base color.
	if front.verts[0].Y <= front.verts[1].Y {
		t.Errorf("front v1 should be above v2")
	}
}

func TestBoxOutline(t *testing.T) {
	var rt recordingTarget
	NewBox(math3d.Point(0, 0, 0), 1, math3d.RGBA(0, 255, 0, 255)).Outline(&rt)
	if rt.lines != 12 || len(rt.quads) != 0 {
		t.Errorf("lines = %d, quads = %d", rt.lines, len(rt.quads))
	}
}

func TestDemoBoxes(t *testing.T) {
	boxes := DemoBoxes(DefaultShade)
	if len(boxes) != 8 {
		t.Fatalf("got %d boxes, want 8", len(boxes))
	}

	seen := make(map[[3]float64]bool)
	for _, b := range boxes {
		p := [3]float64{b.Position.X, b.Position.Y, b.Position.Z}
		for _, c := range p {
			if math.Abs(c) != 1 {
				t.Errorf("box at %v is not on a cube corner", p)
			}
		}
		if seen[p] {
			t.Errorf("duplicate box at %v", p)
		}
		seen[p] = true
		if b.Size != 1 || b.Shade != DefaultShade || b.Color.W != 255 {
			t.Errorf("unexpected box %+v", b)
		}
	}
}
