// Package scene holds drawable objects and the animated rig that places them
// in front of the camera.
package scene

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// DefaultShade darkens the lower corners and bottom face of a box.
const DefaultShade = 0.75

// Box is an axis-aligned cube drawn as six quads. Upper corners use Color;
// lower corners use Color scaled by Shade with alpha kept.
type Box struct {
	Position math3d.Vec4
	Size     float64
	Color    math3d.Vec4
	Shade    float64
}

// NewBox creates a box with the default shade.
func NewBox(position math3d.Vec4, size float64, color math3d.Vec4) Box {
	return Box{Position: position, Size: size, Color: color, Shade: DefaultShade}
}

// ShadeColor returns the color used on the lower corners.
func (b Box) ShadeColor() math3d.Vec4 {
	c := b.Color.Scale(b.Shade)
	c.W = b.Color.W
	return c
}

// boxFaces lists each face as upper-left, lower-left, upper-right, lower-right
// corners seen from outside the box.
var boxFaces = [6][4][3]float64{
	{{-1, 1, 1}, {-1, -1, 1}, {1, 1, 1}, {1, -1, 1}},     // front
	{{1, 1, -1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, -1}}, // back
	{{-1, 1, -1}, {-1, -1, -1}, {-1, 1, 1}, {-1, -1, 1}}, // left
	{{1, 1, 1}, {1, -1, 1}, {1, 1, -1}, {1, -1, -1}},     // right
	{{-1, 1, -1}, {-1, 1, 1}, {1, 1, -1}, {1, 1, 1}},     // top
	{{-1, -1, 1}, {-1, -1, -1}, {1, -1, 1}, {1, -1, -1}}, // bottom
}

func (b Box) corner(c [3]float64) math3d.Vec4 {
	h := b.Size / 2
	return math3d.Point(b.Position.X+c[0]*h, b.Position.Y+c[1]*h, b.Position.Z+c[2]*h)
}

// Draw fills the six faces.
func (b Box) Draw(t render.Target) {
	c1 := b.Color
	c2 := b.ShadeColor()

	for i, face := range boxFaces {
		v1, v2, v3, v4 := b.corner(face[0]), b.corner(face[1]), b.corner(face[2]), b.corner(face[3])
		switch i {
		case 4: // top
			t.DrawQuad3D(c1, v1, c1, v2, c1, v3, c1, v4)
		case 5: // bottom
			t.DrawQuad3D(c2, v1, c2, v2, c2, v3, c2, v4)
		default:
			t.DrawQuad3D(c1, v1, c2, v2, c1, v3, c2, v4)
		}
	}
}

// boxEdges lists the twelve cube edges as corner pairs.
var boxEdges = [12][2][3]float64{
	// Back face
	{{-1, -1, -1}, {1, -1, -1}},
	{{1, -1, -1}, {1, 1, -1}},
	{{1, 1, -1}, {-1, 1, -1}},
	{{-1, 1, -1}, {-1, -1, -1}},
	// Front face
	{{-1, -1, 1}, {1, -1, 1}},
	{{1, -1, 1}, {1, 1, 1}},
	{{1, 1, 1}, {-1, 1, 1}},
	{{-1, 1, 1}, {-1, -1, 1}},
	// Connecting edges
	{{-1, -1, -1}, {-1, -1, 1}},
	{{1, -1, -1}, {1, -1, 1}},
	{{1, 1, -1}, {1, 1, 1}},
	{{-1, 1, -1}, {-1, 1, 1}},
}

// Outline draws the twelve edges as lines.
func (b Box) Outline(t render.Target) {
	for _, e := range boxEdges {
		t.DrawLine3D(b.Color, b.corner(e[0]), b.Color, b.corner(e[1]))
	}
}

// DemoBoxes returns eight unit boxes on the corners of a cube of side 2.
func DemoBoxes(shade float64) []Box {
	specs := []struct {
		pos   math3d.Vec4
		color math3d.Vec4
	}{
		{math3d.Point(-1, -1, -1), math3d.RGBA(255, 0, 0, 255)},
		{math3d.Point(-1, -1, 1), math3d.RGBA(0, 255, 0, 255)},
		{math3d.Point(-1, 1, -1), math3d.RGBA(0, 0, 255, 255)},
		{math3d.Point(-1, 1, 1), math3d.RGBA(255, 255, 255, 255)},
		{math3d.Point(1, -1, -1), math3d.RGBA(64, 64, 64, 255)},
		{math3d.Point(1, -1, 1), math3d.RGBA(255, 255, 0, 255)},
		{math3d.Point(1, 1, -1), math3d.RGBA(0, 255, 255, 255)},
		{math3d.Point(1, 1, 1), math3d.RGBA(255, 0, 255, 255)},
	}

	boxes := make([]Box, len(specs))
	for i, s := range specs {
		boxes[i] = Box{Position: s.pos, Size: 1, Color: s.color, Shade: shade}
	}
	return boxes
}
