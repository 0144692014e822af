package scene

import (
	"fmt"

	"github.com/taigrr/scanline/pkg/render"
)

// Drawable is anything that can draw itself into a render target.
type Drawable interface {
	Draw(t render.Target)
}

// Outliner draws an edge-only version of itself.
type Outliner interface {
	Outline(t render.Target)
}

// Scene is an ordered list of objects sharing one modelview transform.
type Scene struct {
	Objects   []Drawable
	Wireframe bool // draw outlines instead of filled faces where supported
}

// Add appends objects to the scene.
func (s *Scene) Add(objs ...Drawable) {
	s.Objects = append(s.Objects, objs...)
}

// Demo returns the eight-box demo scene.
func Demo(shade float64) *Scene {
	s := &Scene{}
	for _, b := range DemoBoxes(shade) {
		s.Add(b)
	}
	return s
}

// Render draws one frame: clear, set the rig's modelview, draw every object
// in order, then flush the surface.
func (s *Scene) Render(r *render.Rasterizer, rig *Rig) error {
	r.ResetStats()
	r.Clear()
	r.SetModelviewMatrix(rig.Modelview())

	for _, obj := range s.Objects {
		if o, ok := obj.(Outliner); ok && s.Wireframe {
			o.Outline(r)
			continue
		}
		obj.Draw(r)
	}

	if err := r.Flush(); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	return nil
}
