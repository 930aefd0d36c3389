package scene

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/kernel"
)

// TemplateRotationX is the X rotation given to every instance. Templates
// are modelled Y-up, so the rotation stands them upright in the Z-up
// scene: local X stays the length, local Y becomes the height and local Z
// the width across the cabin.
const TemplateRotationX = math.Pi / 2

// AddTemplate links a template object built from mesh to c.
func (s *Scene) AddTemplate(c *Collection, name string, mesh *kernel.PolyMesh) *Object {
	o := s.AddMesh(c, name, mesh)
	o.Template = o.Name
	return o
}

// Instantiate copies tmpl into c at position. The mesh and the transform
// are deep-copied, the X rotation is set to TemplateRotationX and the
// requested dimensions are applied by scaling relative to the mesh bounds.
func (s *Scene) Instantiate(tmpl *Object, c *Collection, position v3.Vec, opts ...SizeOption) *Object {
	o := &Object{
		Name:     s.uniqueName(tmpl.Name),
		Template: tmpl.Name,
		Mesh:     tmpl.Mesh.Clone(),
		Location: position,
		Rotation: tmpl.Rotation,
		Scale:    tmpl.Scale,
		Mirrored: tmpl.Mirrored,
	}
	o.Rotation.X = TemplateRotationX
	s.link(c, o)
	o.SetDimensions(opts...)
	return o
}
