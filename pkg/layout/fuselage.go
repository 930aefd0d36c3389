package layout

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/cpacs"
	"github.com/chazu/cabinloft/pkg/kernel"
)

// FuselageShapes returns one hull cross-section per fuselage section. Each
// is the shared profile scaled by the section's (ScaleY, ScaleZ), lifted by
// TranslateZ and moved aft by the summed length of the sections before
// it. The profile's closing point is dropped.
func FuselageShapes(f *cpacs.Fuselage) []kernel.Shape {
	p := f.Profile
	n := max(0, p.Len()-1)
	shapes := make([]kernel.Shape, 0, len(f.Sections))
	offset := 0.0
	for _, sec := range f.Sections {
		shape := make(kernel.Shape, n)
		for i := range n {
			shape[i] = v3.Vec{
				X: offset + p.X[i],
				Y: p.Y[i] * sec.ScaleY,
				Z: p.Z[i]*sec.ScaleZ + sec.TranslateZ,
			}
		}
		shapes = append(shapes, shape)
		offset += sec.Length
	}
	return shapes
}

func (r *run) buildFuselage(f *cpacs.Fuselage) error {
	mesh, err := kernel.Loft("Outer Fuselage", FuselageShapes(f), kernel.WithLogger(r.lg))
	if err != nil {
		return err
	}
	r.scene.AddMesh(r.fuselage, mesh.Name, mesh)
	return nil
}
