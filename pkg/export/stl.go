package export

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/kernel"
)

var errNoTriangles = errors.New("export: nothing to write, meshes have no triangles")

// triangles flattens meshes into sdfx triangles.
func triangles(meshes []*kernel.Mesh) []*sdf.Triangle3 {
	var tris []*sdf.Triangle3
	for _, m := range meshes {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			var t sdf.Triangle3
			for j := range 3 {
				p := m.Vertex(int(m.Indices[i+j]))
				t[j] = v3.Vec{X: p[0], Y: p[1], Z: p[2]}
			}
			tris = append(tris, &t)
		}
	}
	return tris
}

// WriteSTL writes every mesh into one binary STL file. Materials are lost.
func WriteSTL(path string, meshes []*kernel.Mesh) error {
	tris := triangles(meshes)
	if len(tris) == 0 {
		return errNoTriangles
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("export: writing %s: %w", path, err)
	}
	return nil
}
