package export

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/hpinc/go3mf"
	"github.com/samber/lo"

	"github.com/chazu/cabinloft/pkg/kernel"
	"github.com/chazu/cabinloft/pkg/scene"
)

// unassignedColor is used for faces without a material.
var unassignedColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

const baseMaterialsID = 1

// Model3MF builds a 3MF model with one object per scene object. Each
// triangle refers to its material in a single base-material group whose
// colours come from the scene materials.
func Model3MF(s *scene.Scene, meshes []*kernel.Mesh) (*go3mf.Model, error) {
	if len(triangles(meshes)) == 0 {
		return nil, errNoTriangles
	}

	names := lo.Uniq(lo.Map(meshes, func(m *kernel.Mesh, _ int) string { return m.Material }))
	base := &go3mf.BaseMaterials{ID: baseMaterialsID}
	index := make(map[string]uint32, len(names))
	for _, name := range names {
		c := unassignedColor
		label := name
		if m, ok := s.Materials[name]; ok {
			c = m.Color
		} else if name == "" {
			label = "unassigned"
		}
		index[name] = uint32(len(base.Materials))
		base.Materials = append(base.Materials, go3mf.Base{Name: label, Color: c})
	}

	model := &go3mf.Model{Units: go3mf.UnitMeter}
	model.Resources.Assets = append(model.Resources.Assets, base)

	objects := map[string]*go3mf.Object{}
	nextID := uint32(baseMaterialsID + 1)
	for _, m := range meshes {
		obj, ok := objects[m.PartName]
		if !ok {
			obj = &go3mf.Object{
				ID:     nextID,
				Name:   m.PartName,
				PID:    baseMaterialsID,
				PIndex: index[m.Material],
				Mesh:   new(go3mf.Mesh),
			}
			nextID++
			objects[m.PartName] = obj
			model.Resources.Objects = append(model.Resources.Objects, obj)
			model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: obj.ID})
		}

		mesh := obj.Mesh
		offset := uint32(len(mesh.Vertices.Vertex))
		for i := range m.VertexCount() {
			p := m.Vertex(i)
			mesh.Vertices.Vertex = append(mesh.Vertices.Vertex,
				go3mf.Point3D{float32(p[0]), float32(p[1]), float32(p[2])})
		}
		p := index[m.Material]
		for i := 0; i+2 < len(m.Indices); i += 3 {
			mesh.Triangles.Triangle = append(mesh.Triangles.Triangle, go3mf.Triangle{
				V1: offset + m.Indices[i], V2: offset + m.Indices[i+1], V3: offset + m.Indices[i+2],
				PID: baseMaterialsID, P1: p, P2: p, P3: p,
			})
		}
	}
	return model, nil
}

// Write3MF encodes the scene meshes as a 3MF package to w.
func Write3MF(w io.Writer, s *scene.Scene, meshes []*kernel.Mesh) error {
	model, err := Model3MF(s, meshes)
	if err != nil {
		return err
	}
	if err := go3mf.NewEncoder(w).Encode(model); err != nil {
		return fmt.Errorf("export: encoding 3mf: %w", err)
	}
	return nil
}

// Write3MFFile writes the scene meshes to a 3MF file at path.
func Write3MFFile(path string, s *scene.Scene, meshes []*kernel.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := Write3MF(f, s, meshes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
