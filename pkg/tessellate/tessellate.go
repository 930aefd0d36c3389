// Package tessellate turns a scene into world-space triangle meshes. One
// mesh is produced per object and material.
package tessellate

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/kernel"
	"github.com/chazu/cabinloft/pkg/scene"
)

// Tessellate walks every collection of s in order and produces the
// triangle meshes of its objects. The tessellator is read-only and never
// mutates the scene.
func Tessellate(s *scene.Scene) ([]*kernel.Mesh, error) {
	if s == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, o := range s.Objects() {
		collected, err := Object(o)
		if err != nil {
			return nil, fmt.Errorf("tessellate: object %s: %w", o.Name, err)
		}
		meshes = append(meshes, collected...)
	}
	return meshes, nil
}

// Object tessellates a single object in world space. Faces are grouped by
// material in slot order, faces without a material coming first. Objects
// whose transform reflects space have their winding reversed so that
// faces keep pointing outward.
func Object(o *scene.Object) ([]*kernel.Mesh, error) {
	if o.Mesh == nil || len(o.Mesh.Faces) == 0 {
		return nil, nil
	}

	pm := o.Mesh.Clone()
	if o.Handedness() < 0 {
		pm.FlipAll()
	}
	tris, faceOf := pm.Triangulate()
	pm.Transform(o.Matrix())
	if !pm.IsFinite() {
		return nil, fmt.Errorf("non-finite geometry")
	}

	var normals []v3.Vec
	if pm.Smooth {
		normals = vertexNormals(pm, tris)
	}

	// Group triangles by face material, keeping first-seen order.
	var order []string
	groups := map[string][]int{}
	for i, f := range faceOf {
		name := pm.FaceMaterialName(f)
		if _, ok := groups[name]; !ok {
			order = append(order, name)
		}
		groups[name] = append(groups[name], i)
	}

	meshes := make([]*kernel.Mesh, 0, len(order))
	for _, name := range order {
		b := newBuilder(o.Name, name)
		for _, ti := range groups[name] {
			t := tris[ti]
			if normals != nil {
				b.addSmooth(pm, t, normals)
			} else {
				b.addFlat(pm, t)
			}
		}
		meshes = append(meshes, b.mesh)
	}
	return meshes, nil
}

// vertexNormals averages the normals of the triangles around each vertex,
// weighted by triangle area.
func vertexNormals(pm *kernel.PolyMesh, tris [][3]int) []v3.Vec {
	sums := make([]v3.Vec, len(pm.Verts))
	for _, t := range tris {
		n := triangleNormal(pm, t)
		for _, vi := range t {
			sums[vi] = sums[vi].Add(n)
		}
	}
	for i, n := range sums {
		sums[i] = unit(n)
	}
	return sums
}

// triangleNormal is the unnormalised normal; its length is twice the area.
func triangleNormal(pm *kernel.PolyMesh, t [3]int) v3.Vec {
	a, b, c := pm.Verts[t[0]], pm.Verts[t[1]], pm.Verts[t[2]]
	return b.Sub(a).Cross(c.Sub(a))
}

func unit(n v3.Vec) v3.Vec {
	l := n.Length()
	if l == 0 {
		return v3.Vec{}
	}
	return n.MulScalar(1 / l)
}

// meshBuilder accumulates one output mesh. Smooth meshes share vertices
// between triangles; flat meshes give every triangle its own corners.
type meshBuilder struct {
	mesh  *kernel.Mesh
	index map[int]uint32
}

func newBuilder(part, material string) *meshBuilder {
	return &meshBuilder{
		mesh:  &kernel.Mesh{PartName: part, Material: material},
		index: map[int]uint32{},
	}
}

func (b *meshBuilder) push(p, n v3.Vec) uint32 {
	m := b.mesh
	i := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
	m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	return i
}

func (b *meshBuilder) addSmooth(pm *kernel.PolyMesh, t [3]int, normals []v3.Vec) {
	for _, vi := range t {
		i, ok := b.index[vi]
		if !ok {
			i = b.push(pm.Verts[vi], normals[vi])
			b.index[vi] = i
		}
		b.mesh.Indices = append(b.mesh.Indices, i)
	}
}

func (b *meshBuilder) addFlat(pm *kernel.PolyMesh, t [3]int) {
	n := unit(triangleNormal(pm, t))
	for _, vi := range t {
		b.mesh.Indices = append(b.mesh.Indices, b.push(pm.Verts[vi], n))
	}
}
