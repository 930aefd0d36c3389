package kernel

import (
	"math"
	"slices"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Shape is one ordered cross-section of a loft.
type Shape []v3.Vec

// PolyMesh is an indexed polygon mesh. Faces are vertex index lists of any
// length >= 3, wound counter-clockwise when seen from outside. Every face
// refers to one material slot; slot names are resolved against a material
// library when the mesh is placed in a scene.
type PolyMesh struct {
	Name         string
	Verts        []v3.Vec
	Faces        [][]int
	FaceMaterial []int    // slot index per face, -1 for none
	Materials    []string // slot names
	Smooth       bool
}

// NewPolyMesh returns an empty mesh.
func NewPolyMesh(name string) *PolyMesh {
	return &PolyMesh{Name: name}
}

// AddFace appends a face using material slot mat (-1 for none).
func (m *PolyMesh) AddFace(face []int, mat int) {
	m.Faces = append(m.Faces, face)
	m.FaceMaterial = append(m.FaceMaterial, mat)
}

// MaterialSlot returns the slot index for name, adding it if needed.
func (m *PolyMesh) MaterialSlot(name string) int {
	if i := slices.Index(m.Materials, name); i >= 0 {
		return i
	}
	m.Materials = append(m.Materials, name)
	return len(m.Materials) - 1
}

// SetMaterial replaces all slots with the single slot name and assigns it
// to every face.
func (m *PolyMesh) SetMaterial(name string) {
	m.Materials = []string{name}
	for i := range m.FaceMaterial {
		m.FaceMaterial[i] = 0
	}
}

// FaceMaterialName returns the slot name of face f, or "" if it has none.
func (m *PolyMesh) FaceMaterialName(f int) string {
	slot := m.FaceMaterial[f]
	if slot < 0 || slot >= len(m.Materials) {
		return ""
	}
	return m.Materials[slot]
}

// Append merges o into m. Material slots are matched by name.
func (m *PolyMesh) Append(o *PolyMesh) {
	offset := len(m.Verts)
	m.Verts = append(m.Verts, o.Verts...)

	remap := make([]int, len(o.Materials))
	for i, name := range o.Materials {
		remap[i] = m.MaterialSlot(name)
	}
	for f, face := range o.Faces {
		nf := make([]int, len(face))
		for i, vi := range face {
			nf[i] = vi + offset
		}
		slot := o.FaceMaterial[f]
		if slot >= 0 {
			slot = remap[slot]
		}
		m.AddFace(nf, slot)
	}
	m.Smooth = m.Smooth || o.Smooth
}

// Clone returns a deep copy of m.
func (m *PolyMesh) Clone() *PolyMesh {
	c := &PolyMesh{
		Name:         m.Name,
		Verts:        slices.Clone(m.Verts),
		Faces:        make([][]int, len(m.Faces)),
		FaceMaterial: slices.Clone(m.FaceMaterial),
		Materials:    slices.Clone(m.Materials),
		Smooth:       m.Smooth,
	}
	for i, f := range m.Faces {
		c.Faces[i] = slices.Clone(f)
	}
	return c
}

// Transform applies t to every vertex in place.
func (m *PolyMesh) Transform(t sdf.M44) {
	for i, v := range m.Verts {
		m.Verts[i] = t.MulPosition(v)
	}
}

// BoundingBox returns the axis-aligned bounds of the vertices. An empty mesh
// has a zero box.
func (m *PolyMesh) BoundingBox() sdf.Box3 {
	if len(m.Verts) == 0 {
		return sdf.Box3{}
	}
	bb := sdf.Box3{Min: m.Verts[0], Max: m.Verts[0]}
	for _, v := range m.Verts[1:] {
		bb.Min = bb.Min.Min(v)
		bb.Max = bb.Max.Max(v)
	}
	return bb
}

// Extent is the size of the bounding box along each axis.
func (m *PolyMesh) Extent() v3.Vec {
	bb := m.BoundingBox()
	return bb.Max.Sub(bb.Min)
}

// FaceNormal returns the unit normal of face f using Newell's method, which
// tolerates non-planar and concave polygons. Degenerate faces return the
// zero vector.
func (m *PolyMesh) FaceNormal(f int) v3.Vec {
	face := m.Faces[f]
	var n v3.Vec
	for i, vi := range face {
		a := m.Verts[vi]
		b := m.Verts[face[(i+1)%len(face)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	l := n.Length()
	if l == 0 {
		return v3.Vec{}
	}
	return n.MulScalar(1 / l)
}

// faceVolume is six times the signed volume the face sweeps to the origin.
func (m *PolyMesh) faceVolume(face []int) float64 {
	var vol float64
	p0 := m.Verts[face[0]]
	for i := 1; i+1 < len(face); i++ {
		p1 := m.Verts[face[i]]
		p2 := m.Verts[face[i+1]]
		vol += p0.Dot(p1.Cross(p2))
	}
	return vol
}

// SignedVolume returns the enclosed volume, positive when faces point
// outward. The result is only meaningful for closed meshes.
func (m *PolyMesh) SignedVolume() float64 {
	var vol float64
	for _, face := range m.Faces {
		vol += m.faceVolume(face)
	}
	return vol / 6
}

// FlipFace reverses the winding of face f.
func (m *PolyMesh) FlipFace(f int) {
	slices.Reverse(m.Faces[f])
}

// FlipAll reverses the winding of every face.
func (m *PolyMesh) FlipAll() {
	for f := range m.Faces {
		m.FlipFace(f)
	}
}

// IsFinite reports whether every vertex coordinate is a finite number.
func (m *PolyMesh) IsFinite() bool {
	for _, v := range m.Verts {
		if !finite(v.X) || !finite(v.Y) || !finite(v.Z) {
			return false
		}
	}
	return true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
