package kernel

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/mmp/earcut-go"
)

// Triangulate splits every face into triangles wound like the face. The
// returned slices are parallel: tris[i] was cut from face faceOf[i].
func (m *PolyMesh) Triangulate() (tris [][3]int, faceOf []int) {
	for f := range m.Faces {
		for _, t := range m.TriangulateFace(f) {
			tris = append(tris, t)
			faceOf = append(faceOf, f)
		}
	}
	return tris, faceOf
}

// TriangulateFace cuts face f into len(face)-2 triangles. Triangles and
// quads are fanned; larger polygons, such as loft caps, are ear-clipped in
// the plane they mostly face. A fan is used when ear clipping cannot
// account for every triangle, e.g. for self-overlapping projections.
func (m *PolyMesh) TriangulateFace(f int) [][3]int {
	face := m.Faces[f]
	if len(face) < 3 {
		return nil
	}
	if len(face) <= 4 {
		return fan(face)
	}
	if tris, ok := m.earcutFace(face, m.FaceNormal(f)); ok {
		return tris
	}
	return fan(face)
}

func fan(face []int) [][3]int {
	tris := make([][3]int, 0, len(face)-2)
	for i := 1; i+1 < len(face); i++ {
		tris = append(tris, [3]int{face[0], face[i], face[i+1]})
	}
	return tris
}

func (m *PolyMesh) earcutFace(face []int, n v3.Vec) ([][3]int, bool) {
	if n == (v3.Vec{}) {
		return nil, false
	}

	project := dropAxis(n)
	verts := make([]earcut.Vertex, len(face))
	index := make(map[[2]float64]int, len(face))
	for i, vi := range face {
		p := project(m.Verts[vi])
		if _, dup := index[p]; dup {
			return nil, false
		}
		index[p] = vi
		verts[i].P = p
	}

	var tris [][3]int
	for _, tri := range earcut.Triangulate(earcut.Polygon{Rings: [][]earcut.Vertex{verts}}) {
		var t [3]int
		for i, v := range tri.Vertices {
			vi, ok := index[v.P]
			if !ok {
				return nil, false
			}
			t[i] = vi
		}
		if m.triNormal(t).Dot(n) < 0 {
			t[1], t[2] = t[2], t[1]
		}
		tris = append(tris, t)
	}
	if len(tris) != len(face)-2 {
		return nil, false
	}
	return tris, true
}

// dropAxis returns a projection onto the coordinate plane most
// perpendicular to n.
func dropAxis(n v3.Vec) func(v3.Vec) [2]float64 {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case ax >= ay && ax >= az:
		return func(v v3.Vec) [2]float64 { return [2]float64{v.Y, v.Z} }
	case ay >= az:
		return func(v v3.Vec) [2]float64 { return [2]float64{v.Z, v.X} }
	default:
		return func(v v3.Vec) [2]float64 { return [2]float64{v.X, v.Y} }
	}
}

func (m *PolyMesh) triNormal(t [3]int) v3.Vec {
	a, b, c := m.Verts[t[0]], m.Verts[t[1]], m.Verts[t[2]]
	return b.Sub(a).Cross(c.Sub(a))
}
