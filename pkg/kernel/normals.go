package kernel

import "math"

// edgeKey identifies an undirected edge.
type edgeKey struct{ a, b int }

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// adjacency maps every undirected edge to the faces that use it.
func (m *PolyMesh) adjacency() map[edgeKey][]int {
	adj := make(map[edgeKey][]int)
	for f, face := range m.Faces {
		for i, a := range face {
			k := newEdgeKey(a, face[(i+1)%len(face)])
			adj[k] = append(adj[k], f)
		}
	}
	return adj
}

// hasDirectedEdge reports whether face f walks from a to b.
func (m *PolyMesh) hasDirectedEdge(f, a, b int) bool {
	face := m.Faces[f]
	for i, v := range face {
		if v == a && face[(i+1)%len(face)] == b {
			return true
		}
	}
	return false
}

// propagate walks the component containing seed and flips every neighbour
// whose winding disagrees with the face it was reached from. The seed's
// winding is taken as given. It returns the component's faces and the
// number of flips.
func (m *PolyMesh) propagate(seed int, adj map[edgeKey][]int, visited []bool) (comp []int, flips int) {
	queue := []int{seed}
	visited[seed] = true
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		comp = append(comp, f)

		face := m.Faces[f]
		for i, a := range face {
			b := face[(i+1)%len(face)]
			for _, g := range adj[newEdgeKey(a, b)] {
				if visited[g] {
					continue
				}
				// A consistent neighbour walks the shared edge backwards.
				if m.hasDirectedEdge(g, a, b) {
					m.FlipFace(g)
					flips++
				}
				visited[g] = true
				queue = append(queue, g)
			}
		}
	}
	return comp, flips
}

// RecalcNormals makes face winding consistent across shared edges and then
// turns each connected component so that its signed volume is positive,
// i.e. its faces point outward. It returns the number of faces flipped.
func (m *PolyMesh) RecalcNormals() int {
	adj := m.adjacency()
	visited := make([]bool, len(m.Faces))
	total := 0
	for f := range m.Faces {
		if visited[f] {
			continue
		}
		comp, flips := m.propagate(f, adj, visited)
		total += flips

		var vol float64
		for _, cf := range comp {
			vol += m.faceVolume(m.Faces[cf])
		}
		if vol < 0 {
			for _, cf := range comp {
				m.FlipFace(cf)
			}
			total += len(comp)
		}
	}
	return total
}

// VerifyNormals is an independent outward-orientation pass. For each
// connected component it picks the face touching the vertex with the
// largest X coordinate whose normal is most aligned with X, forces that
// face to point towards +X and propagates its winding across the
// component. It returns the number of faces flipped; zero means the mesh
// was already consistently outward.
func (m *PolyMesh) VerifyNormals() int {
	adj := m.adjacency()
	inComp := make([]bool, len(m.Faces))
	visited := make([]bool, len(m.Faces))
	total := 0

	for f := range m.Faces {
		if inComp[f] {
			continue
		}
		comp := m.component(f, adj, inComp)
		seed := m.extremeFace(comp)

		if n := m.FaceNormal(seed); n.X < -1e-9 {
			m.FlipFace(seed)
			total++
		}
		_, flips := m.propagate(seed, adj, visited)
		total += flips
	}
	return total
}

// component collects the faces connected to start without changing them.
func (m *PolyMesh) component(start int, adj map[edgeKey][]int, seen []bool) []int {
	queue := []int{start}
	seen[start] = true
	var comp []int
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		comp = append(comp, f)
		face := m.Faces[f]
		for i, a := range face {
			for _, g := range adj[newEdgeKey(a, face[(i+1)%len(face)])] {
				if !seen[g] {
					seen[g] = true
					queue = append(queue, g)
				}
			}
		}
	}
	return comp
}

// extremeFace returns the face of comp used to seed VerifyNormals.
func (m *PolyMesh) extremeFace(comp []int) int {
	maxV, maxX := -1, math.Inf(-1)
	for _, f := range comp {
		for _, vi := range m.Faces[f] {
			if x := m.Verts[vi].X; x > maxX {
				maxV, maxX = vi, x
			}
		}
	}

	best, bestX := comp[0], -1.0
	for _, f := range comp {
		touches := false
		for _, vi := range m.Faces[f] {
			if vi == maxV {
				touches = true
				break
			}
		}
		if !touches {
			continue
		}
		if nx := math.Abs(m.FaceNormal(f).X); nx > bestX {
			best, bestX = f, nx
		}
	}
	return best
}
