package tessellate_test

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/kernel"
	"github.com/chazu/cabinloft/pkg/scene"
	"github.com/chazu/cabinloft/pkg/tessellate"
)

// makeBox creates a unit-cube mesh spanning [0,x]×[0,y]×[0,z]. The top
// face gets material top, every other face material side.
func makeBox(name string, x, y, z float64, side, top string) *kernel.PolyMesh {
	m := kernel.NewPolyMesh(name)
	m.Verts = []v3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: x, Y: 0, Z: 0}, {X: x, Y: y, Z: 0}, {X: 0, Y: y, Z: 0},
		{X: 0, Y: 0, Z: z}, {X: x, Y: 0, Z: z}, {X: x, Y: y, Z: z}, {X: 0, Y: y, Z: z},
	}
	s := m.MaterialSlot(side)
	tp := m.MaterialSlot(top)
	m.AddFace([]int{0, 3, 2, 1}, s)
	m.AddFace([]int{4, 5, 6, 7}, tp)
	m.AddFace([]int{0, 1, 5, 4}, s)
	m.AddFace([]int{2, 3, 7, 6}, s)
	m.AddFace([]int{1, 2, 6, 5}, s)
	m.AddFace([]int{0, 4, 7, 3}, s)
	return m
}

// volume returns the signed volume enclosed by meshes, positive when the
// triangles face outward.
func volume(meshes []*kernel.Mesh) float64 {
	var vol float64
	for _, m := range meshes {
		for i := 0; i < len(m.Indices); i += 3 {
			a := m.Vertex(int(m.Indices[i]))
			b := m.Vertex(int(m.Indices[i+1]))
			c := m.Vertex(int(m.Indices[i+2]))
			vol += a[0]*(b[1]*c[2]-b[2]*c[1]) - a[1]*(b[0]*c[2]-b[2]*c[0]) + a[2]*(b[0]*c[1]-b[1]*c[0])
		}
	}
	return vol / 6
}

func TestSingleBox(t *testing.T) {
	s := scene.New()
	c := s.AddCollection(scene.CollectionFloorElements)
	s.AddMesh(c, "shelf", makeBox("shelf", 2, 1, 1, "wood", "wood"))

	meshes, err := tessellate.Tessellate(s)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}

	m := meshes[0]
	if m.PartName != "shelf" || m.Material != "wood" {
		t.Errorf("part, material = %q, %q", m.PartName, m.Material)
	}
	if m.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", m.TriangleCount())
	}
	// Flat shading gives every triangle its own corners.
	if m.VertexCount() != 36 {
		t.Errorf("expected 36 vertices, got %d", m.VertexCount())
	}
	if v := volume(meshes); math.Abs(v-2) > 1e-6 {
		t.Errorf("volume = %v, want 2", v)
	}
}

func TestSplitByMaterial(t *testing.T) {
	s := scene.New()
	c := s.AddCollection(scene.CollectionSeats)
	s.AddMesh(c, "seat", makeBox("seat", 1, 1, 1, "Fabric_blue_dark", "Leather_brown"))

	meshes, err := tessellate.Tessellate(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(meshes))
	}
	tests := []struct {
		material  string
		triangles int
	}{
		{"Fabric_blue_dark", 10},
		{"Leather_brown", 2},
	}
	for i, tt := range tests {
		if meshes[i].Material != tt.material || meshes[i].TriangleCount() != tt.triangles {
			t.Errorf("mesh %d = %s with %d triangles, want %s with %d",
				i, meshes[i].Material, meshes[i].TriangleCount(), tt.material, tt.triangles)
		}
	}
}

func TestInstanceTransform(t *testing.T) {
	s := scene.New()
	tmpl := s.AddTemplate(s.AddCollection(scene.CollectionTemplates), "block", makeBox("block", 1, 1, 1, "a", "a"))
	seats := s.AddCollection(scene.CollectionSeats)
	s.Instantiate(tmpl, seats, v3.Vec{X: 10, Y: 5, Z: 1}, scene.WithX(2))

	meshes, err := tessellate.Object(seats.Objects[0])
	if err != nil {
		t.Fatal(err)
	}
	// Standing the template up maps local y to world z and local z to
	// world -y.
	lo := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	m := meshes[0]
	for i := range m.VertexCount() {
		v := m.Vertex(i)
		for a := range 3 {
			lo[a] = math.Min(lo[a], v[a])
			hi[a] = math.Max(hi[a], v[a])
		}
	}
	wantLo := [3]float64{10, 4, 1}
	wantHi := [3]float64{12, 5, 2}
	for a := range 3 {
		if math.Abs(lo[a]-wantLo[a]) > 1e-5 || math.Abs(hi[a]-wantHi[a]) > 1e-5 {
			t.Fatalf("bounds = %v..%v, want %v..%v", lo, hi, wantLo, wantHi)
		}
	}
}

func TestMirroredWindingStaysOutward(t *testing.T) {
	tests := []struct {
		name   string
		mirror [3]bool
		scaleX float64
	}{
		{"plain", [3]bool{}, 1},
		{"mirrored y", [3]bool{false, true, false}, 1},
		{"mirrored x and y", [3]bool{true, true, false}, 1},
		{"negative scale", [3]bool{}, -1},
		{"negative scale mirrored", [3]bool{false, true, false}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene.New()
			o := s.AddMesh(s.AddCollection(scene.CollectionLining), "panel", makeBox("panel", 1, 2, 3, "a", "b"))
			o.Location = v3.Vec{X: 1, Y: 2, Z: 3}
			o.Rotation = v3.Vec{X: 0.3, Z: 1.1}
			o.Scale.X = tt.scaleX
			o.Mirror(tt.mirror[0], tt.mirror[1], tt.mirror[2])

			meshes, err := tessellate.Object(o)
			if err != nil {
				t.Fatal(err)
			}
			if v := volume(meshes); math.Abs(v-6) > 1e-4 {
				t.Errorf("volume = %v, want +6", v)
			}
		})
	}
}

func TestSmoothSharesVertices(t *testing.T) {
	s := scene.New()
	box := makeBox("hull", 1, 1, 1, "metal", "metal")
	box.Smooth = true
	o := s.AddMesh(s.AddCollection(scene.CollectionFuselage), "hull", box)

	meshes, err := tessellate.Object(o)
	if err != nil {
		t.Fatal(err)
	}
	m := meshes[0]
	if m.VertexCount() != 8 {
		t.Errorf("expected 8 shared vertices, got %d", m.VertexCount())
	}
	for i := range m.VertexCount() {
		n := v3.Vec{X: float64(m.Normals[3*i]), Y: float64(m.Normals[3*i+1]), Z: float64(m.Normals[3*i+2])}
		if math.Abs(n.Length()-1) > 1e-5 {
			t.Errorf("normal %d = %v is not unit length", i, n)
		}
		// Corner normals point away from the centre.
		v := m.Vertex(i)
		out := v3.Vec{X: v[0] - 0.5, Y: v[1] - 0.5, Z: v[2] - 0.5}
		if n.Dot(out) <= 0 {
			t.Errorf("normal %d points inward", i)
		}
	}
}

func TestDoesNotMutateScene(t *testing.T) {
	s := scene.New()
	o := s.AddMesh(s.AddCollection(scene.CollectionCeiling), "bin", makeBox("bin", 1, 1, 1, "a", "a"))
	o.Location = v3.Vec{X: 5}
	o.Mirror(false, true, false)
	before := o.Mesh.Clone()

	if _, err := tessellate.Tessellate(s); err != nil {
		t.Fatal(err)
	}
	for i, v := range o.Mesh.Verts {
		if v != before.Verts[i] {
			t.Fatalf("vertex %d changed", i)
		}
	}
	for f, face := range o.Mesh.Faces {
		for i := range face {
			if face[i] != before.Faces[f][i] {
				t.Fatalf("face %d changed winding", f)
			}
		}
	}
}

func TestEmptyScene(t *testing.T) {
	meshes, err := tessellate.Tessellate(scene.New())
	if err != nil || len(meshes) != 0 {
		t.Fatalf("got %d meshes, %v", len(meshes), err)
	}
	if meshes, err := tessellate.Tessellate(nil); err != nil || meshes != nil {
		t.Fatalf("nil scene: %v, %v", meshes, err)
	}
}

func TestNonFiniteTransform(t *testing.T) {
	s := scene.New()
	o := s.AddMesh(s.AddCollection(scene.CollectionSeats), "broken", makeBox("broken", 1, 1, 1, "a", "a"))
	o.Location.X = math.NaN()
	if _, err := tessellate.Tessellate(s); err == nil {
		t.Fatal("expected an error for a non-finite transform")
	}
}
