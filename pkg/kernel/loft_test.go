package kernel

import (
	"bytes"
	"log/slog"
	"math"
	"slices"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/log"
)

func square(x float64) Shape {
	return Shape{
		{X: x, Y: 0, Z: 0},
		{X: x, Y: 1, Z: 0},
		{X: x, Y: 1, Z: 1},
		{X: x, Y: 0, Z: 1},
	}
}

// assertClosedConsistent checks that every directed edge is used exactly
// once and its reverse exactly once, i.e. the mesh is closed and
// consistently wound.
func assertClosedConsistent(t *testing.T, m *PolyMesh) {
	t.Helper()
	directed := map[[2]int]int{}
	for _, f := range m.Faces {
		for i, a := range f {
			directed[[2]int{a, f[(i+1)%len(f)]}]++
		}
	}
	for e, n := range directed {
		if n != 1 {
			t.Fatalf("directed edge %v used %d times", e, n)
		}
		if directed[[2]int{e[1], e[0]}] != 1 {
			t.Fatalf("edge %v has no opposite", e)
		}
	}
}

func TestLoftCounts(t *testing.T) {
	tests := []struct {
		name   string
		shapes int
		points int
	}{
		{"two squares", 2, 4},
		{"three squares", 3, 4},
		{"five hexagons", 5, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var shapes []Shape
			for s := 0; s < tt.shapes; s++ {
				shape := make(Shape, tt.points)
				for i := range shape {
					a := 2 * math.Pi * float64(i) / float64(tt.points)
					shape[i] = v3.Vec{X: float64(s), Y: math.Cos(a), Z: math.Sin(a)}
				}
				shapes = append(shapes, shape)
			}

			m, err := Loft("tube", shapes)
			if err != nil {
				t.Fatalf("Loft: %v", err)
			}
			if got, want := len(m.Verts), tt.shapes*tt.points; got != want {
				t.Errorf("vertices = %d, want %d", got, want)
			}
			if got, want := len(m.Faces), 2+(tt.shapes-1)*tt.points; got != want {
				t.Errorf("faces = %d, want %d", got, want)
			}
			if !m.Smooth {
				t.Error("loft should be smooth shaded")
			}
			assertClosedConsistent(t, m)
			if m.SignedVolume() <= 0 {
				t.Errorf("signed volume = %v, want > 0", m.SignedVolume())
			}
		})
	}
}

func TestLoftOutwardRegardlessOfShapeOrder(t *testing.T) {
	for _, shapes := range [][]Shape{
		{square(0), square(1), square(2)},
		{square(2), square(1), square(0)},
		{slices.Clone(square(0)), square(1)},
	} {
		m, err := Loft("box", shapes)
		if err != nil {
			t.Fatal(err)
		}
		want := float64(len(shapes) - 1)
		if v := m.SignedVolume(); math.Abs(v-want) > 1e-9 {
			t.Errorf("volume = %v, want %v", v, want)
		}
	}

	// Reversing the point order inside every shape flips the initial
	// winding; the result must still point outward.
	rev := []Shape{square(0), square(1)}
	for _, s := range rev {
		slices.Reverse(s)
	}
	m, err := Loft("box", rev)
	if err != nil {
		t.Fatal(err)
	}
	if m.SignedVolume() <= 0 {
		t.Errorf("reversed shapes produced inward normals")
	}
}

func TestLoftDropsEmptyShape(t *testing.T) {
	var buf bytes.Buffer
	lg := log.NewWriter(&buf, slog.LevelDebug)

	m, err := Loft("hull", []Shape{{}, square(0), square(1)}, WithLogger(lg))
	if err != nil {
		t.Fatalf("Loft: %v", err)
	}
	if len(m.Verts) != 8 || len(m.Faces) != 6 {
		t.Errorf("got %d verts %d faces, want 8 and 6", len(m.Verts), len(m.Faces))
	}
	if !strings.Contains(buf.String(), "dropping empty shape") {
		t.Errorf("expected warning, log was %q", buf.String())
	}
}

func TestLoftErrors(t *testing.T) {
	tests := []struct {
		name   string
		shapes []Shape
	}{
		{"no shapes", nil},
		{"only empty", []Shape{{}, {}}},
		{"unequal", []Shape{square(0), square(1)[:3]}},
		{"too few points", []Shape{{{X: 0}, {X: 1}}, {{X: 0, Y: 1}, {X: 1, Y: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Loft("bad", tt.shapes); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoftMaterial(t *testing.T) {
	m, err := Loft("floor", []Shape{square(0), square(1)}, WithMaterial("Fabric_black"))
	if err != nil {
		t.Fatal(err)
	}
	for f := range m.Faces {
		if got := m.FaceMaterialName(f); got != "Fabric_black" {
			t.Fatalf("face %d material = %q", f, got)
		}
	}

	m, err = Loft("hull", []Shape{square(0), square(1)})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Materials) != 0 || m.FaceMaterialName(0) != "" {
		t.Errorf("loft without material has slots %v", m.Materials)
	}
}

func TestLoftFloorSlab(t *testing.T) {
	// A half floor outline closed on the centre line, extruded 5 cm down.
	top := Shape{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 0}}
	bottom := make(Shape, len(top))
	for i, v := range top {
		bottom[i] = v3.Vec{X: v.X, Y: v.Y, Z: -0.05}
	}
	m, err := Loft("Deck Floor R", []Shape{top, bottom})
	if err != nil {
		t.Fatal(err)
	}
	assertClosedConsistent(t, m)
	if v := m.SignedVolume(); math.Abs(v-0.1) > 1e-9 {
		t.Errorf("volume = %v, want 0.1", v)
	}
}

func TestVerifyNormals(t *testing.T) {
	m, err := Loft("box", []Shape{square(0), square(1)}, WithVerify(false))
	if err != nil {
		t.Fatal(err)
	}
	if flips := m.VerifyNormals(); flips != 0 {
		t.Errorf("verify flipped %d faces of an outward mesh", flips)
	}

	m.FlipAll()
	if m.SignedVolume() >= 0 {
		t.Fatal("FlipAll should invert the volume")
	}
	if flips := m.VerifyNormals(); flips != len(m.Faces) {
		t.Errorf("verify flipped %d faces, want %d", flips, len(m.Faces))
	}
	if m.SignedVolume() <= 0 {
		t.Error("verify did not restore outward normals")
	}
	assertClosedConsistent(t, m)
}

func TestRecalcNormalsFixesMixedWinding(t *testing.T) {
	m, err := Loft("box", []Shape{square(0), square(1)})
	if err != nil {
		t.Fatal(err)
	}
	m.FlipFace(2)
	m.FlipFace(5)
	m.RecalcNormals()
	assertClosedConsistent(t, m)
	if m.SignedVolume() <= 0 {
		t.Error("RecalcNormals left inward normals")
	}
}

func TestPolyMeshAppendAndClone(t *testing.T) {
	a, _ := Loft("a", []Shape{square(0), square(1)}, WithMaterial("cushion"))
	b, _ := Loft("b", []Shape{square(2), square(3)}, WithMaterial("base"))
	c, _ := Loft("c", []Shape{square(4), square(5)}, WithMaterial("cushion"))

	m := NewPolyMesh("seat")
	m.Append(a)
	m.Append(b)
	m.Append(c)

	if !slices.Equal(m.Materials, []string{"cushion", "base"}) {
		t.Errorf("Materials = %v", m.Materials)
	}
	if len(m.Verts) != 24 || len(m.Faces) != 18 {
		t.Errorf("got %d verts %d faces", len(m.Verts), len(m.Faces))
	}
	if m.FaceMaterialName(17) != "cushion" || m.FaceMaterialName(6) != "base" {
		t.Error("material slots not remapped")
	}
	if m.Faces[6][0] < 8 {
		t.Error("face indices not offset")
	}

	cl := m.Clone()
	cl.Verts[0] = v3.Vec{X: 99}
	cl.Faces[0][0] = 42
	cl.Materials[0] = "x"
	if m.Verts[0].X == 99 || m.Faces[0][0] == 42 || m.Materials[0] == "x" {
		t.Error("Clone shares storage with the original")
	}

	ext := m.Extent()
	if ext != (v3.Vec{X: 5, Y: 1, Z: 1}) {
		t.Errorf("Extent = %v", ext)
	}
}

func TestTriangulate(t *testing.T) {
	// Concave L-shaped cap.
	l := Shape{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1},
		{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2},
	}
	lower := make(Shape, len(l))
	for i, v := range l {
		lower[i] = v3.Vec{X: v.X, Y: v.Y, Z: -1}
	}
	m, err := Loft("L", []Shape{l, lower})
	if err != nil {
		t.Fatal(err)
	}

	tris, faceOf := m.Triangulate()
	// 2 caps x 4 triangles + 6 quads x 2 triangles.
	if len(tris) != 20 || len(faceOf) != 20 {
		t.Fatalf("got %d triangles, want 20", len(tris))
	}

	var capArea float64
	for i, tri := range tris {
		n := m.FaceNormal(faceOf[i])
		tn := m.triNormal(tri)
		if tn.Dot(n) <= 0 {
			t.Errorf("triangle %d wound against face %d", i, faceOf[i])
		}
		if faceOf[i] == 0 {
			capArea += tn.Length() / 2
		}
	}
	if math.Abs(capArea-3) > 1e-9 {
		t.Errorf("front cap area = %v, want 3", capArea)
	}
}

func TestTriangulateFaceFan(t *testing.T) {
	m := &PolyMesh{
		Verts: []v3.Vec{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
		Faces: [][]int{{0, 1, 2, 3}},
	}
	got := m.TriangulateFace(0)
	want := [][3]int{{0, 1, 2}, {0, 2, 3}}
	if !slices.Equal(got, want) {
		t.Errorf("TriangulateFace = %v, want %v", got, want)
	}
}
