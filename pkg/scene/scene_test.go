package scene

import (
	"math"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/kernel"
)

// boxMesh returns an axis-aligned box spanning [0,x]×[0,y]×[0,z].
func boxMesh(x, y, z float64) *kernel.PolyMesh {
	m := kernel.NewPolyMesh("box")
	m.Verts = []v3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: x, Y: 0, Z: 0}, {X: x, Y: y, Z: 0}, {X: 0, Y: y, Z: 0},
		{X: 0, Y: 0, Z: z}, {X: x, Y: 0, Z: z}, {X: x, Y: y, Z: z}, {X: 0, Y: y, Z: z},
	}
	slot := m.MaterialSlot("base")
	for _, f := range [][]int{
		{0, 3, 2, 1}, {4, 5, 6, 7},
		{0, 1, 5, 4}, {2, 3, 7, 6},
		{1, 2, 6, 5}, {0, 4, 7, 3},
	} {
		m.AddFace(f, slot)
	}
	return m
}

const eps = 1e-9

func near(a, b v3.Vec) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestNewScene(t *testing.T) {
	s := New()
	if s.Materials == nil {
		t.Fatal("Materials map should be initialized")
	}
	if s.ObjectCount() != 0 || len(s.Collections) != 0 {
		t.Error("new scene should be empty")
	}
}

func TestCollections(t *testing.T) {
	s := New()
	names := []string{
		CollectionCeiling, CollectionLining, CollectionTemplates,
		CollectionSeats, CollectionFloorElements, CollectionFuselage,
	}
	for _, n := range names {
		s.AddCollection(n)
	}
	if again := s.AddCollection(CollectionSeats); again != s.Collection(CollectionSeats) {
		t.Error("AddCollection should return the existing collection")
	}
	if len(s.Collections) != len(names) {
		t.Fatalf("collections = %d, want %d", len(s.Collections), len(names))
	}
	for i, c := range s.Collections {
		if c.Name != names[i] {
			t.Errorf("collection %d = %q, want %q", i, c.Name, names[i])
		}
	}

	tmpl := s.AddTemplate(s.Collection(CollectionTemplates), "bin", boxMesh(1, 1, 1))
	s.Instantiate(tmpl, s.Collection(CollectionCeiling), v3.Vec{})

	if !s.RemoveCollection(CollectionTemplates) {
		t.Fatal("RemoveCollection returned false")
	}
	if s.RemoveCollection(CollectionTemplates) {
		t.Error("second RemoveCollection should return false")
	}
	if s.Lookup("bin") != nil {
		t.Error("template still reachable after its collection was removed")
	}
	if s.Lookup("bin.001") == nil {
		t.Error("instance should survive template removal")
	}
	if s.ObjectCount() != 1 {
		t.Errorf("object count = %d, want 1", s.ObjectCount())
	}
}

func TestUniqueNames(t *testing.T) {
	s := New()
	c := s.AddCollection(CollectionFloorElements)
	a := s.AddMesh(c, "Deck Floor R", boxMesh(1, 1, 1))
	b := s.AddMesh(c, "Deck Floor R", boxMesh(1, 1, 1))
	d := s.AddMesh(c, "Deck Floor R", boxMesh(1, 1, 1))
	if a.Name != "Deck Floor R" || b.Name != "Deck Floor R.001" || d.Name != "Deck Floor R.002" {
		t.Errorf("names = %q %q %q", a.Name, b.Name, d.Name)
	}
	if a.ID == b.ID || b.ID == d.ID {
		t.Error("object IDs should be distinct")
	}
	if a.Collection != CollectionFloorElements {
		t.Errorf("Collection = %q", a.Collection)
	}
}

func TestInstantiate(t *testing.T) {
	s := New()
	tmplCol := s.AddCollection(CollectionTemplates)
	seats := s.AddCollection(CollectionSeats)
	tmpl := s.AddTemplate(tmplCol, "ec_3", boxMesh(2, 1, 4))

	pos := v3.Vec{X: 5, Y: -1, Z: 0.2}
	o := s.Instantiate(tmpl, seats, pos, WithX(1), WithZ(2))

	if o.Template != "ec_3" || o.Collection != CollectionSeats {
		t.Errorf("instance = %+v", o)
	}
	if o.Location != pos {
		t.Errorf("Location = %v, want %v", o.Location, pos)
	}
	if o.Rotation.X != TemplateRotationX {
		t.Errorf("Rotation.X = %v, want %v", o.Rotation.X, TemplateRotationX)
	}
	if want := (v3.Vec{X: 1, Y: 1, Z: 2}); !near(o.Dimensions(), want) {
		t.Errorf("Dimensions = %v, want %v", o.Dimensions(), want)
	}
	if want := (v3.Vec{X: 0.5, Y: 1, Z: 0.5}); !near(o.Scale, want) {
		t.Errorf("Scale = %v, want %v", o.Scale, want)
	}

	// Deep copy: editing the instance must not touch the template.
	o.Mesh.Verts[0] = v3.Vec{X: -7}
	o.Mesh.SetMaterial("Wood")
	if tmpl.Mesh.Verts[0].X == -7 || tmpl.Mesh.Materials[0] != "base" {
		t.Error("instance shares its mesh with the template")
	}
	if tmpl.Rotation.X != 0 || tmpl.Scale != unitScale {
		t.Error("instantiation changed the template transform")
	}
}

func TestInstanceStandsUpright(t *testing.T) {
	s := New()
	tmpl := s.AddTemplate(s.AddCollection(CollectionTemplates), "wall", boxMesh(1, 1, 1))
	o := s.Instantiate(tmpl, s.AddCollection(CollectionFloorElements), v3.Vec{X: 1, Y: 2, Z: 3})

	m := o.Matrix()
	// Local +Y (height) points up, local +Z (width) points to world -Y.
	if got := m.MulPosition(v3.Vec{Y: 1}); !near(got, v3.Vec{X: 1, Y: 2, Z: 4}) {
		t.Errorf("local Y maps to %v", got)
	}
	if got := m.MulPosition(v3.Vec{Z: 1}); !near(got, v3.Vec{X: 1, Y: 1, Z: 3}) {
		t.Errorf("local Z maps to %v", got)
	}
}

func TestMirror(t *testing.T) {
	s := New()
	o := s.AddMesh(s.AddCollection(CollectionLining), "lining", boxMesh(1, 1, 1))
	o.Location = v3.Vec{X: 1, Y: 2, Z: 3}
	o.Rotation = v3.Vec{X: math.Pi / 2, Z: 0.3}
	o.Scale = v3.Vec{X: 2, Y: 0.5, Z: 1.5}

	probe := v3.Vec{X: 0.3, Y: 0.7, Z: -0.2}
	before := o.Matrix().MulPosition(probe)

	o.Mirror(false, true, false)
	mirrored := o.Matrix().MulPosition(probe)
	// Reflection about the XZ plane through the object's location.
	want := v3.Vec{X: before.X, Y: 2*o.Location.Y - before.Y, Z: before.Z}
	if !near(mirrored, want) {
		t.Errorf("mirrored point = %v, want %v", mirrored, want)
	}
	if o.Handedness() != -1 {
		t.Error("mirrored object should be left-handed")
	}
	if o.Location != (v3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Error("mirror moved the object")
	}
	if d := o.Dimensions(); !near(d, v3.Vec{X: 2, Y: 0.5, Z: 1.5}) {
		t.Errorf("mirror changed dimensions: %v", d)
	}

	o.Mirror(false, true, false)
	if after := o.Matrix().MulPosition(probe); !near(after, before) {
		t.Errorf("double mirror = %v, want %v", after, before)
	}
	if o.Handedness() != 1 {
		t.Error("double mirror should restore handedness")
	}
}

func TestSetDimensions(t *testing.T) {
	s := New()
	c := s.AddCollection(CollectionLining)

	tests := []struct {
		name      string
		mesh      *kernel.PolyMesh
		scale     v3.Vec
		opts      []SizeOption
		wantScale v3.Vec
	}{
		{"plain", boxMesh(2, 4, 1), unitScale, []SizeOption{WithY(2)}, v3.Vec{X: 1, Y: 0.5, Z: 1}},
		{"negative size is a magnitude", boxMesh(1, 1, 2), unitScale, []SizeOption{WithZ(-0.5)}, v3.Vec{X: 1, Y: 1, Z: 0.25}},
		{"keeps reflection", boxMesh(1, 1, 1), v3.Vec{X: -2, Y: 1, Z: 1}, []SizeOption{WithX(3)}, v3.Vec{X: -3, Y: 1, Z: 1}},
		{"flat axis unchanged", boxMesh(1, 1, 0), unitScale, []SizeOption{WithZ(5)}, unitScale},
		{"zero size", boxMesh(1, 1, 1), unitScale, []SizeOption{WithZ(0)}, v3.Vec{X: 1, Y: 1, Z: 0}},
		{"no options", boxMesh(1, 1, 1), v3.Vec{X: 2, Y: 2, Z: 2}, nil, v3.Vec{X: 2, Y: 2, Z: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := s.AddMesh(c, "x", tt.mesh)
			o.Scale = tt.scale
			o.SetDimensions(tt.opts...)
			if !near(o.Scale, tt.wantScale) {
				t.Errorf("Scale = %v, want %v", o.Scale, tt.wantScale)
			}
		})
	}
}

func TestWorldBounds(t *testing.T) {
	s := New()
	tmpl := s.AddTemplate(s.AddCollection(CollectionTemplates), "bin", boxMesh(1, 1, 1))
	o := s.Instantiate(tmpl, s.AddCollection(CollectionCeiling), v3.Vec{Z: 2}, WithX(3))
	bb := o.WorldBounds()
	if !near(bb.Min, v3.Vec{X: 0, Y: -1, Z: 2}) || !near(bb.Max, v3.Vec{X: 3, Y: 0, Z: 3}) {
		t.Errorf("WorldBounds = %v..%v", bb.Min, bb.Max)
	}
}

func TestValidate(t *testing.T) {
	s := New()
	c := s.AddCollection(CollectionSeats)

	good := s.AddMesh(c, "good", boxMesh(1, 1, 1))
	nan := s.AddMesh(c, "nan", boxMesh(1, 1, 1))
	nan.Location.Y = math.NaN()
	inf := s.AddMesh(c, "inf", boxMesh(1, 1, 1))
	inf.Scale.Z = math.Inf(1)
	flat := s.AddMesh(c, "flat", boxMesh(1, 1, 1))
	flat.SetDimensions(WithZ(0))
	s.AddMesh(c, "empty", kernel.NewPolyMesh("empty"))

	r := Validate(s)
	if r.OK() {
		t.Fatal("expected errors")
	}
	if len(r.Errors) != 2 {
		t.Errorf("errors = %v", r.Errors)
	}
	var sawNaN bool
	for _, e := range r.Errors {
		if e.ObjectID == good.ID {
			t.Errorf("unexpected error on valid object: %v", e)
		}
		if e.Object == "nan" && strings.Contains(e.Message, "location Y") {
			sawNaN = true
		}
	}
	if !sawNaN {
		t.Errorf("missing NaN location error in %v", r.Errors)
	}

	var sawFlat, sawEmpty bool
	for _, w := range r.Warnings {
		if w.Severity != SeverityWarning {
			t.Errorf("warning with severity %v", w.Severity)
		}
		switch {
		case w.Object == "flat" && strings.Contains(w.Message, "dimension Z is zero"):
			sawFlat = true
		case w.Object == "empty":
			sawEmpty = true
		}
	}
	if !sawFlat || !sawEmpty {
		t.Errorf("warnings = %v", r.Warnings)
	}
	if !strings.HasPrefix(r.Errors[0].Error(), "[error] object") {
		t.Errorf("Error() = %q", r.Errors[0].Error())
	}
}

func TestSetHeading(t *testing.T) {
	s := New()
	c := s.AddCollection(CollectionLining)
	port := s.AddMesh(c, "port", boxMesh(1, 2, 0.5))
	star := s.AddMesh(c, "star", boxMesh(1, 2, 0.5))
	for _, o := range []*Object{port, star} {
		o.Location = v3.Vec{X: 4, Y: 1}
		o.Rotation.X = TemplateRotationX
	}
	port.SetHeading(-0.3)
	star.Mirror(false, true, false)
	star.SetHeading(0.3)
	if star.Rotation.Z != -0.3 {
		t.Errorf("stored Z rotation = %v, want -0.3", star.Rotation.Z)
	}

	// The mirrored copy turned the opposite way is the mirror image.
	for _, p := range []v3.Vec{{X: 0.5, Y: 1, Z: 0.25}, {X: -0.2, Y: 0.3, Z: 0.4}} {
		a := port.Matrix().MulPosition(p)
		b := star.Matrix().MulPosition(p)
		if want := (v3.Vec{X: a.X, Y: 2 - a.Y, Z: a.Z}); !near(b, want) {
			t.Errorf("star(%v) = %v, want %v", p, b, want)
		}
	}
}
