package layout

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/assets"
	"github.com/chazu/cabinloft/pkg/cpacs"
	"github.com/chazu/cabinloft/pkg/kernel"
	"github.com/chazu/cabinloft/pkg/scene"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func nearVec(a, b v3.Vec) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func readTestdata(t *testing.T, name string) *cpacs.Document {
	t.Helper()
	doc, err := cpacs.ReadFile(filepath.Join("testdata", name), nil)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", name, err)
	}
	return doc
}

// boxLoader serves exact box templates in the frames the layout expects,
// counting loads per key. Keys listed in missing fail to load.
type boxLoader struct {
	calls   map[assets.Key]int
	missing map[assets.Key]bool
}

func newBoxLoader() *boxLoader {
	return &boxLoader{calls: map[assets.Key]int{}, missing: map[assets.Key]bool{}}
}

func (l *boxLoader) Load(key assets.Key) (*kernel.PolyMesh, error) {
	l.calls[key]++
	if l.missing[key] {
		return nil, &assets.AssetNotFoundError{Key: key}
	}
	lo, hi := v3.Vec{X: -0.5, Y: 0, Z: -0.5}, v3.Vec{X: 0.5, Y: 1, Z: 0.5}
	part := "base"
	switch key {
	case assets.LiningSlanted, assets.LiningFlared, assets.LiningStraight:
		lo.Z, hi.Z = 0, 1
		part = "lining"
	case assets.OverheadBin:
		lo, hi = v3.Vec{X: -0.5, Y: -0.5, Z: -0.3}, v3.Vec{X: 0.5, Y: 0.5, Z: 0.3}
		part = "bin"
	case assets.AisleArch:
		lo.Y, hi.Y = -0.27, 0.03
		part = "arch"
	case assets.BinFiller:
		lo.Y, hi.Y = -0.5, 0.5
		part = "cover"
	}
	return boxMesh(key.Name, part, lo, hi)
}

func boxMesh(name, part string, lo, hi v3.Vec) (*kernel.PolyMesh, error) {
	rect := func(x float64) kernel.Shape {
		return kernel.Shape{
			{X: x, Y: lo.Y, Z: lo.Z}, {X: x, Y: hi.Y, Z: lo.Z},
			{X: x, Y: hi.Y, Z: hi.Z}, {X: x, Y: lo.Y, Z: hi.Z},
		}
	}
	return kernel.Loft(name, []kernel.Shape{rect(lo.X), rect(hi.X)}, kernel.WithMaterial(part))
}

// newTestRun returns a run over an empty scene, for exercising single
// layout phases.
func newTestRun(t *testing.T, loader assets.Loader) *run {
	t.Helper()
	s := scene.New()
	lib := assets.DefaultLibrary(nil)
	r := &run{
		scene:     s,
		lib:       lib,
		ceiling:   s.AddCollection(scene.CollectionCeiling),
		lining:    s.AddCollection(scene.CollectionLining),
		templates: s.AddCollection(scene.CollectionTemplates),
		seats:     s.AddCollection(scene.CollectionSeats),
		floor:     s.AddCollection(scene.CollectionFloorElements),
		fuselage:  s.AddCollection(scene.CollectionFuselage),
	}
	r.cache = assets.NewTemplateCache(loader, s, r.templates, lib, nil)
	return r
}

func boundsNear(b sdf.Box3, lo, hi v3.Vec) bool {
	return nearVec(b.Min, lo) && nearVec(b.Max, hi)
}
