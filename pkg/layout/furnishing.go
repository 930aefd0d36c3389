package layout

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/assets"
	"github.com/chazu/cabinloft/pkg/cpacs"
	"github.com/chazu/cabinloft/pkg/scene"
)

// FloorTemplate returns the template for a floor element kind.
func FloorTemplate(k cpacs.FloorKind) assets.Key {
	switch k {
	case cpacs.FloorKitchen:
		return assets.Galley
	case cpacs.FloorCurtain:
		return assets.Curtain
	case cpacs.FloorBar:
		return assets.Bar
	case cpacs.FloorStaircase:
		return assets.Stairs
	case cpacs.FloorTable:
		return assets.Table
	default:
		return assets.Wall
	}
}

func (r *run) buildFloorElements(d *cpacs.Deck) error {
	for _, fe := range d.FloorElements {
		if _, ok := cpacs.ParseFloorKind(fe.Tag); !ok {
			r.lg.Infof("floor element type %q has no template, using a divider", fe.Tag)
		}
		tmpl, err := r.cache.Get(FloorTemplate(fe.Kind))
		if err != nil {
			return err
		}
		pos := v3.Vec{X: d.X0 + fe.X + fe.Length/2, Y: fe.Y, Z: d.Z0}
		o := r.scene.Instantiate(tmpl, r.floor, pos,
			scene.WithX(fe.Length), scene.WithY(fe.Height), scene.WithZ(fe.Width))
		o.SetHeading(radians(fe.Rotation))
	}
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
