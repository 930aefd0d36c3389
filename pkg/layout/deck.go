package layout

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/assets"
	"github.com/chazu/cabinloft/pkg/cpacs"
	"github.com/chazu/cabinloft/pkg/kernel"
	"github.com/chazu/cabinloft/pkg/scene"
)

const (
	floorMaterial = "Fabric_black"
	endWallDepth  = 0.1
)

// HalfOutline returns the starboard half of a deck surface at height z:
// the boundary samples, closed by points on the centreline at the nose
// and at the tail.
func HalfOutline(d *cpacs.Deck, boundary []float64, z float64) kernel.Shape {
	shape := make(kernel.Shape, 0, len(d.GeoX)+2)
	shape = append(shape, v3.Vec{X: d.X0, Z: z})
	for i, x := range d.GeoX {
		shape = append(shape, v3.Vec{X: d.X0 + x, Y: boundary[i], Z: z})
	}
	shape = append(shape, v3.Vec{X: d.X0 + d.Length(), Z: z})
	return shape
}

// buildFloorAndCeiling lofts the floor and ceiling slabs as a starboard
// half and a mirrored port half each.
func (r *run) buildFloorAndCeiling(d *cpacs.Deck) error {
	mat := r.lib.Material(floorMaterial)
	r.scene.AddMaterial(mat)

	floor := []kernel.Shape{
		HalfOutline(d, d.FloorBoundary(), d.Z0),
		HalfOutline(d, d.FloorBoundary(), d.Z0-floorThickness),
	}
	top := d.Z0 + d.Height()
	ceiling := []kernel.Shape{
		HalfOutline(d, d.CeilingBoundary(), top+ceilingThickness),
		HalfOutline(d, d.CeilingBoundary(), top),
	}

	for _, half := range []struct {
		name   string
		shapes []kernel.Shape
		opts   []kernel.LoftOption
		mirror bool
	}{
		{"Deck Floor R", floor, []kernel.LoftOption{kernel.WithMaterial(mat.Name)}, false},
		{"Deck Floor L", floor, []kernel.LoftOption{kernel.WithMaterial(mat.Name)}, true},
		{"Deck Ceiling R", ceiling, nil, false},
		{"Deck Ceiling L", ceiling, nil, true},
	} {
		mesh, err := kernel.Loft(half.name, half.shapes, append(half.opts, kernel.WithLogger(r.lg))...)
		if err != nil {
			return err
		}
		o := r.scene.AddMesh(r.floor, half.name, mesh)
		if half.mirror {
			o.Mirror(false, true, false)
		}
	}
	return nil
}

// buildEndWalls closes the deck with a divider just outside each end,
// as wide as the floor there and as tall as the deck.
func (r *run) buildEndWalls(d *cpacs.Deck) error {
	wall, err := r.cache.Get(assets.Wall)
	if err != nil {
		return err
	}
	fb := d.FloorBoundary()
	ends := []struct {
		x     float64
		width float64
	}{
		{d.X0 - endWallDepth/2, 2 * fb[0]},
		{d.X0 + d.Length() + endWallDepth/2, 2 * fb[len(fb)-1]},
	}
	for _, e := range ends {
		r.scene.Instantiate(wall, r.floor, v3.Vec{X: e.x, Z: d.Z0},
			scene.WithX(endWallDepth), scene.WithY(d.Height()), scene.WithZ(e.width))
	}
	return nil
}
