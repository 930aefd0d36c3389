package layout

import (
	"math"
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/assets"
	"github.com/chazu/cabinloft/pkg/cpacs"
	"github.com/chazu/cabinloft/pkg/scene"
)

// BinRow is the overhead stowage over one straight aisle segment: a bin
// on each side of the aisle, optional filler panels out to the linings,
// and an arch across the aisle.
type BinRow struct {
	X, Y   float64 // segment midpoint, deck coordinates
	Length float64 // signed segment length along x

	PortBin, StarboardBin float64 // bin centre y
	// Gaps between each bin and the bin-level boundary. A filler is
	// placed only when 0 < gap < bin width.
	PortGap, StarboardGap float64
}

// BinRows lays out one BinRow per aisle segment. binWidth is the width of
// the bin template.
func BinRows(d *cpacs.Deck, binWidth float64) []BinRow {
	half := slices.Max(d.BinBoundary())
	var rows []BinRow
	for _, a := range d.Aisles {
		for i := range a.Segments() {
			x := a.X[i] + (a.X[i+1]-a.X[i])/2
			y := a.Y[i] + (a.Y[i+1]-a.Y[i])/2
			rows = append(rows, BinRow{
				X:            x,
				Y:            y,
				Length:       a.X[i+1] - a.X[i],
				PortBin:      y - d.BinIndent - binWidth/2,
				StarboardBin: y + d.BinIndent + binWidth/2,
				StarboardGap: half - y - d.BinIndent - binWidth,
				PortGap:      half + y - d.BinIndent - binWidth,
			})
		}
	}
	return rows
}

func needsFiller(gap, binWidth float64) bool {
	return gap > 0 && gap < binWidth
}

func (r *run) buildBins(d *cpacs.Deck) error {
	if len(d.Aisles) == 0 {
		return nil
	}
	bin, err := r.cache.Get(assets.OverheadBin)
	if err != nil {
		return err
	}
	arch, err := r.cache.Get(assets.AisleArch)
	if err != nil {
		return err
	}
	binWidth := bin.Dimensions().Z
	archHeight := arch.Dimensions().Y

	top := d.Z0 + d.Height()
	binZ := top - d.BinHeight/2
	for _, row := range BinRows(d, binWidth) {
		x := d.X0 + row.X
		length := math.Abs(row.Length)
		binSize := []scene.SizeOption{scene.WithX(length), scene.WithY(d.BinHeight)}

		r.scene.Instantiate(bin, r.ceiling, v3.Vec{X: x, Y: row.PortBin, Z: binZ}, binSize...)
		if needsFiller(row.StarboardGap, binWidth) {
			if err := r.filler(v3.Vec{X: x, Y: row.Y + d.BinIndent + binWidth + row.StarboardGap/2, Z: binZ},
				length, d.BinHeight, row.StarboardGap, false); err != nil {
				return err
			}
		}

		star := r.scene.Instantiate(bin, r.ceiling, v3.Vec{X: x, Y: row.StarboardBin, Z: binZ}, binSize...)
		star.Mirror(false, true, false)
		if needsFiller(row.PortGap, binWidth) {
			if err := r.filler(v3.Vec{X: x, Y: row.Y - d.BinIndent - binWidth - row.PortGap/2, Z: binZ},
				length, d.BinHeight, row.PortGap, true); err != nil {
				return err
			}
		}

		r.scene.Instantiate(arch, r.ceiling, v3.Vec{X: x, Y: row.Y, Z: top - 0.1*archHeight},
			scene.WithX(length), scene.WithZ(2*d.BinIndent+binWidth))
	}
	return nil
}

func (r *run) filler(pos v3.Vec, length, height, gap float64, mirror bool) error {
	tmpl, err := r.cache.Get(assets.BinFiller)
	if err != nil {
		return err
	}
	o := r.scene.Instantiate(tmpl, r.ceiling, pos,
		scene.WithX(length), scene.WithY(height), scene.WithZ(gap))
	if mirror {
		o.Mirror(false, true, false)
	}
	return nil
}
