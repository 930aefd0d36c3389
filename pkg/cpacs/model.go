package cpacs

import "slices"

// ---------------------------------------------------------------------------
// Fuselage
// ---------------------------------------------------------------------------

// Profile is the normalised fuselage cross-section shared by all sections.
// The last point duplicates the first and closes the outline.
type Profile struct {
	X, Y, Z []float64
}

// Len returns the number of profile points.
func (p Profile) Len() int { return len(p.X) }

// Section is one longitudinal fuselage section together with its own
// placement: how far the next section starts behind it and how the shared
// profile is scaled and lifted at this station.
type Section struct {
	Length     float64
	ScaleY     float64
	ScaleZ     float64
	TranslateZ float64
}

// Fuselage is the outer hull description.
type Fuselage struct {
	Profile  Profile
	Sections []Section
}

// ---------------------------------------------------------------------------
// Deck
// ---------------------------------------------------------------------------

// Deck is one cabin level. GeoY holds one starboard half-width array per
// height level in GeoZ, each sampled at the stations in GeoX.
type Deck struct {
	Name string

	GeoX []float64
	GeoY [][]float64
	GeoZ []float64

	X0, Z0 float64

	BinHeight float64
	BinIndent float64

	FloorElements []FloorElement
	Aisles        []Aisle
	SeatGroups    []SeatGroup
}

// Length is the cabin length along x.
func (d *Deck) Length() float64 { return slices.Max(d.GeoX) }

// Height is the cabin height above the floor.
func (d *Deck) Height() float64 { return slices.Max(d.GeoZ) }

// FloorBoundary is the half-width at floor level.
func (d *Deck) FloorBoundary() []float64 { return d.GeoY[0] }

// CeilingBoundary is the half-width at the top level.
func (d *Deck) CeilingBoundary() []float64 { return d.GeoY[len(d.GeoY)-1] }

// BinBoundary is the half-width one level below the ceiling, where the
// overhead bins and the top edge of the linings sit.
func (d *Deck) BinBoundary() []float64 {
	return d.GeoY[max(0, len(d.GeoY)-2)]
}

// FloorElement is a monument placed on the deck floor.
type FloorElement struct {
	Kind FloorKind
	Tag  string // type text as written in the file

	X, Y                  float64
	Length, Width, Height float64
	Rotation              float64 // degrees about the vertical axis
}

// SeatGroup is a block of seats sharing one footprint.
type SeatGroup struct {
	Kind  SeatKind
	Tag   string
	Seats int

	X, Y                  float64
	Length, Width, Height float64
	Rotation              float64
}

// Aisle is a piecewise-linear walking path.
type Aisle struct {
	X, Y []float64
}

// Segments returns the number of straight pieces in the aisle.
func (a Aisle) Segments() int {
	return max(0, len(a.X)-1)
}
