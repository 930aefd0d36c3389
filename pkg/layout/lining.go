package layout

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/assets"
	"github.com/chazu/cabinloft/pkg/cpacs"
	"github.com/chazu/cabinloft/pkg/scene"
)

// flatLiningTolerance is the largest floor-to-bin-level width difference
// that still gets the straight lining panel.
const flatLiningTolerance = 0.10

// nearestSample returns the index of the station closest to x. Ties go to
// the lowest index.
func nearestSample(stations []float64, x float64) int {
	best := 0
	for i, s := range stations {
		if math.Abs(s-x) < math.Abs(stations[best]-x) {
			best = i
		}
	}
	return best
}

// LiningPanel is the placement of one pair of lining panels.
type LiningPanel struct {
	Template assets.Key

	// Starboard anchor; the port panel sits at -Y.
	X, Y float64
	// Width is the signed floor-to-bin-level width difference; panels
	// are sized by its magnitude.
	Width float64

	// Tapered panels connect two stations of different width.
	Tapered bool
	Angle   float64 // chord angle in radians, starboard sense
	Length  float64 // chord length
}

// LiningPanels computes one panel pair for every whole metre of the deck.
// Each 1 m step samples the nearest stations to its aft (step+1) and
// forward (step) ends; where the floor width differs between them, the
// panel is turned along the chord and stretched to its length.
func LiningPanels(d *cpacs.Deck) []LiningPanel {
	floor := d.FloorBoundary()
	top := d.BinBoundary()
	steps := int(d.Length())
	panels := make([]LiningPanel, 0, max(steps, 0))

	for step := 0; step < steps; step++ {
		far := nearestSample(d.GeoX, float64(step)+1)
		near := nearestSample(d.GeoX, float64(step))

		yFar, yNear := floor[far], floor[near]
		yMid := (yFar + yNear) / 2
		ceil := (top[far] + top[near]) / 2

		p := LiningPanel{X: d.X0 + float64(step) + 0.5, Width: yMid - ceil}
		switch {
		case math.Abs(ceil-yMid) < flatLiningTolerance:
			p.Template = assets.LiningStraight
			p.Y = math.Min(ceil, yMid)
		case ceil > yMid:
			p.Template = assets.LiningFlared
			p.Y = yMid
		default:
			p.Template = assets.LiningSlanted
			p.Y = ceil
		}

		if yFar != yNear {
			angle := math.Atan((yNear - yFar) / (d.GeoX[near] - d.GeoX[far]))
			p.Tapered = true
			p.Angle = angle
			p.Length = math.Abs((yNear - yFar) / math.Sin(angle))
			p.X += (yMid - ceil) / math.Tan(math.Pi/2-angle)
		}
		panels = append(panels, p)
	}
	return panels
}

func (r *run) buildLinings(d *cpacs.Deck) error {
	height := d.Height() - d.BinHeight
	for _, p := range LiningPanels(d) {
		tmpl, err := r.cache.Get(p.Template)
		if err != nil {
			return err
		}
		size := []scene.SizeOption{scene.WithX(1), scene.WithY(height), scene.WithZ(p.Width)}
		port := r.scene.Instantiate(tmpl, r.lining, v3.Vec{X: p.X, Y: -p.Y, Z: d.Z0}, size...)
		star := r.scene.Instantiate(tmpl, r.lining, v3.Vec{X: p.X, Y: p.Y, Z: d.Z0}, size...)
		star.Mirror(false, true, false)

		if p.Tapered {
			port.SetHeading(-p.Angle)
			port.SetDimensions(scene.WithX(p.Length))
			star.SetHeading(p.Angle)
			star.SetDimensions(scene.WithX(p.Length))
		}
	}
	return nil
}
