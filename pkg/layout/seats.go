package layout

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/assets"
	"github.com/chazu/cabinloft/pkg/cpacs"
	"github.com/chazu/cabinloft/pkg/scene"
)

// SeatPlacement is one seat template instance.
type SeatPlacement struct {
	Template      assets.Key
	X, Y          float64 // deck coordinates of the footprint centre
	Length, Width float64
	Height        float64
	Mirrored      bool
	// HeadingDeg is the world rotation about z, after any mirroring.
	HeadingDeg float64
}

// SeatPlacements expands a seat group into template instances. Economy
// groups use one multi-seat block chosen by the seat count; a two-seat
// block reaching past the centreline to port is mirrored. Every other
// class gets one single-seat template per seat across the group width,
// with odd-numbered seats mirrored. Those are turned before they are
// mirrored, so a mirrored seat faces the reflected heading.
func SeatPlacements(g cpacs.SeatGroup) []SeatPlacement {
	left := g.Y - g.Width/2
	x := g.X + g.Length/2

	if g.Kind == cpacs.SeatEconomy {
		return []SeatPlacement{{
			Template:   assets.EconomySeat(g.Seats),
			X:          x,
			Y:          g.Y,
			Length:     g.Length,
			Width:      g.Width,
			Height:     g.Height,
			Mirrored:   left < 0 && g.Seats == 2,
			HeadingDeg: g.Rotation,
		}}
	}

	key := assets.PremiumEcoSeat
	if g.Kind == cpacs.SeatBusiness {
		key = assets.BusinessSeat
	}
	seats := make([]SeatPlacement, 0, max(g.Seats, 0))
	for i := range g.Seats {
		w := g.Width / float64(g.Seats)
		p := SeatPlacement{
			Template:   key,
			X:          x,
			Y:          left + float64(i)*w + w/2,
			Length:     g.Length,
			Width:      w,
			Height:     g.Height,
			HeadingDeg: g.Rotation,
		}
		if i%2 == 1 {
			p.Mirrored = true
			p.HeadingDeg = -g.Rotation
		}
		seats = append(seats, p)
	}
	return seats
}

func (r *run) buildSeats(d *cpacs.Deck) error {
	for _, g := range d.SeatGroups {
		if _, ok := cpacs.ParseSeatKind(g.Tag); !ok {
			r.lg.Infof("seat type %q is not known, placing premium economy seats", g.Tag)
		}
		for _, p := range SeatPlacements(g) {
			tmpl, err := r.cache.Get(p.Template)
			if err != nil {
				return err
			}
			o := r.scene.Instantiate(tmpl, r.seats, v3.Vec{X: d.X0 + p.X, Y: p.Y, Z: d.Z0},
				scene.WithX(p.Length), scene.WithY(p.Height), scene.WithZ(p.Width))
			if p.Mirrored {
				o.Mirror(false, true, false)
			}
			o.SetHeading(radians(p.HeadingDeg))
		}
	}
	return nil
}
