package export

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/chazu/cabinloft/pkg/scene"
)

// planLayers are the collections drawn on the deck plan, with their
// layer colours. The hull and the ceiling would hide the floor plan.
var planLayers = []struct {
	collection string
	color      color.ColorNumber
	labels     bool
}{
	{scene.CollectionFloorElements, color.White, true},
	{scene.CollectionLining, color.Cyan, false},
	{scene.CollectionSeats, color.Blue, true},
}

const planTextHeight = 0.05

// LayerName maps a collection name to a DXF layer name.
func LayerName(collection string) string {
	return strings.ReplaceAll(strings.ToUpper(collection), " ", "_")
}

// Plan draws the footprint of every floor element, lining panel and seat
// of s as seen from above, one DXF layer per collection. Floor elements
// and seats are labelled with their object names.
func Plan(s *scene.Scene) (*drawing.Drawing, error) {
	d := dxf.NewDrawing()
	for _, l := range planLayers {
		c := s.Collection(l.collection)
		if c == nil {
			continue
		}
		if _, err := d.AddLayer(LayerName(l.collection), l.color, dxf.DefaultLineType, true); err != nil {
			return nil, fmt.Errorf("export: plan layer %s: %w", l.collection, err)
		}
		for _, o := range c.Objects {
			outline := Footprint(o)
			for i := range outline {
				a, b := outline[i], outline[(i+1)%len(outline)]
				if _, err := d.Line(a.X, a.Y, 0, b.X, b.Y, 0); err != nil {
					return nil, fmt.Errorf("export: plan %s: %w", o.Name, err)
				}
			}
			if l.labels && len(outline) > 0 {
				at := centroid(outline)
				if _, err := d.Text(o.Name, at.X, at.Y, 0, planTextHeight); err != nil {
					return nil, fmt.Errorf("export: plan %s: %w", o.Name, err)
				}
			}
		}
	}
	return d, nil
}

// WritePlan saves the deck plan of s to path.
func WritePlan(path string, s *scene.Scene) error {
	d, err := Plan(s)
	if err != nil {
		return err
	}
	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("export: writing %s: %w", path, err)
	}
	return nil
}

// Footprint returns the outline of the object's bounding box projected
// onto the floor, counter-clockwise. Flat objects may give a degenerate
// outline of two points.
func Footprint(o *scene.Object) []v2.Vec {
	if o.Mesh == nil || len(o.Mesh.Verts) == 0 {
		return nil
	}
	bb := o.Mesh.BoundingBox()
	m := o.Matrix()
	pts := make([]v2.Vec, 0, 8)
	for _, c := range corners(bb) {
		p := m.MulPosition(c)
		pts = append(pts, v2.Vec{X: p.X, Y: p.Y})
	}
	return convexHull(pts)
}

func corners(bb sdf.Box3) []v3.Vec {
	lo, hi := bb.Min, bb.Max
	return []v3.Vec{
		{X: lo.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z}, {X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z}, {X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: hi.Z},
	}
}

// convexHull is Andrew's monotone chain. Collinear and repeated points
// are dropped.
func convexHull(pts []v2.Vec) []v2.Vec {
	const eps = 1e-9
	if len(pts) < 2 {
		return pts
	}
	pts = slices.Clone(pts)
	slices.SortFunc(pts, func(a, b v2.Vec) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	cross := func(o, a, b v2.Vec) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}
	hull := make([]v2.Vec, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= eps {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= eps {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	hull = hull[:len(hull)-1]
	return slices.CompactFunc(hull, func(a, b v2.Vec) bool {
		return a.Sub(b).Length() < eps
	})
}

func centroid(pts []v2.Vec) v2.Vec {
	var c v2.Vec
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.MulScalar(1 / float64(len(pts)))
}
