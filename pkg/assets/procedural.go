package assets

import (
	"fmt"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/kernel"
)

// ProceduralLoader generates simple stand-in templates so a cabin can be
// built without an asset library. Prismatic parts are lofted exactly;
// round and hollow parts go through the solid-modelling kernel.
//
// Templates are modelled Y-up with X the length and Z the width, in the
// same frame as the .obj assets:
//
//   - linings span x in [-0.5, 0.5], y in [0, 1] and z in [0, 1], growing
//     from the anchor towards +z;
//   - bins and fillers are centred on the origin;
//   - the aisle arch hangs below the origin, its top 10% above it;
//   - furnishings and seats stand on the origin, centred in x and z.
type ProceduralLoader struct {
	Kernel kernel.Kernel
}

// NewProceduralLoader returns a loader that builds round parts with k.
func NewProceduralLoader(k kernel.Kernel) *ProceduralLoader {
	return &ProceduralLoader{Kernel: k}
}

// Stand-in proportions that the layout reads back from the templates.
const (
	binWidth   = 0.6
	archHeight = 0.3
)

func (l *ProceduralLoader) Load(key Key) (*kernel.PolyMesh, error) {
	b := &partBuilder{k: l.Kernel, mesh: kernel.NewPolyMesh(key.Name)}

	switch key {
	case LiningSlanted:
		b.prism("lining", -0.5, 0.5, [][2]float64{{0, 0.9}, {0, 1}, {1, 0.1}, {1, 0}})
	case LiningFlared:
		b.prism("lining", -0.5, 0.5, [][2]float64{{0, 0}, {0, 0.1}, {1, 1}, {1, 0.9}})
	case LiningStraight:
		b.box("lining", vec(-0.5, 0, 0), vec(0.5, 1, 1))
	case OverheadBin:
		b.overheadBin()
	case AisleArch:
		b.aisleArch()
	case BinFiller:
		b.box("cover", vec(-0.5, -0.5, -0.5), vec(0.5, 0.5, 0.5))
	case Galley:
		b.galley()
	case Curtain:
		b.box("cover", vec(-0.5, 0, -0.5), vec(0.5, 0.95, 0.5))
		b.box("rail", vec(-0.5, 0.95, -0.5), vec(0.5, 1, 0.5))
	case Wall:
		b.divider()
	case Bar:
		b.box("base", vec(-0.5, 0, -0.5), vec(0.5, 0.9, 0.5))
		b.box("table", vec(-0.5, 0.9, -0.5), vec(0.5, 1, 0.5))
	case Table:
		b.table()
	case Stairs:
		b.stairs()
	case BusinessSeat:
		b.seatBlock(1, 0.75)
	case PremiumEcoSeat:
		b.seatBlock(1, 0.6)
	default:
		n, ok := economySeats(key)
		if !ok {
			return nil, &AssetNotFoundError{Key: key}
		}
		b.seatBlock(n, 0.5)
	}

	if b.err != nil {
		return nil, fmt.Errorf("assets: generating %s: %w", key, b.err)
	}
	b.mesh.Smooth = true
	return b.mesh, nil
}

func economySeats(key Key) (int, bool) {
	if key.Category != "Seats" {
		return 0, false
	}
	s, ok := strings.CutPrefix(key.Name, "ec_")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 5 {
		return 0, false
	}
	return n, true
}

func vec(x, y, z float64) v3.Vec {
	return v3.Vec{X: x, Y: y, Z: z}
}

// partBuilder accumulates named parts into one mesh. The first error stops
// all further work.
type partBuilder struct {
	k    kernel.Kernel
	mesh *kernel.PolyMesh
	err  error
}

// prism lofts a (y, z) profile from x0 to x1.
func (b *partBuilder) prism(part string, x0, x1 float64, profile [][2]float64) {
	if b.err != nil {
		return
	}
	front := make(kernel.Shape, len(profile))
	back := make(kernel.Shape, len(profile))
	for i, p := range profile {
		front[i] = vec(x0, p[0], p[1])
		back[i] = vec(x1, p[0], p[1])
	}
	m, err := kernel.Loft(part, []kernel.Shape{front, back}, kernel.WithMaterial(part))
	if err != nil {
		b.err = err
		return
	}
	b.mesh.Append(m)
}

func (b *partBuilder) box(part string, lo, hi v3.Vec) {
	b.prism(part, lo.X, hi.X, [][2]float64{
		{lo.Y, lo.Z}, {hi.Y, lo.Z}, {hi.Y, hi.Z}, {lo.Y, hi.Z},
	})
}

// solid meshes s with the kernel and adds it as part.
func (b *partBuilder) solid(part string, s kernel.Solid) {
	if b.err != nil {
		return
	}
	m, err := b.k.ToMesh(s)
	if err != nil {
		b.err = err
		return
	}
	m.SetMaterial(part)
	b.mesh.Append(m)
}

// overheadBin faces the aisle on its -z side.
func (b *partBuilder) overheadBin() {
	half := binWidth / 2
	b.box("bin", vec(-0.5, -0.5, -half+0.05), vec(0.5, 0.5, half))
	b.box("rail", vec(-0.5, -0.5, -half), vec(0.5, -0.45, -half+0.05))
	b.box("locker", vec(-0.5, -0.45, -half), vec(0.5, 0.5, -half+0.02))
}

// aisleArch is an inverted U spanning the aisle with a light strip under
// its crown.
func (b *partBuilder) aisleArch() {
	k := b.k
	shell := k.Box(1, archHeight, 1)
	cavity := k.Translate(k.Box(1.2, archHeight/2, 0.7), -0.1, 0, 0.15)
	arch := k.Difference(shell, cavity)
	b.solid("arch", k.Translate(arch, -0.5, -0.9*archHeight, -0.5))

	crown := -0.9*archHeight + archHeight/2
	b.box("light", vec(-0.45, crown-0.02, -0.1), vec(0.45, crown, 0.1))
}

func (b *partBuilder) galley() {
	b.box("housing", vec(-0.5, 0, -0.5), vec(0.5, 1, 0.4))
	b.box("trolley", vec(-0.45, 0, 0.4), vec(-0.05, 0.45, 0.5))
	b.box("trolley", vec(0.05, 0, 0.4), vec(0.45, 0.45, 0.5))
	b.box("shelves", vec(-0.45, 0.55, 0.4), vec(0.45, 0.6, 0.5))
}

func (b *partBuilder) divider() {
	b.box("divider_wall", vec(-0.5, 0, -0.5), vec(0.4, 1, 0.5))
	b.box("tv_frame", vec(0.4, 0.6, -0.2), vec(0.45, 0.9, 0.2))
	b.box("tv_display", vec(0.45, 0.65, -0.15), vec(0.5, 0.85, 0.15))
}

func (b *partBuilder) table() {
	k := b.k
	// Kernel cylinders run along Z; stand the foot up along Y.
	foot := k.Rotate(k.Cylinder(0.9, 0.12), -90, 0, 0)
	b.solid("foot", k.Translate(foot, 0, 0.45, 0))
	b.box("table", vec(-0.5, 0.9, -0.5), vec(0.5, 1, 0.5))
}

func (b *partBuilder) stairs() {
	const steps = 4
	rise := 1.0 / steps
	for i := range steps {
		y := float64(i) * rise
		b.box("stairs", vec(-0.5+y, y, -0.45), vec(0.5, y+rise, 0.45))
	}
	b.box("railing", vec(-0.5, 0, -0.5), vec(0.5, 1, -0.45))
	b.box("railing", vec(-0.5, 0, 0.45), vec(0.5, 1, 0.5))
}

// seatBlock builds n seats side by side along z, facing -x.
func (b *partBuilder) seatBlock(n int, seatWidth float64) {
	w := float64(n) * seatWidth
	left := -w / 2
	for i := range n {
		z0 := left + float64(i)*seatWidth
		z1 := z0 + seatWidth
		b.box("base", vec(-0.3, 0, z0+0.05), vec(0.3, 0.4, z1-0.05))
		b.box("cushion", vec(-0.4, 0.4, z0+0.03), vec(0.25, 0.55, z1-0.03))
		b.box("cushion", vec(0.25, 0.4, z0+0.03), vec(0.35, 1.0, z1-0.03))
		b.box("pillow", vec(0.25, 1.0, z0+0.1), vec(0.35, 1.1, z1-0.1))
		b.box("tray_table", vec(0.35, 0.6, z0+0.1), vec(0.4, 0.9, z1-0.1))
	}
	for j := 0; j <= n; j++ {
		z := left + float64(j)*seatWidth
		b.box("armrest", vec(-0.2, 0.55, max(z-0.02, left)), vec(0.25, 0.7, min(z+0.02, -left)))
	}
}
