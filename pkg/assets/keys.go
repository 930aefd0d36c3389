// Package assets supplies the template meshes and materials the cabin
// layout is dressed with. Templates are loaded at most once per run through
// a TemplateCache backed by either a directory of Wavefront .obj files or
// procedurally generated stand-ins.
package assets

import "fmt"

// Key names a template asset as category/name, e.g. Seats/ec_3.
type Key struct {
	Category string
	Name     string
}

func (k Key) String() string {
	return k.Category + "/" + k.Name
}

// Template keys used by the cabin layout.
var (
	LiningSlanted  = Key{"Linings", "side_wall_1"} // ceiling boundary inside the floor boundary
	LiningFlared   = Key{"Linings", "side_wall_2"} // ceiling boundary outside the floor boundary
	LiningStraight = Key{"Linings", "side_wall_3"}
	OverheadBin    = Key{"Overhead_Bins", "bin"}
	AisleArch      = Key{"Overhead_Bins", "aisle_arch"}
	BinFiller      = Key{"Overhead_Bins", "bin_extension_3"}
	Galley         = Key{"Galley", "galley_1"}
	Curtain        = Key{"Divider", "curtain_1"}
	Wall           = Key{"Divider", "divider_3"}
	Bar            = Key{"Bar", "bar_1"}
	Table          = Key{"Tables", "table_1"}
	Stairs         = Key{"Stairs", "stairs_1"}
	BusinessSeat   = Key{"Seats", "bc_1"}
	PremiumEcoSeat = Key{"Seats", "pec_1"}
)

// EconomySeat returns the economy seat-block template for n seats abreast.
// Blocks exist for 1 to 5 seats; any other count uses the single seat.
func EconomySeat(n int) Key {
	if n < 1 || n > 5 {
		n = 1
	}
	return Key{"Seats", fmt.Sprintf("ec_%d", n)}
}

// AllKeys lists every template key, in a stable order.
func AllKeys() []Key {
	keys := []Key{
		LiningSlanted, LiningFlared, LiningStraight,
		OverheadBin, AisleArch, BinFiller,
		Galley, Curtain, Wall, Bar, Table, Stairs,
		BusinessSeat, PremiumEcoSeat,
	}
	for n := 1; n <= 5; n++ {
		keys = append(keys, EconomySeat(n))
	}
	return keys
}
