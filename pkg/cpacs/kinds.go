package cpacs

// FloorKind enumerates the furnishing types that have their own template.
type FloorKind int

const (
	FloorDivider   FloorKind = iota // generic divider/wall; fallback for anything unknown
	FloorKitchen                    // galley
	FloorCurtain
	FloorBar
	FloorStaircase
	FloorTable
)

func (k FloorKind) String() string {
	switch k {
	case FloorDivider:
		return "divider"
	case FloorKitchen:
		return "kitchen"
	case FloorCurtain:
		return "curtain"
	case FloorBar:
		return "bar"
	case FloorStaircase:
		return "staircase"
	case FloorTable:
		return "table"
	default:
		return "unknown"
	}
}

// ParseFloorKind maps a floor element type tag to a FloorKind. Tags without
// a dedicated template (wall, toilet, anything unrecognised) map to
// FloorDivider and ok is false.
func ParseFloorKind(tag string) (kind FloorKind, ok bool) {
	switch tag {
	case "kitchen":
		return FloorKitchen, true
	case "curtain":
		return FloorCurtain, true
	case "bar":
		return FloorBar, true
	case "staircase":
		return FloorStaircase, true
	case "table":
		return FloorTable, true
	case "divider":
		return FloorDivider, true
	default:
		return FloorDivider, false
	}
}

// SeatKind enumerates seat classes.
type SeatKind int

const (
	SeatEconomy SeatKind = iota
	SeatBusiness
	SeatPremiumEconomy
	SeatFirst
)

func (k SeatKind) String() string {
	switch k {
	case SeatEconomy:
		return "economy"
	case SeatBusiness:
		return "business"
	case SeatPremiumEconomy:
		return "premiumEconomy"
	case SeatFirst:
		return "first"
	default:
		return "unknown"
	}
}

// ParseSeatKind maps a seat element type tag to a SeatKind. Unrecognised
// tags map to SeatPremiumEconomy, which is placed seat by seat, and ok is
// false.
func ParseSeatKind(tag string) (kind SeatKind, ok bool) {
	switch tag {
	case "economy":
		return SeatEconomy, true
	case "business":
		return SeatBusiness, true
	case "premiumEconomy":
		return SeatPremiumEconomy, true
	case "first":
		return SeatFirst, true
	default:
		return SeatPremiumEconomy, false
	}
}
