package cpacs

// Element paths consumed from a CPACS document. Paths under a deck, floor
// element, seat element or aisle are relative to that element.
const (
	FuselageProfilePath     = "vehicles/profiles/fuselageProfiles/fuselageProfile"
	FuselageSectionPath     = "vehicles/aircraft/model/fuselages/fuselage/sections/section"
	FuselagePositionPath    = "vehicles/aircraft/model/fuselages/fuselage/positionings/positioning"
	DeckPath                = "vehicles/aircraft/model/fuselages/fuselage/decks/deck"
	ProfilePointListX       = "pointList/x"
	ProfilePointListY       = "pointList/y"
	ProfilePointListZ       = "pointList/z"
	SectionScalingY         = "elements/element/transformation/scaling/y"
	SectionScalingZ         = "elements/element/transformation/scaling/z"
	SectionTranslationZ     = "elements/element/transformation/translation/z"
	PositioningLength       = "length"
	ObjectName              = "name"
	CabinGeometryX          = "cabGeometry/x"
	CabinGeometryYZ         = "cabGeometry/yZ" // suffixed with the 1-based level
	CabinGeometryZ          = "cabGeometry/z"
	CabinX0                 = "x0"
	CabinZ0                 = "z0"
	FloorElementSubPath     = "floorElements/floorElement"
	AisleSubPath            = "aisles/aisle"
	SeatElementSubPath      = "seatElements/seatElement"
	ElementType             = "type"
	SeatsPerGroup           = "nSeats"
	ObjectX                 = "x"
	ObjectY                 = "y"
	ObjectLength            = "length"
	ObjectWidth             = "width"
	ObjectHeight            = "height"
	CustomOverheadBinHeight = "overheadBinHeight"
	CustomOverheadBinIndent = "overheadBinIndent"
	CustomRotation          = "rotation"
)

// Defaults for the vendor-custom extensions.
const (
	DefaultOverheadBinHeight = "0.4"
	DefaultOverheadBinIndent = "0.35"
	DefaultRotation          = "0.0"
)
