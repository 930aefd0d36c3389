package cpacs

import (
	"fmt"
	"strconv"
)

// ParseFuselage reads the fuselage profile and sections. It returns nil and
// no error when the file has no positioning data, which is how aircraft
// without a modelled shell are written.
func (d *Document) ParseFuselage() (*Fuselage, error) {
	root := d.Root()

	positionings := root.FindAll(FuselagePositionPath)
	if len(positionings) == 0 {
		return nil, nil
	}

	profileNode, ok := root.Find(FuselageProfilePath)
	if !ok {
		return nil, &MissingFieldError{Element: root.Tag(), Path: FuselageProfilePath}
	}

	var profile Profile
	var err error
	if profile.X, err = profileNode.NumericArray(ProfilePointListX); err != nil {
		return nil, err
	}
	if profile.Y, err = profileNode.NumericArray(ProfilePointListY); err != nil {
		return nil, err
	}
	if profile.Z, err = profileNode.NumericArray(ProfilePointListZ); err != nil {
		return nil, err
	}
	if len(profile.Y) != len(profile.X) || len(profile.Z) != len(profile.X) {
		return nil, &GeometryError{
			Element: "fuselageProfile",
			Message: fmt.Sprintf("point list lengths differ (x=%d y=%d z=%d)",
				len(profile.X), len(profile.Y), len(profile.Z)),
		}
	}

	sectionNodes := root.FindAll(FuselageSectionPath)
	if len(positionings) < len(sectionNodes) {
		return nil, &GeometryError{
			Element: "fuselage",
			Message: fmt.Sprintf("%d sections but only %d positionings",
				len(sectionNodes), len(positionings)),
		}
	}
	if len(positionings) > len(sectionNodes) {
		d.lg.Warn("ignoring positionings without a section",
			"sections", len(sectionNodes), "positionings", len(positionings))
	}

	fus := &Fuselage{Profile: profile}
	for i, sn := range sectionNodes {
		var s Section
		if s.Length, err = positionings[i].Float(PositioningLength); err != nil {
			return nil, err
		}
		if s.ScaleY, err = sn.Float(SectionScalingY); err != nil {
			return nil, err
		}
		if s.ScaleZ, err = sn.Float(SectionScalingZ); err != nil {
			return nil, err
		}
		if s.TranslateZ, err = sn.Float(SectionTranslationZ); err != nil {
			return nil, err
		}
		fus.Sections = append(fus.Sections, s)
	}
	return fus, nil
}

// ParseDecks reads every cabin deck in document order.
func (d *Document) ParseDecks() ([]Deck, error) {
	var decks []Deck
	for _, n := range d.Root().FindAll(DeckPath) {
		deck, err := parseDeck(n)
		if err != nil {
			return nil, err
		}
		decks = append(decks, deck)
	}
	return decks, nil
}

func parseDeck(n Node) (Deck, error) {
	var deck Deck
	var err error

	if deck.Name, err = n.Field(ObjectName); err != nil {
		return deck, err
	}
	if deck.BinHeight, err = n.CustomFloat(CustomOverheadBinHeight, DefaultOverheadBinHeight); err != nil {
		return deck, err
	}
	if deck.BinIndent, err = n.CustomFloat(CustomOverheadBinIndent, DefaultOverheadBinIndent); err != nil {
		return deck, err
	}

	if deck.GeoX, err = n.NumericArray(CabinGeometryX); err != nil {
		return deck, err
	}
	if deck.GeoZ, err = n.NumericArray(CabinGeometryZ); err != nil {
		return deck, err
	}
	for level := 1; level <= len(deck.GeoZ); level++ {
		ys, err := n.NumericArray(CabinGeometryYZ + strconv.Itoa(level))
		if err != nil {
			return deck, err
		}
		if len(ys) != len(deck.GeoX) {
			return deck, &GeometryError{
				Element: deck.Name,
				Message: fmt.Sprintf("yZ%d has %d samples, x has %d", level, len(ys), len(deck.GeoX)),
			}
		}
		deck.GeoY = append(deck.GeoY, ys)
	}

	if deck.Z0, err = n.Float(CabinZ0); err != nil {
		return deck, err
	}
	if deck.X0, err = n.Float(CabinX0); err != nil {
		return deck, err
	}

	for _, fn := range n.FindAll(FloorElementSubPath) {
		fe, err := parseFloorElement(fn)
		if err != nil {
			return deck, fmt.Errorf("deck %s: %w", deck.Name, err)
		}
		deck.FloorElements = append(deck.FloorElements, fe)
	}

	for _, an := range n.FindAll(AisleSubPath) {
		var a Aisle
		if a.X, err = an.NumericArray(ObjectX); err != nil {
			return deck, err
		}
		if a.Y, err = an.NumericArray(ObjectY); err != nil {
			return deck, err
		}
		if len(a.X) != len(a.Y) {
			return deck, &GeometryError{
				Element: deck.Name,
				Message: fmt.Sprintf("aisle has %d x and %d y waypoints", len(a.X), len(a.Y)),
			}
		}
		deck.Aisles = append(deck.Aisles, a)
	}

	for _, sn := range n.FindAll(SeatElementSubPath) {
		sg, err := parseSeatGroup(sn)
		if err != nil {
			return deck, fmt.Errorf("deck %s: %w", deck.Name, err)
		}
		deck.SeatGroups = append(deck.SeatGroups, sg)
	}

	return deck, nil
}

// footprint reads the position and size fields shared by floor elements
// and seat groups.
type footprint struct {
	x, y, length, width, height, rotation float64
}

func parseFootprint(n Node) (footprint, error) {
	var f footprint
	var err error
	for _, field := range []struct {
		path string
		dst  *float64
	}{
		{ObjectLength, &f.length},
		{ObjectHeight, &f.height},
		{ObjectWidth, &f.width},
		{ObjectX, &f.x},
		{ObjectY, &f.y},
	} {
		if *field.dst, err = n.Float(field.path); err != nil {
			return f, err
		}
	}
	if f.rotation, err = n.CustomFloat(CustomRotation, DefaultRotation); err != nil {
		return f, err
	}
	return f, nil
}

func parseFloorElement(n Node) (FloorElement, error) {
	fp, err := parseFootprint(n)
	if err != nil {
		return FloorElement{}, err
	}
	tag, err := n.Field(ElementType)
	if err != nil {
		return FloorElement{}, err
	}
	kind, _ := ParseFloorKind(tag)
	return FloorElement{
		Kind:     kind,
		Tag:      tag,
		X:        fp.x,
		Y:        fp.y,
		Length:   fp.length,
		Width:    fp.width,
		Height:   fp.height,
		Rotation: fp.rotation,
	}, nil
}

func parseSeatGroup(n Node) (SeatGroup, error) {
	seats, err := n.Int(SeatsPerGroup)
	if err != nil {
		return SeatGroup{}, err
	}
	fp, err := parseFootprint(n)
	if err != nil {
		return SeatGroup{}, err
	}
	tag, err := n.Field(ElementType)
	if err != nil {
		return SeatGroup{}, err
	}
	kind, _ := ParseSeatKind(tag)
	return SeatGroup{
		Kind:     kind,
		Tag:      tag,
		Seats:    seats,
		X:        fp.x,
		Y:        fp.y,
		Length:   fp.length,
		Width:    fp.width,
		Height:   fp.height,
		Rotation: fp.rotation,
	}, nil
}
