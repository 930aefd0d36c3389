// Package layout builds the cabin scene from parsed CPACS data: the
// fuselage hull, deck floors and ceilings, wall linings, furnishings,
// overhead bins and seats. All geometry is in metres with x running aft
// from the nose, y to starboard and z up.
package layout

import (
	"fmt"

	"github.com/chazu/cabinloft/pkg/assets"
	"github.com/chazu/cabinloft/pkg/cpacs"
	"github.com/chazu/cabinloft/pkg/log"
	"github.com/chazu/cabinloft/pkg/scene"
)

// SeatStyle selects the seat template family.
type SeatStyle string

// SeatStyleEconomy is the only supported style. OPT_A is accepted as an
// alias.
const SeatStyleEconomy SeatStyle = "economy"

// ParseSeatStyle validates a seat style name. An empty name selects
// SeatStyleEconomy.
func ParseSeatStyle(s string) (SeatStyle, error) {
	switch s {
	case "", string(SeatStyleEconomy), "OPT_A":
		return SeatStyleEconomy, nil
	default:
		return "", fmt.Errorf("layout: unsupported seat style %q", s)
	}
}

// Options configures a Builder.
type Options struct {
	// Loader supplies template meshes. Required.
	Loader assets.Loader
	// Library resolves template parts to materials. Nil selects the
	// embedded default library.
	Library *assets.Library
	Logger  *log.Logger

	SeatStyle string
}

// Builder sequences the layout phases. Each Build call starts a fresh
// scene and template cache.
type Builder struct {
	loader assets.Loader
	lib    *assets.Library
	lg     *log.Logger
	style  SeatStyle
}

// NewBuilder validates opts and returns a Builder.
func NewBuilder(opts Options) (*Builder, error) {
	if opts.Loader == nil {
		return nil, fmt.Errorf("layout: no template loader")
	}
	style, err := ParseSeatStyle(opts.SeatStyle)
	if err != nil {
		return nil, err
	}
	lib := opts.Library
	if lib == nil {
		lib = assets.DefaultLibrary(opts.Logger)
	}
	return &Builder{loader: opts.Loader, lib: lib, lg: opts.Logger, style: style}, nil
}

// Floor and ceiling slab thicknesses.
const (
	floorThickness   = 0.05
	ceilingThickness = 0.01
)

// run holds the state of one Build call.
type run struct {
	scene *scene.Scene
	cache *assets.TemplateCache
	lib   *assets.Library
	lg    *log.Logger

	ceiling   *scene.Collection
	lining    *scene.Collection
	templates *scene.Collection
	seats     *scene.Collection
	floor     *scene.Collection
	fuselage  *scene.Collection
}

// Build parses doc and assembles the scene: the fuselage first, then for
// every deck in document order its floor and ceiling, linings, floor
// elements, end walls, overhead bins and seats. Templates are dropped from
// the finished scene. Input errors abort the build before any geometry is
// created.
func (b *Builder) Build(doc *cpacs.Document) (*scene.Scene, error) {
	fus, err := doc.ParseFuselage()
	if err != nil {
		return nil, fmt.Errorf("layout: fuselage: %w", err)
	}
	decks, err := doc.ParseDecks()
	if err != nil {
		return nil, fmt.Errorf("layout: decks: %w", err)
	}

	s := scene.New()
	r := &run{
		scene:     s,
		lib:       b.lib,
		lg:        b.lg,
		ceiling:   s.AddCollection(scene.CollectionCeiling),
		lining:    s.AddCollection(scene.CollectionLining),
		templates: s.AddCollection(scene.CollectionTemplates),
		seats:     s.AddCollection(scene.CollectionSeats),
		floor:     s.AddCollection(scene.CollectionFloorElements),
		fuselage:  s.AddCollection(scene.CollectionFuselage),
	}
	r.cache = assets.NewTemplateCache(b.loader, s, r.templates, b.lib, b.lg)

	b.lg.Info("creating aircraft model", "decks", len(decks), "seat_style", string(b.style))

	if fus == nil {
		b.lg.Info("no fuselage positioning data, skipping hull")
	} else if err := r.buildFuselage(fus); err != nil {
		return nil, err
	}

	for i := range decks {
		if err := r.buildDeck(&decks[i]); err != nil {
			return nil, fmt.Errorf("layout: deck %q: %w", decks[i].Name, err)
		}
	}

	s.RemoveCollection(scene.CollectionTemplates)
	b.lg.Info("import completed", "objects", s.ObjectCount(), "materials", len(s.Materials))
	return s, nil
}

func (r *run) buildDeck(d *cpacs.Deck) error {
	r.lg.Infof("creating deck %s", d.Name)
	if err := r.buildFloorAndCeiling(d); err != nil {
		return err
	}

	r.lg.Info("creating linings")
	if err := r.buildLinings(d); err != nil {
		return err
	}

	r.lg.Info("creating floor elements")
	if err := r.buildFloorElements(d); err != nil {
		return err
	}
	if err := r.buildEndWalls(d); err != nil {
		return err
	}

	r.lg.Info("creating overhead bins")
	if err := r.buildBins(d); err != nil {
		return err
	}

	r.lg.Info("creating seats")
	return r.buildSeats(d)
}
