package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"image/color"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/titanous/json5"

	"github.com/chazu/cabinloft/pkg/log"
	"github.com/chazu/cabinloft/pkg/scene"
)

//go:embed default.json5
var defaultLibrary []byte

// ErrorColor marks parts and materials that could not be resolved.
var ErrorColor = color.RGBA{R: 255, A: 255}

type libraryFile struct {
	Materials map[string][3]int `json:"materials"`
	Keywords  map[string]string `json:"keywords"`
}

// Library maps template part names to materials.
type Library struct {
	materials map[string]scene.Material
	keywords  map[string]string
	// keyword names, longest first, for prefix and substring matching
	ordered []string

	lg *log.Logger
}

// DefaultLibrary returns the embedded material library.
func DefaultLibrary(lg *log.Logger) *Library {
	l, err := ParseLibrary(bytes.NewReader(defaultLibrary), lg)
	if err != nil {
		panic(fmt.Sprintf("assets: embedded material library: %v", err))
	}
	return l
}

// LoadLibrary reads a JSON5 material library from path.
func LoadLibrary(path string, lg *log.Logger) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l, err := ParseLibrary(f, lg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// ParseLibrary decodes a JSON5 library of the form
//
//	{ materials: { Wood: [140, 95, 55] }, keywords: { table: "Wood" } }
func ParseLibrary(r io.Reader, lg *log.Logger) (*Library, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var lf libraryFile
	if err := json5.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("assets: material library: %w", err)
	}

	l := &Library{
		materials: make(map[string]scene.Material, len(lf.Materials)),
		keywords:  lf.Keywords,
		lg:        lg,
	}
	if l.keywords == nil {
		l.keywords = map[string]string{}
	}
	for name, rgb := range lf.Materials {
		for _, c := range rgb {
			if c < 0 || c > 255 {
				return nil, fmt.Errorf("assets: material %q: channel %d out of range", name, c)
			}
		}
		l.materials[name] = scene.Material{
			Name:  name,
			Color: color.RGBA{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2]), A: 255},
		}
	}

	l.ordered = lo.Keys(l.keywords)
	slices.SortFunc(l.ordered, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	return l, nil
}

// Names returns the library's material names in sorted order.
func (l *Library) Names() []string {
	names := lo.Keys(l.materials)
	slices.Sort(names)
	return names
}

// Material returns the named material. A name the library does not know
// yields a red placeholder called "<name> not found!".
func (l *Library) Material(name string) scene.Material {
	if m, ok := l.materials[name]; ok {
		return m
	}
	l.lg.Infof("could not load material %s", name)
	return scene.Material{Name: name + " not found!", Color: ErrorColor}
}

// Keyword returns the keyword that part matches: an exact keyword, else the
// longest keyword part starts with, else the longest keyword it contains.
func (l *Library) Keyword(part string) (string, bool) {
	if _, ok := l.keywords[part]; ok {
		return part, true
	}
	for _, kw := range l.ordered {
		if strings.HasPrefix(part, kw) {
			return kw, true
		}
	}
	for _, kw := range l.ordered {
		if strings.Contains(part, kw) {
			return kw, true
		}
	}
	return "", false
}

// Resolve returns the material for a template part. Parts named after a
// library material use it directly. Parts matching no keyword get a red
// material called "<part> ERROR".
func (l *Library) Resolve(part string) scene.Material {
	if kw, ok := l.Keyword(part); ok {
		return l.Material(l.keywords[kw])
	}
	if m, ok := l.materials[part]; ok {
		return m
	}
	l.lg.Warnf("no material keyword matches part %q", part)
	return scene.Material{Name: part + " ERROR", Color: ErrorColor}
}
