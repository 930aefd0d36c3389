// Package scene is the in-memory 3D scene the cabin layout is built into:
// named collections of mesh objects, each with its own location, Euler
// rotation, signed scale and world-axis mirror flags, plus the materials
// their faces refer to. Template objects are copied into the scene with
// Instantiate; there is no selection state, so every query is pure.
package scene

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/chazu/cabinloft/pkg/kernel"
)

// Standard collection names, in the order they are created.
const (
	CollectionCeiling       = "Ceiling"
	CollectionLining        = "Lining"
	CollectionTemplates     = "Templates"
	CollectionSeats         = "Seats"
	CollectionFloorElements = "Floor Elements"
	CollectionFuselage      = "Fuselage"
)

// Material is a named surface colour.
type Material struct {
	Name  string     `msgpack:"name" json:"name"`
	Color color.RGBA `msgpack:"color" json:"color"`
}

// Collection is an ordered group of objects.
type Collection struct {
	Name    string
	Objects []*Object
}

// Scene holds every collection, object and material of one import run.
type Scene struct {
	Collections []*Collection
	Materials   map[string]Material

	nextID    ObjectID
	copies    map[string]int // per-name counter for instance suffixes
	nameIndex map[string]*Object
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		Materials: make(map[string]Material),
		copies:    make(map[string]int),
		nameIndex: make(map[string]*Object),
	}
}

// AddCollection appends a new collection. Adding an existing name returns
// the existing collection.
func (s *Scene) AddCollection(name string) *Collection {
	if c := s.Collection(name); c != nil {
		return c
	}
	c := &Collection{Name: name}
	s.Collections = append(s.Collections, c)
	return c
}

// Collection returns the collection with the given name, or nil.
func (s *Scene) Collection(name string) *Collection {
	for _, c := range s.Collections {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// RemoveCollection deletes a collection together with its objects.
func (s *Scene) RemoveCollection(name string) bool {
	i := slices.IndexFunc(s.Collections, func(c *Collection) bool { return c.Name == name })
	if i < 0 {
		return false
	}
	for _, o := range s.Collections[i].Objects {
		if s.nameIndex[o.Name] == o {
			delete(s.nameIndex, o.Name)
		}
	}
	s.Collections = slices.Delete(s.Collections, i, i+1)
	return true
}

// AddMaterial registers m, replacing any material with the same name.
func (s *Scene) AddMaterial(m Material) {
	s.Materials[m.Name] = m
}

// MaterialNames returns the registered material names in sorted order.
func (s *Scene) MaterialNames() []string {
	names := make([]string, 0, len(s.Materials))
	for n := range s.Materials {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// AddMesh links a new object with an identity transform to c. Object names
// are made unique with a numeric suffix, as copies are.
func (s *Scene) AddMesh(c *Collection, name string, mesh *kernel.PolyMesh) *Object {
	o := &Object{
		Name:  s.uniqueName(name),
		Mesh:  mesh,
		Scale: unitScale,
	}
	s.link(c, o)
	return o
}

func (s *Scene) link(c *Collection, o *Object) {
	s.nextID++
	o.ID = s.nextID
	o.Collection = c.Name
	c.Objects = append(c.Objects, o)
	s.nameIndex[o.Name] = o
}

// uniqueName returns name if unused, otherwise name.001, name.002, ...
func (s *Scene) uniqueName(name string) string {
	if _, taken := s.nameIndex[name]; !taken {
		return name
	}
	for {
		s.copies[name]++
		candidate := fmt.Sprintf("%s.%03d", name, s.copies[name])
		if _, taken := s.nameIndex[candidate]; !taken {
			return candidate
		}
	}
}

// Lookup returns the object with the given name, or nil.
func (s *Scene) Lookup(name string) *Object {
	return s.nameIndex[name]
}

// Objects returns every object in collection order.
func (s *Scene) Objects() []*Object {
	var objs []*Object
	for _, c := range s.Collections {
		objs = append(objs, c.Objects...)
	}
	return objs
}

// ObjectCount returns the total number of objects.
func (s *Scene) ObjectCount() int {
	n := 0
	for _, c := range s.Collections {
		n += len(c.Objects)
	}
	return n
}
