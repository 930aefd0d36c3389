package assets

import (
	"fmt"

	"github.com/chazu/cabinloft/pkg/log"
	"github.com/chazu/cabinloft/pkg/scene"
)

// TemplateCache loads each template at most once per run and keeps it in
// the scene's template collection, ready to be instantiated. It is owned by
// a single builder and is not safe for concurrent use.
type TemplateCache struct {
	loader    Loader
	scene     *scene.Scene
	templates *scene.Collection
	lib       *Library
	lg        *log.Logger

	objects map[Key]*scene.Object
	loads   map[Key]int
}

// NewTemplateCache returns a cache that loads through loader and links
// templates into the given collection of s.
func NewTemplateCache(loader Loader, s *scene.Scene, templates *scene.Collection, lib *Library, lg *log.Logger) *TemplateCache {
	return &TemplateCache{
		loader:    loader,
		scene:     s,
		templates: templates,
		lib:       lib,
		lg:        lg,
		objects:   make(map[Key]*scene.Object),
		loads:     make(map[Key]int),
	}
}

// Get returns the template object for key, loading it on first use. The
// part names of the loaded mesh are replaced by resolved material names
// and those materials are registered with the scene.
func (c *TemplateCache) Get(key Key) (*scene.Object, error) {
	if o, ok := c.objects[key]; ok {
		return o, nil
	}

	c.loads[key]++
	m, err := c.loader.Load(key)
	if err != nil {
		return nil, fmt.Errorf("assets: loading template %s: %w", key, err)
	}
	for i, part := range m.Materials {
		mat := c.lib.Resolve(part)
		c.scene.AddMaterial(mat)
		m.Materials[i] = mat.Name
	}
	m.Name = key.Name
	m.Smooth = true

	o := c.scene.AddTemplate(c.templates, key.Name, m)
	c.objects[key] = o
	c.lg.Debug("loaded template", "key", key.String(), "faces", len(m.Faces), "materials", len(m.Materials))
	return o, nil
}

// Loads reports how many times key was handed to the loader.
func (c *TemplateCache) Loads(key Key) int {
	return c.loads[key]
}

// Len returns the number of cached templates.
func (c *TemplateCache) Len() int {
	return len(c.objects)
}
