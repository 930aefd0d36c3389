package assets

import "github.com/chazu/cabinloft/pkg/kernel"

// Loader produces the mesh for a template key. Material slots on the
// returned mesh carry part names ("cushion", "armrest", ...) that the
// material library resolves to colours.
type Loader interface {
	Load(key Key) (*kernel.PolyMesh, error)
}
