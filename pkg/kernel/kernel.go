// Package kernel holds the mesh types shared by the scene builder and the
// exporters: indexed polygon meshes, the loft operation that connects
// cross-sections into closed solids, normal orientation, and triangulation.
// It also defines the abstract solid-modelling Kernel used to build
// procedural stand-in templates.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface. The sdfx package
// provides the implementation.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid // minimum corner at the origin
	Cylinder(height, radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*PolyMesh, error)
}
