package scene

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/kernel"
)

// ObjectID identifies an object within one scene.
type ObjectID uint32

func (id ObjectID) String() string {
	return fmt.Sprintf("obj-%04d", uint32(id))
}

// Axis indexes the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

var unitScale = v3.Vec{X: 1, Y: 1, Z: 1}

// Object is a mesh placed in the scene. Its world matrix is
//
//	T(Location) · M(Mirrored) · Rz · Ry · Rx · S(Scale)
//
// where M negates every world axis whose mirror flag is set.
type Object struct {
	ID         ObjectID
	Name       string
	Collection string
	Template   string // name of the template this object was copied from

	Mesh *kernel.PolyMesh

	Location v3.Vec
	Rotation v3.Vec // Euler XYZ, radians
	Scale    v3.Vec
	Mirrored [3]bool
}

// Matrix returns the object-to-world transform.
func (o *Object) Matrix() sdf.M44 {
	mirror := unitScale
	if o.Mirrored[AxisX] {
		mirror.X = -1
	}
	if o.Mirrored[AxisY] {
		mirror.Y = -1
	}
	if o.Mirrored[AxisZ] {
		mirror.Z = -1
	}
	rot := sdf.RotateZ(o.Rotation.Z).Mul(sdf.RotateY(o.Rotation.Y)).Mul(sdf.RotateX(o.Rotation.X))
	return sdf.Translate3d(o.Location).
		Mul(sdf.Scale3d(mirror)).
		Mul(rot).
		Mul(sdf.Scale3d(o.Scale))
}

// Handedness is +1 when the world matrix preserves orientation and -1 when
// it reflects it, in which case triangle winding must be reversed.
func (o *Object) Handedness() float64 {
	h := 1.0
	for _, s := range []float64{o.Scale.X, o.Scale.Y, o.Scale.Z} {
		if s < 0 {
			h = -h
		}
	}
	for _, m := range o.Mirrored {
		if m {
			h = -h
		}
	}
	return h
}

// Dimensions returns the object's size along its own axes: the absolute
// scale times the extent of the mesh bounding box. Rotation and mirroring
// do not affect it.
func (o *Object) Dimensions() v3.Vec {
	ext := o.Mesh.Extent()
	return v3.Vec{
		X: math.Abs(o.Scale.X) * ext.X,
		Y: math.Abs(o.Scale.Y) * ext.Y,
		Z: math.Abs(o.Scale.Z) * ext.Z,
	}
}

// SizeOption overrides one dimension in SetDimensions and Instantiate.
type SizeOption func(*sizeSpec)

type sizeSpec struct {
	value [3]float64
	set   [3]bool
}

// WithX sets the size along the object's X axis (length).
func WithX(v float64) SizeOption { return withAxis(AxisX, v) }

// WithY sets the size along the object's Y axis (height once the
// instance is stood upright).
func WithY(v float64) SizeOption { return withAxis(AxisY, v) }

// WithZ sets the size along the object's Z axis (width).
func WithZ(v float64) SizeOption { return withAxis(AxisZ, v) }

func withAxis(a Axis, v float64) SizeOption {
	return func(s *sizeSpec) {
		s.value[a] = v
		s.set[a] = true
	}
}

// SetDimensions rescales the object so that each given dimension is met.
// Sizes are taken as magnitudes; the sign of the existing scale, and so any
// reflection, is kept. Axes along which the mesh is flat cannot be resized
// and are left unchanged.
func (o *Object) SetDimensions(opts ...SizeOption) {
	var spec sizeSpec
	for _, opt := range opts {
		opt(&spec)
	}
	ext := o.Mesh.Extent()
	extent := [3]float64{ext.X, ext.Y, ext.Z}
	scale := [3]*float64{&o.Scale.X, &o.Scale.Y, &o.Scale.Z}
	for a := range 3 {
		if !spec.set[a] || extent[a] == 0 {
			continue
		}
		*scale[a] = math.Copysign(math.Abs(spec.value[a])/extent[a], *scale[a])
	}
}

// Mirror reflects the object about the given world axes through its own
// location. Mirroring the same axes twice restores the original transform.
func (o *Object) Mirror(x, y, z bool) {
	if x {
		o.Mirrored[AxisX] = !o.Mirrored[AxisX]
	}
	if y {
		o.Mirrored[AxisY] = !o.Mirrored[AxisY]
	}
	if z {
		o.Mirrored[AxisZ] = !o.Mirrored[AxisZ]
	}
}

// SetHeading sets the rotation about the world Z axis as it appears after
// mirroring. A reflection in X or Y reverses the sense of a Z rotation, so
// for such objects the stored angle is negated.
func (o *Object) SetHeading(rad float64) {
	if o.Mirrored[AxisX] != o.Mirrored[AxisY] {
		rad = -rad
	}
	o.Rotation.Z = rad
}

// WorldBounds returns the bounding box of the transformed mesh.
func (o *Object) WorldBounds() sdf.Box3 {
	m := o.Matrix()
	if len(o.Mesh.Verts) == 0 {
		return sdf.Box3{Min: o.Location, Max: o.Location}
	}
	first := m.MulPosition(o.Mesh.Verts[0])
	bb := sdf.Box3{Min: first, Max: first}
	for _, v := range o.Mesh.Verts[1:] {
		w := m.MulPosition(v)
		bb.Min = bb.Min.Min(w)
		bb.Max = bb.Max.Max(w)
	}
	return bb
}
