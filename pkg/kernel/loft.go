package kernel

import (
	"fmt"

	"github.com/chazu/cabinloft/pkg/log"
)

// LoftOption configures Loft.
type LoftOption func(*loftOptions)

type loftOptions struct {
	material string
	verify   bool
	lg       *log.Logger
}

// WithMaterial assigns the named material to every face.
func WithMaterial(name string) LoftOption {
	return func(o *loftOptions) { o.material = name }
}

// WithVerify enables or disables the second outward-orientation pass.
// It is enabled by default.
func WithVerify(verify bool) LoftOption {
	return func(o *loftOptions) { o.verify = verify }
}

// WithLogger sets the logger used for dropped-shape warnings.
func WithLogger(lg *log.Logger) LoftOption {
	return func(o *loftOptions) { o.lg = lg }
}

// Loft connects consecutive shapes of equal cardinality N into a closed
// polygon mesh: one N-gon cap on the first shape, one quad per point per
// consecutive pair of shapes (wrapping from point N-1 back to 0), and one
// N-gon cap on the last shape. Empty shapes are dropped with a warning.
// The result has len(shapes)*N vertices and 2+(len(shapes)-1)*N faces,
// consistently wound with outward normals and smooth shading.
func Loft(name string, shapes []Shape, opts ...LoftOption) (*PolyMesh, error) {
	o := loftOptions{verify: true}
	for _, opt := range opts {
		opt(&o)
	}

	var kept []Shape
	for i, s := range shapes {
		if len(s) == 0 {
			o.lg.Warn("loft: dropping empty shape", "object", name, "index", i)
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("kernel: loft %q: no non-empty shapes", name)
	}

	n := len(kept[0])
	for i, s := range kept {
		if len(s) != n {
			return nil, fmt.Errorf("kernel: loft %q: shape %d has %d points, want %d", name, i, len(s), n)
		}
	}
	if n < 3 {
		return nil, fmt.Errorf("kernel: loft %q: shapes need at least 3 points, have %d", name, n)
	}

	m := NewPolyMesh(name)
	for _, s := range kept {
		m.Verts = append(m.Verts, s...)
	}

	mat := -1
	if o.material != "" {
		mat = m.MaterialSlot(o.material)
	}

	front := make([]int, n)
	for i := range front {
		front[i] = i
	}
	m.AddFace(front, mat)

	for s := 0; s < len(kept)-1; s++ {
		base := s * n
		for i := 0; i < n-1; i++ {
			m.AddFace([]int{base + i, base + i + 1, base + i + n + 1, base + i + n}, mat)
		}
		m.AddFace([]int{base + n - 1, base, base + n, base + 2*n - 1}, mat)
	}

	back := make([]int, n)
	for i := range back {
		back[i] = (len(kept)-1)*n + i
	}
	m.AddFace(back, mat)

	m.RecalcNormals()
	if o.verify {
		if flips := m.VerifyNormals(); flips > 0 {
			o.lg.Debug("loft: verify pass reoriented faces", "object", name, "flips", flips)
		}
	}
	m.Smooth = true
	return m, nil
}
