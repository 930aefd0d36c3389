package export

import (
	"fmt"
	"io"
	"os"
	"time"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/chazu/cabinloft/pkg/kernel"
	"github.com/chazu/cabinloft/pkg/scene"
)

// SnapshotVersion is bumped whenever the snapshot layout changes.
const SnapshotVersion = 1

// Snapshot is the serialized form of a scene: msgpack, compressed with
// zstd.
type Snapshot struct {
	Version     int              `msgpack:"version"`
	RunID       string           `msgpack:"run_id"`
	Source      string           `msgpack:"source"`
	Created     time.Time        `msgpack:"created"`
	Materials   []scene.Material `msgpack:"materials"`
	Collections []CollectionData `msgpack:"collections"`
}

type CollectionData struct {
	Name    string       `msgpack:"name"`
	Objects []ObjectData `msgpack:"objects"`
}

type ObjectData struct {
	Name     string     `msgpack:"name"`
	Template string     `msgpack:"template,omitempty"`
	Location [3]float64 `msgpack:"location"`
	Rotation [3]float64 `msgpack:"rotation"`
	Scale    [3]float64 `msgpack:"scale"`
	Mirrored [3]bool    `msgpack:"mirrored"`

	Verts        [][3]float64 `msgpack:"verts"`
	Faces        [][]int      `msgpack:"faces"`
	FaceMaterial []int        `msgpack:"face_material"`
	Materials    []string     `msgpack:"materials"`
	Smooth       bool         `msgpack:"smooth"`
}

// Meta identifies the run that produced a snapshot.
type Meta struct {
	RunID  string
	Source string
	Time   time.Time
}

func toArray(v v3.Vec) [3]float64   { return [3]float64{v.X, v.Y, v.Z} }
func fromArray(a [3]float64) v3.Vec { return v3.Vec{X: a[0], Y: a[1], Z: a[2]} }

// NewSnapshot captures s. Collections and objects keep their order and
// materials are sorted by name.
func NewSnapshot(s *scene.Scene, meta Meta) *Snapshot {
	snap := &Snapshot{
		Version: SnapshotVersion,
		RunID:   meta.RunID,
		Source:  meta.Source,
		Created: meta.Time,
	}
	for _, name := range s.MaterialNames() {
		snap.Materials = append(snap.Materials, s.Materials[name])
	}
	for _, c := range s.Collections {
		cd := CollectionData{Name: c.Name}
		for _, o := range c.Objects {
			od := ObjectData{
				Name:     o.Name,
				Template: o.Template,
				Location: toArray(o.Location),
				Rotation: toArray(o.Rotation),
				Scale:    toArray(o.Scale),
				Mirrored: o.Mirrored,
			}
			if m := o.Mesh; m != nil {
				od.Verts = make([][3]float64, len(m.Verts))
				for i, v := range m.Verts {
					od.Verts[i] = toArray(v)
				}
				od.Faces = m.Faces
				od.FaceMaterial = m.FaceMaterial
				od.Materials = m.Materials
				od.Smooth = m.Smooth
			}
			cd.Objects = append(cd.Objects, od)
		}
		snap.Collections = append(snap.Collections, cd)
	}
	return snap
}

// Scene rebuilds the scene the snapshot was taken from.
func (snap *Snapshot) Scene() *scene.Scene {
	s := scene.New()
	for _, m := range snap.Materials {
		s.AddMaterial(m)
	}
	for _, cd := range snap.Collections {
		c := s.AddCollection(cd.Name)
		for _, od := range cd.Objects {
			m := kernel.NewPolyMesh(od.Name)
			m.Verts = make([]v3.Vec, len(od.Verts))
			for i, v := range od.Verts {
				m.Verts[i] = fromArray(v)
			}
			m.Faces = od.Faces
			m.FaceMaterial = od.FaceMaterial
			m.Materials = od.Materials
			m.Smooth = od.Smooth

			o := s.AddMesh(c, od.Name, m)
			o.Template = od.Template
			o.Location = fromArray(od.Location)
			o.Rotation = fromArray(od.Rotation)
			o.Scale = fromArray(od.Scale)
			o.Mirrored = od.Mirrored
		}
	}
	return s
}

// WriteSnapshot encodes s to w.
func WriteSnapshot(w io.Writer, s *scene.Scene, meta Meta) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("export: snapshot: %w", err)
	}
	if err := msgpack.NewEncoder(zw).Encode(NewSnapshot(s, meta)); err != nil {
		zw.Close()
		return fmt.Errorf("export: snapshot: %w", err)
	}
	return zw.Close()
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("export: snapshot: %w", err)
	}
	defer zr.Close()

	var snap Snapshot
	if err := msgpack.NewDecoder(zr).Decode(&snap); err != nil {
		return nil, fmt.Errorf("export: snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("export: snapshot version %d, want %d", snap.Version, SnapshotVersion)
	}
	return &snap, nil
}

// WriteSnapshotFile writes a snapshot of s to path.
func WriteSnapshotFile(path string, s *scene.Scene, meta Meta) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := WriteSnapshot(f, s, meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadSnapshotFile reads the snapshot at path.
func ReadSnapshotFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}
