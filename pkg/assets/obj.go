package assets

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/cabinloft/pkg/kernel"
)

// OBJLoader reads templates from a directory laid out as
// <Dir>/<Category>/<Name>.obj. Each "o" or "g" statement in a file starts a
// new part; its name, cut at the first '.', becomes the material slot of
// the faces that follow.
type OBJLoader struct {
	Dir string
}

// Path returns the file a key is read from.
func (l OBJLoader) Path(key Key) string {
	return filepath.Join(l.Dir, key.Category, key.Name+".obj")
}

func (l OBJLoader) Load(key Key) (*kernel.PolyMesh, error) {
	path := l.Path(key)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &AssetNotFoundError{Key: key, Path: path, Err: err}
		}
		return nil, err
	}
	defer f.Close()

	m, err := ReadOBJ(f, key.Name)
	if err != nil {
		return nil, fmt.Errorf("assets: %s: %w", path, err)
	}
	return m, nil
}

// ReadOBJ parses the geometry of a Wavefront .obj stream. Only vertex
// positions and faces are kept; texture and normal references are
// ignored. Faces before the first object statement use name as their slot.
func ReadOBJ(r io.Reader, name string) (*kernel.PolyMesh, error) {
	m := kernel.NewPolyMesh(name)
	slot := -1
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			var p [3]float64
			for i := range 3 {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				p[i] = f
			}
			m.Verts = append(m.Verts, v3.Vec{X: p[0], Y: p[1], Z: p[2]})
		case "o", "g":
			part := name
			if len(fields) > 1 {
				part = partName(fields[1])
			}
			slot = m.MaterialSlot(part)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", line)
			}
			face := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				vi, err := vertexRef(ref, len(m.Verts))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				face = append(face, vi)
			}
			if slot < 0 {
				slot = m.MaterialSlot(name)
			}
			m.AddFace(face, slot)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(m.Faces) == 0 {
		return nil, errors.New("no faces")
	}
	return m, nil
}

// partName strips the numeric suffix an exporter adds to duplicate names,
// so "cushion.003" and "cushion" share a slot.
func partName(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}

// vertexRef resolves the position index of a face reference such as "7",
// "7/2" or "-1//3". Negative indices count back from the last vertex.
func vertexRef(ref string, n int) (int, error) {
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		ref = ref[:i]
	}
	idx, err := strconv.Atoi(ref)
	if err != nil {
		return 0, err
	}
	switch {
	case idx > 0 && idx <= n:
		return idx - 1, nil
	case idx < 0 && -idx <= n:
		return n + idx, nil
	default:
		return 0, fmt.Errorf("vertex index %d out of range (%d vertices)", idx, n)
	}
}
