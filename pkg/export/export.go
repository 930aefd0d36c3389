// Package export writes a built cabin to files: triangle meshes as STL or
// 3MF, a top-view deck plan as DXF and the whole scene as a compressed
// snapshot that can be read back.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output file format.
type Format int

const (
	FormatSTL Format = iota
	Format3MF
	FormatPlan
	FormatSnapshot
)

func (f Format) String() string {
	switch f {
	case FormatSTL:
		return "stl"
	case Format3MF:
		return "3mf"
	case FormatPlan:
		return "dxf"
	case FormatSnapshot:
		return "cabin"
	default:
		return "unknown"
	}
}

// SnapshotExt is the file extension of scene snapshots.
const SnapshotExt = ".cabin"

// FormatFor picks the format from the file extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return FormatSTL, nil
	case ".3mf":
		return Format3MF, nil
	case ".dxf":
		return FormatPlan, nil
	case SnapshotExt:
		return FormatSnapshot, nil
	default:
		return 0, fmt.Errorf("export: unsupported output file %q", path)
	}
}
