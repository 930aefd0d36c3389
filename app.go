package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chazu/cabinloft/pkg/assets"
	"github.com/chazu/cabinloft/pkg/config"
	"github.com/chazu/cabinloft/pkg/cpacs"
	"github.com/chazu/cabinloft/pkg/export"
	"github.com/chazu/cabinloft/pkg/kernel"
	"github.com/chazu/cabinloft/pkg/kernel/sdfx"
	"github.com/chazu/cabinloft/pkg/layout"
	"github.com/chazu/cabinloft/pkg/log"
	"github.com/chazu/cabinloft/pkg/scene"
	"github.com/chazu/cabinloft/pkg/tessellate"
)

// colorPalette is used for meshes without a material, such as the hull
// and the ceiling slabs.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App runs imports with one template loader and material library.
type App struct {
	cfg    *config.Config
	lg     *log.Logger
	loader assets.Loader
	lib    *assets.Library
}

// MeshData is the JSON-serializable mesh format of an import result.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Material string    `json:"material"`
	Color    string    `json:"color"`
}

// ImportErrorData is a JSON-serializable import problem.
type ImportErrorData struct {
	Object  string `json:"object,omitempty"`
	Message string `json:"message"`
}

// ImportResult is the full result of one import.
type ImportResult struct {
	RunID    string            `json:"runId"`
	Source   string            `json:"source"`
	Objects  int               `json:"objects"`
	Meshes   []MeshData        `json:"meshes"`
	Errors   []ImportErrorData `json:"errors"`
	Warnings []ImportErrorData `json:"warnings"`

	scene   *scene.Scene
	meshes  []*kernel.Mesh
	created time.Time
}

// NewApp creates an App from cfg. Templates come from cfg.AssetDir when
// set and are generated procedurally otherwise.
func NewApp(cfg *config.Config, lg *log.Logger) (*App, error) {
	if _, err := layout.ParseSeatStyle(cfg.SeatStyle); err != nil {
		return nil, err
	}

	var loader assets.Loader
	if cfg.AssetDir != "" {
		loader = assets.OBJLoader{Dir: cfg.AssetDir}
		lg.Info("loading templates", "dir", cfg.AssetDir)
	} else {
		loader = assets.NewProceduralLoader(sdfx.New(cfg.MeshCells))
		lg.Info("no asset directory configured, using procedural templates", "cells", cfg.MeshCells)
	}

	lib := assets.DefaultLibrary(lg)
	if cfg.MaterialFile != "" {
		var err error
		if lib, err = assets.LoadLibrary(cfg.MaterialFile, lg); err != nil {
			return nil, err
		}
	}

	return &App{cfg: cfg, lg: lg, loader: loader, lib: lib}, nil
}

// Import reads the CPACS file at path, builds the cabin and tessellates
// it. Failures are reported in the result, not returned.
func (a *App) Import(path string) ImportResult {
	result := ImportResult{
		RunID:    uuid.NewString(),
		Source:   path,
		Meshes:   []MeshData{},
		Errors:   []ImportErrorData{},
		Warnings: []ImportErrorData{},
		created:  time.Now(),
	}
	lg := a.lg.With("run", result.RunID)

	// Step 1: Parse the document and build the scene.
	doc, err := cpacs.ReadFile(path, lg)
	if err != nil {
		lg.Error("import failed", "error", err)
		result.Errors = append(result.Errors, ImportErrorData{Message: err.Error()})
		return result
	}
	b, err := layout.NewBuilder(layout.Options{
		Loader:    a.loader,
		Library:   a.lib,
		Logger:    lg,
		SeatStyle: a.cfg.SeatStyle,
	})
	if err != nil {
		result.Errors = append(result.Errors, ImportErrorData{Message: err.Error()})
		return result
	}
	s, err := b.Build(doc)
	if err != nil {
		lg.Error("import failed", "error", err)
		result.Errors = append(result.Errors, ImportErrorData{Message: err.Error()})
		return result
	}
	result.scene = s
	result.Objects = s.ObjectCount()

	// Step 2: Validate the finished scene.
	v := scene.Validate(s)
	for _, e := range v.Warnings {
		result.Warnings = append(result.Warnings, ImportErrorData{Object: e.Object, Message: e.Message})
	}
	for _, e := range v.Errors {
		result.Errors = append(result.Errors, ImportErrorData{Object: e.Object, Message: e.Message})
	}
	if !v.OK() {
		lg.Error("scene failed validation", "errors", len(v.Errors))
		return result
	}
	if len(v.Warnings) > 0 {
		lg.Warn("scene has validation warnings", "warnings", len(v.Warnings))
	}

	// Step 3: Tessellate the scene into world-space triangle meshes.
	meshes, err := tessellate.Tessellate(s)
	if err != nil {
		lg.Error("tessellation failed", "error", err)
		result.Errors = append(result.Errors, ImportErrorData{Message: "tessellation failed: " + err.Error()})
		return result
	}
	result.meshes = meshes

	// Step 4: Convert to the result format.
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Material: m.Material,
			Color:    a.meshColor(s, m, i),
		})
	}
	return result
}

func (a *App) meshColor(s *scene.Scene, m *kernel.Mesh, i int) string {
	if mat, ok := s.Materials[m.Material]; ok {
		return fmt.Sprintf("#%02X%02X%02X", mat.Color.R, mat.Color.G, mat.Color.B)
	}
	return colorPalette[i%len(colorPalette)]
}

// OK reports whether the import produced a scene without errors.
func (r *ImportResult) OK() bool {
	return r.scene != nil && len(r.Errors) == 0
}

// Export writes a successful import to path in the format its extension
// names.
func (a *App) Export(r *ImportResult, path string) error {
	if !r.OK() {
		return fmt.Errorf("nothing to export, import of %s failed", r.Source)
	}
	format, err := export.FormatFor(path)
	if err != nil {
		return err
	}
	switch format {
	case export.FormatSTL:
		err = export.WriteSTL(path, r.meshes)
	case export.Format3MF:
		err = export.Write3MFFile(path, r.scene, r.meshes)
	case export.FormatPlan:
		err = export.WritePlan(path, r.scene)
	case export.FormatSnapshot:
		err = export.WriteSnapshotFile(path, r.scene, export.Meta{RunID: r.RunID, Source: r.Source, Time: r.created})
	}
	if err != nil {
		return err
	}
	a.lg.Info("exported", "path", path, "format", format.String(), "run", r.RunID)
	return nil
}
