// Command cabinloft builds 3D aircraft cabin models from CPACS files.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/cabinloft/pkg/config"
	"github.com/chazu/cabinloft/pkg/log"
)

var cfg = config.Load()

var rootCmd = &cobra.Command{
	Use:           "cabinloft",
	Short:         "Build 3D aircraft cabin models from CPACS files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a CPACS file and export the cabin",
	Long: "Build the fuselage, decks, linings, furnishings, bins and seats described by a CPACS file. " +
		"Each --out file is written in the format its extension names (.stl, .3mf, .dxf or .cabin).",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Import from the fixed workflow location and save a scene snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBatch,
}

var (
	outPaths []string
	planPath string
	jsonOut  bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.AssetDir, "assets", cfg.AssetDir, "template library directory (procedural templates when empty)")
	pf.StringVar(&cfg.MaterialFile, "materials", cfg.MaterialFile, "JSON5 material library (embedded library when empty)")
	pf.StringVar(&cfg.SeatStyle, "seat-style", cfg.SeatStyle, "seat template style")
	pf.IntVar(&cfg.MeshCells, "cells", cfg.MeshCells, "marching-cubes resolution of procedural templates")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	pf.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "directory for the rotating JSON log")

	importCmd.Flags().StringSliceVarP(&outPaths, "out", "o", nil, "output file; may be repeated")
	importCmd.Flags().StringVar(&planPath, "plan", "", "write a DXF deck plan")
	importCmd.Flags().BoolVar(&jsonOut, "json", false, "print the import result as JSON")

	batchCmd.Flags().StringVarP(&cfg.BatchOutput, "out", "o", cfg.BatchOutput, "snapshot file")

	rootCmd.AddCommand(importCmd, batchCmd)
}

func newApp() (*App, *log.Logger, error) {
	lg := log.New(cfg.LogLevel, cfg.LogDir)
	app, err := NewApp(cfg, lg)
	return app, lg, err
}

func runImport(cmd *cobra.Command, args []string) error {
	app, lg, err := newApp()
	if err != nil {
		return err
	}

	result := app.Import(args[0])
	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		if err := enc.Encode(result); err != nil {
			return err
		}
	}
	if !result.OK() {
		return importError(result)
	}

	paths := outPaths
	if planPath != "" {
		paths = append(paths, planPath)
	}
	for _, p := range paths {
		if err := app.Export(&result, p); err != nil {
			return err
		}
	}
	lg.Info("done", "objects", result.Objects, "meshes", len(result.Meshes), "outputs", len(paths))
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	in := cfg.BatchInput
	if len(args) == 1 {
		in = args[0]
	}
	app, lg, err := newApp()
	if err != nil {
		return err
	}

	result := app.Import(in)
	if !result.OK() {
		return importError(result)
	}
	if err := app.Export(&result, cfg.BatchOutput); err != nil {
		return err
	}
	lg.Info("batch import saved", "input", in, "output", cfg.BatchOutput)
	return nil
}

func importError(r ImportResult) error {
	if len(r.Errors) == 0 {
		return fmt.Errorf("import of %s failed", r.Source)
	}
	e := r.Errors[0]
	if e.Object != "" {
		return fmt.Errorf("import of %s failed: %s: %s", r.Source, e.Object, e.Message)
	}
	return fmt.Errorf("import of %s failed: %s", r.Source, e.Message)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
