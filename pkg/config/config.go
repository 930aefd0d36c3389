// Package config holds run-wide settings for cabinloft. Values start from
// built-in defaults, are overridden by CABIN_* environment variables, and
// finally by command-line flags.
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// DefaultMeshCells is the marching-cubes resolution used for procedural
// stand-in templates.
const DefaultMeshCells = 24

type Config struct {
	// AssetDir is the root of the .obj template library. Empty selects the
	// procedural stand-in templates.
	AssetDir string
	// MaterialFile is a JSON5 material library. Empty selects the embedded one.
	MaterialFile string

	LogLevel string
	LogDir   string

	// BatchInput and BatchOutput are the fixed locations used by the batch
	// command when no arguments are given.
	BatchInput  string
	BatchOutput string

	MeshCells int
	SeatStyle string
}

// Default returns the built-in configuration.
func Default() *Config {
	desktop := filepath.Join(homeDir(), "Desktop")
	return &Config{
		LogLevel:    "info",
		BatchInput:  filepath.Join(desktop, "workflow", "output", "output_file.xml"),
		BatchOutput: filepath.Join(desktop, "cabin.cabin"),
		MeshCells:   DefaultMeshCells,
		SeatStyle:   "economy",
	}
}

// Load returns the default configuration with environment overrides applied.
func Load() *Config {
	c := Default()
	c.AssetDir = getEnv("CABIN_ASSET_DIR", c.AssetDir)
	c.MaterialFile = getEnv("CABIN_MATERIALS", c.MaterialFile)
	c.LogLevel = getEnv("CABIN_LOG_LEVEL", c.LogLevel)
	c.LogDir = getEnv("CABIN_LOG_DIR", c.LogDir)
	c.BatchInput = getEnv("CABIN_BATCH_INPUT", c.BatchInput)
	c.BatchOutput = getEnv("CABIN_BATCH_OUTPUT", c.BatchOutput)
	c.MeshCells = getEnvAsInt("CABIN_MESH_CELLS", c.MeshCells)
	c.SeatStyle = getEnv("CABIN_SEAT_STYLE", c.SeatStyle)
	return c
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			return intVal
		}
	}
	return defaultVal
}
