// Package config provides configuration loading and management for
// seiscoherence. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Attribute parameters select and shape the coherence computation
	Attribute struct {
		// Algorithm is one of "crosscorrelation", "semblance" or
		// "eigenstructure"
		Algorithm string `yaml:"algorithm"`

		// WindowInline, WindowCrossline and WindowSample are the odd
		// extents of the 3-D analysis window
		WindowInline    int `yaml:"windowInline"`
		WindowCrossline int `yaml:"windowCrossline"`
		WindowSample    int `yaml:"windowSample"`

		// ZWin is the cross-correlation lag-window length in samples
		ZWin int `yaml:"zwin"`

		// Boundary is "reflect" or "interior"
		Boundary string `yaml:"boundary"`
	} `yaml:"attribute"`

	// Volume parameters describe the physical sampling of the input
	Volume struct {
		// SampleInterval is the time between samples in milliseconds
		SampleInterval float64 `yaml:"sampleInterval"`

		// InlineSpacing is the inline trace spacing in meters
		InlineSpacing float64 `yaml:"inlineSpacing"`

		// CrosslineSpacing is the crossline trace spacing in meters
		CrosslineSpacing float64 `yaml:"crosslineSpacing"`
	} `yaml:"volume"`

	// Processing parameters
	Processing struct {
		// NumCores specifies how many CPU cores to use for the
		// windowed pass
		NumCores int `yaml:"numCores"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// SaveSlices determines whether per-axis slice images of the
		// coherence field are written after a run
		SaveSlices bool `yaml:"saveSlices"`

		// SlicesDir is the directory for the slice images
		SlicesDir string `yaml:"slicesDir"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default attribute parameters: a 3x3-trace, 9-sample analysis
	// window is the customary starting point for coherence scanning
	cfg.Attribute.Algorithm = "semblance"
	cfg.Attribute.WindowInline = 3
	cfg.Attribute.WindowCrossline = 3
	cfg.Attribute.WindowSample = 9
	cfg.Attribute.ZWin = 5
	cfg.Attribute.Boundary = "reflect"

	// Set default volume sampling
	cfg.Volume.SampleInterval = 4.0
	cfg.Volume.InlineSpacing = 25.0
	cfg.Volume.CrosslineSpacing = 25.0

	// Set default processing parameters
	cfg.Processing.NumCores = runtime.NumCPU() // Use all available cores by default

	// Set default output parameters
	cfg.Output.SaveSlices = false
	cfg.Output.SlicesDir = "coherence_slices"
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
