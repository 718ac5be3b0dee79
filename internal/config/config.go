// Package config loads the JSON run description used by the engrave command.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/engrave/internal/hatch"
	"github.com/gogpu/engrave/internal/shade"
)

// DefaultPath is where the command looks for a configuration file when none
// is given.
const DefaultPath = "data/input.json"

// Defaults for fields omitted from the file.
const (
	DefaultShades      = 5
	DefaultDirections  = 8
	DefaultStrokeWidth = 6
	DefaultOutFileName = "out/out_img.png"
)

// maxFileSize caps the configuration file size.
const maxFileSize = 1 * 1024 * 1024 // 1MB

// Config describes one engraving run. Numeric fields are pointers so that a
// partial file leaves the rest at their defaults; use the Get* methods.
type Config struct {
	ImagePath   string `json:"img_path"`
	Shades      *int   `json:"n_shades,omitempty"`
	Directions  *int   `json:"n_grad_dir,omitempty"`
	StrokeWidth *int   `json:"stroke_width,omitempty"`
	OutFileName string `json:"out_file_name,omitempty"`

	// Polarity is "paper" (default) or "ink".
	Polarity string `json:"polarity,omitempty"`

	Workers *int `json:"workers,omitempty"` // <= 0 selects GOMAXPROCS
	MaxSize *int `json:"max_size,omitempty"` // 0 disables downscaling

	// ReportPath, if set, receives a diagnostic plot of the run.
	ReportPath string `json:"report_path,omitempty"`
}

// Load reads a Config from a JSON file.
// The file must have a .json extension and be under 1MB. Unknown keys are
// ignored.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields that are set.
func (c *Config) Validate() error {
	if c.Shades != nil {
		if _, err := shade.NewQuantizer(*c.Shades); err != nil {
			return fmt.Errorf("n_shades: %w", err)
		}
	}
	if c.Directions != nil && *c.Directions < 1 {
		return fmt.Errorf("n_grad_dir must be at least 1, got %d", *c.Directions)
	}
	if c.StrokeWidth != nil && *c.StrokeWidth < 1 {
		return fmt.Errorf("stroke_width must be at least 1, got %d", *c.StrokeWidth)
	}
	if _, err := hatch.ParsePolarity(c.Polarity); err != nil {
		return fmt.Errorf("polarity: %w", err)
	}
	if c.MaxSize != nil && *c.MaxSize < 0 {
		return fmt.Errorf("max_size must be non-negative, got %d", *c.MaxSize)
	}
	return nil
}

// GetShades returns n_shades or DefaultShades.
func (c *Config) GetShades() int {
	if c.Shades == nil {
		return DefaultShades
	}
	return *c.Shades
}

// GetDirections returns n_grad_dir or DefaultDirections.
func (c *Config) GetDirections() int {
	if c.Directions == nil {
		return DefaultDirections
	}
	return *c.Directions
}

// GetStrokeWidth returns stroke_width or DefaultStrokeWidth.
func (c *Config) GetStrokeWidth() int {
	if c.StrokeWidth == nil {
		return DefaultStrokeWidth
	}
	return *c.StrokeWidth
}

// GetOutFileName returns out_file_name or DefaultOutFileName.
func (c *Config) GetOutFileName() string {
	if c.OutFileName == "" {
		return DefaultOutFileName
	}
	return c.OutFileName
}

// GetPolarity returns the parsed polarity. Validate must have succeeded.
func (c *Config) GetPolarity() hatch.Polarity {
	p, _ := hatch.ParsePolarity(c.Polarity)
	return p
}

// GetWorkers returns workers, or 0 (GOMAXPROCS) when unset.
func (c *Config) GetWorkers() int {
	if c.Workers == nil {
		return 0
	}
	return *c.Workers
}

// GetMaxSize returns max_size, or 0 (no downscaling) when unset.
func (c *Config) GetMaxSize() int {
	if c.MaxSize == nil {
		return 0
	}
	return *c.MaxSize
}
