// Package config loads render settings from JSON with CLI overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"obj-tga-renderer/internal/mathutil"
	"obj-tga-renderer/internal/raster"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	ModelDir   string `json:"model_dir"`
	TextureDir string `json:"texture_dir"`
	OutputDir  string `json:"output_dir"`

	// Render settings
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Uncompressed bool       `json:"uncompressed"` // write raw instead of RLE
	Fill         string     `json:"fill"`         // scanline | barycentric
	Line         string     `json:"line"`         // parametric | floaterror | bresenham
	Light        [3]float64 `json:"light"`
	Workers      int        `json:"workers"`
}

// Load reads a JSON config file. Fields not set in the file keep their
// zero values until Resolve fills in defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	ModelDir   string
	TextureDir string
	OutputDir  string
	Width      int
	Height     int
	Workers    int
	Fill       string
	Line       string
}

// Resolve applies flag overrides and fills empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.ModelDir != "" {
		c.ModelDir = flags.ModelDir
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Fill != "" {
		c.Fill = flags.Fill
	}
	if flags.Line != "" {
		c.Line = flags.Line
	}

	if c.ModelDir == "" {
		c.ModelDir = "."
	}
	if c.TextureDir == "" {
		c.TextureDir = c.ModelDir
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 800
	}
	if c.Fill == "" {
		c.Fill = "scanline"
	}
	if c.Line == "" {
		c.Line = "bresenham"
	}
	if c.Light == ([3]float64{}) {
		c.Light = [3]float64{0, 0, -1}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// FillRule translates the fill setting. Unknown names are an error so a
// typo fails fast instead of silently picking a default.
func (c Config) FillRule() (raster.FillRule, error) {
	switch c.Fill {
	case "scanline":
		return raster.FillScanline, nil
	case "barycentric":
		return raster.FillBarycentric, nil
	}
	return 0, fmt.Errorf("config: unknown fill rule %q", c.Fill)
}

// LineAlgo translates the line setting.
func (c Config) LineAlgo() (raster.LineAlgo, error) {
	switch c.Line {
	case "parametric":
		return raster.LineParametric, nil
	case "floaterror":
		return raster.LineFloatError, nil
	case "bresenham":
		return raster.LineBresenham, nil
	}
	return 0, fmt.Errorf("config: unknown line algorithm %q", c.Line)
}

// LightDir returns the normalized light direction.
func (c Config) LightDir() mathutil.Vec3 {
	return mathutil.Vec3(c.Light).Normalize()
}
