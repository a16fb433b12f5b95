package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"obj-tga-renderer/internal/mathutil"
	"obj-tga-renderer/internal/raster"
)

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	if cfg.Width != 800 || cfg.Height != 800 {
		t.Errorf("canvas %dx%d, want 800x800", cfg.Width, cfg.Height)
	}
	if cfg.Uncompressed {
		t.Error("RLE should be on by default")
	}
	if cfg.Fill != "scanline" || cfg.Line != "bresenham" {
		t.Errorf("fill=%q line=%q", cfg.Fill, cfg.Line)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("workers = %d, want NumCPU", cfg.Workers)
	}
	if cfg.LightDir() != (mathutil.Vec3{0, 0, -1}) {
		t.Errorf("light = %v", cfg.LightDir())
	}
	if cfg.OutputDir != "renders" || cfg.ModelDir != "." {
		t.Errorf("dirs = %q %q", cfg.OutputDir, cfg.ModelDir)
	}
	if cfg.TextureDir != cfg.ModelDir {
		t.Errorf("texture dir %q should default to model dir", cfg.TextureDir)
	}
}

func TestResolveFlagOverrides(t *testing.T) {
	cfg := Config{Width: 100, Workers: 2, OutputDir: "from-file"}
	cfg.Resolve(Flags{Width: 320, Height: 240, Workers: 7, OutputDir: "from-flag", ModelDir: "meshes"})

	if cfg.Width != 320 || cfg.Height != 240 {
		t.Errorf("canvas %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Workers != 7 {
		t.Errorf("workers = %d", cfg.Workers)
	}
	if cfg.OutputDir != "from-flag" {
		t.Errorf("output = %q", cfg.OutputDir)
	}
	if cfg.ModelDir != "meshes" {
		t.Errorf("models = %q", cfg.ModelDir)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"model_dir":"objs","width":640,"uncompressed":true,"fill":"barycentric","light":[1,0,0],"workers":3}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve(Flags{})

	if cfg.ModelDir != "objs" || cfg.Width != 640 || !cfg.Uncompressed || cfg.Workers != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if rule, err := cfg.FillRule(); err != nil || rule != raster.FillBarycentric {
		t.Errorf("fill rule = %v, %v", rule, err)
	}
	if cfg.LightDir() != (mathutil.Vec3{1, 0, 0}) {
		t.Errorf("light = %v", cfg.LightDir())
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("want error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{"), 0644)
	if _, err := Load(path); err == nil {
		t.Fatal("want error for invalid JSON")
	}
}

func TestAlgoParsing(t *testing.T) {
	cfg := Config{Fill: "scanline", Line: "parametric"}
	if rule, err := cfg.FillRule(); err != nil || rule != raster.FillScanline {
		t.Errorf("fill = %v, %v", rule, err)
	}
	if algo, err := cfg.LineAlgo(); err != nil || algo != raster.LineParametric {
		t.Errorf("line = %v, %v", algo, err)
	}

	if _, err := (Config{Fill: "midpoint"}).FillRule(); err == nil {
		t.Error("unknown fill accepted")
	}
	if _, err := (Config{Line: "dda"}).LineAlgo(); err == nil {
		t.Error("unknown line accepted")
	}
}

func TestLightNormalized(t *testing.T) {
	cfg := Config{Light: [3]float64{0, 0, -9}}
	if cfg.LightDir() != (mathutil.Vec3{0, 0, -1}) {
		t.Errorf("light = %v, want unit vector", cfg.LightDir())
	}
}
