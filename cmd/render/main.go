package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"obj-tga-renderer/internal/batch"
	"obj-tga-renderer/internal/config"
	"obj-tga-renderer/internal/model"
	"obj-tga-renderer/internal/raster"
	"obj-tga-renderer/internal/texture"
	"obj-tga-renderer/internal/tga"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	modelPath := flag.String("model", "", "Render a single OBJ file instead of a directory")
	texPath := flag.String("texture", "", "Diffuse map for -model (default: lookup by stem)")
	wireframe := flag.Bool("wireframe", false, "Draw face edges instead of shaded fill")
	modelDir := flag.String("models", "", "Directory of OBJ files (default: current dir)")
	texDir := flag.String("textures", "", "Directory of diffuse maps (default: models dir)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	width := flag.Int("width", 0, "Canvas width (default: 800)")
	height := flag.Int("height", 0, "Canvas height (default: 800)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	fill := flag.String("fill", "", "Triangle fill rule: scanline or barycentric")
	line := flag.String("line", "", "Line algorithm: parametric, floaterror or bresenham")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg.Resolve(config.Flags{
		ModelDir:   *modelDir,
		TextureDir: *texDir,
		OutputDir:  *outputDir,
		Width:      *width,
		Height:     *height,
		Workers:    *workers,
		Fill:       *fill,
		Line:       *line,
	})

	fillRule, err := cfg.FillRule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	lineAlgo, err := cfg.LineAlgo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *modelPath != "" {
		if err := renderOne(cfg, *modelPath, *texPath, *wireframe, fillRule, lineAlgo); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runBatch(cfg, fillRule)
}

func renderOne(cfg config.Config, modelPath, texPath string, wireframe bool, fill raster.FillRule, line raster.LineAlgo) error {
	m, err := model.Load(modelPath)
	if err != nil {
		return err
	}
	fmt.Printf("Model: %s (%d verts, %d faces)\n", modelPath, m.VertexCount(), m.FaceCount())

	r := raster.New(cfg.Width, cfg.Height)

	if wireframe {
		white := tga.NewRGB(255, 255, 255)
		r.RenderWireframe(m, white, line)
	} else {
		var tex *tga.Image
		if texPath != "" {
			tex, err = texture.Load(texPath)
			if err != nil {
				return err
			}
		} else if m.HasUVs() {
			cache := texture.NewCache(texture.BuildIndex(cfg.TextureDir))
			tex = cache.Resolve(filepath.Base(modelPath))
		}
		if tex != nil {
			fmt.Println("Texture: found")
		}
		if err := r.RenderShaded(m, tex, cfg.LightDir(), fill); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}
	base := filepath.Base(modelPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	out := filepath.Join(cfg.OutputDir, stem+".tga")
	if err := r.Save(out, !cfg.Uncompressed); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}

func runBatch(cfg config.Config, fill raster.FillRule) {
	names, err := batch.ListMeshes(cfg.ModelDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(names) == 0 {
		fmt.Println("No meshes to render.")
		return
	}

	texIndex := texture.BuildIndex(cfg.TextureDir)
	texCache := texture.NewCache(texIndex)
	fmt.Printf("Textures: %d indexed\n", texIndex.Len())
	fmt.Printf("Meshes: %d, Workers: %d, Canvas: %dx%d\n", len(names), cfg.Workers, cfg.Width, cfg.Height)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		ModelDir:    cfg.ModelDir,
		OutputDir:   cfg.OutputDir,
		TexResolver: texCache,
		Width:       cfg.Width,
		Height:      cfg.Height,
		RLE:         !cfg.Uncompressed,
		Light:       cfg.LightDir(),
		Fill:        fill,
		Workers:     cfg.Workers,
	}, names)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", success, len(names))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
