// Package batch renders directories of meshes with a worker pool.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"obj-tga-renderer/internal/mathutil"
	"obj-tga-renderer/internal/model"
	"obj-tga-renderer/internal/raster"
	"obj-tga-renderer/internal/texture"
	"obj-tga-renderer/internal/tga"
)

// Config holds the shared resources for a batch run. TexResolver is
// shared across workers; each job gets its own renderer.
type Config struct {
	ModelDir    string
	OutputDir   string
	TexResolver texture.Resolver
	Width       int
	Height      int
	RLE         bool
	Light       mathutil.Vec3
	Fill        raster.FillRule
	Workers     int
}

// Result holds the outcome of rendering one mesh.
type Result struct {
	Name     string
	Faces    int
	Textured bool
	Success  bool
	Error    string
}

// ListMeshes returns the OBJ file names directly under dir, sorted.
func ListMeshes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".obj") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Run renders every named mesh using a worker pool and reports per-mesh
// results in input order. A ticker prints throughput while the pool is
// busy.
func Run(cfg Config, names []string) []Result {
	total := len(names)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f meshes/sec\n", p, total, rate)
				}
			}
		}
	}()

	jobs := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = renderMesh(cfg, names[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range names {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results
}

func renderMesh(cfg Config, name string) Result {
	res := Result{Name: name}

	m, err := model.Load(filepath.Join(cfg.ModelDir, name))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Faces = m.FaceCount()
	if m.FaceCount() == 0 {
		res.Error = "no faces"
		return res
	}

	var tex *tga.Image
	if cfg.TexResolver != nil && m.HasUVs() {
		tex = cfg.TexResolver.Resolve(name)
	}
	res.Textured = tex != nil

	r := raster.New(cfg.Width, cfg.Height)
	if err := r.RenderShaded(m, tex, cfg.Light, cfg.Fill); err != nil {
		res.Error = err.Error()
		return res
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		res.Error = err.Error()
		return res
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if err := r.Save(filepath.Join(cfg.OutputDir, stem+".tga"), cfg.RLE); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}
