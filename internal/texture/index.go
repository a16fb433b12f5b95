package texture

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// diffuse map extensions in priority order; TGA wins because it keeps
// the renderer's native pixel layout
var diffuseExts = []string{".tga", ".png", ".jpg", ".jpeg"}

// Index maps lowercase mesh stems to diffuse map paths. A mesh
// "head.obj" pairs with "head_diffuse.tga" (or .png/.jpg) found
// anywhere under the scanned directory.
type Index struct {
	entries map[string]string
}

const diffuseSuffix = "_diffuse"

// BuildIndex walks dir for <stem>_diffuse.<ext> files. When a stem has
// several candidates the earlier extension in priority order wins.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if extRank(ext) < 0 {
			return nil
		}
		base := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		stem, ok := strings.CutSuffix(base, diffuseSuffix)
		if !ok {
			return nil
		}

		existing, exists := idx.entries[stem]
		if !exists || extRank(ext) < extRank(strings.ToLower(filepath.Ext(existing))) {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

func extRank(ext string) int {
	for i, e := range diffuseExts {
		if e == ext {
			return i
		}
	}
	return -1
}

// ResolvePath returns the diffuse map path for a mesh file name, or
// ("", false) when the index has none for its stem.
func (idx *Index) ResolvePath(meshName string) (string, bool) {
	base := filepath.Base(meshName)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed diffuse maps.
func (idx *Index) Len() int {
	return len(idx.entries)
}
