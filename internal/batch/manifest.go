package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// ManifestEntry records one rendered mesh in the output manifest.
type ManifestEntry struct {
	Name     string `json:"name"`
	Image    string `json:"image"`
	Faces    int    `json:"faces"`
	Textured bool   `json:"textured"`
}

// WriteManifest writes manifest.json listing the successful renders.
func WriteManifest(path string, results []Result) error {
	var entries []ManifestEntry
	for _, r := range results {
		if !r.Success {
			continue
		}
		stem := strings.TrimSuffix(r.Name, filepath.Ext(r.Name))
		entries = append(entries, ManifestEntry{
			Name:     r.Name,
			Image:    stem + ".tga",
			Faces:    r.Faces,
			Textured: r.Textured,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
