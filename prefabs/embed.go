package prefabs

import (
	"embed"
	"fmt"
	"os"
)

//go:embed duel.yaml
var defaultFS embed.FS

// Load reads a spec file from disk, or the embedded default duel.yaml when
// path is empty.
func Load(path string) ([]byte, error) {
	if path == "" {
		return defaultFS.ReadFile("duel.yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	return data, nil
}
