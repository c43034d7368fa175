package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir is the per-project directory holding config and artifacts.
const Dir = ".doxrun"

var configNames = []string{"config.yaml", "config.yml", "config.toml"}

// FindRoot walks up from start looking for a .doxrun config file.
// It returns the project root and the config file path.
func FindRoot(start string) (string, string, error) {
	dir := start
	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, Dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return dir, configPath, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", fmt.Errorf("no %s/config.yaml found (searched from %s to root)", Dir, start)
		}
		dir = parent
	}
}

// ArtifactsDir returns the artifacts directory for a project root.
func ArtifactsDir(projectRoot string) string {
	return filepath.Join(projectRoot, Dir, "artifacts")
}
