package state

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates the artifacts directory structure.
func EnsureDir(artifactsDir string) error {
	dirs := []string{
		artifactsDir,
		filepath.Join(artifactsDir, "logs"),
		filepath.Join(artifactsDir, "doxyfiles"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("creating artifacts dir %s: %w", d, err)
		}
	}
	return nil
}

// LogPath returns the path for a project's tool log.
func LogPath(artifactsDir string, idx int) string {
	return filepath.Join(artifactsDir, "logs", fmt.Sprintf("project-%d.log", idx+1))
}

// DoxyfilePath returns where the rendered config of a project is recorded.
func DoxyfilePath(artifactsDir string, idx int) string {
	return filepath.Join(artifactsDir, "doxyfiles", fmt.Sprintf("project-%d.doxyfile", idx+1))
}

// RecordDoxyfile keeps a copy of a generated config artifact for later
// inspection by status and doctor.
func RecordDoxyfile(artifactsDir string, idx int, content string) error {
	return os.WriteFile(DoxyfilePath(artifactsDir, idx), []byte(content), 0644)
}

// Reset removes the records of a previous run so a fresh run starts clean.
func Reset(artifactsDir string) error {
	for _, p := range []string{
		statePath(artifactsDir),
		timingPath(artifactsDir),
		filepath.Join(artifactsDir, "logs"),
		filepath.Join(artifactsDir, "doxyfiles"),
	} {
		if err := os.RemoveAll(p); err != nil {
			return fmt.Errorf("resetting artifacts: %w", err)
		}
	}
	return EnsureDir(artifactsDir)
}
