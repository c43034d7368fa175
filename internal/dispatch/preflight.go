package dispatch

import (
	"fmt"
	"os/exec"
)

// Preflight checks that the documentation tool can be found.
// Paths containing a separator are checked directly, bare names on PATH.
func Preflight(tool string) error {
	if _, err := exec.LookPath(tool); err != nil {
		return fmt.Errorf("documentation tool %q not found: %w", tool, err)
	}
	return nil
}
