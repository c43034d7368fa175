package dispatch

import (
	"errors"
	"os/exec"
)

// exitCode maps the error from running the tool to its exit code.
// Returns (code, nil) for ExitError, (0, err) when the tool could not be
// run, (0, nil) for nil. exec.ErrWaitDelay means the tool exited 0 but a
// process it started still held its output open after WaitDelay; that
// counts as success since doxygen's own output is complete.
func exitCode(err error) (int, error) {
	if err == nil || errors.Is(err, exec.ErrWaitDelay) {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}
