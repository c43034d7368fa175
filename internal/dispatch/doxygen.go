package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/jorge-barreto/doxrun/internal/config"
	"github.com/jorge-barreto/doxrun/internal/state"
)

// Doxygen invokes a Doxygen-compatible executable as `<Path> <config>`.
type Doxygen struct {
	Path    string
	Timeout time.Duration // zero disables the per-project timeout
	Stdout  io.Writer     // defaults to os.Stdout
	Stderr  io.Writer     // defaults to os.Stderr
}

// Run executes the tool with configPath as its only argument, in env.DocsDir.
// Output goes to the console, the project log file and Result.Output.
func (d *Doxygen) Run(ctx context.Context, project config.Project, configPath string, env *Environment) (*Result, error) {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, d.Path, configPath)
	cmd.Dir = env.DocsDir
	cmd.Env = BuildEnv(env, project)
	cmd.WaitDelay = 5 * time.Second

	logFile, err := os.Create(state.LogPath(env.ArtifactsDir, env.ProjectIndex))
	if err != nil {
		return nil, err
	}
	defer logFile.Close()
	fmt.Fprintf(logFile, "# run %s: %s %s (cwd %s)\n", env.RunID, d.Path, configPath, env.DocsDir)

	stdout, stderr := d.Stdout, d.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	var captured bytes.Buffer
	cmd.Stdout = io.MultiWriter(stdout, logFile, &captured)
	cmd.Stderr = io.MultiWriter(stderr, logFile, &captured)

	code, err := exitCode(cmd.Run())
	if err != nil {
		return nil, err
	}
	timedOut := d.Timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded)
	if timedOut {
		fmt.Fprintf(logFile, "# timed out after %s\n", d.Timeout)
	}
	fmt.Fprintf(logFile, "# exit code %d\n", code)

	return &Result{ExitCode: code, Output: captured.String(), TimedOut: timedOut}, nil
}
