package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jorge-barreto/doxrun/internal/config"
	"github.com/jorge-barreto/doxrun/internal/dispatch"
	"github.com/jorge-barreto/doxrun/internal/doxyfile"
	"github.com/jorge-barreto/doxrun/internal/state"
	"github.com/jorge-barreto/doxrun/internal/ux"
)

// Runner builds documentation for each configured project in order.
type Runner struct {
	Config  *config.Config
	State   *state.State
	Env     *dispatch.Environment
	Tool    dispatch.Tool
	Timing  *state.Timing
	Logger  *slog.Logger
	TempDir string // where generated doxyfiles live while the tool runs; "" means os.TempDir
}

// failAndHint sets the failure status, saves state (warning on error),
// flushes timing, prints a resume hint, and returns the given error.
func (r *Runner) failAndHint(status string, err error) error {
	r.State.Status = status
	if saveErr := r.State.Save(r.Env.ArtifactsDir); saveErr != nil {
		r.Logger.Warn("failed to save state", "error", saveErr)
	}
	if r.Timing != nil {
		if flushErr := r.Timing.Flush(r.Env.ArtifactsDir); flushErr != nil {
			r.Logger.Warn("failed to flush timing", "error", flushErr)
		}
	}
	ux.ResumeHint()
	return err
}

// Run builds every project from the current state index. The first project
// whose tool exits non-zero stops the run with a *dispatch.ToolError.
func (r *Runner) Run(ctx context.Context) error {
	if r.Logger == nil {
		r.Logger = slog.Default()
	}
	if err := state.EnsureDir(r.Env.ArtifactsDir); err != nil {
		return err
	}
	if err := os.MkdirAll(r.Env.DocsDir, 0755); err != nil {
		return fmt.Errorf("creating docs dir: %w", err)
	}

	timing, err := state.LoadTiming(r.Env.ArtifactsDir)
	if err != nil {
		return fmt.Errorf("loading timing: %w", err)
	}
	r.Timing = timing

	total := len(r.Config.Projects)
	r.Env.ProjectCount = total

	for r.State.ProjectIndex < total {
		i := r.State.ProjectIndex
		project := r.Config.Projects[i]

		if ctx.Err() != nil {
			return r.failAndHint(state.StatusInterrupted, ctx.Err())
		}

		ux.ProjectHeader(i, total, project)
		r.Timing.AddStart(project.Name)

		r.Env.ProjectIndex = i
		start := time.Now()
		result, err := r.runProject(ctx, i, project)

		if ctx.Err() != nil {
			return r.failAndHint(state.StatusInterrupted, ctx.Err())
		}
		if err != nil {
			ux.ProjectFail(project.Name, err.Error())
			return r.failAndHint(state.StatusFailed, fmt.Errorf("project %q: %w", project.Name, err))
		}
		r.Timing.AddEnd(project.Name, result.ExitCode, result.TimedOut)
		if result.ExitCode != 0 {
			msg := fmt.Sprintf("exit code %d", result.ExitCode)
			if result.TimedOut {
				msg = fmt.Sprintf("timed out after %d minutes", r.Config.TimeoutMinutes())
			}
			ux.ProjectFail(project.Name, msg)
			return r.failAndHint(state.StatusFailed, &dispatch.ToolError{Project: project.Name, ExitCode: result.ExitCode})
		}

		duration := time.Since(start)
		if err := r.Timing.Flush(r.Env.ArtifactsDir); err != nil {
			r.Logger.Warn("failed to flush timing", "error", err)
		}
		r.State.Advance()
		r.State.Status = state.StatusRunning
		if err := r.State.Save(r.Env.ArtifactsDir); err != nil {
			return fmt.Errorf("saving state after project advance: %w", err)
		}
		ux.ProjectComplete(project.Name, duration)
	}

	r.State.Status = state.StatusCompleted
	if err := r.State.Save(r.Env.ArtifactsDir); err != nil {
		return fmt.Errorf("saving final state: %w", err)
	}
	if err := r.Timing.Flush(r.Env.ArtifactsDir); err != nil {
		return fmt.Errorf("flushing timing: %w", err)
	}
	ux.Success(total)
	return nil
}

// runProject prepares the config artifact for one project and invokes the
// tool. A generated artifact is removed before runProject returns.
func (r *Runner) runProject(ctx context.Context, idx int, project config.Project) (*dispatch.Result, error) {
	if !project.Generated() {
		path := r.Config.ResolveDoxyfile(project, r.Env.ProjectRoot)
		r.Logger.Debug("using existing doxyfile", "project", project.Name, "path", path)
		return r.Tool.Run(ctx, project, path, r.Env)
	}

	content := r.Render(project)
	if err := state.RecordDoxyfile(r.Env.ArtifactsDir, idx, content); err != nil {
		r.Logger.Warn("failed to record doxyfile", "project", project.Name, "error", err)
	}
	path, cleanup, err := doxyfile.WriteTemp(r.TempDir, content)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	r.Logger.Debug("wrote temporary doxyfile", "project", project.Name, "path", path)

	return r.Tool.Run(ctx, project, path, r.Env)
}

// Render returns the generated config artifact for a project.
func (r *Runner) Render(project config.Project) string {
	return doxyfile.Render(doxyfile.Artifact{
		Name:         project.Name,
		Output:       config.ExpandVars(project.Output, r.Env.Vars()),
		Inputs:       r.Config.ResolveInputs(project, r.Env.ProjectRoot),
		FilePatterns: project.FilePatterns,
		Settings:     project.Settings,
	})
}

// DryRunPrint prints the build plan without invoking the tool.
func (r *Runner) DryRunPrint() {
	total := len(r.Config.Projects)
	fmt.Fprintf(ux.Out, "\nDry run — %d projects (tool: %s, cwd: %s):\n\n", total, r.Config.Tool, r.Env.DocsDir)
	for i := r.State.ProjectIndex; i < total; i++ {
		p := r.Config.Projects[i]
		fmt.Fprintf(ux.Out, "  %d. %s\n", i+1, p.Name)
		if !p.Generated() {
			fmt.Fprintf(ux.Out, "     doxyfile: %s\n", r.Config.ResolveDoxyfile(p, r.Env.ProjectRoot))
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(r.Render(p), "\n"), "\n") {
			fmt.Fprintf(ux.Out, "     %s\n", line)
		}
	}
	fmt.Fprintln(ux.Out)
}
