package doctor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/doxrun/internal/config"
	"github.com/jorge-barreto/doxrun/internal/dispatch"
	"github.com/jorge-barreto/doxrun/internal/state"
	"github.com/jorge-barreto/doxrun/internal/ux"
)

const maxLogLines = 200

// Check is one environment check result.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Run prints failure context for the last failed or interrupted build:
// the project's config, its log tail, timing and environment checks.
func Run(projectRoot, artifactsDir string, cfg *config.Config, st *state.State) error {
	if st.Status != state.StatusFailed && st.Status != state.StatusInterrupted {
		fmt.Fprintln(ux.Out, "No failed run to diagnose.")
		return nil
	}

	if st.ProjectIndex >= len(cfg.Projects) {
		return fmt.Errorf("project index %d out of range (config has %d projects)", st.ProjectIndex, len(cfg.Projects))
	}

	project := cfg.Projects[st.ProjectIndex]

	ux.Section(fmt.Sprintf("Doctor: project %d/%d (%s) %s", st.ProjectIndex+1, len(cfg.Projects), project.Name, st.Status))

	fmt.Fprintf(ux.Out, "Project config:\n%s\n\n", indent(gatherProjectConfig(cfg, project, projectRoot)))
	if timing := gatherTiming(artifactsDir, project.Name); timing != "" {
		fmt.Fprintf(ux.Out, "Timing: %s\n\n", timing)
	}
	fmt.Fprintf(ux.Out, "Log output (last %d lines):\n%s\n\n", maxLogLines, indent(gatherLog(artifactsDir, st.ProjectIndex)))

	fmt.Fprintln(ux.Out, "Environment:")
	for _, c := range Checks(cfg, project, projectRoot) {
		ux.Check(c.OK, c.Name, c.Detail)
	}

	ux.ResumeHint()
	return nil
}

// Checks runs the environment checks relevant to one project.
func Checks(cfg *config.Config, project config.Project, projectRoot string) []Check {
	var checks []Check

	toolCheck := Check{Name: fmt.Sprintf("%s on PATH", cfg.Tool), OK: true}
	if err := dispatch.Preflight(cfg.Tool); err != nil {
		toolCheck.OK = false
		toolCheck.Detail = err.Error()
	}
	checks = append(checks, toolCheck)

	docsDir := cfg.DocsPath(projectRoot)
	docsCheck := Check{Name: "docs dir writable", OK: true, Detail: docsDir}
	if err := checkWritable(docsDir); err != nil {
		docsCheck.OK = false
		docsCheck.Detail = err.Error()
	}
	checks = append(checks, docsCheck)

	if !project.Generated() {
		path := cfg.ResolveDoxyfile(project, projectRoot)
		c := Check{Name: "doxyfile readable", OK: true, Detail: path}
		if err := checkReadable(path); err != nil {
			c.OK = false
			c.Detail = err.Error()
		}
		return append(checks, c)
	}

	for _, in := range cfg.ResolveInputs(project, projectRoot) {
		c := Check{Name: "input readable", OK: true, Detail: in}
		if err := checkReadable(in); err != nil {
			c.OK = false
			c.Detail = err.Error()
		}
		checks = append(checks, c)
	}
	return checks
}

func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

// checkWritable reports whether files can be created in dir, or in its
// nearest existing ancestor when dir does not exist yet.
func checkWritable(dir string) error {
	target := dir
	for {
		info, err := os.Stat(target)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", target)
			}
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		parent := filepath.Dir(target)
		if parent == target {
			return err
		}
		target = parent
	}
	f, err := os.CreateTemp(target, ".doxrun-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func gatherProjectConfig(cfg *config.Config, project config.Project, projectRoot string) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Name: %s", project.Name))
	if !project.Generated() {
		parts = append(parts, fmt.Sprintf("Doxyfile: %s", cfg.ResolveDoxyfile(project, projectRoot)))
		return strings.Join(parts, "\n")
	}
	parts = append(parts, fmt.Sprintf("Input: %s", strings.Join(cfg.ResolveInputs(project, projectRoot), " ")))
	parts = append(parts, fmt.Sprintf("Output: %s", project.Output))
	parts = append(parts, fmt.Sprintf("File patterns: %s", project.FilePatterns))
	for _, s := range project.Settings {
		parts = append(parts, fmt.Sprintf("%s = %s", s.Key, s.Value))
	}
	return strings.Join(parts, "\n")
}

func gatherLog(artifactsDir string, projectIndex int) string {
	path := state.LogPath(artifactsDir, projectIndex)
	data, err := os.ReadFile(path)
	if err != nil {
		return "(no log file found)"
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > maxLogLines {
		lines = lines[len(lines)-maxLogLines:]
		return fmt.Sprintf("... (truncated to last %d lines)\n%s", maxLogLines, strings.Join(lines, "\n"))
	}
	return string(data)
}

func gatherTiming(artifactsDir, project string) string {
	timing, err := state.LoadTiming(artifactsDir)
	if err != nil {
		return ""
	}
	var parts []string
	for _, e := range timing.Entries {
		if e.Project != project {
			continue
		}
		if outcome := e.Outcome(); outcome != "" {
			parts = append(parts, fmt.Sprintf("%s started %s, duration %s, %s",
				e.Project, e.Start.Format("15:04:05"), e.Duration, outcome))
		} else {
			parts = append(parts, fmt.Sprintf("%s started %s (did not complete)",
				e.Project, e.Start.Format("15:04:05")))
		}
	}
	return strings.Join(parts, "; ")
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n  ")
}
