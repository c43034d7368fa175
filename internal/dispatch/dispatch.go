package dispatch

import (
	"context"
	"fmt"
	"os"

	"github.com/jorge-barreto/doxrun/internal/config"
)

// Environment holds the execution context for one build run.
type Environment struct {
	ProjectRoot  string
	DocsDir      string
	ArtifactsDir string
	RunID        string
	ProjectIndex int
	ProjectCount int
}

// Vars returns the variable substitution map for config paths.
func (e *Environment) Vars() map[string]string {
	return map[string]string{
		"PROJECT_ROOT":  e.ProjectRoot,
		"DOCS_DIR":      e.DocsDir,
		"ARTIFACTS_DIR": e.ArtifactsDir,
	}
}

// BuildEnv returns the environment variables for the child process:
// the current environment plus DOXRUN_ variables describing the run.
func BuildEnv(env *Environment, project config.Project) []string {
	base := os.Environ()
	result := make([]string, len(base), len(base)+7)
	copy(result, base)
	result = append(result,
		"DOXRUN_RUN_ID="+env.RunID,
		"DOXRUN_PROJECT="+project.Name,
		"DOXRUN_PROJECT_ROOT="+env.ProjectRoot,
		"DOXRUN_DOCS_DIR="+env.DocsDir,
		"DOXRUN_ARTIFACTS_DIR="+env.ArtifactsDir,
		fmt.Sprintf("DOXRUN_PROJECT_INDEX=%d", env.ProjectIndex+1),
		fmt.Sprintf("DOXRUN_PROJECT_COUNT=%d", env.ProjectCount),
	)
	return result
}

// Result holds the outcome of one tool invocation.
type Result struct {
	ExitCode int
	Output   string
	TimedOut bool
}

// Tool runs the documentation generator against a single config file.
// Tests can substitute a mock.
type Tool interface {
	Run(ctx context.Context, project config.Project, configPath string, env *Environment) (*Result, error)
}

// ToolError reports that the documentation tool exited non-zero for a project.
type ToolError struct {
	Project  string
	ExitCode int
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("documentation tool failed for project %q (exit code %d)", e.Project, e.ExitCode)
}
