package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jorge-barreto/doxrun/internal/config"
	"github.com/jorge-barreto/doxrun/internal/state"
)

// fakeTool writes an executable bash script that runs body and exits with code.
func fakeTool(t *testing.T, code int, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-doxygen")
	script := fmt.Sprintf("#!/usr/bin/env bash\n%s\nexit %d\n", body, code)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func toolEnv(t *testing.T) *Environment {
	t.Helper()
	artDir := filepath.Join(t.TempDir(), "artifacts")
	if err := state.EnsureDir(artDir); err != nil {
		t.Fatal(err)
	}
	return &Environment{
		ProjectRoot:  t.TempDir(),
		DocsDir:      t.TempDir(),
		ArtifactsDir: artDir,
		RunID:        "run-1",
		ProjectIndex: 0,
		ProjectCount: 1,
	}
}

func quietDoxygen(path string) (*Doxygen, *bytes.Buffer) {
	var out bytes.Buffer
	return &Doxygen{Path: path, Stdout: &out, Stderr: &out}, &out
}

func TestDoxygen_Success(t *testing.T) {
	env := toolEnv(t)
	d, console := quietDoxygen(fakeTool(t, 0, `echo "generating $1"`))

	result, err := d.Run(context.Background(), config.Project{Name: "Packer"}, "/tmp/x.doxyfile", env)
	if err != nil {
		t.Fatal(err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("ExitCode = %d", result.ExitCode)
	}
	if !strings.Contains(result.Output, "generating /tmp/x.doxyfile") {
		t.Fatalf("output = %q", result.Output)
	}
	if !strings.Contains(console.String(), "generating") {
		t.Fatalf("console = %q", console.String())
	}
}

func TestDoxygen_Failure(t *testing.T) {
	env := toolEnv(t)
	d, _ := quietDoxygen(fakeTool(t, 3, `echo "error: bad config" >&2`))

	result, err := d.Run(context.Background(), config.Project{Name: "Packer"}, "cfg", env)
	if err != nil {
		t.Fatal(err)
	}
	if result.ExitCode != 3 {
		t.Fatalf("ExitCode = %d, want 3", result.ExitCode)
	}
	if !strings.Contains(result.Output, "bad config") {
		t.Fatalf("output = %q, expected stderr captured", result.Output)
	}
}

func TestDoxygen_RunsInDocsDir(t *testing.T) {
	env := toolEnv(t)
	d, _ := quietDoxygen(fakeTool(t, 0, `pwd`))

	result, err := d.Run(context.Background(), config.Project{Name: "p"}, "cfg", env)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.EvalSymlinks(env.DocsDir)
	got, _ := filepath.EvalSymlinks(strings.TrimSpace(result.Output))
	if got != want {
		t.Fatalf("cwd = %q, want %q", got, want)
	}
}

func TestDoxygen_ExportsEnv(t *testing.T) {
	env := toolEnv(t)
	env.ProjectIndex = 0
	env.ProjectCount = 2
	d, _ := quietDoxygen(fakeTool(t, 0, `echo "$DOXRUN_PROJECT/$DOXRUN_RUN_ID/$DOXRUN_PROJECT_COUNT"`))

	result, err := d.Run(context.Background(), config.Project{Name: "Console"}, "cfg", env)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result.Output, "Console/run-1/2") {
		t.Fatalf("output = %q", result.Output)
	}
}

func TestDoxygen_LogFile(t *testing.T) {
	env := toolEnv(t)
	d, _ := quietDoxygen(fakeTool(t, 0, `echo logged-output`))

	if _, err := d.Run(context.Background(), config.Project{Name: "p"}, "cfg", env); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(state.LogPath(env.ArtifactsDir, 0))
	if err != nil {
		t.Fatal(err)
	}
	log := string(data)
	if !strings.Contains(log, "logged-output") {
		t.Fatalf("log = %q", log)
	}
	if !strings.Contains(log, "# run run-1:") || !strings.Contains(log, "# exit code 0") {
		t.Fatalf("log missing header/footer: %q", log)
	}
}

func TestDoxygen_MissingBinary(t *testing.T) {
	env := toolEnv(t)
	d, _ := quietDoxygen(filepath.Join(t.TempDir(), "no-doxygen"))

	if _, err := d.Run(context.Background(), config.Project{Name: "p"}, "cfg", env); err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestDoxygen_Timeout(t *testing.T) {
	env := toolEnv(t)
	d, _ := quietDoxygen(fakeTool(t, 0, `exec sleep 5`))
	d.Timeout = 100 * time.Millisecond

	start := time.Now()
	result, err := d.Run(context.Background(), config.Project{Name: "p"}, "cfg", env)
	if err != nil {
		t.Fatal(err)
	}
	if result.ExitCode == 0 || !result.TimedOut {
		t.Fatalf("expected a timed out non-zero result, got %+v", result)
	}
	if time.Since(start) > 4*time.Second {
		t.Fatal("timeout did not stop the tool")
	}
}

func TestToolError(t *testing.T) {
	var err error = fmt.Errorf("build: %w", &ToolError{Project: "Packer", ExitCode: 1})
	var te *ToolError
	if !errors.As(err, &te) {
		t.Fatal("expected ToolError")
	}
	if te.Project != "Packer" || !strings.Contains(err.Error(), `"Packer" (exit code 1)`) {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildEnv(t *testing.T) {
	env := &Environment{ProjectRoot: "/repo", DocsDir: "/repo/docs", ArtifactsDir: "/repo/.doxrun/artifacts", RunID: "abc", ProjectIndex: 1, ProjectCount: 3}
	vars := BuildEnv(env, config.Project{Name: "Tests"})
	joined := strings.Join(vars, "\n")
	for _, want := range []string{
		"DOXRUN_PROJECT=Tests",
		"DOXRUN_RUN_ID=abc",
		"DOXRUN_DOCS_DIR=/repo/docs",
		"DOXRUN_PROJECT_INDEX=2",
		"DOXRUN_PROJECT_COUNT=3",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %s", want)
		}
	}
}
