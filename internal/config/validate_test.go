package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// rootWithSources returns a temp project root containing src/ and include/.
func rootWithSources(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, d := range []string{"src", "include"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0755); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func intPtr(n int) *int { return &n }

func minimalConfig(projects ...Project) *Config {
	return &Config{Name: "test", Projects: projects}
}

func srcProject(name string) Project {
	return Project{Name: name, Input: []string{"src"}}
}

func TestValidate_NameRequired(t *testing.T) {
	cfg := &Config{Projects: []Project{srcProject("a")}}
	if err := Validate(cfg, rootWithSources(t)); err == nil || !strings.Contains(err.Error(), "'name' is required") {
		t.Fatalf("expected name required error, got %v", err)
	}
}

func TestValidate_NoProjectsError(t *testing.T) {
	cfg := &Config{Name: "test"}
	if err := Validate(cfg, t.TempDir()); err == nil || !strings.Contains(err.Error(), "at least one project") {
		t.Fatalf("expected projects error, got %v", err)
	}
}

func TestValidate_Defaults(t *testing.T) {
	cfg := minimalConfig(srcProject("a"))
	if err := Validate(cfg, rootWithSources(t)); err != nil {
		t.Fatal(err)
	}
	if cfg.Tool != "doxygen" {
		t.Fatalf("Tool = %q, want doxygen", cfg.Tool)
	}
	if cfg.DocsDir != "Documentation" {
		t.Fatalf("DocsDir = %q, want Documentation", cfg.DocsDir)
	}
	if cfg.TimeoutMinutes() != 10 {
		t.Fatalf("Timeout = %d, want 10", cfg.TimeoutMinutes())
	}
	p := cfg.Projects[0]
	if p.Output != "." {
		t.Fatalf("Output = %q, want .", p.Output)
	}
	if p.FilePatterns != "*.h" {
		t.Fatalf("FilePatterns = %q, want *.h", p.FilePatterns)
	}
}

func TestValidate_ExplicitValuesKept(t *testing.T) {
	cfg := minimalConfig(Project{Name: "a", Input: []string{"src"}, Output: "out", FilePatterns: "*.hpp *.h"})
	cfg.Tool = "/opt/doxygen/bin/doxygen"
	if err := Validate(cfg, rootWithSources(t)); err != nil {
		t.Fatal(err)
	}
	if cfg.Tool != "/opt/doxygen/bin/doxygen" {
		t.Fatalf("Tool = %q", cfg.Tool)
	}
	if cfg.Projects[0].Output != "out" || cfg.Projects[0].FilePatterns != "*.hpp *.h" {
		t.Fatalf("project = %+v", cfg.Projects[0])
	}
}

func TestValidate_RelativeToolResolvedAgainstRoot(t *testing.T) {
	root := rootWithSources(t)
	cfg := minimalConfig(srcProject("a"))
	cfg.Tool = "./bin/doxygen"
	if err := Validate(cfg, root); err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(root, "bin", "doxygen"); cfg.Tool != want {
		t.Fatalf("Tool = %q, want %q", cfg.Tool, want)
	}
}

func TestValidate_BareToolLeftForPath(t *testing.T) {
	cfg := minimalConfig(srcProject("a"))
	cfg.Tool = "doxygen-1.9"
	if err := Validate(cfg, rootWithSources(t)); err != nil {
		t.Fatal(err)
	}
	if cfg.Tool != "doxygen-1.9" {
		t.Fatalf("Tool = %q", cfg.Tool)
	}
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := minimalConfig(srcProject("a"))
	cfg.Timeout = intPtr(-1)
	if err := Validate(cfg, rootWithSources(t)); err == nil || !strings.Contains(err.Error(), "timeout must be >= 0") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_ZeroTimeoutDisables(t *testing.T) {
	cfg := minimalConfig(srcProject("a"))
	cfg.Timeout = intPtr(0)
	if err := Validate(cfg, rootWithSources(t)); err != nil {
		t.Fatal(err)
	}
	if cfg.TimeoutMinutes() != 0 {
		t.Fatalf("Timeout = %d, want 0 (disabled)", cfg.TimeoutMinutes())
	}
}

func TestValidate_ProjectNameRequired(t *testing.T) {
	cfg := minimalConfig(Project{Input: []string{"src"}})
	if err := Validate(cfg, rootWithSources(t)); err == nil || !strings.Contains(err.Error(), "project 1: 'name' is required") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_DuplicateProjectNames(t *testing.T) {
	cfg := minimalConfig(srcProject("dup"), srcProject("dup"))
	if err := Validate(cfg, rootWithSources(t)); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_InputRequired(t *testing.T) {
	cfg := minimalConfig(Project{Name: "a"})
	if err := Validate(cfg, rootWithSources(t)); err == nil || !strings.Contains(err.Error(), "'input' is required") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_EmptyInputEntry(t *testing.T) {
	cfg := minimalConfig(Project{Name: "a", Input: []string{"src", "  "}})
	if err := Validate(cfg, rootWithSources(t)); err == nil || !strings.Contains(err.Error(), "must be non-empty") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_NoReadableInput(t *testing.T) {
	cfg := minimalConfig(Project{Name: "a", Input: []string{"missing", "also-missing"}})
	if err := Validate(cfg, rootWithSources(t)); err == nil || !strings.Contains(err.Error(), "readable") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_OneReadableInputIsEnough(t *testing.T) {
	cfg := minimalConfig(Project{Name: "a", Input: []string{"missing", "include"}})
	if err := Validate(cfg, rootWithSources(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InputExpandsProjectRoot(t *testing.T) {
	cfg := minimalConfig(Project{Name: "a", Input: []string{"$PROJECT_ROOT/src"}})
	if err := Validate(cfg, rootWithSources(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_DoxyfileExists(t *testing.T) {
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, "Doxyfile_Packer"), []byte("PROJECT_NAME = Packer\n"), 0644)

	cfg := minimalConfig(Project{Name: "packer", Doxyfile: "Doxyfile_Packer"})
	if err := Validate(cfg, root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Projects[0].FilePatterns != "" {
		t.Fatalf("doxyfile project should not get generated defaults, got %+v", cfg.Projects[0])
	}
}

func TestValidate_DoxyfileMissing(t *testing.T) {
	cfg := minimalConfig(Project{Name: "packer", Doxyfile: "Doxyfile_Packer"})
	if err := Validate(cfg, t.TempDir()); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_DoxyfileExclusive(t *testing.T) {
	root := rootWithSources(t)
	os.WriteFile(filepath.Join(root, "Doxyfile"), []byte(""), 0644)

	cfg := minimalConfig(Project{Name: "a", Doxyfile: "Doxyfile", Input: []string{"src"}})
	if err := Validate(cfg, root); err == nil || !strings.Contains(err.Error(), "cannot be combined") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_SettingKeyFormat(t *testing.T) {
	p := srcProject("a")
	p.Settings = OrderedSettings{{Key: "recursive", Value: "YES"}}
	if err := Validate(minimalConfig(p), rootWithSources(t)); err == nil || !strings.Contains(err.Error(), "not a valid Doxyfile key") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_SettingOverridesCoreKey(t *testing.T) {
	p := srcProject("a")
	p.Settings = OrderedSettings{{Key: "INPUT", Value: "elsewhere"}}
	if err := Validate(minimalConfig(p), rootWithSources(t)); err == nil || !strings.Contains(err.Error(), "overrides a core key") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_DuplicateSetting(t *testing.T) {
	p := srcProject("a")
	p.Settings = OrderedSettings{{Key: "RECURSIVE", Value: "YES"}, {Key: "RECURSIVE", Value: "NO"}}
	if err := Validate(minimalConfig(p), rootWithSources(t)); err == nil || !strings.Contains(err.Error(), "duplicate setting") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_AnnotationFieldsRequired(t *testing.T) {
	cfg := minimalConfig(srcProject("a"))
	cfg.Annotations = []Annotation{{Source: "Color.h"}}
	if err := Validate(cfg, rootWithSources(t)); err == nil || !strings.Contains(err.Error(), "'xml' is required") {
		t.Fatalf("got %v", err)
	}

	cfg = minimalConfig(srcProject("a"))
	cfg.Annotations = []Annotation{{XML: "Color.xml"}}
	if err := Validate(cfg, rootWithSources(t)); err == nil || !strings.Contains(err.Error(), "'source' is required") {
		t.Fatalf("got %v", err)
	}
}

func TestProjectIndex(t *testing.T) {
	cfg := minimalConfig(srcProject("a"), srcProject("b"))
	if got := cfg.ProjectIndex("b"); got != 1 {
		t.Fatalf("ProjectIndex(b) = %d, want 1", got)
	}
	if got := cfg.ProjectIndex("zzz"); got != -1 {
		t.Fatalf("ProjectIndex(zzz) = %d, want -1", got)
	}
}
