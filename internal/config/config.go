package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Project describes one documentation target. Either Doxyfile is set, or the
// generated-config fields (Input, Output, FilePatterns, Settings) are used.
type Project struct {
	Name         string          `yaml:"name" toml:"name"`
	Input        []string        `yaml:"input" toml:"input"`
	Output       string          `yaml:"output" toml:"output"`
	FilePatterns string          `yaml:"file-patterns" toml:"file-patterns"`
	Doxyfile     string          `yaml:"doxyfile" toml:"doxyfile"`
	Settings     OrderedSettings `yaml:"settings" toml:"settings"`
}

// Generated reports whether the project's config artifact is rendered by doxrun.
func (p Project) Generated() bool {
	return p.Doxyfile == ""
}

// Annotation is one comment-injection job.
type Annotation struct {
	XML    string `yaml:"xml" toml:"xml"`
	Source string `yaml:"source" toml:"source"`
}

type Config struct {
	Name        string       `yaml:"name" toml:"name"`
	Tool        string       `yaml:"tool" toml:"tool"`
	DocsDir     string       `yaml:"docs-dir" toml:"docs-dir"`
	Timeout     *int         `yaml:"timeout" toml:"timeout"` // minutes; nil means DefaultTimeout, 0 disables
	Projects    []Project    `yaml:"projects" toml:"projects"`
	Annotations []Annotation `yaml:"annotations" toml:"annotations"`
}

// Load reads a YAML or TOML config file and returns a validated Config.
// Files ending in .toml are decoded as TOML; everything else as YAML.
func Load(path, projectRoot string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, err
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}
	if err := Validate(&cfg, projectRoot); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ProjectIndex returns the index of the named project, or -1 if not found.
func (c *Config) ProjectIndex(name string) int {
	for i, p := range c.Projects {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// DefaultTimeout is the per-project timeout in minutes when none is configured.
const DefaultTimeout = 10

// TimeoutMinutes returns the configured per-project timeout; 0 means none.
func (c *Config) TimeoutMinutes() int {
	if c.Timeout == nil {
		return DefaultTimeout
	}
	return *c.Timeout
}

// DocsPath returns the absolute docs directory for the given project root.
func (c *Config) DocsPath(projectRoot string) string {
	if filepath.IsAbs(c.DocsDir) {
		return c.DocsDir
	}
	return filepath.Join(projectRoot, c.DocsDir)
}

// PathVars returns the variables available when expanding paths in the config.
func (c *Config) PathVars(projectRoot string) map[string]string {
	return map[string]string{
		"PROJECT_ROOT": projectRoot,
		"DOCS_DIR":     c.DocsPath(projectRoot),
	}
}
