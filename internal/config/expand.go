package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandVars substitutes variables in template using the vars map,
// falling back to environment variables.
func ExpandVars(template string, vars map[string]string) string {
	return os.Expand(template, func(key string) string {
		if v, ok := vars[key]; ok {
			return v
		}
		return os.Getenv(key)
	})
}

// ResolvePath expands p and makes it absolute relative to base.
func ResolvePath(p string, vars map[string]string, base string) string {
	expanded := ExpandVars(p, vars)
	if expanded == "" || filepath.IsAbs(expanded) {
		return expanded
	}
	return filepath.Join(base, expanded)
}

// ResolveInputs returns the project's input paths, expanded and absolute.
func (c *Config) ResolveInputs(p Project, projectRoot string) []string {
	vars := c.PathVars(projectRoot)
	out := make([]string, 0, len(p.Input))
	for _, in := range p.Input {
		out = append(out, ResolvePath(in, vars, projectRoot))
	}
	return out
}

// ResolveDoxyfile returns the absolute path of a project's pre-existing Doxyfile.
func (c *Config) ResolveDoxyfile(p Project, projectRoot string) string {
	return ResolvePath(p.Doxyfile, c.PathVars(projectRoot), projectRoot)
}

// ResolveTool returns the tool to execute. A bare name is left for PATH
// lookup; anything containing a path separator is resolved against the
// project root, since the tool runs with the docs dir as its cwd.
func (c *Config) ResolveTool(projectRoot string) string {
	expanded := ExpandVars(c.Tool, c.PathVars(projectRoot))
	if !strings.ContainsRune(expanded, '/') && !strings.ContainsRune(expanded, filepath.Separator) {
		return expanded
	}
	return ResolvePath(expanded, nil, projectRoot)
}
