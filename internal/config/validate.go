package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var settingKeyRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// coreKeys are always written by doxrun and cannot be overridden via settings.
var coreKeys = map[string]bool{
	"PROJECT_NAME":     true,
	"OUTPUT_DIRECTORY": true,
	"INPUT":            true,
	"FILE_PATTERNS":    true,
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config, projectRoot string) error {
	if cfg.Name == "" {
		return fmt.Errorf("config: 'name' is required")
	}
	if len(cfg.Projects) == 0 {
		return fmt.Errorf("config: at least one project is required")
	}
	if cfg.Tool == "" {
		cfg.Tool = "doxygen"
	}
	if cfg.DocsDir == "" {
		cfg.DocsDir = "Documentation"
	}
	cfg.Tool = cfg.ResolveTool(projectRoot)
	if cfg.Timeout == nil {
		minutes := DefaultTimeout
		cfg.Timeout = &minutes
	}
	if *cfg.Timeout < 0 {
		return fmt.Errorf("config: timeout must be >= 0")
	}

	seen := make(map[string]bool)
	for i := range cfg.Projects {
		p := &cfg.Projects[i]

		if p.Name == "" {
			return fmt.Errorf("config: project %d: 'name' is required", i+1)
		}
		if seen[p.Name] {
			return fmt.Errorf("config: duplicate project name %q", p.Name)
		}
		seen[p.Name] = true

		if !p.Generated() {
			if len(p.Input) > 0 || p.Output != "" || p.FilePatterns != "" || len(p.Settings) > 0 {
				return fmt.Errorf("config: project %q: 'doxyfile' cannot be combined with input, output, file-patterns or settings", p.Name)
			}
			path := cfg.ResolveDoxyfile(*p, projectRoot)
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("config: project %q: doxyfile %q not found", p.Name, path)
			}
			continue
		}

		if len(p.Input) == 0 {
			return fmt.Errorf("config: project %q: 'input' is required", p.Name)
		}
		for _, in := range p.Input {
			if strings.TrimSpace(in) == "" {
				return fmt.Errorf("config: project %q: 'input' entries must be non-empty", p.Name)
			}
		}
		if !anyReadable(cfg.ResolveInputs(*p, projectRoot)) {
			return fmt.Errorf("config: project %q: none of the input paths %v is readable", p.Name, p.Input)
		}
		if p.Output == "" {
			p.Output = "."
		}
		if p.FilePatterns == "" {
			p.FilePatterns = "*.h"
		}

		keys := make(map[string]bool)
		for _, s := range p.Settings {
			if !settingKeyRe.MatchString(s.Key) {
				return fmt.Errorf("config: project %q: setting %q is not a valid Doxyfile key (must match [A-Z][A-Z0-9_]*)", p.Name, s.Key)
			}
			if coreKeys[s.Key] {
				return fmt.Errorf("config: project %q: setting %q overrides a core key", p.Name, s.Key)
			}
			if keys[s.Key] {
				return fmt.Errorf("config: project %q: duplicate setting %q", p.Name, s.Key)
			}
			keys[s.Key] = true
		}
	}

	for i, a := range cfg.Annotations {
		if a.XML == "" {
			return fmt.Errorf("config: annotation %d: 'xml' is required", i+1)
		}
		if a.Source == "" {
			return fmt.Errorf("config: annotation %d: 'source' is required", i+1)
		}
	}

	return nil
}

func anyReadable(paths []string) bool {
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			continue
		}
		f.Close()
		return true
	}
	return false
}
