// Package doxyfile renders and reads the plain KEY = VALUE configuration
// files consumed by Doxygen.
package doxyfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jorge-barreto/doxrun/internal/config"
)

// Artifact holds everything written into a generated Doxyfile.
type Artifact struct {
	Name         string
	Output       string
	Inputs       []string
	FilePatterns string
	Settings     config.OrderedSettings
}

// Render returns the Doxyfile text for a. The four core keys always come
// first, followed by any extra settings in order.
func Render(a Artifact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PROJECT_NAME = %s\n", a.Name)
	fmt.Fprintf(&b, "OUTPUT_DIRECTORY = %s\n", a.Output)
	fmt.Fprintf(&b, "INPUT = %s\n", config.JoinList(a.Inputs))
	fmt.Fprintf(&b, "FILE_PATTERNS = %s\n", a.FilePatterns)
	for _, s := range a.Settings {
		fmt.Fprintf(&b, "%s = %s\n", s.Key, s.Value)
	}
	return b.String()
}

// WriteTemp writes content to a new temporary file in dir (os.TempDir when
// empty). The returned cleanup removes the file and is safe to call twice.
func WriteTemp(dir, content string) (string, func(), error) {
	f, err := os.CreateTemp(dir, "doxrun-*.doxyfile")
	if err != nil {
		return "", nil, fmt.Errorf("creating temporary doxyfile: %w", err)
	}
	path := f.Name()
	cleanup := func() { os.Remove(path) }
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temporary doxyfile: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temporary doxyfile: %w", err)
	}
	return path, cleanup, nil
}

// Parse reads KEY = VALUE lines. Blank lines and # comments are skipped;
// KEY += VALUE appends to an earlier value with a space.
func Parse(r io.Reader) (config.OrderedSettings, error) {
	var out config.OrderedSettings
	index := make(map[string]int)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		appendMode := false
		key, value, ok := strings.Cut(line, "+=")
		if ok && !strings.Contains(key, "=") {
			appendMode = true
		} else {
			key, value, ok = strings.Cut(line, "=")
			if !ok {
				return nil, fmt.Errorf("doxyfile line %d: expected KEY = VALUE, got %q", lineNo, line)
			}
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			return nil, fmt.Errorf("doxyfile line %d: empty key", lineNo)
		}
		if i, seen := index[key]; seen {
			if appendMode && out[i].Value != "" {
				out[i].Value += " " + value
			} else {
				out[i].Value = value
			}
			continue
		}
		index[key] = len(out)
		out = append(out, config.Setting{Key: key, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
