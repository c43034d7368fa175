// Package discover scans a source tree for documentation targets: existing
// Doxyfiles and directories holding C/C++ headers.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// skipDirs are directories never descended into.
var skipDirs = map[string]bool{
	".git":          true,
	".svn":          true,
	"node_modules":  true,
	"vendor":        true,
	".venv":         true,
	"__pycache__":   true,
	".doxrun":       true,
	"build":         true,
	"Documentation": true,
}

var headerExts = map[string]bool{
	".h":   true,
	".hh":  true,
	".hpp": true,
	".hxx": true,
}

// maxDepth bounds how deep Scan looks below the root.
const maxDepth = 6

// Candidate is a proposed project.
type Candidate struct {
	Name     string
	Input    string // slash-separated, relative to the root; "." for the root itself
	Doxyfile string // set for Doxyfile candidates, relative to the root
	Headers  int
}

// Result holds everything found under a root.
type Result struct {
	Doxyfiles []Candidate
	Sources   []Candidate
}

// Projects returns the candidates init should write: existing Doxyfiles
// when any were found, else one project per header group.
func (r *Result) Projects() []Candidate {
	if len(r.Doxyfiles) > 0 {
		return r.Doxyfiles
	}
	return r.Sources
}

// Scan walks root and collects Doxyfiles and header directories.
func Scan(root string) (*Result, error) {
	headerDirs := make(map[string]int)
	var doxyfiles []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		depth := strings.Count(rel, "/") + 1
		if rel == "." {
			depth = 0
		}

		if d.IsDir() {
			if path != root && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			if depth >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, "Doxyfile") && depth <= 2 {
			doxyfiles = append(doxyfiles, rel)
		}
		if headerExts[strings.ToLower(filepath.Ext(name))] {
			headerDirs[pathDir(rel)]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Doxyfiles inside skipped dirs such as Documentation/ are probed directly.
	for _, dir := range []string{"Documentation", "docs", "doc"} {
		matches, _ := filepath.Glob(filepath.Join(root, dir, "Doxyfile*"))
		for _, m := range matches {
			if rel, err := filepath.Rel(root, m); err == nil {
				doxyfiles = append(doxyfiles, filepath.ToSlash(rel))
			}
		}
	}

	res := &Result{
		Doxyfiles: doxyfileCandidates(doxyfiles),
		Sources:   groupHeaders(headerDirs, filepath.Base(root)),
	}
	return res, nil
}

func pathDir(rel string) string {
	i := strings.LastIndex(rel, "/")
	if i < 0 {
		return "."
	}
	return rel[:i]
}

func doxyfileCandidates(paths []string) []Candidate {
	sort.Strings(paths)
	seen := make(map[string]bool)
	var out []Candidate
	for i, p := range paths {
		if i > 0 && paths[i-1] == p {
			continue
		}
		base := p[strings.LastIndex(p, "/")+1:]
		if strings.HasSuffix(base, ".bak") || strings.HasSuffix(base, "~") {
			continue
		}
		name := strings.TrimLeft(strings.TrimPrefix(base, "Doxyfile"), "_-.")
		if name == "" {
			name = strings.ReplaceAll(pathDir(p), "/", "-")
		}
		name = unique(name, seen)
		out = append(out, Candidate{Name: name, Doxyfile: p})
	}
	return out
}

// groupHeaders turns directories holding headers into projects. Headers are
// grouped under their top-level directory; a top-level directory with no
// headers of its own that fans out into several header subtrees becomes one
// project per subtree.
func groupHeaders(dirs map[string]int, rootName string) []Candidate {
	top := make(map[string][]string)
	for dir := range dirs {
		top[firstN(dir, 1)] = append(top[firstN(dir, 1)], dir)
	}

	groups := make(map[string]int)
	for key, members := range top {
		if key == "." || dirs[key] > 0 || !fansOut(members) {
			for _, m := range members {
				groups[key] += dirs[m]
			}
			continue
		}
		for _, m := range members {
			groups[firstN(m, 2)] += dirs[m]
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seen := make(map[string]bool)
	out := make([]Candidate, 0, len(keys))
	for _, k := range keys {
		name := k[strings.LastIndex(k, "/")+1:]
		if k == "." {
			name = rootName
		}
		if seen[name] {
			name = strings.ReplaceAll(k, "/", "-")
		}
		name = unique(name, seen)
		out = append(out, Candidate{Name: name, Input: k, Headers: groups[k]})
	}
	return out
}

func fansOut(members []string) bool {
	second := make(map[string]bool)
	for _, m := range members {
		second[firstN(m, 2)] = true
	}
	return len(second) > 1
}

// firstN returns the first n slash-separated components of p.
func firstN(p string, n int) string {
	parts := strings.SplitN(p, "/", n+1)
	if len(parts) > n {
		parts = parts[:n]
	}
	return strings.Join(parts, "/")
}

func unique(name string, seen map[string]bool) string {
	candidate := name
	for i := 2; seen[candidate]; i++ {
		candidate = fmt.Sprintf("%s-%d", name, i)
	}
	seen[candidate] = true
	return candidate
}

// Render formats the result as a short listing for the terminal.
func (r *Result) Render() string {
	var buf strings.Builder
	for _, c := range r.Doxyfiles {
		buf.WriteString(fmt.Sprintf("  %-20s %s\n", c.Name, c.Doxyfile))
	}
	if len(r.Doxyfiles) > 0 {
		return buf.String()
	}
	for _, c := range r.Sources {
		buf.WriteString(fmt.Sprintf("  %-20s %s (%d headers)\n", c.Name, c.Input, c.Headers))
	}
	if buf.Len() == 0 {
		return "  (no headers found)\n"
	}
	return buf.String()
}
