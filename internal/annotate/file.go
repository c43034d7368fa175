package annotate

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/jorge-barreto/doxrun/internal/fsutil"
)

type Options struct {
	DryRun bool
	Logger *slog.Logger
}

// Report describes the outcome of annotating one file.
type Report struct {
	Source  string
	Class   string
	Blocks  int
	Diff    string // unified diff, dry run only
	Written bool
}

// File annotates sourcePath using the class described in xmlPath. The source
// is rewritten atomically unless opts.DryRun is set.
func File(xmlPath, sourcePath string, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cls, err := ParseXMLFile(xmlPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed class description", "xml", xmlPath, "class", cls.Name, "methods", len(cls.Methods))

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, err
	}
	before := string(data)

	lines, err := Inject(SplitLines(before), cls)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sourcePath, err)
	}
	after := strings.Join(lines, "")

	report := &Report{Source: sourcePath, Class: cls.Name, Blocks: 1 + len(cls.Methods)}
	if opts.DryRun {
		report.Diff, err = Diff(sourcePath, before, after)
		if err != nil {
			return nil, err
		}
		return report, nil
	}

	if err := fsutil.WriteFileAtomic(sourcePath, []byte(after), fsutil.FileMode(sourcePath, 0644)); err != nil {
		return nil, fmt.Errorf("writing %s: %w", sourcePath, err)
	}
	report.Written = true
	logger.Info("annotated source", "source", sourcePath, "blocks", report.Blocks)
	return report, nil
}

// Diff returns a unified diff between two versions of name.
func Diff(name, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: name,
		ToFile:   name,
		Context:  3,
	})
}
