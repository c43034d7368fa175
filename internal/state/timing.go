package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jorge-barreto/doxrun/internal/fsutil"
)

// TimingEntry records one tool invocation for a project. ExitCode is nil
// while the tool is running or when it never finished (start failure,
// interruption).
type TimingEntry struct {
	Project  string    `json:"project"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end,omitempty"`
	Duration string    `json:"duration,omitempty"`
	ExitCode *int      `json:"exit_code,omitempty"`
	TimedOut bool      `json:"timed_out,omitempty"`
}

// Succeeded reports whether the tool finished with exit code 0.
func (e TimingEntry) Succeeded() bool {
	return e.ExitCode != nil && *e.ExitCode == 0 && !e.TimedOut
}

// Outcome describes how the invocation ended, or "" if it did not finish.
func (e TimingEntry) Outcome() string {
	switch {
	case e.TimedOut:
		return "timed out"
	case e.ExitCode == nil:
		return ""
	case *e.ExitCode == 0:
		return "ok"
	default:
		return fmt.Sprintf("exit code %d", *e.ExitCode)
	}
}

type Timing struct {
	mu      sync.Mutex
	Entries []TimingEntry `json:"entries"`
}

func timingPath(artifactsDir string) string {
	return filepath.Join(artifactsDir, "timing.json")
}

// LoadTiming reads timing data from the artifacts directory.
func LoadTiming(artifactsDir string) (*Timing, error) {
	path := timingPath(artifactsDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Timing{}, nil
		}
		return nil, err
	}
	var t Timing
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Timing) save(artifactsDir string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(timingPath(artifactsDir), data, 0644)
}

// AddStart appends a new timing entry for the given project.
func (t *Timing) AddStart(project string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Entries = append(t.Entries, TimingEntry{
		Project: project,
		Start:   time.Now(),
	})
}

// AddEnd closes the most recent open entry of project with the tool's
// exit code.
func (t *Timing) AddEnd(project string, exitCode int, timedOut bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.Entries) - 1; i >= 0; i-- {
		if t.Entries[i].Project == project && t.Entries[i].End.IsZero() {
			t.Entries[i].End = time.Now()
			d := t.Entries[i].End.Sub(t.Entries[i].Start)
			t.Entries[i].Duration = formatDuration(d)
			t.Entries[i].ExitCode = &exitCode
			t.Entries[i].TimedOut = timedOut
			break
		}
	}
}

// Last returns the duration of the most recent successful run of project, or "".
func (t *Timing) Last(project string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.Entries) - 1; i >= 0; i-- {
		if t.Entries[i].Project == project && t.Entries[i].Succeeded() {
			return t.Entries[i].Duration
		}
	}
	return ""
}

// Flush writes the in-memory timing data to disk.
func (t *Timing) Flush(artifactsDir string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.save(artifactsDir)
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %02ds", m, s)
}
