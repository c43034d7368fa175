package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jorge-barreto/doxrun/internal/fsutil"
)

const (
	StatusRunning     = "running"
	StatusCompleted   = "completed"
	StatusFailed      = "failed"
	StatusInterrupted = "interrupted"
)

type State struct {
	RunID        string    `json:"run_id"`
	ProjectIndex int       `json:"project_index"`
	Status       string    `json:"status"` // running, completed, failed, interrupted
	StartedAt    time.Time `json:"started_at"`
}

// New returns a fresh running state with a new run ID.
func New() *State {
	return &State{
		RunID:     uuid.NewString(),
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
}

func statePath(artifactsDir string) string {
	return filepath.Join(artifactsDir, "state.json")
}

// Load reads the state from the artifacts directory. Returns a new state if not found.
func Load(artifactsDir string) (*State, error) {
	path := statePath(artifactsDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, err
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Exists reports whether a run has been recorded in artifactsDir.
func Exists(artifactsDir string) bool {
	_, err := os.Stat(statePath(artifactsDir))
	return err == nil
}

// Save writes the state to the artifacts directory.
func (s *State) Save(artifactsDir string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(statePath(artifactsDir), data, 0644)
}

// Resumable reports whether a previous run stopped before finishing.
func (s *State) Resumable() bool {
	return s.Status == StatusFailed || s.Status == StatusInterrupted
}

// Advance increments the project index.
func (s *State) Advance() {
	s.ProjectIndex++
}

// SetProject sets the project index for --from and --resume.
func (s *State) SetProject(idx int) {
	s.ProjectIndex = idx
}
