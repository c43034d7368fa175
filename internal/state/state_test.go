package state

import (
	"testing"
	"time"
)

func TestLoad_NoExistingState(t *testing.T) {
	dir := t.TempDir()
	st, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if st.ProjectIndex != 0 {
		t.Fatalf("ProjectIndex = %d, want 0", st.ProjectIndex)
	}
	if st.Status != "running" {
		t.Fatalf("Status = %q, want running", st.Status)
	}
	if st.RunID == "" {
		t.Fatal("expected a run ID")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(dir) {
		t.Fatal("Exists should be false before any save")
	}
	if err := New().Save(dir); err != nil {
		t.Fatal(err)
	}
	if !Exists(dir) {
		t.Fatal("Exists should be true after save")
	}
}

func TestNew_UniqueRunIDs(t *testing.T) {
	if New().RunID == New().RunID {
		t.Fatal("run IDs should differ")
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := &State{
		RunID:        "3f1c",
		ProjectIndex: 2,
		Status:       "failed",
		StartedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if err := original.Save(dir); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.ProjectIndex != 2 {
		t.Fatalf("ProjectIndex = %d, want 2", loaded.ProjectIndex)
	}
	if loaded.RunID != "3f1c" {
		t.Fatalf("RunID = %q", loaded.RunID)
	}
	if loaded.Status != "failed" {
		t.Fatalf("Status = %q", loaded.Status)
	}
	if !loaded.StartedAt.Equal(original.StartedAt) {
		t.Fatalf("StartedAt = %v", loaded.StartedAt)
	}
}

func TestResumable(t *testing.T) {
	for status, want := range map[string]bool{
		StatusRunning:     false,
		StatusCompleted:   false,
		StatusFailed:      true,
		StatusInterrupted: true,
	} {
		s := &State{Status: status}
		if s.Resumable() != want {
			t.Errorf("Resumable(%s) = %v, want %v", status, !want, want)
		}
	}
}

func TestAdvance(t *testing.T) {
	s := &State{ProjectIndex: 2}
	s.Advance()
	if s.ProjectIndex != 3 {
		t.Fatalf("ProjectIndex = %d, want 3", s.ProjectIndex)
	}
}

func TestSetProject(t *testing.T) {
	s := &State{ProjectIndex: 5}
	s.SetProject(1)
	if s.ProjectIndex != 1 {
		t.Fatalf("ProjectIndex = %d, want 1", s.ProjectIndex)
	}
}

func TestTiming_StartEndLast(t *testing.T) {
	dir := t.TempDir()
	tm := &Timing{}
	tm.AddStart("Packer")
	tm.AddEnd("Packer", 0, false)
	if got := tm.Last("Packer"); got != "0m 00s" {
		t.Fatalf("Last = %q", got)
	}
	if got := tm.Last("Console"); got != "" {
		t.Fatalf("Last(Console) = %q, want empty", got)
	}
	if err := tm.Flush(dir); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadTiming(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Entries) != 1 || loaded.Entries[0].Project != "Packer" {
		t.Fatalf("entries = %+v", loaded.Entries)
	}
	if !loaded.Entries[0].Succeeded() || loaded.Entries[0].Outcome() != "ok" {
		t.Fatalf("entry = %+v", loaded.Entries[0])
	}
}

func TestTiming_FailedRunRecordsExitCode(t *testing.T) {
	tm := &Timing{}
	tm.AddStart("Packer")
	tm.AddEnd("Packer", 0, false)
	tm.AddStart("Packer")
	tm.AddEnd("Packer", 3, false)
	tm.AddStart("Console")
	tm.AddEnd("Console", -1, true)
	tm.AddStart("Tests")

	if got := tm.Entries[1].Outcome(); got != "exit code 3" {
		t.Fatalf("Outcome = %q", got)
	}
	if got := tm.Entries[2].Outcome(); got != "timed out" {
		t.Fatalf("Outcome = %q", got)
	}
	if got := tm.Entries[3].Outcome(); got != "" {
		t.Fatalf("open entry Outcome = %q, want empty", got)
	}
	if tm.Last("Packer") == "" {
		t.Fatal("Last should fall back to the earlier successful run")
	}
	if got := tm.Last("Console"); got != "" {
		t.Fatalf("Last(Console) = %q, want empty for a timed out run", got)
	}
}
