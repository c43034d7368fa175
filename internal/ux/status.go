package ux

import (
	"fmt"
	"os"

	"github.com/jorge-barreto/doxrun/internal/config"
	"github.com/jorge-barreto/doxrun/internal/state"
)

// RenderStatus prints the state of the last build run.
func RenderStatus(cfg *config.Config, st *state.State, artifactsDir string) {
	timing, _ := state.LoadTiming(artifactsDir)

	fmt.Fprintf(Out, "%s  %s\n", bold("Config:"), cfg.Name)
	if st.RunID != "" {
		fmt.Fprintf(Out, "%s     %s\n", bold("Run:"), st.RunID)
	}
	if st.ProjectIndex >= len(cfg.Projects) {
		fmt.Fprintf(Out, "%s   %s\n", bold("State:"), bold(green("completed")))
	} else {
		p := cfg.Projects[st.ProjectIndex]
		fmt.Fprintf(Out, "%s   %d/%d (%s) — %s\n",
			bold("State:"), st.ProjectIndex+1, len(cfg.Projects), p.Name, st.Status)
	}

	if st.ProjectIndex > 0 {
		fmt.Fprintf(Out, "\n%s\n", bold("Generated:"))
		for i := 0; i < st.ProjectIndex && i < len(cfg.Projects); i++ {
			p := cfg.Projects[i]
			fmt.Fprintf(Out, "  %s  %-20s %s  %s\n",
				dim(i+1), p.Name, green("done"), formatDuration(timing, p.Name))
		}
	}

	if st.ProjectIndex < len(cfg.Projects) {
		fmt.Fprintf(Out, "\n%s\n", bold("Remaining:"))
		for i := st.ProjectIndex; i < len(cfg.Projects); i++ {
			p := cfg.Projects[i]
			marker := "  "
			if i == st.ProjectIndex {
				marker = yellow("→") + " "
			}
			fmt.Fprintf(Out, "  %s%s  %-20s\n", marker, dim(i+1), p.Name)
		}
	}

	fmt.Fprintf(Out, "\n%s\n", bold("Logs:"))
	printed := false
	for i := range cfg.Projects {
		path := state.LogPath(artifactsDir, i)
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(Out, "  %s\n", path)
			printed = true
		}
	}
	if !printed {
		fmt.Fprintf(Out, "  %s\n", dim("(none)"))
	}
	fmt.Fprintln(Out)
}

func formatDuration(timing *state.Timing, project string) string {
	if timing == nil {
		return ""
	}
	if d := timing.Last(project); d != "" {
		return fmt.Sprintf("(%s)", d)
	}
	return ""
}
