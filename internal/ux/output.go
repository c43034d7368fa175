package ux

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/jorge-barreto/doxrun/internal/config"
)

// Out receives all user-facing progress output.
var Out io.Writer = color.Output

var (
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

// ErrorLabel is the red "error:" prefix used by main.
func ErrorLabel() string {
	return red("error:")
}

func timestamp() string {
	return dim("[" + time.Now().Format("15:04:05") + "]")
}

// ProjectHeader prints a timestamped project header.
func ProjectHeader(index, total int, p config.Project) {
	rule := cyan("══════════════════════════════════════")
	fmt.Fprintf(Out, "\n%s %s\n", timestamp(), rule)
	source := "generated config"
	if !p.Generated() {
		source = p.Doxyfile
	}
	fmt.Fprintf(Out, "%s  %s\n", timestamp(),
		bold(fmt.Sprintf("Generating documentation for %s... (%d/%d, %s)", p.Name, index+1, total, source)))
	fmt.Fprintf(Out, "%s %s\n", timestamp(), rule)
}

// ProjectComplete prints a project completion message.
func ProjectComplete(name string, duration time.Duration) {
	m := int(duration.Minutes())
	s := int(duration.Seconds()) % 60
	fmt.Fprintf(Out, "%s  %s\n", timestamp(),
		green(fmt.Sprintf("✓ Documentation generated for %s. (%dm %02ds)", name, m, s)))
}

// ProjectFail prints a project failure message.
func ProjectFail(name, errMsg string) {
	fmt.Fprintf(Out, "%s  %s\n", timestamp(),
		red(fmt.Sprintf("✗ Failed to generate documentation for %s: %s", name, errMsg)))
}

// ResumeHint prints a resume command hint.
func ResumeHint() {
	fmt.Fprintf(Out, "\n%s doxrun build --resume\n", yellow("Resume:"))
}

// Success prints a final success message.
func Success(total int) {
	fmt.Fprintf(Out, "\n%s  %s\n\n", timestamp(),
		bold(green(fmt.Sprintf("══ Documentation generation complete (%d projects) ══", total))))
}

// Annotated prints the result of one comment-injection job.
func Annotated(path string, blocks int) {
	fmt.Fprintf(Out, "%s Doxygen comments added to %s (%d blocks)\n", green("✓"), path, blocks)
}

// Diff prints a unified diff produced by a dry run.
func Diff(diff string) {
	if diff == "" {
		fmt.Fprintf(Out, "%s\n", dim("(no changes)"))
		return
	}
	fmt.Fprint(Out, diff)
}

// Section prints a bold section banner.
func Section(title string) {
	fmt.Fprintf(Out, "\n%s\n\n", bold(cyan("══ "+title+" ══")))
}

// Check prints one pass/fail line of an environment check.
func Check(ok bool, name, detail string) {
	mark := green("✓")
	if !ok {
		mark = red("✗")
	}
	if detail == "" {
		fmt.Fprintf(Out, "  %s %s\n", mark, name)
		return
	}
	fmt.Fprintf(Out, "  %s %s %s\n", mark, name, dim("("+detail+")"))
}

// Initialized prints the banner shown after `doxrun init`.
func Initialized(dir string) {
	fmt.Fprintf(Out, "\n%s\n\n", bold(green("✓ Initialized "+dir+"/ directory")))
}

// Path formats a file path for emphasis in listings.
func Path(p string) string {
	return cyan(p)
}
