// Package output provides adapters for writing application output.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MyCarrier-DevOps/git-rollback/internal/domain"
)

// separatorWidth is the width of the horizontal rule between sections.
const separatorWidth = 80

// ExecuteHint is printed after a dry run.
const ExecuteHint = "git-rollback --execute"

type styles struct {
	bold   lipgloss.Style
	red    lipgloss.Style
	green  lipgloss.Style
	yellow lipgloss.Style
	blue   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		bold:   r.NewStyle().Bold(true),
		red:    r.NewStyle().Foreground(lipgloss.Color("1")),
		green:  r.NewStyle().Foreground(lipgloss.Color("2")),
		yellow: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		blue:   r.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

// Writer renders rollback and screenshot progress to a terminal.
// Colors are only emitted when the destination is a color-capable terminal.
// Writes are best-effort: there is no recovery action if stdout goes away.
type Writer struct {
	out io.Writer
	st  styles
}

// NewWriter creates a new Writer that writes to stdout.
func NewWriter() *Writer {
	return NewWriterWithOutput(os.Stdout)
}

// NewWriterWithOutput creates a new Writer with a custom output destination.
// This is useful for testing.
func NewWriterWithOutput(out io.Writer) *Writer {
	return &Writer{
		out: out,
		st:  newStyles(lipgloss.NewRenderer(out)),
	}
}

// Header prints the banner with the current branch and last commit.
func (w *Writer) Header(info *domain.RepoInfo) {
	w.separator()
	w.line(w.st.bold.Render("🔄 Git Complete Rollback Tool"))
	w.separator()
	w.blank()
	w.line(w.st.blue.Render("Current branch: ") + w.st.bold.Render(info.Branch))
	w.line(w.st.blue.Render("Last commit: ") + w.st.bold.Render(lastCommit(info.LastCommit)))
	w.blank()
}

// Status prints the classified paths. Modified and staged lists are truncated.
func (w *Writer) Status(status *domain.RepositoryStatus) {
	w.line(w.st.yellow.Render("📊 Current Status:"))
	w.blank()

	if len(status.Modified) > 0 {
		w.line(w.st.yellow.Render(fmt.Sprintf("  • %d modified tracked file(s)", len(status.Modified))))
		w.pathList(status.Modified)
	}
	if len(status.Staged) > 0 {
		w.line(w.st.yellow.Render(fmt.Sprintf("  • %d staged file(s)", len(status.Staged))))
		w.pathList(status.Staged)
	}
	if len(status.Untracked) > 0 {
		w.line(w.st.yellow.Render(fmt.Sprintf("  • %d untracked file(s)/folder(s)", len(status.Untracked))))
	}
	w.blank()
}

// AlreadyClean reports that there is nothing to roll back.
func (w *Writer) AlreadyClean() {
	w.line(w.st.green.Render("✅ Working directory is already clean!"))
}

// Preview lists what a rollback would destroy.
func (w *Writer) Preview(wouldRemove []string) {
	w.line(w.st.red.Render("⚠️  The following changes would be made:"))
	w.blank()
	w.line(w.st.yellow.Render("1. All modifications to tracked files would be discarded"))
	w.line(w.st.yellow.Render("2. All staged changes would be unstaged and discarded"))

	if len(wouldRemove) > 0 {
		w.line(w.st.yellow.Render("3. The following untracked files/folders would be PERMANENTLY DELETED:"))
		w.blank()
		for _, path := range wouldRemove {
			w.line("  • " + path)
		}
	} else {
		w.line(w.st.yellow.Render("3. No untracked files to remove"))
	}
	w.blank()
}

// ConfirmWarning is printed right before the confirmation prompts.
func (w *Writer) ConfirmWarning() {
	w.separator()
	w.line(w.st.red.Bold(true).Render("⚠️  WARNING: This operation CANNOT be undone!"))
	w.line(w.st.red.Render("All local changes will be PERMANENTLY LOST!"))
	w.separator()
	w.blank()
}

// DryRun prints the commands that would run and how to run them for real.
func (w *Writer) DryRun(steps []domain.Step) {
	w.blank()
	w.line(w.st.blue.Render("🔍 TEST MODE - No changes will be made"))
	w.blank()
	w.line(w.st.blue.Render("Would execute:"))
	for i, step := range steps {
		w.line(fmt.Sprintf("  %d. %s", i+1, step.Command()))
	}
	w.blank()
	w.line(w.st.green.Render("✅ Test complete - no changes were made"))
	w.blank()
	w.separator()
	w.line(w.st.yellow.Render("💡 To actually perform the rollback, run:"))
	w.line(w.st.bold.Render("   " + ExecuteHint))
	w.separator()
}

// Cancelled reports a declined confirmation.
func (w *Writer) Cancelled() {
	w.line(w.st.yellow.Render("Operation cancelled."))
}

// StepStarted announces a destructive step. index is zero-based.
func (w *Writer) StepStarted(index int, step domain.Step) {
	if index == 0 {
		w.blank()
		w.line(w.st.blue.Render("🔄 Rolling back..."))
		w.blank()
	}
	w.line(w.st.blue.Render(fmt.Sprintf("Step %d: %s", index+1, step.Description)))
}

// StepSucceeded reports a completed step.
func (w *Writer) StepSucceeded(step domain.Step) {
	w.line(w.st.green.Render("  ✅ " + step.Success))
}

// StepFailed reports a failed step with the git output verbatim.
func (w *Writer) StepFailed(step domain.Step, output string) {
	w.line(w.st.red.Render(fmt.Sprintf("  ❌ Failed to %s: %s", failureVerb(step), output)))
}

// Complete reports a finished rollback.
func (w *Writer) Complete(info *domain.RepoInfo) {
	w.blank()
	w.separator()
	w.line(w.st.green.Bold(true).Render("✅ Rollback complete!"))
	w.line(w.st.green.Render("Your working directory is now at: ") + w.st.bold.Render(lastCommit(info.LastCommit)))
	w.separator()
}

// FinalStatus prints the short status after a rollback.
func (w *Writer) FinalStatus(output string) {
	w.blank()
	w.line(w.st.blue.Render("Final status:"))
	if trimmed := strings.TrimRight(output, "\n"); trimmed != "" {
		w.line(trimmed)
	}
}

// ScreenshotCopied reports a copied screenshot.
func (w *Writer) ScreenshotCopied(out *domain.ScreenshotOutput) {
	w.line(w.st.green.Render("✓ Copied: " + out.SourceName))
	w.line("  To: " + filepath.ToSlash(out.RelativePath))
	w.line("  As: " + out.Name)
	w.line(fmt.Sprintf("  Size: %.1f KB", float64(out.SizeBytes)/1024))
}

func (w *Writer) pathList(paths []string) {
	for i, path := range paths {
		if i == domain.MaxListedPaths {
			w.line(fmt.Sprintf("    ... and %d more", len(paths)-domain.MaxListedPaths))
			return
		}
		w.line("    - " + path)
	}
}

func (w *Writer) separator() {
	w.line(strings.Repeat("━", separatorWidth))
}

func (w *Writer) blank() {
	w.line("")
}

func (w *Writer) line(s string) {
	// Intentionally ignored: no recovery action for failed terminal writes
	_, _ = fmt.Fprintln(w.out, s)
}

func lastCommit(summary string) string {
	if summary == "" {
		return "unknown"
	}
	return summary
}

func failureVerb(step domain.Step) string {
	switch step.Name {
	case domain.ResetStep.Name:
		return "reset tracked files"
	case domain.CleanStep.Name:
		return "remove untracked files"
	default:
		return step.Name
	}
}
