// Package domain defines the core business entities and interfaces for git-rollback.
package domain

import "strings"

// RepoInfo describes where the repository is and what HEAD points at.
// This struct is populated by Repository.Info() from the local repository.
type RepoInfo struct {
	// Root is the absolute path of the working tree.
	Root string

	// Branch is the current branch name, or "HEAD" if HEAD is detached.
	Branch string

	// IsDetached indicates if HEAD is detached (not on a branch).
	IsDetached bool

	// LastCommit is the one-line summary of HEAD: "<short-sha> <subject>".
	// Empty when the repository has no commits yet.
	LastCommit string
}

// RepositoryStatus is the classified output of the status command.
// It is rebuilt on every call and never cached.
type RepositoryStatus struct {
	Branch     string
	LastCommit string
	Modified   []string
	Staged     []string
	Untracked  []string
}

// IsClean reports whether there is nothing to roll back.
func (s *RepositoryStatus) IsClean() bool {
	return len(s.Modified) == 0 && len(s.Staged) == 0 && len(s.Untracked) == 0
}

// RunResult is the outcome of a single git invocation.
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status 0.
func (r RunResult) Success() bool {
	return r.ExitCode == 0
}

// Combined returns stdout followed by stderr, trimmed.
func (r RunResult) Combined() string {
	return strings.TrimSpace(r.Stdout + r.Stderr)
}

// Listing returns stdout followed by stderr with trailing whitespace removed.
// Leading columns of line-oriented output such as `git status --short` are kept.
func (r RunResult) Listing() string {
	return strings.TrimRight(r.Stdout+r.Stderr, " \t\r\n")
}

// Step is one destructive operation of a rollback.
type Step struct {
	// Name identifies the step in logs.
	Name string

	// Description is shown to the operator before the step runs.
	Description string

	// Success is shown when the step completes.
	Success string

	// Args are the git arguments for the step.
	Args []string
}

// Command renders the step as the shell command an operator would type.
func (s Step) Command() string {
	return "git " + strings.Join(s.Args, " ")
}

// The two destructive steps, in the order they run.
var (
	ResetStep = Step{
		Name:        "reset",
		Description: "Discarding changes to tracked files...",
		Success:     "Tracked files reset to last commit",
		Args:        []string{"reset", "--hard", "HEAD"},
	}
	CleanStep = Step{
		Name:        "clean",
		Description: "Removing untracked files and directories...",
		Success:     "Untracked files removed",
		Args:        []string{"clean", "-f", "-d"},
	}
)

// RollbackSteps returns the destructive steps in execution order.
func RollbackSteps() []Step {
	return []Step{ResetStep, CleanStep}
}

// RollbackInput contains the parameters for a rollback run.
type RollbackInput struct {
	// Execute performs the rollback. When false the run is a dry run.
	Execute bool

	// Force skips the confirmation prompts. Only meaningful with Execute.
	Force bool
}

// Outcome is the terminal state of a rollback run.
type Outcome string

// Rollback outcomes.
const (
	OutcomeClean      Outcome = "clean"
	OutcomeDryRun     Outcome = "dry-run"
	OutcomeDeclined   Outcome = "declined"
	OutcomeRolledBack Outcome = "rolled-back"
)

// RollbackOutput contains the result of a rollback run that did not fail.
type RollbackOutput struct {
	Outcome Outcome

	// Status is the repository status observed before any mutation.
	Status *RepositoryStatus

	// WouldRemove lists the untracked paths reported by the clean preview.
	WouldRemove []string
}

// ScreenshotInput contains the parameters for copying a screenshot.
type ScreenshotInput struct {
	// Name is the optional destination file name.
	Name string
}

// ScreenshotOutput describes a completed copy.
type ScreenshotOutput struct {
	SourceName string
	DestPath   string

	// RelativePath is DestPath relative to the project root.
	RelativePath string

	Name      string
	SizeBytes int64
}

// MaxListedPaths is how many modified or staged paths are printed before truncating.
const MaxListedPaths = 5

// ScreenshotExtensions are the file suffixes considered screenshots.
var ScreenshotExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".PNG", ".JPG", ".JPEG"}
