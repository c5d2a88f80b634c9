// Package domain defines the core business entities and interfaces for git-rollback.
// This package contains no external dependencies and represents the innermost layer
// of the CLEAN architecture.
package domain

import (
	"context"
	"errors"
)

// Domain errors for repository access, rollback steps and screenshot copying.
var (
	// ErrRepositoryNotFound indicates the path is not inside a Git repository.
	ErrRepositoryNotFound = errors.New("not a git repository")

	// ErrStatusFailed indicates the status command exited non-zero.
	ErrStatusFailed = errors.New("git status failed")

	// ErrPreviewFailed indicates the dry-run clean exited non-zero.
	ErrPreviewFailed = errors.New("git clean preview failed")

	// ErrResetFailed indicates the hard reset exited non-zero.
	ErrResetFailed = errors.New("failed to reset tracked files")

	// ErrCleanFailed indicates the forced clean exited non-zero.
	ErrCleanFailed = errors.New("failed to remove untracked files")

	// ErrSourceDirNotFound indicates the screenshot source directory is missing.
	ErrSourceDirNotFound = errors.New("source directory does not exist")

	// ErrNoScreenshots indicates the source directory holds no screenshot files.
	ErrNoScreenshots = errors.New("no screenshots found")

	// ErrSameFile indicates the copy would overwrite the screenshot it reads.
	ErrSameFile = errors.New("source and destination are the same file")
)

// Repository is a local working tree that can be inspected and rolled back.
type Repository interface {
	// Info returns the branch and last commit summary.
	Info(ctx context.Context) (*RepoInfo, error)

	// Status runs the status command and classifies every reported path.
	// Returns ErrStatusFailed if the command exits non-zero.
	Status(ctx context.Context) (*RepositoryStatus, error)

	// CleanPreview lists the untracked paths a forced clean would delete.
	// Returns ErrPreviewFailed if the command exits non-zero.
	CleanPreview(ctx context.Context) ([]string, error)

	// RunStep runs one destructive step and returns its raw result.
	RunStep(ctx context.Context, step Step) RunResult

	// ShortStatus returns the short status listing printed after a rollback.
	ShortStatus(ctx context.Context) RunResult

	// Close releases any resources held by the repository.
	Close() error
}

// Prompter asks the operator to confirm a destructive action.
type Prompter interface {
	// Confirm blocks until both prompts are answered.
	// Returns true only if both answers pass.
	Confirm(ctx context.Context) (bool, error)
}

// Reporter renders progress of a rollback run to the operator.
type Reporter interface {
	Header(info *RepoInfo)
	Status(status *RepositoryStatus)
	AlreadyClean()
	Preview(wouldRemove []string)
	ConfirmWarning()
	DryRun(steps []Step)
	Cancelled()
	StepStarted(index int, step Step)
	StepSucceeded(step Step)
	StepFailed(step Step, output string)
	Complete(info *RepoInfo)
	FinalStatus(output string)
}

// Rollbacker runs the preview/confirm/execute flow.
type Rollbacker interface {
	Run(ctx context.Context, input RollbackInput) (*RollbackOutput, error)
}

// ScreenshotReporter renders the result of a screenshot copy.
type ScreenshotReporter interface {
	ScreenshotCopied(out *ScreenshotOutput)
}

// ScreenshotCopier copies the newest screenshot into the project.
type ScreenshotCopier interface {
	Copy(ctx context.Context, input ScreenshotInput) (*ScreenshotOutput, error)
}
