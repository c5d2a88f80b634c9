// Package git provides adapters for interacting with local Git repositories.
// Repository discovery and HEAD inspection use go-git/v5; status, clean and
// reset go through the git binary so the working tree is touched exactly the
// way an operator running git by hand would touch it.
package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/MyCarrier-DevOps/git-rollback/internal/domain"
)

// Logger defines the logging interface for the git adapter.
// This interface enables dependency injection and testability.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// shortHashLen matches the abbreviation `git log --oneline` prints.
const shortHashLen = 7

// GoGitRepository implements domain.Repository.
type GoGitRepository struct {
	repo   *git.Repository
	root   string
	runner Runner
	logger Logger
}

// NewGoGitRepository opens the repository containing path, walking up parent
// directories until a .git directory is found.
// Returns domain.ErrRepositoryNotFound if path is not inside a working tree.
func NewGoGitRepository(path string, runner Runner, log Logger) (*GoGitRepository, error) {
	repo, root, err := openWorktree(path)
	if err != nil {
		return nil, err
	}

	return &GoGitRepository{
		repo:   repo,
		root:   root,
		runner: runner,
		logger: log,
	}, nil
}

// WorktreeRoot returns the root of the working tree containing path.
// Returns domain.ErrRepositoryNotFound if path is not inside a working tree.
func WorktreeRoot(path string) (string, error) {
	_, root, err := openWorktree(path)
	return root, err
}

func openWorktree(path string) (*git.Repository, string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
		// Linked worktrees keep their branch refs and objects in the common dir.
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, path)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have nothing to roll back.
		return nil, "", fmt.Errorf("%w: %s: %w", domain.ErrRepositoryNotFound, path, err)
	}
	return repo, wt.Filesystem.Root(), nil
}

// Root returns the absolute path of the working tree.
func (r *GoGitRepository) Root() string {
	return r.root
}

// Info returns the current branch and the one-line summary of HEAD.
// A detached HEAD reports "HEAD" as the branch, like `git rev-parse --abbrev-ref HEAD`.
func (r *GoGitRepository) Info(ctx context.Context) (*domain.RepoInfo, error) {
	info := &domain.RepoInfo{Root: r.root}

	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// Unborn branch: HEAD is symbolic but points at nothing yet.
		ref, refErr := r.repo.Reference(plumbing.HEAD, false)
		if refErr != nil {
			return nil, fmt.Errorf("failed to read HEAD: %w", refErr)
		}
		info.Branch = ref.Target().Short()
		r.logger.Debug(ctx, "repository has no commits", map[string]interface{}{
			"branch": info.Branch,
			"root":   r.root,
		})
		return info, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	} else {
		info.Branch = plumbing.HEAD.String()
		info.IsDetached = true
		r.logger.Warn(ctx, "HEAD is detached", map[string]interface{}{
			"head_sha": head.Hash().String(),
			"root":     r.root,
		})
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get commit object for HEAD: %w", err)
	}
	info.LastCommit = oneline(commit.Hash.String(), commit.Message)

	r.logger.Debug(ctx, "read repository info", map[string]interface{}{
		"branch":      info.Branch,
		"last_commit": info.LastCommit,
		"is_detached": info.IsDetached,
	})

	return info, nil
}

// Status runs `git status --porcelain` and classifies the reported paths.
func (r *GoGitRepository) Status(ctx context.Context) (*domain.RepositoryStatus, error) {
	info, err := r.Info(ctx)
	if err != nil {
		return nil, err
	}

	res := r.run(ctx, "status", "--porcelain")
	if !res.Success() {
		return nil, fmt.Errorf("%w: %s", domain.ErrStatusFailed, res.Combined())
	}

	modified, staged, untracked := parsePorcelain(res.Stdout)
	return &domain.RepositoryStatus{
		Branch:     info.Branch,
		LastCommit: info.LastCommit,
		Modified:   modified,
		Staged:     staged,
		Untracked:  untracked,
	}, nil
}

// CleanPreview runs `git clean -n -d` and returns the paths it would remove.
func (r *GoGitRepository) CleanPreview(ctx context.Context) ([]string, error) {
	res := r.run(ctx, "clean", "-n", "-d")
	if !res.Success() {
		return nil, fmt.Errorf("%w: %s", domain.ErrPreviewFailed, res.Combined())
	}
	return parseCleanPreview(res.Stdout), nil
}

// RunStep runs one destructive step at the root of the working tree.
func (r *GoGitRepository) RunStep(ctx context.Context, step domain.Step) domain.RunResult {
	return r.run(ctx, step.Args...)
}

// ShortStatus runs `git status --short`.
func (r *GoGitRepository) ShortStatus(ctx context.Context) domain.RunResult {
	return r.run(ctx, "status", "--short")
}

// Close releases any resources held by the repository.
// For go-git, this is a no-op as the repository doesn't hold persistent resources.
func (r *GoGitRepository) Close() error {
	return nil
}

func (r *GoGitRepository) run(ctx context.Context, args ...string) domain.RunResult {
	res := r.runner.Run(ctx, r.root, args...)
	r.logger.Debug(ctx, "ran git command", map[string]interface{}{
		"args":      strings.Join(args, " "),
		"exit_code": res.ExitCode,
	})
	return res
}

// oneline formats a commit the way `git log -1 --oneline` does.
func oneline(hash, message string) string {
	if len(hash) > shortHashLen {
		hash = hash[:shortHashLen]
	}
	subject, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return hash + " " + subject
}
