// Package git provides adapters for interacting with local Git repositories.
package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/goLibMyCarrier/logger"

	"github.com/MyCarrier-DevOps/git-rollback/internal/domain"
)

// testLogger is a minimal logger for testing that doesn't output anything.
type testLogger struct{}

func (l *testLogger) Info(_ context.Context, _ string, _ map[string]interface{})           {}
func (l *testLogger) Debug(_ context.Context, _ string, _ map[string]interface{})          {}
func (l *testLogger) Warn(_ context.Context, _ string, _ map[string]interface{})           {}
func (l *testLogger) Warning(_ context.Context, _ string, _ map[string]interface{})        {}
func (l *testLogger) Error(_ context.Context, _ string, _ error, _ map[string]interface{}) {}
func (l *testLogger) WithFields(_ map[string]interface{}) logger.Logger                    { return l }

// requireGit skips the test when the git binary is not installed.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// setupTestRepo creates a temporary git repository with one commit.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)

	tmpDir := t.TempDir()

	runGit(t, tmpDir, "init")
	runGit(t, tmpDir, "config", "user.email", "test@example.com")
	runGit(t, tmpDir, "config", "user.name", "Test User")
	runGit(t, tmpDir, "config", "commit.gpgsign", "false")

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("initial content"), 0o644))
	runGit(t, tmpDir, "add", ".")
	runGit(t, tmpDir, "commit", "-m", "Initial commit")

	return tmpDir
}

// runGit executes a git command in the given directory.
func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, output)
	}
}

// getGitOutput runs a git command and returns its trimmed stdout.
func getGitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	require.NoError(t, err, "git %v failed", args)
	return strings.TrimSpace(string(output))
}

func openTestRepo(t *testing.T, path string) *GoGitRepository {
	t.Helper()
	repo, err := NewGoGitRepository(path, NewExecRunner(""), &testLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func evalPath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}

func TestNewGoGitRepository_Success(t *testing.T) {
	repoPath := setupTestRepo(t)

	repo := openTestRepo(t, repoPath)

	assert.Equal(t, evalPath(t, repoPath), evalPath(t, repo.Root()))
}

func TestNewGoGitRepository_FromSubdirectory(t *testing.T) {
	repoPath := setupTestRepo(t)
	subDir := filepath.Join(repoPath, "a", "b")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	repo := openTestRepo(t, subDir)

	assert.Equal(t, evalPath(t, repoPath), evalPath(t, repo.Root()))
}

func TestWorktreeRoot(t *testing.T) {
	repoPath := setupTestRepo(t)
	subDir := filepath.Join(repoPath, "docs")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	root, err := WorktreeRoot(subDir)

	require.NoError(t, err)
	assert.Equal(t, evalPath(t, repoPath), evalPath(t, root))

	_, err = WorktreeRoot(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrRepositoryNotFound)
}

func TestNewGoGitRepository_NotARepository(t *testing.T) {
	tmpDir := t.TempDir()

	repo, err := NewGoGitRepository(tmpDir, NewExecRunner(""), &testLogger{})

	require.Error(t, err)
	assert.Nil(t, repo)
	assert.ErrorIs(t, err, domain.ErrRepositoryNotFound)
}

func TestGoGitRepository_Info_Success(t *testing.T) {
	repoPath := setupTestRepo(t)
	repo := openTestRepo(t, repoPath)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	info, err := repo.Info(ctx)

	require.NoError(t, err)
	assert.Equal(t, getGitOutput(t, repoPath, "branch", "--show-current"), info.Branch)
	assert.False(t, info.IsDetached)
	assert.Equal(t, getGitOutput(t, repoPath, "log", "-1", "--format=%h %s", "--abbrev=7"), info.LastCommit)
}

func TestGoGitRepository_Info_DetachedHead(t *testing.T) {
	repoPath := setupTestRepo(t)

	testFile := filepath.Join(repoPath, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("modified content"), 0o644))
	runGit(t, repoPath, "add", ".")
	runGit(t, repoPath, "commit", "-m", "Second commit")
	firstCommit := getGitOutput(t, repoPath, "rev-parse", "HEAD~1")
	runGit(t, repoPath, "checkout", firstCommit)

	repo := openTestRepo(t, repoPath)

	info, err := repo.Info(context.Background())

	require.NoError(t, err)
	assert.True(t, info.IsDetached)
	assert.Equal(t, "HEAD", info.Branch)
	assert.Equal(t, firstCommit[:7]+" Initial commit", info.LastCommit)
}

func TestGoGitRepository_Info_NoCommits(t *testing.T) {
	requireGit(t)
	tmpDir := t.TempDir()
	runGit(t, tmpDir, "init")

	repo := openTestRepo(t, tmpDir)

	info, err := repo.Info(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, info.Branch)
	assert.Empty(t, info.LastCommit)
}

func TestGoGitRepository_Status_Clean(t *testing.T) {
	repoPath := setupTestRepo(t)
	repo := openTestRepo(t, repoPath)

	status, err := repo.Status(context.Background())

	require.NoError(t, err)
	assert.True(t, status.IsClean())
	assert.NotEmpty(t, status.Branch)
	assert.Contains(t, status.LastCommit, "Initial commit")
}

func TestGoGitRepository_Status_Dirty(t *testing.T) {
	repoPath := setupTestRepo(t)

	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "test.txt"), []byte("changed"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "staged.txt"), []byte("new"), 0o644))
	runGit(t, repoPath, "add", "staged.txt")
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "untracked.txt"), []byte("x"), 0o644))

	repo := openTestRepo(t, repoPath)

	status, err := repo.Status(context.Background())

	require.NoError(t, err)
	assert.False(t, status.IsClean())
	assert.Equal(t, []string{"test.txt"}, status.Modified)
	assert.Equal(t, []string{"staged.txt"}, status.Staged)
	assert.Equal(t, []string{"untracked.txt"}, status.Untracked)
}

func TestGoGitRepository_CleanPreview(t *testing.T) {
	repoPath := setupTestRepo(t)

	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "test.txt"), []byte("changed"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "untracked.txt"), []byte("x"), 0o644))

	repo := openTestRepo(t, repoPath)

	paths, err := repo.CleanPreview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"untracked.txt"}, paths)

	// Preview must not touch anything.
	assert.FileExists(t, filepath.Join(repoPath, "untracked.txt"))
	content, err := os.ReadFile(filepath.Join(repoPath, "test.txt"))
	require.NoError(t, err)
	assert.Equal(t, "changed", string(content))
}

func TestGoGitRepository_RunSteps(t *testing.T) {
	repoPath := setupTestRepo(t)

	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "test.txt"), []byte("changed"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(repoPath, "build"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "build", "out.bin"), []byte("x"), 0o644))

	repo := openTestRepo(t, repoPath)
	ctx := context.Background()

	for _, step := range domain.RollbackSteps() {
		res := repo.RunStep(ctx, step)
		require.True(t, res.Success(), "step %s failed: %s", step.Name, res.Combined())
	}

	status, err := repo.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.IsClean())
	assert.NoDirExists(t, filepath.Join(repoPath, "build"))

	content, err := os.ReadFile(filepath.Join(repoPath, "test.txt"))
	require.NoError(t, err)
	assert.Equal(t, "initial content", string(content))

	short := repo.ShortStatus(ctx)
	assert.True(t, short.Success())
	assert.Empty(t, strings.TrimSpace(short.Stdout))
}

func TestGoGitRepository_StatusFailure(t *testing.T) {
	repoPath := setupTestRepo(t)

	repo, err := NewGoGitRepository(repoPath, NewExecRunner("git-binary-that-does-not-exist"), &testLogger{})
	require.NoError(t, err)
	defer repo.Close()

	status, err := repo.Status(context.Background())

	require.Error(t, err)
	assert.Nil(t, status)
	assert.ErrorIs(t, err, domain.ErrStatusFailed)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	runner := NewExecRunner("git-binary-that-does-not-exist")

	res := runner.Run(context.Background(), t.TempDir(), "status")

	assert.False(t, res.Success())
	assert.Equal(t, 1, res.ExitCode)
	assert.NotEmpty(t, res.Stderr)
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireGit(t)
	runner := NewExecRunner("")

	// Outside a repository git status exits 128.
	res := runner.Run(context.Background(), t.TempDir(), "status")

	assert.False(t, res.Success())
	assert.NotZero(t, res.ExitCode)
	assert.NotEmpty(t, res.Combined())
}

func TestGoGitRepository_Close(t *testing.T) {
	repoPath := setupTestRepo(t)

	repo, err := NewGoGitRepository(repoPath, NewExecRunner(""), &testLogger{})
	require.NoError(t, err)

	require.NoError(t, repo.Close())
}

func TestInfo_LinkedWorktree(t *testing.T) {
	repoPath := setupTestRepo(t)
	wtPath := filepath.Join(t.TempDir(), "feature-wt")
	runGit(t, repoPath, "worktree", "add", "-b", "feature", wtPath)
	require.NoError(t, os.WriteFile(filepath.Join(wtPath, "test.txt"), []byte("changed"), 0o644))

	repo := openTestRepo(t, wtPath)
	status, err := repo.Status(context.Background())

	require.NoError(t, err)
	assert.Equal(t, evalPath(t, wtPath), evalPath(t, repo.Root()))
	assert.Equal(t, "feature", status.Branch)
	assert.Equal(t, getGitOutput(t, wtPath, "log", "-1", "--oneline"), status.LastCommit)
	assert.Equal(t, []string{"test.txt"}, status.Modified)
}
