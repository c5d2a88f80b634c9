package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/MyCarrier-DevOps/git-rollback/internal/domain"
)

// DefaultBinary is the git executable looked up on PATH.
const DefaultBinary = "git"

// Runner runs git subcommands in a directory.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) domain.RunResult
}

// ExecRunner runs the git binary as a subprocess and waits for it to exit.
type ExecRunner struct {
	binary string
}

// NewExecRunner creates an ExecRunner for the given binary.
// An empty binary falls back to DefaultBinary.
func NewExecRunner(binary string) *ExecRunner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &ExecRunner{binary: binary}
}

// Run executes the command and captures stdout and stderr separately.
// Failures to start the process are folded into a non-zero result so callers
// only ever inspect RunResult.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) domain.RunResult {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = dir
	// Output is parsed ("Would remove ..."), so pin the message locale.
	cmd.Env = append(os.Environ(), "LC_ALL=C")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := domain.RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return result
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode == 0 {
			result.ExitCode = 1
		}
		return result
	}

	result.ExitCode = 1
	result.Stderr += err.Error()
	return result
}
