// Package cmd provides the CLI commands for git-rollback and copy-screenshot.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/git-rollback/internal/domain"
)

// Read by the structured logger when it is created.
const (
	logLevelEnv   = "LOG_LEVEL"
	logAppNameEnv = "LOG_APP_NAME"
)

// Logger defines the logging interface used by the commands.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Dependencies holds all injectable dependencies for the commands.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// LoggerFactory creates a logger instance. It runs after LOG_LEVEL is set.
	LoggerFactory func() Logger

	// ConfigLoader loads application configuration.
	ConfigLoader func() (*AppConfig, error)

	// RepositoryFactory opens the repository containing path.
	RepositoryFactory func(path string, cfg *AppConfig, log Logger) (domain.Repository, error)

	// PrompterFactory creates the confirmation prompter.
	PrompterFactory func(in io.Reader, out io.Writer) domain.Prompter

	// ReporterFactory creates the rollback progress reporter.
	ReporterFactory func(out io.Writer) domain.Reporter

	// RollbackerFactory creates a Rollbacker with the given dependencies.
	RollbackerFactory func(
		repo domain.Repository,
		prompter domain.Prompter,
		reporter domain.Reporter,
		log Logger,
	) domain.Rollbacker

	// ScreenshotCopierFactory creates the screenshot copier.
	ScreenshotCopierFactory func(cfg *AppConfig, log Logger) (domain.ScreenshotCopier, error)

	// ScreenshotReporterFactory creates the screenshot result reporter.
	ScreenshotReporterFactory func(out io.Writer) domain.ScreenshotReporter

	// Stdin is where confirmation answers are read from.
	Stdin io.Reader

	// Stdout is the writer for the interactive output.
	Stdout io.Writer

	// Stderr is the writer for standard error (for warnings/errors).
	Stderr io.Writer
}

// AppConfig holds application configuration loaded by ConfigLoader.
type AppConfig struct {
	// LogLevel is the log level setting.
	LogLevel string

	// LogAppName is the application name for logging.
	LogAppName string

	// GitBinary is the git executable.
	GitBinary string

	// ScreenshotSourceDir is scanned for screenshots.
	ScreenshotSourceDir string

	// ScreenshotDestDir receives screenshot copies.
	ScreenshotDestDir string

	// ScreenshotProjectRoot is the project root; empty means detect.
	ScreenshotProjectRoot string
}

// Command-line flags.
var (
	execute bool
	force   bool
	verbose bool
)

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main or via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for git-rollback.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "git-rollback [path]",
		Short: "Completely revert a working tree to the last commit",
		Long: `git-rollback discards every local change in a Git working tree.

It shows the current branch, last commit and pending changes, lists the
untracked files that would be deleted, and then runs:

  1. git reset --hard HEAD
  2. git clean -f -d

The default is test mode: nothing is changed. Use --execute to perform the
rollback; you will be asked to answer "yes" and then type ROLLBACK.

Examples:
  # Show what would be changed (safe)
  git-rollback

  # Perform the rollback with confirmations
  git-rollback --execute

  # Perform the rollback without confirmations (DANGEROUS!)
  git-rollback -e --force`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRollback(cmd, args, deps)
		},
	}

	rootCmd.Flags().BoolVarP(&execute, "execute", "e", false,
		"Execute the rollback (default is test mode)")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false,
		"Skip confirmation prompts when used with --execute (use with extreme caution!)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose/debug logging")

	return rootCmd
}

// runRollback executes the rollback flow with injected dependencies.
func runRollback(cmd *cobra.Command, args []string, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	stdout, stderr, stdin := streams(deps)

	cfg, log, err := setup(deps, stderr)
	if err != nil {
		return err
	}

	log.Info(ctx, "starting git-rollback", map[string]interface{}{
		"path":    repoPath,
		"execute": execute,
		"force":   force,
	})

	if force && !execute {
		writeWarningf(stderr, "warning: --force has no effect without --execute\n")
	}

	repo, err := deps.RepositoryFactory(repoPath, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to open git repository", err, map[string]interface{}{
			"path": repoPath,
		})
		if errors.Is(err, domain.ErrRepositoryNotFound) {
			return fmt.Errorf("not a git repository: %s", repoPath)
		}
		return err
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			log.Warn(ctx, "failed to close git repository", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	rollbacker := deps.RollbackerFactory(
		repo,
		deps.PrompterFactory(stdin, stdout),
		deps.ReporterFactory(stdout),
		log,
	)

	result, err := rollbacker.Run(ctx, domain.RollbackInput{
		Execute: execute,
		Force:   force,
	})
	if err != nil {
		log.Error(ctx, "rollback failed", err, nil)
		switch {
		case errors.Is(err, domain.ErrResetFailed):
			return fmt.Errorf("rollback aborted, clean was not attempted: %w", err)
		case errors.Is(err, domain.ErrCleanFailed):
			return fmt.Errorf("rollback incomplete, tracked files were reset: %w", err)
		}
		return err
	}

	log.Info(ctx, "git-rollback finished", map[string]interface{}{
		"outcome": string(result.Outcome),
	})

	return nil
}

// setup loads configuration, applies the log level and creates the logger.
func setup(deps *Dependencies, stderr io.Writer) (*AppConfig, Logger, error) {
	cfg, err := deps.ConfigLoader()
	if err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	// Set log level before the logger reads it (best-effort)
	if level != "" {
		if err := os.Setenv(logLevelEnv, level); err != nil {
			writeWarningf(stderr, "warning: could not set log level: %v\n", err)
		}
	}

	if cfg.LogAppName != "" {
		if err := os.Setenv(logAppNameEnv, cfg.LogAppName); err != nil {
			writeWarningf(stderr, "warning: could not set log app name: %v\n", err)
		}
	}

	return cfg, deps.LoggerFactory(), nil
}

func streams(deps *Dependencies) (stdout, stderr io.Writer, stdin io.Reader) {
	stdout, stderr, stdin = deps.Stdout, deps.Stderr, deps.Stdin
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	return stdout, stderr, stdin
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// writeWarningf writes a warning message to the given writer.
// This is a best-effort operation; errors are intentionally ignored
// because there is no recovery action if stderr writes fail.
func writeWarningf(w io.Writer, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil {
		// Intentionally ignored: no recovery action for failed stderr writes
		return
	}
}
