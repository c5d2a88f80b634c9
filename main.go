// Package main is the entry point for the git-rollback CLI application.
// git-rollback previews and then discards every local change in a Git
// working tree, restoring it to the last commit.
package main

import (
	"io"
	"os"

	"github.com/MyCarrier-DevOps/goLibMyCarrier/logger"

	"github.com/MyCarrier-DevOps/git-rollback/cmd"
	"github.com/MyCarrier-DevOps/git-rollback/internal/adapters/git"
	logadapter "github.com/MyCarrier-DevOps/git-rollback/internal/adapters/logger"
	"github.com/MyCarrier-DevOps/git-rollback/internal/adapters/output"
	"github.com/MyCarrier-DevOps/git-rollback/internal/adapters/prompt"
	"github.com/MyCarrier-DevOps/git-rollback/internal/domain"
	"github.com/MyCarrier-DevOps/git-rollback/internal/infrastructure/config"
	"github.com/MyCarrier-DevOps/git-rollback/internal/usecases"
)

func main() {
	cmd.SetDefaultDependencies(newDependencies())
	cmd.Execute()
}

// newDependencies wires up production dependencies.
func newDependencies() *cmd.Dependencies {
	return &cmd.Dependencies{
		// The zap logger reads LOG_LEVEL when created, so it is built lazily.
		LoggerFactory: func() cmd.Logger {
			return logadapter.NewZapAdapter(logger.NewZapLoggerFromConfig())
		},

		ConfigLoader: func() (*cmd.AppConfig, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			return appConfigFrom(cfg), nil
		},

		RepositoryFactory: func(path string, cfg *cmd.AppConfig, log cmd.Logger) (domain.Repository, error) {
			return git.NewGoGitRepository(path, git.NewExecRunner(cfg.GitBinary), logadapter.Component(log, "git"))
		},

		PrompterFactory: func(in io.Reader, out io.Writer) domain.Prompter {
			return prompt.NewLinePrompter(in, out)
		},

		ReporterFactory: func(out io.Writer) domain.Reporter {
			return output.NewWriterWithOutput(out)
		},

		RollbackerFactory: func(
			repo domain.Repository,
			prompter domain.Prompter,
			reporter domain.Reporter,
			log cmd.Logger,
		) domain.Rollbacker {
			return usecases.NewRollbackService(repo, prompter, reporter, logadapter.Component(log, "rollback"))
		},

		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// appConfigFrom maps the loaded configuration onto the command's view of it.
func appConfigFrom(cfg *config.Config) *cmd.AppConfig {
	return &cmd.AppConfig{
		LogLevel:              cfg.LogLevel,
		LogAppName:            cfg.LogAppName,
		GitBinary:             cfg.GitBinary,
		ScreenshotSourceDir:   cfg.ScreenshotSourceDir,
		ScreenshotDestDir:     cfg.ScreenshotDestDir,
		ScreenshotProjectRoot: cfg.ScreenshotProjectRoot,
	}
}
