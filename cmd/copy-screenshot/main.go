// Command copy-screenshot copies the newest screenshot into the project's
// docs/screenshots folder.
package main

import (
	"io"
	"os"
	"time"

	"github.com/MyCarrier-DevOps/goLibMyCarrier/logger"
	"github.com/spf13/afero"

	"github.com/MyCarrier-DevOps/git-rollback/cmd"
	"github.com/MyCarrier-DevOps/git-rollback/internal/adapters/git"
	logadapter "github.com/MyCarrier-DevOps/git-rollback/internal/adapters/logger"
	"github.com/MyCarrier-DevOps/git-rollback/internal/adapters/output"
	"github.com/MyCarrier-DevOps/git-rollback/internal/domain"
	"github.com/MyCarrier-DevOps/git-rollback/internal/infrastructure/config"
	"github.com/MyCarrier-DevOps/git-rollback/internal/usecases"
)

func main() {
	cmd.SetDefaultDependencies(newDependencies(afero.NewOsFs()))
	cmd.ExecuteScreenshot()
}

func newDependencies(fs afero.Fs) *cmd.Dependencies {
	return &cmd.Dependencies{
		LoggerFactory: func() cmd.Logger {
			return logadapter.NewZapAdapter(logger.NewZapLoggerFromConfig())
		},

		ConfigLoader: func() (*cmd.AppConfig, error) {
			cfg, err := config.LoadForApp(config.ScreenshotAppName)
			if err != nil {
				return nil, err
			}
			if err := cfg.ValidateScreenshot(); err != nil {
				return nil, err
			}
			return &cmd.AppConfig{
				LogLevel:              cfg.LogLevel,
				LogAppName:            cfg.LogAppName,
				GitBinary:             cfg.GitBinary,
				ScreenshotSourceDir:   cfg.ScreenshotSourceDir,
				ScreenshotDestDir:     cfg.ScreenshotDestDir,
				ScreenshotProjectRoot: cfg.ScreenshotProjectRoot,
			}, nil
		},

		ScreenshotCopierFactory: func(cfg *cmd.AppConfig, log cmd.Logger) (domain.ScreenshotCopier, error) {
			root, err := projectRoot(cfg.ScreenshotProjectRoot)
			if err != nil {
				return nil, err
			}
			return usecases.NewScreenshotService(fs, usecases.ScreenshotPaths{
				SourceDir:   cfg.ScreenshotSourceDir,
				ProjectRoot: root,
				DestDir:     cfg.ScreenshotDestDir,
			}, time.Now, logadapter.Component(log, "screenshot")), nil
		},

		ScreenshotReporterFactory: func(out io.Writer) domain.ScreenshotReporter {
			return output.NewWriterWithOutput(out)
		},

		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// projectRoot returns the configured root, else the enclosing git working
// tree, else the working directory.
func projectRoot(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if root, err := git.WorktreeRoot("."); err == nil {
		return root, nil
	}
	return os.Getwd()
}
