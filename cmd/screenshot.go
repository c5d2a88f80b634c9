package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/git-rollback/internal/domain"
)

// NewScreenshotCmd creates the copy-screenshot command.
func NewScreenshotCmd() *cobra.Command {
	return NewScreenshotCmdWithDeps(defaultDeps)
}

// NewScreenshotCmdWithDeps creates the copy-screenshot command with explicit dependencies.
func NewScreenshotCmdWithDeps(deps *Dependencies) *cobra.Command {
	screenshotCmd := &cobra.Command{
		Use:   "copy-screenshot [name]",
		Short: "Copy the newest screenshot into the project docs",
		Long: `copy-screenshot copies the most recent screenshot from the screenshot
directory (default ~/Documents/Screenshots) into docs/screenshots of the
current project.

Without a name the copy is called screenshot_YYYY-MM-DD_HH-MM-SS.<ext>.
A name without a .png, .jpg or .jpeg suffix gets the source extension.

Examples:
  copy-screenshot
  copy-screenshot login-page`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreenshot(cmd, args, deps)
		},
	}

	screenshotCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose/debug logging")

	return screenshotCmd
}

func runScreenshot(cmd *cobra.Command, args []string, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stdout, stderr, _ := streams(deps)

	cfg, log, err := setup(deps, stderr)
	if err != nil {
		return err
	}

	input := domain.ScreenshotInput{}
	if len(args) > 0 {
		input.Name = args[0]
	}

	copier, err := deps.ScreenshotCopierFactory(cfg, log)
	if err != nil {
		log.Error(ctx, "failed to initialize screenshot copier", err, nil)
		return fmt.Errorf("configuration error: %w", err)
	}

	result, err := copier.Copy(ctx, input)
	if err != nil {
		log.Error(ctx, "failed to copy screenshot", err, map[string]interface{}{
			"name": input.Name,
		})
		return err
	}

	deps.ScreenshotReporterFactory(stdout).ScreenshotCopied(result)
	return nil
}

// ExecuteScreenshot runs the copy-screenshot command.
func ExecuteScreenshot() {
	if err := NewScreenshotCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
