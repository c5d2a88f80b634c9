// Package config provides configuration loading for git-rollback and copy-screenshot.
// All settings come from environment variables with defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Environment variable names.
const (
	// EnvLogLevel is the log level (debug, info, warn, error).
	EnvLogLevel = "LOG_LEVEL"

	// EnvLogAppName is the application name for log context.
	EnvLogAppName = "LOG_APP_NAME"

	// EnvGitBinary overrides the git executable.
	EnvGitBinary = "GIT_ROLLBACK_GIT_BINARY"

	// EnvScreenshotSourceDir is the directory scanned for screenshots.
	EnvScreenshotSourceDir = "SCREENSHOT_SOURCE_DIR"

	// EnvScreenshotDestDir is where screenshots are copied, relative to the project root.
	EnvScreenshotDestDir = "SCREENSHOT_DEST_DIR"

	// EnvScreenshotProjectRoot overrides the project root used for copies.
	EnvScreenshotProjectRoot = "SCREENSHOT_PROJECT_ROOT"
)

// Default values.
const (
	// DefaultLogLevel keeps structured logs out of the interactive output.
	DefaultLogLevel      = "error"
	DefaultLogAppName    = "git-rollback"
	ScreenshotAppName    = "copy-screenshot"
	DefaultGitBinary     = "git"
	DefaultScreenshotDst = "docs/screenshots"
)

// defaultScreenshotSource is joined to the home directory.
var defaultScreenshotSource = filepath.Join("Documents", "Screenshots")

// Configuration errors.
var (
	// ErrHomeDirUnavailable indicates the screenshot source could not be defaulted.
	ErrHomeDirUnavailable = errors.New(
		"could not determine home directory: set " + EnvScreenshotSourceDir,
	)
)

// HomeDirFunc returns the current user's home directory.
type HomeDirFunc func() (string, error)

// Config holds all application configuration.
type Config struct {
	// LogLevel is the logging level (debug, info, warn, error).
	LogLevel string

	// LogAppName is the application name for log context.
	LogAppName string

	// GitBinary is the git executable used for status, clean and reset.
	GitBinary string

	// ScreenshotSourceDir is scanned for the newest screenshot.
	ScreenshotSourceDir string

	// ScreenshotDestDir receives copies; relative paths are resolved against the project root.
	ScreenshotDestDir string

	// ScreenshotProjectRoot is the project root. Empty means "detect from the working directory".
	ScreenshotProjectRoot string
}

// Load loads the application configuration from environment variables.
func Load() (*Config, error) {
	return LoadWithHomeDir(os.UserHomeDir)
}

// LoadWithHomeDir loads configuration using the provided home directory lookup.
// The lookup is only consulted when SCREENSHOT_SOURCE_DIR is unset; a failed
// lookup leaves ScreenshotSourceDir empty so that only ValidateScreenshot fails.
// This function enables dependency injection for testing.
func LoadWithHomeDir(homeDir HomeDirFunc) (*Config, error) {
	return load(homeDir, DefaultLogAppName)
}

// LoadForApp is Load with appName as the LOG_APP_NAME default.
func LoadForApp(appName string) (*Config, error) {
	return load(os.UserHomeDir, appName)
}

func load(homeDir HomeDirFunc, appName string) (*Config, error) {
	if homeDir == nil {
		homeDir = os.UserHomeDir
	}

	sourceDir := os.Getenv(EnvScreenshotSourceDir)
	if sourceDir == "" {
		if home, err := homeDir(); err == nil && home != "" {
			sourceDir = filepath.Join(home, defaultScreenshotSource)
		}
	}

	return &Config{
		LogLevel:              getenv(EnvLogLevel, DefaultLogLevel),
		LogAppName:            getenv(EnvLogAppName, appName),
		GitBinary:             getenv(EnvGitBinary, DefaultGitBinary),
		ScreenshotSourceDir:   sourceDir,
		ScreenshotDestDir:     filepath.FromSlash(getenv(EnvScreenshotDestDir, DefaultScreenshotDst)),
		ScreenshotProjectRoot: os.Getenv(EnvScreenshotProjectRoot),
	}, nil
}

// ValidateScreenshot checks the settings copy-screenshot needs.
func (c *Config) ValidateScreenshot() error {
	if c.ScreenshotSourceDir == "" {
		return ErrHomeDirUnavailable
	}
	if c.ScreenshotDestDir == "" {
		return fmt.Errorf("%s must not be empty", EnvScreenshotDestDir)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
