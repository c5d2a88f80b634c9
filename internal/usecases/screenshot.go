package usecases

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/MyCarrier-DevOps/git-rollback/internal/domain"
)

// screenshotTimeLayout names copies made without an explicit name.
const screenshotTimeLayout = "2006-01-02_15-04-05"

// namedSuffixes are kept as-is on a supplied name; anything else gets the
// source extension appended.
var namedSuffixes = []string{".png", ".jpg", ".jpeg"}

// ScreenshotPaths locates the source and destination of a copy.
type ScreenshotPaths struct {
	// SourceDir is scanned for the newest screenshot.
	SourceDir string

	// ProjectRoot is used to display the destination relatively.
	ProjectRoot string

	// DestDir receives the copy. Relative paths are resolved against ProjectRoot.
	DestDir string
}

// ScreenshotService copies the newest screenshot into the project documentation.
type ScreenshotService struct {
	fs     afero.Fs
	paths  ScreenshotPaths
	now    func() time.Time
	logger Logger
}

// NewScreenshotService creates a ScreenshotService. A nil now uses time.Now.
func NewScreenshotService(fs afero.Fs, paths ScreenshotPaths, now func() time.Time, log Logger) *ScreenshotService {
	if now == nil {
		now = time.Now
	}
	if !filepath.IsAbs(paths.DestDir) {
		paths.DestDir = filepath.Join(paths.ProjectRoot, paths.DestDir)
	}
	return &ScreenshotService{
		fs:     fs,
		paths:  paths,
		now:    now,
		logger: log,
	}
}

// Copy finds the most recently modified screenshot and copies it into the
// destination directory, preserving its modification time.
func (s *ScreenshotService) Copy(ctx context.Context, input domain.ScreenshotInput) (*domain.ScreenshotOutput, error) {
	exists, err := afero.DirExists(s.fs, s.paths.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source directory: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceDirNotFound, s.paths.SourceDir)
	}

	if err := s.fs.MkdirAll(s.paths.DestDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	latest, err := s.latest()
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(latest.Name())
	name := s.destName(input.Name, ext)
	srcPath := filepath.Join(s.paths.SourceDir, latest.Name())
	destPath := filepath.Join(s.paths.DestDir, name)

	if s.sameFile(srcPath, destPath) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSameFile, srcPath)
	}

	s.logger.Debug(ctx, "copying screenshot", map[string]interface{}{
		"source":      srcPath,
		"destination": destPath,
	})

	size, err := s.copyFile(srcPath, destPath, latest.ModTime())
	if err != nil {
		return nil, fmt.Errorf("error copying file: %w", err)
	}

	rel, err := filepath.Rel(s.paths.ProjectRoot, destPath)
	if err != nil {
		rel = destPath
	}

	s.logger.Info(ctx, "screenshot copied", map[string]interface{}{
		"source":      latest.Name(),
		"destination": destPath,
		"size_bytes":  size,
	})

	return &domain.ScreenshotOutput{
		SourceName:   latest.Name(),
		DestPath:     destPath,
		RelativePath: rel,
		Name:         name,
		SizeBytes:    size,
	}, nil
}

// latest returns the newest regular file with a screenshot extension.
func (s *ScreenshotService) latest() (os.FileInfo, error) {
	entries, err := afero.ReadDir(s.fs, s.paths.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	var newest os.FileInfo
	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}
		if !slices.Contains(domain.ScreenshotExtensions, filepath.Ext(entry.Name())) {
			continue
		}
		if newest == nil || entry.ModTime().After(newest.ModTime()) {
			newest = entry
		}
	}

	if newest == nil {
		return nil, fmt.Errorf("%w in %s", domain.ErrNoScreenshots, s.paths.SourceDir)
	}
	return newest, nil
}

func (s *ScreenshotService) destName(requested, ext string) string {
	if requested == "" {
		return "screenshot_" + s.now().Format(screenshotTimeLayout) + ext
	}

	lower := strings.ToLower(requested)
	for _, suffix := range namedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return requested
		}
	}
	return requested + ext
}

// sameFile reports whether dest names src, either by path or, on the OS
// file system, by identity (hard links, symlinked directories).
func (s *ScreenshotService) sameFile(src, dest string) bool {
	if filepath.Clean(src) == filepath.Clean(dest) {
		return true
	}
	srcInfo, err := s.fs.Stat(src)
	if err != nil {
		return false
	}
	destInfo, err := s.fs.Stat(dest)
	if err != nil {
		return false
	}
	return os.SameFile(srcInfo, destInfo)
}

func (s *ScreenshotService) copyFile(src, dest string, modTime time.Time) (int64, error) {
	in, err := s.fs.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := s.fs.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}

	size, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return 0, err
	}
	if err := out.Close(); err != nil {
		return 0, err
	}

	if err := s.fs.Chtimes(dest, modTime, modTime); err != nil {
		return 0, err
	}
	return size, nil
}
