package git

import "strings"

// wouldRemovePrefix starts every line of `git clean -n` output.
const wouldRemovePrefix = "Would remove "

// parsePorcelain classifies `git status --porcelain` output by the
// two-character status code of each line:
//   - "??" is untracked
//   - a second-column M is modified (this wins over a staged first column)
//   - a first-column M, A, D, R or C is staged
//
// Anything else (for example " D", an unstaged deletion) is not counted.
func parsePorcelain(output string) (modified, staged, untracked []string) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) < 4 {
			continue
		}

		code := line[:2]
		path := line[3:]

		switch {
		case code == "??":
			untracked = append(untracked, path)
		case code[1] == 'M':
			modified = append(modified, path)
		case strings.ContainsRune("MADRC", rune(code[0])):
			staged = append(staged, path)
		}
	}
	return modified, staged, untracked
}

// parseCleanPreview extracts the paths from `git clean -n -d` output.
func parseCleanPreview(output string) []string {
	var paths []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, wouldRemovePrefix) {
			paths = append(paths, strings.TrimPrefix(line, wouldRemovePrefix))
		}
	}
	return paths
}
