// Package git finds content documents touched in a git working tree.
package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dotcommander/aeoscore/internal/discovery"
)

// skipDirs never hold authored content.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	".git":         true,
	"dist":         true,
	"build":        true,
}

// GetStagedFiles returns absolute paths of staged content documents.
// Returns an empty slice outside a git repository.
func GetStagedFiles(rootPath string) ([]string, error) {
	if !IsGitRepo(rootPath) {
		return []string{}, nil
	}

	top, err := RepoRoot(rootPath)
	if err != nil {
		return nil, err
	}
	output, err := run(rootPath, "diff", "--name-only", "--staged")
	if err != nil {
		return nil, err
	}
	return filterContentFiles(output, top), nil
}

// GetChangedFiles returns absolute paths of content documents with
// uncommitted changes, staged or not. Before the first commit every
// tracked document counts as changed.
func GetChangedFiles(rootPath string) ([]string, error) {
	if !IsGitRepo(rootPath) {
		return []string{}, nil
	}

	args := []string{"diff", "--name-only", "HEAD"}
	if _, err := run(rootPath, "rev-parse", "HEAD"); err != nil {
		args = []string{"ls-files"}
	}

	top, err := RepoRoot(rootPath)
	if err != nil {
		return nil, err
	}
	// ls-files is relative to the working directory, diff to the top level
	if args[0] == "ls-files" {
		args = append(args, "--full-name", top)
	}
	output, err := run(rootPath, args...)
	if err != nil {
		return nil, err
	}
	return filterContentFiles(output, top), nil
}

// IsGitRepo checks if the given directory is within a git repository.
func IsGitRepo(rootPath string) bool {
	_, err := run(rootPath, "rev-parse", "--git-dir")
	return err == nil
}

// RepoRoot returns the top-level directory of the repository containing
// rootPath. git prints names relative to it.
func RepoRoot(rootPath string) (string, error) {
	output, err := run(rootPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}

// filterContentFiles keeps existing content documents from git's name list
// and returns them as absolute paths.
func filterContentFiles(gitOutput, rootPath string) []string {
	files := []string{}
	for _, line := range strings.Split(strings.TrimSpace(gitOutput), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isContentFile(line) {
			continue
		}

		absPath := filepath.Join(rootPath, line)
		// git reports deletions too
		if _, err := os.Stat(absPath); err != nil {
			continue
		}
		files = append(files, absPath)
	}
	return files
}

func isContentFile(relPath string) bool {
	for _, component := range strings.Split(filepath.ToSlash(relPath), "/") {
		if skipDirs[component] {
			return false
		}
	}

	return discovery.IsContentPath(relPath)
}
