// Package discovery resolves analyze arguments into loaded documents.
package discovery

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ContentExtensions are the document types picked up from directories
// and git.
var ContentExtensions = []string{".html", ".htm", ".md", ".markdown", ".mdx"}

// sniffLen is how much of a file is checked for NUL bytes.
const sniffLen = 512

// File is a discovered input document.
type File struct {
	Path     string
	Contents string
}

// IsContentPath reports whether path has one of ContentExtensions.
func IsContentPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range ContentExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// ValidateFilePath resolves path to an absolute, symlink-free location and
// checks that it is a non-empty text file.
func ValidateFilePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	realPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", describeStatError(absPath, err)
	}

	info, err := os.Stat(realPath)
	if err != nil {
		return "", describeStatError(realPath, err)
	}
	switch {
	case info.IsDir():
		return "", fmt.Errorf("path is a directory, not a file: %s", realPath)
	case info.Size() == 0:
		return "", fmt.Errorf("file is empty: %s", realPath)
	}

	binary, err := looksBinary(realPath)
	if err != nil {
		return "", fmt.Errorf("cannot read file: %s: %w", realPath, err)
	}
	if binary {
		return "", fmt.Errorf("file appears to be binary, not text: %s", realPath)
	}
	return realPath, nil
}

func describeStatError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("file not found: %s", path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("permission denied: %s", path)
	default:
		return fmt.Errorf("cannot access file: %s: %w", path, err)
	}
}

func looksBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	return bytes.IndexByte(buf[:n], 0) >= 0, nil
}

// ReadFile validates path and loads it.
func ReadFile(path string) (File, error) {
	absPath, err := ValidateFilePath(path)
	if err != nil {
		return File{}, err
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return File{}, fmt.Errorf("cannot read file: %s: %w", absPath, err)
	}
	return File{Path: absPath, Contents: string(data)}, nil
}

// Discover loads every document the arguments name, once each, sorted by
// path. An argument may be:
//   - a file, which must be a valid text file
//   - a directory, searched recursively for ContentExtensions
//   - a ** glob; matches that are empty or binary are skipped
func Discover(args []string) ([]File, error) {
	seen := make(map[string]bool)
	var files []File

	load := func(path string, strict bool) error {
		f, err := ReadFile(path)
		if err != nil {
			if strict {
				return err
			}
			return nil
		}
		if !seen[f.Path] {
			seen[f.Path] = true
			files = append(files, f)
		}
		return nil
	}

	for _, arg := range args {
		matches, strict, err := expand(arg)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			if err := load(match, strict); err != nil {
				return nil, err
			}
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// expand turns one argument into candidate paths. strict is true when the
// argument named a single file directly.
func expand(arg string) (paths []string, strict bool, err error) {
	if hasMeta(arg) {
		if !doublestar.ValidatePathPattern(arg) {
			return nil, false, fmt.Errorf("invalid pattern %q", arg)
		}
		paths, err = doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, false, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		return paths, false, nil
	}

	info, statErr := os.Stat(arg)
	if statErr != nil || !info.IsDir() {
		return []string{arg}, true, nil
	}

	// Globbing the directory's own fs keeps metacharacters in arg literal.
	rel, err := doublestar.Glob(os.DirFS(arg), "**/*", doublestar.WithFilesOnly())
	if err != nil {
		return nil, false, fmt.Errorf("cannot search directory %s: %w", arg, err)
	}
	for _, r := range rel {
		if IsContentPath(r) {
			paths = append(paths, filepath.Join(arg, filepath.FromSlash(r)))
		}
	}
	return paths, false, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
