// Package source discovers sprite image files from glob patterns.
//
// Patterns use [path/filepath.Match] syntax. In addition, a "**" path
// segment matches any number of directories, and a pattern naming a
// directory matches every image directly inside it.
package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hedin-hiervard/spritesheet-creator/pkg/errors"
	"github.com/hedin-hiervard/spritesheet-creator/pkg/imageio"
)

// Entry is one discovered file and the pattern that matched it.
type Entry struct {
	Pattern string
	Path    string
}

// Prefix returns the part of the pattern before its first wildcard,
// trimmed to a whole directory.
func (e Entry) Prefix() string {
	return staticDir(e.Pattern)
}

// RelDir returns the directory of Path relative to the pattern's static
// prefix, using forward slashes. It is "" for files directly under the
// prefix.
func (e Entry) RelDir() string {
	rel, err := filepath.Rel(e.Prefix(), filepath.Dir(e.Path))
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}

// Base returns the file name without directory or extension.
func (e Entry) Base() string {
	b := filepath.Base(e.Path)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

// Expand resolves every pattern and returns the image files found, sorted
// by path within each pattern. A file matched by more than one pattern is
// listed once, under the first. Non-image files are skipped.
func Expand(patterns []string) ([]Entry, error) {
	var out []Entry
	seen := make(map[string]bool)
	for _, p := range patterns {
		matches, err := match(p)
		if err != nil {
			return nil, err
		}
		slices.Sort(matches)
		for _, m := range matches {
			if seen[m] || !imageio.IsImage(m) {
				continue
			}
			seen[m] = true
			out = append(out, Entry{Pattern: p, Path: m})
		}
	}
	return out, nil
}

func match(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty input pattern")
	}
	if info, err := os.Stat(pattern); err == nil && info.IsDir() {
		pattern = filepath.Join(pattern, "*")
	}
	if strings.Contains(pattern, "**") {
		return walkMatch(pattern)
	}
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad pattern %q", pattern)
	}
	return regularFiles(matches), nil
}

// walkMatch handles "root/**/rest": every file under root whose path below
// some directory matches rest.
func walkMatch(pattern string) ([]string, error) {
	i := strings.Index(pattern, "**")
	root := filepath.Clean(pattern[:i])
	if root == "" {
		root = "."
	}
	rest := strings.TrimLeft(pattern[i+2:], `/\`)
	if rest == "" {
		rest = "*"
	}
	if _, err := filepath.Match(rest, ""); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad pattern %q", pattern)
	}
	depth := strings.Count(filepath.ToSlash(rest), "/")

	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(rest, tail(path, depth)); ok {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "couldn't walk %s", root)
	}
	return out, nil
}

// tail returns the last depth+1 elements of path.
func tail(path string, depth int) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > depth+1 {
		parts = parts[len(parts)-depth-1:]
	}
	return filepath.FromSlash(strings.Join(parts, "/"))
}

func regularFiles(paths []string) []string {
	out := paths[:0]
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			out = append(out, p)
		}
	}
	return out
}

// staticDir returns the directory part of pattern before any wildcard.
func staticDir(pattern string) string {
	i := strings.IndexAny(pattern, "*?[")
	if i < 0 {
		if info, err := os.Stat(pattern); err == nil && info.IsDir() {
			return filepath.Clean(pattern)
		}
		return filepath.Dir(pattern)
	}
	prefix := pattern[:i]
	if strings.HasSuffix(prefix, "/") || strings.HasSuffix(prefix, string(filepath.Separator)) {
		return filepath.Clean(prefix)
	}
	return filepath.Dir(prefix)
}
