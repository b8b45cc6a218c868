package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "arealint.dev/pkg/arealint/internal/model"
	"arealint.dev/pkg/arealint/internal/syntax"
)

// sourceExtensions are the file extensions treated as analyzable sources.
var sourceExtensions = map[string]struct{}{
	".ex":  {},
	".exs": {},
}

// skippedDirs are directory names never descended into while scanning.
var skippedDirs = map[string]struct{}{
	".git":   {},
	"_build": {},
	"deps":   {},
}

// SourceFSAdapter abstracts source discovery so the workflow logic can be
// tested without touching the disk. A path ending in "/..." is walked
// recursively; any other path is either a single file or a flat directory.
type SourceFSAdapter interface {
	// Collect discovers, reads and parses every source file reachable from
	// paths, minus those matching an exclude pattern. The returned units are
	// sorted by path. Any unreadable or unparsable file fails the whole
	// collection; a parse failure is not recoverable downstream.
	Collect(ctx context.Context, paths []m.Path, exclude ...string) ([]*syntax.SourceUnit, error)
}

// LocalSourceFSAdapter is the concrete SourceFSAdapter backed by the local
// filesystem.
type LocalSourceFSAdapter struct {
	files SourceFileAdapter
}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter using the
// provided file adapter for reading and parsing.
func NewLocalSourceFSAdapter(files SourceFileAdapter) *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{files: files}
}

// Collect implements SourceFSAdapter.
func (a *LocalSourceFSAdapter) Collect(ctx context.Context, paths []m.Path, exclude ...string) ([]*syntax.SourceUnit, error) {
	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	excludes := compileExcludes(exclude)

	seen := map[string]struct{}{}
	files := []string{}

	for _, path := range paths {
		found, err := a.discover(string(path))
		if err != nil {
			return nil, err
		}

		for _, f := range found {
			if _, ok := seen[f]; ok {
				continue
			}

			seen[f] = struct{}{}

			if excluded(excludes, f) {
				continue
			}

			files = append(files, f)
		}
	}

	sort.Strings(files)

	units := make([]*syntax.SourceUnit, 0, len(files))

	for _, file := range files {
		src, err := a.files.ReadFile(ctx, m.Path(file))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}

		unit, err := a.files.Parse(ctx, m.Path(file), src)
		if err != nil {
			return nil, fmt.Errorf("parse source: %w", err)
		}

		units = append(units, unit)
	}

	return units, nil
}

// discover expands a single path argument into source file paths.
func (a *LocalSourceFSAdapter) discover(path string) ([]string, error) {
	recursive := false
	if strings.HasSuffix(path, "...") {
		recursive = true
		path = filepath.Dir(strings.TrimSuffix(path, "..."))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if isSourceFile(path) {
			return []string{path}, nil
		}

		return nil, nil
	}

	var files []string

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if _, skip := skippedDirs[d.Name()]; skip && p != path {
				return filepath.SkipDir
			}

			if !recursive && p != path {
				return filepath.SkipDir
			}

			return nil
		}

		if isSourceFile(p) {
			files = append(files, p)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", path, err)
	}

	return files, nil
}

func isSourceFile(path string) bool {
	_, ok := sourceExtensions[filepath.Ext(path)]
	return ok
}

type excludePattern struct {
	raw string
	re  *regexp.Regexp
}

func compileExcludes(raw []string) []excludePattern {
	patterns := make([]excludePattern, 0, len(raw))

	for _, r := range raw {
		p := excludePattern{raw: r}
		if re, err := regexp.Compile(r); err == nil {
			p.re = re
		}

		patterns = append(patterns, p)
	}

	return patterns
}

func excluded(patterns []excludePattern, path string) bool {
	for _, p := range patterns {
		if strings.Contains(path, p.raw) {
			return true
		}

		if p.re != nil && p.re.MatchString(path) {
			return true
		}
	}

	return false
}
