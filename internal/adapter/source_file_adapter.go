// Package adapter contains filesystem and persistence adapters for the
// arealint CLI.
package adapter

import (
	"context"
	"os"

	m "arealint.dev/pkg/arealint/internal/model"
	"arealint.dev/pkg/arealint/internal/syntax"
)

// SourceFileAdapter encapsulates reading and parsing a single source file so
// the domain layer receives ready-made source units and never touches the
// parser or the disk itself.
type SourceFileAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// Parse builds the walkable module tree for one source file.
	Parse(ctx context.Context, path m.Path, src []byte) (*syntax.SourceUnit, error)
}

// LocalSourceFileAdapter is the concrete SourceFileAdapter backed by os and
// the syntax package.
type LocalSourceFileAdapter struct{}

// NewLocalSourceFileAdapter constructs a LocalSourceFileAdapter.
func NewLocalSourceFileAdapter() *LocalSourceFileAdapter {
	return &LocalSourceFileAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFileAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// Parse builds the module tree for the provided path/source pair.
func (a *LocalSourceFileAdapter) Parse(ctx context.Context, path m.Path, src []byte) (*syntax.SourceUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return syntax.Parse(path, src)
}
