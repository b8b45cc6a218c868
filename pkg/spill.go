// Package pkg provides generic utilities shared across arealint.
package pkg

import (
	"encoding/gob"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Spill is a disk-backed append-only sequence of items of type T, encoded
// with gob. It keeps large result sets (one record per violation on big
// codebases) off the heap and gives `view` a stable on-disk form to reload.
type Spill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Range(fn func(index uint64, item T) error) error
	Items() ([]T, error)
	Close() error
}

type spillImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewSpill creates (or truncates) a spill file at path, ready for appends.
func NewSpill[T any](path string) (Spill[T], error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create spill file: %w", err)
	}

	slog.Debug("created spill", "path", path)

	return &spillImpl[T]{
		path:    path,
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// OpenSpill opens an existing spill file for reading. The item count is
// established by a single decoding pass.
func OpenSpill[T any](path string) (Spill[T], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spill file: %w", err)
	}

	defer func() { _ = file.Close() }()

	decoder := gob.NewDecoder(file)

	var (
		item   T
		length uint64
	)

	for {
		if err := decoder.Decode(&item); err != nil {
			if err == io.EOF {
				break
			}

			return nil, fmt.Errorf("scan spill file: %w", err)
		}

		length++
	}

	return &spillImpl[T]{path: path, length: length}, nil
}

// Append implements Spill.
func (s *spillImpl[T]) Append(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encoder == nil {
		return fmt.Errorf("spill %s is not open for writing", s.path)
	}

	if err := s.encoder.Encode(item); err != nil {
		return fmt.Errorf("encode item: %w", err)
	}

	s.length++

	return nil
}

// AppendBatch implements Spill.
func (s *spillImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := s.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Len implements Spill.
func (s *spillImpl[T]) Len() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.length
}

// Path implements Spill.
func (s *spillImpl[T]) Path() string {
	return s.path
}

// Range implements Spill. It reads the file from the start, so it works on
// both freshly written and reopened spills.
func (s *spillImpl[T]) Range(fn func(index uint64, item T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open spill file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close spill", "path", s.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	var item T

	for i := range s.length {
		if err := decoder.Decode(&item); err != nil {
			return fmt.Errorf("decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Items implements Spill by collecting the whole sequence into memory.
func (s *spillImpl[T]) Items() ([]T, error) {
	items := make([]T, 0, s.Len())

	err := s.Range(func(_ uint64, item T) error {
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Close implements Spill.
func (s *spillImpl[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}

	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close spill file: %w", err)
	}

	slog.Debug("closed spill", "path", s.path, "length", s.length)
	s.file = nil
	s.encoder = nil

	return nil
}
