// Package model defines the data structures for boundary analysis.
package model

import (
	"fmt"
	"strings"
)

// Path represents a file system path.
type Path string

// SourceLocation points at the line where a module is defined, for diagnostics.
type SourceLocation struct {
	File Path `yaml:"file"`
	Line int  `yaml:"line"`
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Visibility is the declared stance of a module towards outside callers.
type Visibility string

const (
	// VisibilityPublic marks a module as a declared interface of its area.
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate marks a module as an implementation detail.
	VisibilityPrivate Visibility = "private"
	// VisibilityUndetermined marks a module with no declared stance. Such
	// modules neither trigger nor receive boundary violations.
	VisibilityUndetermined Visibility = "undetermined"
)

// Module describes one module definition found in the analyzed sources.
//
// Name is the dot-delimited namespace path (e.g. "Invoicing.CreateInvoiceService")
// and acts as the module's identity within an analysis run. Deps holds the
// qualified names referenced from the module body, deduplicated and sorted.
// Area is the name of the nearest enclosing public module (possibly the module
// itself, possibly the root segment); it is filled in once the full module set
// is known and defines which private internals the module may reach freely.
type Module struct {
	Name       string         `yaml:"name"`
	Location   SourceLocation `yaml:"location"`
	Deps       []string       `yaml:"deps,omitempty"`
	Visibility Visibility     `yaml:"visibility"`
	Area       string         `yaml:"area,omitempty"`
}

// Segments splits a qualified name into its namespace segments.
func Segments(name string) []string {
	return strings.Split(name, ".")
}

// RootSegment returns the top-level namespace segment of a qualified name.
func RootSegment(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}

	return name
}

// ParentName returns the qualified name with its last segment removed, or ""
// for a single-segment name.
func ParentName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}

	return ""
}
