// Package syntax parses Elixir-flavoured source files into a walkable tree of
// module definitions. The parse is best-effort and purely syntactic: it tracks
// module nesting, doc attributes, alias declarations and qualified-name use
// sites, and deliberately ignores everything else (no macro expansion, no type
// resolution).
package syntax

import m "arealint.dev/pkg/arealint/internal/model"

// SelfToken is the placeholder that refers to the enclosing module.
const SelfToken = "__MODULE__"

// SourceUnit is one parsed source file: a stable path for diagnostics plus
// the module definitions found in it, in source order.
type SourceUnit struct {
	Path    m.Path
	Modules []*ModuleNode
}

// ModuleNode is the syntax handle for one module definition. Name is the
// fully qualified name (nested definitions concatenate the enclosing name).
// It is consumed by the extraction stages only and not retained afterwards.
type ModuleNode struct {
	Name     string
	Line     int
	Doc      *DocAttr
	Aliases  []AliasNode
	Refs     []RefNode
	Children []*ModuleNode
}

// DocAttr is a declared module description attribute. Value is false exactly
// when the attribute was written as the literal `false`.
type DocAttr struct {
	Value bool
	Line  int
}

// AliasNode binds a short name to a fully qualified one.
type AliasNode struct {
	Target string // fully qualified name the alias points at
	As     string // short name introduced; last segment of Target by default
	Line   int
}

// RefNode is a qualified name written directly at a use site, recorded
// verbatim. Names starting with SelfToken refer to the enclosing module.
type RefNode struct {
	Name string
	Line int
}

// Walk calls fn for every module in the unit, depth-first in source order.
func (u *SourceUnit) Walk(fn func(*ModuleNode)) {
	var visit func(nodes []*ModuleNode)

	visit = func(nodes []*ModuleNode) {
		for _, node := range nodes {
			fn(node)
			visit(node.Children)
		}
	}

	visit(u.Modules)
}
