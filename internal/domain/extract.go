// Package domain contains the core boundary analysis: descriptor extraction,
// visibility classification, area resolution and the boundary check itself.
package domain

import (
	"sort"
	"strings"

	m "arealint.dev/pkg/arealint/internal/model"
	"arealint.dev/pkg/arealint/internal/syntax"
)

// DescribeUnit produces the module descriptors for one parsed source unit:
// every definition at any nesting depth, each with its dependency set
// extracted and its visibility classified. Units are independent, so this
// runs per-unit on parallel workers; the later stages need the complete set
// and start only after all units have been described.
func DescribeUnit(unit *syntax.SourceUnit) []*m.Module {
	var mods []*m.Module

	unit.Walk(func(node *syntax.ModuleNode) {
		mods = append(mods, describeModule(unit.Path, node))
	})

	return mods
}

func describeModule(path m.Path, node *syntax.ModuleNode) *m.Module {
	return &m.Module{
		Name:       node.Name,
		Location:   m.SourceLocation{File: path, Line: node.Line},
		Deps:       extractDeps(node),
		Visibility: Classify(node.Name, node.Doc),
	}
}

// extractDeps collects the qualified names a module references: alias
// declarations plus directly written qualified names. A direct reference
// whose final module segment matches the short name of a known alias is
// already captured by that alias and produces no extra entry. Self
// references normalize to the module's own name and are then dropped,
// because the dependency set never contains the module itself.
func extractDeps(node *syntax.ModuleNode) []string {
	deps := map[string]struct{}{}
	aliased := map[string]struct{}{}

	for _, alias := range node.Aliases {
		aliased[alias.As] = struct{}{}

		if alias.Target != node.Name {
			deps[alias.Target] = struct{}{}
		}
	}

	for _, ref := range node.Refs {
		name := normalizeRef(node.Name, ref.Name)
		if name == "" || name == node.Name {
			continue
		}

		if _, ok := aliased[lastSegment(name)]; ok {
			continue
		}

		deps[name] = struct{}{}
	}

	out := make([]string, 0, len(deps))
	for name := range deps {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

// normalizeRef reduces a use-site token to the module it refers to: self
// tokens become the enclosing module's own name, and trailing lowercase
// segments (function calls) are trimmed. Returns "" when no module part
// remains.
func normalizeRef(own, ref string) string {
	if ref == syntax.SelfToken || strings.HasPrefix(ref, syntax.SelfToken+".") {
		return own
	}

	segments := strings.Split(ref, ".")

	end := 0
	for end < len(segments) && isUpperLed(segments[end]) {
		end++
	}

	if end == 0 {
		return ""
	}

	return strings.Join(segments[:end], ".")
}

func isUpperLed(segment string) bool {
	return segment != "" && segment[0] >= 'A' && segment[0] <= 'Z'
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}

	return name
}
