package domain

import (
	"strings"

	m "arealint.dev/pkg/arealint/internal/model"
)

// ResolveAreas computes the governing area of every module in the set: the
// nearest enclosing public module, including the module itself, falling back
// to the top-level namespace segment. Requires the complete module set; run
// only after all extraction has joined.
func ResolveAreas(set *m.ModuleSet) {
	for _, mod := range set.Modules() {
		mod.Area = resolveArea(set, mod.Name)
	}
}

// resolveArea walks the candidate list [name, every strict prefix of name]
// from longest to shortest and returns the first entry that is either a
// single-segment root (unconditionally public) or a public module of the
// set. The root terminates the walk, so resolution is total.
func resolveArea(set *m.ModuleSet, name string) string {
	for candidate := name; ; candidate = m.ParentName(candidate) {
		if !strings.Contains(candidate, ".") {
			return candidate
		}

		if mod, ok := set.Get(candidate); ok && mod.Visibility == m.VisibilityPublic {
			return candidate
		}
	}
}
