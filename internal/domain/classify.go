package domain

import (
	m "arealint.dev/pkg/arealint/internal/model"
	"arealint.dev/pkg/arealint/internal/syntax"
)

// Classify assigns a module's visibility. A single-segment name is a root
// area boundary and is always public, whatever it declares. Otherwise the
// declared description attribute decides: present and non-false means
// public, the literal false means private, and no attribute at all means
// undetermined - no documented stance, so the checker abstains in both
// directions.
//
// Pure function of name and attribute; it does not depend on the rest of
// the module set.
func Classify(name string, doc *syntax.DocAttr) m.Visibility {
	if m.RootSegment(name) == name {
		return m.VisibilityPublic
	}

	if doc == nil {
		return m.VisibilityUndetermined
	}

	if doc.Value {
		return m.VisibilityPublic
	}

	return m.VisibilityPrivate
}
