package domain

import (
	"strings"

	m "arealint.dev/pkg/arealint/internal/model"
)

// MissingContracts reports every public module that has no matching
// same-named test module in the set. Root segments and test modules
// themselves are exempt; the rest is a plain set difference over the
// descriptor collection the boundary check already built.
func MissingContracts(set *m.ModuleSet) []m.ContractIssue {
	issues := []m.ContractIssue{}

	for _, mod := range set.Modules() {
		if mod.Visibility != m.VisibilityPublic {
			continue
		}

		if len(m.Segments(mod.Name)) < 2 || strings.HasSuffix(mod.Name, "Test") {
			continue
		}

		want := mod.Name + "Test"
		if _, ok := set.Get(want); ok {
			continue
		}

		issues = append(issues, m.ContractIssue{
			Module:   mod.Name,
			Location: mod.Location,
			Missing:  want,
		})
	}

	return issues
}
