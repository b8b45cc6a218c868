package domain

import (
	"fmt"
	"regexp"
	"strings"

	m "arealint.dev/pkg/arealint/internal/model"
)

// CheckOptions configures the boundary checker. Callers matching any
// IgnoreCallers pattern are exempt from all checks; targets matching any
// IgnoreDeps pattern are never flagged. A pattern matches by plain substring
// containment or, when it compiles, as a regular expression.
type CheckOptions struct {
	IgnoreCallers []string
	IgnoreDeps    []string
}

type pattern struct {
	raw string
	re  *regexp.Regexp
}

func (p pattern) matches(name string) bool {
	if strings.Contains(name, p.raw) {
		return true
	}

	return p.re != nil && p.re.MatchString(name)
}

func compilePatterns(raw []string) []pattern {
	patterns := make([]pattern, 0, len(raw))

	for _, r := range raw {
		p := pattern{raw: r}
		// A pattern that does not compile still works as a substring.
		if re, err := regexp.Compile(r); err == nil {
			p.re = re
		}

		patterns = append(patterns, p)
	}

	return patterns
}

func matchesAny(patterns []pattern, name string) bool {
	for _, p := range patterns {
		if p.matches(name) {
			return true
		}
	}

	return false
}

// Checker decides, for every reference between known modules, whether it
// crosses a private boundary the caller does not own. It is a total function
// over its filtered input: once constructed it cannot fail.
type Checker struct {
	ignoreCallers []pattern
	ignoreDeps    []pattern
}

// NewChecker compiles the ignore patterns once, up front.
func NewChecker(opts CheckOptions) *Checker {
	return &Checker{
		ignoreCallers: compilePatterns(opts.IgnoreCallers),
		ignoreDeps:    compilePatterns(opts.IgnoreDeps),
	}
}

// Check evaluates every (caller, referenced name) pair of the set and
// returns the violations, in set order. Undetermined modules abstain in both
// directions, references to unknown names are inert, and each distinct
// (caller, target) pair yields at most one violation because dependency sets
// are deduplicated at extraction.
func (c *Checker) Check(set *m.ModuleSet) []m.Violation {
	violations := []m.Violation{}

	for _, caller := range set.Modules() {
		if caller.Visibility == m.VisibilityUndetermined {
			continue
		}

		if matchesAny(c.ignoreCallers, caller.Name) {
			continue
		}

		for _, depName := range caller.Deps {
			dep, ok := set.Get(depName)
			if !ok {
				continue
			}

			if dep.Visibility == m.VisibilityUndetermined {
				continue
			}

			if matchesAny(c.ignoreDeps, dep.Name) {
				continue
			}

			if allowed(caller, dep) {
				continue
			}

			violations = append(violations, m.Violation{
				Location: caller.Location,
				Caller:   caller.Name,
				Target:   dep.Name,
				Area:     dep.Area,
				Message:  fmt.Sprintf("%s reaches into the internals of area %s (%s is not public)", caller.Name, dep.Area, dep.Name),
			})
		}
	}

	return violations
}

// allowed is the access-control predicate. A reference is legal when the
// target is public, when caller and target share a governing area, or when
// the caller is the target's conventional same-named test module.
func allowed(caller, dep *m.Module) bool {
	if dep.Visibility == m.VisibilityPublic {
		return true
	}

	if dep.Area == caller.Area {
		return true
	}

	return dep.Name+"Test" == caller.Name
}
