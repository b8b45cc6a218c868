package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	m "arealint.dev/pkg/arealint/internal/model"
	"arealint.dev/pkg/arealint/internal/syntax"
)

// ErrDuplicateModule is returned when two definitions claim the same
// qualified name within one run. The run is rejected rather than silently
// letting one definition win.
var ErrDuplicateModule = errors.New("duplicate module name")

// AnalyzeArgs carries one analysis request.
type AnalyzeArgs struct {
	Units   []*syntax.SourceUnit
	Threads int
	Options CheckOptions
}

// Analysis is the result of one full pipeline run.
type Analysis struct {
	Set        *m.ModuleSet
	Violations []m.Violation
}

// Analyzer runs the full pipeline over an immutable snapshot of parsed
// source units: describe every unit, join, resolve areas, check boundaries.
type Analyzer interface {
	Analyze(ctx context.Context, args AnalyzeArgs) (*Analysis, error)
}

type analyzer struct{}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() Analyzer {
	return &analyzer{}
}

func (a *analyzer) Analyze(ctx context.Context, args AnalyzeArgs) (*Analysis, error) {
	units := make([]*syntax.SourceUnit, len(args.Units))
	copy(units, args.Units)

	// Deterministic descriptor order regardless of discovery order.
	sort.Slice(units, func(i, j int) bool {
		return units[i].Path < units[j].Path
	})

	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	slog.Debug("starting analysis", "units", len(units), "threads", threads)

	perUnit := make([][]*m.Module, len(units))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for i, unit := range units {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			perUnit[i] = DescribeUnit(unit)

			return nil
		})
	}

	// Hard barrier: area resolution and checking read the complete set as
	// an immutable index, so nothing past this point starts earlier.
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("describe sources: %w", err)
	}

	set := m.NewModuleSet()

	for _, mods := range perUnit {
		for _, mod := range mods {
			if existing, added := set.Add(mod); !added {
				return nil, fmt.Errorf("%w: %s declared at %s and %s",
					ErrDuplicateModule, mod.Name, existing.Location, mod.Location)
			}
		}
	}

	ResolveAreas(set)

	violations := NewChecker(args.Options).Check(set)

	slog.Debug("analysis finished", "modules", set.Len(), "violations", len(violations))

	return &Analysis{Set: set, Violations: violations}, nil
}
