package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"arealint.dev/pkg/arealint/internal/adapter"
	"arealint.dev/pkg/arealint/internal/controller"
	m "arealint.dev/pkg/arealint/internal/model"
)

// CheckArgs carries one boundary check request.
type CheckArgs struct {
	Paths   []m.Path
	Exclude []string
	Threads int
	Options CheckOptions
	Reports m.Path // output directory; empty disables persistence
}

// ListArgs carries one module inventory request.
type ListArgs struct {
	Paths   []m.Path
	Exclude []string
	Threads int
}

// ViewArgs carries a request to display a previously saved run.
type ViewArgs struct {
	Reports m.Path
}

// Workflow ties source discovery, the analysis pipeline, persistence and the
// UI together, one method per CLI command. Check and Contracts return the
// number of findings so the host can decide the exit code.
type Workflow interface {
	Check(ctx context.Context, args CheckArgs) (int, error)
	List(ctx context.Context, args ListArgs) error
	Contracts(ctx context.Context, args ListArgs) (int, error)
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI
	Analyzer
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	analyzer Analyzer,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		Analyzer:        analyzer,
	}
}

func (w *workflow) Check(ctx context.Context, args CheckArgs) (int, error) {
	if err := w.Start(ctx, controller.WithCheckMode()); err != nil {
		return 0, err
	}
	defer w.Close(ctx)

	analysis, err := w.analyze(ctx, args.Paths, args.Exclude, args.Threads, args.Options)
	if err != nil {
		return 0, err
	}

	if args.Reports != "" {
		report := buildReport(args.Paths, analysis)
		if err := w.SaveRun(args.Reports, report, analysis.Violations); err != nil {
			slog.Error("failed to save report", "dir", args.Reports, "error", err)
			return 0, fmt.Errorf("save report: %w", err)
		}

		slog.Info("saved check run", "dir", args.Reports, "violations", len(analysis.Violations))
	}

	if err := w.DisplayViolations(ctx, analysis.Violations, analysis.Set.Len()); err != nil {
		return 0, fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return len(analysis.Violations), nil
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.Start(ctx, controller.WithCheckMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	analysis, err := w.analyze(ctx, args.Paths, args.Exclude, args.Threads, CheckOptions{})
	if err != nil {
		return err
	}

	if err := w.DisplayModules(ctx, analysis.Set.Modules()); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

func (w *workflow) Contracts(ctx context.Context, args ListArgs) (int, error) {
	if err := w.Start(ctx, controller.WithCheckMode()); err != nil {
		return 0, err
	}
	defer w.Close(ctx)

	analysis, err := w.analyze(ctx, args.Paths, args.Exclude, args.Threads, CheckOptions{})
	if err != nil {
		return 0, err
	}

	issues := MissingContracts(analysis.Set)

	if err := w.DisplayContracts(ctx, issues); err != nil {
		return 0, fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return len(issues), nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	report, violations, err := w.LoadRun(args.Reports)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	if err := w.DisplaySummary(ctx, report); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if err := w.DisplayViolations(ctx, violations, report.ModuleCount); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

func (w *workflow) analyze(ctx context.Context, paths []m.Path, exclude []string, threads int, opts CheckOptions) (*Analysis, error) {
	units, err := w.Collect(ctx, paths, exclude...)
	if err != nil {
		slog.Error("failed to collect sources", "error", err)
		return nil, fmt.Errorf("collect sources: %w", err)
	}

	slog.Debug("collected sources", "units", len(units))

	analysis, err := w.Analyze(ctx, AnalyzeArgs{Units: units, Threads: threads, Options: opts})
	if err != nil {
		slog.Error("analysis failed", "error", err)
		return nil, err
	}

	return analysis, nil
}

func buildReport(paths []m.Path, analysis *Analysis) m.CheckReport {
	pathStrings := make([]string, 0, len(paths))
	for _, p := range paths {
		pathStrings = append(pathStrings, string(p))
	}

	byArea := map[string]int{}
	for _, v := range analysis.Violations {
		byArea[v.Area]++
	}

	return m.CheckReport{
		GeneratedAt: time.Now(),
		Paths:       pathStrings,
		ModuleCount: analysis.Set.Len(),
		Violations:  len(analysis.Violations),
		ByArea:      byArea,
	}
}
