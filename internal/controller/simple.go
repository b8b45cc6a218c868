package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "arealint.dev/pkg/arealint/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	_ = ctx.Err()
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	_ = ctx.Err()
}

// DisplayViolations prints the violations table and a one-line verdict.
func (s *SimpleUI) DisplayViolations(ctx context.Context, violations []m.Violation, moduleCount int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(violations) == 0 {
		return s.printf("checked %d modules, no boundary violations\n", moduleCount)
	}

	if err := s.printf("\n%s", renderViolationsTable(violations)); err != nil {
		return err
	}

	return s.printf("\nchecked %d modules, %d boundary violations\n", moduleCount, len(violations))
}

func renderViolationsTable(violations []m.Violation) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Location", "Caller", "Target", "Area"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	for _, v := range violations {
		table.Append([]string{v.Location.String(), v.Caller, v.Target, v.Area})
	}

	table.SetFooter([]string{"", "", "Total", fmt.Sprintf("%d", len(violations))})
	table.Render()

	return buf.String()
}

// DisplayModules prints the module inventory with visibility and area.
func (s *SimpleUI) DisplayModules(ctx context.Context, modules []*m.Module) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Module", "Visibility", "Area", "Deps"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, mod := range modules {
		table.Append([]string{
			mod.Name,
			string(mod.Visibility),
			mod.Area,
			fmt.Sprintf("%d", len(mod.Deps)),
		})
	}

	table.SetFooter([]string{"Total", "", "", fmt.Sprintf("%d", len(modules))})
	table.Render()

	return s.printf("\n%s", buf.String())
}

// DisplayContracts prints the public modules missing a test module.
func (s *SimpleUI) DisplayContracts(ctx context.Context, issues []m.ContractIssue) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(issues) == 0 {
		return s.printf("every public module has a matching test module\n")
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Module", "Missing", "Location"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, issue := range issues {
		table.Append([]string{issue.Module, issue.Missing, issue.Location.String()})
	}

	table.Render()

	if err := s.printf("\n%s", buf.String()); err != nil {
		return err
	}

	return s.printf("\n%d public modules without a test module\n", len(issues))
}

// DisplaySummary prints the aggregate numbers of a saved run.
func (s *SimpleUI) DisplaySummary(ctx context.Context, report m.CheckReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.printf("generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05")); err != nil {
		return err
	}

	if err := s.printf("modules: %d | violations: %d\n", report.ModuleCount, report.Violations); err != nil {
		return err
	}

	for _, stat := range sortedByArea(report.ByArea) {
		if err := s.printf("  %s: %d\n", stat.area, stat.count); err != nil {
			return err
		}
	}

	return nil
}

type areaStat struct {
	area  string
	count int
}

func sortedByArea(byArea map[string]int) []areaStat {
	stats := make([]areaStat, 0, len(byArea))
	for area, count := range byArea {
		stats = append(stats, areaStat{area: area, count: count})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].area < stats[j].area
	})

	return stats
}

// printf writes formatted output to the underlying cobra command's stdout.
func (s *SimpleUI) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
	return err
}
