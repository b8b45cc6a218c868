package controller

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "arealint.dev/pkg/arealint/internal/model"
)

// smallListLimit is the row count below which results are printed statically
// instead of opening the interactive pager.
const smallListLimit = 20

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	badStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start initializes the UI.
func (t *TUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (t *TUI) Close(ctx context.Context) {
	_ = ctx.Err()
}

// Wait blocks until the UI is closed. Display methods already run their own
// program loop, so there is nothing left to wait for.
func (t *TUI) Wait(ctx context.Context) {
	_ = ctx.Err()
}

// DisplayViolations shows the violations in a scrollable table.
func (t *TUI) DisplayViolations(ctx context.Context, violations []m.Violation, moduleCount int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(violations) == 0 {
		_, err := fmt.Fprintln(t.output, okStyle.Render(
			fmt.Sprintf("checked %d modules, no boundary violations", moduleCount)))

		return err
	}

	columns := []table.Column{
		{Title: "Location", Width: widthFor(violations, func(v m.Violation) string { return v.Location.String() })},
		{Title: "Caller", Width: widthFor(violations, func(v m.Violation) string { return v.Caller })},
		{Title: "Target", Width: widthFor(violations, func(v m.Violation) string { return v.Target })},
		{Title: "Area", Width: widthFor(violations, func(v m.Violation) string { return v.Area })},
	}

	rows := make([]table.Row, 0, len(violations))
	for _, v := range violations {
		rows = append(rows, table.Row{v.Location.String(), v.Caller, v.Target, v.Area})
	}

	title := badStyle.Render(fmt.Sprintf("%d boundary violations (%d modules checked)", len(violations), moduleCount))

	return t.renderTable(title, columns, rows)
}

// DisplayModules shows the module inventory in a scrollable table.
func (t *TUI) DisplayModules(ctx context.Context, modules []*m.Module) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	columns := []table.Column{
		{Title: "Module", Width: widthFor(modules, func(mod *m.Module) string { return mod.Name })},
		{Title: "Visibility", Width: len("undetermined")},
		{Title: "Area", Width: widthFor(modules, func(mod *m.Module) string { return mod.Area })},
		{Title: "Deps", Width: 5},
	}

	rows := make([]table.Row, 0, len(modules))
	for _, mod := range modules {
		rows = append(rows, table.Row{
			mod.Name, string(mod.Visibility), mod.Area, fmt.Sprintf("%d", len(mod.Deps)),
		})
	}

	title := titleStyle.Render(fmt.Sprintf("%d modules", len(modules)))

	return t.renderTable(title, columns, rows)
}

// DisplayContracts shows the missing test modules.
func (t *TUI) DisplayContracts(ctx context.Context, issues []m.ContractIssue) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(issues) == 0 {
		_, err := fmt.Fprintln(t.output, okStyle.Render("every public module has a matching test module"))
		return err
	}

	columns := []table.Column{
		{Title: "Module", Width: widthFor(issues, func(i m.ContractIssue) string { return i.Module })},
		{Title: "Missing", Width: widthFor(issues, func(i m.ContractIssue) string { return i.Missing })},
		{Title: "Location", Width: widthFor(issues, func(i m.ContractIssue) string { return i.Location.String() })},
	}

	rows := make([]table.Row, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, table.Row{issue.Module, issue.Missing, issue.Location.String()})
	}

	title := badStyle.Render(fmt.Sprintf("%d public modules without a test module", len(issues)))

	return t.renderTable(title, columns, rows)
}

// DisplaySummary prints the aggregate numbers of a saved run.
func (t *TUI) DisplaySummary(ctx context.Context, report m.CheckReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	header := titleStyle.Render("saved check run") + "\n"
	body := fmt.Sprintf("generated: %s\nmodules: %d | violations: %d\n",
		report.GeneratedAt.Format("2006-01-02 15:04:05"), report.ModuleCount, report.Violations)

	for _, stat := range sortedByArea(report.ByArea) {
		body += fmt.Sprintf("  %s: %d\n", stat.area, stat.count)
	}

	_, err := fmt.Fprint(t.output, header+body)

	return err
}

// renderTable prints small tables statically and opens the interactive pager
// for anything longer.
func (t *TUI) renderTable(title string, columns []table.Column, rows []table.Row) error {
	height := len(rows)
	if height > smallListLimit {
		height = smallListLimit
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	tbl.SetStyles(styles)

	model := resultsModel{title: title, tbl: tbl}

	if len(rows) <= smallListLimit {
		_, err := fmt.Fprintf(t.output, "%s\n%s\n", title, tbl.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// widthFor sizes a column to its widest cell, counted in runes so non-ASCII
// names do not over-widen it, bounded to keep four columns on one screen.
func widthFor[T any](items []T, cell func(T) string) int {
	const maxWidth = 48

	width := 8
	for _, item := range items {
		if l := utf8.RuneCountInString(cell(item)); l > width {
			width = l
		}
	}

	if width > maxWidth {
		return maxWidth
	}

	return width
}

// resultsModel is the Bubble Tea model wrapping a results table.
type resultsModel struct {
	title    string
	tbl      table.Model
	quitting bool
}

func (rm resultsModel) Init() tea.Cmd { return nil }

func (rm resultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			rm.quitting = true
			return rm, tea.Quit
		}
	case tea.WindowSizeMsg:
		height := msg.Height - 4
		if height < 3 {
			height = 3
		}

		rm.tbl.SetHeight(height)
	}

	var cmd tea.Cmd
	rm.tbl, cmd = rm.tbl.Update(msg)

	return rm, cmd
}

func (rm resultsModel) View() string {
	if rm.quitting {
		return ""
	}

	return rm.title + "\n" + rm.tbl.View() + "\n" + helpStyle.Render("↑/↓ scroll · q quit")
}
