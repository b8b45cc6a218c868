package adapter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "arealint.dev/pkg/arealint/internal/model"
)

func TestReportStoreRoundTrip(t *testing.T) {
	dir := m.Path(filepath.Join(t.TempDir(), "reports"))

	report := m.CheckReport{
		GeneratedAt: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
		Paths:       []string{"lib/..."},
		ModuleCount: 6,
		Violations:  1,
		ByArea:      map[string]int{"Invoicing": 1},
	}

	violations := []m.Violation{
		{
			Location: m.SourceLocation{File: "lib/sales.ex", Line: 4},
			Caller:   "Sales",
			Target:   "Invoicing.CreateInvoiceService",
			Area:     "Invoicing",
			Message:  "Sales reaches into the internals of area Invoicing (Invoicing.CreateInvoiceService is not public)",
		},
	}

	store := NewLocalReportStore()
	require.NoError(t, store.SaveRun(dir, report, violations))

	loadedReport, loadedViolations, err := store.LoadRun(dir)
	require.NoError(t, err)

	assert.Equal(t, report, loadedReport)
	assert.Equal(t, violations, loadedViolations)
}

func TestReportStoreEmptyRun(t *testing.T) {
	dir := m.Path(t.TempDir())

	store := NewLocalReportStore()
	require.NoError(t, store.SaveRun(dir, m.CheckReport{ModuleCount: 3}, nil))

	report, violations, err := store.LoadRun(dir)
	require.NoError(t, err)

	assert.Equal(t, 3, report.ModuleCount)
	assert.Empty(t, violations)
}

func TestReportStoreLoadMissingDir(t *testing.T) {
	_, _, err := NewLocalReportStore().LoadRun(m.Path(filepath.Join(t.TempDir(), "nope")))
	require.Error(t, err)
}

func TestReportStoreOverwritesPreviousRun(t *testing.T) {
	dir := m.Path(t.TempDir())
	store := NewLocalReportStore()

	require.NoError(t, store.SaveRun(dir, m.CheckReport{Violations: 2}, []m.Violation{
		{Caller: "A", Target: "B"},
		{Caller: "A", Target: "C"},
	}))

	require.NoError(t, store.SaveRun(dir, m.CheckReport{Violations: 1}, []m.Violation{
		{Caller: "A", Target: "B"},
	}))

	report, violations, err := store.LoadRun(dir)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Violations)
	assert.Len(t, violations, 1)
}
