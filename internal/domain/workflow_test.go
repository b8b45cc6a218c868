package domain

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arealint.dev/pkg/arealint/internal/adapter"
	"arealint.dev/pkg/arealint/internal/controller"
	m "arealint.dev/pkg/arealint/internal/model"
)

func newTestWorkflow(t *testing.T) (Workflow, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	fsAdapter := adapter.NewLocalSourceFSAdapter(adapter.NewLocalSourceFileAdapter())
	wf := NewWorkflow(fsAdapter, adapter.NewLocalReportStore(), controller.NewSimpleUI(cmd), NewAnalyzer())

	return wf, &out
}

func TestWorkflowCheckAgainstShopExample(t *testing.T) {
	wf, out := newTestWorkflow(t)

	count, err := wf.Check(context.Background(), CheckArgs{
		Paths: []m.Path{"../../examples/shop/..."},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.Contains(t, out.String(), "Sales")
	assert.Contains(t, out.String(), "Invoicing.CreateInvoiceService")
	assert.Contains(t, out.String(), "1 boundary violation")
}

func TestWorkflowCheckCleanExample(t *testing.T) {
	wf, out := newTestWorkflow(t)

	count, err := wf.Check(context.Background(), CheckArgs{
		Paths: []m.Path{"../../examples/clean/..."},
	})
	require.NoError(t, err)

	assert.Zero(t, count)
	assert.Contains(t, out.String(), "no boundary violations")
}

func TestWorkflowCheckPersistsAndViewReloads(t *testing.T) {
	reports := m.Path(filepath.Join(t.TempDir(), "reports"))

	wf, _ := newTestWorkflow(t)

	count, err := wf.Check(context.Background(), CheckArgs{
		Paths:   []m.Path{"../../examples/shop/..."},
		Reports: reports,
	})
	require.NoError(t, err)
	require.Equal(t, 1, count)

	viewer, out := newTestWorkflow(t)

	require.NoError(t, viewer.View(context.Background(), ViewArgs{Reports: reports}))

	assert.Contains(t, out.String(), "violations: 1")
	assert.Contains(t, out.String(), "Invoicing.CreateInvoiceService")
}

func TestWorkflowList(t *testing.T) {
	wf, out := newTestWorkflow(t)

	err := wf.List(context.Background(), ListArgs{
		Paths: []m.Path{"../../examples/shop/..."},
	})
	require.NoError(t, err)

	for _, name := range []string{
		"Invoicing",
		"Invoicing.Invoice",
		"Invoicing.Invoice.GenerateNumber",
		"Invoicing.CreateInvoiceService",
		"Sales",
	} {
		assert.Contains(t, out.String(), name)
	}
}

func TestWorkflowContracts(t *testing.T) {
	wf, out := newTestWorkflow(t)

	count, err := wf.Contracts(context.Background(), ListArgs{
		Paths: []m.Path{"../../examples/shop/..."},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.Contains(t, out.String(), "Invoicing.InvoiceTest")
}

func TestWorkflowCheckExclude(t *testing.T) {
	wf, _ := newTestWorkflow(t)

	count, err := wf.Check(context.Background(), CheckArgs{
		Paths:   []m.Path{"../../examples/shop/..."},
		Exclude: []string{"sales"},
	})
	require.NoError(t, err)

	assert.Zero(t, count)
}

func TestWorkflowCheckCancelledContext(t *testing.T) {
	wf, _ := newTestWorkflow(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := wf.Check(ctx, CheckArgs{Paths: []m.Path{"../../examples/shop/..."}})
	require.Error(t, err)
}
