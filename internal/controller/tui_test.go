package controller

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "arealint.dev/pkg/arealint/internal/model"
)

func TestWidthFor(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  int
	}{
		{"minimum width", []string{"a", "bb"}, 8},
		{"widest cell wins", []string{"Invoicing.Invoice", "Sales"}, len("Invoicing.Invoice")},
		{"counts runes not bytes", []string{"Käufer.Prüfung"}, 14},
		{"capped", []string{"Invoicing.Invoice.GenerateNumber.And.Then.Some.More.Segments"}, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, widthFor(tt.items, func(s string) string { return s }))
		})
	}
}

func TestTUIDisplayViolationsSmallListPrintsStatically(t *testing.T) {
	var out bytes.Buffer

	ui := NewTUI(&out)

	violations := []m.Violation{
		{
			Location: m.SourceLocation{File: "lib/sales.ex", Line: 4},
			Caller:   "Sales",
			Target:   "Invoicing.CreateInvoiceService",
			Area:     "Invoicing",
		},
	}

	require.NoError(t, ui.DisplayViolations(context.Background(), violations, 6))

	assert.Contains(t, out.String(), "Sales")
	assert.Contains(t, out.String(), "Invoicing.CreateInvoiceService")
}

func TestTUIDisplayViolationsCleanRun(t *testing.T) {
	var out bytes.Buffer

	ui := NewTUI(&out)

	require.NoError(t, ui.DisplayViolations(context.Background(), nil, 3))

	assert.Contains(t, out.String(), "checked 3 modules, no boundary violations")
}
