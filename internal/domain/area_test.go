package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "arealint.dev/pkg/arealint/internal/model"
)

func buildSet(t *testing.T, mods ...*m.Module) *m.ModuleSet {
	t.Helper()

	set := m.NewModuleSet()

	for _, mod := range mods {
		_, added := set.Add(mod)
		require.True(t, added, "duplicate module %s in test setup", mod.Name)
	}

	return set
}

func TestResolveAreas(t *testing.T) {
	set := buildSet(t,
		&m.Module{Name: "Invoicing", Visibility: m.VisibilityPublic},
		&m.Module{Name: "Invoicing.Invoice", Visibility: m.VisibilityPublic},
		&m.Module{Name: "Invoicing.Invoice.GenerateNumber", Visibility: m.VisibilityPrivate},
		&m.Module{Name: "Invoicing.CreateInvoiceService", Visibility: m.VisibilityPrivate},
		&m.Module{Name: "Sales", Visibility: m.VisibilityPublic},
	)

	ResolveAreas(set)

	tests := []struct {
		module string
		want   string
	}{
		{"Invoicing", "Invoicing"},
		{"Invoicing.Invoice", "Invoicing.Invoice"},
		{"Invoicing.Invoice.GenerateNumber", "Invoicing.Invoice"},
		{"Invoicing.CreateInvoiceService", "Invoicing"},
		{"Sales", "Sales"},
	}

	for _, tt := range tests {
		mod, ok := set.Get(tt.module)
		require.True(t, ok)
		assert.Equal(t, tt.want, mod.Area, "area of %s", tt.module)
	}
}

func TestResolveAreaFallsBackToRootSegment(t *testing.T) {
	// No ancestor of the module is present in the set at all; the top-level
	// segment is the boundary of last resort.
	set := buildSet(t,
		&m.Module{Name: "Warehouse.Picking.Optimizer", Visibility: m.VisibilityPrivate},
	)

	ResolveAreas(set)

	mod, _ := set.Get("Warehouse.Picking.Optimizer")
	assert.Equal(t, "Warehouse", mod.Area)
}

func TestAreaIsAlwaysPrefixOfName(t *testing.T) {
	set := buildSet(t,
		&m.Module{Name: "A", Visibility: m.VisibilityPublic},
		&m.Module{Name: "A.B", Visibility: m.VisibilityUndetermined},
		&m.Module{Name: "A.B.C", Visibility: m.VisibilityPrivate},
		&m.Module{Name: "A.B.C.D", Visibility: m.VisibilityPublic},
		&m.Module{Name: "Z.Y", Visibility: m.VisibilityPrivate},
	)

	ResolveAreas(set)

	for _, mod := range set.Modules() {
		require.NotEmpty(t, mod.Area, "area of %s must be defined", mod.Name)
		assert.True(t,
			mod.Name == mod.Area || strings.HasPrefix(mod.Name, mod.Area+"."),
			"area %s is not a prefix of %s", mod.Area, mod.Name)
	}
}
