package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameHelpers(t *testing.T) {
	assert.Equal(t, []string{"Invoicing", "Invoice", "GenerateNumber"}, Segments("Invoicing.Invoice.GenerateNumber"))
	assert.Equal(t, []string{"Invoicing"}, Segments("Invoicing"))

	assert.Equal(t, "Invoicing", RootSegment("Invoicing.Invoice.GenerateNumber"))
	assert.Equal(t, "Invoicing", RootSegment("Invoicing"))

	assert.Equal(t, "Invoicing.Invoice", ParentName("Invoicing.Invoice.GenerateNumber"))
	assert.Equal(t, "", ParentName("Invoicing"))
}

func TestSourceLocationString(t *testing.T) {
	loc := SourceLocation{File: "lib/sales.ex", Line: 4}
	assert.Equal(t, "lib/sales.ex:4", loc.String())
}

func TestModuleSetAdd(t *testing.T) {
	set := NewModuleSet()

	first := &Module{Name: "Invoicing", Location: SourceLocation{File: "lib/a.ex", Line: 1}}
	added, ok := set.Add(first)
	assert.True(t, ok)
	assert.Same(t, first, added)

	dup := &Module{Name: "Invoicing", Location: SourceLocation{File: "lib/b.ex", Line: 1}}
	existing, ok := set.Add(dup)
	assert.False(t, ok)
	assert.Same(t, first, existing, "duplicate add must return the first definition")

	assert.Equal(t, 1, set.Len())

	got, ok := set.Get("Invoicing")
	assert.True(t, ok)
	assert.Same(t, first, got)

	_, ok = set.Get("Sales")
	assert.False(t, ok)
}

func TestModuleSetPreservesInsertionOrder(t *testing.T) {
	set := NewModuleSet()

	for _, name := range []string{"Zoo", "Alpha", "Mid"} {
		set.Add(&Module{Name: name})
	}

	var names []string
	for _, mod := range set.Modules() {
		names = append(names, mod.Name)
	}

	assert.Equal(t, []string{"Zoo", "Alpha", "Mid"}, names)
}
