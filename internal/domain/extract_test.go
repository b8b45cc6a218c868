package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "arealint.dev/pkg/arealint/internal/model"
	"arealint.dev/pkg/arealint/internal/syntax"
)

func parseUnit(t *testing.T, path, src string) *syntax.SourceUnit {
	t.Helper()

	unit, err := syntax.Parse(m.Path(path), []byte(src))
	require.NoError(t, err)

	return unit
}

func descriptorByName(t *testing.T, mods []*m.Module, name string) *m.Module {
	t.Helper()

	for _, mod := range mods {
		if mod.Name == name {
			return mod
		}
	}

	t.Fatalf("descriptor %s not found", name)

	return nil
}

func TestDescribeUnitFindsNestedModules(t *testing.T) {
	unit := parseUnit(t, "lib/invoicing.ex", `
defmodule Invoicing do
  defmodule Invoice do
    defmodule GenerateNumber do
    end
  end
end
`)

	mods := DescribeUnit(unit)
	require.Len(t, mods, 3)

	assert.Equal(t, "Invoicing", mods[0].Name)
	assert.Equal(t, "Invoicing.Invoice", mods[1].Name)
	assert.Equal(t, "Invoicing.Invoice.GenerateNumber", mods[2].Name)

	for _, mod := range mods {
		assert.Equal(t, m.Path("lib/invoicing.ex"), mod.Location.File)
		assert.NotZero(t, mod.Location.Line)
	}
}

func TestExtractDepsFromAliasesAndCalls(t *testing.T) {
	unit := parseUnit(t, "lib/sales.ex", `
defmodule Sales do
  @moduledoc "sales"

  alias Invoicing.CreateInvoiceService

  def close(order) do
    CreateInvoiceService.call(order)
    Billing.post(order)
  end
end
`)

	mods := DescribeUnit(unit)
	sales := descriptorByName(t, mods, "Sales")

	assert.Equal(t, []string{"Billing", "Invoicing.CreateInvoiceService"}, sales.Deps)
}

func TestExtractDepsAliasSuffixDedup(t *testing.T) {
	// A direct reference ending in an aliased short name is already captured
	// by the alias; no extra entry appears.
	unit := parseUnit(t, "lib/a.ex", `
defmodule A do
  alias Invoicing.Invoice

  def go do
    Invoice.from_order(nil)
    Other.Invoice.from_order(nil)
  end
end
`)

	mods := DescribeUnit(unit)
	a := descriptorByName(t, mods, "A")

	assert.Equal(t, []string{"Invoicing.Invoice"}, a.Deps)
}

func TestExtractDepsSelfReferencesDropped(t *testing.T) {
	unit := parseUnit(t, "lib/a.ex", `
defmodule Invoicing do
  def schedule do
    __MODULE__.create_invoice(nil)
  end

  def direct do
    Invoicing.create_invoice(nil)
  end
end
`)

	mods := DescribeUnit(unit)
	inv := descriptorByName(t, mods, "Invoicing")

	assert.Empty(t, inv.Deps, "self references must not appear in the dependency set")
}

func TestExtractDepsTrimsFunctionSegments(t *testing.T) {
	unit := parseUnit(t, "lib/a.ex", `
defmodule Sales do
  @moduledoc "sales"

  def run do
    Invoicing.create_invoice(nil)
  end
end
`)

	mods := DescribeUnit(unit)
	sales := descriptorByName(t, mods, "Sales")

	assert.Equal(t, []string{"Invoicing"}, sales.Deps)
}

func TestExtractDepsDeduplicated(t *testing.T) {
	unit := parseUnit(t, "lib/a.ex", `
defmodule Sales do
  def one do
    Invoicing.create_invoice(1)
  end

  def two do
    Invoicing.create_invoice(2)
    Invoicing.cancel_invoice(2)
  end
end
`)

	mods := DescribeUnit(unit)
	sales := descriptorByName(t, mods, "Sales")

	assert.Equal(t, []string{"Invoicing"}, sales.Deps)
}

func TestNormalizeRef(t *testing.T) {
	tests := []struct {
		name string
		own  string
		ref  string
		want string
	}{
		{"plain module", "X", "Invoicing.Invoice", "Invoicing.Invoice"},
		{"call trimmed", "X", "Invoicing.create_invoice", "Invoicing"},
		{"deep call trimmed", "X", "Invoicing.Invoice.GenerateNumber.next", "Invoicing.Invoice.GenerateNumber"},
		{"self token", "Invoicing", "__MODULE__", "Invoicing"},
		{"self chain", "Invoicing", "__MODULE__.helper", "Invoicing"},
		{"no module part", "X", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeRef(tt.own, tt.ref))
		})
	}
}
