package rbac

import (
	"testing"

	"backoffice-access/core/access"
	"backoffice-access/core/catalog"
	"github.com/stretchr/testify/assert"
)

func TestIsKnownPermission(t *testing.T) {
	mods := catalog.DefaultModules()
	assert.True(t, IsKnownPermission(mods, "comercial.emprestimos.view"))
	assert.False(t, IsKnownPermission(mods, "comercial.view"), "module-level permission is unknown")
	assert.False(t, IsKnownPermission(mods, "comercial.emprestimos.export"))
	assert.False(t, IsKnownPermission(mods, "compras.pedidos.view"))
}

func TestPermissionSplit(t *testing.T) {
	obj, act, ok := Permission("rh.ferias.delete").Split()
	assert.True(t, ok)
	assert.Equal(t, "rh.ferias", obj)
	assert.Equal(t, access.PermDelete, act)
	for _, bad := range []Permission{"", "rh", "rh.delete", "rh.ferias.", "rh.ferias.print"} {
		_, _, ok := bad.Split()
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestGrantsSkipDisabledEntries(t *testing.T) {
	mods := catalog.DefaultModules()
	estoque, _ := catalog.Default().Lookup("estoque")
	tree := access.ApplyProfile(access.ProfileOperator, mods)
	tree = access.ToggleSubModule(tree, estoque, "inventario", false)
	tree = access.SetPermission(tree, "estoque", "inventario", access.PermView, true)

	got := Grants(tree)
	assert.Len(t, got, 6)
	assert.NotContains(t, got, Permission("estoque.inventario.view"), "disabled submodule must not grant")
}

func TestAllPermissionsCoversCatalog(t *testing.T) {
	mods := catalog.DefaultModules()
	subs := 0
	for _, m := range mods {
		subs += len(m.SubModules)
	}
	all := AllPermissions(mods)
	assert.Len(t, all, subs*5)
	for _, p := range all {
		assert.True(t, IsKnownPermission(mods, p), string(p))
	}
}
