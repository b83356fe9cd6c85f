package rbac

import (
	"testing"

	"backoffice-access/core/access"
	"backoffice-access/core/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyAllowed_BuiltInProfiles(t *testing.T) {
	p, err := NewPolicy()
	require.NoError(t, err)
	require.NoError(t, EnsureBuiltIn(p, catalog.DefaultModules()))

	assert.True(t, p.Allowed(ProfileSubject(access.ProfileAdmin), "rh.colaboradores.admin"))
	assert.False(t, p.Allowed(ProfileSubject(access.ProfileViewer), "cadastro.usuarios.edit"))
	assert.True(t, p.Allowed(ProfileSubject(access.ProfileViewer), "cadastro.usuarios.view"))
	assert.False(t, p.Allowed(ProfileSubject(access.ProfileSeller), "estoque.posicao.view"), "seller must not see estoque")
	assert.Len(t, p.Subjects(), 5)
}

func TestPolicyReplace_RebuildsEnforcer(t *testing.T) {
	p, err := NewPolicy()
	require.NoError(t, err)
	cadastro, _ := catalog.Default().Lookup("cadastro")
	tree := access.ToggleSubModule(nil, cadastro, "clientes", true)
	require.NoError(t, p.Replace("maria@matriz", tree))
	assert.True(t, p.Allowed("maria@matriz", "cadastro.clientes.view"))

	tree = access.ToggleModule(tree, cadastro, false)
	require.NoError(t, p.Replace("maria@matriz", tree))
	assert.False(t, p.Allowed("maria@matriz", "cadastro.clientes.view"), "grant must be gone after disabling the module")
}

func TestPolicyReplaceSubjectsDropsMissingOnes(t *testing.T) {
	p, _ := NewPolicy()
	viewer := access.ApplyProfile(access.ProfileViewer, catalog.DefaultModules())
	operator := access.ApplyProfile(access.ProfileOperator, catalog.DefaultModules())
	require.NoError(t, p.Replace("ana@matriz", viewer))
	require.NoError(t, p.Replace("ana@filial/02", viewer))
	require.NoError(t, p.Replace("anabela@matriz", viewer))

	require.NoError(t, p.ReplaceSubjects("ana@", map[string]access.Tree{"ana@filial/02": operator}))

	assert.Equal(t, []string{"ana@filial/02", "anabela@matriz"}, p.Subjects())
	assert.False(t, p.Allowed("ana@matriz", "cadastro.usuarios.view"))
	assert.True(t, p.Allowed("ana@filial/02", "estoque.posicao.edit"))
	assert.False(t, p.Allowed("ana@filial/02", "cadastro.usuarios.view"))
	assert.True(t, p.Allowed("anabela@matriz", "cadastro.usuarios.view"))
}

func TestPolicyReplaceSubjectsRejectsForeignSubject(t *testing.T) {
	p, _ := NewPolicy()
	err := p.ReplaceSubjects("ana@", map[string]access.Tree{"bruno@matriz": nil})
	assert.Error(t, err)
	assert.Empty(t, p.Subjects())
}

func TestPolicyRemoveAndUnknownSubject(t *testing.T) {
	p, _ := NewPolicy()
	require.NoError(t, p.Replace("a", access.ApplyProfile(access.ProfileViewer, catalog.DefaultModules())))
	require.NoError(t, p.Replace("b", access.ApplyProfile(access.ProfileOperator, catalog.DefaultModules())))

	require.NoError(t, p.Remove("a"))
	assert.False(t, p.Allowed("a", "estoque.posicao.view"), "removed subject must have no grants")
	assert.True(t, p.Allowed("b", "estoque.posicao.edit"))
	assert.False(t, p.Allowed("b", "not-a-permission"))
	assert.NoError(t, p.Remove("nobody"))
}

func TestPermissionsFor_SortedUnique(t *testing.T) {
	p, _ := NewPolicy()
	estoque, _ := catalog.Default().Lookup("estoque")
	tree := access.ToggleSubModule(nil, estoque, "posicao", true)
	tree = access.SetPermission(tree, "estoque", "posicao", access.PermEdit, true)
	require.NoError(t, p.Replace("joao", tree))

	assert.Equal(t, []Permission{"estoque.posicao.edit", "estoque.posicao.view"}, p.PermissionsFor("joao"))
}
