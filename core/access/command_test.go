package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCommand(t *testing.T) {
	cases := []struct {
		raw  string
		want Command
	}{
		{`{"type":"toggle_module","module":"estoque","enabled":false}`, ToggleModuleCommand{Module: "estoque"}},
		{`{"type":"toggle_submodule","module":"cadastro","submodule":"usuarios","enabled":true}`, ToggleSubModuleCommand{Module: "cadastro", SubModule: "usuarios", Enabled: true}},
		{`{"type":"set_permission","module":"cadastro","submodule":"usuarios","permission":"admin","value":true}`, SetPermissionCommand{Module: "cadastro", SubModule: "usuarios", Permission: PermAdmin, Value: true}},
		{`{"type":"apply_profile","profile":"Viewer"}`, ApplyProfileCommand{Profile: ProfileViewer}},
	}
	for _, tc := range cases {
		got, err := DecodeCommand([]byte(tc.raw))
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestDecodeCommandErrors(t *testing.T) {
	_, err := DecodeCommand([]byte(`{"type":"rename_module"}`))
	assert.True(t, errors.Is(err, ErrUnknownCommand))

	_, err = DecodeCommand([]byte(`{"type":"toggle_module","module":"estoque"}`))
	assert.True(t, errors.Is(err, ErrInvalidCommand))

	_, err = DecodeCommand([]byte(`{"type":"set_permission","module":"a","submodule":"b","permission":"export","value":true}`))
	assert.True(t, errors.Is(err, ErrUnknownPermission))

	_, err = DecodeCommand([]byte(`{"type":"apply_profile","profile":"root"}`))
	assert.True(t, errors.Is(err, ErrUnknownProfile))

	_, err = DecodeCommand([]byte(`not json`))
	assert.Error(t, err)
}

func TestEncodeCommandRoundTrip(t *testing.T) {
	cmd := SetPermissionCommand{Module: "comercial", SubModule: "pedidos", Permission: PermEdit, Value: false}
	raw, err := EncodeCommand(cmd)
	require.NoError(t, err)
	got, err := DecodeCommand(raw)
	require.NoError(t, err)
	assert.Equal(t, cmd, got)
}

func TestApplyAllMatchesDirectCalls(t *testing.T) {
	catalog := testCatalog()
	got := ApplyAll(nil, catalog,
		ToggleSubModuleCommand{Module: "cadastro", SubModule: "usuarios", Enabled: true},
		SetPermissionCommand{Module: "cadastro", SubModule: "usuarios", Permission: PermCreate, Value: true},
		ToggleModuleCommand{Module: "estoque", Enabled: true},
		ToggleModuleCommand{Module: "estoque", Enabled: false},
	)

	want := ToggleSubModule(nil, def("cadastro"), "usuarios", true)
	want = SetPermission(want, "cadastro", "usuarios", PermCreate, true)
	want = ToggleModule(want, def("estoque"), true)
	want = ToggleModule(want, def("estoque"), false)
	assert.Equal(t, want, got)
}

func TestApplyIgnoresModulesOutsideCatalog(t *testing.T) {
	scoped := []ModuleDefinition{def("comercial")}
	tree := ApplyProfile(ProfileAdmin, testCatalog())

	got := Apply(tree, scoped, ToggleModuleCommand{Module: "cadastro", Enabled: false})
	assert.Equal(t, tree, got)

	got = Apply(tree, scoped, SetPermissionCommand{Module: "rh", SubModule: "colaboradores", Permission: PermAdmin, Value: false})
	assert.Equal(t, tree, got)

	got = Apply(tree, scoped, ToggleModuleCommand{Module: "comercial", Enabled: false})
	m, _ := got.Module("comercial")
	assert.False(t, m.Enabled)
}

func TestApplyProfileCommandUsesScopedCatalog(t *testing.T) {
	scoped := []ModuleDefinition{def("estoque"), def("rh")}
	got := Apply(nil, scoped, ApplyProfileCommand{Profile: ProfileOperator})
	require.Len(t, got, 2)
	assert.True(t, got[0].Enabled)
	assert.False(t, got[1].Enabled)
}
