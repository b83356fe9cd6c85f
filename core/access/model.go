package access

// ToggleModule enables or disables a whole module.
//
// Disabling keeps the module and its submodules in the tree but disables every
// submodule and clears its permissions. Enabling a module that is not yet in the
// tree inserts it with every catalog submodule enabled with view only. Enabling a
// module that is already present returns the tree unchanged.
func ToggleModule(tree Tree, def ModuleDefinition, enabled bool) Tree {
	out := tree.Clone()
	i := out.index(def.Key)
	if !enabled {
		if i < 0 {
			return out
		}
		m := &out[i]
		m.Enabled = false
		for j := range m.SubModules {
			m.SubModules[j].Enabled = false
			m.SubModules[j].Permissions = Permission{}
		}
		return out
	}
	if i >= 0 {
		return out
	}
	return append(out, newModuleState(def, true, func(sd SubModuleDefinition) SubModuleState {
		return subState(sd, true, viewOnly())
	}))
}

// ToggleSubModule enables or disables one submodule and resynchronizes the
// parent module's enabled flag.
func ToggleSubModule(tree Tree, def ModuleDefinition, subKey string, enabled bool) Tree {
	out := tree.Clone()
	i := out.index(def.Key)
	if i < 0 {
		if !enabled {
			return out
		}
		if _, ok := def.subModule(subKey); !ok {
			return out
		}
		return append(out, newModuleState(def, true, func(sd SubModuleDefinition) SubModuleState {
			if sd.Key == subKey {
				return subState(sd, true, viewOnly())
			}
			return subState(sd, false, Permission{})
		}))
	}

	m := &out[i]
	j := m.subIndex(subKey)
	if j < 0 {
		sd, ok := def.subModule(subKey)
		if !ok {
			return out
		}
		m.SubModules = append(m.SubModules, subState(sd, false, Permission{}))
		j = len(m.SubModules) - 1
	}
	s := &m.SubModules[j]
	switch {
	case enabled && !s.Enabled:
		s.Enabled = true
		s.Permissions = viewOnly()
	case !enabled:
		s.Enabled = false
		s.Permissions = Permission{}
	}
	m.Enabled = m.anySubEnabled()
	return out
}

// SetPermission sets a single flag on an enabled submodule. Missing or disabled
// submodules leave the tree unchanged, so a disabled submodule never holds flags.
func SetPermission(tree Tree, moduleKey, subKey string, kind PermissionKind, value bool) Tree {
	out := tree.Clone()
	i := out.index(moduleKey)
	if i < 0 {
		return out
	}
	j := out[i].subIndex(subKey)
	if j < 0 {
		return out
	}
	s := &out[i].SubModules[j]
	if !s.Enabled {
		return out
	}
	s.Permissions = s.Permissions.With(kind, value)
	return out
}
