package access

// CountEnabledModules counts modules with the enabled flag set.
func CountEnabledModules(tree Tree) int {
	n := 0
	for _, m := range tree {
		if m.Enabled {
			n++
		}
	}
	return n
}

// CountActivePermissions sums the true flags over every submodule of moduleKey.
func CountActivePermissions(tree Tree, moduleKey string) int {
	m, ok := tree.Module(moduleKey)
	if !ok {
		return 0
	}
	n := 0
	for _, s := range m.SubModules {
		n += s.Permissions.Count()
	}
	return n
}

// CountEnabledSubModules counts the enabled submodules of moduleKey; 0 when absent.
func CountEnabledSubModules(tree Tree, moduleKey string) int {
	m, ok := tree.Module(moduleKey)
	if !ok {
		return 0
	}
	n := 0
	for _, s := range m.SubModules {
		if s.Enabled {
			n++
		}
	}
	return n
}

// PermissionsByType counts, per kind, the (module, submodule) pairs holding that
// flag. Every kind is present in the result, zero included.
func PermissionsByType(tree Tree) map[PermissionKind]int {
	out := make(map[PermissionKind]int, len(permissionKinds))
	for _, k := range permissionKinds {
		out[k] = 0
	}
	for _, m := range tree {
		for _, s := range m.SubModules {
			for _, k := range permissionKinds {
				if s.Permissions.Has(k) {
					out[k]++
				}
			}
		}
	}
	return out
}

type ModuleSummary struct {
	Key               string `json:"key"`
	Name              string `json:"name"`
	Enabled           bool   `json:"enabled"`
	EnabledSubModules int    `json:"enabled_sub_modules"`
	TotalSubModules   int    `json:"total_sub_modules"`
	ActivePermissions int    `json:"active_permissions"`
}

// Summary is what the access summary view renders.
type Summary struct {
	EnabledModules int                    `json:"enabled_modules"`
	TotalModules   int                    `json:"total_modules"`
	Modules        []ModuleSummary        `json:"modules"`
	ByType         map[PermissionKind]int `json:"by_type"`
}

func Summarize(tree Tree) Summary {
	sum := Summary{
		EnabledModules: CountEnabledModules(tree),
		TotalModules:   len(tree),
		Modules:        make([]ModuleSummary, 0, len(tree)),
		ByType:         PermissionsByType(tree),
	}
	for _, m := range tree {
		sum.Modules = append(sum.Modules, ModuleSummary{
			Key:               m.Key,
			Name:              m.Name,
			Enabled:           m.Enabled,
			EnabledSubModules: CountEnabledSubModules(tree, m.Key),
			TotalSubModules:   len(m.SubModules),
			ActivePermissions: CountActivePermissions(tree, m.Key),
		})
	}
	return sum
}
