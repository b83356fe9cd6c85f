package access

// Normalize repairs a tree loaded from a persisted representation: duplicate
// module and submodule keys keep their first occurrence, disabled submodules
// lose their permissions and every module with submodules gets its enabled flag
// recomputed from them.
func Normalize(tree Tree) Tree {
	out := make(Tree, 0, len(tree))
	seen := map[string]struct{}{}
	for _, m := range tree {
		if _, dup := seen[m.Key]; dup || m.Key == "" {
			continue
		}
		seen[m.Key] = struct{}{}
		nm := m
		nm.SubModules = make([]SubModuleState, 0, len(m.SubModules))
		seenSub := map[string]struct{}{}
		for _, s := range m.SubModules {
			if _, dup := seenSub[s.Key]; dup || s.Key == "" {
				continue
			}
			seenSub[s.Key] = struct{}{}
			if !s.Enabled {
				s.Permissions = Permission{}
			}
			nm.SubModules = append(nm.SubModules, s)
		}
		if len(nm.SubModules) > 0 {
			nm.Enabled = nm.anySubEnabled()
		}
		out = append(out, nm)
	}
	return out
}

// SortByCatalog orders modules and their submodules by catalog position.
// Entries unknown to the catalog keep their relative order after the known ones.
func SortByCatalog(tree Tree, catalog []ModuleDefinition) Tree {
	src := tree.Clone()
	out := make(Tree, 0, len(src))
	used := make([]bool, len(src))
	for _, def := range catalog {
		i := src.index(def.Key)
		if i < 0 {
			continue
		}
		used[i] = true
		out = append(out, sortSubModules(src[i], def))
	}
	for i, m := range src {
		if !used[i] {
			out = append(out, m)
		}
	}
	return out
}

func sortSubModules(m ModuleState, def ModuleDefinition) ModuleState {
	subs := make([]SubModuleState, 0, len(m.SubModules))
	used := make([]bool, len(m.SubModules))
	for _, sd := range def.SubModules {
		j := m.subIndex(sd.Key)
		if j < 0 {
			continue
		}
		used[j] = true
		subs = append(subs, m.SubModules[j])
	}
	for j, s := range m.SubModules {
		if !used[j] {
			subs = append(subs, s)
		}
	}
	m.SubModules = subs
	return m
}

// Restrict keeps only the modules present in catalog, in catalog order. It is
// the display projection for an allow-listed catalog.
func Restrict(tree Tree, catalog []ModuleDefinition) Tree {
	sorted := SortByCatalog(tree, catalog)
	out := make(Tree, 0, len(sorted))
	for _, m := range sorted {
		if _, ok := findDefinition(catalog, m.Key); ok {
			out = append(out, m)
		}
	}
	return out
}
