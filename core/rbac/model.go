package rbac

import (
	"strings"

	"backoffice-access/core/access"
)

// Permission is a flattened grant: "module.submodule.action".
type Permission string

// NewPermission joins the parts of a grant name.
func NewPermission(module, subModule string, kind access.PermissionKind) Permission {
	return Permission(module + "." + subModule + "." + string(kind))
}

// Split breaks p into its object ("module.submodule") and action.
func (p Permission) Split() (object string, action access.PermissionKind, ok bool) {
	raw := string(p)
	i := strings.LastIndex(raw, ".")
	if i <= 0 || i == len(raw)-1 {
		return "", "", false
	}
	object = raw[:i]
	if !strings.Contains(object, ".") {
		return "", "", false
	}
	kind, err := access.ParsePermissionKind(raw[i+1:])
	if err != nil {
		return "", "", false
	}
	return object, kind, true
}

// Grants lists the permissions held by tree: every true flag of every enabled
// submodule of an enabled module.
func Grants(tree access.Tree) []Permission {
	var out []Permission
	for _, m := range tree {
		if !m.Enabled {
			continue
		}
		for _, s := range m.SubModules {
			if !s.Enabled {
				continue
			}
			for _, k := range s.Permissions.Granted() {
				out = append(out, NewPermission(m.Key, s.Key, k))
			}
		}
	}
	return out
}

// AllPermissions enumerates every grant the catalog can express.
func AllPermissions(catalog []access.ModuleDefinition) []Permission {
	var out []Permission
	for _, m := range catalog {
		for _, s := range m.SubModules {
			for _, k := range access.PermissionKinds() {
				out = append(out, NewPermission(m.Key, s.Key, k))
			}
		}
	}
	return out
}

// IsKnownPermission reports whether p names a submodule of catalog and a valid action.
func IsKnownPermission(catalog []access.ModuleDefinition, p Permission) bool {
	object, _, ok := p.Split()
	if !ok {
		return false
	}
	for _, m := range catalog {
		for _, s := range m.SubModules {
			if m.Key+"."+s.Key == object {
				return true
			}
		}
	}
	return false
}
