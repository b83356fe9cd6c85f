package access

// PermissionKind names one of the five flags of a Permission.
type PermissionKind string

const (
	PermView   PermissionKind = "view"
	PermCreate PermissionKind = "create"
	PermEdit   PermissionKind = "edit"
	PermDelete PermissionKind = "delete"
	PermAdmin  PermissionKind = "admin"
)

var permissionKinds = []PermissionKind{PermView, PermCreate, PermEdit, PermDelete, PermAdmin}

// PermissionKinds returns the five kinds in display order.
func PermissionKinds() []PermissionKind {
	out := make([]PermissionKind, len(permissionKinds))
	copy(out, permissionKinds)
	return out
}

// ParsePermissionKind maps a lowercase kind name to its PermissionKind.
func ParsePermissionKind(raw string) (PermissionKind, error) {
	for _, k := range permissionKinds {
		if string(k) == raw {
			return k, nil
		}
	}
	return "", ErrUnknownPermission
}

type Permission struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
	Admin  bool `json:"admin"`
}

func viewOnly() Permission {
	return Permission{View: true}
}

func (p Permission) Has(kind PermissionKind) bool {
	switch kind {
	case PermView:
		return p.View
	case PermCreate:
		return p.Create
	case PermEdit:
		return p.Edit
	case PermDelete:
		return p.Delete
	case PermAdmin:
		return p.Admin
	default:
		return false
	}
}

// With returns a copy of p with the flag for kind set to value.
// Unknown kinds leave p unchanged.
func (p Permission) With(kind PermissionKind, value bool) Permission {
	switch kind {
	case PermView:
		p.View = value
	case PermCreate:
		p.Create = value
	case PermEdit:
		p.Edit = value
	case PermDelete:
		p.Delete = value
	case PermAdmin:
		p.Admin = value
	}
	return p
}

// Count is the number of true flags.
func (p Permission) Count() int {
	n := 0
	for _, k := range permissionKinds {
		if p.Has(k) {
			n++
		}
	}
	return n
}

// Granted lists the true flags in display order.
func (p Permission) Granted() []PermissionKind {
	var out []PermissionKind
	for _, k := range permissionKinds {
		if p.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

type SubModuleDefinition struct {
	Key  string `json:"key" yaml:"key"`
	Name string `json:"name" yaml:"name"`
}

// ModuleDefinition is a catalog entry. The catalog is read-only to this package.
type ModuleDefinition struct {
	Key        string                `json:"key" yaml:"key"`
	Name       string                `json:"name" yaml:"name"`
	Icon       string                `json:"icon,omitempty" yaml:"icon"`
	SubModules []SubModuleDefinition `json:"sub_modules" yaml:"sub_modules"`
}

func (d ModuleDefinition) subModule(key string) (SubModuleDefinition, bool) {
	for _, s := range d.SubModules {
		if s.Key == key {
			return s, true
		}
	}
	return SubModuleDefinition{}, false
}

type SubModuleState struct {
	Key         string     `json:"key"`
	Name        string     `json:"name"`
	Enabled     bool       `json:"enabled"`
	Permissions Permission `json:"permissions"`
}

type ModuleState struct {
	Key        string           `json:"key"`
	Name       string           `json:"name"`
	Icon       string           `json:"icon,omitempty"`
	Enabled    bool             `json:"enabled"`
	SubModules []SubModuleState `json:"sub_modules"`
}

func (m ModuleState) clone() ModuleState {
	out := m
	out.SubModules = make([]SubModuleState, len(m.SubModules))
	copy(out.SubModules, m.SubModules)
	return out
}

func (m ModuleState) subIndex(key string) int {
	for i := range m.SubModules {
		if m.SubModules[i].Key == key {
			return i
		}
	}
	return -1
}

// SubModule returns the state for key, if present.
func (m ModuleState) SubModule(key string) (SubModuleState, bool) {
	if i := m.subIndex(key); i >= 0 {
		return m.SubModules[i], true
	}
	return SubModuleState{}, false
}

func (m ModuleState) anySubEnabled() bool {
	for _, s := range m.SubModules {
		if s.Enabled {
			return true
		}
	}
	return false
}

// Tree is the module access tree: module keys are unique, order is insertion order.
type Tree []ModuleState

// Clone returns a deep copy; operations in this package never share backing arrays with their input.
func (t Tree) Clone() Tree {
	if t == nil {
		return Tree{}
	}
	out := make(Tree, len(t))
	for i := range t {
		out[i] = t[i].clone()
	}
	return out
}

func (t Tree) index(key string) int {
	for i := range t {
		if t[i].Key == key {
			return i
		}
	}
	return -1
}

// Module returns the state for key, if present.
func (t Tree) Module(key string) (ModuleState, bool) {
	if i := t.index(key); i >= 0 {
		return t[i], true
	}
	return ModuleState{}, false
}

func newModuleState(def ModuleDefinition, enabled bool, sub func(SubModuleDefinition) SubModuleState) ModuleState {
	m := ModuleState{
		Key:        def.Key,
		Name:       def.Name,
		Icon:       def.Icon,
		Enabled:    enabled,
		SubModules: make([]SubModuleState, 0, len(def.SubModules)),
	}
	for _, sd := range def.SubModules {
		m.SubModules = append(m.SubModules, sub(sd))
	}
	return m
}

func subState(def SubModuleDefinition, enabled bool, perms Permission) SubModuleState {
	return SubModuleState{Key: def.Key, Name: def.Name, Enabled: enabled, Permissions: perms}
}
