package access

import "strings"

type ProfileID string

const (
	ProfileAdmin    ProfileID = "admin"
	ProfileManager  ProfileID = "manager"
	ProfileSeller   ProfileID = "seller"
	ProfileOperator ProfileID = "operator"
	ProfileViewer   ProfileID = "viewer"
)

// Profile is a named bundle applied to a whole tree in one step.
// A nil Modules list targets every catalog module.
type Profile struct {
	ID          ProfileID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Modules     []string   `json:"modules,omitempty"`
	Permissions Permission `json:"permissions"`
}

func (p Profile) targets(moduleKey string) bool {
	if p.Modules == nil {
		return true
	}
	for _, k := range p.Modules {
		if k == moduleKey {
			return true
		}
	}
	return false
}

var editorPermissions = Permission{View: true, Create: true, Edit: true}

var profiles = []Profile{
	{
		ID:          ProfileAdmin,
		Name:        "Administrador",
		Description: "Acesso total a todos os módulos",
		Permissions: Permission{View: true, Create: true, Edit: true, Delete: true, Admin: true},
	},
	{
		ID:          ProfileManager,
		Name:        "Gerente",
		Description: "Gestão de todos os módulos, sem exclusão",
		Permissions: editorPermissions,
	},
	{
		ID:          ProfileSeller,
		Name:        "Vendedor",
		Description: "Comercial e cadastro",
		Modules:     []string{"comercial", "cadastro"},
		Permissions: editorPermissions,
	},
	{
		ID:          ProfileOperator,
		Name:        "Operador",
		Description: "Operação de estoque",
		Modules:     []string{"estoque"},
		Permissions: editorPermissions,
	},
	{
		ID:          ProfileViewer,
		Name:        "Visualizador",
		Description: "Somente consulta",
		Permissions: Permission{View: true},
	},
}

// Profiles lists the built-in profiles in selector order.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	for i, p := range profiles {
		out[i] = p
		if p.Modules != nil {
			out[i].Modules = append([]string(nil), p.Modules...)
		}
	}
	return out
}

// LookupProfile returns the built-in profile with id.
func LookupProfile(id ProfileID) (Profile, bool) {
	for _, p := range profiles {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}

// ParseProfile accepts any case and surrounding spaces.
func ParseProfile(raw string) (ProfileID, error) {
	id := ProfileID(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := LookupProfile(id); !ok {
		return "", ErrUnknownProfile
	}
	return id, nil
}

// EmptyTree is the catalog-shaped tree with everything disabled.
func EmptyTree(catalog []ModuleDefinition) Tree {
	out := make(Tree, 0, len(catalog))
	for _, def := range catalog {
		out = append(out, newModuleState(def, false, func(sd SubModuleDefinition) SubModuleState {
			return subState(sd, false, Permission{})
		}))
	}
	return out
}

// ApplyProfile builds a tree with one module per catalog entry. Modules targeted
// by the profile are enabled with every submodule carrying the profile's
// permission set; the rest stay disabled. Unknown profiles yield EmptyTree.
func ApplyProfile(id ProfileID, catalog []ModuleDefinition) Tree {
	p, ok := LookupProfile(id)
	if !ok {
		return EmptyTree(catalog)
	}
	out := make(Tree, 0, len(catalog))
	for _, def := range catalog {
		if !p.targets(def.Key) {
			out = append(out, newModuleState(def, false, func(sd SubModuleDefinition) SubModuleState {
				return subState(sd, false, Permission{})
			}))
			continue
		}
		out = append(out, newModuleState(def, true, func(sd SubModuleDefinition) SubModuleState {
			return subState(sd, true, p.Permissions)
		}))
	}
	return out
}
