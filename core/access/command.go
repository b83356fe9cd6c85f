package access

import (
	"encoding/json"
	"fmt"
)

type CommandKind string

const (
	CmdToggleModule    CommandKind = "toggle_module"
	CmdToggleSubModule CommandKind = "toggle_submodule"
	CmdSetPermission   CommandKind = "set_permission"
	CmdApplyProfile    CommandKind = "apply_profile"
)

func CommandKinds() []CommandKind {
	return []CommandKind{CmdToggleModule, CmdToggleSubModule, CmdSetPermission, CmdApplyProfile}
}

// Command is one edit of the tree. The concrete types below are the only
// implementations.
type Command interface {
	Kind() CommandKind
	apply(tree Tree, catalog []ModuleDefinition) Tree
}

type ToggleModuleCommand struct {
	Module  string `json:"module"`
	Enabled bool   `json:"enabled"`
}

type ToggleSubModuleCommand struct {
	Module    string `json:"module"`
	SubModule string `json:"submodule"`
	Enabled   bool   `json:"enabled"`
}

type SetPermissionCommand struct {
	Module     string         `json:"module"`
	SubModule  string         `json:"submodule"`
	Permission PermissionKind `json:"permission"`
	Value      bool           `json:"value"`
}

type ApplyProfileCommand struct {
	Profile ProfileID `json:"profile"`
}

func (ToggleModuleCommand) Kind() CommandKind    { return CmdToggleModule }
func (ToggleSubModuleCommand) Kind() CommandKind { return CmdToggleSubModule }
func (SetPermissionCommand) Kind() CommandKind   { return CmdSetPermission }
func (ApplyProfileCommand) Kind() CommandKind    { return CmdApplyProfile }

func (c ToggleModuleCommand) apply(tree Tree, catalog []ModuleDefinition) Tree {
	def, ok := findDefinition(catalog, c.Module)
	if !ok {
		return tree.Clone()
	}
	return ToggleModule(tree, def, c.Enabled)
}

func (c ToggleSubModuleCommand) apply(tree Tree, catalog []ModuleDefinition) Tree {
	def, ok := findDefinition(catalog, c.Module)
	if !ok {
		return tree.Clone()
	}
	return ToggleSubModule(tree, def, c.SubModule, c.Enabled)
}

func (c SetPermissionCommand) apply(tree Tree, catalog []ModuleDefinition) Tree {
	if _, ok := findDefinition(catalog, c.Module); !ok {
		return tree.Clone()
	}
	return SetPermission(tree, c.Module, c.SubModule, c.Permission, c.Value)
}

func (c ApplyProfileCommand) apply(_ Tree, catalog []ModuleDefinition) Tree {
	return ApplyProfile(c.Profile, catalog)
}

// Apply runs cmd against tree. Module keys are resolved against catalog, so a
// module outside the (allow-listed) catalog is never mutated.
func Apply(tree Tree, catalog []ModuleDefinition, cmd Command) Tree {
	if cmd == nil {
		return tree.Clone()
	}
	return cmd.apply(tree, catalog)
}

// ApplyAll runs cmds in order.
func ApplyAll(tree Tree, catalog []ModuleDefinition, cmds ...Command) Tree {
	out := tree.Clone()
	for _, cmd := range cmds {
		out = Apply(out, catalog, cmd)
	}
	return out
}

func findDefinition(catalog []ModuleDefinition, key string) (ModuleDefinition, bool) {
	for _, def := range catalog {
		if def.Key == key {
			return def, true
		}
	}
	return ModuleDefinition{}, false
}

type envelope struct {
	Type       CommandKind    `json:"type"`
	Module     string         `json:"module,omitempty"`
	SubModule  string         `json:"submodule,omitempty"`
	Enabled    *bool          `json:"enabled,omitempty"`
	Permission PermissionKind `json:"permission,omitempty"`
	Value      *bool          `json:"value,omitempty"`
	Profile    ProfileID      `json:"profile,omitempty"`
}

// DecodeCommand parses the JSON envelope {"type": "...", ...}.
func DecodeCommand(raw []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}
	switch env.Type {
	case CmdToggleModule:
		if env.Module == "" || env.Enabled == nil {
			return nil, fmt.Errorf("%s: module and enabled are required: %w", env.Type, ErrInvalidCommand)
		}
		return ToggleModuleCommand{Module: env.Module, Enabled: *env.Enabled}, nil
	case CmdToggleSubModule:
		if env.Module == "" || env.SubModule == "" || env.Enabled == nil {
			return nil, fmt.Errorf("%s: module, submodule and enabled are required: %w", env.Type, ErrInvalidCommand)
		}
		return ToggleSubModuleCommand{Module: env.Module, SubModule: env.SubModule, Enabled: *env.Enabled}, nil
	case CmdSetPermission:
		kind, err := ParsePermissionKind(string(env.Permission))
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", env.Type, env.Permission, err)
		}
		if env.Module == "" || env.SubModule == "" || env.Value == nil {
			return nil, fmt.Errorf("%s: module, submodule and value are required: %w", env.Type, ErrInvalidCommand)
		}
		return SetPermissionCommand{Module: env.Module, SubModule: env.SubModule, Permission: kind, Value: *env.Value}, nil
	case CmdApplyProfile:
		id, err := ParseProfile(string(env.Profile))
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", env.Type, env.Profile, err)
		}
		return ApplyProfileCommand{Profile: id}, nil
	default:
		return nil, fmt.Errorf("%q: %w", env.Type, ErrUnknownCommand)
	}
}

// EncodeCommand is the inverse of DecodeCommand.
func EncodeCommand(cmd Command) ([]byte, error) {
	env := envelope{}
	switch c := cmd.(type) {
	case ToggleModuleCommand:
		env = envelope{Type: c.Kind(), Module: c.Module, Enabled: boolPtr(c.Enabled)}
	case ToggleSubModuleCommand:
		env = envelope{Type: c.Kind(), Module: c.Module, SubModule: c.SubModule, Enabled: boolPtr(c.Enabled)}
	case SetPermissionCommand:
		env = envelope{Type: c.Kind(), Module: c.Module, SubModule: c.SubModule, Permission: c.Permission, Value: boolPtr(c.Value)}
	case ApplyProfileCommand:
		env = envelope{Type: c.Kind(), Profile: c.Profile}
	default:
		return nil, ErrUnknownCommand
	}
	return json.Marshal(env)
}

func boolPtr(v bool) *bool {
	return &v
}
