package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"backoffice-access/core/access"
	"backoffice-access/core/utils"
	"gopkg.in/yaml.v3"
)

var ErrInvalidCatalog = errors.New("invalid module catalog")

// Registry is the read-only module catalog of the application.
type Registry struct {
	modules []access.ModuleDefinition
}

func NewRegistry(modules []access.ModuleDefinition) (*Registry, error) {
	if err := validate(modules); err != nil {
		return nil, err
	}
	return &Registry{modules: cloneModules(modules)}, nil
}

func Default() *Registry {
	return &Registry{modules: DefaultModules()}
}

type fileFormat struct {
	Modules []access.ModuleDefinition `yaml:"modules"`
}

// Load reads a YAML catalog. An empty path yields the built-in catalog.
func Load(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Registry, error) {
	var f fileFormat
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewRegistry(f.Modules)
}

func validate(modules []access.ModuleDefinition) error {
	if len(modules) == 0 {
		return fmt.Errorf("%w: no modules", ErrInvalidCatalog)
	}
	seen := map[string]struct{}{}
	for _, m := range modules {
		key := m.Key
		if utils.ValidateKey(key) != nil {
			return fmt.Errorf("%w: bad module key %q", ErrInvalidCatalog, m.Key)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate module %q", ErrInvalidCatalog, key)
		}
		seen[key] = struct{}{}
		subs := map[string]struct{}{}
		for _, s := range m.SubModules {
			sk := s.Key
			if utils.ValidateKey(sk) != nil {
				return fmt.Errorf("%w: bad submodule key %q in %s", ErrInvalidCatalog, s.Key, key)
			}
			if _, dup := subs[sk]; dup {
				return fmt.Errorf("%w: duplicate submodule %s.%s", ErrInvalidCatalog, key, sk)
			}
			subs[sk] = struct{}{}
		}
	}
	return nil
}

func (r *Registry) Modules() []access.ModuleDefinition {
	if r == nil {
		return nil
	}
	return cloneModules(r.modules)
}

func (r *Registry) Lookup(key string) (access.ModuleDefinition, bool) {
	if r == nil {
		return access.ModuleDefinition{}, false
	}
	for _, m := range r.modules {
		if m.Key == key {
			d := cloneModules([]access.ModuleDefinition{m})
			return d[0], true
		}
	}
	return access.ModuleDefinition{}, false
}

// Filter applies an allow-list (modulosDisponiveis). An empty allow-list means
// no restriction; unknown keys are ignored and catalog order is kept.
func (r *Registry) Filter(allowed []string) []access.ModuleDefinition {
	if r == nil {
		return nil
	}
	set := NormalizeKeys(allowed)
	if len(set) == 0 {
		return r.Modules()
	}
	out := make([]access.ModuleDefinition, 0, len(set))
	for _, m := range r.modules {
		if _, ok := set[m.Key]; ok {
			out = append(out, m)
		}
	}
	return cloneModules(out)
}

// Scoped returns a registry narrowed by the allow-list.
func (r *Registry) Scoped(allowed []string) *Registry {
	return &Registry{modules: r.Filter(allowed)}
}

// NormalizeKeys lowercases and trims keys, dropping blanks.
func NormalizeKeys(keys []string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out[k] = struct{}{}
		}
	}
	return out
}

// SplitKeys parses a comma separated allow-list.
func SplitKeys(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
