package rbac

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"backoffice-access/core/access"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Policy answers "may subject do action on module.submodule" from the access
// trees published for each subject.
type Policy struct {
	mu       sync.RWMutex
	grants   map[string][]Permission
	enforcer *casbin.Enforcer
}

func NewPolicy() (*Policy, error) {
	p := &Policy{grants: map[string][]Permission{}}
	if err := p.rebuild(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Policy) Allowed(subject string, perm Permission) bool {
	object, action, ok := perm.Split()
	if !ok {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.enforcer == nil {
		return false
	}
	allowed, err := p.enforcer.Enforce(subject, object, string(action))
	return err == nil && allowed
}

// Replace publishes tree as the full grant set of subject.
func (p *Policy) Replace(subject string, tree access.Tree) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.grants[subject] = Grants(tree)
	return p.rebuild()
}

// ReplaceSubjects makes trees the full grant set of every subject starting with
// prefix: subjects under prefix that are missing from trees are dropped. Every
// key of trees must start with prefix.
func (p *Policy) ReplaceSubjects(prefix string, trees map[string]access.Tree) error {
	for subject := range trees {
		if !strings.HasPrefix(subject, prefix) {
			return fmt.Errorf("subject %q outside %q", subject, prefix)
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for subject := range p.grants {
		if _, keep := trees[subject]; !keep && strings.HasPrefix(subject, prefix) {
			delete(p.grants, subject)
		}
	}
	for subject, tree := range trees {
		p.grants[subject] = Grants(tree)
	}
	return p.rebuild()
}

// Remove revokes every grant of subject.
func (p *Policy) Remove(subject string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.grants[subject]; !ok {
		return nil
	}
	delete(p.grants, subject)
	return p.rebuild()
}

// PermissionsFor returns the sorted grants of subject.
func (p *Policy) PermissionsFor(subject string) []Permission {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := append([]Permission(nil), p.grants[subject]...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Subjects lists every subject with published grants, sorted.
func (p *Policy) Subjects() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	keys := make([]string, 0, len(p.grants))
	for k := range p.grants {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// rebuild recreates the enforcer from p.grants. Callers hold p.mu.
func (p *Policy) rebuild() error {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return fmt.Errorf("casbin model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return fmt.Errorf("casbin enforcer: %w", err)
	}
	var rules [][]string
	seen := map[[3]string]struct{}{}
	for subject, perms := range p.grants {
		for _, perm := range perms {
			object, action, ok := perm.Split()
			if !ok {
				continue
			}
			key := [3]string{subject, object, string(action)}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			rules = append(rules, key[:])
		}
	}
	if len(rules) > 0 {
		if _, err := e.AddPolicies(rules); err != nil {
			return fmt.Errorf("casbin policies: %w", err)
		}
	}
	p.enforcer = e
	return nil
}
