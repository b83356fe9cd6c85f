package links

import (
	"backoffice-access/core/access"
	"backoffice-access/core/catalog"
)

// Editor is one editing session over a company link's access tree. Only modules
// in the link's allow-list are displayed or mutated.
type Editor struct {
	modules  []access.ModuleDefinition
	tree     access.Tree
	original string
}

func NewEditor(reg *catalog.Registry, link CompanyLink) *Editor {
	modules := reg.Filter(link.AvailableModules)
	tree := access.Restrict(access.Normalize(link.Access), modules)
	return &Editor{modules: modules, tree: tree, original: access.Fingerprint(tree)}
}

// Modules is the allow-listed catalog shown by the tree editor.
func (e *Editor) Modules() []access.ModuleDefinition {
	out := make([]access.ModuleDefinition, len(e.modules))
	copy(out, e.modules)
	return out
}

func (e *Editor) Apply(cmds ...access.Command) {
	e.tree = access.ApplyAll(e.tree, e.modules, cmds...)
}

func (e *Editor) Tree() access.Tree {
	return access.SortByCatalog(e.tree, e.modules)
}

func (e *Editor) Summary() access.Summary {
	return access.Summarize(e.Tree())
}

// Dirty reports whether the tree differs from the one the editor was opened with.
func (e *Editor) Dirty() bool {
	return access.Fingerprint(e.Tree()) != e.original
}

// Link returns link with the edited tree.
func (e *Editor) Link(link CompanyLink) CompanyLink {
	link.Access = e.Tree()
	return link
}
