// Package scopevar implements the scoped-variable manager of spec §4.2: a
// binding of vDOM node -> name -> variant, with lookup climbing the vDOM
// ancestor chain of a given node (not the live frame-stack spine, per the
// invariant in spec §4.2).
//
// Grounded on the teacher's two-tier module environment
// (github.com/phroun/pawscript src/module.go's Inherited/Module layering)
// simplified to the flatter per-node-manager model spec.md actually
// describes: one manager owns exactly the binds made at one vDOM node.
package scopevar

import (
	"github.com/purc-go/purc/variant"
	"github.com/purc-go/purc/vdom"
)

// Manager owns the name->variant bindings made at a single vDOM node.
type Manager struct {
	node  *vdom.Node
	binds map[string]*variant.Value
}

// registry maps vDOM nodes to their Manager, since not every node has one.
type Registry struct {
	managers map[*vdom.Node]*Manager
}

// NewRegistry creates an empty node->manager registry, one per coroutine
// (a coroutine's frame stack is the only thing that ever resolves names
// through it).
func NewRegistry() *Registry {
	return &Registry{managers: make(map[*vdom.Node]*Manager)}
}

// Create returns the Manager for node, allocating one if this is the first
// bind made at that node.
func (r *Registry) Create(node *vdom.Node) *Manager {
	if m, ok := r.managers[node]; ok {
		return m
	}
	m := &Manager{node: node, binds: make(map[string]*variant.Value)}
	r.managers[node] = m
	return m
}

// Destroy releases a node's manager and unrefs everything it bound. Call
// when the owning frame (or document) is torn down.
func (r *Registry) Destroy(node *vdom.Node) {
	m, ok := r.managers[node]
	if !ok {
		return
	}
	for _, v := range m.binds {
		variant.Unref(v)
	}
	delete(r.managers, node)
}

// Bind records name -> value at this manager's node, ref'ing value and
// unref'ing whatever name previously held there.
func (m *Manager) Bind(name string, value *variant.Value) {
	if old, ok := m.binds[name]; ok {
		variant.Unref(old)
	}
	m.binds[name] = variant.Ref(value)
}

// Lookup walks from node up through its vDOM ancestor chain (spec §4.2:
// "the ancestor chain at lookup time is the chain of the frame's scope vDOM
// node") and returns the first manager that owns name, without taking a
// new reference — callers that need the value to outlive the scope must
// Ref it themselves.
func (r *Registry) Lookup(node *vdom.Node, name string) (*variant.Value, bool) {
	for _, anc := range node.Ancestors() {
		if m, ok := r.managers[anc]; ok {
			if v, ok := m.binds[name]; ok {
				return v, true
			}
		}
	}
	return nil, false
}
