package gojinja

// namespaceObject backs the `namespace(**kwargs)` global (spec §4.5 and
// glossary): a mutable object letting `{% set ns.attr = ... %}` escape
// the scope-write restriction that would otherwise make an inner `set`
// invisible to an outer scope (e.g. accumulating a flag across loop
// iterations).
type namespaceObject struct {
	m *orderedMap
}

func newNamespace() *namespaceObject {
	return &namespaceObject{m: newOrderedMap()}
}

func (n *namespaceObject) GetAttr(name string) (*Value, bool) { return n.m.Get(name) }

func (n *namespaceObject) SetAttr(name string, v *Value) bool {
	n.m.Set(name, v)
	return true
}

func (n *namespaceObject) GetItem(key *Value) (*Value, bool) { return n.m.Get(key.String()) }

func (n *namespaceObject) TryIter() (ValueIterator, bool) { return nil, false }

func (n *namespaceObject) Length() (int, bool) { return n.m.Len(), true }

func (n *namespaceObject) Call(args []*Value, kwargs map[string]*Value, state *State) (*Value, bool, error) {
	return nil, false, nil
}

// moduleObject is the Object capability an imported template renders
// into: its attributes are the top-level macros and variables bound in
// the module's own (fresh) State (spec §4.4, "Import").
type moduleObject struct {
	vars map[string]*Value
}

func (m *moduleObject) GetAttr(name string) (*Value, bool) {
	v, ok := m.vars[name]
	return v, ok
}

func (m *moduleObject) GetItem(key *Value) (*Value, bool) { return m.GetAttr(key.String()) }
func (m *moduleObject) TryIter() (ValueIterator, bool)    { return nil, false }
func (m *moduleObject) Length() (int, bool)               { return len(m.vars), false }
func (m *moduleObject) Call(args []*Value, kwargs map[string]*Value, state *State) (*Value, bool, error) {
	return nil, false, nil
}
