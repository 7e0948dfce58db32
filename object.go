package gojinja

// Object is the capability protocol that distinguishes an Object-kind
// Value from a plain Map: attribute access, item access, iteration,
// length, and calling are each modeled as an independent capability a
// host type may or may not support, rather than through inheritance.
//
// Every method returns an "ok" boolean instead of raising: a capability
// that is unsupported (rather than merely empty) is reported by ok=false,
// letting the evaluator fall back to its default (e.g. Undefined for a
// missing attribute).
type Object interface {
	// GetAttr resolves a dotted-member lookup, e.g. `obj.name`.
	GetAttr(name string) (*Value, bool)

	// GetItem resolves a subscript lookup, e.g. `obj[key]`.
	GetItem(key *Value) (*Value, bool)

	// TryIter returns an iterator over the object's values, if iteration
	// is supported.
	TryIter() (ValueIterator, bool)

	// Length reports len(obj), if the object has a defined length.
	Length() (int, bool)

	// Call invokes the object as a callable. ok is false when the object
	// is not callable at all (as opposed to a call that failed, which is
	// reported through err).
	Call(args []*Value, kwargs map[string]*Value, state *State) (result *Value, ok bool, err error)
}

// MutableObject is the optional extension implemented by objects that
// support attribute assignment, namely the `namespace()` helper
// (spec §4.5) used to work around the scope-write restriction inside
// `{% set ns.attr = ... %}`.
type MutableObject interface {
	Object
	SetAttr(name string, val *Value) bool
}

// ValueIterator walks a sequence of Values one at a time.
type ValueIterator interface {
	Next() (*Value, bool)
}

// sliceIterator adapts a []*Value to ValueIterator, for an Object backed
// by a pre-materialized slice.
type sliceIterator struct {
	items []*Value
	pos   int
}

func newSliceIterator(items []*Value) *sliceIterator {
	return &sliceIterator{items: items}
}

func (it *sliceIterator) Next() (*Value, bool) {
	if it.pos >= len(it.items) {
		return nil, false
	}
	v := it.items[it.pos]
	it.pos++
	return v, true
}
