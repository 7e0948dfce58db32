package gojinja

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind tags the closed sum of runtime variants a Value can hold (spec §3).
// Unlike the teacher's reflect.Value-backed Value, this is a genuine
// tagged union: payload fields below are only meaningful for the Kind
// that owns them.
type Kind int

const (
	KindUndefined Kind = iota
	KindNone
	KindBool
	KindInt
	KindFloat
	KindString
	KindSeq
	KindMap
	KindCallable
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSeq:
		return "seq"
	case KindMap:
		return "map"
	case KindCallable:
		return "callable"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Callable is the payload of a Callable-kind Value: macros, the injected
// `caller`, globals like range/cycler/joiner/namespace/dict, and
// user-registered functions are all represented this way.
type Callable func(args []*Value, kwargs map[string]*Value, state *State) (*Value, error)

// orderedMap backs the Map variant: insertion-ordered string keys, per
// spec §3 ("Map iteration order is insertion order").
type orderedMap struct {
	keys []string
	vals map[string]*Value
}

func newOrderedMap() *orderedMap {
	return &orderedMap{vals: map[string]*Value{}}
}

func (m *orderedMap) Set(key string, v *Value) {
	if _, exists := m.vals[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

func (m *orderedMap) Get(key string) (*Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

func (m *orderedMap) Keys() []string { return m.keys }

func (m *orderedMap) Len() int { return len(m.keys) }

// Value is the tagged-union runtime value every expression evaluates to.
// It carries a `safe` flag, meaningful only for the String variant
// (spec §3: "Every value carries a safe flag").
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	seq  []*Value
	m    *orderedMap
	call Callable
	obj  Object
	safe bool
}

// Constructors mirror the teacher's AsValue-style factory surface, split
// by kind since the payload is now a genuine closed sum rather than a
// reflect.Value wrapper.

var undefinedSingleton = &Value{kind: KindUndefined}
var noneSingleton = &Value{kind: KindNone}
var trueSingleton = &Value{kind: KindBool, b: true}
var falseSingleton = &Value{kind: KindBool, b: false}

func Undefined() *Value { return undefinedSingleton }
func None() *Value      { return noneSingleton }

func Bool(b bool) *Value {
	if b {
		return trueSingleton
	}
	return falseSingleton
}

func Int(i int64) *Value          { return &Value{kind: KindInt, i: i} }
func Float(f float64) *Value      { return &Value{kind: KindFloat, f: f} }
func String(s string) *Value      { return &Value{kind: KindString, s: s} }
func SafeString(s string) *Value  { return &Value{kind: KindString, s: s, safe: true} }
func Seq(items []*Value) *Value   { return &Value{kind: KindSeq, seq: items} }
func NewCallable(fn Callable) *Value {
	return &Value{kind: KindCallable, call: fn}
}
func FromObject(o Object) *Value { return &Value{kind: KindObject, obj: o} }

func NewMap() *Value { return &Value{kind: KindMap, m: newOrderedMap()} }

// MapFromPairs builds a Map value preserving the given key order.
func MapFromPairs(pairs [][2]interface{}) (*Value, error) {
	m := newOrderedMap()
	for _, p := range pairs {
		key, ok := p[0].(string)
		if !ok {
			return nil, newError(SenderConversion, "map keys must be strings")
		}
		v, err := FromAny(p[1])
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}
	return &Value{kind: KindMap, m: m}, nil
}

// Kind-testing predicates, grounded on the teacher's IsString/IsFloat/
// IsInteger/IsNumber/IsNil family.

func (v *Value) Kind() Kind       { return v.kind }
func (v *Value) IsUndefined() bool { return v.kind == KindUndefined }
func (v *Value) IsNone() bool      { return v.kind == KindNone }
func (v *Value) IsBool() bool      { return v.kind == KindBool }
func (v *Value) IsInt() bool       { return v.kind == KindInt }
func (v *Value) IsFloat() bool     { return v.kind == KindFloat }
func (v *Value) IsNumber() bool    { return v.kind == KindInt || v.kind == KindFloat }
func (v *Value) IsString() bool    { return v.kind == KindString }
func (v *Value) IsSeq() bool       { return v.kind == KindSeq }
func (v *Value) IsMap() bool       { return v.kind == KindMap }
func (v *Value) IsCallable() bool  { return v.kind == KindCallable }
func (v *Value) IsObject() bool    { return v.kind == KindObject }
func (v *Value) IsSafe() bool      { return v.kind == KindString && v.safe }

// IsTrue implements the truthiness column of the spec §3 variant table.
func (v *Value) IsTrue() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0 && !math.IsNaN(v.f)
	case KindString:
		return len(v.s) > 0
	case KindSeq:
		return len(v.seq) > 0
	case KindMap:
		return v.m.Len() > 0
	case KindCallable, KindObject:
		return true
	default: // Undefined, None
		return false
	}
}

// AsSafe returns a copy of a String value with the safe flag set; it is
// the primitive `Value.from_safe_string` names in spec §4.4.1.
func (v *Value) AsSafe() *Value {
	if v.kind != KindString {
		return v
	}
	return &Value{kind: KindString, s: v.s, safe: true}
}

func (v *Value) Bool() bool { return v.b }

// Integer truncates a Number to int64; non-numeric kinds yield 0, matching
// the teacher's forgiving Integer()/Float() accessors.
func (v *Value) Integer() int64 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return int64(v.f)
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		if err != nil {
			return 0
		}
		return i
	}
	return 0
}

func (v *Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindInt:
		return float64(v.i)
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func (v *Value) Str() string { return v.s }

func (v *Value) SeqItems() []*Value { return v.seq }

func (v *Value) MapKeys() []string {
	if v.kind != KindMap {
		return nil
	}
	return v.m.Keys()
}

func (v *Value) MapGet(key string) (*Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m.Get(key)
}

func (v *Value) MapSet(key string, val *Value) {
	if v.kind == KindMap {
		v.m.Set(key, val)
	}
}

func (v *Value) AsCallable() (Callable, bool) {
	if v.kind != KindCallable {
		return nil, false
	}
	return v.call, true
}

func (v *Value) AsObject() (Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Len implements the optional length() capability of spec §3/§4.3 for
// String/Seq/Map/Object.
func (v *Value) Len() (int, bool) {
	switch v.kind {
	case KindString:
		return len([]rune(v.s)), true
	case KindSeq:
		return len(v.seq), true
	case KindMap:
		return v.m.Len(), true
	case KindObject:
		return v.obj.Length()
	}
	return 0, false
}

// Iterable reports whether a Value may appear as the iterable of a for
// loop or in tests like `is iterable`.
func (v *Value) Iterable() bool {
	switch v.kind {
	case KindString, KindSeq, KindMap:
		return true
	case KindObject:
		_, ok := v.obj.TryIter()
		return ok
	}
	return false
}

// Iterate materializes a Value's iteration into a slice of Values, per
// the evaluator's "convert to a list of Values" rule for for-loops
// (spec §4.4): strings yield one-rune strings, maps yield their keys.
func (v *Value) Iterate() ([]*Value, error) {
	switch v.kind {
	case KindString:
		runes := []rune(v.s)
		out := make([]*Value, len(runes))
		for i, r := range runes {
			out[i] = String(string(r))
		}
		return out, nil
	case KindSeq:
		return v.seq, nil
	case KindMap:
		keys := v.m.Keys()
		out := make([]*Value, len(keys))
		for i, k := range keys {
			out[i] = String(k)
		}
		return out, nil
	case KindObject:
		it, ok := v.obj.TryIter()
		if !ok {
			return nil, newError(SenderType, "object is not iterable")
		}
		var out []*Value
		for {
			item, more := it.Next()
			if !more {
				break
			}
			out = append(out, item)
		}
		return out, nil
	}
	return nil, newError(SenderType, "'%s' object is not iterable", v.kind)
}

// Equals implements spec §3's equality rule: Undefined==Undefined,
// None==None, cross-kind equality false except numeric int/float
// equality by value.
func (v *Value) Equals(other *Value) bool {
	if v.kind == KindUndefined && other.kind == KindUndefined {
		return true
	}
	if v.kind == KindNone && other.kind == KindNone {
		return true
	}
	if v.IsNumber() && other.IsNumber() {
		return v.Float() == other.Float()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.s == other.s
	case KindSeq:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equals(other.seq[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if v.m.Len() != other.m.Len() {
			return false
		}
		for _, k := range v.m.Keys() {
			a, _ := v.m.Get(k)
			b, ok := other.m.Get(k)
			if !ok || !a.Equals(b) {
				return false
			}
		}
		return true
	case KindCallable:
		return fmt.Sprintf("%p", v.call) == fmt.Sprintf("%p", other.call)
	case KindObject:
		return v.obj == other.obj
	}
	return false
}

// Compare implements the partial order of spec §4.3: defined between two
// Numbers and between two Strings; any other pairing reports "equal"
// (order unspecified but stable), which is what lets `sort` fall back to
// a no-op ordering for incomparable kinds without crashing.
func (v *Value) Compare(other *Value) int {
	if v.IsNumber() && other.IsNumber() {
		a, b := v.Float(), other.Float()
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	if v.kind == KindString && other.kind == KindString {
		return strings.Compare(v.s, other.s)
	}
	return 0
}

// String renders the to_string() contract of spec §4.3.
func (v *Value) String() string {
	switch v.kind {
	case KindUndefined:
		return ""
	case KindNone:
		return "none"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindString:
		return v.s
	case KindSeq:
		parts := make([]string, len(v.seq))
		for i, item := range v.seq {
			parts[i] = item.Repr()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		keys := append([]string{}, v.m.Keys()...)
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			val, _ := v.m.Get(k)
			parts[i] = fmt.Sprintf("%q: %s", k, val.Repr())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindCallable:
		return "<function>"
	case KindObject:
		return fmt.Sprintf("<object %T>", v.obj)
	}
	return ""
}

// Repr renders the to_repr() contract: identical to String() except
// strings gain surrounding quotes.
func (v *Value) Repr() string {
	if v.kind == KindString {
		return strconv.Quote(v.s)
	}
	return v.String()
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && math.Abs(f) < 1e15 {
		s += ".0"
	}
	return s
}

// Interface converts a Value back into a plain Go value, used by the
// debug/pprint filters.
func (v *Value) Interface() interface{} {
	switch v.kind {
	case KindUndefined:
		return nil
	case KindNone:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindSeq:
		out := make([]interface{}, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := map[string]interface{}{}
		for _, k := range v.m.Keys() {
			val, _ := v.m.Get(k)
			out[k] = val.Interface()
		}
		return out
	case KindCallable:
		return v.call
	case KindObject:
		return v.obj
	}
	return nil
}

// ValueConverter is the capability spec §1 names as the out-of-scope
// collaborator interface: a host type exposing to_template_values()
// converts itself directly instead of going through reflection.
type ValueConverter interface {
	ToTemplateValue() *Value
}

// FromAny converts a plain Go value into a Value, the "type-erased
// Context entry-point" spec §1 and §6 describe. Supported inputs are
// nil, *Value, the Go boolean/numeric/string kinds, []interface{}-style
// slices, map[string]interface{}-style maps, and any ValueConverter.
// Anything else raises a Conversion error.
func FromAny(i interface{}) (*Value, error) {
	switch x := i.(type) {
	case nil:
		return None(), nil
	case *Value:
		return x, nil
	case ValueConverter:
		return x.ToTemplateValue(), nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return Int(int64(x)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case []interface{}:
		items := make([]*Value, len(x))
		for idx, item := range x {
			v, err := FromAny(item)
			if err != nil {
				return nil, err
			}
			items[idx] = v
		}
		return Seq(items), nil
	case []string:
		items := make([]*Value, len(x))
		for idx, item := range x {
			items[idx] = String(item)
		}
		return Seq(items), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := newOrderedMap()
		for _, k := range keys {
			v, err := FromAny(x[k])
			if err != nil {
				return nil, err
			}
			m.Set(k, v)
		}
		return &Value{kind: KindMap, m: m}, nil
	case map[string]string:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := newOrderedMap()
		for _, k := range keys {
			m.Set(k, String(x[k]))
		}
		return &Value{kind: KindMap, m: m}, nil
	case Callable:
		return NewCallable(x), nil
	case Object:
		return FromObject(x), nil
	default:
		return nil, newError(SenderConversion, "unsupported host type %T passed to FromAny", i)
	}
}

// Must panics on a FromAny error, mirroring the teacher's Must() helper
// (pongo2.go) for call sites that know the conversion cannot fail.
func Must(v *Value, err error) *Value {
	if err != nil {
		panic(err)
	}
	return v
}
