package gojinja

import (
	"strings"
)

// TemplateWriter is the sink statement nodes render into. *strings.Builder
// already satisfies it, which is what the evaluator actually passes.
type TemplateWriter interface {
	WriteString(string) (int, error)
}

// Node is an immutable AST statement: anything that can appear directly
// inside a template body. Grounded on the teacher's INode/IEvaluator
// split (parser.go), kept as two interfaces for the same reason: a node
// that only produces output (Node) and a node that only produces a value
// (Evaluator) are different shapes even though many concrete types
// implement just one.
type Node interface {
	Execute(state *State, w TemplateWriter) error
}

// Evaluator is an immutable AST expression: anything that reduces to a
// Value against a State.
type Evaluator interface {
	Evaluate(state *State) (*Value, error)
}

// NodeList is an ordered sequence of statements, the teacher's
// NodeWrapper/nodeDocument idiom generalized to a reusable building
// block: template bodies, block bodies, for-loop bodies, macro bodies,
// and if/else branches are all just a NodeList.
type NodeList struct {
	Nodes []Node
}

func (n *NodeList) Execute(state *State, w TemplateWriter) error {
	for _, node := range n.Nodes {
		if err := node.Execute(state, w); err != nil {
			return err
		}
	}
	return nil
}

// renderNodeList runs a NodeList into a fresh buffer and returns the
// accumulated text, used anywhere a construct needs its body as a string
// rather than writing directly to the outer writer (macros, call-blocks,
// filter-blocks, super()).
func renderNodeList(n *NodeList, state *State) (string, error) {
	var buf strings.Builder
	if err := n.Execute(state, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ---- Literals ----

type literalNode struct {
	val *Value
}

func (n *literalNode) Evaluate(state *State) (*Value, error) { return n.val, nil }

// ---- Name reference ----

type nameNode struct {
	name string
	tok  *Token
}

func (n *nameNode) Evaluate(state *State) (*Value, error) {
	return state.Lookup(n.name), nil
}

// ---- List / Dict literals ----

type listNode struct {
	items []Evaluator
}

func (n *listNode) Evaluate(state *State) (*Value, error) {
	out := make([]*Value, len(n.items))
	for i, item := range n.items {
		v, err := item.Evaluate(state)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return Seq(out), nil
}

type dictEntry struct {
	key Evaluator
	val Evaluator
}

type dictNode struct {
	entries []dictEntry
}

func (n *dictNode) Evaluate(state *State) (*Value, error) {
	m := NewMap()
	for _, e := range n.entries {
		k, err := e.key.Evaluate(state)
		if err != nil {
			return nil, err
		}
		v, err := e.val.Evaluate(state)
		if err != nil {
			return nil, err
		}
		m.MapSet(k.String(), v)
	}
	return m, nil
}

// ---- Attribute / Index / Slice ----

type attrNode struct {
	target Evaluator
	name   string
}

func (n *attrNode) Evaluate(state *State) (*Value, error) {
	target, err := n.target.Evaluate(state)
	if err != nil {
		return nil, err
	}
	return resolveAttr(target, n.name), nil
}

// resolveAttr implements member access: Map keys and Object.GetAttr are
// tried, and every other kind (including Seq and String) yields
// Undefined — Jinja2's forgiving attribute lookup.
func resolveAttr(target *Value, name string) *Value {
	switch target.Kind() {
	case KindMap:
		if v, ok := target.MapGet(name); ok {
			return v
		}
	case KindObject:
		if obj, ok := target.AsObject(); ok {
			if v, ok := obj.GetAttr(name); ok {
				return v
			}
		}
	}
	return Undefined()
}

type indexNode struct {
	target Evaluator
	key    Evaluator
}

func (n *indexNode) Evaluate(state *State) (*Value, error) {
	target, err := n.target.Evaluate(state)
	if err != nil {
		return nil, err
	}
	key, err := n.key.Evaluate(state)
	if err != nil {
		return nil, err
	}
	return resolveItem(target, key), nil
}

func resolveItem(target, key *Value) *Value {
	switch target.Kind() {
	case KindMap:
		if v, ok := target.MapGet(key.String()); ok {
			return v
		}
	case KindSeq:
		items := target.SeqItems()
		idx := int(key.Integer())
		if idx < 0 {
			idx += len(items)
		}
		if idx >= 0 && idx < len(items) {
			return items[idx]
		}
	case KindString:
		runes := []rune(target.Str())
		idx := int(key.Integer())
		if idx < 0 {
			idx += len(runes)
		}
		if idx >= 0 && idx < len(runes) {
			return String(string(runes[idx]))
		}
	case KindObject:
		if obj, ok := target.AsObject(); ok {
			if v, ok := obj.GetItem(key); ok {
				return v
			}
		}
	}
	return Undefined()
}

type sliceNode struct {
	target      Evaluator
	start, stop, step Evaluator // any may be nil
}

func (n *sliceNode) Evaluate(state *State) (*Value, error) {
	target, err := n.target.Evaluate(state)
	if err != nil {
		return nil, err
	}
	var items []*Value
	isString := target.Kind() == KindString
	var runes []rune
	if isString {
		runes = []rune(target.Str())
		items = make([]*Value, len(runes))
	} else if target.Kind() == KindSeq {
		items = target.SeqItems()
	} else {
		return Undefined(), nil
	}
	length := len(runes)
	if !isString {
		length = len(items)
	}

	step := 1
	if n.step != nil {
		v, err := n.step.Evaluate(state)
		if err != nil {
			return nil, err
		}
		step = int(v.Integer())
		if step == 0 {
			step = 1
		}
	}

	start, stop := sliceDefaults(length, step)
	if n.start != nil {
		v, err := n.start.Evaluate(state)
		if err != nil {
			return nil, err
		}
		start = normalizeSliceIndex(int(v.Integer()), length)
	}
	if n.stop != nil {
		v, err := n.stop.Evaluate(state)
		if err != nil {
			return nil, err
		}
		stop = normalizeSliceIndex(int(v.Integer()), length)
	}

	var outRunes []rune
	var outItems []*Value
	if step > 0 {
		for i := start; i < stop && i < length; i += step {
			if i < 0 {
				continue
			}
			if isString {
				outRunes = append(outRunes, runes[i])
			} else {
				outItems = append(outItems, items[i])
			}
		}
	} else {
		for i := start; i > stop && i >= 0; i += step {
			if i >= length {
				continue
			}
			if isString {
				outRunes = append(outRunes, runes[i])
			} else {
				outItems = append(outItems, items[i])
			}
		}
	}
	if isString {
		return String(string(outRunes)), nil
	}
	return Seq(outItems), nil
}

func sliceDefaults(length, step int) (int, int) {
	if step > 0 {
		return 0, length
	}
	return length - 1, -length - 1
}

func normalizeSliceIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	return i
}

// ---- Call / Filter application ----

type argList struct {
	positional []Evaluator
	kwargs     map[string]Evaluator
	kwOrder    []string
}

func (a *argList) evaluate(state *State) ([]*Value, map[string]*Value, error) {
	pos := make([]*Value, len(a.positional))
	for i, p := range a.positional {
		v, err := p.Evaluate(state)
		if err != nil {
			return nil, nil, err
		}
		pos[i] = v
	}
	kw := map[string]*Value{}
	for _, name := range a.kwOrder {
		v, err := a.kwargs[name].Evaluate(state)
		if err != nil {
			return nil, nil, err
		}
		kw[name] = v
	}
	return pos, kw, nil
}

type callNode struct {
	target Evaluator
	args   *argList
	tok    *Token
}

func (n *callNode) Evaluate(state *State) (*Value, error) {
	target, err := n.target.Evaluate(state)
	if err != nil {
		return nil, err
	}
	pos, kw, err := n.args.evaluate(state)
	if err != nil {
		return nil, err
	}
	return callValue(target, pos, kw, state, n.tok)
}

func callValue(target *Value, pos []*Value, kw map[string]*Value, state *State, tok *Token) (*Value, error) {
	switch target.Kind() {
	case KindCallable:
		fn, _ := target.AsCallable()
		return fn(pos, kw, state)
	case KindObject:
		obj, _ := target.AsObject()
		result, ok, err := obj.Call(pos, kw, state)
		if err != nil {
			return nil, err
		}
		if ok {
			return result, nil
		}
	}
	return nil, newErrorAt(tok, state.tpl.name, SenderType, "'%s' object is not callable", target.Kind())
}

type filterExprNode struct {
	target Evaluator
	name   string
	args   *argList
	tok    *Token
}

func (n *filterExprNode) Evaluate(state *State) (*Value, error) {
	subject, err := n.target.Evaluate(state)
	if err != nil {
		return nil, err
	}
	pos, kw, err := n.args.evaluate(state)
	if err != nil {
		return nil, err
	}
	fn, err := state.env.resolveFilter(n.name)
	if err != nil {
		return nil, wrapError(err, SenderUnknownName, "applying filter '"+n.name+"'")
	}
	return fn(subject, pos, kw, state)
}

// ---- Unary / binary operators ----

type unaryNode struct {
	op      string // "+", "-", "not"
	operand Evaluator
}

func (n *unaryNode) Evaluate(state *State) (*Value, error) {
	v, err := n.operand.Evaluate(state)
	if err != nil {
		return nil, err
	}
	switch n.op {
	case "not":
		return Bool(!v.IsTrue()), nil
	case "-":
		if v.IsInt() {
			return Int(-v.Integer()), nil
		}
		return Float(-v.Float()), nil
	case "+":
		return v, nil
	}
	return nil, newError(SenderType, "unknown unary operator %q", n.op)
}

type binaryNode struct {
	op          string
	left, right Evaluator
	tok         *Token
}

func (n *binaryNode) Evaluate(state *State) (*Value, error) {
	l, err := n.left.Evaluate(state)
	if err != nil {
		return nil, err
	}
	r, err := n.right.Evaluate(state)
	if err != nil {
		return nil, err
	}
	return evalBinaryOp(n.op, l, r, state, n.tok)
}

type concatNode struct {
	left, right Evaluator
}

func (n *concatNode) Evaluate(state *State) (*Value, error) {
	l, err := n.left.Evaluate(state)
	if err != nil {
		return nil, err
	}
	r, err := n.right.Evaluate(state)
	if err != nil {
		return nil, err
	}
	return String(l.String() + r.String()), nil
}

type andNode struct{ left, right Evaluator }

func (n *andNode) Evaluate(state *State) (*Value, error) {
	l, err := n.left.Evaluate(state)
	if err != nil {
		return nil, err
	}
	if !l.IsTrue() {
		return l, nil
	}
	return n.right.Evaluate(state)
}

type orNode struct{ left, right Evaluator }

func (n *orNode) Evaluate(state *State) (*Value, error) {
	l, err := n.left.Evaluate(state)
	if err != nil {
		return nil, err
	}
	if l.IsTrue() {
		return l, nil
	}
	return n.right.Evaluate(state)
}

type condNode struct {
	ifTrue, cond, ifFalse Evaluator
}

func (n *condNode) Evaluate(state *State) (*Value, error) {
	c, err := n.cond.Evaluate(state)
	if err != nil {
		return nil, err
	}
	if c.IsTrue() {
		return n.ifTrue.Evaluate(state)
	}
	if n.ifFalse == nil {
		return Undefined(), nil
	}
	return n.ifFalse.Evaluate(state)
}

// compareNode implements the single, non-associative comparison level
// (spec §4.2 level 5): ==, !=, <, <=, >, >=, in, "not in".
type compareNode struct {
	op          string
	left, right Evaluator
}

func (n *compareNode) Evaluate(state *State) (*Value, error) {
	l, err := n.left.Evaluate(state)
	if err != nil {
		return nil, err
	}
	r, err := n.right.Evaluate(state)
	if err != nil {
		return nil, err
	}
	switch n.op {
	case "==":
		return Bool(l.Equals(r)), nil
	case "!=":
		return Bool(!l.Equals(r)), nil
	case "<":
		return Bool(l.Compare(r) < 0), nil
	case "<=":
		return Bool(l.Compare(r) <= 0), nil
	case ">":
		return Bool(l.Compare(r) > 0), nil
	case ">=":
		return Bool(l.Compare(r) >= 0), nil
	case "in":
		return Bool(containsValue(r, l)), nil
	case "not in":
		return Bool(!containsValue(r, l)), nil
	}
	return nil, newError(SenderType, "unknown comparison operator %q", n.op)
}

func containsValue(container, item *Value) bool {
	switch container.Kind() {
	case KindString:
		return strings.Contains(container.Str(), item.String())
	case KindSeq:
		for _, v := range container.SeqItems() {
			if v.Equals(item) {
				return true
			}
		}
		return false
	case KindMap:
		_, ok := container.MapGet(item.String())
		return ok
	}
	return false
}

// testNode implements `is`/`is not NAME(args)`.
type testNode struct {
	negate bool
	target Evaluator
	name   string
	args   *argList
}

func (n *testNode) Evaluate(state *State) (*Value, error) {
	subject, err := n.target.Evaluate(state)
	if err != nil {
		return nil, err
	}
	pos, _, err := n.args.evaluate(state)
	if err != nil {
		return nil, err
	}
	fn, err := state.env.resolveTest(n.name)
	if err != nil {
		return nil, wrapError(err, SenderUnknownName, "evaluating test '"+n.name+"'")
	}
	result, err := fn(subject, pos)
	if err != nil {
		return nil, err
	}
	if n.negate {
		result = !result
	}
	return Bool(result), nil
}
