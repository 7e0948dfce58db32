package gojinja

// loopObject implements the `loop` Object capability exposed inside
// `{% for %}` bodies (spec §4.4): index0, index, revindex0, revindex,
// first, last, length, depth, depth0, previtem, nextitem, cycle(), and
// changed(). previtem/nextitem are real neighbor lookups rather than
// always-None, per SPEC_FULL supplemental feature 1 (spec §9 explicitly
// allows this upgrade since the evaluator already materializes the full
// iteration slice).
type loopObject struct {
	index0  int
	items   []*Value
	depth   int
	recurse func(items []*Value) (*Value, error)

	lastChanged []*Value
	haveChanged bool
}

func (l *loopObject) length() int { return len(l.items) }

func (l *loopObject) GetAttr(name string) (*Value, bool) {
	switch name {
	case "index0":
		return Int(int64(l.index0)), true
	case "index":
		return Int(int64(l.index0 + 1)), true
	case "revindex0":
		return Int(int64(l.length() - 1 - l.index0)), true
	case "revindex":
		return Int(int64(l.length() - l.index0)), true
	case "first":
		return Bool(l.index0 == 0), true
	case "last":
		return Bool(l.index0 == l.length()-1), true
	case "length":
		return Int(int64(l.length())), true
	case "depth":
		return Int(int64(l.depth)), true
	case "depth0":
		return Int(int64(l.depth - 1)), true
	case "previtem":
		if l.index0 > 0 {
			return l.items[l.index0-1], true
		}
		return Undefined(), true
	case "nextitem":
		if l.index0 < l.length()-1 {
			return l.items[l.index0+1], true
		}
		return Undefined(), true
	case "cycle":
		return NewCallable(l.cycle), true
	case "changed":
		return NewCallable(l.changed), true
	}
	return nil, false
}

func (l *loopObject) cycle(args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	if len(args) == 0 {
		return nil, newError(SenderType, "loop.cycle() requires at least one argument")
	}
	return args[l.index0%len(args)], nil
}

func (l *loopObject) changed(args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	changed := !l.haveChanged || !sameValueList(l.lastChanged, args)
	l.lastChanged = args
	l.haveChanged = true
	return Bool(changed), nil
}

func sameValueList(a, b []*Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

func (l *loopObject) GetItem(key *Value) (*Value, bool) { return nil, false }

func (l *loopObject) TryIter() (ValueIterator, bool) { return nil, false }

func (l *loopObject) Length() (int, bool) { return l.length(), true }

// Call implements recursive re-entry: `{% for x in tree recursive %}`
// bodies can call `loop(children)` to restart the loop body over a new
// item list (spec §4.4, "Recursive loops").
func (l *loopObject) Call(args []*Value, kwargs map[string]*Value, state *State) (*Value, bool, error) {
	if l.recurse == nil {
		return nil, false, nil
	}
	if len(args) != 1 {
		return nil, true, newError(SenderType, "loop() takes exactly one argument")
	}
	items, err := args[0].Iterate()
	if err != nil {
		return nil, true, err
	}
	result, err := l.recurse(items)
	return result, true, err
}

// cyclerObject backs the `cycler(*items)` global (spec §4.5).
type cyclerObject struct {
	items []*Value
	pos   int
}

func (c *cyclerObject) GetAttr(name string) (*Value, bool) {
	switch name {
	case "current":
		if len(c.items) == 0 {
			return Undefined(), true
		}
		return c.items[c.pos], true
	case "next":
		return NewCallable(func(args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
			return c.next(), nil
		}), true
	case "reset":
		return NewCallable(func(args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
			c.pos = 0
			return None(), nil
		}), true
	}
	return nil, false
}

func (c *cyclerObject) next() *Value {
	if len(c.items) == 0 {
		return Undefined()
	}
	v := c.items[c.pos]
	c.pos = (c.pos + 1) % len(c.items)
	return v
}

func (c *cyclerObject) GetItem(key *Value) (*Value, bool) { return nil, false }
func (c *cyclerObject) TryIter() (ValueIterator, bool)    { return nil, false }
func (c *cyclerObject) Length() (int, bool)               { return len(c.items), true }
func (c *cyclerObject) Call(args []*Value, kwargs map[string]*Value, state *State) (*Value, bool, error) {
	return c.next(), true, nil
}

// joinerObject backs the `joiner(sep=", ")` global (spec §4.5): calling
// it returns "" the first time and sep every subsequent time.
type joinerObject struct {
	sep      string
	hasFired bool
}

func (j *joinerObject) GetAttr(name string) (*Value, bool) { return nil, false }
func (j *joinerObject) GetItem(key *Value) (*Value, bool)  { return nil, false }
func (j *joinerObject) TryIter() (ValueIterator, bool)     { return nil, false }
func (j *joinerObject) Length() (int, bool)                { return 0, false }
func (j *joinerObject) Call(args []*Value, kwargs map[string]*Value, state *State) (*Value, bool, error) {
	if !j.hasFired {
		j.hasFired = true
		return String(""), true, nil
	}
	return String(j.sep), true, nil
}
