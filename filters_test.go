package gojinja

import "testing"

func applyFilter(t *testing.T, env *Environment, name string, subject *Value, args []*Value, kwargs map[string]*Value) *Value {
	t.Helper()
	fn, err := env.resolveFilter(name)
	if err != nil {
		t.Fatalf("resolveFilter(%q): %v", name, err)
	}
	v, err := fn(subject, args, kwargs, newState(env, nil, nil))
	if err != nil {
		t.Fatalf("filter %q: %v", name, err)
	}
	return v
}

func TestFilterDefaultCatalog(t *testing.T) {
	env := NewEnvironment()

	cases := []struct {
		name    string
		subject *Value
		args    []*Value
		want    string
	}{
		{"upper", String("abc"), nil, "ABC"},
		{"lower", String("ABC"), nil, "abc"},
		{"capitalize", String("hello world"), nil, "Hello world"},
		{"trim", String("  hi  "), nil, "hi"},
		{"reverse", String("abc"), nil, "cba"},
		{"first", Seq([]*Value{Int(1), Int(2)}), nil, "1"},
		{"last", Seq([]*Value{Int(1), Int(2)}), nil, "2"},
		{"join", Seq([]*Value{String("a"), String("b")}), []*Value{String(",")}, "a,b"},
		{"abs", Int(-5), nil, "5"},
		{"default", Undefined(), []*Value{String("fallback")}, "fallback"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := applyFilter(t, env, tc.name, tc.subject, tc.args, nil)
			if got.String() != tc.want {
				t.Errorf("%s(...) = %q, want %q", tc.name, got.String(), tc.want)
			}
		})
	}
}

func TestFilterSortAndUnique(t *testing.T) {
	env := NewEnvironment()
	sorted := applyFilter(t, env, "sort", Seq([]*Value{Int(3), Int(1), Int(2)}), nil, nil)
	items := sorted.SeqItems()
	for i, want := range []int64{1, 2, 3} {
		if items[i].Integer() != want {
			t.Errorf("sort()[%d] = %d, want %d", i, items[i].Integer(), want)
		}
	}

	uniq := applyFilter(t, env, "unique", Seq([]*Value{Int(1), Int(1), Int(2)}), nil, nil)
	if len(uniq.SeqItems()) != 2 {
		t.Errorf("unique() len = %d, want 2", len(uniq.SeqItems()))
	}
}

func TestFilterSafeAndEscape(t *testing.T) {
	env := NewEnvironment()
	safe := applyFilter(t, env, "safe", String("<b>"), nil, nil)
	if !safe.IsSafe() {
		t.Error("safe filter should mark the string safe")
	}

	escaped := applyFilter(t, env, "escape", String("<b>"), nil, nil)
	if escaped.Str() != "&lt;b&gt;" {
		t.Errorf("escape() = %q, want %q", escaped.Str(), "&lt;b&gt;")
	}
}

func TestFilterBatch(t *testing.T) {
	env := NewEnvironment()
	batched := applyFilter(t, env, "batch", Seq([]*Value{Int(1), Int(2), Int(3), Int(4), Int(5)}), []*Value{Int(2)}, nil)
	groups := batched.SeqItems()
	if len(groups) != 3 {
		t.Fatalf("batch(2) produced %d groups, want 3", len(groups))
	}
	if len(groups[2].SeqItems()) != 1 {
		t.Errorf("last batch group should have 1 leftover item")
	}
}
