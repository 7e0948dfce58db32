package gojinja

import "testing"

func applyTest(t *testing.T, env *Environment, name string, subject *Value, args []*Value) bool {
	t.Helper()
	fn, err := env.resolveTest(name)
	if err != nil {
		t.Fatalf("resolveTest(%q): %v", name, err)
	}
	got, err := fn(subject, args)
	if err != nil {
		t.Fatalf("test %q: %v", name, err)
	}
	return got
}

func TestBuiltinTestCatalog(t *testing.T) {
	env := NewEnvironment()

	cases := []struct {
		name    string
		subject *Value
		args    []*Value
		want    bool
	}{
		{"defined", Int(1), nil, true},
		{"defined", Undefined(), nil, false},
		{"undefined", Undefined(), nil, true},
		{"none", None(), nil, true},
		{"none", Int(0), nil, false},
		{"true", Bool(true), nil, true},
		{"false", Bool(false), nil, true},
		{"odd", Int(3), nil, true},
		{"even", Int(4), nil, true},
		{"number", Float(1.5), nil, true},
		{"string", String("x"), nil, true},
		{"sequence", Seq([]*Value{Int(1)}), nil, true},
		{"sequence", String("x"), nil, true},
		{"mapping", NewMap(), nil, true},
		{"iterable", Seq(nil), nil, true},
		{"callable", NewCallable(func(args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
			return None(), nil
		}), nil, true},
		{"lower", String("abc"), nil, true},
		{"upper", String("ABC"), nil, true},
		{"truthy", Int(1), nil, true},
		{"falsy", Int(0), nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := applyTest(t, env, tc.name, tc.subject, tc.args)
			if got != tc.want {
				t.Errorf("%s(%v) = %v, want %v", tc.name, tc.subject, got, tc.want)
			}
		})
	}
}

func TestBuiltinTestDivisibleby(t *testing.T) {
	env := NewEnvironment()
	if !applyTest(t, env, "divisibleby", Int(9), []*Value{Int(3)}) {
		t.Error("9 should be divisibleby 3")
	}
	if applyTest(t, env, "divisibleby", Int(9), []*Value{Int(2)}) {
		t.Error("9 should not be divisibleby 2")
	}
}

func TestBuiltinTestComparisonAliases(t *testing.T) {
	env := NewEnvironment()
	if !applyTest(t, env, "eq", Int(5), []*Value{Int(5)}) {
		t.Error("eq failed")
	}
	if !applyTest(t, env, "equalto", Int(5), []*Value{Int(5)}) {
		t.Error("equalto alias failed")
	}
	if !applyTest(t, env, "ne", Int(5), []*Value{Int(6)}) {
		t.Error("ne failed")
	}
	if !applyTest(t, env, "gt", Int(5), []*Value{Int(3)}) {
		t.Error("gt failed")
	}
	if !applyTest(t, env, "le", Int(3), []*Value{Int(3)}) {
		t.Error("le failed")
	}
}

func TestBuiltinTestIn(t *testing.T) {
	env := NewEnvironment()
	seq := Seq([]*Value{Int(1), Int(2), Int(3)})
	if !applyTest(t, env, "in", Int(2), []*Value{seq}) {
		t.Error("2 should be in [1,2,3]")
	}
	if applyTest(t, env, "in", Int(9), []*Value{seq}) {
		t.Error("9 should not be in [1,2,3]")
	}
}

func TestBuiltinTestSameas(t *testing.T) {
	env := NewEnvironment()
	v := Int(1)
	if !applyTest(t, env, "sameas", v, []*Value{v}) {
		t.Error("sameas should hold for the identical pointer")
	}
	if applyTest(t, env, "sameas", v, []*Value{Int(1)}) {
		t.Error("sameas should not hold for a distinct equal value")
	}
}

func TestIsOperatorInTemplate(t *testing.T) {
	src := "{% if x is defined %}yes{% else %}no{% endif %}|{% if y is not defined %}yes{% else %}no{% endif %}"
	env := NewEnvironment()
	tpl, err := env.AddTemplate("t", src)
	if err != nil {
		t.Fatal(err)
	}
	ctx := ContextFromValues(map[string]*Value{"x": Int(1)})
	out, err := tpl.Render(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := "yes|yes"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}
