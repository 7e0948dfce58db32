package gojinja

import "testing"

func TestValueIsTrue(t *testing.T) {
	cases := []struct {
		name string
		v    *Value
		want bool
	}{
		{"undefined", Undefined(), false},
		{"none", None(), false},
		{"zero int", Int(0), false},
		{"nonzero int", Int(1), true},
		{"empty string", String(""), false},
		{"nonempty string", String("x"), true},
		{"empty seq", Seq(nil), false},
		{"nonempty seq", Seq([]*Value{Int(1)}), true},
		{"false bool", Bool(false), false},
		{"true bool", Bool(true), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.IsTrue(); got != tc.want {
				t.Errorf("IsTrue() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValueEquals(t *testing.T) {
	if !Int(1).Equals(Float(1.0)) {
		t.Error("Int(1) should equal Float(1.0)")
	}
	if String("a").Equals(String("b")) {
		t.Error("'a' should not equal 'b'")
	}
	if !Seq([]*Value{Int(1), Int(2)}).Equals(Seq([]*Value{Int(1), Int(2)})) {
		t.Error("equal sequences should compare equal")
	}
}

func TestValueSafeFlagIsOrthogonal(t *testing.T) {
	s := String("<b>")
	if s.IsSafe() {
		t.Error("String() should not be safe by default")
	}
	safe := SafeString("<b>")
	if !safe.IsSafe() || safe.Kind() != KindString {
		t.Error("SafeString() should be a safe string, same Kind as String()")
	}
}

func TestValueIterate(t *testing.T) {
	items, err := Seq([]*Value{Int(1), Int(2), Int(3)}).Iterate()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	m := NewMap()
	m.MapSet("a", Int(1))
	if _, err := m.Iterate(); err != nil {
		t.Errorf("map should be iterable: %v", err)
	}

	if _, err := Int(5).Iterate(); err == nil {
		t.Error("an int should not be iterable")
	}
}

func TestValueStringRepr(t *testing.T) {
	if got := Int(42).String(); got != "42" {
		t.Errorf("Int(42).String() = %q, want %q", got, "42")
	}
	if got := Bool(true).String(); got != "true" {
		t.Errorf("Bool(true).String() = %q, want %q", got, "true")
	}
	if got := None().String(); got != "none" {
		t.Errorf("None().String() = %q, want %q", got, "none")
	}
}

func TestMapOrderedIteration(t *testing.T) {
	m := NewMap()
	m.MapSet("z", Int(1))
	m.MapSet("a", Int(2))
	m.MapSet("m", Int(3))
	keys := m.MapKeys()
	want := []string{"z", "a", "m"}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(keys), len(want))
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("MapKeys()[%d] = %q, want %q (insertion order)", i, keys[i], k)
		}
	}
}
