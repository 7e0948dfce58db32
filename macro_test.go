package gojinja

import "testing"

func renderSrc(t *testing.T, src string) string {
	t.Helper()
	env := NewEnvironment()
	tpl, err := env.AddTemplate("t", src)
	if err != nil {
		t.Fatalf("AddTemplate: %v", err)
	}
	out, err := tpl.Render(nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out
}

func TestMacroPositionalAndKwargs(t *testing.T) {
	src := "{% macro f(a, b=2) %}{{ a }}-{{ b }}{% endmacro %}{{ f(1) }}|{{ f(1, b=9) }}|{{ f(a=5) }}"
	got := renderSrc(t, src)
	if want := "1-2|1-9|5-2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMacroVarargsKwargs(t *testing.T) {
	src := "{% macro f(*args, **kw) %}{{ args|length }}-{{ kw|length }}{% endmacro %}{{ f(1,2,3,x=1) }}"
	got := renderSrc(t, src)
	if want := "3-1"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMacroRecursionGuard(t *testing.T) {
	env := NewEnvironment()
	tpl, err := env.AddTemplate("t", "{% macro f(n) %}{{ f(n+1) }}{% endmacro %}{{ f(0) }}")
	if err != nil {
		t.Fatal(err)
	}
	_, err = tpl.Render(nil)
	if err == nil {
		t.Fatal("expected recursion-depth error, got nil")
	}
}

func TestCallBlockInjectsCaller(t *testing.T) {
	src := "{% macro wrap() %}<b>{{ caller() }}</b>{% endmacro %}" +
		"{% call wrap() %}hi{% endcall %}"
	got := renderSrc(t, src)
	if want := "<b>hi</b>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCallBlockWithParams(t *testing.T) {
	src := "{% macro wrap() %}{{ caller(1, 2) }}{% endmacro %}" +
		"{% call(a, b) wrap() %}{{ a }}+{{ b }}{% endcall %}"
	got := renderSrc(t, src)
	if want := "1+2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
