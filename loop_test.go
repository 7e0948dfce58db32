package gojinja

import "testing"

func TestLoopRecursive(t *testing.T) {
	src := "{% for item in tree recursive %}[{{ item.name }}{% if item.children %}{{ loop(item.children) }}{% endif %}]{% endfor %}"
	env := NewEnvironment()
	tpl, err := env.AddTemplate("t", src)
	if err != nil {
		t.Fatal(err)
	}

	leaf := NewMap()
	leaf.MapSet("name", String("b"))
	leaf.MapSet("children", Seq(nil))

	root := NewMap()
	root.MapSet("name", String("a"))
	root.MapSet("children", Seq([]*Value{leaf}))

	ctx := ContextFromValues(map[string]*Value{"tree": Seq([]*Value{root})})
	out, err := tpl.Render(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := "[a[b]]"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestLoopElse(t *testing.T) {
	got := renderSrc(t, "{% for x in [] %}{{ x }}{% else %}empty{% endfor %}")
	if want := "empty"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoopChanged(t *testing.T) {
	src := "{% for x in [1,1,2,2,3] %}{% if loop.changed(x) %}{{ x }}{% endif %}{% endfor %}"
	got := renderSrc(t, src)
	if want := "123"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCyclerGlobal(t *testing.T) {
	src := "{% for x in [1,2,3,4] %}{{ c.next() }}{% endfor %}"
	env := NewEnvironment()
	tpl, err := env.AddTemplate("t", "{% set c = cycler('A', 'B') %}"+src)
	if err != nil {
		t.Fatal(err)
	}
	out, err := tpl.Render(nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := "ABAB"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}
