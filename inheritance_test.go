package gojinja

import "testing"

// TestThreeLevelInheritanceClearsOverrides exercises spec §4.4.2's
// override-clearing rule: a grandchild's block override must not leak
// into a sibling block of the same name further up the extends chain.
func TestThreeLevelInheritanceClearsOverrides(t *testing.T) {
	env := NewEnvironment()
	mustAdd(t, env, "base", "[{% block a %}base-a{% endblock %}|{% block b %}base-b{% endblock %}]")
	mustAdd(t, env, "mid", "{% extends 'base' %}{% block a %}mid-a{% endblock %}")
	leaf, err := env.AddTemplate("leaf", "{% extends 'mid' %}{% block b %}leaf-b{% endblock %}")
	if err != nil {
		t.Fatal(err)
	}

	out, err := leaf.Render(nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := "[mid-a|leaf-b]"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestSuperInsideNestedBlock(t *testing.T) {
	env := NewEnvironment()
	mustAdd(t, env, "base", "{% block x %}Base{% endblock %}")
	child, err := env.AddTemplate("child", "{% extends 'base' %}{% block x %}{{ super() }}-Child{% endblock %}")
	if err != nil {
		t.Fatal(err)
	}
	out, err := child.Render(nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := "Base-Child"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func mustAdd(t *testing.T, env *Environment, name, src string) *Template {
	t.Helper()
	tpl, err := env.AddTemplate(name, src)
	if err != nil {
		t.Fatalf("AddTemplate(%q): %v", name, err)
	}
	return tpl
}
