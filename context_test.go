package gojinja

import "testing"

func TestNewContextConvertsValues(t *testing.T) {
	ctx, err := NewContext(map[string]interface{}{
		"name":  "ada",
		"age":   36,
		"tags":  []interface{}{"x", "y"},
		"admin": true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := ctx.vars["name"].Str(); got != "ada" {
		t.Errorf("name = %q, want %q", got, "ada")
	}
	if got := ctx.vars["age"].Integer(); got != 36 {
		t.Errorf("age = %d, want 36", got)
	}
	if !ctx.vars["admin"].Bool() {
		t.Error("admin should be true")
	}
	if len(ctx.vars["tags"].SeqItems()) != 2 {
		t.Error("tags should have 2 items")
	}
}

func TestNewContextRejectsInvalidIdentifier(t *testing.T) {
	_, err := NewContext(map[string]interface{}{"1bad": "x"})
	if err == nil {
		t.Fatal("expected an error for a non-identifier key")
	}
}

func TestContextFromValuesSkipsConversion(t *testing.T) {
	ctx := ContextFromValues(map[string]*Value{"n": Int(7)})
	if ctx.vars["n"].Integer() != 7 {
		t.Errorf("n = %d, want 7", ctx.vars["n"].Integer())
	}
}

func TestContextFromYAML(t *testing.T) {
	yamlDoc := []byte("name: ada\nage: 36\ntags:\n  - x\n  - y\n")
	ctx, err := ContextFromYAML(yamlDoc)
	if err != nil {
		t.Fatal(err)
	}
	if got := ctx.vars["name"].Str(); got != "ada" {
		t.Errorf("name = %q, want %q", got, "ada")
	}
	if got := ctx.vars["age"].Integer(); got != 36 {
		t.Errorf("age = %d, want 36", got)
	}
}

func TestContextDrivesRender(t *testing.T) {
	env := NewEnvironment()
	tpl, err := env.AddTemplate("ctx", "{{ name }} is {{ age }}")
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := NewContext(map[string]interface{}{"name": "ada", "age": 36})
	if err != nil {
		t.Fatal(err)
	}
	out, err := tpl.Render(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := "ada is 36"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}
