package gojinja

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestRenderSnapshot pins a representative render (filters, a for loop,
// and a macro all in one template) against a recorded
// snapshot, catching incidental output-format regressions the scenario
// tests don't individually assert on.
func TestRenderSnapshot(t *testing.T) {
	src := `{% macro greet(name) %}Hello, {{ name|capitalize }}!{% endmacro %}
{% for item in items %}{{ loop.index }}. {{ item|upper }}
{% endfor %}
{{ greet('world') }}
`
	env := NewEnvironment()
	tpl, err := env.AddTemplate("snap", src)
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := NewContext(map[string]interface{}{
		"items": []interface{}{"apple", "banana", "cherry"},
	})
	if err != nil {
		t.Fatal(err)
	}
	out, err := tpl.Render(ctx)
	if err != nil {
		t.Fatal(err)
	}
	snaps.MatchSnapshot(t, out)
}
