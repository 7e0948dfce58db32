package gojinja

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestToJSONRoundTrip(t *testing.T) {
	m := NewMap()
	m.MapSet("name", String("ada"))
	m.MapSet("age", Int(36))
	m.MapSet("tags", Seq([]*Value{String("x"), String("y")}))
	m.MapSet("active", Bool(true))
	m.MapSet("missing", Undefined())

	out, err := filterToJSON(m, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !out.IsSafe() {
		t.Error("tojson output should be marked safe")
	}

	parsed := gjson.Parse(out.Str())
	if got := parsed.Get("name").String(); got != "ada" {
		t.Errorf("name = %q, want %q", got, "ada")
	}
	if got := parsed.Get("age").Int(); got != 36 {
		t.Errorf("age = %d, want 36", got)
	}
	if got := parsed.Get("tags.0").String(); got != "x" {
		t.Errorf("tags.0 = %q, want %q", got, "x")
	}
	if got := parsed.Get("active").Bool(); !got {
		t.Error("active should be true")
	}
	if !parsed.Get("missing").IsNull() {
		t.Error("Undefined should serialize to null")
	}
}

func TestToJSONStringEscaping(t *testing.T) {
	out, err := filterToJSON(String("a\"b\nc"), nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	parsed := gjson.Parse(out.Str())
	if got := parsed.String(); got != "a\"b\nc" {
		t.Errorf("round-tripped string = %q, want %q", got, "a\"b\nc")
	}
}

func TestToJSONPretty(t *testing.T) {
	m := NewMap()
	m.MapSet("a", Int(1))
	out, err := filterToJSON(m, []*Value{Bool(true)}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Str() == "" {
		t.Fatal("pretty output should not be empty")
	}
	if !gjson.Valid(out.Str()) {
		t.Errorf("pretty output is not valid JSON: %s", out.Str())
	}
}
