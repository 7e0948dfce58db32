package gojinja

import (
	"github.com/goccy/go-yaml"
)

// Context is the type-erased entry point spec §1/§6 names: "a mapping,
// a sequence-of-pairs, or an object exposing a to_template_values()
// capability". Internally it is just a resolved map of Values, built by
// one of the constructors below.
//
// Grounded on the teacher's Context (context.go), generalized from
// map[string]any to the tagged-union Value model.
type Context struct {
	vars map[string]*Value
}

// NewContext builds a Context from a plain Go map, converting every
// value through FromAny.
func NewContext(data map[string]interface{}) (*Context, error) {
	vars := map[string]*Value{}
	for k, v := range data {
		if !isValidIdentifier(k) {
			return nil, newError(SenderConversion, "context key %q is not a valid identifier", k)
		}
		val, err := FromAny(v)
		if err != nil {
			return nil, wrapError(err, SenderConversion, "converting context key "+k)
		}
		vars[k] = val
	}
	return &Context{vars: vars}, nil
}

// ContextFromValues builds a Context directly from already-converted
// Values, skipping FromAny entirely.
func ContextFromValues(data map[string]*Value) *Context {
	vars := map[string]*Value{}
	for k, v := range data {
		vars[k] = v
	}
	return &Context{vars: vars}
}

// ContextFromYAML parses a YAML mapping document into a Context, a
// concrete instance of spec §1's "mapping" Context entry-point using
// goccy/go-yaml, grounded on the pack's CWBudde-go-dws example, which
// uses the same library for config decoding.
func ContextFromYAML(data []byte) (*Context, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, wrapError(err, SenderConversion, "parsing YAML context")
	}
	return NewContext(raw)
}

func isValidIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i, c := range s {
		if i == 0 && !isIdentStartByte(byte(c)) {
			return false
		}
		if i > 0 && !isIdentContByte(byte(c)) {
			return false
		}
	}
	return true
}

func isIdentStartByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentContByte(c byte) bool {
	return isIdentStartByte(c) || (c >= '0' && c <= '9')
}
