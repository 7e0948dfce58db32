package gojinja

import (
	"sort"
	"strings"

	"github.com/kr/pretty"
)

// filterPprint backs the `pprint` filter, sharing kr/pretty with the
// `debug()` global (globals_builtin.go) for a structured Go-side dump
// rather than Python's pprint module output.
func filterPprint(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	return SafeString(pretty.Sprint(s.Interface())), nil
}

// filterXMLAttr renders a map as a string of `key="value"` XML/HTML
// attribute pairs, skipping None/Undefined values, per Jinja2's xmlattr
// filter; a false Bool value is rendered, not skipped.
func filterXMLAttr(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	if s.Kind() != KindMap {
		return nil, newError(SenderType, "xmlattr requires a map")
	}
	autospace := true
	if len(args) > 0 {
		autospace = args[0].IsTrue()
	}
	keys := append([]string{}, s.MapKeys()...)
	sort.Strings(keys)
	var parts []string
	for _, k := range keys {
		v, _ := s.MapGet(k)
		if v.IsNone() || v.IsUndefined() {
			continue
		}
		parts = append(parts, k+`="`+htmlEscape(v.String())+`"`)
	}
	out := strings.Join(parts, " ")
	if autospace && out != "" {
		out = " " + out
	}
	return SafeString(out), nil
}
