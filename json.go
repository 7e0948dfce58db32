package gojinja

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/pretty"
)

// filterToJSON backs `tojson(pretty)` per spec §4.3: Undefined and
// non-finite floats serialize to null, maps serialize with sorted keys,
// and strings escape the fixed control-character set. The teacher's
// pack wires tidwall/pretty for its re-indent pass rather than a
// hand-rolled indenter.
func filterToJSON(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	want := kwarg(kwargs, "pretty", Bool(false)).IsTrue()
	if len(args) > 0 {
		want = args[0].IsTrue()
	}
	var sb strings.Builder
	writeJSON(&sb, s)
	out := sb.String()
	if want {
		out = string(pretty.PrettyOptions([]byte(out), &pretty.Options{Indent: "  ", SortKeys: true}))
		out = strings.TrimRight(out, "\n")
	}
	return SafeString(out), nil
}

func writeJSON(sb *strings.Builder, v *Value) {
	switch v.Kind() {
	case KindUndefined, KindNone:
		sb.WriteString("null")
	case KindBool:
		if v.Bool() {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.Integer(), 10))
	case KindFloat:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			sb.WriteString("null")
			return
		}
		sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case KindString:
		writeJSONString(sb, v.Str())
	case KindSeq:
		sb.WriteByte('[')
		items := v.SeqItems()
		for i, item := range items {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSON(sb, item)
		}
		sb.WriteByte(']')
	case KindMap:
		sb.WriteByte('{')
		keys := append([]string{}, v.MapKeys()...)
		sort.Strings(keys)
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSONString(sb, k)
			sb.WriteByte(':')
			val, _ := v.MapGet(k)
			writeJSON(sb, val)
		}
		sb.WriteByte('}')
	default:
		writeJSONString(sb, v.String())
	}
}

func writeJSONString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				sb.WriteString(`\u`)
				hex := strconv.FormatInt(int64(r), 16)
				for len(hex) < 4 {
					hex = "0" + hex
				}
				sb.WriteString(hex)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
}
