package gojinja

import (
	"strings"

	"github.com/kr/pretty"
)

// registerBuiltinGlobals seeds an Environment's Globals with the fixed
// global-function catalog of spec §4.5: range, lipsum, cycler, joiner,
// namespace, dict, debug.
func registerBuiltinGlobals(env *Environment) {
	env.Globals["range"] = NewCallable(globalRange)
	env.Globals["lipsum"] = NewCallable(globalLipsum)
	env.Globals["cycler"] = NewCallable(globalCycler)
	env.Globals["joiner"] = NewCallable(globalJoiner)
	env.Globals["namespace"] = NewCallable(globalNamespace)
	env.Globals["dict"] = NewCallable(globalDict)
	env.Globals["debug"] = NewCallable(globalDebug)
}

// globalRange implements `range(stop | start,stop | start,stop,step)`,
// step != 0 enforced (spec §4.5, §7's "range step zero" Arithmetic
// example).
func globalRange(args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	var start, stop, step int64 = 0, 0, 1
	switch len(args) {
	case 1:
		stop = args[0].Integer()
	case 2:
		start, stop = args[0].Integer(), args[1].Integer()
	case 3:
		start, stop, step = args[0].Integer(), args[1].Integer(), args[2].Integer()
	default:
		return nil, newError(SenderType, "range() takes 1 to 3 arguments")
	}
	if step == 0 {
		return nil, newError(SenderArithmetic, "range() step argument must not be zero")
	}
	var out []*Value
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, Int(i))
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, Int(i))
		}
	}
	return Seq(out), nil
}

// loremParagraphs and loremWords back `lipsum`, grounded on the
// teacher's {% lorem %} tag word/paragraph source text (tags_lorem.go),
// re-exposed as the global function Jinja2 names instead of a tag.
var (
	loremParagraphs = strings.Split(loremText, "\n")
	loremWords       = strings.Fields(loremText)
)

func globalLipsum(args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	n := 5
	html := true
	if len(args) > 0 {
		n = int(args[0].Integer())
	}
	if v, ok := kwargs["n"]; ok {
		n = int(v.Integer())
	}
	if len(args) > 1 {
		html = args[1].IsTrue()
	}
	if v, ok := kwargs["html"]; ok {
		html = v.IsTrue()
	}
	if n < 0 {
		n = 0
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		p := loremParagraphs[i%len(loremParagraphs)]
		if html {
			sb.WriteString("<p>")
			sb.WriteString(p)
			sb.WriteString("</p>")
		} else {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(p)
		}
	}
	return SafeString(sb.String()), nil
}

func globalCycler(args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	return FromObject(&cyclerObject{items: args}), nil
}

func globalJoiner(args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	sep := ", "
	if len(args) > 0 {
		sep = args[0].String()
	}
	if v, ok := kwargs["sep"]; ok {
		sep = v.String()
	}
	return FromObject(&joinerObject{sep: sep}), nil
}

func globalNamespace(args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	ns := newNamespace()
	for k, v := range kwargs {
		ns.m.Set(k, v)
	}
	return FromObject(ns), nil
}

func globalDict(args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	m := NewMap()
	for k, v := range kwargs {
		m.MapSet(k, v)
	}
	return m, nil
}

// globalDebug dumps the current scope stack using kr/pretty, the same
// library backing the `pprint` filter (filters_debug.go).
func globalDebug(args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	merged := map[string]interface{}{}
	for _, scope := range state.scopes {
		for k, v := range scope {
			merged[k] = v.Interface()
		}
	}
	return SafeString(pretty.Sprint(merged)), nil
}

const loremText = `Lorem ipsum dolor sit amet, consectetur adipisici elit, sed eiusmod tempor incidunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquid ex ea commodi consequat. Quis aute iure reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint obcaecat cupiditat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum.
Duis autem vel eum iriure dolor in hendrerit in vulputate velit esse molestie consequat, vel illum dolore eu feugiat nulla facilisis at vero eros et accumsan et iusto odio dignissim qui blandit praesent luptatum zzril delenit augue duis dolore te feugait nulla facilisi.
Ut wisi enim ad minim veniam, quis nostrud exerci tation ullamcorper suscipit lobortis nisl ut aliquip ex ea commodo consequat. Duis autem vel eum iriure dolor in hendrerit in vulputate velit esse molestie consequat, vel illum dolore eu feugiat nulla facilisis at vero eros et accumsan et iusto odio dignissim qui blandit praesent luptatum zzril delenit augue duis dolore te feugait nulla facilisi.
Nam liber tempor cum soluta nobis eleifend option congue nihil imperdiet doming id quod mazim placerat facer possim assum. Lorem ipsum dolor sit amet, consectetuer adipiscing elit, sed diam nonummy nibh euismod tincidunt ut laoreet dolore magna aliquam erat volutpat.
At vero eos et accusam et justo duo dolores et ea rebum. Stet clita kasd gubergren, no sea takimata sanctus est Lorem ipsum dolor sit amet.`
