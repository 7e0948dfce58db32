package gojinja

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// registerBuiltinFilters seeds an Environment's filter table with the
// fixed catalog of spec §4.5. Grounded in shape on the teacher's
// filters_builtin.go init()-time registration, rebuilt against Jinja2
// semantics and the FilterFunc(subject, args, kwargs, state) contract.
func registerBuiltinFilters(env *Environment) {
	f := env.filters
	f["upper"] = filterUpper
	f["lower"] = filterLower
	f["capitalize"] = filterCapitalize
	f["title"] = filterTitle
	f["trim"] = filterTrim
	f["length"] = filterLength
	f["count"] = filterLength
	f["first"] = filterFirst
	f["last"] = filterLast
	f["reverse"] = filterReverse
	f["sort"] = filterSort
	f["join"] = filterJoin
	f["replace"] = filterReplace
	f["split"] = filterSplit
	f["abs"] = filterAbs
	f["int"] = filterInt
	f["float"] = filterFloat
	f["string"] = filterString
	f["default"] = filterDefault
	f["d"] = filterDefault
	f["list"] = filterList
	f["batch"] = filterBatch
	f["slice"] = filterSlice
	f["items"] = filterItems
	f["dictsort"] = filterDictsort
	f["groupby"] = filterGroupby
	f["map"] = filterMap
	f["select"] = filterSelect
	f["reject"] = filterReject
	f["selectattr"] = filterSelectattr
	f["rejectattr"] = filterRejectattr
	f["unique"] = filterUnique
	f["min"] = filterMin
	f["max"] = filterMax
	f["sum"] = filterSum
	f["round"] = filterRound
	f["attr"] = filterAttr
	f["safe"] = filterSafe
	f["escape"] = filterEscape
	f["e"] = filterEscape
	f["striptags"] = filterStriptags
	f["urlencode"] = filterUrlencode
	f["indent"] = filterIndent
	f["wordcount"] = filterWordcount
	f["truncate"] = filterTruncate
	f["wordwrap"] = filterWordwrap
	f["center"] = filterCenter
	f["format"] = filterFormat
	// tojson/pprint/xmlattr live in json.go / filters_debug.go.
	f["tojson"] = filterToJSON
	f["pprint"] = filterPprint
	f["xmlattr"] = filterXMLAttr
}

func filterUpper(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	return String(cases.Upper(language.Und).String(s.String())), nil
}

func filterLower(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	return String(cases.Lower(language.Und).String(s.String())), nil
}

func filterCapitalize(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	str := s.String()
	if str == "" {
		return String(""), nil
	}
	lower := cases.Lower(language.Und).String(str)
	r := []rune(lower)
	r[0] = []rune(cases.Upper(language.Und).String(string(r[0])))[0]
	return String(string(r)), nil
}

func filterTitle(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	return String(cases.Title(language.Und).String(s.String())), nil
}

func filterTrim(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	cut := " \t\n\r"
	if len(args) > 0 {
		cut = args[0].String()
	}
	return String(strings.Trim(s.String(), cut)), nil
}

func filterLength(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	n, ok := s.Len()
	if !ok {
		return nil, newError(SenderType, "'%s' has no length", s.Kind())
	}
	return Int(int64(n)), nil
}

func filterFirst(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	items, err := s.Iterate()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return Undefined(), nil
	}
	return items[0], nil
}

func filterLast(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	items, err := s.Iterate()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return Undefined(), nil
	}
	return items[len(items)-1], nil
}

func filterReverse(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	if s.Kind() == KindString {
		r := []rune(s.Str())
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return String(string(r)), nil
	}
	items, err := s.Iterate()
	if err != nil {
		return nil, err
	}
	out := make([]*Value, len(items))
	for i, v := range items {
		out[len(items)-1-i] = v
	}
	return Seq(out), nil
}

func filterSort(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	items, err := s.Iterate()
	if err != nil {
		return nil, err
	}
	out := append([]*Value{}, items...)
	reverse := kwarg(kwargs, "reverse", Bool(false)).IsTrue()
	attrName := ""
	if v, ok := kwargs["attribute"]; ok {
		attrName = v.String()
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if attrName != "" {
			a, b = resolveAttr(a, attrName), resolveAttr(b, attrName)
		}
		cmp := a.Compare(b)
		if reverse {
			return cmp > 0
		}
		return cmp < 0
	})
	return Seq(out), nil
}

func filterJoin(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	sep := ""
	if len(args) > 0 {
		sep = args[0].String()
	}
	items, err := s.Iterate()
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = v.String()
	}
	return String(strings.Join(parts, sep)), nil
}

func filterReplace(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	if len(args) < 2 {
		return nil, newError(SenderType, "replace requires 2 arguments")
	}
	old, new := args[0].String(), args[1].String()
	count := -1
	if len(args) > 2 {
		count = int(args[2].Integer())
	}
	return String(strings.Replace(s.String(), old, new, count)), nil
}

func filterSplit(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	sep := " "
	if len(args) > 0 {
		sep = args[0].String()
	}
	parts := strings.Split(s.String(), sep)
	out := make([]*Value, len(parts))
	for i, p := range parts {
		out[i] = String(p)
	}
	return Seq(out), nil
}

func filterAbs(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	if s.IsInt() {
		v := s.Integer()
		if v < 0 {
			v = -v
		}
		return Int(v), nil
	}
	v := s.Float()
	if v < 0 {
		v = -v
	}
	return Float(v), nil
}

func filterInt(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	def := int64(0)
	if len(args) > 0 {
		def = args[0].Integer()
	}
	if s.Kind() == KindString {
		i, err := strconv.ParseInt(strings.TrimSpace(s.Str()), 10, 64)
		if err != nil {
			return Int(def), nil
		}
		return Int(i), nil
	}
	return Int(s.Integer()), nil
}

func filterFloat(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	def := 0.0
	if len(args) > 0 {
		def = args[0].Float()
	}
	if s.Kind() == KindString {
		f, err := strconv.ParseFloat(strings.TrimSpace(s.Str()), 64)
		if err != nil {
			return Float(def), nil
		}
		return Float(f), nil
	}
	return Float(s.Float()), nil
}

func filterString(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	return String(s.String()), nil
}

func filterDefault(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	def := String("")
	if len(args) > 0 {
		def = args[0]
	}
	boolean := kwarg(kwargs, "boolean", Bool(false)).IsTrue()
	if s.IsUndefined() || (boolean && !s.IsTrue()) {
		return def, nil
	}
	return s, nil
}

func filterList(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	items, err := s.Iterate()
	if err != nil {
		return nil, err
	}
	return Seq(items), nil
}

func filterBatch(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	if len(args) == 0 {
		return nil, newError(SenderType, "batch requires a size argument")
	}
	size := int(args[0].Integer())
	if size <= 0 {
		return nil, newError(SenderType, "batch size must be positive")
	}
	var fill *Value
	if len(args) > 1 {
		fill = args[1]
	}
	items, err := s.Iterate()
	if err != nil {
		return nil, err
	}
	var out []*Value
	for i := 0; i < len(items); i += size {
		end := i + size
		var batch []*Value
		if end > len(items) {
			batch = append(batch, items[i:]...)
			if fill != nil {
				for len(batch) < size {
					batch = append(batch, fill)
				}
			}
		} else {
			batch = items[i:end]
		}
		out = append(out, Seq(batch))
	}
	return Seq(out), nil
}

func filterSlice(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	if len(args) == 0 {
		return nil, newError(SenderType, "slice requires a count argument")
	}
	n := int(args[0].Integer())
	if n <= 0 {
		return nil, newError(SenderType, "slice count must be positive")
	}
	items, err := s.Iterate()
	if err != nil {
		return nil, err
	}
	var fill *Value
	if len(args) > 1 {
		fill = args[1]
	}
	perSlice := len(items) / n
	extra := len(items) % n
	var out []*Value
	offset := 0
	for i := 0; i < n; i++ {
		sz := perSlice
		if i < extra {
			sz++
		}
		end := offset + sz
		if end > len(items) {
			end = len(items)
		}
		slice := append([]*Value{}, items[offset:end]...)
		if fill != nil && i >= extra && extra > 0 && sz < perSlice+1 {
			slice = append(slice, fill)
		}
		out = append(out, Seq(slice))
		offset = end
	}
	return Seq(out), nil
}

func filterItems(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	if s.Kind() != KindMap {
		return nil, newError(SenderType, "items requires a map")
	}
	var out []*Value
	for _, k := range s.MapKeys() {
		v, _ := s.MapGet(k)
		out = append(out, Seq([]*Value{String(k), v}))
	}
	return Seq(out), nil
}

func filterDictsort(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	if s.Kind() != KindMap {
		return nil, newError(SenderType, "dictsort requires a map")
	}
	by := "key"
	if v, ok := kwargs["by"]; ok {
		by = v.String()
	} else if len(args) > 0 {
		by = args[0].String()
	}
	reverse := kwarg(kwargs, "reverse", Bool(false)).IsTrue()
	keys := append([]string{}, s.MapKeys()...)
	sort.SliceStable(keys, func(i, j int) bool {
		if by == "value" {
			a, _ := s.MapGet(keys[i])
			b, _ := s.MapGet(keys[j])
			if reverse {
				return a.Compare(b) > 0
			}
			return a.Compare(b) < 0
		}
		if reverse {
			return keys[i] > keys[j]
		}
		return keys[i] < keys[j]
	})
	out := make([]*Value, len(keys))
	for i, k := range keys {
		v, _ := s.MapGet(k)
		out[i] = Seq([]*Value{String(k), v})
	}
	return Seq(out), nil
}

func filterGroupby(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	if len(args) == 0 {
		return nil, newError(SenderType, "groupby requires an attribute argument")
	}
	attrName := args[0].String()
	items, err := s.Iterate()
	if err != nil {
		return nil, err
	}
	order := []string{}
	groups := map[string][]*Value{}
	for _, item := range items {
		key := resolveAttr(item, attrName).String()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], item)
	}
	sort.Strings(order)
	var out []*Value
	for _, key := range order {
		out = append(out, Seq([]*Value{String(key), Seq(groups[key])}))
	}
	return Seq(out), nil
}

func filterMap(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	items, err := s.Iterate()
	if err != nil {
		return nil, err
	}
	if attrName, ok := kwargs["attribute"]; ok {
		out := make([]*Value, len(items))
		for i, v := range items {
			out[i] = resolveAttr(v, attrName.String())
		}
		return Seq(out), nil
	}
	if len(args) == 0 {
		return nil, newError(SenderType, "map requires a filter name or attribute=")
	}
	filterName := args[0].String()
	rest := args[1:]
	fn, err := state.env.resolveFilter(filterName)
	if err != nil {
		return nil, err
	}
	out := make([]*Value, len(items))
	for i, v := range items {
		r, err := fn(v, rest, nil, state)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return Seq(out), nil
}

func filterSelect(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	return selectReject(s, args, state, true)
}

func filterReject(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	return selectReject(s, args, state, false)
}

func selectReject(s *Value, args []*Value, state *State, keepTrue bool) (*Value, error) {
	items, err := s.Iterate()
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		var out []*Value
		for _, v := range items {
			if v.IsTrue() == keepTrue {
				out = append(out, v)
			}
		}
		return Seq(out), nil
	}
	testName := args[0].String()
	rest := args[1:]
	fn, err := state.env.resolveTest(testName)
	if err != nil {
		return nil, err
	}
	var out []*Value
	for _, v := range items {
		ok, err := fn(v, rest)
		if err != nil {
			return nil, err
		}
		if ok == keepTrue {
			out = append(out, v)
		}
	}
	return Seq(out), nil
}

func filterSelectattr(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	return selectRejectAttr(s, args, state, true)
}

func filterRejectattr(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	return selectRejectAttr(s, args, state, false)
}

func selectRejectAttr(s *Value, args []*Value, state *State, keepTrue bool) (*Value, error) {
	if len(args) == 0 {
		return nil, newError(SenderType, "selectattr/rejectattr requires an attribute name")
	}
	attrName := args[0].String()
	items, err := s.Iterate()
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		var out []*Value
		for _, v := range items {
			if resolveAttr(v, attrName).IsTrue() == keepTrue {
				out = append(out, v)
			}
		}
		return Seq(out), nil
	}
	testName := args[1].String()
	rest := args[2:]
	fn, err := state.env.resolveTest(testName)
	if err != nil {
		return nil, err
	}
	var out []*Value
	for _, v := range items {
		ok, err := fn(resolveAttr(v, attrName), rest)
		if err != nil {
			return nil, err
		}
		if ok == keepTrue {
			out = append(out, v)
		}
	}
	return Seq(out), nil
}

func filterUnique(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	items, err := s.Iterate()
	if err != nil {
		return nil, err
	}
	var out []*Value
	for _, v := range items {
		dup := false
		for _, u := range out {
			if u.Equals(v) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return Seq(out), nil
}

func filterMin(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	return minMax(s, false)
}

func filterMax(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	return minMax(s, true)
}

func minMax(s *Value, wantMax bool) (*Value, error) {
	items, err := s.Iterate()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return Undefined(), nil
	}
	best := items[0]
	for _, v := range items[1:] {
		cmp := v.Compare(best)
		if (wantMax && cmp > 0) || (!wantMax && cmp < 0) {
			best = v
		}
	}
	return best, nil
}

func filterSum(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	items, err := s.Iterate()
	if err != nil {
		return nil, err
	}
	attrName := ""
	if v, ok := kwargs["attribute"]; ok {
		attrName = v.String()
	}
	start := kwarg(kwargs, "start", Int(0))
	total := start
	for _, v := range items {
		if attrName != "" {
			v = resolveAttr(v, attrName)
		}
		total = numericAdd(total, v)
	}
	return total, nil
}

func filterRound(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	precision := 0
	if len(args) > 0 {
		precision = int(args[0].Integer())
	}
	method := "common"
	if len(args) > 1 {
		method = args[1].String()
	}
	mult := 1.0
	for i := 0; i < precision; i++ {
		mult *= 10
	}
	v := s.Float() * mult
	switch method {
	case "ceil":
		v = ceilFloat(v)
	case "floor":
		v = floorFloat(v)
	default:
		v = floorFloat(v + 0.5)
	}
	return Float(v / mult), nil
}

func floorFloat(f float64) float64 {
	i := int64(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return float64(i)
}

func ceilFloat(f float64) float64 {
	i := int64(f)
	if f > 0 && float64(i) != f {
		i++
	}
	return float64(i)
}

func filterAttr(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	if len(args) == 0 {
		return nil, newError(SenderType, "attr requires a name argument")
	}
	return resolveAttr(s, args[0].String()), nil
}

func filterSafe(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	return s.AsSafe(), nil
}

func filterEscape(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	if s.IsSafe() {
		return s, nil
	}
	return SafeString(htmlEscape(s.String())), nil
}

var tagRE = regexp.MustCompile(`<[^>]*>`)

func filterStriptags(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	stripped := tagRE.ReplaceAllString(s.String(), "")
	return String(strings.Join(strings.Fields(stripped), " ")), nil
}

func filterUrlencode(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	return String(url.QueryEscape(s.String())), nil
}

func filterIndent(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	width := 4
	if len(args) > 0 {
		width = int(args[0].Integer())
	}
	first := kwarg(kwargs, "first", Bool(false)).IsTrue()
	blank := kwarg(kwargs, "blank", Bool(false)).IsTrue()
	pad := strings.Repeat(" ", width)
	lines := strings.Split(s.String(), "\n")
	for i, line := range lines {
		if i == 0 && !first {
			continue
		}
		if line == "" && !blank {
			continue
		}
		lines[i] = pad + line
	}
	return String(strings.Join(lines, "\n")), nil
}

func filterWordcount(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	return Int(int64(len(strings.Fields(s.String())))), nil
}

func filterTruncate(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	length := 255
	if len(args) > 0 {
		length = int(args[0].Integer())
	}
	killwords := false
	if len(args) > 1 {
		killwords = args[1].IsTrue()
	}
	end := "..."
	if len(args) > 2 {
		end = args[2].String()
	}
	str := s.String()
	if len(str) <= length {
		return String(str), nil
	}
	if killwords {
		cut := length - len(end)
		if cut < 0 {
			cut = 0
		}
		return String(str[:cut] + end), nil
	}
	cut := str[:length]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return String(cut + end), nil
}

func filterWordwrap(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	width := 79
	if len(args) > 0 {
		width = int(args[0].Integer())
	}
	words := strings.Fields(s.String())
	var lines []string
	var cur strings.Builder
	for _, w := range words {
		if cur.Len() > 0 && cur.Len()+1+len(w) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return String(strings.Join(lines, "\n")), nil
}

func filterCenter(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	width := 80
	if len(args) > 0 {
		width = int(args[0].Integer())
	}
	str := s.String()
	if len(str) >= width {
		return String(str), nil
	}
	total := width - len(str)
	left := total / 2
	right := total - left
	return String(strings.Repeat(" ", left) + str + strings.Repeat(" ", right)), nil
}

func filterFormat(s *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error) {
	out := s.String()
	for i, a := range args {
		placeholder := "{" + strconv.Itoa(i) + "}"
		out = strings.ReplaceAll(out, placeholder, a.String())
	}
	return String(out), nil
}
