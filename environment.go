package gojinja

import (
	"sync"

	"github.com/juju/loggo"
)

var envLogger = loggo.GetLogger("gojinja")

// Environment owns a template registry, a global-variable mapping, and
// the user-registered filter/test/function tables (spec §3/§6, component
// C5): constructed once, populated, then used to render. Grounded on the
// teacher's TemplateSet (template_sets.go), trimmed to the loader-free
// surface spec §6 names.
type Environment struct {
	mu sync.RWMutex

	templates map[string]*Template

	// Globals holds both Environment-level variables added via AddGlobal
	// and the built-in globals (range, lipsum, cycler, joiner, namespace,
	// dict, debug) seeded at construction — giving user globals
	// registration priority simply by overwriting the same key.
	Globals map[string]*Value

	filters map[string]FilterFunc
	tests   map[string]TestFunc

	bannedFilters map[string]bool
	bannedTests   map[string]bool

	// AutoescapeDefault seeds State.autoescape for every render (spec
	// §6: "Auto-escape mode is HTML by default").
	AutoescapeDefault bool

	// Debug gates the loggo tracing the teacher's TemplateSet.Debug/logf
	// pairing inspired: off by default, matching the teacher.
	Debug bool
}

// NewEnvironment constructs an empty Environment with auto-escape on and
// the built-in filter/test/global tables pre-seeded.
func NewEnvironment() *Environment {
	env := &Environment{
		templates:         map[string]*Template{},
		Globals:           map[string]*Value{},
		filters:           map[string]FilterFunc{},
		tests:             map[string]TestFunc{},
		bannedFilters:     map[string]bool{},
		bannedTests:       map[string]bool{},
		AutoescapeDefault: true,
	}
	registerBuiltinFilters(env)
	registerBuiltinTests(env)
	registerBuiltinGlobals(env)
	return env
}

func (env *Environment) logf(format string, args ...interface{}) {
	if env.Debug {
		envLogger.Debugf(format, args...)
	}
}

// AddTemplate registers a named template, parsing it eagerly so that a
// malformed template fails at registration time (spec §4.2).
func (env *Environment) AddTemplate(name, source string) (*Template, error) {
	body, err := ParseTemplate(name, source)
	if err != nil {
		return nil, err
	}
	tpl := &Template{name: name, env: env, body: body}
	env.mu.Lock()
	env.templates[name] = tpl
	env.mu.Unlock()
	env.logf("added template %q (%d bytes)", name, len(source))
	return tpl, nil
}

// TemplateFromString parses an anonymous template not added to the
// registry.
func (env *Environment) TemplateFromString(source string) (*Template, error) {
	body, err := ParseTemplate("<string>", source)
	if err != nil {
		return nil, err
	}
	return &Template{name: "<string>", env: env, body: body}, nil
}

// GetTemplate looks a registered template up by name, per spec §6's
// "lookup; error on miss" and SPEC_FULL's load-vs-parse-error
// distinction (the error returned here is always Unknown-name, since
// parse errors were already surfaced at AddTemplate time).
func (env *Environment) GetTemplate(name string) (*Template, error) {
	env.mu.RLock()
	tpl, ok := env.templates[name]
	env.mu.RUnlock()
	if !ok {
		return nil, newError(SenderUnknownName, "template %q not found", name)
	}
	return tpl, nil
}

func (env *Environment) AddGlobal(name string, v *Value) {
	env.mu.Lock()
	env.Globals[name] = v
	env.mu.Unlock()
}

func (env *Environment) AddFunction(name string, fn Callable) {
	env.AddGlobal(name, NewCallable(fn))
}

func (env *Environment) AddFilter(name string, fn FilterFunc) {
	env.mu.Lock()
	env.filters[name] = fn
	env.mu.Unlock()
}

func (env *Environment) AddTest(name string, fn TestFunc) {
	env.mu.Lock()
	env.tests[name] = fn
	env.mu.Unlock()
}

// BanFilter and BanTest restrict the named filter/test from resolving,
// adapted from the teacher's TemplateSet.BanTag/BanFilter sandbox-style
// mechanism (SPEC_FULL supplemental feature 4).
func (env *Environment) BanFilter(name string) {
	env.mu.Lock()
	env.bannedFilters[name] = true
	env.mu.Unlock()
}

func (env *Environment) BanTest(name string) {
	env.mu.Lock()
	env.bannedTests[name] = true
	env.mu.Unlock()
}

func (env *Environment) resolveFilter(name string) (FilterFunc, error) {
	env.mu.RLock()
	defer env.mu.RUnlock()
	if env.bannedFilters[name] {
		return nil, newError(SenderUnknownName, "filter %q is banned", name)
	}
	fn, ok := env.filters[name]
	if !ok {
		return nil, newError(SenderUnknownName, "no filter named %q", name)
	}
	return fn, nil
}

func (env *Environment) resolveTest(name string) (TestFunc, error) {
	env.mu.RLock()
	defer env.mu.RUnlock()
	if env.bannedTests[name] {
		return nil, newError(SenderUnknownName, "test %q is banned", name)
	}
	fn, ok := env.tests[name]
	if !ok {
		return nil, newError(SenderUnknownName, "no test named %q", name)
	}
	return fn, nil
}

// FilterExists and TestExists mirror the teacher's FilterExists/
// TagExists introspection surface on TemplateSet.
func (env *Environment) FilterExists(name string) bool {
	env.mu.RLock()
	defer env.mu.RUnlock()
	_, ok := env.filters[name]
	return ok
}

func (env *Environment) TestExists(name string) bool {
	env.mu.RLock()
	defer env.mu.RUnlock()
	_, ok := env.tests[name]
	return ok
}
