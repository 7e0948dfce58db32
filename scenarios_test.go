package gojinja

import (
	"strings"
	"testing"

	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner, per the teacher's own
// pongo2_issues_test.go idiom.
func TestScenarios(t *testing.T) { TestingT(t) }

type ScenarioSuite struct{}

var _ = Suite(&ScenarioSuite{})

func render(c *C, src string, vars map[string]interface{}) string {
	env := NewEnvironment()
	tpl, err := env.AddTemplate("t", src)
	c.Assert(err, IsNil)
	ctx, err := NewContext(vars)
	c.Assert(err, IsNil)
	out, err := tpl.Render(ctx)
	c.Assert(err, IsNil)
	return out
}

func (s *ScenarioSuite) TestQuickStart(c *C) {
	got := render(c, "Hello {{ name }}!", map[string]interface{}{"name": "World"})
	c.Check(got, Equals, "Hello World!")
}

func (s *ScenarioSuite) TestFilterChain(c *C) {
	got := render(c, "{{ 'hello'|upper|reverse }}", nil)
	c.Check(got, Equals, "OLLEH")
}

func (s *ScenarioSuite) TestForWithLoop(c *C) {
	src := "{% for x in [1,2,3] %}{{ loop.index }}:{{ x }}{% if not loop.last %},{% endif %}{% endfor %}"
	got := render(c, src, nil)
	c.Check(got, Equals, "1:1,2:2,3:3")
}

func (s *ScenarioSuite) TestInheritanceWithSuper(c *C) {
	env := NewEnvironment()
	_, err := env.AddTemplate("p", "{% block b %}P{% endblock %}")
	c.Assert(err, IsNil)
	child, err := env.AddTemplate("c", "{% extends 'p' %}{% block b %}{{ super() }}+C{% endblock %}")
	c.Assert(err, IsNil)
	out, err := child.Render(nil)
	c.Assert(err, IsNil)
	c.Check(out, Equals, "P+C")
}

func (s *ScenarioSuite) TestAutoEscapeWithSafe(c *C) {
	got := render(c, "{{ a }} {{ b|safe }}", map[string]interface{}{"a": "<x>", "b": "<x>"})
	c.Check(got, Equals, "&lt;x&gt; <x>")
}

func (s *ScenarioSuite) TestMacroWithDefaults(c *C) {
	src := "{% macro g(n='W') %}Hi {{ n }}{% endmacro %}{{ g() }}|{{ g('A') }}"
	got := render(c, src, nil)
	c.Check(got, Equals, "Hi W|Hi A")
}

func (s *ScenarioSuite) TestArithmetic(c *C) {
	got := render(c, "{{ 10 // 3 }} {{ 10 / 4 }} {{ 2 ** 3 }} {{ -5 }}", nil)
	c.Check(got, Equals, "3 2.5 8 -5")
}

func (s *ScenarioSuite) TestDictSortByValue(c *C) {
	src := "{% for k,v in {'a':2,'b':1}|dictsort(by='value') %}{{ k }}{% endfor %}"
	got := render(c, src, nil)
	c.Check(got, Equals, "ba")
}

func (s *ScenarioSuite) TestDivisionByZero(c *C) {
	env := NewEnvironment()
	tpl, err := env.AddTemplate("t", "{{ 1 / 0 }}")
	c.Assert(err, IsNil)
	_, err = tpl.Render(nil)
	c.Assert(err, NotNil)
	c.Check(strings.Contains(err.Error(), "Division by zero"), Equals, true)
}

func (s *ScenarioSuite) TestIgnoreMissingInclude(c *C) {
	got := render(c, "{% include 'nope' ignore missing %}ok", nil)
	c.Check(got, Equals, "ok")
}
