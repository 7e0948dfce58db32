package gojinja

import (
	"testing"

	"github.com/juju/testing"
	gc "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner, grounded in the same pattern
// as the teacher's own issue-regression suite.
func TestRegressions(t *testing.T) { gc.TestingT(t) }

// regressionSuite embeds CleanupSuite so each test can register teardown
// for the shared Environment state it mutates (ban-lists, globals) without
// hand-rolling its own defer bookkeeping.
type regressionSuite struct {
	testing.CleanupSuite
	env *Environment
}

var _ = gc.Suite(&regressionSuite{})

func (s *regressionSuite) SetUpTest(c *gc.C) {
	s.CleanupSuite.SetUpTest(c)
	s.env = NewEnvironment()
}

func (s *regressionSuite) render(c *gc.C, src string, vars map[string]*Value) string {
	tpl, err := s.env.AddTemplate("regress", src)
	c.Assert(err, gc.IsNil)
	out, err := tpl.Render(ContextFromValues(vars))
	c.Assert(err, gc.IsNil)
	return out
}

// TestBannedFilterIsRestored exercises AddFilter/BanFilter and confirms a
// banned filter both fails resolution and is restored once the cleanup
// registered via AddCleanup runs.
func (s *regressionSuite) TestBannedFilterIsRestored(c *gc.C) {
	s.env.BanFilter("upper")
	s.AddCleanup(func(c *gc.C) {
		delete(s.env.bannedFilters, "upper")
		_, err := s.env.resolveFilter("upper")
		c.Check(err, gc.IsNil)
	})

	_, err := s.env.resolveFilter("upper")
	c.Assert(err, gc.NotNil)
}

// TestGlobalOverrideDoesNotLeakAcrossEnvironments guards against a past
// bug class where globals were stored on a package-level map rather than
// per-Environment (see the now-deleted globals.go).
func (s *regressionSuite) TestGlobalOverrideDoesNotLeakAcrossEnvironments(c *gc.C) {
	s.env.AddGlobal("site", String("a"))
	other := NewEnvironment()
	other.AddGlobal("site", String("b"))

	out := s.render(c, "{{ site }}", nil)
	c.Check(out, gc.Equals, "a")

	tpl, err := other.AddTemplate("t2", "{{ site }}")
	c.Assert(err, gc.IsNil)
	out2, err := tpl.Render(nil)
	c.Assert(err, gc.IsNil)
	c.Check(out2, gc.Equals, "b")
}

// TestExtendsBlockOverrideClearing regression-tests the two-pass
// inheritance algorithm's explicit override-table clearing across a
// three-level chain: the grandchild's override of x is consumed at the
// middle template's pass, so the base's pass renders its own block body.
func (s *regressionSuite) TestExtendsBlockOverrideClearing(c *gc.C) {
	_, err := s.env.AddTemplate("base", "[{% block x %}base{% endblock %}]")
	c.Assert(err, gc.IsNil)
	_, err = s.env.AddTemplate("mid", "{% extends 'base' %}{% block x %}mid-{{ self.x() }}{% endblock %}")
	c.Assert(err, gc.IsNil)
	leaf, err := s.env.AddTemplate("leaf", "{% extends 'mid' %}{% block x %}leaf-b{% endblock %}")
	c.Assert(err, gc.IsNil)

	out, err := leaf.Render(nil)
	c.Assert(err, gc.IsNil)
	c.Check(out, gc.Equals, "[base]")
}

// TestMacroRecursionGuardTripsAtLimit confirms the recursion guard fires
// before a runaway macro call exhausts the Go call stack.
func (s *regressionSuite) TestMacroRecursionGuardTripsAtLimit(c *gc.C) {
	tpl, err := s.env.AddTemplate("rec", "{% macro f(n) %}{{ f(n+1) }}{% endmacro %}{{ f(0) }}")
	c.Assert(err, gc.IsNil)
	_, err = tpl.Render(nil)
	c.Assert(err, gc.NotNil)
}

// TestDivisionByZeroErrorText pins the exact error substring surfaced for
// every zero-divisor arithmetic operator.
func (s *regressionSuite) TestDivisionByZeroErrorText(c *gc.C) {
	for _, expr := range []string{"{{ 1/0 }}", "{{ 1//0 }}", "{{ 1%0 }}"} {
		tpl, err := s.env.AddTemplate("divzero", expr)
		c.Assert(err, gc.IsNil)
		_, err = tpl.Render(nil)
		c.Assert(err, gc.NotNil)
		c.Check(err.Error(), gc.Matches, ".*Division by zero.*")
	}
}
