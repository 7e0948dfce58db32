package gojinja

import "strings"

// registerBuiltinTests seeds an Environment's test table with the fixed
// catalog of spec §4.5, grounded in shape on registerBuiltinFilters
// (filters_builtin.go) but against the narrower TestFunc contract
// (tests.go): (subject, positional_args) -> (bool, error).
func registerBuiltinTests(env *Environment) {
	t := env.tests
	t["defined"] = testDefined
	t["undefined"] = testUndefined
	t["none"] = testNone
	t["true"] = testTrue
	t["false"] = testFalse
	t["odd"] = testOdd
	t["even"] = testEven
	t["divisibleby"] = testDivisibleby
	t["number"] = testNumber
	t["string"] = testString
	t["sequence"] = testSequence
	t["mapping"] = testMapping
	t["iterable"] = testIterable
	t["callable"] = testCallable
	t["sameas"] = testSameas
	t["eq"] = testEq
	t["equalto"] = testEq
	t["=="] = testEq
	t["ne"] = testNe
	t["!="] = testNe
	t["lt"] = testLt
	t["lessthan"] = testLt
	t["<"] = testLt
	t["le"] = testLe
	t["<="] = testLe
	t["gt"] = testGt
	t["greaterthan"] = testGt
	t[">"] = testGt
	t["ge"] = testGe
	t[">="] = testGe
	t["in"] = testIn
	t["lower"] = testLower
	t["upper"] = testUpper
	t["startingwith"] = testStartingwith
	t["endingwith"] = testEndingwith
	t["truthy"] = testTruthy
	t["falsy"] = testFalsy
}

func testDefined(s *Value, args []*Value) (bool, error)   { return !s.IsUndefined(), nil }
func testUndefined(s *Value, args []*Value) (bool, error) { return s.IsUndefined(), nil }
func testNone(s *Value, args []*Value) (bool, error)      { return s.IsNone(), nil }
func testTrue(s *Value, args []*Value) (bool, error)      { return s.IsBool() && s.Bool(), nil }
func testFalse(s *Value, args []*Value) (bool, error)     { return s.IsBool() && !s.Bool(), nil }

func testOdd(s *Value, args []*Value) (bool, error) { return s.Integer()%2 != 0, nil }
func testEven(s *Value, args []*Value) (bool, error) { return s.Integer()%2 == 0, nil }

func testDivisibleby(s *Value, args []*Value) (bool, error) {
	if len(args) == 0 {
		return false, newError(SenderType, "divisibleby requires an argument")
	}
	n := args[0].Integer()
	if n == 0 {
		return false, newError(SenderArithmetic, "divisibleby: division by zero")
	}
	return s.Integer()%n == 0, nil
}

func testNumber(s *Value, args []*Value) (bool, error)   { return s.IsNumber(), nil }
func testString(s *Value, args []*Value) (bool, error)   { return s.IsString(), nil }
func testSequence(s *Value, args []*Value) (bool, error) { return s.IsSeq() || s.IsString(), nil }
func testMapping(s *Value, args []*Value) (bool, error)  { return s.IsMap(), nil }

func testIterable(s *Value, args []*Value) (bool, error) {
	return s.Iterable(), nil
}

func testCallable(s *Value, args []*Value) (bool, error) { return s.IsCallable(), nil }

func testSameas(s *Value, args []*Value) (bool, error) {
	if len(args) == 0 {
		return false, newError(SenderType, "sameas requires an argument")
	}
	return s == args[0], nil
}

func testEq(s *Value, args []*Value) (bool, error) {
	return len(args) > 0 && s.Equals(args[0]), nil
}

func testNe(s *Value, args []*Value) (bool, error) {
	return len(args) == 0 || !s.Equals(args[0]), nil
}

func testLt(s *Value, args []*Value) (bool, error) {
	return len(args) > 0 && s.Compare(args[0]) < 0, nil
}

func testLe(s *Value, args []*Value) (bool, error) {
	return len(args) > 0 && s.Compare(args[0]) <= 0, nil
}

func testGt(s *Value, args []*Value) (bool, error) {
	return len(args) > 0 && s.Compare(args[0]) > 0, nil
}

func testGe(s *Value, args []*Value) (bool, error) {
	return len(args) > 0 && s.Compare(args[0]) >= 0, nil
}

func testIn(s *Value, args []*Value) (bool, error) {
	if len(args) == 0 {
		return false, newError(SenderType, "in requires an argument")
	}
	return containsValue(args[0], s), nil
}

func testLower(s *Value, args []*Value) (bool, error) {
	str := s.Str()
	return str == strings.ToLower(str), nil
}

func testUpper(s *Value, args []*Value) (bool, error) {
	str := s.Str()
	return str == strings.ToUpper(str), nil
}

func testStartingwith(s *Value, args []*Value) (bool, error) {
	if len(args) == 0 {
		return false, newError(SenderType, "startingwith requires an argument")
	}
	return strings.HasPrefix(s.Str(), args[0].String()), nil
}

func testEndingwith(s *Value, args []*Value) (bool, error) {
	if len(args) == 0 {
		return false, newError(SenderType, "endingwith requires an argument")
	}
	return strings.HasSuffix(s.Str(), args[0].String()), nil
}

func testTruthy(s *Value, args []*Value) (bool, error) { return s.IsTrue(), nil }
func testFalsy(s *Value, args []*Value) (bool, error)  { return !s.IsTrue(), nil }
