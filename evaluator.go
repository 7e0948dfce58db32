package gojinja

import "math"

// evalBinaryOp implements the arithmetic and concatenation operators of
// spec §3/§4.4: int/float subkind tracking, division-by-zero as an
// Arithmetic error, and `+`'s dual role as numeric addition or sequence/
// string concatenation.
func evalBinaryOp(op string, l, r *Value, state *State, tok *Token) (*Value, error) {
	switch op {
	case "+":
		switch {
		case l.IsNumber() && r.IsNumber():
			return numericAdd(l, r), nil
		case l.Kind() == KindString && r.Kind() == KindString:
			return String(l.Str() + r.Str()), nil
		case l.Kind() == KindSeq && r.Kind() == KindSeq:
			out := make([]*Value, 0, len(l.SeqItems())+len(r.SeqItems()))
			out = append(out, l.SeqItems()...)
			out = append(out, r.SeqItems()...)
			return Seq(out), nil
		}
		return nil, typeErr(tok, state, "Cannot add %s and %s", l.Kind(), r.Kind())
	case "-":
		if !l.IsNumber() || !r.IsNumber() {
			return nil, typeErr(tok, state, "Cannot subtract %s and %s", l.Kind(), r.Kind())
		}
		if l.IsInt() && r.IsInt() {
			return Int(l.Integer() - r.Integer()), nil
		}
		return Float(l.Float() - r.Float()), nil
	case "*":
		if !l.IsNumber() || !r.IsNumber() {
			return nil, typeErr(tok, state, "Cannot multiply %s and %s", l.Kind(), r.Kind())
		}
		if l.IsInt() && r.IsInt() {
			return Int(l.Integer() * r.Integer()), nil
		}
		return Float(l.Float() * r.Float()), nil
	case "/":
		if !l.IsNumber() || !r.IsNumber() {
			return nil, typeErr(tok, state, "Cannot divide %s and %s", l.Kind(), r.Kind())
		}
		if r.Float() == 0 {
			return nil, arithErr(tok, state, "Division by zero")
		}
		return Float(l.Float() / r.Float()), nil
	case "//":
		if !l.IsNumber() || !r.IsNumber() {
			return nil, typeErr(tok, state, "Cannot floor-divide %s and %s", l.Kind(), r.Kind())
		}
		if r.Float() == 0 {
			return nil, arithErr(tok, state, "Division by zero")
		}
		return Int(int64(math.Floor(l.Float() / r.Float()))), nil
	case "%":
		if !l.IsNumber() || !r.IsNumber() {
			return nil, typeErr(tok, state, "Cannot compute %s %% %s", l.Kind(), r.Kind())
		}
		if r.Float() == 0 {
			return nil, arithErr(tok, state, "Division by zero")
		}
		if l.IsInt() && r.IsInt() {
			return Int(l.Integer() % r.Integer()), nil
		}
		return Float(math.Mod(l.Float(), r.Float())), nil
	case "**":
		if !l.IsNumber() || !r.IsNumber() {
			return nil, typeErr(tok, state, "Cannot raise %s to %s", l.Kind(), r.Kind())
		}
		if l.IsInt() && r.IsInt() && r.Integer() >= 0 {
			return Int(intPow(l.Integer(), r.Integer())), nil
		}
		return Float(math.Pow(l.Float(), r.Float())), nil
	}
	return nil, typeErr(tok, state, "unknown operator %q", op)
}

func numericAdd(l, r *Value) *Value {
	if l.IsInt() && r.IsInt() {
		return Int(l.Integer() + r.Integer())
	}
	return Float(l.Float() + r.Float())
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func typeErr(tok *Token, state *State, format string, args ...interface{}) error {
	filename := ""
	if state != nil && state.tpl != nil {
		filename = state.tpl.name
	}
	return newErrorAt(tok, filename, SenderType, format, args...)
}

func arithErr(tok *Token, state *State, format string, args ...interface{}) error {
	filename := ""
	if state != nil && state.tpl != nil {
		filename = state.tpl.name
	}
	return newErrorAt(tok, filename, SenderArithmetic, format, args...)
}
