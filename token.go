package gojinja

import "fmt"

// TokenType classifies a single lexical token produced by the lexer.
type TokenType int

const (
	// TokenError indicates a lexical error. Val carries the message.
	TokenError TokenType = iota

	// TokenData represents literal text outside of {{ }}, {% %}, {# #}.
	TokenData

	// TokenVariableStart/End are the {{ / }} delimiters.
	TokenVariableStart
	TokenVariableEnd

	// TokenBlockStart/End are the {% / %} delimiters.
	TokenBlockStart
	TokenBlockEnd

	// TokenIdent is an identifier that is not in the keyword table (the
	// lexer emits TokenKeyword for every keyword-table word).
	TokenIdent

	// TokenKeyword is a reserved word recognized case-insensitively on its
	// lowercased spelling: true, false, none, and, or, not, is, in, if,
	// elif, else, endif, for, endfor, set, block, endblock, extends,
	// include, macro, endmacro, call, endcall, with, endwith, filter,
	// endfilter, import, from, as, raw, endraw, autoescape, endautoescape,
	// recursive, ignore, missing, only, export.
	TokenKeyword

	// TokenString is a quoted string literal with escapes already resolved.
	TokenString

	// TokenInt and TokenFloat are numeric literals.
	TokenInt
	TokenFloat

	// TokenSymbol is an operator or punctuation symbol.
	TokenSymbol
)

// keywords is the fixed, case-insensitive (on lowercased spelling) keyword
// table from spec section 4.1.
var keywords = map[string]bool{
	"true": true, "false": true, "none": true,
	"and": true, "or": true, "not": true, "is": true, "in": true,
	"if": true, "elif": true, "else": true, "endif": true,
	"for": true, "endfor": true, "recursive": true,
	"set": true,
	"block": true, "endblock": true,
	"extends": true,
	"include": true, "ignore": true, "missing": true,
	"macro": true, "endmacro": true,
	"call": true, "endcall": true,
	"with": true, "endwith": true,
	"filter": true, "endfilter": true,
	"import": true, "from": true, "as": true, "export": true, "only": true,
	"raw": true, "endraw": true,
	"autoescape": true, "endautoescape": true,
}

// symbols lists every recognized punctuation/operator token, ordered
// longest-match-first so that e.g. "**" is matched before "*" and "//"
// before "/".
var symbols = []string{
	"**", "//", "==", "!=", "<=", ">=",
	"+", "-", "*", "/", "%", "~", "|", ".", ",", ":", "=",
	"(", ")", "[", "]", "{", "}", "<", ">",
}

// Token is a single lexical element: the output of the lexer and the input
// to the parser.
type Token struct {
	Type TokenType
	Val  string
	Line int
	Col  int

	// TrimBefore/TrimAfter record whitespace-control markers ('-') attached
	// to a delimiter token (e.g. "{{-" sets TrimBefore on the following
	// TokenVariableStart, "-}}" sets TrimAfter on a TokenVariableEnd).
	TrimBefore bool
	TrimAfter  bool
}

func (t *Token) String() string {
	return fmt.Sprintf("<Token %d %q line=%d col=%d>", t.Type, t.Val, t.Line, t.Col)
}
