package gojinja

import "testing"

func tokenTypes(toks []*Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestTokenizeBasicPrint(t *testing.T) {
	toks, err := Tokenize("<test>", "Hello {{ name }}!")
	if err != nil {
		t.Fatal(err)
	}
	got := tokenTypes(toks)
	want := []TokenType{TokenData, TokenVariableStart, TokenIdent, TokenVariableEnd, TokenData}
	if len(got) != len(want) {
		t.Fatalf("got %v tokens, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeKeywordsCaseInsensitive(t *testing.T) {
	toks, err := Tokenize("<test>", "{% IF x %}y{% ENDIF %}")
	if err != nil {
		t.Fatal(err)
	}
	var kw []string
	for _, tok := range toks {
		if tok.Type == TokenKeyword {
			kw = append(kw, tok.Val)
		}
	}
	if len(kw) != 2 || kw[0] != "if" || kw[1] != "endif" {
		t.Errorf("got keywords %v, want [if endif]", kw)
	}
}

func TestTokenizeRawBlockIsSingleDataToken(t *testing.T) {
	toks, err := Tokenize("<test>", "{% raw %}{{ not an expr }}{% endraw %}")
	if err != nil {
		t.Fatal(err)
	}
	var body string
	found := false
	for i, tok := range toks {
		if tok.Type == TokenKeyword && tok.Val == "raw" {
			dataTok := toks[i+2]
			if dataTok.Type != TokenData {
				t.Fatalf("expected TokenData right after raw's %%}, got %v", dataTok.Type)
			}
			body = dataTok.Val
			found = true
		}
	}
	if !found {
		t.Fatal("did not find raw keyword token")
	}
	if body != "{{ not an expr }}" {
		t.Errorf("raw body = %q, want %q", body, "{{ not an expr }}")
	}
}

func TestTokenizeWhitespaceTrim(t *testing.T) {
	toks, err := Tokenize("<test>", "a {%- if true -%} b {% endif %}")
	if err != nil {
		t.Fatal(err)
	}
	var sawTrim bool
	for _, tok := range toks {
		if tok.Type == TokenBlockStart && tok.TrimBefore {
			sawTrim = true
		}
	}
	if !sawTrim {
		t.Error("expected a TrimBefore-marked BlockStart for '{%-'")
	}
}
