package token

import "testing"

func TestKeywordLookup(t *testing.T) {
	kt := NewKeywordTable()

	tests := []struct {
		ident    string
		expected Kind
	}{
		{"func", FUNC},
		{"if", IF},
		{"true", TRUE},
		{"false", FALSE},
		{"True", IDENT},
		{"iff", IDENT},
		{"funcs", IDENT},
		{"_if", IDENT},
		{"x", IDENT},
	}

	for i, tt := range tests {
		if got := kt.Lookup(tt.ident); got != tt.expected {
			t.Fatalf("#%d - Lookup(%q): expected `%s`, got `%s`", i, tt.ident, tt.expected, got)
		}
	}
}

func TestKeywordTablesAreIndependent(t *testing.T) {
	a := NewKeywordTable()
	a["let"] = IDENT
	delete(a, "func")

	b := NewKeywordTable()
	if b.Lookup("func") != FUNC {
		t.Fatalf("a fresh table must not see mutations of another table")
	}
	if _, ok := b["let"]; ok {
		t.Fatalf("a fresh table must not contain entries added elsewhere")
	}
}

func TestKindClassification(t *testing.T) {
	for k := ILLEGAL; k <= COMMA; k++ {
		arith := k == PLUS || k == MINUS || k == ASTERISK || k == SLASH
		if k.IsArithmetic() != arith {
			t.Fatalf("%s: IsArithmetic() = %v", k, k.IsArithmetic())
		}

		kw := k == FUNC || k == IF || k == TRUE || k == FALSE
		if k.IsKeyword() != kw {
			t.Fatalf("%s: IsKeyword() = %v", k, k.IsKeyword())
		}
	}

	if Kind(99).String() != "Kind(99)" {
		t.Fatalf("unexpected name for out of range kind: %s", Kind(99))
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok      Token
		expected string
	}{
		{Token{Kind: INT, Literal: "42", Int: 42}, "INT(42)"},
		{Token{Kind: STRING, Literal: "hi there"}, `STRING("hi there")`},
		{Token{Kind: IDENT, Literal: "x_1"}, "IDENT(x_1)"},
		{Token{Kind: EQ, Literal: "=="}, "=="},
		{Token{Kind: EOF}, "EOF"},
		{Token{Kind: ILLEGAL, Literal: "@"}, `ILLEGAL("@")`},
	}

	for i, tt := range tests {
		if got := tt.tok.String(); got != tt.expected {
			t.Fatalf("#%d - expected `%s`, got `%s`", i, tt.expected, got)
		}
	}
}
