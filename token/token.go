package token

import "fmt"

const (
	ILLEGAL Kind = iota
	EOF

	// Keywords
	FUNC
	IF
	TRUE
	FALSE

	// Identifiers + literals
	IDENT
	INT
	STRING

	// Arithmetic operators
	PLUS
	MINUS
	ASTERISK
	SLASH

	// Relational operators
	ASSIGN
	EQ

	// Grouping
	LPAREN
	RPAREN

	// Punctuation
	SEMICOLON
	COMMA
)

type Kind int

var kindNames = [...]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	FUNC:      "func",
	IF:        "if",
	TRUE:      "true",
	FALSE:     "false",
	IDENT:     "IDENT",
	INT:       "INT",
	STRING:    "STRING",
	PLUS:      "+",
	MINUS:     "-",
	ASTERISK:  "*",
	SLASH:     "/",
	ASSIGN:    "=",
	EQ:        "==",
	LPAREN:    "(",
	RPAREN:    ")",
	SEMICOLON: ";",
	COMMA:     ",",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

func (k Kind) IsKeyword() bool {
	return k >= FUNC && k <= FALSE
}

// IsArithmetic reports whether k is one of + - * /.
func (k Kind) IsArithmetic() bool {
	return k >= PLUS && k <= SLASH
}

func (k Kind) IsRelational() bool {
	return k == ASSIGN || k == EQ
}

// IsLiteral reports whether a token of kind k can stand alone as a literal value.
func (k Kind) IsLiteral() bool {
	switch k {
	case INT, STRING, IDENT, TRUE, FALSE:
		return true
	}
	return false
}

// Pos is a location in the source text. Offset is a 0-based character
// (rune) offset, Line and Column are 1-based. The zero value means unknown.
type Pos struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit. Literal holds the payload for identifiers
// and strings (quotes excluded) and the lexeme for everything else. Int is
// only meaningful for INT tokens.
type Token struct {
	Kind    Kind   `yaml:"kind"`
	Literal string `yaml:"literal,omitempty"`
	Int     int32  `yaml:"int,omitempty"`
	Pos     Pos    `yaml:"pos"`
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case INT:
		return fmt.Sprintf("INT(%d)", t.Int)
	case STRING:
		return fmt.Sprintf("STRING(%q)", t.Literal)
	case IDENT:
		return fmt.Sprintf("IDENT(%s)", t.Literal)
	case ILLEGAL:
		return fmt.Sprintf("ILLEGAL(%q)", t.Literal)
	default:
		return t.Kind.String()
	}
}
