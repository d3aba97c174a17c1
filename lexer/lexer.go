package lexer

import (
	"errors"
	"strconv"

	"github.com/thisisjab/exprzilla/fault"
	"github.com/thisisjab/exprzilla/token"
)

// Scanner turns source text into tokens in a single forward pass.
type Scanner struct {
	input   []rune
	pos     int  // position of the current character in the input
	readPos int  // position of the next character to be read
	char    rune // current character being processed

	line   int // line of the current character (1-based)
	column int // column of the current character (1-based)

	keywords token.KeywordTable
}

func New(source string) *Scanner {
	s := &Scanner{
		input:    []rune(source),
		keywords: token.NewKeywordTable(),
	}
	s.reset()
	return s
}

func (s *Scanner) reset() {
	s.pos = 0
	s.readPos = 0
	s.char = 0
	s.line = 1
	s.column = 0 // readChar moves this to 1
	s.readChar()
}

func (s *Scanner) readChar() {
	if s.char == '\n' {
		s.line++
		s.column = 0
	}

	if s.readPos >= len(s.input) {
		s.char = 0
	} else {
		s.char = s.input[s.readPos]
	}
	s.pos = s.readPos
	s.readPos++
	s.column++
}

func (s *Scanner) peekChar() rune {
	if s.readPos >= len(s.input) {
		return 0
	}
	return s.input[s.readPos]
}

// atEnd is used instead of checking for a zero char so a literal NUL in the
// input is reported as an unknown symbol rather than ending the scan.
func (s *Scanner) atEnd() bool {
	return s.pos >= len(s.input)
}

func (s *Scanner) position() token.Pos {
	return token.Pos{Offset: s.pos, Line: s.line, Column: s.column}
}

// Tokenize scans the whole source and returns its tokens terminated by a
// single EOF token. It stops at the first lexical error. Calling Tokenize
// again rescans from the beginning and yields the same result.
func (s *Scanner) Tokenize() ([]token.Token, error) {
	s.reset()

	var tokens []token.Token
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

// Next returns the next token. On a lexical error it returns an ILLEGAL token
// covering the offending text together with the error, and the cursor is left
// past that text so scanning can continue. Once the input is exhausted every
// call returns EOF.
func (s *Scanner) Next() (token.Token, error) {
	s.skipWhitespace()

	start := s.position()
	if s.atEnd() {
		return token.Token{Kind: token.EOF, Pos: start}, nil
	}

	var tok token.Token

	switch s.char {
	case '(':
		tok = newToken(token.LPAREN, "(", start)
	case ')':
		tok = newToken(token.RPAREN, ")", start)
	case '+':
		tok = newToken(token.PLUS, "+", start)
	case '-':
		tok = newToken(token.MINUS, "-", start)
	case '*':
		tok = newToken(token.ASTERISK, "*", start)
	case '/':
		tok = newToken(token.SLASH, "/", start)
	case ';':
		tok = newToken(token.SEMICOLON, ";", start)
	case ',':
		tok = newToken(token.COMMA, ",", start)
	case '=':
		if s.peekChar() == '=' {
			s.readChar()
			tok = newToken(token.EQ, "==", start)
		} else {
			tok = newToken(token.ASSIGN, "=", start)
		}
	case '"', '\'':
		return s.readString(start)
	default:
		if isDigit(s.char) {
			return s.readInteger(start)
		} else if isLetter(s.char) {
			return s.readIdentifier(start), nil
		}

		tok = newToken(token.ILLEGAL, string(s.char), start)
		s.readChar()
		return tok, lexError(fault.UnknownSymbolCode, start, "unknown symbol %q", tok.Literal)
	}

	s.readChar()
	return tok, nil
}

func newToken(kind token.Kind, literal string, pos token.Pos) token.Token {
	return token.Token{Kind: kind, Literal: literal, Pos: pos}
}

func lexError(code fault.Code, pos token.Pos, format string, args ...any) fault.Fault {
	return fault.Newf(code, format, args...).WithStage(fault.StageLex).WithPos(pos)
}

func (s *Scanner) readIdentifier(start token.Pos) token.Token {
	for isLetter(s.char) || isDigit(s.char) {
		s.readChar()
	}

	literal := string(s.input[start.Offset:s.pos])
	return newToken(s.keywords.Lookup(literal), literal, start)
}

func (s *Scanner) readInteger(start token.Pos) (token.Token, error) {
	for isDigit(s.char) {
		s.readChar()
	}

	literal := string(s.input[start.Offset:s.pos])

	v, err := strconv.ParseInt(literal, 10, 32)
	if err != nil {
		code := fault.IntegerOverflowCode
		if !errors.Is(err, strconv.ErrRange) {
			code = fault.InternalCode
		}
		return newToken(token.ILLEGAL, literal, start),
			lexError(code, start, "integer literal %s does not fit in 32 bits", literal).WithOriginal(err)
	}

	tok := newToken(token.INT, literal, start)
	tok.Int = int32(v)
	return tok, nil
}

// readString consumes a literal opened by either quote kind up to and
// including the matching closing quote. There are no escape sequences.
func (s *Scanner) readString(start token.Pos) (token.Token, error) {
	quote := s.char
	s.readChar()

	begin := s.pos
	for !s.atEnd() && s.char != quote {
		s.readChar()
	}

	if s.atEnd() {
		return newToken(token.ILLEGAL, string(s.input[start.Offset:]), start),
			lexError(fault.UnterminatedStringCode, start, "unterminated string literal, missing closing %c", quote)
	}

	literal := string(s.input[begin:s.pos])
	s.readChar() // closing quote
	return newToken(token.STRING, literal, start), nil
}

func (s *Scanner) skipWhitespace() {
	for !s.atEnd() && isWhitespace(s.char) {
		s.readChar()
	}
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
