package parser

import (
	"github.com/thisisjab/exprzilla/ast"
	"github.com/thisisjab/exprzilla/fault"
	"github.com/thisisjab/exprzilla/token"
)

// DefaultMaxDepth bounds how deeply parentheses may nest.
const DefaultMaxDepth = 256

type Option func(*Parser)

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// Parser is a recursive descent parser over a token slice. Grammar, from
// lowest to highest precedence:
//
//	expression -> term EOF
//	term       -> factor ( ("+" | "-") factor )*
//	factor     -> primary ( ("*" | "/") primary )*
//	primary    -> INT | STRING | IDENT | "true" | "false" | "(" term ")"
type Parser struct {
	tokens   []token.Token
	pos      int
	curToken token.Token

	depth    int
	maxDepth int
}

func New(tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{
		tokens:   tokens,
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// nextToken advances the cursor. It never moves past the final EOF token.
func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.curToken = p.tokens[p.pos]
}

// Parse builds the tree for the whole token sequence. The sequence must end
// with exactly one EOF token and every token before it must be consumed.
func (p *Parser) Parse() (ast.Node, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	p.pos = 0
	p.depth = 0
	p.curToken = p.tokens[0]

	root, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	if p.curToken.Kind != token.EOF {
		return nil, p.unexpected("expected end of input")
	}

	return root, nil
}

func (p *Parser) validate() error {
	if len(p.tokens) == 0 {
		return parseError(fault.MalformedTokensCode, token.Pos{}, "token sequence is empty")
	}

	last := len(p.tokens) - 1
	for i, tok := range p.tokens {
		if tok.Kind == token.EOF && i != last {
			return parseError(fault.MalformedTokensCode, tok.Pos, "EOF token at index %d before the end of the sequence", i)
		}
	}

	if p.tokens[last].Kind != token.EOF {
		return parseError(fault.MalformedTokensCode, p.tokens[last].Pos, "token sequence is not terminated by EOF")
	}

	return nil
}

// parseTerm folds additive operators to the left.
func (p *Parser) parseTerm() (ast.Node, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.curToken.Kind == token.PLUS || p.curToken.Kind == token.MINUS {
		op := p.curToken
		p.nextToken()

		rhs, err := p.parseFactor()
		if err != nil {
			return nil, err
		}

		if expr, err = ast.NewBinaryOp(expr, op, rhs); err != nil {
			return nil, err
		}
	}

	return expr, nil
}

// parseFactor folds multiplicative operators to the left.
func (p *Parser) parseFactor() (ast.Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.curToken.Kind == token.ASTERISK || p.curToken.Kind == token.SLASH {
		op := p.curToken
		p.nextToken()

		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		if expr, err = ast.NewBinaryOp(expr, op, rhs); err != nil {
			return nil, err
		}
	}

	return expr, nil
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	switch p.curToken.Kind {
	case token.INT, token.STRING, token.IDENT, token.TRUE, token.FALSE:
		lit, err := ast.NewLiteral(p.curToken)
		if err != nil {
			return nil, err
		}
		p.nextToken()
		return lit, nil

	case token.LPAREN:
		return p.parseGroup()

	default:
		return nil, p.unexpected("expected an expression")
	}
}

func (p *Parser) parseGroup() (ast.Node, error) {
	open := p.curToken

	p.depth++
	defer func() { p.depth-- }()

	if p.depth > p.maxDepth {
		return nil, parseError(fault.NestingTooDeepCode, open.Pos, "parentheses nested deeper than %d levels", p.maxDepth)
	}

	p.nextToken()

	inner, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	if p.curToken.Kind != token.RPAREN {
		return nil, p.unexpected("expected ) to close ( at " + open.Pos.String())
	}
	p.nextToken()

	return inner, nil
}

func (p *Parser) unexpected(expectation string) fault.Fault {
	tok := p.curToken
	return parseError(fault.UnexpectedTokenCode, tok.Pos, "%s, got %s", expectation, tok).
		WithMetadata(map[string]any{"kind": tok.Kind.String()})
}

func parseError(code fault.Code, pos token.Pos, format string, args ...any) fault.Fault {
	return fault.Newf(code, format, args...).WithStage(fault.StageParse).WithPos(pos)
}
