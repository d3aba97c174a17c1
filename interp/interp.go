package interp

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/thisisjab/exprzilla/ast"
	"github.com/thisisjab/exprzilla/eval"
	"github.com/thisisjab/exprzilla/lexer"
	"github.com/thisisjab/exprzilla/parser"
	"github.com/thisisjab/exprzilla/token"
)

type Options struct {
	// MaxDepth bounds parenthesis nesting. Zero means parser.DefaultMaxDepth.
	MaxDepth int
}

// Result holds everything a single run produced.
type Result struct {
	RunID  uuid.UUID
	Value  int32
	Tokens []token.Token
	Tree   ast.Node
}

// Interpreter runs the lex, parse and eval stages over a source text.
// It holds no per-run state and is safe for concurrent use.
type Interpreter struct {
	opts   Options
	logger *slog.Logger
}

func New(opts Options, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Interpreter{
		opts:   opts,
		logger: logger,
	}
}

// Tokenize runs only the lexing stage.
func (in *Interpreter) Tokenize(src string) ([]token.Token, error) {
	return lexer.New(src).Tokenize()
}

// Parse runs the lexing and parsing stages.
func (in *Interpreter) Parse(src string) (ast.Node, []token.Token, error) {
	tokens, err := in.Tokenize(src)
	if err != nil {
		return nil, nil, err
	}

	root, err := parser.New(tokens, parser.WithMaxDepth(in.opts.MaxDepth)).Parse()
	if err != nil {
		return nil, tokens, err
	}

	return root, tokens, nil
}

// Run evaluates src. The returned Result is partially filled when a later
// stage fails, so callers can still inspect the tokens or the tree.
func (in *Interpreter) Run(ctx context.Context, src string) (Result, error) {
	res := Result{RunID: uuid.New()}
	logger := in.logger.With("run_id", res.RunID)

	if err := ctx.Err(); err != nil {
		return res, err
	}

	start := time.Now()
	tokens, err := in.Tokenize(src)
	if err != nil {
		logger.DebugContext(ctx, "lexing failed.", "error", err)
		return res, err
	}
	res.Tokens = tokens
	logger.DebugContext(ctx, "lexed source.", "tokens", len(tokens), "elapsed", time.Since(start))

	start = time.Now()
	root, err := parser.New(tokens, parser.WithMaxDepth(in.opts.MaxDepth)).Parse()
	if err != nil {
		logger.DebugContext(ctx, "parsing failed.", "error", err)
		return res, err
	}
	res.Tree = root
	logger.DebugContext(ctx, "parsed tokens.", "nodes", ast.Count(root), "elapsed", time.Since(start))

	start = time.Now()
	value, err := eval.Eval(root)
	if err != nil {
		logger.DebugContext(ctx, "evaluation failed.", "error", err)
		return res, err
	}
	res.Value = value
	logger.DebugContext(ctx, "evaluated tree.", "value", value, "elapsed", time.Since(start))

	return res, nil
}
