package fault

import (
	"errors"
	"fmt"

	"github.com/thisisjab/exprzilla/token"
)

type Code string

const (
	UnknownCode  Code = "unknown"
	BadInputCode Code = "bad_input"

	// Lexical faults.
	UnterminatedStringCode Code = "unterminated_string"
	UnknownSymbolCode      Code = "unknown_symbol"
	IntegerOverflowCode    Code = "integer_overflow"

	// Parse faults.
	UnexpectedTokenCode Code = "unexpected_token"
	MalformedTokensCode Code = "malformed_tokens"
	NestingTooDeepCode  Code = "nesting_too_deep"

	// Evaluation faults.
	TypeMismatchCode       Code = "type_mismatch"
	DivisionByZeroCode     Code = "division_by_zero"
	ArithmeticOverflowCode Code = "arithmetic_overflow"
	InternalCode           Code = "internal"
)

// Stage names the pipeline step a fault was raised in.
type Stage string

const (
	StageNone  Stage = ""
	StageLex   Stage = "lex"
	StageParse Stage = "parse"
	StageEval  Stage = "eval"
)

type FieldErrorsMetadata map[string][]string

// Fault is the error value returned by every stage of the pipeline.
type Fault struct {
	code     Code
	stage    Stage
	pos      token.Pos
	message  string
	metadata any
	original error
}

func New(code Code, message string) Fault {
	return Fault{
		code:    code,
		message: message,
	}
}

// Newf is New with a formatted message.
func Newf(code Code, format string, args ...any) Fault {
	return New(code, fmt.Sprintf(format, args...))
}

func (f Fault) WithStage(stage Stage) Fault {
	e := f
	e.stage = stage
	return e
}

func (f Fault) WithPos(pos token.Pos) Fault {
	e := f
	e.pos = pos
	return e
}

func (f Fault) WithMetadata(metadata any) Fault {
	e := f
	e.metadata = metadata
	return e
}

func (f Fault) WithOriginal(original error) Fault {
	e := f
	e.original = original
	return e
}

func (f Fault) Code() Code {
	return f.code
}

func (f Fault) Stage() Stage {
	return f.stage
}

func (f Fault) Pos() token.Pos {
	return f.pos
}

func (f Fault) Message() string {
	return f.message
}

func (f Fault) Metadata() any {
	return f.metadata
}

func (f Fault) Original() error {
	return f.original
}

func (f Fault) Unwrap() error {
	return f.original
}

func (f Fault) Error() string {
	msg := f.message
	switch {
	case f.stage != StageNone && f.pos.IsValid():
		msg = fmt.Sprintf("%s error at %s: %s", f.stage, f.pos, msg)
	case f.stage != StageNone:
		msg = fmt.Sprintf("%s error: %s", f.stage, msg)
	case f.pos.IsValid():
		msg = fmt.Sprintf("%s: %s", f.pos, msg)
	}
	if f.original != nil {
		return fmt.Sprintf("%s: %v", msg, f.original)
	}
	return msg
}

// As reports whether err holds a Fault and returns it.
func As(err error) (Fault, bool) {
	var f Fault
	if errors.As(err, &f) {
		return f, true
	}
	return Fault{}, false
}

// CodeOf returns the code of the first Fault in err's chain, or UnknownCode.
func CodeOf(err error) Code {
	if f, ok := As(err); ok {
		return f.code
	}
	return UnknownCode
}

func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
