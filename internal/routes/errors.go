package routes

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax marks malformed numeric or field syntax.
	ErrSyntax = errors.New("syntax error")
	// ErrSemantic marks a value outside a closed vocabulary or range.
	ErrSemantic = errors.New("semantic error")
	// ErrCapacity marks a send rule with too many ID ranges.
	ErrCapacity = errors.New("capacity error")
	// ErrEmptyInput is returned when there are no lines to compile.
	ErrEmptyInput = errors.New("empty configuration")
)

// LineError is the single failure reported by a compile pass.
type LineError struct {
	Line   int    // 1-based line number.
	Text   string // Verbatim line text.
	Reason string
	Kind   error // One of ErrSyntax, ErrSemantic, ErrCapacity.
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s in line %d \"%s\"", e.Reason, e.Line, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Kind
}

// ruleError is what the parsers return; the builder attaches the position.
type ruleError struct {
	kind   error
	reason string
}

func (e *ruleError) Error() string {
	return e.reason
}

func (e *ruleError) Unwrap() error {
	return e.kind
}

func syntaxErr(reason string) error {
	return &ruleError{kind: ErrSyntax, reason: reason}
}

func semanticErr(reason string) error {
	return &ruleError{kind: ErrSemantic, reason: reason}
}

func capacityErr(reason string) error {
	return &ruleError{kind: ErrCapacity, reason: reason}
}

func atLine(err error, n int, line string) error {
	le := &LineError{Line: n, Text: line, Reason: err.Error(), Kind: ErrSyntax}
	var re *ruleError
	if errors.As(err, &re) {
		le.Kind = re.kind
	}
	return le
}
