package calc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidExpression marks structurally malformed input.
	ErrInvalidExpression = errors.New("invalid expression")
	// ErrDivisionByZero is returned when a divisor evaluates to zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrIntegerOverflow is returned when integer arithmetic leaves the int64 range.
	ErrIntegerOverflow = errors.New("integer overflow")
)

// EvalError describes why a line could not be evaluated. Err is one of the
// package sentinels.
type EvalError struct {
	Notation Notation
	Pos      Position
	Msg      string
	Source   string
	Err      error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s expression: %s at column %d", e.Notation, e.Msg, e.Pos.Column)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

// Detail returns the error message followed by a caret frame pointing at
// the offending column.
func (e *EvalError) Detail() string {
	var b strings.Builder
	b.WriteString(e.Error())
	if frame := formatCodeFrame(e.Source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

// IsDomainError reports whether err is an arithmetic failure rather than
// malformed input.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrDivisionByZero) || errors.Is(err, ErrIntegerOverflow)
}

func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Column <= 0 {
		return ""
	}
	lineRunes := []rune(source)
	column := pos.Column
	if column > len(lineRunes)+1 {
		column = len(lineRunes) + 1
	}
	caretPad := strings.Repeat(" ", column-1)
	return fmt.Sprintf("  --> column %d\n   | %s\n   | %s^", column, source, caretPad)
}
