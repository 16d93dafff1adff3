// Package calc implements the exprcalc evaluation core. A line of text is
// scanned into tokens by a two-state lexer and handed to one of three
// evaluators, selected by Notation:
//   - Prefix: `+ 1 * 2 3`, operators before their two operands.
//   - Postfix: `1 2 3 * +`, operands pushed on a stack, operators pop two.
//   - Infix: `(1 + (2 * 3))`, every binary operation wrapped in parentheses.
//
// Numbers are integers unless their literal contains a decimal point. The
// operators +, - and * keep integers integral; / always yields a float.
// Malformed input is reported as an *EvalError wrapping ErrInvalidExpression,
// while division by zero and integer overflow wrap ErrDivisionByZero and
// ErrIntegerOverflow respectively.
package calc
