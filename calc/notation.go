package calc

import (
	"fmt"
	"strings"
)

// Notation selects how an expression line is read.
type Notation int

const (
	Prefix Notation = iota + 1
	Postfix
	Infix
)

// Notations lists every supported notation in menu order.
func Notations() []Notation {
	return []Notation{Prefix, Postfix, Infix}
}

func (n Notation) String() string {
	switch n {
	case Prefix:
		return "prefix"
	case Postfix:
		return "postfix"
	case Infix:
		return "parenthetical infix"
	default:
		return fmt.Sprintf("notation(%d)", int(n))
	}
}

// Example returns a sample expression written in n.
func (n Notation) Example() string {
	switch n {
	case Prefix:
		return "+ 1 * 2 3"
	case Postfix:
		return "1 2 3 * +"
	case Infix:
		return "(1 + (2 * 3))"
	default:
		return ""
	}
}

func (n Notation) Valid() bool {
	return n >= Prefix && n <= Infix
}

// ParseNotation accepts a notation name or its menu number.
func ParseNotation(s string) (Notation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prefix", "polish", "1":
		return Prefix, nil
	case "postfix", "rpn", "2":
		return Postfix, nil
	case "infix", "paren", "parenthetical infix", "parenthetical-infix", "3":
		return Infix, nil
	default:
		return 0, fmt.Errorf("unknown notation %q", s)
	}
}

// Evaluator returns the default engine's evaluator for n.
func (n Notation) Evaluator() EvaluatorFunc {
	return defaultEngine.Evaluator(n)
}
