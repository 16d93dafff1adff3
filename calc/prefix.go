package calc

func (ev *evaluation) evalPrefix(cur *cursor) (Number, error) {
	result, err := ev.prefixOperand(cur, 1)
	if err != nil {
		return Number{}, err
	}
	if err := ev.expectEnd(cur); err != nil {
		return Number{}, err
	}
	return result, nil
}

// prefixOperand reads one operand: a number, or an operator followed by its
// two operands.
func (ev *evaluation) prefixOperand(cur *cursor, depth int) (Number, error) {
	tok, done, err := ev.next(cur)
	if err != nil {
		return Number{}, err
	}
	if done {
		return Number{}, ev.invalid(cur.end, "missing operand")
	}

	switch {
	case tok.IsNumber():
		return tok.Value, nil
	case tok.IsOperator():
		if depth > ev.engine.config.RecursionLimit {
			return Number{}, ev.tooDeep(tok)
		}
		left, err := ev.prefixOperand(cur, depth+1)
		if err != nil {
			return Number{}, err
		}
		right, err := ev.prefixOperand(cur, depth+1)
		if err != nil {
			return Number{}, err
		}
		return ev.apply(tok, left, right)
	default:
		return Number{}, ev.unexpected(tok)
	}
}
