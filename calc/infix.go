package calc

func (ev *evaluation) evalInfix(cur *cursor) (Number, error) {
	result, err := ev.infixOperand(cur, 1)
	if err != nil {
		return Number{}, err
	}
	if err := ev.expectEnd(cur); err != nil {
		return Number{}, err
	}
	return result, nil
}

// infixOperand reads a bare number or a parenthesized `( a op b )` group.
func (ev *evaluation) infixOperand(cur *cursor, depth int) (Number, error) {
	tok, done, err := ev.next(cur)
	if err != nil {
		return Number{}, err
	}
	if done {
		return Number{}, ev.invalid(cur.end, "expected number or \"(\", got end of input")
	}

	switch {
	case tok.IsNumber():
		return tok.Value, nil
	case tok.Type == TokenLParen:
		if depth > ev.engine.config.RecursionLimit {
			return Number{}, ev.tooDeep(tok)
		}
		left, err := ev.infixOperand(cur, depth+1)
		if err != nil {
			return Number{}, err
		}
		op, done, err := ev.next(cur)
		if err != nil {
			return Number{}, err
		}
		if done {
			return Number{}, ev.invalid(cur.end, "expected operator, got end of input")
		}
		if !op.IsOperator() {
			return Number{}, ev.invalid(op.Pos, "expected operator, got %s", tokenLabel(op.Type))
		}
		right, err := ev.infixOperand(cur, depth+1)
		if err != nil {
			return Number{}, err
		}
		closing, done, err := ev.next(cur)
		if err != nil {
			return Number{}, err
		}
		if done {
			return Number{}, ev.invalid(cur.end, "missing \")\" for \"(\" at column %d", tok.Pos.Column)
		}
		if closing.Type != TokenRParen {
			return Number{}, ev.invalid(closing.Pos, "expected \")\", got %s", tokenLabel(closing.Type))
		}
		return ev.apply(op, left, right)
	default:
		return Number{}, ev.unexpected(tok)
	}
}
