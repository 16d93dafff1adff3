package calc

func (ev *evaluation) evalPostfix(cur *cursor) (Number, error) {
	operands := make([]Number, 0, 8)
	for {
		tok, done, err := ev.next(cur)
		if err != nil {
			return Number{}, err
		}
		if done {
			break
		}

		switch {
		case tok.IsNumber():
			operands = append(operands, tok.Value)
		case tok.IsOperator():
			if len(operands) < 2 {
				return Number{}, ev.invalid(tok.Pos, "operator %s needs two operands, have %d", tokenLabel(tok.Type), len(operands))
			}
			right := operands[len(operands)-1]
			left := operands[len(operands)-2]
			operands = operands[:len(operands)-2]
			result, err := ev.apply(tok, left, right)
			if err != nil {
				return Number{}, err
			}
			operands = append(operands, result)
		default:
			return Number{}, ev.unexpected(tok)
		}
	}

	switch len(operands) {
	case 1:
		return operands[0], nil
	case 0:
		return Number{}, ev.invalid(cur.end, "empty expression")
	default:
		return Number{}, ev.invalid(cur.end, "%d operands left without an operator", len(operands))
	}
}
