package calc

import (
	"fmt"
	"math"
)

func applyOperator(op TokenType, left, right Number) (Number, error) {
	switch op {
	case TokenPlus:
		return addNumbers(left, right)
	case TokenMinus:
		return subtractNumbers(left, right)
	case TokenAsterisk:
		return multiplyNumbers(left, right)
	case TokenSlash:
		return divideNumbers(left, right)
	default:
		return Number{}, fmt.Errorf("unsupported operator %s", tokenLabel(op))
	}
}

func addNumbers(left, right Number) (Number, error) {
	if left.Kind() == KindInt && right.Kind() == KindInt {
		a, b := left.Int(), right.Int()
		sum := a + b
		if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
			return Number{}, ErrIntegerOverflow
		}
		return NewInt(sum), nil
	}
	return NewFloat(left.Float() + right.Float()), nil
}

func subtractNumbers(left, right Number) (Number, error) {
	if left.Kind() == KindInt && right.Kind() == KindInt {
		a, b := left.Int(), right.Int()
		diff := a - b
		if (b < 0 && diff < a) || (b > 0 && diff > a) {
			return Number{}, ErrIntegerOverflow
		}
		return NewInt(diff), nil
	}
	return NewFloat(left.Float() - right.Float()), nil
}

func multiplyNumbers(left, right Number) (Number, error) {
	if left.Kind() == KindInt && right.Kind() == KindInt {
		a, b := left.Int(), right.Int()
		if a == 0 || b == 0 {
			return NewInt(0), nil
		}
		if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return Number{}, ErrIntegerOverflow
		}
		product := a * b
		if product/b != a {
			return Number{}, ErrIntegerOverflow
		}
		return NewInt(product), nil
	}
	return NewFloat(left.Float() * right.Float()), nil
}

func divideNumbers(left, right Number) (Number, error) {
	if right.Float() == 0 {
		return Number{}, ErrDivisionByZero
	}
	return NewFloat(left.Float() / right.Float()), nil
}
