package calc

import (
	"math"
	"strconv"
	"strings"
)

type NumberKind int

const (
	KindInt NumberKind = iota
	KindFloat
)

func (k NumberKind) String() string {
	if k == KindFloat {
		return "float"
	}
	return "int"
}

// Number is an integer or floating-point scalar. The zero value is the
// integer 0.
type Number struct {
	kind NumberKind
	i    int64
	f    float64
}

func NewInt(i int64) Number     { return Number{kind: KindInt, i: i} }
func NewFloat(f float64) Number { return Number{kind: KindFloat, f: f} }

func (n Number) Kind() NumberKind { return n.kind }
func (n Number) IsFloat() bool    { return n.kind == KindFloat }

// Int returns the integer value, truncating floats toward zero.
func (n Number) Int() int64 {
	if n.kind == KindFloat {
		return int64(n.f)
	}
	return n.i
}

func (n Number) Float() float64 {
	if n.kind == KindFloat {
		return n.f
	}
	return float64(n.i)
}

// Equal reports whether n and other have the same kind and value.
func (n Number) Equal(other Number) bool {
	if n.kind != other.kind {
		return false
	}
	if n.kind == KindFloat {
		return n.f == other.f
	}
	return n.i == other.i
}

// String formats integers plainly and floats so they always read as floats:
// 3.0, 0.25, 1e+16.
func (n Number) String() string {
	if n.kind == KindInt {
		return strconv.FormatInt(n.i, 10)
	}
	return formatFloat(n.f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
