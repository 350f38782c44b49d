package sheet

import (
	"fmt"
	"strconv"

	"github.com/mharlow/gosheet/cellref"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	// ValueString holds a (possibly empty) string — the result of Empty
	// and Text cells, and of any Text cell read through the lookup
	// policy before it is coerced to a number.
	ValueString ValueKind = iota
	// ValueNumber holds a finite float64. Non-finite results never
	// reach this variant; they are mapped to ValueError{Div0} instead.
	ValueNumber
	// ValueError holds a formula-error category.
	ValueError
)

// Value is the sum type {string, finite float64, formula-error} described
// by the core spec. The zero Value is the empty string, which is also
// what an Empty cell's GetValue returns.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Err  cellref.ErrorKind
}

// StringValue builds a Value holding s.
func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

// NumberValue builds a Value holding a finite number. Callers must not
// pass a non-finite float64; evaluation code routes those through
// ErrorValue(ErrorDiv0) instead.
func NumberValue(n float64) Value {
	return Value{Kind: ValueNumber, Num: n}
}

// ErrorValue builds a Value holding a formula-error category.
func ErrorValue(kind cellref.ErrorKind) Value {
	return Value{Kind: ValueError, Err: kind}
}

// String renders the value the way PrintValues does: strings verbatim,
// numbers via the default float formatting, errors as their token.
func (v Value) String() string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case ValueError:
		return v.Err.Token()
	default:
		return fmt.Sprintf("<unknown value kind %d>", v.Kind)
	}
}
