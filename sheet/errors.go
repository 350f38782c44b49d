package sheet

import (
	"fmt"

	"github.com/mharlow/gosheet/cellref"
)

// Code identifies the category of a mutation-time failure. Unlike formula
// evaluation errors (carried inside Value, never returned as error), these
// abort the mutation before any state changes — see SheetError.
type Code int

const (
	// InvalidPosition: a public entry received a position outside
	// [0, MaxRows) x [0, MaxCols).
	InvalidPosition Code = iota + 1
	// FormulaSyntax: the parser rejected the text after a leading '='.
	FormulaSyntax
	// CircularDependency: installing the prospective cell would close a
	// reference cycle back to the position being set.
	CircularDependency
)

func (c Code) String() string {
	switch c {
	case InvalidPosition:
		return "InvalidPosition"
	case FormulaSyntax:
		return "FormulaSyntax"
	case CircularDependency:
		return "CircularDependency"
	default:
		return "Unknown"
	}
}

// SheetError is the error type returned by Sheet's mutation methods. All
// mutation failures are surfaced this way with no partial state change —
// see Sheet.SetCell's commit ordering.
type SheetError struct {
	Code    Code
	Pos     cellref.Position
	Message string
}

func (e *SheetError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s at %s: %s", e.Code, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s at %s", e.Code, e.Pos)
}

func newInvalidPosition(pos cellref.Position) *SheetError {
	return &SheetError{Code: InvalidPosition, Pos: pos}
}

func newFormulaSyntax(pos cellref.Position, cause error) *SheetError {
	return &SheetError{Code: FormulaSyntax, Pos: pos, Message: cause.Error()}
}

func newCircularDependency(pos cellref.Position) *SheetError {
	return &SheetError{Code: CircularDependency, Pos: pos}
}
