// Package formula is the expression-grammar collaborator described as a
// black box by the core spec: it parses arithmetic over numeric literals
// and cell references into an AST, and evaluates that AST against a
// caller-supplied lookup. Tokenization and grammar details are internal;
// callers only see Parse, and the AST's Eval/Print/Cells methods.
package formula

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mharlow/gosheet/cellref"
)

// Lookup resolves a referenced position to a numeric value, or raises a
// formula evaluation error. The sheet package supplies the lookup policy
// (empty-as-zero, string parsing, error propagation, out-of-bounds
// handling); this package only calls it.
type Lookup func(cellref.Position) (float64, *EvalError)

// EvalError is a formula evaluation error, carrying one of the categories
// in cellref.ErrorKind. It implements error so it can be returned and
// wrapped normally, but callers that need the category should read Kind
// directly rather than parsing Error().
type EvalError struct {
	Kind cellref.ErrorKind
}

func (e *EvalError) Error() string {
	return e.Kind.Token()
}

func newEvalError(kind cellref.ErrorKind) *EvalError {
	return &EvalError{Kind: kind}
}

// SyntaxError wraps a grammar rejection of formula text, surfaced by the
// sheet package as FormulaSyntax.
type SyntaxError struct {
	Text string
	err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("formula: invalid syntax in %q: %v", e.Text, e.err)
}

func (e *SyntaxError) Unwrap() error {
	return e.err
}

// AST is a parsed formula expression.
type AST struct {
	root *exprNode
	src  string // original source text, used only for error messages
}

// Parse parses the text following a leading '=' into an AST. It never
// receives the '=' itself — the sheet package strips it before calling.
func Parse(text string) (*AST, error) {
	root, err := formulaParser.ParseString("", text)
	if err != nil {
		return nil, &SyntaxError{Text: text, err: err}
	}
	return &AST{root: root, src: text}, nil
}

// Eval evaluates the AST against lookup, returning either a finite number
// or a formula evaluation error. A non-finite result (overflow to +/-Inf,
// or NaN from e.g. 0/0) is reported as Div0, never returned as a raw
// float64.
func (a *AST) Eval(lookup Lookup) (float64, *EvalError) {
	result, evalErr := evalExpr(a.root, lookup)
	if evalErr != nil {
		return 0, evalErr
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, newEvalError(cellref.ErrorDiv0)
	}
	return result, nil
}

// Print writes the canonical (normalized) form of the expression, without
// a leading '='. Cell.GetText prepends the '=' itself.
func (a *AST) Print(w io.Writer) error {
	_, err := io.WriteString(w, printExpr(a.root))
	return err
}

// Cells returns the positions referenced by the AST, in the order they
// appear in the source, with possible adjacent or non-adjacent repeats.
// Deduplication while preserving first-occurrence order is the caller's
// responsibility (sheet.Cell does this once, at construction).
func (a *AST) Cells() []cellref.Position {
	var out []cellref.Position
	collectCells(a.root, &out)
	return out
}

// --- evaluation ---

func evalExpr(n *exprNode, lookup Lookup) (float64, *EvalError) {
	result, err := evalTerm(n.Left, lookup)
	if err != nil {
		return 0, err
	}
	for _, right := range n.Right {
		rhs, err := evalTerm(right.Term, lookup)
		if err != nil {
			return 0, err
		}
		switch right.Op {
		case "+":
			result += rhs
		case "-":
			result -= rhs
		}
	}
	return result, nil
}

func evalTerm(n *termNode, lookup Lookup) (float64, *EvalError) {
	result, err := evalFactor(n.Left, lookup)
	if err != nil {
		return 0, err
	}
	for _, right := range n.Right {
		rhs, err := evalFactor(right.Factor, lookup)
		if err != nil {
			return 0, err
		}
		switch right.Op {
		case "*":
			result *= rhs
		case "/":
			result /= rhs
		}
	}
	return result, nil
}

func evalFactor(n *factorNode, lookup Lookup) (float64, *EvalError) {
	value, err := evalValue(n.Value, lookup)
	if err != nil {
		return 0, err
	}
	if n.Negate {
		value = -value
	}
	return value, nil
}

func evalValue(n *valueNode, lookup Lookup) (float64, *EvalError) {
	switch {
	case n.Number != nil:
		return *n.Number, nil
	case n.Cell != nil:
		pos, ok := parseCellAddress(*n.Cell)
		if !ok {
			return 0, newEvalError(cellref.ErrorRef)
		}
		return lookup(pos)
	case n.Sub != nil:
		return evalExpr(n.Sub, lookup)
	default:
		return 0, newEvalError(cellref.ErrorValue)
	}
}

// parseCellAddress parses a Cell token's text into a Position. The grammar
// only admits letters followed by digits, but the digit run is unbounded
// (formula/grammar.go's Cell pattern has no length cap), so a row literal
// wide enough to overflow cellref.ParseAddress's strconv.Atoi can still
// fail here. The returned ok is false in that case; callers must treat it
// the same way as any other out-of-bounds reference rather than silently
// dropping it, so evalValue and collectCellsValue agree on one behavior.
func parseCellAddress(s string) (cellref.Position, bool) {
	pos, err := cellref.ParseAddress(s)
	if err != nil {
		return cellref.Position{}, false
	}
	return pos, true
}

// invalidRef stands in for a Cell token collectCellsValue could not parse
// to a Position. It is never valid for any bounds (negative on both axes),
// so it flows through Cell.refs exactly like any other out-of-bounds
// reference instead of being silently dropped from GetReferencedCells.
var invalidRef = cellref.Position{Row: -1, Col: -1}

// --- printing ---

func printExpr(n *exprNode) string {
	var b strings.Builder
	b.WriteString(printTerm(n.Left))
	for _, right := range n.Right {
		b.WriteString(right.Op)
		b.WriteString(printTerm(right.Term))
	}
	return b.String()
}

func printTerm(n *termNode) string {
	var b strings.Builder
	b.WriteString(printFactor(n.Left))
	for _, right := range n.Right {
		b.WriteString(right.Op)
		b.WriteString(printFactor(right.Factor))
	}
	return b.String()
}

func printFactor(n *factorNode) string {
	v := printValue(n.Value)
	if n.Negate {
		return "-" + v
	}
	return v
}

func printValue(n *valueNode) string {
	switch {
	case n.Number != nil:
		return formatNumber(*n.Number)
	case n.Cell != nil:
		return strings.ToUpper(*n.Cell)
	case n.Sub != nil:
		return "(" + printExpr(n.Sub) + ")"
	default:
		return ""
	}
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e18 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// --- reference collection ---

func collectCells(n *exprNode, out *[]cellref.Position) {
	collectCellsTerm(n.Left, out)
	for _, right := range n.Right {
		collectCellsTerm(right.Term, out)
	}
}

func collectCellsTerm(n *termNode, out *[]cellref.Position) {
	collectCellsFactor(n.Left, out)
	for _, right := range n.Right {
		collectCellsFactor(right.Factor, out)
	}
}

func collectCellsFactor(n *factorNode, out *[]cellref.Position) {
	collectCellsValue(n.Value, out)
}

func collectCellsValue(n *valueNode, out *[]cellref.Position) {
	switch {
	case n.Cell != nil:
		pos, ok := parseCellAddress(*n.Cell)
		if !ok {
			pos = invalidRef
		}
		*out = append(*out, pos)
	case n.Sub != nil:
		collectCells(n.Sub, out)
	}
}
