package sheet

import (
	"math"
	"strconv"
	"strings"

	"github.com/mharlow/gosheet/cellref"
	"github.com/mharlow/gosheet/formula"
)

// FormulaSign and EscapeSign are the two sentinel characters recognized in
// cell text: a leading '=' introduces a formula, a leading "'" escapes text
// that would otherwise parse as a number or a formula.
const (
	FormulaSign = '='
	EscapeSign  = '\''
)

// cellKind tags Cell's variant. Cell is a tagged union dispatched by this
// tag rather than an interface-per-variant: the core spec calls out
// interface dispatch here as unwanted heap indirection for something this
// small and this hot (every read touches it).
type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellText
	cellFormula
)

// Cell is a single grid entry. Its variant, text, and AST are fixed at
// construction; the only mutable part is the formula cache, which is
// interior state invalidated by InvalidateCellCache. Cell holds a
// non-owning back-reference to its Sheet so a Formula variant can resolve
// the cells it references; the Sheet is the sole owner of all Cells.
type Cell struct {
	kind  cellKind
	sheet *Sheet

	text string       // Text: literal user text, non-empty
	ast  *formula.AST // Formula only

	refs  []cellref.Position // Formula only: deduped, insertion-ordered
	cache *Value             // Formula only: nil means not yet computed
}

func newEmptyCell(s *Sheet) *Cell {
	return &Cell{kind: cellEmpty, sheet: s}
}

func newTextCell(s *Sheet, text string) *Cell {
	return &Cell{kind: cellText, sheet: s, text: text}
}

func newFormulaCell(s *Sheet, ast *formula.AST) *Cell {
	return &Cell{
		kind:  cellFormula,
		sheet: s,
		ast:   ast,
		refs:  dedupPositions(ast.Cells()),
	}
}

// IsEmpty reports whether the cell is the Empty variant.
func (c *Cell) IsEmpty() bool {
	return c.kind == cellEmpty
}

// GetText returns the literal text for Empty/Text cells, or '=' followed
// by the canonical printed expression for Formula cells.
func (c *Cell) GetText() string {
	switch c.kind {
	case cellEmpty:
		return ""
	case cellText:
		return c.text
	case cellFormula:
		var b strings.Builder
		b.WriteByte(FormulaSign)
		_ = c.ast.Print(&b) // strings.Builder.Write never errors
		return b.String()
	default:
		return ""
	}
}

// GetValue returns the cell's value, per variant. Formula results are
// memoized in the interior cache until InvalidateCellCache clears it.
func (c *Cell) GetValue() Value {
	switch c.kind {
	case cellEmpty:
		return StringValue("")
	case cellText:
		if len(c.text) > 0 && c.text[0] == EscapeSign {
			return StringValue(c.text[1:])
		}
		return StringValue(c.text)
	case cellFormula:
		if c.cache != nil {
			return *c.cache
		}
		v := c.evaluate()
		c.cache = &v
		return v
	default:
		return StringValue("")
	}
}

// GetReferencedCells returns the deduplicated, insertion-ordered positions
// a Formula cell references. Empty and Text cells reference nothing.
func (c *Cell) GetReferencedCells() []cellref.Position {
	return c.refs
}

// InvalidateCellCache clears the memoized formula result. Empty and Text
// cells ignore it — they have no cache.
func (c *Cell) InvalidateCellCache() {
	if c.kind == cellFormula {
		c.cache = nil
	}
}

// evaluate runs the AST against this sheet's lookup policy.
func (c *Cell) evaluate() Value {
	result, evalErr := c.ast.Eval(c.lookup)
	if evalErr != nil {
		return ErrorValue(evalErr.Kind)
	}
	return NumberValue(result)
}

// lookup implements the lookup policy from the core spec, applied
// uniformly to every cell reference a formula evaluates:
//  0. pos out of the sheet's bounds -> Ref (such a position is never
//     materialized by commit, so it would otherwise be indistinguishable
//     from step 1's "no cell" case)
//  1. no cell at pos (a position never referenced, or one that ClearCell
//     removed; referencing materializes an Empty cell, but ClearCell
//     deletes the entry even while formulas still reference it) -> 0
//  2. empty string value -> 0
//  3. string value -> parse as a complete decimal double, or ValueError
//  4. finite number -> that number
//  5. non-finite number -> Div0 (structurally unreachable: Value never
//     stores a non-finite number, see value.go, but kept for fidelity
//     with the spec's stated policy)
//  6. formula error -> propagate
func (c *Cell) lookup(pos cellref.Position) (float64, *formula.EvalError) {
	if !pos.IsValid(c.sheet.maxRows, c.sheet.maxCols) {
		return 0, &formula.EvalError{Kind: cellref.ErrorRef}
	}

	target, ok := c.sheet.cells[pos]
	if !ok {
		return 0, nil
	}

	v := target.GetValue()
	switch v.Kind {
	case ValueString:
		if v.Str == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return 0, &formula.EvalError{Kind: cellref.ErrorValue}
		}
		if math.IsInf(parsed, 0) || math.IsNaN(parsed) {
			return 0, &formula.EvalError{Kind: cellref.ErrorDiv0}
		}
		return parsed, nil
	case ValueNumber:
		if math.IsInf(v.Num, 0) || math.IsNaN(v.Num) {
			return 0, &formula.EvalError{Kind: cellref.ErrorDiv0}
		}
		return v.Num, nil
	case ValueError:
		return 0, &formula.EvalError{Kind: v.Err}
	default:
		return 0, nil
	}
}

// dedupPositions keeps the first occurrence of each position, preserving
// order — the AST's raw Cells() list may repeat a position any number of
// times.
func dedupPositions(raw []cellref.Position) []cellref.Position {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[cellref.Position]struct{}, len(raw))
	out := make([]cellref.Position, 0, len(raw))
	for _, p := range raw {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
