// Package sheet is the spreadsheet core: the Sheet aggregate that mediates
// every mutation, the Cell variants it owns, the reverse dependency graph,
// and the printable-area index. Parsing of formula text is delegated to
// package formula; everything here treats that parser as a black box that
// returns an AST plus an ordered reference list.
package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/mharlow/gosheet/cellref"
	"github.com/mharlow/gosheet/formula"
)

// Sheet is the aggregate owning the sparse cell map, the dependency graph,
// and the printable-area index. It mediates all mutations: SetCell and
// ClearCell are the only ways cells change, and both run to completion or
// leave all state untouched (strong exception safety).
type Sheet struct {
	cells map[cellref.Position]*Cell
	graph *dependencyGraph
	area  *printableArea

	maxRows int
	maxCols int

	generation uint64
}

// NewSheet creates an empty Sheet.
func NewSheet(opts ...Option) *Sheet {
	s := defaultSheet()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sheet) validate(pos cellref.Position) error {
	if !pos.IsValid(s.maxRows, s.maxCols) {
		return newInvalidPosition(pos)
	}
	return nil
}

// SetCell parses text and installs the resulting cell at pos. Order is
// parse -> cycle-check -> commit -> invalidate; a failure at parse or
// cycle-check time leaves the sheet completely untouched.
func (s *Sheet) SetCell(pos cellref.Position, text string) error {
	if err := s.validate(pos); err != nil {
		return err
	}

	prospective, err := s.buildCell(pos, text)
	if err != nil {
		return err
	}

	if prospective.kind == cellFormula && s.hasCycle(pos, prospective.refs) {
		return newCircularDependency(pos)
	}

	s.commit(pos, prospective)
	return nil
}

// buildCell classifies text into a prospective (not yet installed) Cell,
// per the SetCell pre-parse rules: empty text -> Empty, a leading '=' with
// at least one more character -> Formula, anything else -> Text.
func (s *Sheet) buildCell(pos cellref.Position, text string) (*Cell, error) {
	switch {
	case text == "":
		return newEmptyCell(s), nil
	case text[0] == FormulaSign && len(text) >= 2:
		ast, err := formula.Parse(text[1:])
		if err != nil {
			return nil, newFormulaSyntax(pos, err)
		}
		return newFormulaCell(s, ast), nil
	default:
		return newTextCell(s, text), nil
	}
}

// commit installs prospective at pos: it removes the old occupant's
// outgoing edges and area entry (if it was non-empty), installs the new
// cell, materializes Empty cells for any newly referenced position, wires
// the new reference edges, and invalidates every transitively dependent
// cache. By the time this is called, cycle detection has already passed,
// so commit never fails.
func (s *Sheet) commit(pos cellref.Position, prospective *Cell) {
	if old, existed := s.cells[pos]; existed && !old.IsEmpty() {
		s.graph.removeOutgoing(pos, old.refs)
		s.area.remove(pos)
	}

	s.cells[pos] = prospective
	if !prospective.IsEmpty() {
		s.area.add(pos)
	}

	for _, p := range prospective.refs {
		if !p.IsValid(s.maxRows, s.maxCols) {
			// Out-of-bounds references are never materialized or wired
			// into the graph: GetCell/ClearCell validate pos against the
			// same bounds, so a materialized entry here would be an
			// orphan no public method could ever reach. lookup reports
			// ErrorRef for these instead.
			continue
		}
		if _, ok := s.cells[p]; !ok {
			s.cells[p] = newEmptyCell(s)
		}
		s.graph.addEdge(p, pos)
	}

	s.invalidateFrom(pos)
	s.generation++
}

// GetCell returns the installed cell at pos, or nil if the grid has no
// entry there. A materialized Empty cell counts as installed.
func (s *Sheet) GetCell(pos cellref.Position) (*Cell, error) {
	if err := s.validate(pos); err != nil {
		return nil, err
	}
	return s.cells[pos], nil
}

// ClearCell removes the cell entry at pos, if one exists. If the cell was
// non-empty, its outgoing edges and area entry are removed first, and
// every transitively dependent cache is invalidated; if it was an Empty
// entry (materialized or not), only the map entry is deleted — clearing an
// already-empty position never changes any formula's observed value, so
// there is nothing to invalidate. Either way the revision advances. If pos
// has no entry, ClearCell changes nothing, not even the revision, so a
// second ClearCell on the same position is equivalent to the first.
func (s *Sheet) ClearCell(pos cellref.Position) error {
	if err := s.validate(pos); err != nil {
		return err
	}

	cell, existed := s.cells[pos]
	if !existed {
		return nil
	}

	if !cell.IsEmpty() {
		s.graph.removeOutgoing(pos, cell.refs)
		s.area.remove(pos)
		delete(s.cells, pos)
		s.invalidateFrom(pos)
	} else {
		delete(s.cells, pos)
	}

	s.generation++
	return nil
}

// GetPrintableSize returns the smallest (0,0)-anchored rectangle
// containing every non-empty cell, in time linear in the number of distinct
// occupied rows and columns (see printableArea.size).
func (s *Sheet) GetPrintableSize() cellref.Size {
	return s.area.size()
}

// PrintValues writes the printable rectangle's values, tab-separated
// within a row and LF-terminated between rows. Missing or Empty cells
// emit nothing (producing runs of consecutive tabs where appropriate).
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.print(w, func(c *Cell) string { return c.GetValue().String() })
}

// PrintTexts writes the printable rectangle's literal texts, in the same
// layout as PrintValues.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.print(w, func(c *Cell) string { return c.GetText() })
}

func (s *Sheet) print(w io.Writer, render func(*Cell) string) error {
	size := s.area.size()
	var b strings.Builder
	for row := 0; row < size.Rows; row++ {
		for col := 0; col < size.Cols; col++ {
			if col > 0 {
				b.WriteByte('\t')
			}
			if cell, ok := s.cells[cellref.Position{Row: row, Col: col}]; ok && !cell.IsEmpty() {
				b.WriteString(render(cell))
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// hasCycle reports whether installing a cell at "at" with the given
// reference list would introduce a circular dependency. It walks from each
// reference using the currently installed grid (the prospective cell is
// not yet committed), so the only way to reach "at" is through an edge
// the commit is about to add.
func (s *Sheet) hasCycle(at cellref.Position, refs []cellref.Position) bool {
	visited := make(map[cellref.Position]struct{})

	var walk func(p cellref.Position) bool
	walk = func(p cellref.Position) bool {
		if p == at {
			return true
		}
		if _, seen := visited[p]; seen {
			return false
		}
		visited[p] = struct{}{}

		cell, ok := s.cells[p]
		if !ok {
			return false
		}
		for _, r := range cell.GetReferencedCells() {
			if walk(r) {
				return true
			}
		}
		return false
	}

	for _, r := range refs {
		if walk(r) {
			return true
		}
	}
	return false
}

// invalidateFrom clears the formula cache of every position transitively
// dependent on pos.
func (s *Sheet) invalidateFrom(pos cellref.Position) {
	s.graph.walkForward(pos, func(q cellref.Position) {
		if cell, ok := s.cells[q]; ok {
			cell.InvalidateCellCache()
		}
	})
}

// String renders basic diagnostic info: printable size and revision.
func (s *Sheet) String() string {
	size := s.GetPrintableSize()
	return fmt.Sprintf("Sheet{size=%dx%d, revision=%s}", size.Rows, size.Cols, s.Revision())
}
