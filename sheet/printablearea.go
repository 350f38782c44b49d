package sheet

import (
	"slices"

	"golang.org/x/exp/maps"

	"github.com/mharlow/gosheet/cellref"
)

// printableArea tracks two multisets of occupied row/column indices so
// GetPrintableSize reads only those indices instead of scanning the whole
// grid. size is linear in the number of distinct occupied rows and columns,
// not O(1). Materialized Empty cells never reach add — only non-empty cells
// contribute.
type printableArea struct {
	rowCount map[int]int
	colCount map[int]int
}

func newPrintableArea() *printableArea {
	return &printableArea{
		rowCount: make(map[int]int),
		colCount: make(map[int]int),
	}
}

// add increments the occupancy counters for pos's row and column.
func (a *printableArea) add(pos cellref.Position) {
	a.rowCount[pos.Row]++
	a.colCount[pos.Col]++
}

// remove decrements the occupancy counters for pos's row and column,
// dropping a counter entirely once it reaches zero.
func (a *printableArea) remove(pos cellref.Position) {
	decrementOrDelete(a.rowCount, pos.Row)
	decrementOrDelete(a.colCount, pos.Col)
}

func decrementOrDelete(counts map[int]int, key int) {
	counts[key]--
	if counts[key] <= 0 {
		delete(counts, key)
	}
}

// size returns (max_row+1, max_col+1), or 0 on an axis with no occupied
// index.
func (a *printableArea) size() cellref.Size {
	return cellref.Size{
		Rows: maxKeyPlusOne(a.rowCount),
		Cols: maxKeyPlusOne(a.colCount),
	}
}

func maxKeyPlusOne(counts map[int]int) int {
	if len(counts) == 0 {
		return 0
	}
	return slices.Max(maps.Keys(counts)) + 1
}
