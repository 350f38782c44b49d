package sheet

import "github.com/mharlow/gosheet/cellref"

// Option configures a Sheet at construction. The historical maxima are
// fixed constants (see cellref.MaxRows/MaxCols); functional options are the
// Go-idiomatic way to let a CLI or embedder override them per instance.
type Option func(*Sheet)

// WithMaxRows overrides the row bound used by position validation.
func WithMaxRows(n int) Option {
	return func(s *Sheet) { s.maxRows = n }
}

// WithMaxCols overrides the column bound used by position validation.
func WithMaxCols(n int) Option {
	return func(s *Sheet) { s.maxCols = n }
}

func defaultSheet() *Sheet {
	return &Sheet{
		cells:   make(map[cellref.Position]*Cell),
		graph:   newDependencyGraph(),
		area:    newPrintableArea(),
		maxRows: cellref.MaxRows,
		maxCols: cellref.MaxCols,
	}
}
