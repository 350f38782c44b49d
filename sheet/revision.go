package sheet

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/google/uuid"
)

// Revision returns an identifier derived from a hash of the sheet's
// generation counter (not of its cell contents): a cheap change token
// external consumers (e.g. a caching layer in front of the engine) can
// compare without re-reading the grid.
// It changes on every successful mutation and is otherwise stable.
func (s *Sheet) Revision() uuid.UUID {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], s.generation)

	h := fnv.New128()
	h.Write(buf[:])
	id, _ := uuid.FromBytes(h.Sum(nil))
	return id
}
