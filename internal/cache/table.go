// Package cache holds the engine's three hash-indexed tables: the search
// table of bounded scores and best moves, and two plain score tables for
// pawn structure and full evaluations.
//
// Every table is a power-of-two slice indexed by the low bits of the
// hash. Entries keep the full hash and are only trusted on an exact match.
package cache

import (
	"unsafe"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
)

// Bound says how a stored search score relates to the true value.
type Bound uint8

const (
	BoundNone  Bound = iota
	BoundExact       // score is exact
	BoundUpper       // failed low: true value <= score
	BoundLower       // failed high: true value >= score
)

// Entry is one search table slot.
type Entry struct {
	Hash  uint64
	Value int32
	Move  chess.MoveID
	Depth int16
	Bound Bound
}

// Table is the search transposition table.
type Table struct {
	entries []Entry
	mask    uint64
}

// NewTable returns a search table using at most bytes of memory.
func NewTable(bytes int) *Table {
	t := &Table{}
	t.Resize(bytes)
	return t
}

// Resize reallocates the table to the largest power-of-two entry count
// that fits in bytes, never fewer than one entry. Contents are dropped.
func (t *Table) Resize(bytes int) {
	n := fitEntries(bytes, int(unsafe.Sizeof(Entry{})))
	t.entries = make([]Entry, n)
	t.mask = uint64(n - 1)
}

// Clear empties every slot.
func (t *Table) Clear() {
	clear(t.entries)
}

// Len returns the number of slots.
func (t *Table) Len() int { return len(t.entries) }

// Bytes returns the memory held by the slots.
func (t *Table) Bytes() int { return len(t.entries) * int(unsafe.Sizeof(Entry{})) }

// Probe looks up hash. move is the stored best move whenever the slot
// matches, usable for ordering even when the score is not. ok is true when
// the stored depth is sufficient and the bound decides the window: the
// returned value is then the exact score, alpha or beta.
func (t *Table) Probe(hash uint64, depth, ply, alpha, beta int) (value int, move chess.MoveID, ok bool) {
	e := &t.entries[hash&t.mask]
	if e.Hash != hash || e.Bound == BoundNone {
		return 0, chess.NoMove, false
	}
	move = e.Move
	if int(e.Depth) < depth {
		return 0, move, false
	}

	v := fromTable(int(e.Value), ply)
	switch e.Bound {
	case BoundExact:
		return v, move, true
	case BoundUpper:
		if v <= alpha {
			return alpha, move, true
		}
	case BoundLower:
		if v >= beta {
			return beta, move, true
		}
	}
	return 0, move, false
}

// Move returns the best move stored for hash, or NoMove.
func (t *Table) Move(hash uint64) chess.MoveID {
	e := &t.entries[hash&t.mask]
	if e.Hash != hash {
		return chess.NoMove
	}
	return e.Move
}

// Store records a search result. A slot already holding the same position
// searched deeper is kept; anything else is replaced. A missing move
// keeps the previously stored one for that position.
func (t *Table) Store(hash uint64, depth, ply, value int, bound Bound, move chess.MoveID) {
	e := &t.entries[hash&t.mask]
	if e.Hash == hash {
		if int(e.Depth) > depth && e.Bound != BoundNone {
			return
		}
		if move == chess.NoMove {
			move = e.Move
		}
	}
	*e = Entry{
		Hash:  hash,
		Value: int32(toTable(value, ply)),
		Move:  move,
		Depth: int16(depth),
		Bound: bound,
	}
}

// Mate scores are stored relative to the node, not the root, so that a
// transposition reached at a different ply reports the right distance.
func toTable(v, ply int) int {
	switch {
	case v > chess.MateWindow:
		return v + ply
	case v < -chess.MateWindow:
		return v - ply
	}
	return v
}

func fromTable(v, ply int) int {
	switch {
	case v > chess.MateWindow:
		return v - ply
	case v < -chess.MateWindow:
		return v + ply
	}
	return v
}

func fitEntries(bytes, size int) int {
	n := 1
	for n*2*size <= bytes {
		n *= 2
	}
	return n
}
