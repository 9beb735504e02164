package cache

import "unsafe"

type scoreEntry struct {
	hash  uint64
	value int32
}

// ScoreTable maps a hash to a single score. The pawn and evaluation
// caches are both ScoreTables.
type ScoreTable struct {
	entries []scoreEntry
	mask    uint64
}

// NewScoreTable returns a table using at most bytes of memory.
func NewScoreTable(bytes int) *ScoreTable {
	t := &ScoreTable{}
	t.Resize(bytes)
	return t
}

// Resize reallocates to the largest power-of-two entry count that fits in
// bytes, never fewer than one entry.
func (t *ScoreTable) Resize(bytes int) {
	n := fitEntries(bytes, int(unsafe.Sizeof(scoreEntry{})))
	t.entries = make([]scoreEntry, n)
	t.mask = uint64(n - 1)
}

// Clear empties every slot.
func (t *ScoreTable) Clear() {
	clear(t.entries)
}

// Len returns the number of slots.
func (t *ScoreTable) Len() int { return len(t.entries) }

// Bytes returns the memory held by the slots.
func (t *ScoreTable) Bytes() int { return len(t.entries) * int(unsafe.Sizeof(scoreEntry{})) }

// Probe returns the score stored for hash.
func (t *ScoreTable) Probe(hash uint64) (int, bool) {
	e := &t.entries[hash&t.mask]
	if e.hash != hash {
		return 0, false
	}
	return int(e.value), true
}

// Store always replaces the slot.
func (t *ScoreTable) Store(hash uint64, value int) {
	t.entries[hash&t.mask] = scoreEntry{hash: hash, value: int32(value)}
}
