package search

import (
	"time"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
)

// Info describes one completed iteration.
type Info struct {
	Depth   int
	Score   int
	Elapsed time.Duration
	Nodes   uint64
	PV      []chess.Move
}

// NPS returns nodes per second over the elapsed time.
func (i Info) NPS() uint64 {
	return nps(i.Nodes, i.Elapsed)
}

// Reporter receives progress while a search runs. Calls come from the
// searching goroutine.
type Reporter interface {
	// Iteration is called after every completed depth.
	Iteration(info Info)
	// CurrentMove announces the root move being searched, numbered from one.
	CurrentMove(depth int, m chess.Move, number int)
}

// Stats are the counters of the latest search.
type Stats struct {
	Nodes  uint64
	QNodes uint64
	Depth  int
}

// Result is the outcome of a search.
type Result struct {
	// Best is only meaningful when HasMove is true. A position without legal
	// moves yields no move.
	Best    chess.Move
	HasMove bool

	// Ponder is the expected reply, valid when HasPonder is true.
	Ponder    chess.Move
	HasPonder bool

	Score   int
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
	PV      []chess.Move
}

// IsMateScore reports whether score announces a forced mate.
func IsMateScore(score int) bool {
	return score > chess.MateWindow || score < -chess.MateWindow
}

// MateIn converts a mate score to moves until mate, negative when the side
// to move is getting mated.
func MateIn(score int) int {
	if score > 0 {
		return (chess.Infinity - score + 1) / 2
	}
	return -(chess.Infinity + score + 1) / 2
}

func nps(nodes uint64, elapsed time.Duration) uint64 {
	ms := elapsed.Milliseconds()
	if ms <= 0 {
		return nodes * 1000
	}
	return nodes * 1000 / uint64(ms)
}
