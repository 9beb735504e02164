package search

import (
	"time"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
)

// Flags selects which Limits fields govern a search.
type Flags uint8

const (
	FlagTime      Flags = 1 << iota // remaining clock per side
	FlagInc                         // increment per move
	FlagMovesToGo                   // moves until the next time control
	FlagDepth                       // fixed depth
	FlagNodes                       // node budget
	FlagMate                        // stop once a mate in Mate moves is proved
	FlagMoveTime                    // fixed time per move
	FlagInfinite                    // search until stopped
)

// DefaultMoveTime is the fixed thinking time used when nothing else is set.
const DefaultMoveTime = 5 * time.Second

// Limits describes when a search has to stop.
type Limits struct {
	Flags Flags

	Time      [chess.NumColours]time.Duration
	Inc       [chess.NumColours]time.Duration
	MovesToGo int
	Depth     int
	Nodes     uint64
	Mate      int
	MoveTime  time.Duration

	// Ponder starts the search in ponder mode: it ignores the clock until
	// PonderHit is called.
	Ponder bool
}

// DefaultLimits thinks for DefaultMoveTime per move.
func DefaultLimits() Limits {
	return Limits{Flags: FlagMoveTime, MoveTime: DefaultMoveTime}
}

// FixedDepth searches exactly depth plies.
func FixedDepth(depth int) Limits {
	return Limits{Flags: FlagDepth, Depth: depth}
}

// clockMargin is kept in reserve so that a move is sent before the flag
// falls.
const clockMargin = 50 * time.Millisecond

// Budget returns the thinking time for side, or zero when the search is not
// bounded by time.
func (l Limits) Budget(side chess.Colour) time.Duration {
	switch {
	case l.Flags&FlagInfinite != 0:
		return 0
	case l.Flags&FlagMoveTime != 0:
		return l.MoveTime
	case l.Flags&FlagTime == 0:
		return 0
	}

	left := l.Time[side]
	movesLeft := 30
	if l.Flags&FlagMovesToGo != 0 && l.MovesToGo > 0 {
		movesLeft = l.MovesToGo + 2
	}
	budget := left / time.Duration(movesLeft)
	if l.Flags&FlagInc != 0 {
		budget += l.Inc[side] * 3 / 4
	}
	if limit := left - clockMargin; budget > limit {
		budget = limit
	}
	return max(budget, time.Millisecond)
}

// MaxDepth returns the deepest iteration the limits allow.
func (l Limits) MaxDepth() int {
	if l.Flags&FlagDepth != 0 && l.Depth > 0 {
		return min(l.Depth, chess.MaxDepth)
	}
	return chess.MaxDepth
}

func (l Limits) timed() bool {
	return l.Flags&FlagInfinite == 0 && l.Flags&(FlagTime|FlagMoveTime) != 0
}
