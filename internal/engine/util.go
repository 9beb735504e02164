package engine

import (
	"golang.org/x/exp/constraints"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/pst"
)

// Abs returns the absolute value of x.
func Abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Distance returns the king-step distance between two squares.
func Distance(a, b chess.Square) int {
	return max(Abs(a.File()-b.File()), Abs(a.Rank()-b.Rank()))
}

func minorValue() int {
	return max(pst.PieceValue[chess.Bishop], pst.PieceValue[chess.Knight])
}
