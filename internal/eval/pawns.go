package eval

import (
	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/pst"
)

// pawnScore wraps PawnStructure with the pawn cache. The structure score
// must depend on pawns alone for the pawn hash to be a valid key.
func (e *Evaluator) pawnScore(pos *chess.Position) int {
	if e.pawns != nil {
		if v, ok := e.pawns.Probe(pos.PawnHash); ok {
			return v
		}
	}
	v := PawnStructure(pos)
	if e.pawns != nil {
		e.pawns.Store(pos.PawnHash, v)
	}
	return v
}

// PawnStructure scores doubled, weak and passed pawns, white minus black.
func PawnStructure(pos *chess.Position) int {
	result := 0
	for r := 1; r < chess.NumRanks-1; r++ {
		for f := 0; f < pos.Files(); f++ {
			sq := chess.MakeSquare(f, r)
			if pos.Pieces[sq] != chess.Pawn {
				continue
			}
			if pos.Colours[sq] == chess.White {
				result += evalPawn(pos, sq, chess.White)
			} else {
				result -= evalPawn(pos, sq, chess.Black)
			}
		}
	}
	return result
}

func evalPawn(pos *chess.Position, sq chess.Square, side chess.Colour) int {
	them := side.Opposite()
	fwd := chess.PawnForward(side)

	result := 0
	passed := pos.PawnControl[them][sq] == 0
	weak := true
	opposed := false

	for next := sq + fwd; pos.OnBoard(next); next += fwd {
		if pos.Pieces[next] == chess.Pawn {
			passed = false
			if pos.Colours[next] == side {
				result -= doubledPawn
			} else {
				opposed = true
			}
		}
		if pos.PawnControl[them][next] != 0 {
			passed = false
		}
	}

	// Start one square ahead so that a pawn in a duo is not weak.
	for next := sq + fwd; pos.OnBoard(next); next -= fwd {
		if pos.PawnControl[side][next] != 0 {
			weak = false
			break
		}
	}

	if passed {
		if pawnSupported(pos, sq, side) {
			result += pst.ProtectedPasser(int(side), int(sq))
		} else {
			result += pst.PassedPawn(int(side), int(sq))
		}
	}
	if weak {
		result += pst.WeakPawn(int(side), int(sq))
		if !opposed {
			result -= unopposedWeak
		}
	}
	return result
}

// pawnSupported reports an own pawn beside sq or diagonally behind it.
func pawnSupported(pos *chess.Position, sq chess.Square, side chess.Colour) bool {
	back := -chess.PawnForward(side)
	for _, d := range []chess.Square{chess.West, chess.East, back + chess.West, back + chess.East} {
		if t := sq + d; pos.OnBoard(t) && isPiece(pos, side, chess.Pawn, t) {
			return true
		}
	}
	return false
}
