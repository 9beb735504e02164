package engine

import "github.com/mage-of-maple/CPW80-Engine/internal/chess"

// IsAttacked reports whether a piece of colour by attacks sq. Checks run
// from cheapest to most expensive: pawn control counters, knight-type
// leaps, king steps, then orthogonal and diagonal rays.
func IsAttacked(pos *chess.Position, by chess.Colour, sq chess.Square) bool {
	if pos.PawnControl[by][sq] > 0 {
		return true
	}

	for _, d := range chess.KnightVectors() {
		t := sq + d
		if !pos.OnBoard(t) || pos.Colours[t] != by {
			continue
		}
		switch pos.Pieces[t] {
		case chess.Knight, chess.Archbishop, chess.Chancellor:
			return true
		}
	}

	for _, d := range chess.KingVectors() {
		t := sq + d
		if pos.OnBoard(t) && pos.Colours[t] == by && pos.Pieces[t] == chess.King {
			return true
		}
	}

	for _, d := range chess.RookVectors() {
		if rayAttack(pos, by, sq, d, chess.Rook, chess.Chancellor) {
			return true
		}
	}

	for _, d := range chess.BishopVectors() {
		if rayAttack(pos, by, sq, d, chess.Bishop, chess.Archbishop) {
			return true
		}
	}

	return false
}

// rayAttack walks from sq along d. The first occupied square decides: it
// attacks only if it holds a queen or one of the two given kinds of
// colour by.
func rayAttack(pos *chess.Position, by chess.Colour, sq, d chess.Square, a, b chess.Piece) bool {
	for t := sq + d; pos.OnBoard(t); t += d {
		if pos.Colours[t] == chess.NoColour {
			continue
		}
		if pos.Colours[t] != by {
			return false
		}
		p := pos.Pieces[t]
		return p == chess.Queen || p == a || p == b
	}
	return false
}

// InCheck reports whether the king of colour c is attacked.
func InCheck(pos *chess.Position, c chess.Colour) bool {
	return IsAttacked(pos, c.Opposite(), pos.KingSquare[c])
}

// LeftInCheck reports whether the side that just moved left its own king
// attacked. Call it right after MakeMove.
func LeftInCheck(pos *chess.Position) bool {
	return IsAttacked(pos, pos.SideToMove, pos.KingSquare[pos.SideToMove.Opposite()])
}
