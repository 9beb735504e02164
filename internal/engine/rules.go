package engine

import "github.com/mage-of-maple/CPW80-Engine/internal/chess"

// Occurrences counts earlier positions in the history with the same hash
// as the current one. Only positions with the same side to move inside
// the current half-move window are compared.
func Occurrences(pos *chess.Position) int {
	h := pos.History
	last := len(h) - 1
	if last < 0 {
		return 0
	}
	n := 0
	for i := last - 2; i >= 0 && last-i <= pos.HalfMoves; i -= 2 {
		if h[i] == pos.Hash {
			n++
		}
	}
	return n
}

// IsRepetition reports a threefold repetition: the current position is
// its own third occurrence.
func IsRepetition(pos *chess.Position) bool {
	return Occurrences(pos) >= 2
}

// IsRepeated reports whether the current position has occurred before.
// Search scores a single repeat as a draw.
func IsRepeated(pos *chess.Position) bool {
	return Occurrences(pos) >= 1
}

// IsFiftyMove reports whether a hundred plies have passed without a pawn
// move or capture.
func IsFiftyMove(pos *chess.Position) bool {
	return pos.HalfMoves >= 100
}

// IsInsufficientMaterial reports a pawnless position where neither side
// has more than a single minor piece.
func IsInsufficientMaterial(pos *chess.Position) bool {
	for c := chess.White; c <= chess.Black; c++ {
		if pos.Count[c][chess.Pawn] > 0 {
			return false
		}
		minors := pos.Count[c][chess.Knight] + pos.Count[c][chess.Bishop]
		if minors > 1 || pos.PieceMaterial[c] > minorValue() {
			return false
		}
	}
	return true
}

// IsDraw reports any of the game-ending draw conditions.
func IsDraw(pos *chess.Position) bool {
	return IsFiftyMove(pos) || IsRepetition(pos) || IsInsufficientMaterial(pos)
}
