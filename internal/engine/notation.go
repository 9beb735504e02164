package engine

import (
	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/errors"
)

// FormatMove writes m in coordinate notation, e.g. "e2e4" or "b7b8c".
func FormatMove(v *chess.Variant, m chess.Move) string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(v.Letter(m.PieceTo))
	}
	return s
}

// ParseMove reads coordinate notation and resolves it against the legal
// moves of pos. A missing promotion letter means the variant's first
// promotion choice.
func ParseMove(pos *chess.Position, text string) (chess.Move, error) {
	v := pos.Variant
	if len(text) != 4 && len(text) != 5 {
		return chess.Move{}, &errors.MoveError{Err: errors.ErrInvalidMoveText, Move: text}
	}

	from, ok1 := chess.ParseSquare(text[0:2])
	to, ok2 := chess.ParseSquare(text[2:4])
	if !ok1 || !ok2 || !pos.OnBoard(from) || !pos.OnBoard(to) {
		return chess.Move{}, &errors.MoveError{Err: errors.ErrInvalidMoveText, Move: text}
	}

	promote := chess.Empty
	if len(text) == 5 {
		p, ok := v.PieceForLetter(text[4] | 0x20)
		if !ok || !v.CanPromoteTo(p) {
			return chess.Move{}, &errors.MoveError{Err: errors.ErrInvalidMoveText, Move: text}
		}
		promote = p
	}

	m, ok := FindLegal(pos, from, to, promote)
	if !ok {
		return chess.Move{}, &errors.MoveError{Err: errors.ErrIllegalMove, Move: text, FEN: FEN(pos)}
	}
	return m, nil
}

// PlayMove makes a game move. Irreversible moves start a fresh repetition
// history since no earlier position can recur.
func PlayMove(pos *chess.Position, m chess.Move) {
	MakeMove(pos, m)
	if m.IsIrreversible() {
		pos.ResetHistory()
	}
}

// ApplyMoves parses and plays a sequence of coordinate moves. It stops at
// the first move that fails, leaving the earlier moves played.
func ApplyMoves(pos *chess.Position, moves []string) error {
	for _, text := range moves {
		m, err := ParseMove(pos, text)
		if err != nil {
			return err
		}
		PlayMove(pos, m)
	}
	return nil
}
