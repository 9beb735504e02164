package engine

import "github.com/mage-of-maple/CPW80-Engine/internal/chess"

// LegalMoves returns every legal move in pos, in generation order.
func LegalMoves(pos *chess.Position) []chess.Move {
	moves := Generate(pos, make([]chess.Move, 0, chess.MaxMoves), chess.NoMove, nil)
	legal := moves[:0]
	for _, m := range moves {
		MakeMove(pos, m)
		ok := !LeftInCheck(pos)
		UnmakeMove(pos, m)
		if ok {
			legal = append(legal, m)
		}
	}
	return legal
}

// CountLegal returns the number of legal moves in pos.
func CountLegal(pos *chess.Position) int {
	var buf [chess.MaxMoves]chess.Move
	n := 0
	for _, m := range Generate(pos, buf[:0], chess.NoMove, nil) {
		MakeMove(pos, m)
		if !LeftInCheck(pos) {
			n++
		}
		UnmakeMove(pos, m)
	}
	return n
}

// FindLegal returns the legal move from one square to another. promote
// selects the promotion piece and is ignored for other moves; Empty means
// the first piece in the variant's promotion list.
func FindLegal(pos *chess.Position, from, to chess.Square, promote chess.Piece) (chess.Move, bool) {
	var buf [chess.MaxMoves]chess.Move
	for _, m := range Generate(pos, buf[:0], chess.NoMove, nil) {
		if m.From != from || m.To != to {
			continue
		}
		if m.IsPromotion() && promote != chess.Empty && m.PieceTo != promote {
			continue
		}
		MakeMove(pos, m)
		ok := !LeftInCheck(pos)
		UnmakeMove(pos, m)
		if ok {
			return m, true
		}
	}
	return chess.Move{}, false
}

// IsLegal reports whether m is a legal move in pos. Only origin,
// destination and resulting piece are compared.
func IsLegal(pos *chess.Position, m chess.Move) bool {
	promote := chess.Empty
	if m.IsPromotion() {
		promote = m.PieceTo
	}
	_, ok := FindLegal(pos, m.From, m.To, promote)
	return ok
}

// IsCapture reports whether m takes a piece.
func IsCapture(m chess.Move) bool { return m.IsCapture() }

// IsPromotion reports whether m promotes a pawn.
func IsPromotion(m chess.Move) bool { return m.IsPromotion() }

// FindByID returns the legal move whose ID is id.
func FindByID(pos *chess.Position, id chess.MoveID) (chess.Move, bool) {
	if id == chess.NoMove {
		return chess.Move{}, false
	}
	var buf [chess.MaxMoves]chess.Move
	for _, m := range Generate(pos, buf[:0], chess.NoMove, nil) {
		if m.ID() != id {
			continue
		}
		MakeMove(pos, m)
		ok := !LeftInCheck(pos)
		UnmakeMove(pos, m)
		return m, ok
	}
	return chess.Move{}, false
}
