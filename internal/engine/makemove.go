package engine

import "github.com/mage-of-maple/CPW80-Engine/internal/chess"

// MakeMove plays m on pos without checking legality. Callers test
// LeftInCheck afterwards and take the move back with UnmakeMove, in strict
// last-in first-out order.
func MakeMove(pos *chess.Position, m chess.Move) {
	keys := pos.Keys()
	v := pos.Variant
	mover := pos.SideToMove

	pos.SideToMove = mover.Opposite()
	pos.Hash ^= keys.Colour

	pos.HalfMoves++
	if m.Piece == chess.Pawn || m.Captured != chess.Empty {
		pos.HalfMoves = 0
	}

	if pos.Pieces[m.To] != chess.Empty {
		pos.RemovePiece(m.To)
	}
	pos.RemovePiece(m.From)
	pos.PlacePiece(mover, m.PieceTo, m.To)

	castle := pos.Castle & v.CastleMask[m.From] & v.CastleMask[m.To]
	pos.Hash ^= keys.Castling[pos.Castle] ^ keys.Castling[castle]
	pos.Castle = castle

	if m.Flags&chess.FlagCastle != 0 {
		from, to := castleRook(v, mover, m)
		pos.RemovePiece(from)
		pos.PlacePiece(mover, chess.Rook, to)
	}

	pos.Hash ^= keys.EnPassant[pos.EP]
	pos.EP = chess.NoSquare

	// The target is only recorded when an enemy pawn can actually take
	// on it, so unusable targets never reach the hash.
	if m.Flags&chess.FlagDoublePush != 0 {
		target := (m.From + m.To) / 2
		if pos.PawnControl[pos.SideToMove][target] > 0 {
			pos.EP = target
			pos.Hash ^= keys.EnPassant[target]
		}
	}

	if m.Flags&chess.FlagEPCapture != 0 {
		pos.RemovePiece(m.To - chess.PawnForward(mover))
	}

	pos.History = append(pos.History, pos.Hash)
}

// UnmakeMove takes back m, which must be the last move made on pos.
func UnmakeMove(pos *chess.Position, m chess.Move) {
	keys := pos.Keys()
	v := pos.Variant

	pos.SideToMove = pos.SideToMove.Opposite()
	mover := pos.SideToMove
	pos.Hash ^= keys.Colour

	pos.HalfMoves = m.HalfMoves
	pos.Hash ^= keys.EnPassant[pos.EP] ^ keys.EnPassant[m.EP]
	pos.EP = m.EP

	// Rook first: its castled square may be the king's origin.
	if m.Flags&chess.FlagCastle != 0 {
		from, to := castleRook(v, mover, m)
		pos.RemovePiece(to)
		pos.PlacePiece(mover, chess.Rook, from)
	}

	pos.RemovePiece(m.To)
	pos.PlacePiece(mover, m.Piece, m.From)
	if m.Captured != chess.Empty {
		pos.PlacePiece(mover.Opposite(), m.Captured, m.To)
	}

	pos.Hash ^= keys.Castling[pos.Castle] ^ keys.Castling[m.Castle]
	pos.Castle = m.Castle

	if m.Flags&chess.FlagEPCapture != 0 {
		pos.PlacePiece(mover.Opposite(), chess.Pawn, m.To-chess.PawnForward(mover))
	}

	pos.History = pos.History[:len(pos.History)-1]
}

// castleRook returns the rook's home and destination squares for a
// castling move. The rook lands on the square the king passed last.
func castleRook(v *chess.Variant, c chess.Colour, m chess.Move) (from, to chess.Square) {
	if m.To > m.From {
		return v.RookStart[c][chess.EastSide], m.To + chess.West
	}
	return v.RookStart[c][chess.WestSide], m.To + chess.East
}

// MakeNull passes the turn. The returned record restores the position
// through UnmakeNull.
func MakeNull(pos *chess.Position) chess.Move {
	keys := pos.Keys()
	m := chess.Move{Flags: chess.FlagNull, HalfMoves: pos.HalfMoves, EP: pos.EP, Castle: pos.Castle}

	pos.SideToMove = pos.SideToMove.Opposite()
	pos.Hash ^= keys.Colour
	pos.HalfMoves++
	pos.Hash ^= keys.EnPassant[pos.EP]
	pos.EP = chess.NoSquare

	pos.History = append(pos.History, pos.Hash)
	return m
}

// UnmakeNull reverses MakeNull.
func UnmakeNull(pos *chess.Position, m chess.Move) {
	keys := pos.Keys()
	pos.SideToMove = pos.SideToMove.Opposite()
	pos.Hash ^= keys.Colour
	pos.HalfMoves = m.HalfMoves
	pos.EP = m.EP
	pos.Hash ^= keys.EnPassant[pos.EP]
	pos.History = pos.History[:len(pos.History)-1]
}
