package chess

// MoveFlags classifies a move.
type MoveFlags uint8

const (
	FlagNormal     MoveFlags = 0
	FlagCapture    MoveFlags = 1 << 0
	FlagEPCapture  MoveFlags = 1 << 1
	FlagCastle     MoveFlags = 1 << 2
	FlagDoublePush MoveFlags = 1 << 3
	FlagPromotion  MoveFlags = 1 << 4
	FlagNull       MoveFlags = 1 << 5
)

// Move is a generated move together with the state needed to undo it.
type Move struct {
	From, To Square

	// Piece is the moving kind, PieceTo the kind that lands on To. They
	// differ only for promotions.
	Piece    Piece
	PieceTo  Piece
	Captured Piece // Empty when nothing is taken
	Flags    MoveFlags

	// Snapshot of the position before the move.
	Castle    CastleRights
	HalfMoves int
	EP        Square

	// Ordering score, only meaningful inside a move list.
	Score int
}

// MoveID identifies a move compactly: origin, destination and resulting
// piece kind. It is what the transposition table stores.
type MoveID uint32

// NoMove is the zero MoveID; no real move encodes to it.
const NoMove MoveID = 0

// ID returns the compact identifier of m.
func (m Move) ID() MoveID {
	return MoveID(uint32(m.From) | uint32(m.To)<<8 | uint32(m.PieceTo)<<16)
}

// IsCapture reports whether the move takes a piece, en passant included.
func (m Move) IsCapture() bool {
	return m.Captured != Empty || m.Flags&FlagEPCapture != 0
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Flags&FlagPromotion != 0
}

// IsCastle reports whether the move castles.
func (m Move) IsCastle() bool {
	return m.Flags&FlagCastle != 0
}

// IsIrreversible reports whether the move can never be undone by later
// moves: pawn moves, captures and castling.
func (m Move) IsIrreversible() bool {
	return m.Piece == Pawn || m.IsCapture() || m.IsCastle()
}
