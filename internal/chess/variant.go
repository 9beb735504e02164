package chess

// StepRange bounds how many squares the king travels when castling.
type StepRange struct {
	Min, Max int
}

// Variant is an immutable ruleset. Build one through the variant package;
// a Variant is read-only once its CastleMask has been computed.
type Variant struct {
	Name     string
	StartFEN string
	Files    int

	// Lowercase letters used for the compound pieces.
	ArchbishopLetter byte
	ChancellorLetter byte

	KingStart [NumColours]Square
	// RookStart is indexed by colour, then WestSide/EastSide.
	RookStart [NumColours][2]Square
	// CastleLetters are the position-string letters for each right.
	CastleLetters [NumColours][2]byte
	// CastleSteps is indexed by WestSide/EastSide.
	CastleSteps [2]StepRange
	// CastleMask is ANDed into the castling rights for both squares of
	// every move.
	CastleMask [NumSquares]CastleRights

	Promotions []Piece

	// Setup holds lines announced to an XBoard GUI when the variant is
	// selected, e.g. "setup (...)" and "piece ..." definitions.
	Setup []string
}

// ComputeCastleMask fills CastleMask from the king and rook home squares.
func (v *Variant) ComputeCastleMask() {
	for i := range v.CastleMask {
		v.CastleMask[i] = CastleAll
	}
	for c := White; c <= Black; c++ {
		east, west := CastleRight(c, EastSide), CastleRight(c, WestSide)
		v.CastleMask[v.KingStart[c]] &^= east | west
		v.CastleMask[v.RookStart[c][WestSide]] &^= west
		v.CastleMask[v.RookStart[c][EastSide]] &^= east
	}
}

// OnBoard reports whether sq is a real square on this variant's board.
func (v *Variant) OnBoard(sq Square) bool {
	return sq >= 0 && sq < NumSquares && sq&0x08 == 0 && int(sq)>>4 < v.Files
}

// Letter returns the lowercase letter for piece kind p.
func (v *Variant) Letter(p Piece) byte {
	switch p {
	case King:
		return 'k'
	case Queen:
		return 'q'
	case Rook:
		return 'r'
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	case Pawn:
		return 'p'
	case Archbishop:
		return v.ArchbishopLetter
	case Chancellor:
		return v.ChancellorLetter
	}
	return '?'
}

// PieceForLetter maps a lowercase letter to a piece kind. The compound
// piece letters are checked first because some variants reuse letters
// such as 'c'.
func (v *Variant) PieceForLetter(l byte) (Piece, bool) {
	switch l {
	case v.ArchbishopLetter:
		return Archbishop, true
	case v.ChancellorLetter:
		return Chancellor, true
	case 'k':
		return King, true
	case 'q':
		return Queen, true
	case 'r':
		return Rook, true
	case 'b':
		return Bishop, true
	case 'n':
		return Knight, true
	case 'p':
		return Pawn, true
	}
	return Empty, false
}

// CanPromoteTo reports whether p is in the promotion set.
func (v *Variant) CanPromoteTo(p Piece) bool {
	for _, q := range v.Promotions {
		if q == p {
			return true
		}
	}
	return false
}
