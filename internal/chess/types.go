// Package chess provides core chess types: colours, pieces, squares, moves,
// variant rulesets and the incrementally updated Position.
package chess

// Colour represents the colour of a piece or player.
type Colour int8

const (
	White Colour = iota
	Black
	NoColour
)

// NumColours is the number of playing colours.
const NumColours = 2

// String returns the string representation of a colour.
func (c Colour) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "None"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	return c ^ 1
}

// Piece represents a piece kind, independent of colour.
type Piece int8

const (
	King Piece = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn
	Archbishop // bishop + knight
	Chancellor // rook + knight
	Empty
)

// NumPieceKinds is the number of real piece kinds (Empty excluded).
const NumPieceKinds = 8

// String returns the string representation of a piece.
func (p Piece) String() string {
	names := []string{"King", "Queen", "Rook", "Bishop", "Knight", "Pawn", "Archbishop", "Chancellor", "Empty"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Board geometry. Squares are numbered file*16 + rank, which leaves bit
// 0x08 set for every index past the eighth rank. Files run up to ten.
const (
	NumRanks   = 8
	MaxFiles   = 10
	NumSquares = MaxFiles * 16
)

// Square is a board index in the file*16+rank layout.
type Square int

// NoSquare doubles as "no en passant target": a1 can never be one.
const NoSquare Square = 0

// Direction vectors.
const (
	North Square = 1
	South Square = -1
	East  Square = 16
	West  Square = -16
	NE    Square = 17
	SW    Square = -17
	NW    Square = -15
	SE    Square = 15
)

// MakeSquare builds a square from zero-based file and rank.
func MakeSquare(file, rank int) Square {
	return Square(file*16 + rank)
}

// File returns the zero-based file (0 = a).
func (s Square) File() int { return int(s) >> 4 }

// Rank returns the zero-based rank (0 = first rank).
func (s Square) Rank() int { return int(s) & 7 }

// String returns the square in coordinate form, e.g. "e4" or "j8".
func (s Square) String() string {
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// ParseSquare parses a coordinate such as "i7". ok is false for text that
// does not name a square on a ten-file board.
func ParseSquare(text string) (Square, bool) {
	if len(text) < 2 {
		return NoSquare, false
	}
	f, r := text[0], text[1]
	if f < 'a' || f >= 'a'+MaxFiles || r < '1' || r > '8' {
		return NoSquare, false
	}
	return MakeSquare(int(f-'a'), int(r-'1')), true
}

// PromotionRank returns the rank a pawn of colour c promotes on.
func PromotionRank(c Colour) int {
	if c == White {
		return NumRanks - 1
	}
	return 0
}

// PawnStartRank returns the rank from which a pawn of colour c may double-push.
func PawnStartRank(c Colour) int {
	if c == White {
		return 1
	}
	return NumRanks - 2
}

// BackRank returns the rank the pieces of colour c start on.
func BackRank(c Colour) int {
	if c == White {
		return 0
	}
	return NumRanks - 1
}

// PawnForward is the single-step push direction for colour c.
func PawnForward(c Colour) Square {
	if c == White {
		return North
	}
	return South
}

// PawnCaptures are the two capture directions for a pawn of colour c.
func PawnCaptures(c Colour) [2]Square {
	if c == White {
		return [2]Square{NW, NE}
	}
	return [2]Square{SE, SW}
}

// Descriptor describes how a piece kind moves. Vectors with an index below
// Slides are followed until blocked; the rest are single steps.
type Descriptor struct {
	Vectors []Square
	Slides  int
}

var (
	kingDirs   = []Square{SW, South, SE, West, East, NW, North, NE}
	rookDirs   = []Square{South, West, East, North}
	bishopDirs = []Square{SW, SE, NW, NE}
	knightDirs = []Square{-33, -31, -18, -14, 14, 18, 31, 33}
)

func join(parts ...[]Square) []Square {
	var out []Square
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Descriptors holds the movement of every piece kind except the pawn, which
// has no descriptor vectors and is handled separately.
var Descriptors = [NumPieceKinds]Descriptor{
	King:       {Vectors: kingDirs, Slides: 0},
	Queen:      {Vectors: kingDirs, Slides: 8},
	Rook:       {Vectors: rookDirs, Slides: 4},
	Bishop:     {Vectors: bishopDirs, Slides: 4},
	Knight:     {Vectors: knightDirs, Slides: 0},
	Pawn:       {},
	Archbishop: {Vectors: join(bishopDirs, knightDirs), Slides: 4},
	Chancellor: {Vectors: join(rookDirs, knightDirs), Slides: 4},
}

// KnightVectors returns the knight leaps, shared by both compound pieces.
func KnightVectors() []Square { return knightDirs }

// KingVectors returns the eight king steps.
func KingVectors() []Square { return kingDirs }

// RookVectors returns the four orthogonal directions.
func RookVectors() []Square { return rookDirs }

// BishopVectors returns the four diagonal directions.
func BishopVectors() []Square { return bishopDirs }

// CastleRights is the four-bit castling mask.
type CastleRights uint8

const (
	CastleWK CastleRights = 1 << iota
	CastleWQ
	CastleBK
	CastleBQ

	CastleNone CastleRights = 0
	CastleAll  CastleRights = CastleWK | CastleWQ | CastleBK | CastleBQ
)

// Castling sides, used to index per-side variant data.
const (
	WestSide = 0 // queen side in orthodox chess
	EastSide = 1 // king side in orthodox chess
)

// CastleRight returns the right bit for colour c castling towards side.
func CastleRight(c Colour, side int) CastleRights {
	switch {
	case c == White && side == EastSide:
		return CastleWK
	case c == White:
		return CastleWQ
	case side == EastSide:
		return CastleBK
	default:
		return CastleBQ
	}
}

// Score constants.
const (
	Infinity   = 10000
	Invalid    = 32767
	MaxDepth   = 100
	MaxPly     = 128
	MaxMoves   = 256
	MateWindow = Infinity - MaxPly
)
