// Package pst holds material values and piece-square tables.
//
// Tables are written as 80 entries from a8 to j1, the way a board is read
// by a person sitting on white's side. Lookups take a square index in the
// file*16+rank layout and a colour (0 white, 1 black); black reads the
// table mirrored vertically. Eight-file boards use files a..h of the same
// tables.
package pst

// Piece kind indexes. They follow the chess package ordering.
const (
	King = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn
	Archbishop
	Chancellor
	NumKinds
)

// Ordering bonus for capturing a king, only reachable in pseudo-legal lines.
const SortKing = 400000000

// Material values in centipawns.
var PieceValue = [NumKinds]int{
	King:       0,
	Queen:      975,
	Rook:       500,
	Bishop:     350,
	Knight:     310,
	Pawn:       100,
	Archbishop: 825,
	Chancellor: 875,
}

// SortValue is PieceValue with the king lifted above everything else.
var SortValue = func() [NumKinds]int {
	v := PieceValue
	v[King] = SortKing
	return v
}()

// Evaluation constants shared with the search.
const (
	BishopPair    = 30
	KnightPair    = 8
	Tempo         = 10
	EndgameMat    = 1000
	PhaseMaxValue = 28
)

const (
	files   = 10
	ranks   = 8
	squares = 160
)

var pawnMid = [80]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	-6, -4, 1, 1, 1, 1, 1, 1, -4, -6,
	-6, -4, 1, 2, 2, 2, 2, 1, -4, -6,
	-6, -4, 2, 5, 8, 8, 5, 2, -4, -6,
	-6, -4, 5, 7, 10, 10, 7, 5, -4, -6,
	-6, -4, 1, 3, 5, 5, 3, 1, -4, -6,
	-6, -4, 1, -9, -24, -24, -9, 1, -4, -6,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

var pawnEnd = [80]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	-6, -4, 1, 1, 1, 1, 1, 1, -4, -6,
	-6, -4, 1, 2, 2, 2, 2, 1, -4, -6,
	-6, -4, 2, 6, 8, 8, 6, 2, -4, -6,
	-6, -4, 5, 8, 10, 10, 8, 5, -4, -6,
	-4, -4, 1, 4, 5, 5, 4, 1, -4, -4,
	-6, -4, 1, -10, -24, -24, -10, 1, -4, -6,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Knights are scored the same in both phases.
var knightTable = [80]int{
	-8, -8, -8, -8, -8, -8, -8, -8, -8, -8,
	-8, 0, 0, 0, 0, 0, 0, 0, 0, -8,
	-8, 0, 4, 6, 6, 6, 6, 4, 0, -8,
	-8, 0, 6, 8, 8, 8, 8, 6, 0, -8,
	-8, 0, 6, 8, 8, 8, 8, 6, 0, -8,
	-8, 0, 4, 6, 6, 6, 6, 4, 0, -8,
	-8, 0, 1, 2, 2, 2, 2, 1, 0, -8,
	-16, -12, -12, -10, -8, -8, -10, -12, -12, -16,
}

var bishopTable = [80]int{
	-4, -4, -4, -4, -4, -4, -4, -4, -4, -4,
	-4, 0, 0, 0, 0, 0, 0, 0, 0, -4,
	-4, 0, 2, 4, 4, 4, 4, 2, 0, -4,
	-4, 0, 4, 6, 6, 6, 6, 4, 0, -4,
	-4, 0, 4, 6, 6, 6, 6, 4, 0, -4,
	-4, 1, 2, 4, 4, 4, 4, 2, 1, -4,
	-4, 2, 1, 1, 1, 1, 1, 1, 2, -4,
	-4, -4, -12, -10, -4, -4, -10, -12, -4, -4,
}

var rookTable = [80]int{
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	-5, 0, 0, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 1, 2, 2, 1, 0, 0, 0,
}

// Shared by queen, archbishop and chancellor.
var queenTable = [80]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 1, 1, 1, 1, 1, 1, 0, 0,
	0, 0, 1, 2, 2, 2, 2, 1, 0, 0,
	0, 0, 2, 3, 3, 3, 3, 2, 0, 0,
	0, 0, 2, 3, 3, 3, 3, 2, 0, 0,
	0, 0, 1, 2, 2, 2, 2, 1, 0, 0,
	0, 0, 1, 1, 1, 1, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

var kingMid = [80]int{
	-40, -30, -50, -60, -70, -70, -60, -50, -30, -40,
	-30, -20, -40, -50, -60, -60, -50, -40, -20, -30,
	-20, -10, -30, -40, -50, -50, -40, -30, -10, -20,
	-10, 0, -20, -30, -40, -40, -30, -20, 0, -10,
	0, 10, -10, -20, -30, -30, -20, -10, 10, 0,
	10, 20, 0, -10, -20, -20, -10, 0, 20, 10,
	30, 40, 20, 10, 0, 0, 10, 20, 40, 30,
	40, 50, 30, 20, 10, 10, 20, 30, 50, 40,
}

var kingEnd = [80]int{
	-72, -48, -36, -30, -24, -24, -30, -36, -48, -72,
	-48, -24, -12, -6, 0, 0, -6, -12, -24, -48,
	-36, -12, 0, 6, 12, 12, 6, 0, -12, -36,
	-24, 0, 12, 18, 24, 24, 18, 12, 0, -24,
	-24, 0, 12, 18, 24, 24, 18, 12, 0, -24,
	-36, -12, 0, 6, 12, 12, 6, 0, -12, -36,
	-48, -24, -12, -6, 0, 0, -6, -12, -24, -48,
	-72, -48, -36, -30, -24, -24, -30, -36, -48, -72,
}

var weakPawnTable = [80]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	-10, -12, -14, -15, -16, -16, -15, -14, -12, -10,
	-10, -12, -14, -15, -16, -16, -15, -14, -12, -10,
	-10, -12, -14, -15, -16, -16, -15, -14, -12, -10,
	-10, -12, -14, -15, -16, -16, -15, -14, -12, -10,
	-10, -12, -14, -15, -16, -16, -15, -14, -12, -10,
	-10, -12, -14, -15, -16, -16, -15, -14, -12, -10,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

var passedPawnTable = [80]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	140, 140, 140, 140, 140, 140, 140, 140, 140, 140,
	92, 92, 92, 92, 92, 92, 92, 92, 92, 92,
	56, 56, 56, 56, 56, 56, 56, 56, 56, 56,
	32, 32, 32, 32, 32, 32, 32, 32, 32, 32,
	20, 20, 20, 20, 20, 20, 20, 20, 20, 20,
	20, 20, 20, 20, 20, 20, 20, 20, 20, 20,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

type squareTable [2][squares]int

var (
	mid             [NumKinds]squareTable
	end             [NumKinds]squareTable
	weakPawn        squareTable
	passedPawn      squareTable
	protectedPasser squareTable
)

func init() {
	type source struct {
		kind     int
		mid, end *[80]int
		endBonus int
	}
	sources := []source{
		{Pawn, &pawnMid, &pawnEnd, 20},
		{Knight, &knightTable, &knightTable, 0},
		{Bishop, &bishopTable, &bishopTable, 0},
		{Rook, &rookTable, &rookTable, 0},
		{Queen, &queenTable, &queenTable, 0},
		{King, &kingMid, &kingEnd, 0},
		{Archbishop, &queenTable, &queenTable, 0},
		{Chancellor, &queenTable, &queenTable, 0},
	}

	for i := 0; i < files*ranks; i++ {
		row, file := i/files, i%files
		white := file*16 + (ranks - 1 - row)
		black := file*16 + row

		for _, s := range sources {
			mid[s.kind][0][white] = s.mid[i]
			mid[s.kind][1][black] = s.mid[i]
			end[s.kind][0][white] = s.end[i] + s.endBonus
			end[s.kind][1][black] = s.end[i] + s.endBonus
		}

		weakPawn[0][white] = weakPawnTable[i]
		weakPawn[1][black] = weakPawnTable[i]
		passedPawn[0][white] = passedPawnTable[i]
		passedPawn[1][black] = passedPawnTable[i]
		protectedPasser[0][white] = passedPawnTable[i] * 10 / 8
		protectedPasser[1][black] = passedPawnTable[i] * 10 / 8
	}
}

// Mid returns the midgame bonus for a piece of the given kind and colour on sq.
func Mid(kind, colour, sq int) int { return mid[kind][colour][sq] }

// End returns the endgame bonus for a piece of the given kind and colour on sq.
func End(kind, colour, sq int) int { return end[kind][colour][sq] }

// WeakPawn is the penalty for an unsupported pawn.
func WeakPawn(colour, sq int) int { return weakPawn[colour][sq] }

// PassedPawn is the bonus for a passed pawn.
func PassedPawn(colour, sq int) int { return passedPawn[colour][sq] }

// ProtectedPasser is the bonus for a passed pawn with a neighbouring pawn.
func ProtectedPasser(colour, sq int) int { return protectedPasser[colour][sq] }
