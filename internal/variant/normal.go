package variant

import "github.com/mage-of-maple/CPW80-Engine/internal/chess"

// Normal is orthodox 8x8 chess. It has no compound pieces on the board but
// keeps the same engine paths, which makes it easy to check move
// generation against independent tooling.
const Normal = "normal"

func newNormal() *chess.Variant {
	v := &chess.Variant{
		Name:             Normal,
		StartFEN:         "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Files:            8,
		ArchbishopLetter: 'a',
		ChancellorLetter: 'c',
		CastleLetters:    [2][2]byte{{'Q', 'K'}, {'q', 'k'}},
		CastleSteps:      [2]chess.StepRange{{Min: 2, Max: 2}, {Min: 2, Max: 2}},
		Promotions:       []chess.Piece{chess.Queen, chess.Rook, chess.Bishop, chess.Knight},
	}
	for c := chess.White; c <= chess.Black; c++ {
		r := chess.BackRank(c)
		v.KingStart[c] = chess.MakeSquare(4, r)
		v.RookStart[c] = [2]chess.Square{chess.MakeSquare(0, r), chess.MakeSquare(7, r)}
	}
	v.ComputeCastleMask()
	return v
}
