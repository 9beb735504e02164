package engine

import (
	"testing"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/testutil"
)

// attackedByGeneration answers IsAttacked the slow way: put an enemy piece
// on sq and see whether any pseudo-legal move of colour by lands there.
func attackedByGeneration(pos *chess.Position, by chess.Colour, sq chess.Square) bool {
	p := pos.Copy()
	if p.Pieces[sq] != chess.Empty {
		p.RemovePiece(sq)
	}
	p.PlacePiece(by.Opposite(), chess.Knight, sq)
	p.SideToMove = by
	p.EP = chess.NoSquare
	p.Castle = chess.CastleNone

	for _, m := range Generate(p, nil, chess.NoMove, nil) {
		if m.To == sq {
			return true
		}
	}
	return false
}

func TestIsAttacked_AgreesWithGeneration(t *testing.T) {
	positions := []struct {
		name, variant, fen string
	}{
		{"capablanca start", "capablanca", ""},
		{"compound pieces", "capablanca", "r3k4r/1p1c2a1p1/10/2A3C3/4P5/1q6Q1/10/R3K4R w - - 0 1"},
		{"open board", "capablanca", "4k5/2a7/10/5C4/2pP6/10/1B5n2/4K5 b - - 0 1"},
		{"kiwipete", "normal", testutil.Kiwipete},
		{"promotions", "normal", testutil.PromotionMess},
	}
	for _, tt := range positions {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, tt.variant, tt.fen)
			for file := 0; file < pos.Files(); file++ {
				for rank := 0; rank < chess.NumRanks; rank++ {
					sq := chess.MakeSquare(file, rank)
					for c := chess.White; c <= chess.Black; c++ {
						got := IsAttacked(pos, c, sq)
						want := attackedByGeneration(pos, c, sq)
						if got != want {
							t.Errorf("IsAttacked(%v, %v) = %v; want %v", c, sq, got, want)
						}
					}
				}
			}
		})
	}
}

func TestIsAttacked_CompoundPieces(t *testing.T) {
	pos := mustPosition(t, "capablanca", "4k5/10/10/10/4A5/10/10/4K4C w - - 0 1")
	archbishop := chess.MakeSquare(4, 3)
	chancellor := chess.MakeSquare(9, 0)

	tests := []struct {
		name string
		sq   chess.Square
		want bool
	}{
		{"archbishop knight leap", archbishop + 33, true},
		{"archbishop diagonal", archbishop + 3*chess.NE, true},
		{"archbishop not orthogonal", archbishop + chess.North, false},
		{"chancellor file", chancellor + 5*chess.North, true},
		{"chancellor knight leap", chancellor - 31, true},
		{"chancellor rank blocked by king", chess.MakeSquare(2, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsAttacked(pos, chess.White, tt.sq), tt.want)
		})
	}
}

func TestInCheck(t *testing.T) {
	pos := mustPosition(t, "capablanca", "4k5/10/10/10/10/10/10/4K2c2 w - - 0 1")
	testutil.AssertTrue(t, InCheck(pos, chess.White))
	testutil.AssertFalse(t, InCheck(pos, chess.Black))
}
