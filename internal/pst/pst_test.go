package pst

import (
	"testing"

	"github.com/mage-of-maple/CPW80-Engine/internal/testutil"
)

func sq(file, rank int) int { return file*16 + rank }

func TestTables_MirrorBetweenColours(t *testing.T) {
	for kind := 0; kind < NumKinds; kind++ {
		for file := 0; file < files; file++ {
			for rank := 0; rank < ranks; rank++ {
				w := sq(file, rank)
				b := sq(file, ranks-1-rank)
				testutil.AssertEqual(t, Mid(kind, 1, b), Mid(kind, 0, w), "mid kind %d file %d rank %d", kind, file, rank)
				testutil.AssertEqual(t, End(kind, 1, b), End(kind, 0, w), "end kind %d file %d rank %d", kind, file, rank)
			}
		}
	}
}

func TestTables_KnownEntries(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"white e2 pawn mid", Mid(Pawn, 0, sq(4, 1)), -24},
		{"black e7 pawn mid", Mid(Pawn, 1, sq(4, 6)), -24},
		{"white a2 pawn end includes bonus", End(Pawn, 0, sq(0, 1)), -6 + 20},
		{"white king b1 mid", Mid(King, 0, sq(1, 0)), 50},
		{"white a1 knight", Mid(Knight, 0, sq(0, 0)), -16},
		{"archbishop uses queen table", Mid(Archbishop, 0, sq(4, 3)), 3},
		{"passed pawn on seventh", PassedPawn(0, sq(3, 6)), 140},
		{"protected passer on seventh", ProtectedPasser(1, sq(3, 1)), 175},
		{"weak pawn centre", WeakPawn(0, sq(4, 3)), -16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, tt.got, tt.want)
		})
	}
}

func TestSortValue(t *testing.T) {
	testutil.AssertEqual(t, SortValue[King], SortKing)
	testutil.AssertEqual(t, SortValue[Queen], PieceValue[Queen])
	testutil.AssertEqual(t, PieceValue[King], 0)
}
