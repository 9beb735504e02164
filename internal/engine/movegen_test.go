package engine

import (
	"testing"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/pst"
	"github.com/mage-of-maple/CPW80-Engine/internal/testutil"
)

func castleMoves(pos *chess.Position) []string {
	var out []string
	for _, m := range Generate(pos, nil, chess.NoMove, nil) {
		if m.IsCastle() {
			out = append(out, FormatMove(pos.Variant, m))
		}
	}
	return out
}

func TestGenerate_StartPosition(t *testing.T) {
	pos := mustPosition(t, "capablanca", "")
	moves := Generate(pos, nil, chess.NoMove, nil)
	testutil.AssertEqual(t, len(moves), 28)
	for _, m := range moves {
		testutil.AssertFalse(t, m.IsCapture(), "no captures from the start")
	}
}

func TestGenerate_CastlingGeometry(t *testing.T) {
	tests := []struct {
		variant string
		fen     string
		want    []string
	}{
		{"capablanca", "r4k3r/10/10/10/10/10/10/R4K3R w KQkq - 0 1", []string{"f1c1", "f1i1"}},
		{"embassy", "r3k4r/10/10/10/10/10/10/R3K4R w AJaj - 0 1", []string{"e1b1", "e1h1"}},
		{"schoolbook", "r4k3r/10/10/10/10/10/10/R4K3R w KQkq - 0 1", []string{"f1b1", "f1c1", "f1d1", "f1h1", "f1i1"}},
		{"janus", "r3k4r/10/10/10/10/10/10/R3K4R w AJaj - 0 1", []string{"e1b1", "e1i1"}},
		{"opti", "1r3k2r1/10/10/10/10/10/10/1R3K2R1 w BIbi - 0 1", []string{"f1d1", "f1h1"}},
		{"normal", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1c1", "e1g1"}},
		{"capablanca black", "r4k3r/10/10/10/10/10/10/R4K3R b KQkq - 0 1", []string{"f8c8", "f8i8"}},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			name := tt.variant
			if name == "capablanca black" {
				name = "capablanca"
			}
			pos := mustPosition(t, name, tt.fen)
			testutil.AssertSameMoves(t, castleMoves(pos), tt.want)
		})
	}
}

func TestGenerate_CastlingRestrictions(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{"path attacked", "4k1r3/10/10/10/10/10/10/R4K3R w KQ - 0 1", []string{"f1c1"}},
		{"in check", "4kr4/10/10/10/10/10/10/R4K3R w KQ - 0 1", nil},
		{"piece between", "4k5/10/10/10/10/10/10/R4KB2R w KQ - 0 1", []string{"f1c1"}},
		{"no rights", "4k5/10/10/10/10/10/10/R4K3R w - - 0 1", nil},
		{"rook missing", "4k5/10/10/10/10/10/10/5K3R w KQ - 0 1", []string{"f1i1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, "capablanca", tt.fen)
			testutil.AssertSameMoves(t, castleMoves(pos), tt.want)
		})
	}
}

func TestGenerate_Promotions(t *testing.T) {
	tests := []struct {
		variant string
		fen     string
		want    []string
	}{
		{"capablanca", "4k5/1P8/10/10/10/10/10/4K5 w - - 0 1", []string{"b7b8q", "b7b8c", "b7b8a", "b7b8r", "b7b8b", "b7b8n"}},
		{"victorian", "4k5/1P8/10/10/10/10/10/4K5 w - - 0 1", []string{"b7b8q", "b7b8c", "b7b8a"}},
		{"janus", "4k5/1P8/10/10/10/10/10/4K5 w - - 0 1", []string{"b7b8q", "b7b8j", "b7b8r", "b7b8b", "b7b8n"}},
		{"normal", "4k3/8/8/8/8/8/6p1/K7 b - - 0 1", []string{"g2g1q", "g2g1r", "g2g1b", "g2g1n"}},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			pos := mustPosition(t, tt.variant, tt.fen)
			var got []chess.Move
			for _, m := range Generate(pos, nil, chess.NoMove, nil) {
				if m.Piece == chess.Pawn {
					got = append(got, m)
				}
			}
			testutil.AssertEqual(t, moveTexts(pos, got), tt.want)
			for _, m := range got {
				testutil.AssertTrue(t, m.IsPromotion())
				testutil.AssertEqual(t, m.Score, SortProm+pst.SortValue[m.PieceTo])
			}
		})
	}
}

func TestGenerate_EnPassant(t *testing.T) {
	pos := mustPosition(t, "normal", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	var ep *chess.Move
	moves := Generate(pos, nil, chess.NoMove, nil)
	for i := range moves {
		if moves[i].Flags&chess.FlagEPCapture != 0 {
			ep = &moves[i]
		}
	}
	if ep == nil {
		t.Fatal("no en passant capture generated")
	}
	testutil.AssertEqual(t, FormatMove(pos.Variant, *ep), "e5d6")
	testutil.AssertEqual(t, ep.Captured, chess.Empty)
	testutil.AssertTrue(t, ep.IsCapture())
	testutil.AssertEqual(t, ep.Score, SortCapt+pst.SortValue[chess.Pawn]+5)
}

func TestGenerate_HashHint(t *testing.T) {
	pos := mustPosition(t, "capablanca", "")
	moves := Generate(pos, nil, chess.NoMove, nil)
	hint := moves[len(moves)-1].ID()

	moves = Generate(pos, nil, hint, nil)
	for _, m := range moves {
		if m.ID() == hint {
			testutil.AssertEqual(t, m.Score, SortHash)
		} else {
			testutil.AssertTrue(t, m.Score < SortHash)
		}
	}
}

func TestGenerate_HistoryScores(t *testing.T) {
	pos := mustPosition(t, "capablanca", "")
	var history HistoryTable
	from, to := chess.MakeSquare(1, 0), chess.MakeSquare(2, 2)
	history[chess.White][from][to] = 77

	for _, m := range Generate(pos, nil, chess.NoMove, &history) {
		want := 0
		if m.From == from && m.To == to {
			want = 77
		}
		testutil.AssertEqual(t, m.Score, want, "move %s", FormatMove(pos.Variant, m))
	}
}

func TestGenerateCaptures(t *testing.T) {
	tests := []struct {
		name, variant, fen string
		want               int
	}{
		{"kiwipete", "normal", testutil.Kiwipete, 8},
		{"start", "capablanca", "", 0},
		{"promotion push", "capablanca", "4k5/1P8/10/10/10/10/10/4K5 w - - 0 1", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, tt.variant, tt.fen)
			moves := GenerateCaptures(pos, nil)
			testutil.AssertEqual(t, len(moves), tt.want)
			for _, m := range moves {
				testutil.AssertTrue(t, m.IsCapture() || m.IsPromotion(), "move %s", FormatMove(pos.Variant, m))
			}
		})
	}
}

func TestBlind(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want bool
	}{
		{"rook takes defended pawn", "4k5/10/3p6/4p5/10/10/10/4R1K3 w - - 0 1", "e1e5", false},
		{"rook takes loose pawn", "4k5/10/10/4p5/10/10/10/4R1K3 w - - 0 1", "e1e5", true},
		{"pawn takes defended pawn", "4k5/10/3p6/4p5/3P6/10/10/6K3 w - - 0 1", "d4e5", true},
		{"rook takes defended chancellor", "4k5/10/3p6/4c5/10/10/10/4R1K3 w - - 0 1", "e1e5", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, "capablanca", tt.fen)
			before := takeSnapshot(pos)
			var found bool
			for _, m := range Generate(pos, nil, chess.NoMove, nil) {
				if FormatMove(pos.Variant, m) != tt.move {
					continue
				}
				found = true
				testutil.AssertEqual(t, Blind(pos, m), tt.want)
				testutil.AssertEqual(t, m.Score >= SortCapt, tt.want, "capture band")
			}
			testutil.AssertTrue(t, found, "move %s generated", tt.move)
			testutil.AssertEqual(t, takeSnapshot(pos), before, "Blind leaves the position intact")
		})
	}
}

func TestPickNext(t *testing.T) {
	moves := []chess.Move{{Score: 3}, {Score: 9}, {Score: 1}, {Score: 7}, {Score: 9}}
	var got []int
	for i := range moves {
		PickNext(moves, i)
		got = append(got, moves[i].Score)
	}
	testutil.AssertEqual(t, got, []int{9, 9, 7, 3, 1})
}
