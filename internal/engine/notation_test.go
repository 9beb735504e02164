package engine

import (
	"testing"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/errors"
	"github.com/mage-of-maple/CPW80-Engine/internal/testutil"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		fen     string
		text    string
		want    string
		wantErr error
	}{
		{"pawn push", "capablanca", "", "e2e4", "e2e4", nil},
		{"knight", "capablanca", "", "i1h3", "i1h3", nil},
		{"tenth file", "capablanca", "", "j2j3", "j2j3", nil},
		{"default promotion", "capablanca", "4k5/1P8/10/10/10/10/10/4K5 w - - 0 1", "b7b8", "b7b8q", nil},
		{"chancellor promotion", "capablanca", "4k5/1P8/10/10/10/10/10/4K5 w - - 0 1", "b7b8c", "b7b8c", nil},
		{"uppercase promotion", "capablanca", "4k5/1P8/10/10/10/10/10/4K5 w - - 0 1", "b7b8A", "b7b8a", nil},
		{"variant letter", "janus", "4k5/1P8/10/10/10/10/10/4K5 w - - 0 1", "b7b8j", "b7b8j", nil},
		{"promotion not offered", "victorian", "4k5/1P8/10/10/10/10/10/4K5 w - - 0 1", "b7b8n", "", errors.ErrInvalidMoveText},
		{"off board", "normal", "", "i2i3", "", errors.ErrInvalidMoveText},
		{"too short", "capablanca", "", "e2e", "", errors.ErrInvalidMoveText},
		{"garbage", "capablanca", "", "hello", "", errors.ErrInvalidMoveText},
		{"illegal", "capablanca", "", "e2e5", "", errors.ErrIllegalMove},
		{"into check", "capablanca", "4k5/10/10/10/10/10/10/4K2c2 w - - 0 1", "e1f1", "", errors.ErrIllegalMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, tt.variant, tt.fen)
			before := takeSnapshot(pos)

			m, err := ParseMove(pos, tt.text)
			testutil.AssertEqual(t, takeSnapshot(pos), before, "position untouched")
			if tt.wantErr != nil {
				testutil.AssertErrorIs(t, err, tt.wantErr)
				var me *errors.MoveError
				testutil.AssertTrue(t, errors.As(err, &me))
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, FormatMove(pos.Variant, m), tt.want)
		})
	}
}

func TestApplyMoves(t *testing.T) {
	pos := mustPosition(t, "capablanca", "")
	err := ApplyMoves(pos, []string{"e2e4", "e7e5", "i1h3"})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, pos.SideToMove, chess.Black)

	err = ApplyMoves(pos, []string{"b8c6", "zz"})
	testutil.AssertError(t, err)
	testutil.AssertEqual(t, pos.SideToMove, chess.White, "moves before the bad one stay played")
}

func TestLegalMoves(t *testing.T) {
	tests := []struct {
		name, variant, fen string
		want               int
	}{
		{"start", "capablanca", "", 28},
		{"check by chancellor", "capablanca", "4k5/10/10/10/10/10/10/4K2c2 w - - 0 1", 2},
		{"stalemate", "normal", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, tt.variant, tt.fen)
			testutil.AssertEqual(t, len(LegalMoves(pos)), tt.want)
			testutil.AssertEqual(t, CountLegal(pos), tt.want)
		})
	}
}

func TestIsLegal(t *testing.T) {
	pos := mustPosition(t, "capablanca", "4k5/10/10/10/10/10/10/4K2c2 w - - 0 1")
	for _, m := range Generate(pos, nil, chess.NoMove, nil) {
		MakeMove(pos, m)
		want := !LeftInCheck(pos)
		UnmakeMove(pos, m)
		testutil.AssertEqual(t, IsLegal(pos, m), want, "move %s", FormatMove(pos.Variant, m))
	}
	testutil.AssertTrue(t, IsCapture(chess.Move{Captured: chess.Rook}))
	testutil.AssertTrue(t, IsPromotion(chess.Move{Flags: chess.FlagPromotion}))
}

func TestFindByID(t *testing.T) {
	pos := mustPosition(t, "capablanca", "")
	want, err := ParseMove(pos, "e2e4")
	testutil.AssertNoError(t, err)

	got, ok := FindByID(pos, want.ID())
	testutil.AssertTrue(t, ok, "found")
	testutil.AssertEqual(t, got, want)

	_, ok = FindByID(pos, chess.NoMove)
	testutil.AssertFalse(t, ok, "no move")

	// the king may not stay on the chancellor's rank
	pos = mustPosition(t, "capablanca", "4k5/10/10/10/10/10/10/4K2c2 w - - 0 1")
	step := chess.Move{From: chess.MakeSquare(4, 0), To: chess.MakeSquare(5, 0), PieceTo: chess.King}
	_, ok = FindByID(pos, step.ID())
	testutil.AssertFalse(t, ok, "illegal king step")
}
