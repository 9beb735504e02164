package eval

import (
	"bytes"
	"testing"

	"github.com/mage-of-maple/CPW80-Engine/internal/cache"
	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/engine"
	"github.com/mage-of-maple/CPW80-Engine/internal/pst"
	"github.com/mage-of-maple/CPW80-Engine/internal/testutil"
	"github.com/mage-of-maple/CPW80-Engine/internal/variant"
)

func mustPosition(t testing.TB, name, fen string) *chess.Position {
	t.Helper()
	v := variant.MustByName(name)
	pos := chess.NewPosition(v)
	if err := engine.LoadFEN(pos, fen); err != nil {
		t.Fatalf("LoadFEN(%q): %v", fen, err)
	}
	return pos
}

// mirror returns pos with ranks flipped, colours swapped and the other side
// to move. Castling and en passant are dropped.
func mirror(pos *chess.Position) *chess.Position {
	m := chess.NewPosition(pos.Variant)
	for f := 0; f < pos.Files(); f++ {
		for r := 0; r < chess.NumRanks; r++ {
			sq := chess.MakeSquare(f, r)
			if pos.Pieces[sq] == chess.Empty {
				continue
			}
			m.PlacePiece(pos.Colours[sq].Opposite(), pos.Pieces[sq], chess.MakeSquare(f, chess.NumRanks-1-r))
		}
	}
	m.SideToMove = pos.SideToMove.Opposite()
	m.Hash, m.PawnHash = m.ComputeHash()
	m.ResetHistory()
	return m
}

func TestEvaluate_SymmetricStartScoresTempo(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		fen     string
	}{
		{"capablanca white", "capablanca", testutil.CapablancaStart},
		{"capablanca black", "capablanca", "rnabqkbcnr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNABQKBCNR b KQkq - 0 1"},
		{"normal white", "normal", testutil.NormalStart},
		{"normal black", "normal", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, tt.variant, tt.fen)
			testutil.AssertEqual(t, New(nil, nil).Evaluate(pos), pst.Tempo)
		})
	}
}

func TestEvaluate_ColourMirror(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		fen     string
	}{
		{"kiwipete", "normal", testutil.Kiwipete},
		{"rook endgame", "normal", testutil.RookEndgame},
		{"promotions", "normal", testutil.PromotionMess},
		{"checked castle", "normal", testutil.CheckedCastle},
		{"capablanca middlegame", "capablanca", "r1a1qkb1nr/pp1ppppppp/2n3c3/1Bp7/4P5/5N4/PPPP1PPPPP/RNA1QK1C1R w KQkq - 0 1"},
		{"capablanca king hunt", "capablanca", "5rk3/3c2ppp1/10/8Q1/10/7A2/5PPP2/6K3 b - - 0 1"},
	}
	e := New(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, tt.variant, tt.fen)
			testutil.AssertEqual(t, e.Evaluate(mirror(pos)), e.Evaluate(pos))
		})
	}
}

func TestPawnStructure(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{"lone passer", "5k4/10/10/10/4P5/10/10/5K4 w - - 0 1", 12},
		{"lone black passer", "5k4/10/10/4p5/10/10/10/5K4 w - - 0 1", -12},
		{"doubled", "5k4/10/10/10/4P5/4P5/10/5K4 w - - 0 1", -28},
		{"protected duo", "5k4/10/10/10/3PP5/10/10/5K4 w - - 0 1", 80},
		{"opposed pair", "5k4/10/10/4p5/4P5/10/10/5K4 w - - 0 1", 0},
		{"no pawns", "5k4/10/10/10/10/10/10/5K4 w - - 0 1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, "capablanca", tt.fen)
			testutil.AssertEqual(t, PawnStructure(pos), tt.want)
		})
	}
}

func TestEvaluate_LowMaterialIsDrawish(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"knight", "5k4/10/10/10/10/10/10/4NK4 w - - 0 1"},
		{"two knights", "5k4/10/10/10/10/10/10/3NNK4 b - - 0 1"},
		{"bishop against pawn", "5k4/10/4p5/10/10/10/10/4BK4 w - - 0 1"},
	}
	e := New(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, "capablanca", tt.fen)
			testutil.AssertEqual(t, e.Evaluate(pos), 0)
		})
	}
}

func TestLowMaterial_RookAgainstMinor(t *testing.T) {
	pos := mustPosition(t, "capablanca", "5k4/4b5/10/10/10/10/10/4RK4 w - - 0 1")
	testutil.AssertEqual(t, lowMaterial(pos, 400), 100)

	pos = mustPosition(t, "capablanca", "5k4/4b5/10/10/10/10/4P5/4RK4 w - - 0 1")
	testutil.AssertEqual(t, lowMaterial(pos, 400), 400, "stronger side has a pawn")
}

func TestEvaluate_UsesCaches(t *testing.T) {
	pawns := cache.NewScoreTable(1 << 16)
	evals := cache.NewScoreTable(1 << 16)
	e := New(pawns, evals)
	pos := mustPosition(t, "capablanca", "5k4/10/10/10/4P5/10/10/5K4 w - - 0 1")

	v := e.Evaluate(pos)
	got, ok := evals.Probe(pos.Hash)
	testutil.AssertTrue(t, ok, "eval stored")
	testutil.AssertEqual(t, got, v)

	structure, ok := pawns.Probe(pos.PawnHash)
	testutil.AssertTrue(t, ok, "pawn score stored")
	testutil.AssertEqual(t, structure, 12)

	evals.Store(pos.Hash, 4242)
	testutil.AssertEqual(t, e.Evaluate(pos), 4242, "cached value returned")
	testutil.AssertEqual(t, e.Breakdown(pos).Total, v, "breakdown bypasses eval cache")
}

func TestPhase(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		fen     string
		want    int
	}{
		{"capablanca start is capped", "capablanca", testutil.CapablancaStart, pst.PhaseMaxValue},
		{"normal start", "normal", testutil.NormalStart, 24},
		{"rook endgame", "normal", testutil.RookEndgame, 4},
		{"bare kings", "capablanca", "5k4/10/10/10/10/10/10/5K4 w - - 0 1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, phase(mustPosition(t, tt.variant, tt.fen)), tt.want)
		})
	}
}

func TestKingShield(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{"kingside", "5k4/10/10/10/10/9P/7PP1/8K1 w - - 0 1", 25},
		{"queenside", "5k4/10/10/10/10/1P8/P1P7/1K8 w - - 0 1", 25},
		{"centre king", "5k4/10/10/10/10/10/3PPP4/5K4 w - - 0 1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, "capablanca", tt.fen)
			testutil.AssertEqual(t, kingShield(pos, chess.White), tt.want)
		})
	}
}

func TestNearKing(t *testing.T) {
	sq := func(text string) chess.Square {
		s, _ := chess.ParseSquare(text)
		return s
	}
	tests := []struct {
		colour chess.Colour
		king   string
		target string
		want   bool
	}{
		{chess.White, "e1", "e2", true},
		{chess.White, "e1", "d3", true},
		{chess.White, "e1", "f3", true},
		{chess.White, "e1", "e4", false},
		{chess.White, "e1", "g2", false},
		{chess.White, "e1", "e1", false},
		{chess.Black, "e8", "e6", true},
		{chess.Black, "e8", "d7", true},
		{chess.Black, "e5", "e3", true},
		{chess.Black, "e5", "e7", false},
	}
	for _, tt := range tests {
		t.Run(tt.king+"-"+tt.target, func(t *testing.T) {
			testutil.AssertEqual(t, nearKing(tt.colour, sq(tt.king), sq(tt.target)), tt.want)
		})
	}
}

func TestExplain(t *testing.T) {
	pos := mustPosition(t, "capablanca", testutil.CapablancaStart)
	var buf bytes.Buffer
	New(nil, nil).Explain(&buf, pos)

	out := buf.String()
	testutil.AssertContains(t, out, "Total value (for side to move): 10")
	testutil.AssertContains(t, out, "Material balance       : 0")
	testutil.AssertContains(t, out, "King Shield            : white    0, black    0, total:    0")
	testutil.AssertContains(t, out, "Tempo                  : 10")
}
