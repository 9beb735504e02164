package testutil

// Fixture is a named position together with its known perft counts.
// Perft[i] is the leaf count at depth i+1.
type Fixture struct {
	Name    string
	Variant string
	FEN     string
	Perft   []uint64
}

// Position strings shared by tests across packages.
const (
	CapablancaStart = "rnabqkbcnr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNABQKBCNR w KQkq - 0 1"
	NormalStart     = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	Kiwipete        = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	RookEndgame     = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	PromotionMess   = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	CheckedCastle   = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
)

// PerftFixtures are positions with published move-tree sizes.
var PerftFixtures = []Fixture{
	{Name: "capablanca start", Variant: "capablanca", FEN: CapablancaStart, Perft: []uint64{28, 784, 25228}},
	{Name: "normal start", Variant: "normal", FEN: NormalStart, Perft: []uint64{20, 400, 8902}},
	{Name: "kiwipete", Variant: "normal", FEN: Kiwipete, Perft: []uint64{48, 2039, 97862}},
	{Name: "rook endgame", Variant: "normal", FEN: RookEndgame, Perft: []uint64{14, 191, 2812}},
	{Name: "promotions", Variant: "normal", FEN: PromotionMess, Perft: []uint64{6, 264, 9467}},
	{Name: "checked castle", Variant: "normal", FEN: CheckedCastle, Perft: []uint64{44, 1486, 62379}},
}

// FixturesFor returns the fixtures of one variant.
func FixturesFor(variant string) []Fixture {
	var out []Fixture
	for _, f := range PerftFixtures {
		if f.Variant == variant {
			out = append(out, f)
		}
	}
	return out
}
