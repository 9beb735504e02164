// Package eval scores positions for the search. Scores are in centipawns
// from the point of view of the side to move.
//
// The evaluation interpolates a midgame and an endgame score by game phase
// and adds phase-independent terms on top: material adjustments, pawn
// structure, blocked pieces, king safety and tempo. Pawn structure depends
// on pawns alone and is cached under the pawn hash; the whole result is
// cached under the full hash.
package eval

import (
	"github.com/mage-of-maple/CPW80-Engine/internal/cache"
	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/pst"
)

// Evaluation weights.
const (
	shield2 = 10 // shield pawn on its home rank
	shield3 = 5  // shield pawn one step forward

	blockedCentralPawn = 24
	bishopTrappedA7    = 150
	bishopTrappedA6    = 50
	knightTrappedA8    = 150
	knightTrappedA7    = 100
	returningBishop    = 20

	rookOpen = 10
	rookHalf = 5

	doubledPawn   = 20
	unopposedWeak = 4

	rookPairPenalty = 0
)

// Knights lose value as pawns disappear and rooks gain, indexed by the
// owner's pawn count.
var (
	knightAdjust = [...]int{-20, -16, -12, -8, -4, -4, 0, 0, 4, 8, 12}
	rookAdjust   = [...]int{15, 12, 9, 6, 3, 3, 0, 0, -3, -6, -9}
)

// safetyTable converts accumulated king attack weight into a score.
var safetyTable = [120]int{
	0, 0, 1, 2, 3, 5, 7, 9, 12, 15,
	18, 22, 26, 30, 35, 39, 44, 50, 56, 62,
	68, 75, 82, 85, 89, 97, 105, 113, 122, 131,
	140, 150, 169, 180, 191, 202, 213, 225, 237, 248,
	260, 272, 283, 295, 307, 319, 330, 342, 354, 366,
	377, 389, 401, 412, 424, 436, 448, 459, 471, 483,
	494, 500, 500, 500, 500, 500, 500, 500, 500, 500,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500,
}

// Terms holds every component of one evaluation. Per-colour fields are
// indexed by chess.White and chess.Black.
type Terms struct {
	Phase int

	Material [chess.NumColours]int
	MidPST   [chess.NumColours]int
	EndPST   [chess.NumColours]int

	MidMobility [chess.NumColours]int
	EndMobility [chess.NumColours]int
	MidTropism  [chess.NumColours]int
	EndTropism  [chess.NumColours]int

	AttackCount  [chess.NumColours]int
	AttackWeight [chess.NumColours]int

	KingShield [chess.NumColours]int
	Adjustment [chess.NumColours]int
	Blockages  [chess.NumColours]int
	Themes     [chess.NumColours]int

	// Pawns is the pawn structure score, white minus black.
	Pawns int
	// Tempo is the side-to-move bonus from white's point of view.
	Tempo int

	// Total is the final score for the side to move.
	Total int
}

// Evaluator computes static evaluations, optionally backed by caches.
type Evaluator struct {
	pawns *cache.ScoreTable
	evals *cache.ScoreTable
}

// New returns an Evaluator using the given pawn and evaluation caches.
// Either may be nil to evaluate without caching.
func New(pawns, evals *cache.ScoreTable) *Evaluator {
	return &Evaluator{pawns: pawns, evals: evals}
}

// FromCaches returns an Evaluator wired to the pawn and eval tables of c.
func FromCaches(c *cache.Caches) *Evaluator {
	return New(c.Pawn, c.Eval)
}

// Evaluate returns the static score of pos for the side to move.
func (e *Evaluator) Evaluate(pos *chess.Position) int {
	if e.evals != nil {
		if v, ok := e.evals.Probe(pos.Hash); ok {
			return v
		}
	}
	var t Terms
	v := e.compute(pos, &t)
	if e.evals != nil {
		e.evals.Store(pos.Hash, v)
	}
	return v
}

// Breakdown evaluates pos without consulting the evaluation cache and
// returns every term.
func (e *Evaluator) Breakdown(pos *chess.Position) Terms {
	var t Terms
	e.compute(pos, &t)
	return t
}

func (e *Evaluator) compute(pos *chess.Position, t *Terms) int {
	t.Phase = phase(pos)

	for c := chess.White; c <= chess.Black; c++ {
		t.Material[c] = pos.Material(c)
		t.MidPST[c] = pos.PSTMid[c]
		t.EndPST[c] = pos.PSTEnd[c]
		t.KingShield[c] = kingShield(pos, c)
		t.Adjustment[c] = materialAdjustment(pos, c)
		blockedPieces(pos, c, t)
	}

	mid := t.Material[chess.White] - t.Material[chess.Black] +
		t.MidPST[chess.White] - t.MidPST[chess.Black] +
		t.KingShield[chess.White] - t.KingShield[chess.Black]
	end := t.Material[chess.White] - t.Material[chess.Black] +
		t.EndPST[chess.White] - t.EndPST[chess.Black]

	result := 0
	t.Tempo = pst.Tempo
	if pos.SideToMove == chess.Black {
		t.Tempo = -pst.Tempo
	}
	result += t.Tempo

	t.Pawns = e.pawnScore(pos)
	result += t.Pawns

	evalPieces(pos, t)

	mid += t.MidMobility[chess.White] - t.MidMobility[chess.Black]
	end += t.EndMobility[chess.White] - t.EndMobility[chess.Black]
	mid += t.MidTropism[chess.White] - t.MidTropism[chess.Black]
	end += t.EndTropism[chess.White] - t.EndTropism[chess.Black]

	midWeight := t.Phase
	endWeight := pst.PhaseMaxValue - midWeight
	result += (mid*midWeight + end*endWeight) / pst.PhaseMaxValue

	result += t.Blockages[chess.White] - t.Blockages[chess.Black]
	result += t.Themes[chess.White] - t.Themes[chess.Black]
	result += t.Adjustment[chess.White] - t.Adjustment[chess.Black]

	for c := chess.White; c <= chess.Black; c++ {
		if t.AttackCount[c] < 2 || heavyPieces(pos, c) == 0 {
			t.AttackWeight[c] = 0
		}
	}
	result += safety(t.AttackWeight[chess.White]) - safety(t.AttackWeight[chess.Black])

	result = lowMaterial(pos, result)

	if pos.SideToMove == chess.Black {
		result = -result
	}
	t.Total = result
	return result
}

// phase is 28 with a full set of pieces on an orthodox board and falls
// towards zero as pieces leave.
func phase(pos *chess.Position) int {
	p := 0
	for c := chess.White; c <= chess.Black; c++ {
		n := pos.Count[c]
		p += n[chess.Knight] + n[chess.Bishop] + 2*n[chess.Rook] +
			4*(n[chess.Queen]+n[chess.Archbishop]+n[chess.Chancellor])
	}
	return min(p, pst.PhaseMaxValue)
}

func heavyPieces(pos *chess.Position, c chess.Colour) int {
	n := pos.Count[c]
	return n[chess.Queen] + n[chess.Archbishop] + n[chess.Chancellor]
}

func safety(weight int) int {
	return safetyTable[min(weight, len(safetyTable)-1)]
}

func materialAdjustment(pos *chess.Position, c chess.Colour) int {
	n := pos.Count[c]
	adj := 0
	if n[chess.Bishop] > 1 {
		adj += pst.BishopPair
	}
	if n[chess.Knight] > 1 {
		adj -= pst.KnightPair
	}
	if n[chess.Rook] > 1 {
		adj -= rookPairPenalty
	}
	pawns := min(n[chess.Pawn], len(knightAdjust)-1)
	adj += knightAdjust[pawns] * n[chess.Knight]
	adj += rookAdjust[pawns] * n[chess.Rook]
	return adj
}

// lowMaterial scales down a white-relative score when the stronger side
// has no pawns and too little material to win.
func lowMaterial(pos *chess.Position, result int) int {
	stronger, weaker := chess.White, chess.Black
	if result <= 0 {
		stronger, weaker = chess.Black, chess.White
	}
	if pos.PawnMaterial[stronger] != 0 {
		return result
	}

	strong, weak := pos.PieceMaterial[stronger], pos.PieceMaterial[weaker]
	if strong < 400 {
		return 0
	}
	if pos.PawnMaterial[weaker] == 0 && strong == 2*pst.PieceValue[chess.Knight] {
		return 0
	}
	if strong == pst.PieceValue[chess.Rook] &&
		(weak == pst.PieceValue[chess.Bishop] || weak == pst.PieceValue[chess.Knight]) {
		result /= 4
	}
	return result
}

func isPiece(pos *chess.Position, c chess.Colour, kind chess.Piece, sq chess.Square) bool {
	return pos.Pieces[sq] == kind && pos.Colours[sq] == c
}

// relative maps a square named from white's side of the board to the same
// square seen from c's side.
func relative(c chess.Colour, file byte, rank int) chess.Square {
	r := rank - 1
	if c == chess.Black {
		r = chess.NumRanks - 1 - r
	}
	return chess.MakeSquare(int(file-'a'), r)
}
