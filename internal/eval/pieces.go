package eval

import (
	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/engine"
)

// pieceWeights parameterizes the mobility, king attack and tropism terms
// for one piece kind. Mobility is scored as weight*(squares-base).
type pieceWeights struct {
	base           int
	midMob, endMob int
	attack         int
	midTrop        int
	endTrop        int
	// safeOnly counts empty squares only when no enemy pawn guards them.
	safeOnly bool
}

var weights = [chess.NumPieceKinds]pieceWeights{
	chess.Knight:     {base: 4, midMob: 4, endMob: 4, attack: 2, midTrop: 3, endTrop: 3, safeOnly: true},
	chess.Bishop:     {base: 7, midMob: 3, endMob: 3, attack: 2, midTrop: 2, endTrop: 1, safeOnly: true},
	chess.Rook:       {base: 7, midMob: 2, endMob: 4, attack: 3, midTrop: 2, endTrop: 1},
	chess.Queen:      {base: 14, midMob: 1, endMob: 2, attack: 4, midTrop: 2, endTrop: 4},
	chess.Archbishop: {base: 14, midMob: 1, endMob: 2, attack: 4, midTrop: 2, endTrop: 3},
	chess.Chancellor: {base: 14, midMob: 1, endMob: 2, attack: 4, midTrop: 2, endTrop: 3},
}

// Early development penalties per heavy piece: for each own knight still
// on b1 or i1 and each bishop still on d1 or g1.
var development = [chess.NumPieceKinds]struct {
	knight, bishop int
	// fromRank is the last rank on which the piece counts as undeveloped.
	fromRank int
}{
	chess.Queen:      {knight: 4, bishop: 2, fromRank: 1},
	chess.Archbishop: {knight: 3, bishop: 1, fromRank: 1},
	chess.Chancellor: {knight: 5, bishop: 2, fromRank: 0},
}

func evalPieces(pos *chess.Position, t *Terms) {
	files := pos.Files()
	for f := 0; f < files; f++ {
		for r := 0; r < chess.NumRanks; r++ {
			sq := chess.MakeSquare(f, r)
			kind := pos.Pieces[sq]
			if kind == chess.Empty || kind == chess.Pawn || kind == chess.King {
				continue
			}
			evalPiece(pos, sq, kind, pos.Colours[sq], t)
		}
	}
}

func evalPiece(pos *chess.Position, sq chess.Square, kind chess.Piece, side chess.Colour, t *Terms) {
	w := weights[kind]
	them := side.Opposite()
	enemyKing := pos.KingSquare[them]

	switch kind {
	case chess.Rook:
		rookBonuses(pos, sq, side, t)
	case chess.Queen, chess.Chancellor:
		if onSeventh(pos, sq, side) {
			t.MidMobility[side] += 5
			t.EndMobility[side] += 10
		}
	}
	if d := development[kind]; d.knight != 0 && relativeRank(side, sq) > d.fromRank {
		for _, file := range []byte{'b', 'i'} {
			if isPiece(pos, side, chess.Knight, relative(side, file, 1)) {
				t.Themes[side] -= d.knight
			}
		}
		for _, file := range []byte{'d', 'g'} {
			if isPiece(pos, side, chess.Bishop, relative(side, file, 1)) {
				t.Themes[side] -= d.bishop
			}
		}
	}

	mob, att := 0, 0
	desc := chess.Descriptors[kind]
	for i, d := range desc.Vectors {
		for to := sq + d; pos.OnBoard(to); to += d {
			if pos.Pieces[to] == chess.Empty {
				if !w.safeOnly || pos.PawnControl[them][to] == 0 {
					mob++
				}
				if nearKing(them, enemyKing, to) {
					att++
				}
			} else {
				if pos.Colours[to] != side {
					if kind != chess.Knight || pos.PawnControl[them][to] == 0 {
						mob++
					}
					if nearKing(them, enemyKing, to) {
						att++
					}
				}
				break
			}
			if i >= desc.Slides {
				break
			}
		}
	}

	t.MidMobility[side] += w.midMob * (mob - w.base)
	t.EndMobility[side] += w.endMob * (mob - w.base)
	if att > 0 {
		t.AttackCount[side]++
		t.AttackWeight[side] += w.attack * att
	}

	trop := tropism(sq, enemyKing)
	t.MidTropism[side] += w.midTrop * trop
	t.EndTropism[side] += w.endTrop * trop
}

func rookBonuses(pos *chess.Position, sq chess.Square, side chess.Colour, t *Terms) {
	them := side.Opposite()
	if onSeventh(pos, sq, side) {
		t.MidMobility[side] += 20
		t.EndMobility[side] += 30
	}

	file := sq.File()
	if pos.PawnsOnFile[side][file] != 0 {
		return
	}
	nearFile := engine.Abs(file-pos.KingSquare[them].File()) < 2
	if pos.PawnsOnFile[them][file] == 0 {
		t.MidMobility[side] += rookOpen
		t.EndMobility[side] += rookOpen
		if nearFile {
			t.AttackWeight[side]++
		}
		return
	}
	t.MidMobility[side] += rookHalf
	t.EndMobility[side] += rookHalf
	if nearFile {
		t.AttackWeight[side] += 2
	}
}

// onSeventh reports a piece on its seventh rank with enemy pawns to attack
// there or the enemy king confined to the back rank.
func onSeventh(pos *chess.Position, sq chess.Square, side chess.Colour) bool {
	if relativeRank(side, sq) != 6 {
		return false
	}
	them := side.Opposite()
	seventh := sq.Rank()
	return pos.PawnsOnRank[them][seventh] > 0 ||
		pos.KingSquare[them].Rank() == chess.BackRank(them)
}

func relativeRank(c chess.Colour, sq chess.Square) int {
	if c == chess.White {
		return sq.Rank()
	}
	return chess.NumRanks - 1 - sq.Rank()
}

// nearKing reports whether sq lies in the zone around a king of colour c on
// ksq: the eight surrounding squares and the three squares two ranks ahead.
func nearKing(c chess.Colour, ksq, sq chess.Square) bool {
	df := engine.Abs(sq.File() - ksq.File())
	if df > 1 {
		return false
	}
	dr := sq.Rank() - ksq.Rank()
	if c == chess.Black {
		dr = -dr
	}
	switch {
	case dr == 2:
		return true
	case dr < -1 || dr > 1:
		return false
	}
	return df != 0 || dr != 0
}

func tropism(a, b chess.Square) int {
	return 7 - (engine.Abs(a.Rank()-b.Rank()) + engine.Abs(a.File()-b.File()))
}

// kingShield rewards pawns in front of a castled king.
func kingShield(pos *chess.Position, c chess.Colour) int {
	files := pos.Files()
	kf := pos.KingSquare[c].File()

	var first int
	switch {
	case kf > files/2:
		first = files - 3
	case kf < files/2-1:
		first = 0
	default:
		return 0
	}

	score := 0
	for f := first; f < first+3; f++ {
		switch {
		case isPiece(pos, c, chess.Pawn, relativeFile(c, f, 2)):
			score += shield2
		case isPiece(pos, c, chess.Pawn, relativeFile(c, f, 3)):
			score += shield3
		}
	}
	return score
}

func relativeFile(c chess.Colour, file, rank int) chess.Square {
	return relative(c, byte('a'+file), rank)
}

// blockedPieces scores pieces that are shut in by pawns and the bishop that
// stays home beside a castled king.
func blockedPieces(pos *chess.Position, side chess.Colour, t *Terms) {
	them := side.Opposite()
	own := func(kind chess.Piece, file byte, rank int) bool {
		return isPiece(pos, side, kind, relative(side, file, rank))
	}
	enemyPawn := func(file byte, rank int) bool {
		return isPiece(pos, them, chess.Pawn, relative(side, file, rank))
	}
	occupied := func(file byte, rank int) bool {
		return pos.Pieces[relative(side, file, rank)] != chess.Empty
	}

	// central pawn blocked, bishop hard to develop
	if own(chess.Bishop, 'c', 1) && own(chess.Pawn, 'd', 2) && occupied('d', 3) {
		t.Blockages[side] -= blockedCentralPawn
	}
	if own(chess.Bishop, 'h', 1) && own(chess.Pawn, 'g', 2) && occupied('g', 3) {
		t.Blockages[side] -= blockedCentralPawn
	}

	// trapped knights
	if own(chess.Knight, 'a', 8) && (enemyPawn('a', 7) || enemyPawn('c', 7)) {
		t.Blockages[side] -= knightTrappedA8
	}
	if own(chess.Knight, 'j', 8) && (enemyPawn('j', 7) || enemyPawn('h', 7)) {
		t.Blockages[side] -= knightTrappedA8
	}
	if own(chess.Knight, 'a', 7) && enemyPawn('a', 6) && enemyPawn('b', 7) {
		t.Blockages[side] -= knightTrappedA7
	}
	if own(chess.Knight, 'j', 7) && enemyPawn('j', 6) && enemyPawn('i', 7) {
		t.Blockages[side] -= knightTrappedA7
	}

	// trapped bishops
	traps := []struct {
		bishopFile byte
		bishopRank int
		pawnFile   byte
		pawnRank   int
		penalty    int
	}{
		{'a', 7, 'b', 6, bishopTrappedA7},
		{'j', 7, 'i', 6, bishopTrappedA7},
		{'b', 8, 'c', 7, bishopTrappedA7},
		{'i', 8, 'h', 7, bishopTrappedA7},
		{'a', 6, 'b', 5, bishopTrappedA6},
		{'j', 6, 'i', 5, bishopTrappedA6},
	}
	for _, tr := range traps {
		if own(chess.Bishop, tr.bishopFile, tr.bishopRank) && enemyPawn(tr.pawnFile, tr.pawnRank) {
			t.Blockages[side] -= tr.penalty
		}
	}

	// bishop on its home square beside the castled king
	if own(chess.Bishop, 'f', 1) && own(chess.King, 'g', 1) {
		t.Themes[side] += returningBishop
	}
	if own(chess.Bishop, 'c', 1) && own(chess.King, 'b', 1) {
		t.Themes[side] += returningBishop
	}
}
