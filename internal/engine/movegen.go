package engine

import (
	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/pst"
)

// Ordering bands. Higher scores are searched first.
const (
	SortKing = pst.SortKing
	SortHash = 200000000
	SortCapt = 100000000
	SortProm = 90000000
	SortKill = 80000000
)

// HistoryTable scores quiet moves by side, origin and destination.
type HistoryTable [chess.NumColours][chess.NumSquares][chess.NumSquares]int

type generator struct {
	pos     *chess.Position
	moves   []chess.Move
	history *HistoryTable
}

// Generate appends every pseudo-legal move for the side to move to moves
// and returns the extended slice. A move whose ID equals hint is scored
// above everything else. history may be nil.
func Generate(pos *chess.Position, moves []chess.Move, hint chess.MoveID, history *HistoryTable) []chess.Move {
	g := generator{pos: pos, moves: moves, history: history}
	start := len(moves)

	g.castling()

	stm := pos.SideToMove
	files := pos.Files()
	for file := 0; file < files; file++ {
		for rank := 0; rank < chess.NumRanks; rank++ {
			sq := chess.MakeSquare(file, rank)
			if pos.Colours[sq] != stm {
				continue
			}
			if pos.Pieces[sq] == chess.Pawn {
				g.pawnPushes(sq, false)
				g.pawnCaptures(sq)
				continue
			}
			g.pieceMoves(sq, false)
		}
	}

	if hint != chess.NoMove {
		for i := start; i < len(g.moves); i++ {
			if g.moves[i].ID() == hint {
				g.moves[i].Score = SortHash
				break
			}
		}
	}
	return g.moves
}

// GenerateCaptures appends captures and promoting pushes only, for
// quiescence search.
func GenerateCaptures(pos *chess.Position, moves []chess.Move) []chess.Move {
	g := generator{pos: pos, moves: moves}
	stm := pos.SideToMove
	files := pos.Files()
	for file := 0; file < files; file++ {
		for rank := 0; rank < chess.NumRanks; rank++ {
			sq := chess.MakeSquare(file, rank)
			if pos.Colours[sq] != stm {
				continue
			}
			if pos.Pieces[sq] == chess.Pawn {
				g.pawnPushes(sq, true)
				g.pawnCaptures(sq)
				continue
			}
			g.pieceMoves(sq, true)
		}
	}
	return g.moves
}

func (g *generator) castling() {
	pos := g.pos
	v := pos.Variant
	stm := pos.SideToMove
	opp := stm.Opposite()
	king := v.KingStart[stm]

	if pos.Pieces[king] != chess.King || pos.Colours[king] != stm {
		return
	}

	for _, side := range []int{chess.EastSide, chess.WestSide} {
		if pos.Castle&chess.CastleRight(stm, side) == 0 {
			continue
		}
		rook := v.RookStart[stm][side]
		if pos.Pieces[rook] != chess.Rook || pos.Colours[rook] != stm {
			continue
		}
		step := chess.East
		if side == chess.WestSide {
			step = chess.West
		}

		clear := true
		for t := king + step; t != rook && pos.OnBoard(t); t += step {
			if pos.Colours[t] != chess.NoColour {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}

		// The king may not start on, pass through or land on an attacked
		// square.
		steps := v.CastleSteps[side]
		t := king
		for n := 0; n <= steps.Max && pos.OnBoard(t); n++ {
			if n > 0 && pos.Pieces[t] != chess.Empty {
				break
			}
			if IsAttacked(pos, opp, t) {
				break
			}
			if n >= steps.Min {
				g.push(king, t, chess.King, chess.Empty, chess.FlagCastle)
			}
			t += step
		}
	}
}

func (g *generator) pieceMoves(sq chess.Square, capturesOnly bool) {
	pos := g.pos
	kind := pos.Pieces[sq]
	d := chess.Descriptors[kind]
	for dir, vec := range d.Vectors {
		for t := sq + vec; pos.OnBoard(t); t += vec {
			if pos.Pieces[t] == chess.Empty {
				if !capturesOnly {
					g.push(sq, t, kind, chess.Empty, chess.FlagNormal)
				}
			} else {
				if pos.Colours[t] != pos.SideToMove {
					g.push(sq, t, kind, pos.Pieces[t], chess.FlagCapture)
				}
				break
			}
			if dir >= d.Slides {
				break
			}
		}
	}
}

func (g *generator) pawnPushes(sq chess.Square, promotionsOnly bool) {
	pos := g.pos
	stm := pos.SideToMove
	if promotionsOnly && sq.Rank() != chess.PromotionRank(stm)-int(chess.PawnForward(stm)) {
		return
	}
	fwd := chess.PawnForward(stm)
	one := sq + fwd
	if pos.Pieces[one] != chess.Empty {
		return
	}
	g.push(sq, one, chess.Pawn, chess.Empty, chess.FlagNormal)
	if sq.Rank() == chess.PawnStartRank(stm) && pos.Pieces[one+fwd] == chess.Empty {
		g.push(sq, one+fwd, chess.Pawn, chess.Empty, chess.FlagDoublePush)
	}
}

func (g *generator) pawnCaptures(sq chess.Square) {
	pos := g.pos
	opp := pos.SideToMove.Opposite()
	for _, d := range chess.PawnCaptures(pos.SideToMove) {
		t := sq + d
		if !pos.OnBoard(t) {
			continue
		}
		if (pos.EP != chess.NoSquare && t == pos.EP) || pos.Colours[t] == opp {
			g.push(sq, t, chess.Pawn, pos.Pieces[t], chess.FlagCapture)
		}
	}
}

func (g *generator) push(from, to chess.Square, piece, captured chess.Piece, flags chess.MoveFlags) {
	pos := g.pos
	m := chess.Move{
		From:      from,
		To:        to,
		Piece:     piece,
		PieceTo:   piece,
		Captured:  captured,
		Flags:     flags,
		Castle:    pos.Castle,
		HalfMoves: pos.HalfMoves,
		EP:        pos.EP,
	}

	if g.history != nil {
		m.Score = g.history[pos.SideToMove][from][to]
	}

	// Captures: victim value plus attacker kind as a tie-break. Winning or
	// safe captures go ahead of quiet moves, the rest behind.
	if captured != chess.Empty {
		m.Score = pst.SortValue[captured] + int(piece)
		if Blind(pos, m) {
			m.Score += SortCapt
		}
	}

	if piece == chess.Pawn && pos.EP != chess.NoSquare && to == pos.EP {
		m.Score = SortCapt + pst.SortValue[chess.Pawn] + 5
		m.Flags = chess.FlagEPCapture
	}

	if piece == chess.Pawn && (to.Rank() == 0 || to.Rank() == chess.NumRanks-1) {
		m.Flags |= chess.FlagPromotion
		base := m.Score
		for _, p := range pos.Variant.Promotions {
			m.PieceTo = p
			m.Score = base + SortProm + pst.SortValue[p]
			g.moves = append(g.moves, m)
		}
		return
	}

	g.moves = append(g.moves, m)
}

// Blind reports whether a capture is safe to search early without a full
// exchange evaluation: pawn captures, captures of an equal or more
// valuable piece, and captures of an undefended piece.
func Blind(pos *chess.Position, m chess.Move) bool {
	if m.Piece == chess.Pawn {
		return true
	}
	if pst.SortValue[m.Captured] >= pst.SortValue[m.Piece]-50 {
		return true
	}

	c := pos.Colours[m.From]
	pos.RemovePiece(m.From)
	defended := IsAttacked(pos, c.Opposite(), m.To)
	pos.PlacePiece(c, m.Piece, m.From)
	return !defended
}

// PickNext moves the highest-scored move in moves[current:] to index
// current.
func PickNext(moves []chess.Move, current int) {
	best := current
	for i := current + 1; i < len(moves); i++ {
		if moves[i].Score > moves[best].Score {
			best = i
		}
	}
	moves[current], moves[best] = moves[best], moves[current]
}
