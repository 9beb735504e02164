package chess

import (
	"fmt"
	"io"
	"strings"

	"github.com/mage-of-maple/CPW80-Engine/internal/pst"
	"github.com/mage-of-maple/CPW80-Engine/internal/zobrist"
)

// Position is the mutable board. Everything except the square arrays is
// derived data that PlacePiece and RemovePiece keep in step; mutate squares
// only through those two methods.
type Position struct {
	Pieces  [NumSquares]Piece
	Colours [NumSquares]Colour

	SideToMove Colour
	Castle     CastleRights
	EP         Square
	HalfMoves  int

	Hash     uint64
	PawnHash uint64

	KingSquare    [NumColours]Square
	PSTMid        [NumColours]int
	PSTEnd        [NumColours]int
	PieceMaterial [NumColours]int
	PawnMaterial  [NumColours]int
	Count         [NumColours][NumPieceKinds]int
	PawnsOnFile   [NumColours][MaxFiles]int
	PawnsOnRank   [NumColours][NumRanks]int
	// PawnControl counts the pawns of each colour attacking a square.
	PawnControl [NumColours][NumSquares]int

	// History holds the hash of every position since the last irreversible
	// game move; the last entry is the current position.
	History []uint64

	Variant *Variant
	keys    *zobrist.Keys
}

// NewPosition returns an empty position for variant v.
func NewPosition(v *Variant) *Position {
	p := &Position{Variant: v, keys: zobrist.Default()}
	p.Clear()
	return p
}

// Keys returns the Zobrist table the position hashes with.
func (p *Position) Keys() *zobrist.Keys {
	return p.keys
}

// Clear empties the board and resets every derived field.
func (p *Position) Clear() {
	v, keys, history := p.Variant, p.keys, p.History[:0]
	*p = Position{Variant: v, keys: keys, History: history}
	for sq := range p.Pieces {
		p.Pieces[sq] = Empty
		p.Colours[sq] = NoColour
	}
}

// OnBoard reports whether sq is a real square for this position's variant.
func (p *Position) OnBoard(sq Square) bool {
	return sq >= 0 && sq < NumSquares && sq&0x08 == 0 && int(sq)>>4 < p.Variant.Files
}

// Files returns the board width.
func (p *Position) Files() int {
	return p.Variant.Files
}

// PlacePiece puts a piece on an empty square and updates all derived state.
func (p *Position) PlacePiece(c Colour, kind Piece, sq Square) {
	p.Pieces[sq] = kind
	p.Colours[sq] = c
	p.update(c, kind, sq, 1)
	if kind == King {
		p.KingSquare[c] = sq
	}
}

// RemovePiece empties an occupied square. It is the exact inverse of
// PlacePiece.
func (p *Position) RemovePiece(sq Square) {
	c, kind := p.Colours[sq], p.Pieces[sq]
	p.update(c, kind, sq, -1)
	p.Pieces[sq] = Empty
	p.Colours[sq] = NoColour
}

func (p *Position) update(c Colour, kind Piece, sq Square, sign int) {
	key := p.keys.PieceSquare[kind][c][sq]
	p.Hash ^= key

	p.PSTMid[c] += sign * pst.Mid(int(kind), int(c), int(sq))
	p.PSTEnd[c] += sign * pst.End(int(kind), int(c), int(sq))
	p.Count[c][kind] += sign

	if kind != Pawn {
		p.PieceMaterial[c] += sign * pst.PieceValue[kind]
		return
	}

	p.PawnMaterial[c] += sign * pst.PieceValue[Pawn]
	p.PawnHash ^= key
	p.PawnsOnFile[c][sq.File()] += sign
	p.PawnsOnRank[c][sq.Rank()] += sign
	for _, d := range PawnCaptures(c) {
		if t := sq + d; p.OnBoard(t) {
			p.PawnControl[c][t] += sign
		}
	}
}

// ComputeHash recomputes the full and pawn-only hashes from scratch.
func (p *Position) ComputeHash() (hash, pawnHash uint64) {
	for sq := Square(0); sq < NumSquares; sq++ {
		if !p.OnBoard(sq) || p.Pieces[sq] == Empty {
			continue
		}
		key := p.keys.PieceSquare[p.Pieces[sq]][p.Colours[sq]][sq]
		hash ^= key
		if p.Pieces[sq] == Pawn {
			pawnHash ^= key
		}
	}
	if p.SideToMove == Black {
		hash ^= p.keys.Colour
	}
	hash ^= p.keys.Castling[p.Castle]
	hash ^= p.keys.EnPassant[p.EP]
	return hash, pawnHash
}

// ResetHistory drops the repetition history, keeping only the current hash.
func (p *Position) ResetHistory() {
	p.History = append(p.History[:0], p.Hash)
}

// Material returns the total material for colour c.
func (p *Position) Material(c Colour) int {
	return p.PieceMaterial[c] + p.PawnMaterial[c]
}

// Copy returns a deep copy of p that shares only the immutable variant and
// key table.
func (p *Position) Copy() *Position {
	q := *p
	q.History = append([]uint64(nil), p.History...)
	return &q
}

// Display writes a text diagram of the board.
func (p *Position) Display(w io.Writer) {
	files := p.Files()
	sep := "   " + strings.Repeat("+---", files) + "+"
	for rank := NumRanks - 1; rank >= 0; rank-- {
		fmt.Fprintln(w, sep)
		fmt.Fprintf(w, " %d ", rank+1)
		for file := 0; file < files; file++ {
			sq := MakeSquare(file, rank)
			ch := byte(' ')
			if p.Pieces[sq] != Empty {
				ch = p.Variant.Letter(p.Pieces[sq])
				if p.Colours[sq] == White {
					ch -= 'a' - 'A'
				}
			}
			fmt.Fprintf(w, "| %c ", ch)
		}
		fmt.Fprintln(w, "|")
	}
	fmt.Fprintln(w, sep)
	fmt.Fprint(w, "   ")
	for file := 0; file < files; file++ {
		fmt.Fprintf(w, "  %c ", 'a'+file)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s to move, hash %016x\n", p.SideToMove, p.Hash)
}
