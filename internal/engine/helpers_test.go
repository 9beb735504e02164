package engine

import (
	"testing"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/variant"
)

// mustPosition loads fen for the named variant. An empty fen means the
// variant's start position.
func mustPosition(t testing.TB, name, fen string) *chess.Position {
	t.Helper()
	v, err := variant.ByName(name)
	if err != nil {
		t.Fatalf("variant %q: %v", name, err)
	}
	if fen == "" {
		fen = v.StartFEN
	}
	pos := chess.NewPosition(v)
	if err := LoadFEN(pos, fen); err != nil {
		t.Fatalf("LoadFEN(%q): %v", fen, err)
	}
	return pos
}

// mustPlay parses and plays game moves, failing the test on the first
// rejected one.
func mustPlay(t testing.TB, pos *chess.Position, moves ...string) {
	t.Helper()
	for _, text := range moves {
		m, err := ParseMove(pos, text)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", text, err)
		}
		PlayMove(pos, m)
	}
}

// snapshot is every observable field of a position, in a form cmp can
// compare.
type snapshot struct {
	Pieces        [chess.NumSquares]chess.Piece
	Colours       [chess.NumSquares]chess.Colour
	SideToMove    chess.Colour
	Castle        chess.CastleRights
	EP            chess.Square
	HalfMoves     int
	Hash          uint64
	PawnHash      uint64
	KingSquare    [2]chess.Square
	PSTMid        [2]int
	PSTEnd        [2]int
	PieceMaterial [2]int
	PawnMaterial  [2]int
	Count         [2][chess.NumPieceKinds]int
	PawnsOnFile   [2][chess.MaxFiles]int
	PawnsOnRank   [2][chess.NumRanks]int
	PawnControl   [2][chess.NumSquares]int
	History       []uint64
}

func takeSnapshot(pos *chess.Position) snapshot {
	return snapshot{
		Pieces:        pos.Pieces,
		Colours:       pos.Colours,
		SideToMove:    pos.SideToMove,
		Castle:        pos.Castle,
		EP:            pos.EP,
		HalfMoves:     pos.HalfMoves,
		Hash:          pos.Hash,
		PawnHash:      pos.PawnHash,
		KingSquare:    pos.KingSquare,
		PSTMid:        pos.PSTMid,
		PSTEnd:        pos.PSTEnd,
		PieceMaterial: pos.PieceMaterial,
		PawnMaterial:  pos.PawnMaterial,
		Count:         pos.Count,
		PawnsOnFile:   pos.PawnsOnFile,
		PawnsOnRank:   pos.PawnsOnRank,
		PawnControl:   pos.PawnControl,
		History:       append([]uint64(nil), pos.History...),
	}
}

func moveTexts(pos *chess.Position, moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = FormatMove(pos.Variant, m)
	}
	return out
}

func containsMove(texts []string, want string) bool {
	for _, s := range texts {
		if s == want {
			return true
		}
	}
	return false
}
