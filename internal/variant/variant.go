// Package variant is the registry of playable rulesets.
//
// Each constructor returns a fresh, fully initialised *chess.Variant;
// nothing here mutates shared state, so selecting a variant is just a
// lookup.
package variant

import (
	"sort"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/errors"
)

// Default is the variant an engine starts with.
const Default = "capablanca"

// XBoardList is the comma-separated list announced in the XBoard feature
// line, in the order GUIs expect.
const XBoardList = "capablanca,gothic,moderncarrera,bird,carrera,embassy,schoolbook,grotesque,ladorean,univers,opti,victorian,garamond,baskerville,helvetica,janus,newchancellor"

var allPromotions = []chess.Piece{chess.Queen, chess.Chancellor, chess.Archbishop, chess.Rook, chess.Bishop, chess.Knight}

type castling int

const (
	standardCastling castling = iota
	flexibleCastling
	longCastling
	closeRookCastling
)

type definition struct {
	fen        string
	archbishop byte
	chancellor byte
	castling   castling
	promotions []chess.Piece
	setup      []string
}

var definitions = map[string]definition{
	"capablanca": {
		fen: "rnabqkbcnr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNABQKBCNR w KQkq - 0 1",
	},
	"gothic": {
		fen: "rnbqckabnr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNBQCKABNR w KQkq - 0 1",
	},
	"moderncarrera": {
		fen: "ranbqkbncr/pppppppppp/10/10/10/10/PPPPPPPPPP/RANBQKBNCR w KQkq - 0 1",
		setup: []string{
			"setup (PNBRQ..ACKpnbrq..aCk) 10x8+0_capablanca ranbqkbncr/pppppppppp/10/10/10/10/PPPPPPPPPP/RANBQKBNCR w KQkq - 0 1",
		},
	},
	"bird": {
		fen:        "rnbgqkebnr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNBGQKEBNR w KQkq - 0 1",
		archbishop: 'e',
		chancellor: 'g',
		setup: []string{
			"setup (PNBRQ..E=AG=CKpnbrq..e=ag=ck) 10x8+0_capablanca rnbgqkebnr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNBGQKEBNR w KQkq - 0 1",
		},
	},
	"carrera": {
		fen: "rcnbkqbnar/pppppppppp/10/10/10/10/PPPPPPPPPP/RCNBKQBNAR w - - 0 1",
		setup: []string{
			"setup (PNBRQ..ACKpnbrq..ack) 10x8+0_capablanca rcnbkqbnar/pppppppppp/10/10/10/10/PPPPPPPPPP/RCNBKQBNAR w - - 0 1",
		},
	},
	"embassy": {
		fen:        "rnbqkmcbnr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNBQKMCBNR w AJaj - 0 1",
		archbishop: 'c',
		chancellor: 'm',
		setup: []string{
			"setup (PNBRQ..CMKpnbrq..cmk) 10x8+0_fairy rnbqkmcbnr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNBQKMCBNR w AJaj - 0 1",
			"piece K& KisO3",
		},
	},
	"schoolbook": {
		fen:      "rqnbakbncr/pppppppppp/10/10/10/10/PPPPPPPPPP/RQNBAKBNCR w KQkq - 0 1",
		castling: flexibleCastling,
		setup: []string{
			"setup (PNBRQ..AC=MKpnbrq..ac=mk) 10x8+0_fairy rqnbakbnmr/pppppppppp/10/10/10/10/PPPPPPPPPP/RQNBAKBNMR w KQkq - 0 1",
			"piece K KisO2isO3ilO4",
			"piece k KisO2isO3irO4",
		},
	},
	"grotesque": {
		fen:        "rbqnkgnebr/pppppppppp/10/10/10/10/PPPPPPPPPP/RBQNKGNEBR w AJaj - 0 1",
		archbishop: 'e',
		chancellor: 'g',
		castling:   flexibleCastling,
		setup: []string{
			"setup (PNBRQ..E=AG=CKpnbrq..e=ag=ck) 10x8+0_fairy rbqnkgnebr/pppppppppp/10/10/10/10/PPPPPPPPPP/RBQNKGNEBR w AJaj - 0 1",
			"piece K KisO2isO3irO4",
			"piece k KisO2isO3ilO4",
		},
	},
	"ladorean": {
		fen:        "rbqnkcnmbr/pppppppppp/10/10/10/10/PPPPPPPPPP/RBQNKCNMBR w AJaj - 0 1",
		archbishop: 'c',
		chancellor: 'm',
		castling:   flexibleCastling,
		setup: []string{
			"setup (PNBRQ..CMKpnbrq..cmk) 10x8+0_fairy rbqnkcnmbr/pppppppppp/10/10/10/10/PPPPPPPPPP/RBQNKCNMBR w AJaj - 0 1",
			"piece K KisO2isO3irO4",
			"piece k KisO2isO3ilO4",
		},
	},
	"univers": {
		fen:        "rbnmqkanbr/pppppppppp/10/10/10/10/PPPPPPPPPP/RBNMQKANBR w KQkq - 0 1",
		chancellor: 'm',
		castling:   flexibleCastling,
		setup: []string{
			"setup (PNBRQ..AM=CKpnbrq..am=ck) 10x8+0_fairy rbnmqkanbr/pppppppppp/10/10/10/10/PPPPPPPPPP/RBNMQKANBR w KQkq - 0 1",
			"piece K KisO2isO3ilO4",
			"piece k KisO2isO3irO4",
		},
	},
	"opti": {
		fen:      "nrcbqkbarn/pppppppppp/10/10/10/10/PPPPPPPPPP/NRCBQKBARN w BIbi - 0 1",
		castling: closeRookCastling,
		setup: []string{
			"setup (PNBRQ..ACKpnbrq..ack) 10x8+0_fairy nrcbqkbarn/pppppppppp/10/10/10/10/PPPPPPPPPP/NRCBQKBARN w BIbi - 0 1",
			"piece K& KisjO2",
		},
	},
	"victorian": {
		fen:        "crnbakbnrq/pppppppppp/10/10/10/10/PPPPPPPPPP/CRNBAKBNRQ w BIbi - 0 1",
		castling:   closeRookCastling,
		promotions: allPromotions[:3],
		setup: []string{
			"setup (PNBRQ..ACKpnbrq..ack) 10x8+0_fairy crnbakbnrq/pppppppppp/10/10/10/10/PPPPPPPPPP/CRNBAKBNRQ w BIbi - 0 1",
			"piece K& KisjO2",
			"choice QCA",
		},
	},
	"janus": {
		fen:        "rjnbkqbnjr/pppppppppp/10/10/10/10/PPPPPPPPPP/RJNBKQBNJR w AJaj - 0 1",
		archbishop: 'j',
		castling:   longCastling,
		promotions: []chess.Piece{chess.Queen, chess.Archbishop, chess.Rook, chess.Bishop, chess.Knight},
	},
	"newchancellor": {
		fen:        "crnbqkbnrc/pppppppppp/10/10/10/10/PPPPPPPPPP/CRNBQKBNRC w BIbi - 0 1",
		castling:   closeRookCastling,
		promotions: []chess.Piece{chess.Queen, chess.Chancellor, chess.Rook, chess.Bishop, chess.Knight},
		setup: []string{
			"setup (PNBRQ...CKpnbrq...ck) 10x8+0_fairy crnbqkbnrc/pppppppppp/10/10/10/10/PPPPPPPPPP/CRNBQKBNRC w BIbi - 0 1",
			"piece K& KisjO2",
		},
	},
	"garamond": {
		fen:      "rbnaqkcnbr/pppppppppp/10/10/10/10/PPPPPPPPPP/RBNAQKCNBR w KQkq - 0 1",
		castling: flexibleCastling,
		setup: []string{
			"setup (PNBRQ..ACKpnbrq..ack) 10x8+0_fairy rbnaqkcnbr/pppppppppp/10/10/10/10/PPPPPPPPPP/RBNAQKCNBR w KQkq - 0 1",
			"piece K KisO2isO3ilO4",
			"piece k KisO2isO3irO4",
		},
	},
	"baskerville": {
		fen:      "rannckbbqr/pppppppppp/10/10/10/10/PPPPPPPPPP/RANNCKBBQR w KQkq - 0 1",
		castling: flexibleCastling,
		setup: []string{
			"setup (PNBRQ..ACKpnbrq..ack) 10x8+0_fairy rannckbbqr/pppppppppp/10/10/10/10/PPPPPPPPPP/RANNCKBBQR w KQkq - 0 1",
			"piece K KisO2isO3ilO4",
			"piece k KisO2isO3irO4",
		},
	},
	"helvetica": {
		fen:      "rnqbckbanr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNQBCKBANR w KQkq - 0 1",
		castling: flexibleCastling,
		setup: []string{
			"setup (PNBRQ..ACKpnbrq..ack) 10x8+0_fairy rnqbckbanr/pppppppppp/10/10/10/10/PPPPPPPPPP/RNQBCKBANR w KQkq - 0 1",
			"piece K KisO2isO3ilO4",
			"piece k KisO2isO3irO4",
		},
	},
}

// ByName returns a freshly built variant. Unknown names yield
// errors.ErrUnknownVariant.
func ByName(name string) (*chess.Variant, error) {
	if name == Normal {
		return newNormal(), nil
	}
	d, ok := definitions[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownVariant, "variant %q", name)
	}
	return build(name, d), nil
}

// MustByName is ByName for names known at compile time.
func MustByName(name string) *chess.Variant {
	v, err := ByName(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Names returns every registered variant name, sorted.
func Names() []string {
	names := make([]string, 0, len(definitions)+1)
	for name := range definitions {
		names = append(names, name)
	}
	names = append(names, Normal)
	sort.Strings(names)
	return names
}

func build(name string, d definition) *chess.Variant {
	v := &chess.Variant{
		Name:             name,
		StartFEN:         d.fen,
		Files:            10,
		ArchbishopLetter: 'a',
		ChancellorLetter: 'c',
		Promotions:       allPromotions,
		Setup:            d.setup,
	}
	if d.archbishop != 0 {
		v.ArchbishopLetter = d.archbishop
	}
	if d.chancellor != 0 {
		v.ChancellorLetter = d.chancellor
	}
	if d.promotions != nil {
		v.Promotions = d.promotions
	}
	v.Promotions = append([]chess.Piece(nil), v.Promotions...)

	// A king on the e-file is the "mirrored" layout.
	mirror := d.fen[4] == 'k'
	standard(v, mirror)
	switch d.castling {
	case flexibleCastling:
		v.CastleSteps[chess.WestSide] = chess.StepRange{Min: 2, Max: pick(mirror, 3, 4)}
		v.CastleSteps[chess.EastSide] = chess.StepRange{Min: 2, Max: pick(mirror, 4, 3)}
	case longCastling:
		w, e := pick(mirror, 3, 4), pick(mirror, 4, 3)
		v.CastleSteps[chess.WestSide] = chess.StepRange{Min: w, Max: w}
		v.CastleSteps[chess.EastSide] = chess.StepRange{Min: e, Max: e}
	case closeRookCastling:
		for c := chess.White; c <= chess.Black; c++ {
			r := chess.BackRank(c)
			v.RookStart[c] = [2]chess.Square{chess.MakeSquare(1, r), chess.MakeSquare(8, r)}
		}
		v.CastleSteps = [2]chess.StepRange{{Min: 2, Max: 2}, {Min: 2, Max: 2}}
		v.CastleLetters = [2][2]byte{{'B', 'I'}, {'b', 'i'}}
	}
	v.ComputeCastleMask()
	return v
}

// standard sets king/rook homes on the corner files with three-step
// castling on both sides.
func standard(v *chess.Variant, mirror bool) {
	kingFile := 5
	v.CastleLetters = [2][2]byte{{'Q', 'K'}, {'q', 'k'}}
	if mirror {
		kingFile = 4
		v.CastleLetters = [2][2]byte{{'A', 'J'}, {'a', 'j'}}
	}
	for c := chess.White; c <= chess.Black; c++ {
		r := chess.BackRank(c)
		v.KingStart[c] = chess.MakeSquare(kingFile, r)
		v.RookStart[c] = [2]chess.Square{chess.MakeSquare(0, r), chess.MakeSquare(v.Files-1, r)}
	}
	v.CastleSteps = [2]chess.StepRange{{Min: 3, Max: 3}, {Min: 3, Max: 3}}
}

func pick(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}
