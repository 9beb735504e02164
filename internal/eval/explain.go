package eval

import (
	"fmt"
	"io"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
)

const rule = "------------------------------------------"

// Explain writes a per-term breakdown of the evaluation of pos.
func (e *Evaluator) Explain(w io.Writer, pos *chess.Position) {
	t := e.Breakdown(pos)
	white, black := chess.White, chess.Black

	factor := func(label string, v [chess.NumColours]int) {
		fmt.Fprintf(w, "%-23s: white %4d, black %4d, total: %4d\n", label, v[white], v[black], v[white]-v[black])
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total value (for side to move): %d\n", t.Total)
	fmt.Fprintf(w, "%-23s: %d\n", "Material balance", t.Material[white]-t.Material[black])
	factor("Material adjustment", t.Adjustment)
	factor("Mg Piece/square tables", t.MidPST)
	factor("Eg Piece/square tables", t.EndPST)
	factor("Mg Mobility", t.MidMobility)
	factor("Eg Mobility", t.EndMobility)
	factor("Mg Tropism", t.MidTropism)
	factor("Eg Tropism", t.EndTropism)
	fmt.Fprintf(w, "%-23s: %d\n", "Pawn structure", PawnStructure(pos))
	factor("Blockages", t.Blockages)
	factor("Positional themes", t.Themes)
	factor("King Shield", t.KingShield)
	fmt.Fprintf(w, "%-23s: %d\n", "Tempo", t.Tempo)
	fmt.Fprintln(w, rule)
}
