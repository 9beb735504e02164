package search

import (
	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/engine"
)

// principalVariation starts with best and follows the best moves stored in
// the transposition table, stopping at a missing or illegal entry or a
// repeated position.
func (s *Searcher) principalVariation(pos *chess.Position, best chess.Move, depth int) []chess.Move {
	if best.From == best.To {
		return nil
	}
	p := pos.Copy()
	pv := []chess.Move{best}
	seen := map[uint64]bool{p.Hash: true}
	engine.MakeMove(p, best)

	for len(pv) < depth && !seen[p.Hash] {
		seen[p.Hash] = true
		m, ok := engine.FindByID(p, s.table.Move(p.Hash))
		if !ok {
			break
		}
		engine.MakeMove(p, m)
		pv = append(pv, m)
	}
	return pv
}
