package search

import (
	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/engine"
)

// scoreKillers lifts the two killer moves of ply just below the captures
// that are expected to win material.
func (s *Searcher) scoreKillers(moves []chess.Move, ply int) {
	k := s.killers[ply]
	for i := range moves {
		if moves[i].Score >= engine.SortKill {
			continue
		}
		switch moves[i].ID() {
		case k[0]:
			moves[i].Score = engine.SortKill
		case k[1]:
			moves[i].Score = engine.SortKill - 1
		}
	}
}

// rewardQuiet records a quiet move that caused a cutoff.
func (s *Searcher) rewardQuiet(side chess.Colour, m chess.Move, ply, depth int) {
	id := m.ID()
	if k := &s.killers[ply]; k[0] != id {
		k[1] = k[0]
		k[0] = id
	}

	h := &s.history[side][m.From][m.To]
	*h += depth * depth
	// History must stay below the killer band.
	if *h > engine.SortKill {
		s.scaleHistory(2)
	}
}

// ageHistory makes history from earlier searches count for less.
func (s *Searcher) ageHistory() {
	s.scaleHistory(8)
}

func (s *Searcher) scaleHistory(div int) {
	for c := range s.history {
		for from := range s.history[c] {
			row := &s.history[c][from]
			for to := range row {
				row[to] /= div
			}
		}
	}
}
