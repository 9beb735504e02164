package search

import (
	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/engine"
)

// quiesce searches captures only, standing pat on the static evaluation.
func (s *Searcher) quiesce(pos *chess.Position, ply, alpha, beta int) int {
	if s.abort.IsAborted() {
		return 0
	}
	s.poll()
	s.qnodes.Add(1)

	stand := s.eval.Evaluate(pos)
	if ply >= chess.MaxPly-1 {
		return stand
	}
	if stand >= beta {
		return beta
	}
	if stand > alpha {
		alpha = stand
	}

	moves := engine.GenerateCaptures(pos, s.moves[ply][:0])
	for i := range moves {
		engine.PickNext(moves, i)
		m := moves[i]
		if badCapture(m) {
			continue
		}

		engine.MakeMove(pos, m)
		if engine.LeftInCheck(pos) {
			engine.UnmakeMove(pos, m)
			continue
		}
		v := -s.quiesce(pos, ply+1, -beta, -alpha)
		engine.UnmakeMove(pos, m)

		if s.abort.IsAborted() {
			return 0
		}
		if v > alpha {
			if v >= beta {
				return beta
			}
			alpha = v
		}
	}
	return alpha
}

// badCapture reports a capture the generator scored below the winning
// capture band, meaning it failed the Blind test. Promotions are always
// searched.
func badCapture(m chess.Move) bool {
	return m.IsCapture() && !m.IsPromotion() && m.Score < engine.SortCapt
}
