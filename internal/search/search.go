// Package search picks moves by iterative deepening alpha-beta.
//
// A Searcher owns the move ordering state (history and killer tables) and
// works on a position it does not own: the caller must not touch the
// position while Search runs. Stop, PonderHit and Stats are safe to call
// from other goroutines.
package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/mage-of-maple/CPW80-Engine/internal/cache"
	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/engine"
	"github.com/mage-of-maple/CPW80-Engine/internal/pst"
)

// Evaluator scores a position for the side to move.
type Evaluator interface {
	Evaluate(pos *chess.Position) int
}

const (
	aspiration = 50
	// pollMask sets how often, in nodes, the clock is consulted.
	pollMask = 1023
	// currMoveDelay holds back root move announcements on short searches.
	currMoveDelay = time.Second
)

// Searcher runs searches against one transposition table.
type Searcher struct {
	table *cache.Table
	eval  Evaluator
	log   zerolog.Logger

	history engine.HistoryTable
	killers [chess.MaxPly][2]chess.MoveID
	moves   [chess.MaxPly][]chess.Move

	limits   Limits
	budget   time.Duration
	myside   chess.Colour
	contempt int
	reporter Reporter

	abort     cancelToken
	pondering atomic.Bool
	started   atomic.Int64 // unix nanoseconds

	mu     sync.Mutex
	hit    chan struct{}
	cancel context.CancelFunc

	nodes  atomic.Uint64
	qnodes atomic.Uint64
	depth  atomic.Int32

	rootBest  chess.Move
	rootFound bool
}

// New returns a Searcher probing table and scoring leaves with eval.
func New(table *cache.Table, eval Evaluator, log zerolog.Logger) *Searcher {
	s := &Searcher{table: table, eval: eval, log: log}
	for i := range s.moves {
		s.moves[i] = make([]chess.Move, 0, chess.MaxMoves)
	}
	return s
}

// SetContempt sets how much the engine dislikes a draw while material is
// still on the board.
func (s *Searcher) SetContempt(cp int) {
	s.contempt = cp
}

// Clear forgets all ordering knowledge, for a new game.
func (s *Searcher) Clear() {
	clear(s.history[:])
	s.killers = [chess.MaxPly][2]chess.MoveID{}
}

// Stop aborts a running search. The search still returns its best move.
func (s *Searcher) Stop() {
	s.abort.Abort()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// PonderHit turns a ponder search into a normal timed search starting now.
func (s *Searcher) PonderHit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pondering.Load() {
		return
	}
	s.started.Store(time.Now().UnixNano())
	s.pondering.Store(false)
	if s.hit != nil {
		close(s.hit)
		s.hit = nil
	}
}

// Stats returns the counters of the running or latest search.
func (s *Searcher) Stats() Stats {
	return Stats{Nodes: s.nodes.Load(), QNodes: s.qnodes.Load(), Depth: int(s.depth.Load())}
}

func (s *Searcher) elapsed() time.Duration {
	return time.Since(time.Unix(0, s.started.Load()))
}

// Search looks for the best move in pos within limits and blocks until it
// is found. Cancelling ctx has the same effect as Stop. r may be nil.
func (s *Searcher) Search(ctx context.Context, pos *chess.Position, limits Limits, r Reporter) Result {
	return s.start(ctx, pos, limits, r)()
}

// Go starts a search in its own goroutine and delivers the result on the
// returned channel. The search is fully set up when Go returns, so Stop
// and PonderHit may be called right away.
func (s *Searcher) Go(ctx context.Context, pos *chess.Position, limits Limits, r Reporter) <-chan Result {
	run := s.start(ctx, pos, limits, r)
	out := make(chan Result, 1)
	go func() {
		out <- run()
	}()
	return out
}

func (s *Searcher) start(ctx context.Context, pos *chess.Position, limits Limits, r Reporter) func() Result {
	ctx, cancel := context.WithCancel(ctx)
	hit := make(chan struct{})

	s.limits = limits
	s.reporter = r
	s.myside = pos.SideToMove
	s.budget = limits.Budget(pos.SideToMove)
	s.abort.Reset()
	s.nodes.Store(0)
	s.qnodes.Store(0)
	s.depth.Store(0)
	s.started.Store(time.Now().UnixNano())
	s.killers = [chess.MaxPly][2]chess.MoveID{}
	s.ageHistory()

	s.mu.Lock()
	s.hit = hit
	s.cancel = cancel
	s.pondering.Store(limits.Ponder)
	s.mu.Unlock()

	return func() Result {
		stop := context.AfterFunc(ctx, s.abort.Abort)
		defer func() {
			stop()
			cancel()
		}()
		return s.iterate(ctx, pos, hit)
	}
}

func (s *Searcher) iterate(ctx context.Context, pos *chess.Position, hit <-chan struct{}) Result {
	var res Result
	alpha, beta := -chess.Infinity, chess.Infinity
	for depth := 1; depth <= s.limits.MaxDepth(); depth++ {
		s.depth.Store(int32(depth))
		s.rootFound = false

		val := s.root(pos, depth, alpha, beta)
		if !s.abort.IsAborted() && (val <= alpha || val >= beta) {
			alpha, beta = -chess.Infinity, chess.Infinity
			val = s.root(pos, depth, alpha, beta)
		}
		if s.rootFound {
			res.Best, res.HasMove = s.rootBest, true
		}
		if s.abort.IsAborted() {
			break
		}

		alpha, beta = val-aspiration, val+aspiration
		res.Score, res.Depth = val, depth
		res.PV = s.principalVariation(pos, res.Best, depth)
		s.report(res)

		if !res.HasMove || s.iterationsDone(val, depth) {
			break
		}
	}

	s.waitForRelease(ctx, hit)

	if !res.HasMove {
		if legal := engine.LegalMoves(pos); len(legal) > 0 {
			res.Best, res.HasMove = legal[0], true
		}
	}
	if len(res.PV) == 0 || res.PV[0].ID() != res.Best.ID() {
		res.PV = nil
		if res.HasMove {
			res.PV = []chess.Move{res.Best}
		}
	}
	if len(res.PV) > 1 {
		res.Ponder, res.HasPonder = res.PV[1], true
	}
	res.Nodes = s.nodes.Load()
	res.Elapsed = s.elapsed()

	s.log.Debug().
		Int("depth", res.Depth).
		Int("score", res.Score).
		Uint64("nodes", res.Nodes).
		Uint64("qnodes", s.qnodes.Load()).
		Dur("elapsed", res.Elapsed).
		Msg("search finished")
	return res
}

// iterationsDone decides at an iteration boundary whether another depth
// is worth starting.
func (s *Searcher) iterationsDone(val, depth int) bool {
	if s.pondering.Load() || s.limits.Flags&FlagInfinite != 0 {
		return false
	}
	if IsMateScore(val) {
		if s.limits.Flags&FlagMate != 0 && val > 0 && MateIn(val) <= s.limits.Mate {
			return true
		}
		// a mate inside the horizon cannot get any shorter
		if chess.Infinity-abs(val) <= depth {
			return true
		}
	}
	if s.limits.timed() && s.elapsed()*2 > s.budget {
		return true
	}
	return false
}

// waitForRelease holds a ponder or infinite search until the GUI releases
// it, since the best move must not be sent before that.
func (s *Searcher) waitForRelease(ctx context.Context, hit <-chan struct{}) {
	if s.abort.IsAborted() {
		return
	}
	if s.pondering.Load() {
		select {
		case <-ctx.Done():
			return
		case <-hit:
		}
	}
	if s.limits.Flags&FlagInfinite != 0 {
		<-ctx.Done()
	}
}

func (s *Searcher) report(res Result) {
	info := Info{
		Depth:   res.Depth,
		Score:   res.Score,
		Elapsed: s.elapsed(),
		Nodes:   s.nodes.Load(),
		PV:      res.PV,
	}
	s.log.Debug().
		Int("depth", info.Depth).
		Int("score", info.Score).
		Uint64("nodes", info.Nodes).
		Int("pv_len", len(info.PV)).
		Msg("iteration")
	if s.reporter != nil {
		s.reporter.Iteration(info)
	}
}

// poll aborts the search when a node or time budget runs out.
func (s *Searcher) poll() {
	n := s.nodes.Add(1)
	if n&pollMask != 0 {
		return
	}
	if s.limits.Flags&FlagNodes != 0 && n >= s.limits.Nodes {
		s.abort.Abort()
		return
	}
	if s.pondering.Load() || !s.limits.timed() {
		return
	}
	if s.elapsed() >= s.budget {
		s.abort.Abort()
	}
}

func (s *Searcher) root(pos *chess.Position, depth, alpha, beta int) int {
	hint := s.table.Move(pos.Hash)
	if s.rootFound {
		hint = s.rootBest.ID()
	}
	moves := engine.Generate(pos, s.moves[0][:0], hint, &s.history)
	inCheck := engine.InCheck(pos, pos.SideToMove)

	legal := 0
	var best chess.MoveID
	bound := cache.BoundUpper
	for i := range moves {
		engine.PickNext(moves, i)
		m := moves[i]

		engine.MakeMove(pos, m)
		if engine.LeftInCheck(pos) {
			engine.UnmakeMove(pos, m)
			continue
		}
		legal++
		if s.reporter != nil && s.elapsed() > currMoveDelay {
			s.reporter.CurrentMove(depth, m, legal)
		}

		var v int
		if legal == 1 {
			v = -s.negamax(pos, depth-1, 1, -beta, -alpha, true, true)
		} else {
			v = -s.negamax(pos, depth-1, 1, -alpha-1, -alpha, true, false)
			if v > alpha && !s.abort.IsAborted() {
				v = -s.negamax(pos, depth-1, 1, -beta, -alpha, true, true)
			}
		}
		engine.UnmakeMove(pos, m)

		if s.abort.IsAborted() {
			break
		}
		if v > alpha {
			s.rootBest, s.rootFound = m, true
			best = m.ID()
			if v >= beta {
				s.table.Store(pos.Hash, depth, 0, beta, cache.BoundLower, best)
				return beta
			}
			alpha = v
			bound = cache.BoundExact
		}
	}

	if legal == 0 {
		if inCheck {
			return -chess.Infinity
		}
		return s.drawScore(pos)
	}
	if !s.abort.IsAborted() {
		s.table.Store(pos.Hash, depth, 0, alpha, bound, best)
	}
	return alpha
}

func (s *Searcher) negamax(pos *chess.Position, depth, ply, alpha, beta int, canNull, isPV bool) int {
	if s.abort.IsAborted() {
		return 0
	}
	s.poll()

	if engine.IsRepeated(pos) || engine.IsFiftyMove(pos) || engine.IsInsufficientMaterial(pos) {
		return s.drawScore(pos)
	}
	if ply >= chess.MaxPly-1 {
		return s.eval.Evaluate(pos)
	}

	inCheck := engine.InCheck(pos, pos.SideToMove)
	if inCheck {
		depth++
	}
	if depth <= 0 {
		return s.quiesce(pos, ply, alpha, beta)
	}

	// mate distance pruning
	alpha = max(alpha, -chess.Infinity+ply)
	beta = min(beta, chess.Infinity-ply-1)
	if alpha >= beta {
		return alpha
	}

	v, hint, ok := s.table.Probe(pos.Hash, depth, ply, alpha, beta)
	if ok && (!isPV || (v > alpha && v < beta)) {
		return v
	}

	if s.nullAllowed(pos, depth, canNull, isPV, inCheck) && s.eval.Evaluate(pos) >= beta {
		reduction := 2
		if depth > 6 {
			reduction = 3
		}
		null := engine.MakeNull(pos)
		v := -s.negamax(pos, depth-reduction-1, ply+1, -beta, -beta+1, false, false)
		engine.UnmakeNull(pos, null)
		if s.abort.IsAborted() {
			return 0
		}
		if v >= beta {
			return beta
		}
	}

	moves := engine.Generate(pos, s.moves[ply][:0], hint, &s.history)
	s.scoreKillers(moves, ply)

	legal := 0
	raised := false
	var best chess.MoveID
	for i := range moves {
		engine.PickNext(moves, i)
		m := moves[i]

		engine.MakeMove(pos, m)
		if engine.LeftInCheck(pos) {
			engine.UnmakeMove(pos, m)
			continue
		}
		legal++

		reduction := 0
		if !isPV && !inCheck && depth > 3 && legal > 3 &&
			!m.IsCapture() && !m.IsPromotion() && m.Score < engine.SortKill &&
			!engine.InCheck(pos, pos.SideToMove) {
			reduction = 1
		}

		var v int
		if legal == 1 {
			v = -s.negamax(pos, depth-1, ply+1, -beta, -alpha, true, isPV)
		} else {
			v = -s.negamax(pos, depth-1-reduction, ply+1, -alpha-1, -alpha, true, false)
			if v > alpha && reduction > 0 && !s.abort.IsAborted() {
				v = -s.negamax(pos, depth-1, ply+1, -alpha-1, -alpha, true, false)
			}
			if v > alpha && v < beta && isPV && !s.abort.IsAborted() {
				v = -s.negamax(pos, depth-1, ply+1, -beta, -alpha, true, true)
			}
		}
		engine.UnmakeMove(pos, m)

		if s.abort.IsAborted() {
			return 0
		}
		if v > alpha {
			best = m.ID()
			if v >= beta {
				if !m.IsCapture() {
					s.rewardQuiet(pos.SideToMove, m, ply, depth)
				}
				s.table.Store(pos.Hash, depth, ply, beta, cache.BoundLower, best)
				return beta
			}
			alpha = v
			raised = true
		}
	}

	if legal == 0 {
		if inCheck {
			return -chess.Infinity + ply
		}
		return s.drawScore(pos)
	}

	bound := cache.BoundUpper
	if raised {
		bound = cache.BoundExact
	}
	s.table.Store(pos.Hash, depth, ply, alpha, bound, best)
	return alpha
}

func (s *Searcher) nullAllowed(pos *chess.Position, depth int, canNull, isPV, inCheck bool) bool {
	return canNull && !isPV && !inCheck && depth > 2 &&
		pos.PieceMaterial[pos.SideToMove] > pst.EndgameMat
}

// drawScore is zero adjusted by contempt: while material remains the
// engine's side treats a draw as slightly bad.
func (s *Searcher) drawScore(pos *chess.Position) int {
	if s.contempt == 0 || pos.PieceMaterial[pos.SideToMove] <= pst.EndgameMat {
		return 0
	}
	if pos.SideToMove == s.myside {
		return -s.contempt
	}
	return s.contempt
}

func abs(x int) int { return engine.Abs(x) }
