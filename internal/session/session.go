// Package session bundles everything one engine instance owns: the game
// position and its variant, the three caches, the evaluator and the
// searcher. Protocol adapters drive a Session from a single goroutine;
// searches run on a private copy of the position in their own goroutine.
package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mage-of-maple/CPW80-Engine/internal/cache"
	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/config"
	"github.com/mage-of-maple/CPW80-Engine/internal/engine"
	"github.com/mage-of-maple/CPW80-Engine/internal/errors"
	"github.com/mage-of-maple/CPW80-Engine/internal/eval"
	"github.com/mage-of-maple/CPW80-Engine/internal/search"
	"github.com/mage-of-maple/CPW80-Engine/internal/variant"
)

// Session is one engine instance. It is not safe for concurrent use apart
// from the search goroutine it starts itself.
type Session struct {
	Pos      *chess.Position
	Caches   *cache.Caches
	Eval     *eval.Evaluator
	Searcher *search.Searcher

	// Limits govern searches started by XBoard and console commands.
	Limits search.Limits
	// Ponder is the GUI's pondering preference.
	Ponder bool

	cfg     *config.Config
	log     zerolog.Logger
	ctx     context.Context
	running *thinking
}

type thinking struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a session from cfg, set up at the start position of the
// configured variant. Searches inherit ctx.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	caches := cache.New(log)
	caches.SetHash(cfg.Engine.HashMB)
	ev := eval.FromCaches(caches)

	s := &Session{
		Caches:   caches,
		Eval:     ev,
		Searcher: search.New(caches.Search, ev, log),
		Ponder:   cfg.Engine.Ponder,
		cfg:      cfg,
		log:      log,
		ctx:      ctx,
	}
	s.Searcher.SetContempt(cfg.Search.Contempt)
	s.ResetLimits()
	if err := s.SetVariant(cfg.Engine.Variant); err != nil {
		return nil, err
	}
	return s, nil
}

// Config returns the settings the session was built from.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// Variant returns the ruleset of the current game.
func (s *Session) Variant() *chess.Variant {
	return s.Pos.Variant
}

// ResetLimits restores the configured thinking time and depth.
func (s *Session) ResetLimits() {
	s.Limits = search.DefaultLimits()
	s.Limits.MoveTime = s.cfg.Search.MoveTime
	if s.cfg.Search.MaxDepth < chess.MaxDepth {
		s.Limits.Flags |= search.FlagDepth
		s.Limits.Depth = s.cfg.Search.MaxDepth
	}
}

// SetVariant switches to the named variant and sets up its start position.
func (s *Session) SetVariant(name string) error {
	v, err := variant.ByName(name)
	if err != nil {
		return err
	}
	pos := chess.NewPosition(v)
	if err := engine.LoadFEN(pos, v.StartFEN); err != nil {
		return errors.Wrapf(err, "start position of %s", name)
	}
	s.Pos = pos
	s.log.Debug().Str("variant", name).Msg("variant selected")
	return nil
}

// NewGame returns to the start position and forgets everything learned in
// the previous game.
func (s *Session) NewGame() {
	s.Stop()
	pos := chess.NewPosition(s.Pos.Variant)
	if err := engine.LoadFEN(pos, s.Pos.Variant.StartFEN); err != nil {
		s.log.Error().Err(err).Str("variant", s.Pos.Variant.Name).Msg("bad start position")
		return
	}
	s.Pos = pos
	s.Caches.Clear()
	s.Searcher.Clear()
}

// LoadFEN replaces the position. On error the old position is kept.
func (s *Session) LoadFEN(fen string) error {
	pos := chess.NewPosition(s.Pos.Variant)
	if err := engine.LoadFEN(pos, fen); err != nil {
		return err
	}
	s.Pos = pos
	return nil
}

// SetPosition loads fen, or the start position when fen is empty, and plays
// moves on it. Nothing changes unless every move is legal.
func (s *Session) SetPosition(fen string, moves []string) error {
	if fen == "" {
		fen = s.Pos.Variant.StartFEN
	}
	pos := chess.NewPosition(s.Pos.Variant)
	if err := engine.LoadFEN(pos, fen); err != nil {
		return err
	}
	if err := engine.ApplyMoves(pos, moves); err != nil {
		return err
	}
	s.Pos = pos
	return nil
}

// PlayText parses a coordinate move and plays it if legal.
func (s *Session) PlayText(text string) (chess.Move, error) {
	m, err := engine.ParseMove(s.Pos, text)
	if err != nil {
		return chess.Move{}, err
	}
	engine.PlayMove(s.Pos, m)
	return m, nil
}

// Play makes a move already known to be legal.
func (s *Session) Play(m chess.Move) {
	engine.PlayMove(s.Pos, m)
}

// SetHash resizes the caches for a UCI Hash option.
func (s *Session) SetHash(megabytes int) {
	s.Caches.SetHash(megabytes)
}

// SetMemory resizes the caches for an XBoard memory command.
func (s *Session) SetMemory(megabytes int) {
	s.Caches.SetMemory(megabytes)
}

// Think starts a search of the current position and returns at once.
// finish runs on the search goroutine with the result; Wait and Stop do not
// return before it has.
func (s *Session) Think(limits search.Limits, r search.Reporter, finish func(search.Result)) {
	s.Wait()
	ctx, cancel := context.WithCancel(s.ctx)
	results := s.Searcher.Go(ctx, s.Pos.Copy(), limits, r)

	t := &thinking{cancel: cancel, done: make(chan struct{})}
	s.running = t
	go func() {
		defer close(t.done)
		defer cancel()
		res := <-results
		if finish != nil {
			finish(res)
		}
	}()
}

// Search runs a search to completion on the calling goroutine.
func (s *Session) Search(limits search.Limits, r search.Reporter) search.Result {
	s.Wait()
	return s.Searcher.Search(s.ctx, s.Pos.Copy(), limits, r)
}

// Thinking reports whether a search started by Think has not finished yet.
func (s *Session) Thinking() bool {
	if s.running == nil {
		return false
	}
	select {
	case <-s.running.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the running search, if any, has finished.
func (s *Session) Wait() {
	if s.running == nil {
		return
	}
	<-s.running.done
	s.running = nil
}

// Stop ends the running search early and waits for it.
func (s *Session) Stop() {
	if s.running == nil {
		return
	}
	s.Searcher.Stop()
	s.running.cancel()
	s.Wait()
}

// PonderHit switches a ponder search to normal timing.
func (s *Session) PonderHit() {
	s.Searcher.PonderHit()
}

// Bench searches the current position to depth and reports its counters.
// Elapsed time is floored at one second.
func (s *Session) Bench(depth int) (nodes uint64, elapsed time.Duration) {
	start := time.Now()
	res := s.Search(search.FixedDepth(depth), nil)
	elapsed = max(time.Since(start), time.Second)
	return res.Nodes, elapsed
}

// Evaluate is the static score of the current position for the side to
// move.
func (s *Session) Evaluate() int {
	return s.Eval.Evaluate(s.Pos)
}
