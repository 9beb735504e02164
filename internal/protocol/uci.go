package protocol

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/config"
	"github.com/mage-of-maple/CPW80-Engine/internal/engine"
	"github.com/mage-of-maple/CPW80-Engine/internal/search"
	"github.com/mage-of-maple/CPW80-Engine/internal/variant"
)

func (a *Adapter) uci(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]

	// Commands that are answered while a search runs.
	switch cmd {
	case "isready":
		a.out.println("readyok")
		return false
	case "stop":
		a.s.Stop()
		return false
	case "ponderhit":
		a.s.PonderHit()
		return false
	case "debug":
		a.uciDebug = len(fields) < 2 || fields[1] != "off"
		return false
	case "quit":
		a.s.Stop()
		return true
	}

	a.s.Stop()
	switch cmd {
	case "uci":
		a.out.println("id name CPW-80 Engine " + Version)
		a.out.println("id author Computer Chess Wiki and Greg Strong")
		a.out.printf("option name Hash type spin default %d min %d max %d",
			a.s.Config().Engine.HashMB, config.MinHashMB, config.MaxHashMB)
		a.out.println("option name Ponder type check default true")
		a.out.println("option name UCI_Variant type combo default " + variant.Default + " var " +
			strings.Join(variant.Names(), " var "))
		a.out.println("uciok")
	case "setoption":
		a.setOption(line)
	case "ucinewgame":
		a.s.NewGame()
	case "position":
		a.position(fields[1:])
	case "go":
		a.uciGo(fields[1:])
	default:
		a.log.Debug().Str("line", line).Msg("uci command ignored")
	}
	return false
}

// setOption handles "setoption name <id> [value <x>]".
func (a *Adapter) setOption(line string) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "setoption"))
	rest = strings.TrimPrefix(rest, "name ")
	name, value, _ := strings.Cut(rest, " value ")
	name, value = strings.TrimSpace(name), strings.TrimSpace(value)

	switch strings.ToLower(name) {
	case "hash":
		if mb, err := strconv.Atoi(value); err == nil {
			a.s.SetHash(min(max(mb, config.MinHashMB), config.MaxHashMB))
		}
	case "ponder":
		a.s.Ponder = value == "true"
	case "uci_variant":
		if err := a.s.SetVariant(value); err != nil {
			a.log.Warn().Err(err).Msg("variant rejected")
		}
	default:
		a.log.Debug().Str("option", name).Msg("unknown option")
	}
}

// position handles "position [startpos | fen <fen>] [moves <m1> ...]".
// A bad position string or move leaves the old position in place.
func (a *Adapter) position(args []string) {
	var fen []string
	var moves []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "startpos":
		case "fen":
			for i+1 < len(args) && args[i+1] != "moves" {
				i++
				fen = append(fen, args[i])
			}
		case "moves":
			moves = args[i+1:]
			i = len(args)
		}
	}
	if err := a.s.SetPosition(strings.Join(fen, " "), moves); err != nil {
		a.log.Warn().Err(err).Strs("args", args).Msg("position rejected")
		if a.uciDebug {
			a.out.printf("info string %v", err)
		}
	}
}

// parseGo reads the arguments of "go" into search limits. Unknown tokens
// and bad numbers are skipped.
func parseGo(args []string, side chess.Colour) search.Limits {
	var l search.Limits
	next := func(i *int) (int, bool) {
		if *i+1 >= len(args) {
			return 0, false
		}
		*i++
		v, err := strconv.Atoi(args[*i])
		return v, err == nil
	}
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "wtime":
			if v, ok := next(&i); ok {
				l.Time[chess.White] = ms(v)
				l.Flags |= search.FlagTime
			}
		case "btime":
			if v, ok := next(&i); ok {
				l.Time[chess.Black] = ms(v)
				l.Flags |= search.FlagTime
			}
		case "winc":
			if v, ok := next(&i); ok {
				l.Inc[chess.White] = ms(v)
				l.Flags |= search.FlagInc
			}
		case "binc":
			if v, ok := next(&i); ok {
				l.Inc[chess.Black] = ms(v)
				l.Flags |= search.FlagInc
			}
		case "movestogo":
			if v, ok := next(&i); ok {
				l.MovesToGo = v
				l.Flags |= search.FlagMovesToGo
			}
		case "depth":
			if v, ok := next(&i); ok {
				l.Depth = v
				l.Flags |= search.FlagDepth
			}
		case "nodes":
			if v, ok := next(&i); ok && v > 0 {
				l.Nodes = uint64(v)
				l.Flags |= search.FlagNodes
			}
		case "mate":
			if v, ok := next(&i); ok {
				l.Mate = v
				l.Flags |= search.FlagMate
			}
		case "movetime":
			if v, ok := next(&i); ok {
				l.MoveTime = ms(v)
				l.Flags |= search.FlagMoveTime
			}
		case "infinite":
			l.Flags |= search.FlagInfinite
		case "ponder":
			l.Ponder = true
		}
	}
	if l.Flags == 0 {
		ponder := l.Ponder
		l = search.DefaultLimits()
		l.Ponder = ponder
	}
	// a clock without our own time left in it means nothing
	if l.Flags&search.FlagTime != 0 && l.Time[side] <= 0 {
		l.Flags &^= search.FlagTime
		if l.Flags&^(search.FlagInc|search.FlagMovesToGo) == 0 {
			l.Flags |= search.FlagMoveTime
			l.MoveTime = search.DefaultMoveTime
		}
	}
	return l
}

func (a *Adapter) uciGo(args []string) {
	limits := parseGo(args, a.s.Pos.SideToMove)
	a.s.Think(limits, uciReporter{a}, a.sendMove)
}

// uciReporter sends "info" lines.
type uciReporter struct{ a *Adapter }

func (r uciReporter) Iteration(info search.Info) {
	r.a.out.printf("info depth %d score %s time %d nodes %d nps %d pv %s",
		info.Depth, uciScore(info.Score), info.Elapsed.Milliseconds(), info.Nodes,
		info.NPS(), formatPV(r.a.s.Variant(), info.PV))
}

func (r uciReporter) CurrentMove(depth int, m chess.Move, number int) {
	r.a.out.printf("info depth %d currmove %s currmovenumber %d",
		depth, engine.FormatMove(r.a.s.Variant(), m), number)
}

func uciScore(score int) string {
	if search.IsMateScore(score) {
		return fmt.Sprintf("mate %d", search.MateIn(score))
	}
	return fmt.Sprintf("cp %d", score)
}
