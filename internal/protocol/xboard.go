package protocol

import (
	"strings"
	"time"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/search"
	"github.com/mage-of-maple/CPW80-Engine/internal/variant"
)

const (
	engineClock   = 0
	opponentClock = 1
)

func (a *Adapter) xboard(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]

	switch cmd {
	case "xboard":
	case "protover":
		if v, ok := intArg(line, 1); ok && v >= 2 {
			a.sendFeatures()
		}
	case "variant":
		a.selectVariant(line)
	case "memory":
		if mb, ok := intArg(line, 1); ok {
			a.s.SetMemory(mb)
		}
	case "new":
		a.s.NewGame()
		a.s.ResetLimits()
		a.force = false
		a.gameOver = false
	case "force":
		a.force = true
	case "ping":
		a.out.println("pong" + strings.TrimPrefix(line, "ping"))
	case "st":
		if secs, ok := intArg(line, 1); ok {
			a.s.Limits = search.Limits{Flags: search.FlagMoveTime, MoveTime: time.Duration(secs) * time.Second}
		}
	case "sd":
		if depth, ok := intArg(line, 1); ok {
			a.s.Limits = search.FixedDepth(depth)
		}
	case "time":
		if cs, ok := intArg(line, 1); ok {
			a.clock[engineClock] = cs
			a.s.Limits = search.Limits{Flags: search.FlagTime}
		}
	case "otim":
		if cs, ok := intArg(line, 1); ok {
			a.clock[opponentClock] = cs
			a.s.Limits = search.Limits{Flags: search.FlagTime}
		}
	case "go":
		a.force = false
		a.gameOver = false
		a.xboardGo()
	case "white", "black", "hint", "undo", "remove", "post", "nopost",
		"easy", "hard", "computer", "accepted", "rejected", "random", "level", "name", "rating":
	case "quit":
		return true
	case "result":
		a.gameOver = true
	default:
		if !a.isMove(cmd) {
			a.log.Debug().Str("line", line).Msg("xboard command ignored")
			return false
		}
		if a.gameOver {
			return false
		}
		if _, err := a.s.PlayText(cmd); err != nil {
			a.out.println("Illegal move: " + cmd)
			return false
		}
		if !a.force {
			a.xboardGo()
		}
	}
	return false
}

func (a *Adapter) sendFeatures() {
	a.out.println("feature draw=0 ping=1 analyze=0 reuse=0 sigint=0 sigterm=0 memory=1")
	a.out.println(`feature myname="CPW-80 ` + Version + `"`)
	a.out.println(`feature variants="` + variant.XBoardList + `"`)
	a.out.println("feature done=1")
}

// selectVariant handles "variant <name>" in XBoard and console mode.
func (a *Adapter) selectVariant(line string) {
	name := strings.TrimSpace(strings.TrimPrefix(line, "variant"))
	if err := a.s.SetVariant(name); err != nil {
		a.out.printf("Error (%v): %s", err, line)
		return
	}
	if a.mode == XBoard {
		for _, l := range a.s.Variant().Setup {
			a.out.println(l)
		}
	}
}

// xboardGo thinks for the side to move. A pending "time" command turns the
// clocks into a time budget.
func (a *Adapter) xboardGo() {
	limits := a.s.Limits
	if limits.Flags&search.FlagTime != 0 {
		side := a.s.Pos.SideToMove
		limits.Time[side] = centis(a.clock[engineClock])
		limits.Time[side.Opposite()] = centis(a.clock[opponentClock])
	}
	a.s.Think(limits, xboardReporter{a}, a.sendMove)
}

func centis(cs int) time.Duration {
	return time.Duration(cs) * 10 * time.Millisecond
}

// xboardReporter prints thinking output: ply, score, time in centiseconds,
// nodes and the principal variation.
type xboardReporter struct{ a *Adapter }

func (r xboardReporter) Iteration(info search.Info) {
	r.a.out.printf("%d %d %d %d %s", info.Depth, info.Score,
		info.Elapsed.Milliseconds()/10, info.Nodes, formatPV(r.a.s.Variant(), info.PV))
}

func (xboardReporter) CurrentMove(int, chess.Move, int) {}
