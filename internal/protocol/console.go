package protocol

import (
	"strings"
	"time"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/engine"
	"github.com/mage-of-maple/CPW80-Engine/internal/search"
	"github.com/mage-of-maple/CPW80-Engine/internal/variant"
)

const dashes = "------------------------------------------ "

func (a *Adapter) console(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]

	switch {
	case cmd == "xboard":
		a.mode = XBoard
		a.force = false
		a.gameOver = false
	case cmd == "uci":
		a.mode = UCI
		a.uci(line)
	case cmd == "variant":
		a.selectVariant(line)
	case cmd == "perft":
		if depth, ok := intArg(line, 1); ok {
			a.perft(depth)
		}
	case cmd == "bench":
		if depth, ok := intArg(line, 1); ok {
			a.bench(depth)
		}
	case cmd == "eval":
		a.s.Eval.Explain(a.out, a.s.Pos)
	case cmd == "stat":
		a.printStats()
	case cmd == "d":
		a.s.Pos.Display(a.out)
	case cmd == "new":
		a.s.NewGame()
	case cmd == "pos":
		if err := a.s.LoadFEN(strings.TrimSpace(strings.TrimPrefix(line, "pos"))); err != nil {
			a.out.printf("Error (%v): %s", err, line)
		}
	case cmd == "go":
		a.consoleGo()
	case cmd == "quit":
		return true
	case cmd == "help":
		a.printHelp()
	case a.isMove(cmd):
		if _, err := a.s.PlayText(cmd); err != nil {
			a.log.Debug().Err(err).Str("move", cmd).Msg("move rejected")
			a.out.println("Sorry, this is not a legal move")
			return false
		}
		a.consoleGo()
	case cmd == "st":
		if secs, ok := intArg(line, 1); ok {
			a.s.Limits = search.Limits{Flags: search.FlagMoveTime, MoveTime: time.Duration(secs) * time.Second}
		}
	case cmd == "sd":
		if depth, ok := intArg(line, 1); ok {
			a.s.Limits = search.FixedDepth(depth)
		}
	default:
		a.out.println(line + " - UNKNOWN COMMAND (type 'help' for a list of commands)")
	}
	return false
}

func (a *Adapter) consoleGo() {
	a.out.println("-------------------------------------------------------")
	a.out.println("ply      nodes   time score pv")
	a.out.println("-------------------------------------------------------")
	a.s.Think(a.s.Limits, consoleReporter{a}, a.sendMove)
}

func (a *Adapter) perft(depth int) {
	start := time.Now()
	a.out.println("Performance Test")
	for d := 1; d <= depth; d++ {
		nodes := engine.PerftParallel(a.s.Pos, d)
		a.out.printf("%d:\t%d\t%d", d, time.Since(start).Milliseconds(), nodes)
	}
}

func (a *Adapter) bench(depth int) {
	nodes, elapsed := a.s.Bench(depth)
	rate := search.Info{Nodes: nodes, Elapsed: elapsed}.NPS()
	a.out.printf("Nodes:\t%d\nTime:\t%d ms\nNPS:\t%d", nodes, elapsed.Milliseconds(), rate)
}

func (a *Adapter) printStats() {
	st := a.s.Searcher.Stats()
	nodes := max(st.Nodes, 1)
	a.out.println("-----------------------------")
	a.out.printf("Nodes       : %d ", st.Nodes)
	a.out.printf("Quiesc nodes: %d ", st.QNodes)
	a.out.printf("Ratio       : %d %%", st.QNodes*100/nodes)
	a.out.println("-----------------------------")
}

func (a *Adapter) printHelp() {
	for _, l := range []string{
		dashes,
		"variant x =  variant to play (list below) ",
		"d         =  display current board position ",
		"bench n   =  test search speed to depth n ",
		"perft n   =  test perft numbers up to depth n ",
		"eval      =  display evaluation details ",
		"stat      =  display search statistics ",
		"go        =  play for the side to move ",
		"new       =  start a new game ",
		"sd n      =  set search depth to n plies ",
		"st n      =  set search time to n seconds ",
		"quit      =  exit CPW engine ",
		dashes,
		"variants: ",
	} {
		a.out.println(l)
	}
	names := variant.Names()
	for len(names) > 0 {
		n := min(6, len(names))
		a.out.println("    " + strings.Join(names[:n], ", "))
		names = names[n:]
	}
	for _, l := range []string{
		dashes,
		"",
		"Please enter moves in algebraic notation (e2e4 d7d5 e4d5 d8d5 ... b7b8q) ",
		"or better yet, use a GUI compliant with the XBoard/WinBoard protocol ",
		dashes,
	} {
		a.out.println(l)
	}
}

// consoleReporter prints one table row per iteration.
type consoleReporter struct{ a *Adapter }

func (r consoleReporter) Iteration(info search.Info) {
	r.a.out.printf("%3d %10d %6d %5d %s", info.Depth, info.Nodes,
		info.Elapsed.Milliseconds()/10, info.Score, formatPV(r.a.s.Variant(), info.PV))
}

func (consoleReporter) CurrentMove(int, chess.Move, int) {}
