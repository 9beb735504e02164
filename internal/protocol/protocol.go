// Package protocol translates the line protocols a GUI speaks (UCI and
// XBoard) plus a small console command set into calls on a session.
//
// An Adapter starts in console mode and switches for good when it sees
// "uci" or "xboard". Searches run in the background so that "stop" and
// "ponderhit" can be read while the engine thinks; every other command waits
// for the search to end first.
package protocol

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/engine"
	"github.com/mage-of-maple/CPW80-Engine/internal/search"
	"github.com/mage-of-maple/CPW80-Engine/internal/session"
)

// Version is announced to GUIs.
const Version = "1.2"

// Mode is the protocol an Adapter speaks.
type Mode int

const (
	Console Mode = iota
	XBoard
	UCI
)

func (m Mode) String() string {
	switch m {
	case XBoard:
		return "xboard"
	case UCI:
		return "uci"
	default:
		return "console"
	}
}

// Adapter reads protocol lines and drives one session.
type Adapter struct {
	s    *session.Session
	out  *lineWriter
	log  zerolog.Logger
	mode Mode

	// xboard state
	force    bool
	gameOver bool
	clock    [2]int // engine, opponent; centiseconds

	uciDebug bool
}

// New returns an adapter in console mode writing to w.
func New(s *session.Session, w io.Writer, log zerolog.Logger) *Adapter {
	return &Adapter{s: s, out: &lineWriter{w: w}, log: log}
}

// Mode returns the protocol currently spoken.
func (a *Adapter) Mode() Mode {
	return a.mode
}

// Welcome prints the console banner.
func (a *Adapter) Welcome() {
	a.out.println(" CPW-80 chess engine " + Version)
	a.out.println("")
	a.out.println(" CPW created by some members of Chessprogramming Wiki ")
	a.out.println(" modified to 80-square variant XBoard engine by Greg Strong")
	a.out.println("")
	a.out.println(" type 'help' for a list of commands ")
	a.out.println("")
}

// Run feeds lines from r to Handle until "quit", the end of input or the
// cancellation of ctx. A search still running at that point is stopped.
func (a *Adapter) Run(ctx context.Context, r io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 4096), 1<<16)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- sc.Err()
	}()

	defer a.s.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-errs
			}
			if quit := a.Handle(line); quit {
				return nil
			}
		}
	}
}

// Handle processes one input line and reports whether it asked to quit.
func (a *Adapter) Handle(line string) (quit bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return false
	}
	a.log.Debug().Str("mode", a.mode.String()).Str("line", line).Msg("input")

	switch a.mode {
	case UCI:
		return a.uci(line)
	case XBoard:
		a.s.Stop()
		return a.xboard(line)
	default:
		a.s.Stop()
		return a.console(line)
	}
}

// sendMove announces the engine's move. XBoard and console mode also play
// it on the board.
func (a *Adapter) sendMove(res search.Result) {
	v := a.s.Variant()
	switch a.mode {
	case UCI:
		if !res.HasMove {
			a.out.println("bestmove 0000")
			return
		}
		line := "bestmove " + engine.FormatMove(v, res.Best)
		if res.HasPonder && a.s.Ponder {
			line += " ponder " + engine.FormatMove(v, res.Ponder)
		}
		a.out.println(line)
	case XBoard:
		if !res.HasMove {
			a.announceResult()
			return
		}
		a.out.println("move " + engine.FormatMove(v, res.Best))
		a.s.Play(res.Best)
	default:
		if !res.HasMove {
			a.announceResult()
			return
		}
		a.out.println("CPW: " + engine.FormatMove(v, res.Best))
		a.s.Play(res.Best)
	}
}

// announceResult reports a game the side to move can no longer play on.
func (a *Adapter) announceResult() {
	pos := a.s.Pos
	switch {
	case engine.InCheck(pos, pos.SideToMove) && pos.SideToMove == chess.White:
		a.out.println("0-1 {Black mates}")
	case engine.InCheck(pos, pos.SideToMove):
		a.out.println("1-0 {White mates}")
	default:
		a.out.println("1/2-1/2 {Stalemate}")
	}
	a.gameOver = true
}

// isMove reports whether text looks like a coordinate move on the current
// board, with an optional promotion letter.
func (a *Adapter) isMove(text string) bool {
	if len(text) < 4 {
		return false
	}
	last := byte('a' + a.s.Pos.Files() - 1)
	file := func(b byte) bool { return b >= 'a' && b <= last }
	rank := func(b byte) bool { return b >= '1' && b <= '8' }
	if !file(text[0]) || !rank(text[1]) || !file(text[2]) || !rank(text[3]) {
		return false
	}
	if len(text) == 4 {
		return true
	}
	_, ok := a.s.Variant().PieceForLetter(text[4] | 0x20)
	return len(text) == 5 && ok
}

// intArg parses the n-th field of line. The zero value and false come back
// when it is missing or not a number.
func intArg(line string, n int) (int, bool) {
	fields := strings.Fields(line)
	if n >= len(fields) {
		return 0, false
	}
	v, err := strconv.Atoi(fields[n])
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatPV(v *chess.Variant, pv []chess.Move) string {
	parts := make([]string, len(pv))
	for i, m := range pv {
		parts[i] = engine.FormatMove(v, m)
	}
	return strings.Join(parts, " ")
}

// lineWriter serializes output from the dispatcher and the search
// goroutine so lines never interleave.
type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lineWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func (l *lineWriter) println(s string) {
	_, _ = l.Write([]byte(s + "\n"))
}

func (l *lineWriter) printf(format string, args ...any) {
	l.println(fmt.Sprintf(format, args...))
}
