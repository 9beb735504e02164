package engine

import (
	"runtime"
	"sort"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/worker"
)

// Perft counts the leaf nodes of the legal move tree below pos.
func Perft(pos *chess.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	var buf [chess.MaxMoves]chess.Move
	var nodes uint64
	for _, m := range Generate(pos, buf[:0], chess.NoMove, nil) {
		MakeMove(pos, m)
		if !LeftInCheck(pos) {
			nodes += Perft(pos, depth-1)
		}
		UnmakeMove(pos, m)
	}
	return nodes
}

// DivideEntry is the subtree count below one root move.
type DivideEntry struct {
	Move  string
	Nodes uint64
}

// Divide returns the perft count below every legal root move, sorted by
// move text. Subtrees are counted in parallel on private copies of pos.
func Divide(pos *chess.Position, depth int) []DivideEntry {
	moves := LegalMoves(pos)
	if depth <= 0 || len(moves) == 0 {
		return nil
	}

	pool := worker.NewPool(countSubtree,
		worker.WithWorkers(runtime.GOMAXPROCS(0)),
		worker.WithBufferSize(len(moves)))
	pool.Start()
	for i, m := range moves {
		pool.Submit(worker.WorkItem{Position: pos.Copy(), Move: m, Depth: depth - 1, Index: i})
	}
	go pool.Close()

	out := make([]DivideEntry, 0, len(moves))
	for r := range pool.Results() {
		out = append(out, DivideEntry{Move: FormatMove(pos.Variant, r.Move), Nodes: r.Nodes})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Move < out[j].Move })
	return out
}

// PerftParallel is Perft with the root moves spread over a worker pool.
func PerftParallel(pos *chess.Position, depth int) uint64 {
	if depth <= 1 {
		return Perft(pos, depth)
	}
	var total uint64
	for _, e := range Divide(pos, depth) {
		total += e.Nodes
	}
	return total
}

func countSubtree(item worker.WorkItem) worker.ProcessResult {
	MakeMove(item.Position, item.Move)
	nodes := Perft(item.Position, item.Depth)
	UnmakeMove(item.Position, item.Move)
	return worker.ProcessResult{Move: item.Move, Index: item.Index, Nodes: nodes}
}
