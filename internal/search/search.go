// Package search implements the move search: iterative deepening with an
// aspiration window, principal-variation search, null-move pruning, late
// move reductions, futility pruning, and quiescence search, grounded on
// _examples/Mgrdich-TermChess/internal/bot/minimax.go for the Go control
// flow (context-based cancellation, iterative deepening, negamax) and on
// original_source/src/searcher.rs and spec.md §4.8 for the algorithm body.
package search

import (
	"context"
	"time"

	"github.com/Mgrdich/chesscore/internal/boardstate"
	"github.com/Mgrdich/chesscore/internal/config"
	"github.com/Mgrdich/chesscore/internal/eval"
	"github.com/Mgrdich/chesscore/internal/heap"
	"github.com/Mgrdich/chesscore/internal/piece"
)

// MateValue is the score assigned to a position where the side to move is
// checkmated, before mate-distance adjustment. Any score within
// MaxPlies of ±MateValue is treated as a forced mate.
const MateValue int32 = 1 << 20

// MaxPlies bounds both the iterative-deepening ladder and mate-distance
// pruning.
const MaxPlies = 100

// Progress is delivered to a caller-supplied callback after every
// completed iterative-deepening depth, for UIs that want to show search
// progress (spec.md §5).
type Progress struct {
	Depth         int
	Score         int32
	Best          boardstate.Motion
	Nodes         int
	CacheSaves    int
	PositionsSeen int
}

// Searcher runs move search against a boardstate.State.
type Searcher struct {
	Config config.SearchConfig
	Eval   *eval.Evaluator
	Cache  *boardstate.TranspositionCache

	OnProgress func(Progress)

	nodes         int
	cacheSaves    int
	positionsSeen int

	// repeatedPositions and rootParity back the repetition/contempt check in
	// analyze: repeatedPositions is the caller-supplied set of zkeys already
	// reached earlier in the game (outside this search's own make/unmake
	// stack), and rootParity is whose search this is, both consulted exactly
	// as original_source/src/lib/searcher.rs's echo/driver.parity are.
	repeatedPositions map[uint64]struct{}
	rootParity        piece.Parity
}

// New builds a Searcher.
func New(cfg config.SearchConfig, ev *eval.Evaluator, cache *boardstate.TranspositionCache) *Searcher {
	return &Searcher{Config: cfg, Eval: ev, Cache: cache}
}

// Run searches s under a wall-clock budget (config.TimeBudgetMillis) and
// returns the best move found by the deepest completed iteration. Passing
// a ctx already carrying a deadline tighter than the configured budget is
// honored — Run never searches past whichever deadline fires first.
//
// alreadySeen is the set of position zkeys that occurred earlier in the
// game, before s (e.g. the game's move history up to but not including s).
// analyze consults it, alongside positions repeated within this search's own
// make/unmake stack, to detect a draw by repetition a caller-local view
// could never see. A nil map is treated as empty.
func (se *Searcher) Run(ctx context.Context, s *boardstate.State, alreadySeen map[uint64]struct{}) Progress {
	budget := time.Duration(se.Config.TimeBudgetMillis) * time.Millisecond
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	legal := s.Moves.Moves(s.Turn)
	if len(legal) == 0 {
		return Progress{Best: boardstate.NullMotion}
	}
	if len(legal) == 1 {
		return Progress{Best: legal[0], Depth: 0}
	}

	se.nodes, se.cacheSaves, se.positionsSeen = 0, 0, 0
	se.repeatedPositions = alreadySeen
	se.rootParity = s.Turn
	maxDepth := se.Config.MaxDepth
	if maxDepth <= 0 || maxDepth > MaxPlies {
		maxDepth = MaxPlies
	}

	best := legal[0]
	var bestScore int32
	window := se.Config.AspirationWindow
	if window <= 0 {
		window = 50
	}

	for depth := 1; depth <= maxDepth; depth++ {
		select {
		case <-ctx.Done():
			return se.progress(depth-1, bestScore, best)
		default:
		}

		alpha, beta := bestScore-window, bestScore+window
		if depth == 1 {
			alpha, beta = -MateValue, MateValue
		}

		move, score, ok := se.sroot(ctx, s, depth, alpha, beta)
		if !ok {
			return se.progress(depth-1, bestScore, best)
		}

		// Aspiration failed outside the window: widen and re-search once.
		if score <= alpha || score >= beta {
			move, score, ok = se.sroot(ctx, s, depth, -MateValue, MateValue)
			if !ok {
				return se.progress(depth-1, bestScore, best)
			}
		}

		best, bestScore = move, score
		if se.OnProgress != nil {
			se.OnProgress(se.progress(depth, bestScore, best))
		}
		if bestScore >= MateValue-int32(MaxPlies) {
			break
		}
	}

	return se.progress(maxDepth, bestScore, best)
}

func (se *Searcher) progress(depth int, score int32, best boardstate.Motion) Progress {
	return Progress{
		Depth:         depth,
		Score:         score,
		Best:          best,
		Nodes:         se.nodes,
		CacheSaves:    se.cacheSaves,
		PositionsSeen: se.positionsSeen,
	}
}

// sroot searches every legal root move at depth, ordering candidates with
// a max-heap keyed on a cheap static heuristic, and returns the best move
// and score found, or ok=false if the search was cancelled before
// completing this depth.
func (se *Searcher) sroot(ctx context.Context, s *boardstate.State, depth int, alpha, beta int32) (boardstate.Motion, int32, bool) {
	moves := s.Moves.Moves(s.Turn)
	ordered := se.orderMoves(s, moves)

	best := ordered[0]
	bestScore := -MateValue - 1
	first := true

	for _, m := range ordered {
		select {
		case <-ctx.Done():
			return best, bestScore, false
		default:
		}

		if err := s.Make(m); err != nil {
			continue
		}
		var score int32
		if first {
			score = -se.analyze(ctx, s, depth-1, -beta, -alpha, 1)
		} else {
			score = -se.analyze(ctx, s, depth-1, -alpha-1, -alpha, 1)
			if score > alpha && score < beta {
				score = -se.analyze(ctx, s, depth-1, -beta, -alpha, 1)
			}
		}
		_ = s.Unmake()

		if ctx.Err() != nil {
			return best, bestScore, false
		}

		if score > bestScore {
			bestScore, best = score, m
		}
		if score > alpha {
			alpha = score
		}
		first = false
	}

	return best, bestScore, true
}

// orderMoves ranks candidate moves with a heap keyed on a cheap heuristic
// (MVV-ish: prefer capturing the most valuable victim with the least
// valuable attacker), giving PVS and alpha-beta pruning their best chance
// of an early cutoff.
func (se *Searcher) orderMoves(s *boardstate.State, moves []boardstate.Motion) []boardstate.Motion {
	h := heap.New(len(moves))
	for _, m := range moves {
		h.Push(heap.Entry{Evaluation: moveHeuristic(s, m), Motion: m})
	}
	return h.ToSortedMotions()
}

func moveHeuristic(s *boardstate.State, m boardstate.Motion) int32 {
	victim := s.Board.PieceAt(m.To)
	attacker := s.Board.PieceAt(m.From)
	if victim.IsEmpty() {
		return 0
	}
	return pieceValue(victim) - pieceValue(attacker)/10
}
