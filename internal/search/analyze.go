package search

import (
	"context"

	"github.com/Mgrdich/chesscore/internal/boardstate"
	"github.com/Mgrdich/chesscore/internal/eval"
	"github.com/Mgrdich/chesscore/internal/piece"
)

// pieceValue looks up a cheap material value for move ordering and
// futility/delta pruning, sharing eval.MaterialPrice rather than keeping a
// second hand-copied table that could drift out of sync with it.
func pieceValue(sq piece.Square) int32 {
	if sq.IsEmpty() {
		return 0
	}
	return eval.MaterialPrice[sq.GetKind()]
}

// materialEvalCutoff mirrors original_source/src/lib/searcher.rs's
// MATERIAL_EVAL_CUTOFF: below this much non-king material for the
// searching side, a repeated position scores as a flat draw rather than
// contempt, since there is too little material left to meaningfully prefer
// avoiding the draw.
const materialEvalCutoff int32 = 1300

// materialForSide sums eval.MaterialPrice over every non-king piece of
// color p still on the board.
func materialForSide(s *boardstate.State, p piece.Parity) int32 {
	var total int32
	for i := 0; i < 64; i++ {
		occ := s.Board.PieceAt(boardstate.Sq(i))
		if occ.IsPiece() && occ.GetParity() == p && !occ.IsKing() {
			total += eval.MaterialPrice[occ.GetKind()]
		}
	}
	return total
}

// positionRepeated reports whether s's position has already occurred,
// either earlier in this very search (its own make/unmake stack) or earlier
// in the game before the search began (se.repeatedPositions, supplied by the
// caller via Run).
func (se *Searcher) positionRepeated(s *boardstate.State) bool {
	if s.RepetitionCount() >= 3 {
		return true
	}
	if se.repeatedPositions == nil {
		return false
	}
	_, ok := se.repeatedPositions[s.Info.ZKey]
	return ok
}

// analyze is the interior-node negamax/PVS search. alpha and beta are
// always expressed relative to the side to move. ply counts plies from the
// root, used for mate-distance pruning and for scoring mates by distance.
func (se *Searcher) analyze(ctx context.Context, s *boardstate.State, depth int, alpha, beta int32, ply int) int32 {
	se.nodes++
	se.positionsSeen++

	if ctx.Err() != nil {
		return 0
	}

	if s.Info.HalfmoveClock >= 100 {
		return 0
	}

	if se.positionRepeated(s) {
		// Too little non-king material left for the side the search runs
		// for to have a meaningful preference about the draw: score it as a
		// flat draw, not contempt.
		if materialForSide(s, se.rootParity) < materialEvalCutoff {
			return 0
		}
		if s.Turn == se.rootParity {
			return se.Config.ContemptValue
		}
		return -se.Config.ContemptValue
	}

	// Mate-distance pruning: a mate found deeper than ply can't possibly
	// beat a shorter mate already proven available.
	mateAlpha := -MateValue + int32(ply)
	mateBeta := MateValue - int32(ply)
	if mateAlpha > alpha {
		alpha = mateAlpha
	}
	if mateBeta < beta {
		beta = mateBeta
	}
	if alpha >= beta {
		return alpha
	}

	inCheck := s.InCheck()
	if depth <= 0 {
		if !inCheck {
			return se.quiesce(ctx, s, alpha, beta, ply)
		}
		depth = 1 // check extension: never evaluate a check statically
	}

	if entry, ok := se.Cache.Get(s.Info.ZKey); ok && entry.Eval != nil {
		se.cacheSaves++
	}

	// Evaluate is always White-relative; negamax needs it relative to the
	// side to move, same as quiesce below.
	staticEval := int32(se.Eval.Evaluate(s))
	if s.Turn != piece.White {
		staticEval = -staticEval
	}

	// Static-null / futility pruning: if we're already far enough above
	// beta (or, deeper in the tree, close enough) that no quiet move could
	// plausibly recover, stop looking.
	if !inCheck && depth <= 3 {
		margin := int32(depth) * 150
		if staticEval-margin >= beta {
			return beta
		}
	}

	// Null-move pruning: give the opponent a free move and see if we're
	// still winning by enough to justify skipping a real search. Disabled
	// in check, at shallow depth, or when material is scarce enough that
	// zugzwang becomes likely.
	if !inCheck && depth >= 3 && hasNonPawnMaterial(s) {
		reduction := se.Config.NullMoveReduction
		if reduction <= 0 {
			reduction = 3
		}
		if depth > 6 {
			reduction = 4
		}
		_ = s.Make(boardstate.NullMotion)
		score := -se.analyze(ctx, s, depth-1-reduction, -beta, -beta+1, ply+1)
		_ = s.Unmake()
		if score >= beta {
			return beta
		}
	}

	moves := s.Moves.Moves(s.Turn)
	if len(moves) == 0 {
		if inCheck {
			return -MateValue + int32(ply)
		}
		return 0 // stalemate
	}

	ordered := se.orderMoves(s, moves)
	best := -MateValue - 1
	first := true
	movesSearched := 0

	for _, m := range ordered {
		if ctx.Err() != nil {
			return best
		}
		capture := !s.Board.PieceAt(m.To).IsEmpty()

		if err := s.Make(m); err != nil {
			continue
		}
		movesSearched++

		givesCheck := s.InCheck()
		var score int32
		switch {
		case first:
			score = -se.analyze(ctx, s, depth-1, -beta, -alpha, ply+1)
		default:
			reduction := 0
			if depth >= 3 && movesSearched > 3 && !capture && !givesCheck && !inCheck {
				reduction = 1
				if movesSearched > 8 {
					reduction = 2
				}
			}
			score = -se.analyze(ctx, s, depth-1-reduction, -alpha-1, -alpha, ply+1)
			if score > alpha && (score < beta || reduction > 0) {
				score = -se.analyze(ctx, s, depth-1, -beta, -alpha, ply+1)
			}
		}
		_ = s.Unmake()

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
		first = false
	}

	entry, _ := se.Cache.Get(s.Info.ZKey)
	entry.Info = s.Info
	se.Cache.Put(s.Info.ZKey, entry)
	return best
}

// quiesce extends the search along capture lines only,
// so the static evaluator is never asked to judge a position in the middle
// of a tactical exchange.
func (se *Searcher) quiesce(ctx context.Context, s *boardstate.State, alpha, beta int32, ply int) int32 {
	se.nodes++
	if ctx.Err() != nil {
		return 0
	}

	// Evaluate is always White-relative; negamax needs it relative to the
	// side to move.
	standPat := int32(se.Eval.Evaluate(s))
	relative := standPat
	if s.Turn != piece.White {
		relative = -standPat
	}

	if relative >= beta {
		return beta
	}
	const deltaMargin = 1000
	if relative+deltaMargin < alpha {
		return alpha
	}
	if relative > alpha {
		alpha = relative
	}

	moves := s.Moves.Moves(s.Turn)
	for _, m := range moves {
		target := s.Board.PieceAt(m.To)
		if target.IsEmpty() {
			continue // quiescence only follows captures (and, implicitly, promotions that capture)
		}
		// Skip captures that lose material outright (a bad trade is never
		// worth extending into).
		attacker := s.Board.PieceAt(m.From)
		if pieceValue(target) < pieceValue(attacker)-50 {
			continue
		}

		if err := s.Make(m); err != nil {
			continue
		}
		score := -se.quiesce(ctx, s, -beta, -alpha, ply+1)
		_ = s.Unmake()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func hasNonPawnMaterial(s *boardstate.State) bool {
	for i := 0; i < 64; i++ {
		occ := s.Board.PieceAt(boardstate.Sq(i))
		if occ.IsPiece() && occ.GetParity() == s.Turn && !occ.IsPawn() && !occ.IsKing() {
			return true
		}
	}
	return false
}
