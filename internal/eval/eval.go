// Package eval implements the static position evaluator: a weighted sum of
// material, positional, and mobility/threat terms scored in centipawns
// from White's perspective, grounded on
// _examples/Mgrdich-TermChess/internal/bot/eval.go for Go structure and on
// original_source/src/eval.rs for every term and constant (spec.md §4.7).
package eval

import (
	"math/bits"

	"github.com/Mgrdich/chesscore/internal/bitboard"
	"github.com/Mgrdich/chesscore/internal/boardstate"
	"github.com/Mgrdich/chesscore/internal/piece"
)

// Evaluation is a centipawn score, always from White's point of view:
// positive favors White, negative favors Black.
type Evaluation int32

// NoKingSentinel is returned when a side's king is missing from the board
// (a malformed or test position) rather than evaluating further.
const NoKingSentinel Evaluation = -(1 << 30) + 1

// MaterialPrice holds centipawn prices indexed by piece.Kind (None, Rook,
// Pawn, Bishop, Queen, King, Knight = 0..6; None and King score 0).
// original_source/src/lib/eval.rs's MIDGAME_PRICE table, reordered onto
// piece.Kind's encoding. Exported so internal/search can share this single
// table for move ordering and futility pruning instead of keeping its own
// copy that could drift out of sync.
var MaterialPrice = [7]int32{0, 1276, 124, 825, 2538, 0, 781}

// BishopPairBonus is awarded to a side holding both bishops.
const BishopPairBonus int32 = 1438

// TempoBonus rewards the side to move.
const TempoBonus int32 = 28

// mobilityWeight is the per-reachable-square bonus, indexed by Kind.
var mobilityWeight = [7]int32{0, 3, 0, 4, 2, 0, 5}

// Pawn-structure terms.
const (
	doubledPawnPenalty  int32 = 11
	isolatedPawnPenalty int32 = 5
	passedPawnBonus     int32 = 20
)

// Threat terms.
const (
	hangingBonus          int32 = 69
	kingThreatBonus       int32 = 24
	pawnPushThreatBonus   int32 = 48
	safePawnBonus         int32 = 173
	queenSliderThreat     int32 = 60
	queenKnightThreat     int32 = 16
	restrictedBonus       int32 = 7
	weakQueenProtectBonus int32 = 14
)

// Evaluator scores positions, consulting and populating a transposition
// cache so repeated nodes (common under search re-visits via transposition)
// skip recomputation.
type Evaluator struct {
	Cache *boardstate.TranspositionCache
}

// New builds an Evaluator backed by cache. A nil cache disables caching.
func New(cache *boardstate.TranspositionCache) *Evaluator {
	return &Evaluator{Cache: cache}
}

// Evaluate scores s from White's perspective, in centipawns, consulting the
// cache first and storing the result in it afterward.
func (e *Evaluator) Evaluate(s *boardstate.State) Evaluation {
	if e.Cache != nil {
		if entry, ok := e.Cache.Get(s.Info.ZKey); ok && entry.Eval != nil {
			return Evaluation(*entry.Eval)
		}
	}

	score := e.score(s)

	if e.Cache != nil {
		e.Cache.StoreEval(s.Info.ZKey, int32(score))
	}
	return score
}

func (e *Evaluator) score(s *boardstate.State) Evaluation {
	if s.Info.KingIndices[0] == boardstate.NoSq || s.Info.KingIndices[1] == boardstate.NoSq {
		return NoKingSentinel
	}

	// s.Moves holds legal moves for the side to move only; the mobility and
	// threat terms read both colors' moves, so score a copy of s carrying
	// the pseudo-legal MotionSet for both colors.
	scored := *s
	scored.Moves = *boardstate.GeneratePseudoLegal(&s.Board, s.Info.EnPassantMask)
	white := e.sideScore(&scored, piece.White)
	black := e.sideScore(&scored, piece.Black)
	total := white - black

	if s.Turn == piece.White {
		total += TempoBonus
	} else {
		total -= TempoBonus
	}

	scale := int32(100-s.Info.HalfmoveClock) * 100 / 100
	if scale < 0 {
		scale = 0
	}
	total = total * scale / 100
	return Evaluation(total)
}

// sideScore computes a color's raw term total. The directional pawn term
// (passed pawns) uses bitboard.Mask.Flipped-compatible geometry: the
// same AllRowsAbove/AllRowsBelow primitives apply to either color by
// selecting the one that faces the color's direction of travel, so no
// per-color table duplication is needed for the pawn terms.
func (e *Evaluator) sideScore(s *boardstate.State, p piece.Parity) int32 {
	var total int32
	bishops := 0

	for i := 0; i < 64; i++ {
		sq := boardstate.Sq(i)
		occ := s.Board.PieceAt(sq)
		if occ.IsEmpty() || occ.GetParity() != p {
			continue
		}
		kind := occ.GetKind()
		total += MaterialPrice[kind]
		total += mobilityWeight[kind] * int32(bits.OnesCount64(uint64(reach(s, sq, occ))))
		if kind == piece.Bishop {
			bishops++
		}
	}
	if bishops >= 2 {
		total += BishopPairBonus
	}

	total += pawnStructureScore(s, p)
	total += threatScore(s, p)
	return total
}

// reach returns the mask of squares a piece on sq pseudo-legally reaches or
// covers, read back from the pseudo-legal MotionSet that score installs on
// the state it scores.
func reach(s *boardstate.State, sq boardstate.Sq, occ piece.Square) bitboard.Mask {
	p := occ.GetParity()
	idx := 0
	if p == piece.White {
		idx = 1
	}
	return s.Moves.PiecewiseFlat[idx][sq] | s.Moves.DefensePiecewiseFlat[idx][sq]
}

func pawnFileMask(s *boardstate.State, p piece.Parity) bitboard.Mask {
	var m bitboard.Mask
	for i := 0; i < 64; i++ {
		occ := s.Board.PieceAt(boardstate.Sq(i))
		if occ.IsPawn() && occ.GetParity() == p {
			m |= boardstate.Sq(i).Mask()
		}
	}
	return m
}

func pawnStructureScore(s *boardstate.State, p piece.Parity) int32 {
	pawns := pawnFileMask(s, p)
	enemyPawns := pawnFileMask(s, p.Not())
	var total int32

	for _, b := range bitboard.IsolatedBits(pawns) {
		sq := boardstate.Sq(b.AsIndex())
		file := sq.File()

		fileMask := bitboard.OfColumn(file)
		if (fileMask & pawns).BitCount() > 1 {
			total -= doubledPawnPenalty
		}

		neighborFiles := bitboard.OfColumn(file-1) | bitboard.OfColumn(file+1)
		if (neighborFiles & pawns) == bitboard.Empty {
			total -= isolatedPawnPenalty
		}

		if isPassed(sq, p, enemyPawns) {
			total += passedPawnBonus
		}
	}
	return total
}

// isPassed reports whether the pawn on sq has no enemy pawn on its own file
// or an adjacent file, anywhere ahead of it in its direction of travel.
func isPassed(sq boardstate.Sq, p piece.Parity, enemyPawns bitboard.Mask) bool {
	file := sq.File()
	span := bitboard.OfColumn(file-1) | bitboard.OfColumn(file) | bitboard.OfColumn(file+1)

	var ahead bitboard.Mask
	if p == piece.White {
		ahead = bitboard.AllRowsAbove(sq.Rank())
	} else {
		ahead = bitboard.AllRowsBelow(sq.Rank())
	}
	return (span & ahead & enemyPawns) == bitboard.Empty
}

func threatScore(s *boardstate.State, p piece.Parity) int32 {
	opponent := p.Not()
	idx, oppIdx := 0, 1
	if p == piece.White {
		idx, oppIdx = 1, 0
	}

	var total int32
	for i := 0; i < 64; i++ {
		sq := boardstate.Sq(i)
		occ := s.Board.PieceAt(sq)
		if occ.IsEmpty() || occ.GetParity() != opponent {
			continue
		}
		targetMask := sq.Mask()
		attackedByUs := s.Moves.Flat[idx]&targetMask != 0
		defendedByThem := s.Moves.DefenseFlat[oppIdx]&targetMask != 0
		if !attackedByUs {
			continue
		}
		if occ.IsKing() {
			total += kingThreatBonus
			continue
		}
		if !defendedByThem {
			total += hangingBonus
			continue
		}
		switch occ.GetKind() {
		case piece.Queen:
			total += queenSliderThreat
		default:
			total += restrictedBonus
		}
	}

	total += pawnPushThreatScore(s, p)
	total += queenThreatScore(s, p)
	return total
}

// queenThreatScore scores, for each opponent queen, every knight of ours a
// knight jump away from it, plus a bonus when we attack that queen while
// the opponent also defends it (spec.md §4.7's queen-knight and
// weak-queen-protection terms).
func queenThreatScore(s *boardstate.State, p piece.Parity) int32 {
	opponent := p.Not()
	idx, oppIdx := 0, 1
	if p == piece.White {
		idx, oppIdx = 1, 0
	}

	var total int32
	for i := 0; i < 64; i++ {
		sq := boardstate.Sq(i)
		occ := s.Board.PieceAt(sq)
		if !occ.IsQueen() || occ.GetParity() != opponent {
			continue
		}

		for _, b := range bitboard.IsolatedBits(sq.Mask().GetKnightish()) {
			knight := s.Board.PieceAt(boardstate.Sq(b.AsIndex()))
			if knight.IsKnight() && knight.GetParity() == p {
				total += queenKnightThreat
			}
		}

		if s.Moves.Flat[idx]&sq.Mask() != 0 && s.Moves.DefenseFlat[oppIdx]&sq.Mask() != 0 {
			total += weakQueenProtectBonus
		}
	}
	return total
}

// pawnPushThreatScore scores every move target of our pawns:
// pawnPushThreatBonus/4 when the opponent's defense set does not cover the
// square, and safePawnBonus/10 when it does but our own defense set covers
// it too.
func pawnPushThreatScore(s *boardstate.State, p piece.Parity) int32 {
	idx, oppIdx := 0, 1
	if p == piece.White {
		idx, oppIdx = 1, 0
	}
	var total int32
	for i := 0; i < 64; i++ {
		sq := boardstate.Sq(i)
		occ := s.Board.PieceAt(sq)
		if !occ.IsPawn() || occ.GetParity() != p {
			continue
		}
		targets := s.Moves.PiecewiseFlat[idx][sq]
		for _, b := range bitboard.IsolatedBits(targets) {
			if s.Moves.DefenseFlat[oppIdx]&b == 0 {
				total += pawnPushThreatBonus / 4
			} else if s.Moves.DefenseFlat[idx]&b != 0 {
				total += safePawnBonus / 10
			}
		}
	}
	return total
}
