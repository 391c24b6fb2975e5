package boardstate

import (
	"github.com/Mgrdich/chesscore/internal/bitboard"
	"github.com/Mgrdich/chesscore/internal/piece"
)

// Motion is a single (from, to) board move. Promotion is never encoded
// explicitly: a pawn motion that terminates on the back rank is recognized
// and silently promoted to a queen inside make (§4.4) — the engine core
// never offers underpromotion.
//
// Castling is encoded internally as the king moving onto its own rook's
// square (spec.md §9), not onto the final castled square; NormalizeCastle
// converts a caller-supplied king-to-final-square motion into that
// internal form when one is recognized.
type Motion struct {
	From Sq
	To   Sq
}

// NullMotion is the sentinel "no move" value, used by search nodes that
// have nothing to report and by the null-move pruning technique.
var NullMotion = Motion{From: NoSq, To: NoSq}

// IsNull reports whether m is the null-move sentinel.
func (m Motion) IsNull() bool { return m.From == NoSq && m.To == NoSq }

// NormalizeCastle rewrites a king-to-final-castle-square motion (e.g. e1g1)
// into the internal king-to-rook-square encoding (e1h1) Make expects, when
// m looks like a two-square king hop toward a rook of the mover's own
// color. Any other motion, including an already-internal castle motion, is
// returned unchanged.
func NormalizeCastle(b *Board, mover piece.Parity, m Motion) Motion {
	king := b.PieceAt(m.From)
	if !king.IsKing() || king.GetParity() != mover {
		return m
	}
	df := m.To.File() - m.From.File()
	if df != 2 && df != -2 {
		return m
	}
	rank := m.From.Rank()
	rookFile := 7
	if df < 0 {
		rookFile = 0
	}
	rookSq := NewSq(rookFile, rank)
	rook := b.PieceAt(rookSq)
	if rook.IsRook() && rook.GetParity() == mover {
		return Motion{From: m.From, To: rookSq}
	}
	return m
}

func colorIdx(p piece.Parity) int {
	if p == piece.White {
		return 1
	}
	return 0
}

// MotionSet holds, per color, the full set of generated moves: a per-from
// list, a flat mask of every destination square, and a piecewise-flat
// per-from destination mask (read by the evaluator's mobility and threat
// terms). The Defense* fields
// mirror "squares covered" rather than "squares reachable" — a sliding
// piece defends through to its first friendly blocker, which occupies a
// square a "move" could never land on.
type MotionSet struct {
	ByFrom        [2][64][]Motion
	Flat          [2]bitboard.Mask
	PiecewiseFlat [2][64]bitboard.Mask

	DefenseByFrom        [2][64][]Motion
	DefenseFlat          [2]bitboard.Mask
	DefensePiecewiseFlat [2][64]bitboard.Mask
}

// AddMove records a reachable (quiet or capturing) move from 'from' to
// 'to' for color p.
func (ms *MotionSet) AddMove(p piece.Parity, from, to Sq) {
	c := colorIdx(p)
	ms.ByFrom[c][from] = append(ms.ByFrom[c][from], Motion{From: from, To: to})
	ms.Flat[c] |= to.Mask()
	ms.PiecewiseFlat[c][from] |= to.Mask()
}

// AddDefense records a square covered (but not reachable as a move) by the
// piece on 'from' for color p — a friendly-occupied target, or an empty
// diagonal square covered by a pawn.
func (ms *MotionSet) AddDefense(p piece.Parity, from, to Sq) {
	c := colorIdx(p)
	ms.DefenseByFrom[c][from] = append(ms.DefenseByFrom[c][from], Motion{From: from, To: to})
	ms.DefenseFlat[c] |= to.Mask()
	ms.DefensePiecewiseFlat[c][from] |= to.Mask()
}

// Moves returns every move for color p as a flat slice, in from-square
// order.
func (ms *MotionSet) Moves(p piece.Parity) []Motion {
	c := colorIdx(p)
	var out []Motion
	for _, lst := range ms.ByFrom[c] {
		out = append(out, lst...)
	}
	return out
}

// Covers reports whether sq is in color p's move set or defense set — used
// by the legal-move filter to test check and castling-path safety.
func (ms *MotionSet) Covers(p piece.Parity, sq Sq) bool {
	c := colorIdx(p)
	if ms.Flat[c]&sq.Mask() != 0 {
		return true
	}
	return ms.DefenseFlat[c]&sq.Mask() != 0
}
