package boardstate

import (
	"github.com/Mgrdich/chesscore/internal/bitboard"
	"github.com/Mgrdich/chesscore/internal/piece"
)

// IsAttacked reports whether sq is attacked (reachable as a move, or
// covered as a defended square) by byColor on the position currently held
// in s.
func IsAttacked(s *State, sq Sq, byColor piece.Parity) bool {
	if sq == NoSq {
		return false
	}
	atk := GeneratePseudoLegal(&s.Board, s.Info.EnPassantMask)
	return atk.Covers(byColor, sq)
}

// simulateMove applies m to a scratch copy of b for the sole purpose of
// testing whether the mover's king ends up in check; it does not touch
// castling rights, the halfmove clock, or Zobrist keys; it returns the
// resulting board and the mover's king square after the move.
func simulateMove(b *Board, m Motion, mover piece.Parity, currentKingSq Sq) (*Board, Sq) {
	nb := b.Copy()
	fromPiece := nb.PieceAt(m.From)
	toPiece := nb.PieceAt(m.To)
	kingSq := currentKingSq

	isCastle := fromPiece.IsKing() && toPiece.IsPiece() && toPiece.GetParity() == mover && toPiece.IsRook()
	isEnPassant := fromPiece.IsPawn() && toPiece.IsEmpty() && m.From.File() != m.To.File()

	switch {
	case isCastle:
		kingSide := m.To.File() > m.From.File()
		rank := m.From.Rank()
		var kingDest, rookDest Sq
		if kingSide {
			kingDest, rookDest = NewSq(6, rank), NewSq(5, rank)
		} else {
			kingDest, rookDest = NewSq(2, rank), NewSq(3, rank)
		}
		nb.Squares[m.From] = piece.Square(0)
		nb.Squares[m.To] = piece.Square(0)
		nb.Squares[kingDest] = fromPiece
		nb.Squares[rookDest] = toPiece
		kingSq = kingDest
	case isEnPassant:
		capturedSq := NewSq(m.To.File(), m.From.Rank())
		nb.Squares[capturedSq] = piece.Square(0)
		nb.Squares[m.From] = piece.Square(0)
		nb.Squares[m.To] = fromPiece
	default:
		nb.Squares[m.From] = piece.Square(0)
		nb.Squares[m.To] = fromPiece
		if fromPiece.IsKing() {
			kingSq = m.To
		}
	}
	return &nb, kingSq
}

// GenerateLegal produces the strictly-legal MotionSet for the side to move
// in s: every pseudo-legal move that does not leave the mover's own king in
// check, plus castling moves (encoded as the king moving onto its own
// rook's square, per spec.md §9), plus the pseudo-legal defense data
// unchanged — a defended square's legality never depends on check, since it
// is never itself played.
func GenerateLegal(s *State) *MotionSet {
	mover := s.Turn
	opponent := mover.Not()
	kingSq := s.Info.KingIndices[colorIdx(mover)]

	pseudo := GeneratePseudoLegal(&s.Board, s.Info.EnPassantMask)
	legal := &MotionSet{
		DefenseByFrom:        pseudo.DefenseByFrom,
		DefenseFlat:          pseudo.DefenseFlat,
		DefensePiecewiseFlat: pseudo.DefensePiecewiseFlat,
	}

	for _, m := range pseudo.Moves(mover) {
		nb, newKingSq := simulateMove(&s.Board, m, mover, kingSq)
		if newKingSq == NoSq {
			continue
		}
		oppAttacks := GeneratePseudoLegal(nb, bitboard.Empty)
		if !oppAttacks.Covers(opponent, newKingSq) {
			legal.AddMove(mover, m.From, m.To)
		}
	}

	addCastlingMoves(s, legal, pseudo)
	return legal
}

// addCastlingMoves appends the castling moves legal in s to legal, using
// pseudo (the current position's pseudo-legal attack data) to test the
// castling-path-not-attacked rule.
func addCastlingMoves(s *State, legal *MotionSet, pseudo *MotionSet) {
	mover := s.Turn
	opponent := mover.Not()
	kingSq := s.Info.KingIndices[colorIdx(mover)]
	if kingSq == NoSq {
		return
	}

	homeRank := 7
	if mover == piece.Black {
		homeRank = 0
	}
	if kingSq.Rank() != homeRank || kingSq.File() != 4 {
		return
	}
	if pseudo.Covers(opponent, kingSq) {
		return // cannot castle out of check
	}

	kingsideRight, queensideRight := CastleWhiteKing, CastleWhiteQueen
	if mover == piece.Black {
		kingsideRight, queensideRight = CastleBlackKing, CastleBlackQueen
	}

	if s.Info.AllowedCastles&kingsideRight != 0 {
		rookSq := NewSq(7, homeRank)
		rook := s.Board.PieceAt(rookSq)
		fSq, gSq := NewSq(5, homeRank), NewSq(6, homeRank)
		if rook.IsRook() && rook.GetParity() == mover &&
			s.Board.PieceAt(fSq).IsEmpty() && s.Board.PieceAt(gSq).IsEmpty() &&
			!pseudo.Covers(opponent, fSq) && !pseudo.Covers(opponent, gSq) {
			legal.AddMove(mover, kingSq, rookSq)
		}
	}
	if s.Info.AllowedCastles&queensideRight != 0 {
		rookSq := NewSq(0, homeRank)
		rook := s.Board.PieceAt(rookSq)
		bSq, cSq, dSq := NewSq(1, homeRank), NewSq(2, homeRank), NewSq(3, homeRank)
		if rook.IsRook() && rook.GetParity() == mover &&
			s.Board.PieceAt(bSq).IsEmpty() && s.Board.PieceAt(cSq).IsEmpty() && s.Board.PieceAt(dSq).IsEmpty() &&
			!pseudo.Covers(opponent, cSq) && !pseudo.Covers(opponent, dSq) {
			legal.AddMove(mover, kingSq, rookSq)
		}
	}
}
