package boardstate

import (
	"github.com/Mgrdich/chesscore/internal/bitboard"
	"github.com/Mgrdich/chesscore/internal/piece"
)

// direction deltas for the four rook rays and four bishop rays, expressed
// as (deltaFile, deltaRank).
var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var kingDirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}
var knightDirs = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

// slide walks from 'from' along the given directions until it leaves the
// board or hits a piece, recording a move for every empty square, a move
// (capture) for the first enemy piece it hits, and a defense entry for the
// first friendly piece it hits. Each direction is walked in turn until it is
// blocked or leaves the board; every sliding piece (rook, bishop, queen)
// uses it.
func slide(b *Board, ms *MotionSet, from Sq, p piece.Parity, dirs [][2]int) {
	ff, fr := from.File(), from.Rank()
	for _, d := range dirs {
		file, rank := ff+d[0], fr+d[1]
		for {
			to := NewSq(file, rank)
			if to == NoSq {
				break
			}
			occ := b.PieceAt(to)
			if occ.IsEmpty() {
				ms.AddMove(p, from, to)
				file += d[0]
				rank += d[1]
				continue
			}
			if occ.GetParity() == p {
				ms.AddDefense(p, from, to)
			} else {
				ms.AddMove(p, from, to)
			}
			break
		}
	}
}

func slideDirs(d [4][2]int) [][2]int {
	out := make([][2]int, 4)
	copy(out, d[:])
	return out
}

func stepDirs(b *Board, ms *MotionSet, from Sq, p piece.Parity, dirs [][2]int) {
	ff, fr := from.File(), from.Rank()
	for _, d := range dirs {
		to := NewSq(ff+d[0], fr+d[1])
		if to == NoSq {
			continue
		}
		occ := b.PieceAt(to)
		if occ.IsEmpty() {
			ms.AddMove(p, from, to)
			continue
		}
		if occ.GetParity() == p {
			ms.AddDefense(p, from, to)
		} else {
			ms.AddMove(p, from, to)
		}
	}
}

// pawnHomeRank returns the starting rank for color p's pawns, and
// pawnDirection the rank step a pawn of color p advances by, under the
// internal-rank-0-is-FEN-rank-8 convention (§9): White starts at internal
// rank 6 and advances toward rank 0; Black starts at rank 1 and advances
// toward rank 7.
func pawnHomeRank(p piece.Parity) int {
	if p == piece.White {
		return 6
	}
	return 1
}

func pawnDirection(p piece.Parity) int {
	if p == piece.White {
		return -1
	}
	return 1
}

func pawnMoves(b *Board, ms *MotionSet, from Sq, p piece.Parity, enPassant bitboard.Mask) {
	dir := pawnDirection(p)
	file, rank := from.File(), from.Rank()

	// Single and double push.
	oneRank := rank + dir
	single := NewSq(file, oneRank)
	if single != NoSq && b.PieceAt(single).IsEmpty() {
		ms.AddMove(p, from, single)
		if rank == pawnHomeRank(p) {
			double := NewSq(file, rank+2*dir)
			if double != NoSq && b.PieceAt(double).IsEmpty() {
				ms.AddMove(p, from, double)
			}
		}
	}

	// Diagonal captures / covered squares (ignores the diagonal-occupied-
	// by-enemy requirement when deciding whether a square is "defended":
	// a pawn threatens both diagonals regardless of what currently sits
	// there).
	for _, df := range [2]int{-1, 1} {
		to := NewSq(file+df, oneRank)
		if to == NoSq {
			continue
		}
		occ := b.PieceAt(to)
		switch {
		case occ.IsPiece() && occ.GetParity() == p:
			ms.AddDefense(p, from, to)
		case occ.IsPiece():
			ms.AddMove(p, from, to)
		case enPassant != bitboard.Empty && to.Mask()&enPassant != 0:
			ms.AddMove(p, from, to)
		default:
			ms.AddDefense(p, from, to)
		}
	}
}

// GeneratePseudoLegal fills a MotionSet with every pseudo-legal move and
// defended square on the board for both colors, without filtering moves
// that would leave the mover's own king in check — that filter lives in
// legal.go, which calls this as its first pass.
func GeneratePseudoLegal(b *Board, enPassant bitboard.Mask) *MotionSet {
	ms := &MotionSet{}
	for i := 0; i < 64; i++ {
		sq := Sq(i)
		occ := b.Squares[i]
		if occ.IsEmpty() {
			continue
		}
		p := occ.GetParity()
		switch occ.GetKind() {
		case piece.Rook:
			slide(b, ms, sq, p, slideDirs(rookDirs))
		case piece.Bishop:
			slide(b, ms, sq, p, slideDirs(bishopDirs))
		case piece.Queen:
			slide(b, ms, sq, p, slideDirs(rookDirs))
			slide(b, ms, sq, p, slideDirs(bishopDirs))
		case piece.Knight:
			stepDirs(b, ms, sq, p, knightDirs[:])
		case piece.King:
			stepDirs(b, ms, sq, p, kingDirs[:])
		case piece.Pawn:
			pawnMoves(b, ms, sq, p, enPassant)
		}
	}
	return ms
}
