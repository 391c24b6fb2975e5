// Package boardstate implements the board array, pseudo-legal and legal
// move generation, and the reversible make/unmake state machinery described
// in spec.md §§3-4.5. It is the one authoritative move-generation module:
// per spec.md §9, the original's duplicated cutil/lib/shared board code is
// collapsed here rather than reproduced.
package boardstate

import (
	"github.com/Mgrdich/chesscore/internal/bitboard"
	"github.com/Mgrdich/chesscore/internal/piece"
)

// Sq is a board square index, 0..64 in row-major order (file = i%8, rank =
// i/8). Internal rank 0 is the first rank listed in a FEN string (FEN lists
// ranks from 8 down to 1), so internal rank 0 is the board's "top" and
// internal rank 7 is the "bottom" — a coordinate choice, not a
// game-theoretic one, applied consistently by FEN parsing (spec.md §6).
type Sq int

// NoSq is the sentinel used for "no square" (a missing king, an absent
// en-passant target) and as both ends of the null-move Motion.
const NoSq Sq = 65

// NewSq builds a Sq from (file, rank), both 0..8. Out-of-range coordinates
// yield NoSq.
func NewSq(file, rank int) Sq {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSq
	}
	return Sq(rank*8 + file)
}

// File returns the file of the square, 0=a..7=h.
func (s Sq) File() int { return int(s) % 8 }

// Rank returns the internal rank of the square, 0..7.
func (s Sq) Rank() int { return int(s) / 8 }

// Valid reports whether s is an on-board square (0..64 exclusive, so 0..63).
func (s Sq) Valid() bool { return s >= 0 && s < 64 }

// Mask returns the single-bit bitboard.Mask for s, or bitboard.Empty if s
// is not a valid on-board square.
func (s Sq) Mask() bitboard.Mask {
	if !s.Valid() {
		return bitboard.Empty
	}
	return bitboard.FromIndex(int(s))
}

// algebraicRank converts an internal rank to the FEN/algebraic rank digit
// (internal rank 0 is FEN rank 8).
func algebraicRank(internalRank int) int { return 8 - internalRank }

// rankFromAlgebraic is the inverse of algebraicRank.
func rankFromAlgebraic(rank int) int { return 8 - rank }

// String returns algebraic notation ("e4"), or "-" for an invalid square.
func (s Sq) String() string {
	if !s.Valid() {
		return "-"
	}
	file := byte('a') + byte(s.File())
	rank := byte('0') + byte(algebraicRank(s.Rank()))
	return string([]byte{file, rank})
}

// Castling-rights bits, per spec.md §6: bit 0 black kingside, bit 1 black
// queenside, bit 2 white kingside, bit 3 white queenside. The value is used
// directly as the index into the 16-entry Zobrist castling table.
const (
	CastleBlackKing  uint8 = 1 << 0
	CastleBlackQueen uint8 = 1 << 1
	CastleWhiteKing  uint8 = 1 << 2
	CastleWhiteQueen uint8 = 1 << 3
	CastleAll        uint8 = CastleBlackKing | CastleBlackQueen | CastleWhiteKing | CastleWhiteQueen
)

// MaskSet bundles the per-color occupancy masks. Invariant: All == White |
// Black and White & Black == Empty.
type MaskSet struct {
	White bitboard.Mask
	Black bitboard.Mask
	All   bitboard.Mask
}

// MaskSetFromBoard derives a MaskSet from a board array by a single linear
// scan.
func MaskSetFromBoard(board *[64]piece.Square) MaskSet {
	var ms MaskSet
	for i, sq := range board {
		if sq.IsWhite() {
			ms.White |= bitboard.FromIndex(i)
		} else if sq.IsBlack() {
			ms.Black |= bitboard.FromIndex(i)
		}
	}
	ms.All = ms.White | ms.Black
	return ms
}

// Board is the 64-square piece array. It carries no move-generation or
// history state of its own — that lives in State, which embeds a Board.
type Board struct {
	Squares [64]piece.Square
}

// PieceAt returns the piece byte at sq, or the zero (empty) Square for an
// out-of-range index.
func (b *Board) PieceAt(sq Sq) piece.Square {
	if !sq.Valid() {
		return piece.Square(0)
	}
	return b.Squares[sq]
}

// Copy returns a deep copy of the board array.
func (b *Board) Copy() Board {
	var cp Board
	cp.Squares = b.Squares
	return cp
}
