package boardstate

import (
	"fmt"

	"github.com/Mgrdich/chesscore/internal/bitboard"
	"github.com/Mgrdich/chesscore/internal/piece"
	"github.com/Mgrdich/chesscore/internal/zobrist"
)

// RetainedStateInfo is the snapshot frame pushed and popped by make/unmake:
// everything about a position that is not the 64-square array itself
// (spec.md §4.4).
type RetainedStateInfo struct {
	ZKey           uint64
	AllowedCastles uint8
	EnPassantMask  bitboard.Mask
	KingIndices    [2]Sq
	Maskset        MaskSet
	HalfmoveClock  int
	FullmoveNumber int
}

// State is the full mutable game position: the board, the current legal
// MotionSet, whose turn it is, the retained info, and the reversible
// make/unmake history stacks. A State is always built with a legal
// MotionSet already computed for the side to move.
type State struct {
	Board Board
	Moves MotionSet
	Turn  piece.Parity
	Info  RetainedStateInfo

	Zobrist *zobrist.Table
	Cache   *TranspositionCache

	heldInfo   []RetainedStateInfo
	heldBoards []Board
}

// NewState builds a State from a board, side to move, castling rights,
// en-passant target mask, and move counters, computing the Zobrist key and
// legal MotionSet from scratch.
func NewState(board Board, turn piece.Parity, castleRights uint8, enPassant bitboard.Mask, halfmove, fullmove int, zt *zobrist.Table, cache *TranspositionCache) *State {
	s := &State{
		Board:   board,
		Turn:    turn,
		Zobrist: zt,
		Cache:   cache,
	}
	s.Info = RetainedStateInfo{
		AllowedCastles: castleRights,
		EnPassantMask:  enPassant,
		Maskset:        MaskSetFromBoard(&board.Squares),
		HalfmoveClock:  halfmove,
		FullmoveNumber: fullmove,
	}
	s.Info.KingIndices = findKings(&board.Squares)
	s.Info.ZKey = computeZKey(&board.Squares, turn, castleRights, enPassantFileOf(enPassant), zt)
	s.regenerateLegalMoves()
	return s
}

func findKings(board *[64]piece.Square) [2]Sq {
	var k [2]Sq
	k[0], k[1] = NoSq, NoSq
	for i, sq := range board {
		if sq.IsKing() {
			k[colorIdx(sq.GetParity())] = Sq(i)
		}
	}
	return k
}

func enPassantFileOf(m bitboard.Mask) int {
	if m == bitboard.Empty {
		return -1
	}
	return m.AsIndex() % 8
}

func computeZKey(board *[64]piece.Square, turn piece.Parity, castleRights uint8, epFile int, zt *zobrist.Table) uint64 {
	var key uint64
	for i, sq := range board {
		if sq.IsEmpty() {
			continue
		}
		key ^= zt.PieceKey(int(sq.GetKind()), colorIdx(sq.GetParity()), i)
	}
	key ^= zt.CastlingKey(castleRights)
	key ^= zt.EnPassantKey(epFile)
	if turn == piece.Black {
		key ^= zt.SideKey()
	}
	return key
}

// regenerateLegalMoves adopts the cached MotionSet for the current zkey if
// one is present, and regenerates (storing the result) otherwise (spec.md
// §4.4/§4.6).
func (s *State) regenerateLegalMoves() {
	if s.Cache != nil {
		if entry, ok := s.Cache.Get(s.Info.ZKey); ok && entry.Moves != nil {
			s.Moves = *entry.Moves
			return
		}
	}

	ms := GenerateLegal(s)
	s.Moves = *ms

	if s.Cache != nil {
		entry, _ := s.Cache.Get(s.Info.ZKey)
		entry.Info = s.Info
		entry.Moves = ms
		s.Cache.Put(s.Info.ZKey, entry)
	}
}

// originCastleBit returns the castling-rights bits the piece occ guards:
// both of its side's bits for a king, the matching single bit for a rook
// carrying an origin tag, or 0 otherwise. sq is not consulted.
func originCastleBit(sq Sq, occ piece.Square) uint8 {
	switch {
	case occ.IsKing() && occ.GetParity() == piece.White:
		return CastleWhiteKing | CastleWhiteQueen
	case occ.IsKing() && occ.GetParity() == piece.Black:
		return CastleBlackKing | CastleBlackQueen
	case occ.IsRook() && occ.GetParity() == piece.White && occ.IsKingside():
		return CastleWhiteKing
	case occ.IsRook() && occ.GetParity() == piece.White && occ.IsQueenside():
		return CastleWhiteQueen
	case occ.IsRook() && occ.GetParity() == piece.Black && occ.IsKingside():
		return CastleBlackKing
	case occ.IsRook() && occ.GetParity() == piece.Black && occ.IsQueenside():
		return CastleBlackQueen
	default:
		return 0
	}
}

// Make applies m to the position, pushing a reversible snapshot frame.
// Motion is classified per spec.md §4.4: null move, en-passant capture,
// promotion, castle (king onto its own rook's square), capture, or quiet
// move.
func (s *State) Make(m Motion) error {
	if !m.IsNull() && (!m.From.Valid() || !m.To.Valid()) {
		return fmt.Errorf("boardstate: make: invalid motion %v", m)
	}
	if !m.IsNull() && s.Board.PieceAt(m.From).IsEmpty() {
		return nil // make on an empty source square is a no-op (spec.md §4.4)
	}

	s.heldInfo = append(s.heldInfo, s.Info)
	s.heldBoards = append(s.heldBoards, s.Board.Copy())

	mover := s.Turn
	newInfo := s.Info
	newInfo.EnPassantMask = bitboard.Empty

	if m.IsNull() {
		newInfo.HalfmoveClock++
		if mover == piece.Black {
			newInfo.FullmoveNumber++
		}
		newInfo.ZKey ^= s.Zobrist.EnPassantKey(enPassantFileOf(s.Info.EnPassantMask))
		newInfo.ZKey ^= s.Zobrist.EnPassantKey(-1)
		newInfo.ZKey ^= s.Zobrist.SideKey()
		s.Turn = mover.Not()
		s.Info = newInfo
		s.regenerateLegalMoves()
		return nil
	}

	fromPiece := s.Board.PieceAt(m.From)
	toPiece := s.Board.PieceAt(m.To)
	isPawn := fromPiece.IsPawn()
	isCastle := fromPiece.IsKing() && toPiece.IsPiece() && toPiece.GetParity() == mover && toPiece.IsRook()
	isEnPassant := isPawn && toPiece.IsEmpty() && m.From.File() != m.To.File()

	resetHalfmove := false

	// Zobrist: remove the moving piece from its origin square up front.
	newInfo.ZKey ^= s.Zobrist.PieceKey(int(fromPiece.GetKind()), colorIdx(mover), int(m.From))

	switch {
	case isCastle:
		kingSide := m.To.File() > m.From.File()
		rank := m.From.Rank()
		var kingDest, rookDest Sq
		if kingSide {
			kingDest = NewSq(6, rank)
			rookDest = NewSq(5, rank)
		} else {
			kingDest = NewSq(2, rank)
			rookDest = NewSq(3, rank)
		}
		rook := toPiece
		newInfo.ZKey ^= s.Zobrist.PieceKey(int(rook.GetKind()), colorIdx(mover), int(m.To))
		s.Board.Squares[m.From] = piece.Square(0)
		s.Board.Squares[m.To] = piece.Square(0)
		s.Board.Squares[kingDest] = fromPiece.WithMoved()
		s.Board.Squares[rookDest] = rook.WithMoved()
		newInfo.ZKey ^= s.Zobrist.PieceKey(int(fromPiece.GetKind()), colorIdx(mover), int(kingDest))
		newInfo.ZKey ^= s.Zobrist.PieceKey(int(rook.GetKind()), colorIdx(mover), int(rookDest))
		newInfo.KingIndices[colorIdx(mover)] = kingDest

	case isEnPassant:
		capturedSq := NewSq(m.To.File(), m.From.Rank())
		captured := s.Board.PieceAt(capturedSq)
		newInfo.ZKey ^= s.Zobrist.PieceKey(int(captured.GetKind()), colorIdx(captured.GetParity()), int(capturedSq))
		s.Board.Squares[capturedSq] = piece.Square(0)
		s.Board.Squares[m.From] = piece.Square(0)
		s.Board.Squares[m.To] = fromPiece.WithMoved()
		newInfo.ZKey ^= s.Zobrist.PieceKey(int(fromPiece.GetKind()), colorIdx(mover), int(m.To))
		resetHalfmove = true

	default:
		placed := fromPiece.WithMoved()
		if isPawn {
			backRank := 0
			if mover == piece.Black {
				backRank = 7
			}
			if m.To.Rank() == backRank {
				placed = piece.New(mover, piece.Queen).WithMoved()
			}
		}
		if toPiece.IsPiece() {
			newInfo.ZKey ^= s.Zobrist.PieceKey(int(toPiece.GetKind()), colorIdx(toPiece.GetParity()), int(m.To))
			newInfo.AllowedCastles &^= originCastleBit(m.To, toPiece)
		}
		s.Board.Squares[m.From] = piece.Square(0)
		s.Board.Squares[m.To] = placed
		newInfo.ZKey ^= s.Zobrist.PieceKey(int(placed.GetKind()), colorIdx(mover), int(m.To))
		if fromPiece.IsKing() {
			newInfo.KingIndices[colorIdx(mover)] = m.To
		}
		if isPawn || toPiece.IsPiece() {
			resetHalfmove = true
		}
	}

	newInfo.AllowedCastles &^= originCastleBit(m.From, fromPiece)

	if resetHalfmove {
		newInfo.HalfmoveClock = 0
	} else {
		newInfo.HalfmoveClock++
	}
	if mover == piece.Black {
		newInfo.FullmoveNumber++
	}

	// New en-passant target: a pawn double push exposes the square it
	// skipped over.
	if isPawn {
		delta := m.To.Rank() - m.From.Rank()
		if delta == 2 || delta == -2 {
			newInfo.EnPassantMask = NewSq(m.From.File(), (m.From.Rank()+m.To.Rank())/2).Mask()
		}
	}

	newInfo.ZKey ^= s.Zobrist.CastlingKey(s.Info.AllowedCastles) ^ s.Zobrist.CastlingKey(newInfo.AllowedCastles)
	newInfo.ZKey ^= s.Zobrist.EnPassantKey(enPassantFileOf(s.Info.EnPassantMask))
	newInfo.ZKey ^= s.Zobrist.EnPassantKey(enPassantFileOf(newInfo.EnPassantMask))
	newInfo.ZKey ^= s.Zobrist.SideKey()

	newInfo.Maskset = MaskSetFromBoard(&s.Board.Squares)
	s.Info = newInfo
	s.Turn = mover.Not()
	s.regenerateLegalMoves()
	return nil
}

// Unmake reverses the most recent Make, restoring the board and info exactly
// as they were, and the legal MotionSet by adopting it from the cache for the
// restored zkey if present, else regenerating it (spec.md §4.4). Calling it
// with no move to undo is a programming error and panics.
func (s *State) Unmake() error {
	n := len(s.heldInfo)
	if n == 0 {
		panic("boardstate: unmake: no move to undo")
	}
	s.Info = s.heldInfo[n-1]
	s.Board = s.heldBoards[n-1]
	s.heldInfo = s.heldInfo[:n-1]
	s.heldBoards = s.heldBoards[:n-1]
	s.Turn = s.Turn.Not()
	s.regenerateLegalMoves()
	return nil
}

// InCheck reports whether the side to move's king is currently attacked.
func (s *State) InCheck() bool {
	return IsAttacked(s, s.Info.KingIndices[colorIdx(s.Turn)], s.Turn.Not())
}

// RepetitionCount returns how many times the current position's zkey has
// occurred in the make/unmake history still on the stack, including the
// current position itself (so a first occurrence returns 1). Search uses
// this to detect repeated positions worth treating as a draw.
func (s *State) RepetitionCount() int {
	count := 1
	for _, info := range s.heldInfo {
		if info.ZKey == s.Info.ZKey {
			count++
		}
	}
	return count
}
