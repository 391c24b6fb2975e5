package boardstate

import (
	"testing"

	"github.com/Mgrdich/chesscore/internal/piece"
	"github.com/Mgrdich/chesscore/internal/zobrist"
	"github.com/stretchr/testify/require"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func newStartState(t *testing.T) *State {
	t.Helper()
	zt := zobrist.NewTable()
	cache := NewTranspositionCache()
	s, err := ParseFEN(startFEN, zt, cache)
	require.NoError(t, err)
	return s
}

func TestStartPositionLegalMoveCount(t *testing.T) {
	s := newStartState(t)
	moves := s.Moves.Moves(piece.White)
	require.Len(t, moves, 20)
}

func TestStartPositionRoundTripFEN(t *testing.T) {
	s := newStartState(t)
	require.Equal(t, startFEN, s.ToFEN())
}

func TestTolerantFENMissingTrailingFields(t *testing.T) {
	zt := zobrist.NewTable()
	cache := NewTranspositionCache()
	short := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"
	s, err := ParseFEN(short, zt, cache)
	require.NoError(t, err)
	require.Equal(t, 0, s.Info.HalfmoveClock)
	require.Equal(t, 1, s.Info.FullmoveNumber)
}

func TestPawnDoublePushSetsEnPassant(t *testing.T) {
	s := newStartState(t)
	from := NewSq(4, 6) // e2
	to := NewSq(4, 4)   // e4
	if err := s.Make(Motion{From: from, To: to}); err != nil {
		t.Fatalf("Make: %v", err)
	}
	want := NewSq(4, 5).Mask() // e3
	if s.Info.EnPassantMask != want {
		t.Errorf("EnPassantMask = %v, want mask of e3", s.Info.EnPassantMask)
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	s := newStartState(t)
	before := s.Board.Copy()
	beforeInfo := s.Info

	require.NoError(t, s.Make(Motion{From: NewSq(4, 6), To: NewSq(4, 4)}))
	require.NoError(t, s.Unmake())

	require.Equal(t, before, s.Board)
	require.Equal(t, beforeInfo, s.Info)
	require.Equal(t, piece.White, s.Turn)
}

func TestFiftyPlyMakeUnmakeStress(t *testing.T) {
	s := newStartState(t)
	snapshotBoard := s.Board.Copy()
	snapshotInfo := s.Info

	played := 0
	for ply := 0; ply < 50; ply++ {
		moves := s.Moves.Moves(s.Turn)
		if len(moves) == 0 {
			break
		}
		m := moves[ply%len(moves)]
		if err := s.Make(m); err != nil {
			t.Fatalf("Make at ply %d: %v", ply, err)
		}
		played++
	}
	for i := 0; i < played; i++ {
		if err := s.Unmake(); err != nil {
			t.Fatalf("Unmake at step %d: %v", i, err)
		}
	}
	if s.Board != snapshotBoard {
		t.Errorf("board after %d make/unmake pairs does not match starting board", played)
	}
	if s.Info != snapshotInfo {
		t.Errorf("info after %d make/unmake pairs = %+v, want %+v", played, s.Info, snapshotInfo)
	}
}

func TestCastlingRightsRevokedByKingMove(t *testing.T) {
	// Clear the pieces between king and rooks so castling is pseudo-available,
	// then move the king and confirm both rights on that side are dropped.
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	zt := zobrist.NewTable()
	s, err := ParseFEN(fen, zt, NewTranspositionCache())
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if err := s.Make(Motion{From: NewSq(4, 7), To: NewSq(3, 7)}); err != nil {
		t.Fatalf("Make: %v", err)
	}
	if s.Info.AllowedCastles&(CastleWhiteKing|CastleWhiteQueen) != 0 {
		t.Errorf("white castling rights = %b, want both cleared after king move", s.Info.AllowedCastles)
	}
}

func TestCastlingMoveRelocatesRookAndKing(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	zt := zobrist.NewTable()
	s, err := ParseFEN(fen, zt, NewTranspositionCache())
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	// Internal castle encoding: king moves onto its own rook's square.
	kingSq := NewSq(4, 7)
	rookSq := NewSq(7, 7)
	if err := s.Make(Motion{From: kingSq, To: rookSq}); err != nil {
		t.Fatalf("Make(castle): %v", err)
	}
	if got := s.Board.PieceAt(NewSq(6, 7)); !got.IsWKing() {
		t.Errorf("g1 = %v, want white king", got)
	}
	if got := s.Board.PieceAt(NewSq(5, 7)); !got.IsWRook() {
		t.Errorf("f1 = %v, want white rook", got)
	}
	if s.Info.KingIndices[colorIdx(piece.White)] != NewSq(6, 7) {
		t.Errorf("king index not updated to g1 after castle")
	}
}
