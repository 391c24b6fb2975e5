package boardstate

import (
	"testing"

	"github.com/Mgrdich/chesscore/internal/piece"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCastleRewritesFinalSquareToRookSquare(t *testing.T) {
	s := parseFEN(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	kingSq := NewSq(4, 7)
	finalSq := NewSq(6, 7) // g1, the conventional castled-king square
	rookSq := NewSq(7, 7)

	got := NormalizeCastle(&s.Board, piece.White, Motion{From: kingSq, To: finalSq})
	require.Equal(t, Motion{From: kingSq, To: rookSq}, got)
}

func TestNormalizeCastleLeavesOrdinaryMovesAlone(t *testing.T) {
	s := newStartState(t)
	m := Motion{From: NewSq(4, 6), To: NewSq(4, 4)}
	got := NormalizeCastle(&s.Board, piece.White, m)
	require.Equal(t, m, got)
}
