package search

import (
	"context"
	"testing"

	"github.com/Mgrdich/chesscore/internal/boardstate"
	"github.com/Mgrdich/chesscore/internal/config"
	"github.com/Mgrdich/chesscore/internal/eval"
	"github.com/Mgrdich/chesscore/internal/piece"
	"github.com/Mgrdich/chesscore/internal/zobrist"
)

func parseForAnalyze(t *testing.T, fen string) (*boardstate.State, *boardstate.TranspositionCache) {
	t.Helper()
	zt := zobrist.NewTable()
	cache := boardstate.NewTranspositionCache()
	s, err := boardstate.ParseFEN(fen, zt, cache)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return s, cache
}

func TestAnalyzeAppliesContemptForCallerSuppliedRepetition(t *testing.T) {
	// Ample non-king material (two rooks, well above materialEvalCutoff), so
	// a position the caller already saw earlier in the game scores as
	// contempt rather than a flat draw.
	s, cache := parseForAnalyze(t, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")

	se := New(config.DefaultSearchConfig(), eval.New(cache), cache)
	se.rootParity = piece.White
	se.repeatedPositions = map[uint64]struct{}{s.Info.ZKey: {}}

	score := se.analyze(context.Background(), s, 2, -MateValue, MateValue, 0)
	if score != se.Config.ContemptValue {
		t.Errorf("analyze = %d, want contempt value %d with the root side to move at the repeated node", score, se.Config.ContemptValue)
	}
}

func TestAnalyzeFlipsContemptSignForOpponentToMove(t *testing.T) {
	s, cache := parseForAnalyze(t, "4k3/8/8/8/8/8/8/R3K2R b KQ - 0 1")

	se := New(config.DefaultSearchConfig(), eval.New(cache), cache)
	se.rootParity = piece.White // the search was run for White; Black is to move at this node
	se.repeatedPositions = map[uint64]struct{}{s.Info.ZKey: {}}

	score := se.analyze(context.Background(), s, 2, -MateValue, MateValue, 0)
	if score != -se.Config.ContemptValue {
		t.Errorf("analyze = %d, want -contempt (%d) when the opponent is to move at the repeated node", score, -se.Config.ContemptValue)
	}
}

func TestAnalyzeTreatsRepetitionAsFlatDrawBelowMaterialCutoff(t *testing.T) {
	// Bare kings: no non-king material at all, well under materialEvalCutoff.
	s, cache := parseForAnalyze(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")

	se := New(config.DefaultSearchConfig(), eval.New(cache), cache)
	se.rootParity = piece.White
	se.repeatedPositions = map[uint64]struct{}{s.Info.ZKey: {}}

	score := se.analyze(context.Background(), s, 2, -MateValue, MateValue, 0)
	if score != 0 {
		t.Errorf("analyze = %d, want 0 (flat draw) for a repeated position below the material cutoff", score)
	}
}

func TestAnalyzeIgnoresRepetitionSetWhenPositionNotPresent(t *testing.T) {
	s, cache := parseForAnalyze(t, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")

	se := New(config.DefaultSearchConfig(), eval.New(cache), cache)
	se.rootParity = piece.White
	se.repeatedPositions = map[uint64]struct{}{0xDEADBEEF: {}} // unrelated zkey

	if se.positionRepeated(s) {
		t.Errorf("positionRepeated = true, want false when the current zkey is absent from the caller-supplied set")
	}
}
