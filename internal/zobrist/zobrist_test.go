package zobrist

import "testing"

func TestNewTableIsDeterministic(t *testing.T) {
	a := NewTable()
	b := NewTable()
	if a.Pieces != b.Pieces {
		t.Errorf("two NewTable() calls produced different piece tables; want identical (fixed seed)")
	}
	if a.Side != b.Side {
		t.Errorf("two NewTable() calls produced different side keys")
	}
}

func TestPieceKeysAreDistinct(t *testing.T) {
	tbl := NewTable()
	seen := make(map[uint64]bool)
	for kind := 1; kind <= 6; kind++ {
		for color := 0; color < 2; color++ {
			for sq := 0; sq < 64; sq++ {
				k := tbl.PieceKey(kind, color, sq)
				if seen[k] {
					t.Fatalf("duplicate piece key for kind=%d color=%d sq=%d", kind, color, sq)
				}
				seen[k] = true
			}
		}
	}
}

func TestCastlingKeyIndexedByRights(t *testing.T) {
	tbl := NewTable()
	seen := make(map[uint64]bool)
	for rights := 0; rights < 16; rights++ {
		k := tbl.CastlingKey(uint8(rights))
		if seen[k] {
			t.Errorf("duplicate castling key at rights=%d", rights)
		}
		seen[k] = true
	}
}

func TestEnPassantKeyNoneDiffersFromAnyFile(t *testing.T) {
	tbl := NewTable()
	none := tbl.EnPassantKey(-1)
	for f := 0; f < 8; f++ {
		if tbl.EnPassantKey(f) == none {
			t.Errorf("EnPassantKey(%d) collides with the no-en-passant key", f)
		}
	}
}

func TestOutOfRangeKeysAreZero(t *testing.T) {
	tbl := NewTable()
	if got := tbl.PieceKey(0, 0, 0); got != 0 {
		t.Errorf("PieceKey(None, ...) = %d, want 0", got)
	}
	if got := tbl.PieceKey(1, 0, 64); got != 0 {
		t.Errorf("PieceKey(.., sq=64) = %d, want 0", got)
	}
}
