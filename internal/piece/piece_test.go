package piece

import "testing"

func TestNewAndPredicates(t *testing.T) {
	cases := []struct {
		name   string
		parity Parity
		kind   Kind
	}{
		{"white pawn", White, Pawn},
		{"black knight", Black, Knight},
		{"white king", White, King},
		{"black queen", Black, Queen},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := New(c.parity, c.kind)
			if got := s.GetKind(); got != c.kind {
				t.Errorf("GetKind() = %v, want %v", got, c.kind)
			}
			if got := s.GetParity(); got != c.parity {
				t.Errorf("GetParity() = %v, want %v", got, c.parity)
			}
			if !s.IsPiece() {
				t.Errorf("IsPiece() = false, want true")
			}
			if s.IsEmpty() {
				t.Errorf("IsEmpty() = true, want false")
			}
		})
	}
}

func TestEmptySquare(t *testing.T) {
	var s Square
	if !s.IsEmpty() {
		t.Errorf("zero value IsEmpty() = false, want true")
	}
	if s.IsPiece() {
		t.Errorf("zero value IsPiece() = true, want false")
	}
	if s.GetParity() != NoParity {
		t.Errorf("zero value GetParity() = %v, want NoParity", s.GetParity())
	}
}

func TestHasMovedFlag(t *testing.T) {
	s := New(White, Pawn)
	if s.HasMoved() {
		t.Fatalf("fresh piece HasMoved() = true, want false")
	}
	s = s.WithMoved()
	if !s.HasMoved() {
		t.Errorf("WithMoved() piece HasMoved() = false, want true")
	}
	if s.GetKind() != Pawn || s.GetParity() != White {
		t.Errorf("WithMoved() changed kind/parity: %v/%v", s.GetKind(), s.GetParity())
	}
}

func TestOriginTags(t *testing.T) {
	s := New(White, Rook).WithQueenside()
	if !s.IsQueenside() {
		t.Errorf("IsQueenside() = false after WithQueenside()")
	}
	if s.IsKingside() {
		t.Errorf("IsKingside() = true, want false")
	}

	s2 := New(White, Rook).WithKingside()
	if !s2.IsKingside() {
		t.Errorf("IsKingside() = false after WithKingside()")
	}
}

func TestSameParitySamePiece(t *testing.T) {
	a := New(White, Pawn)
	b := New(White, Knight)
	c := New(Black, Pawn)

	if !a.SameParity(b) {
		t.Errorf("SameParity(white pawn, white knight) = false, want true")
	}
	if a.SameParity(c) {
		t.Errorf("SameParity(white pawn, black pawn) = true, want false")
	}
	if !a.SamePiece(c) {
		t.Errorf("SamePiece(white pawn, black pawn) = false, want true")
	}
	if a.SamePiece(b) {
		t.Errorf("SamePiece(white pawn, white knight) = true, want false")
	}
}

func TestParityNot(t *testing.T) {
	if White.Not() != Black {
		t.Errorf("White.Not() = %v, want Black", White.Not())
	}
	if Black.Not() != White {
		t.Errorf("Black.Not() = %v, want White", Black.Not())
	}
	if Both.Not() != NoParity {
		t.Errorf("Both.Not() = %v, want NoParity", Both.Not())
	}
	if NoParity.Not() != Both {
		t.Errorf("NoParity.Not() = %v, want Both", NoParity.Not())
	}
}

func TestToLetter(t *testing.T) {
	cases := []struct {
		s    Square
		want byte
	}{
		{New(White, King), 'K'},
		{New(Black, King), 'k'},
		{New(White, Knight), 'N'},
		{New(Black, Pawn), 'p'},
		{Square(0), ' '},
	}
	for _, c := range cases {
		if got := c.s.ToLetter(); got != c.want {
			t.Errorf("ToLetter() = %q, want %q", got, c.want)
		}
	}
}
