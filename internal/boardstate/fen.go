package boardstate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mgrdich/chesscore/internal/bitboard"
	"github.com/Mgrdich/chesscore/internal/piece"
	"github.com/Mgrdich/chesscore/internal/zobrist"
)

// ParseFEN builds a State from a FEN string. Unlike a strict reader, it
// tolerates a FEN missing its halfmove-clock and fullmove-number fields
// (defaulting them to 0 and 1 respectively, per spec.md §6) as long as the
// first four fields — placement, active color, castling availability, and
// en-passant target — are present.
func ParseFEN(fen string, zt *zobrist.Table, cache *TranspositionCache) (*State, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return nil, fmt.Errorf("boardstate: fen: need at least 4 fields, got %d", len(fields))
	}

	var board Board
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("boardstate: fen: expected 8 ranks, got %d", len(ranks))
	}
	for r, rankStr := range ranks {
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file > 7 {
				return nil, fmt.Errorf("boardstate: fen: rank %d overflows the board", r)
			}
			sq, err := squareFromLetter(byte(ch))
			if err != nil {
				return nil, err
			}
			idx := NewSq(file, r)
			if idx == NoSq {
				return nil, fmt.Errorf("boardstate: fen: bad square at rank %d file %d", r, file)
			}
			board.Squares[idx] = sq
			file++
		}
	}
	tagRookOrigins(&board)

	var turn piece.Parity
	switch fields[1] {
	case "w":
		turn = piece.White
	case "b":
		turn = piece.Black
	default:
		return nil, fmt.Errorf("boardstate: fen: bad active color %q", fields[1])
	}

	var castleRights uint8
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				castleRights |= CastleWhiteKing
			case 'Q':
				castleRights |= CastleWhiteQueen
			case 'k':
				castleRights |= CastleBlackKing
			case 'q':
				castleRights |= CastleBlackQueen
			default:
				return nil, fmt.Errorf("boardstate: fen: bad castling letter %q", ch)
			}
		}
	}

	var enPassant bitboard.Mask
	if fields[3] != "-" {
		sq, err := squareFromAlgebraic(fields[3])
		if err != nil {
			return nil, err
		}
		enPassant = sq.Mask()
	}

	halfmove, fullmove := 0, 1
	if len(fields) >= 5 {
		v, err := strconv.Atoi(fields[4])
		if err == nil {
			halfmove = v
		}
	}
	if len(fields) >= 6 {
		v, err := strconv.Atoi(fields[5])
		if err == nil && v > 0 {
			fullmove = v
		}
	}

	return NewState(board, turn, castleRights, enPassant, halfmove, fullmove, zt, cache), nil
}

// tagRookOrigins marks any rook standing on a corner square with the
// matching origin tag, so castling-rights bookkeeping in Make can tell
// which side's rook moved or was captured.
func tagRookOrigins(b *Board) {
	corners := []struct {
		sq   Sq
		side func(piece.Square) piece.Square
	}{
		{NewSq(0, 0), piece.Square.WithQueenside},
		{NewSq(7, 0), piece.Square.WithKingside},
		{NewSq(0, 7), piece.Square.WithQueenside},
		{NewSq(7, 7), piece.Square.WithKingside},
	}
	for _, c := range corners {
		occ := b.Squares[c.sq]
		if occ.IsRook() {
			b.Squares[c.sq] = c.side(occ)
		}
	}
}

func squareFromLetter(ch byte) (piece.Square, error) {
	var kind piece.Kind
	switch ch | 0x20 { // lowercase
	case 'k':
		kind = piece.King
	case 'q':
		kind = piece.Queen
	case 'r':
		kind = piece.Rook
	case 'b':
		kind = piece.Bishop
	case 'n':
		kind = piece.Knight
	case 'p':
		kind = piece.Pawn
	default:
		return 0, fmt.Errorf("boardstate: fen: bad piece letter %q", ch)
	}
	parity := piece.Black
	if ch >= 'A' && ch <= 'Z' {
		parity = piece.White
	}
	return piece.New(parity, kind), nil
}

func squareFromAlgebraic(s string) (Sq, error) {
	if len(s) != 2 {
		return NoSq, fmt.Errorf("boardstate: fen: bad algebraic square %q", s)
	}
	file := int(s[0] - 'a')
	rank := rankFromAlgebraic(int(s[1] - '0'))
	sq := NewSq(file, rank)
	if sq == NoSq {
		return NoSq, fmt.Errorf("boardstate: fen: bad algebraic square %q", s)
	}
	return sq, nil
}

// ToFEN serializes s back to FEN, always writing all six fields.
func (s *State) ToFEN() string {
	var b strings.Builder
	for r := 0; r < 8; r++ {
		empty := 0
		for f := 0; f < 8; f++ {
			sq := s.Board.Squares[NewSq(f, r)]
			if sq.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte('0' + byte(empty))
				empty = 0
			}
			b.WriteByte(sq.ToLetter())
		}
		if empty > 0 {
			b.WriteByte('0' + byte(empty))
		}
		if r != 7 {
			b.WriteByte('/')
		}
	}

	b.WriteByte(' ')
	if s.Turn == piece.White {
		b.WriteByte('w')
	} else {
		b.WriteByte('b')
	}

	b.WriteByte(' ')
	if s.Info.AllowedCastles == 0 {
		b.WriteByte('-')
	} else {
		if s.Info.AllowedCastles&CastleWhiteKing != 0 {
			b.WriteByte('K')
		}
		if s.Info.AllowedCastles&CastleWhiteQueen != 0 {
			b.WriteByte('Q')
		}
		if s.Info.AllowedCastles&CastleBlackKing != 0 {
			b.WriteByte('k')
		}
		if s.Info.AllowedCastles&CastleBlackQueen != 0 {
			b.WriteByte('q')
		}
	}

	b.WriteByte(' ')
	if s.Info.EnPassantMask == bitboard.Empty {
		b.WriteByte('-')
	} else {
		b.WriteString(Sq(s.Info.EnPassantMask.AsIndex()).String())
	}

	fmt.Fprintf(&b, " %d %d", s.Info.HalfmoveClock, s.Info.FullmoveNumber)
	return b.String()
}
