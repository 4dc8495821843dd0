package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewBoard returns the standard initial position.
func NewBoard() Board {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		panic("chess: start position failed to parse: " + err.Error())
	}
	return b
}

// ParseFEN parses a Forsyth-Edwards record into a Board. The clock fields
// are optional, matching common truncated FEN strings.
func ParseFEN(fen string) (Board, error) {
	var b Board
	for sq := range b.squares {
		b.squares[sq] = NoPiece
	}
	b.EnPassant = NoSquare
	b.FullMoveNumber = 1

	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return Board{}, fmt.Errorf("%w: invalid FEN %q: need at least 4 fields, got %d", ErrInvalidNotation, fen, len(parts))
	}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return Board{}, fmt.Errorf("%w: invalid FEN %q: need 8 ranks, got %d", ErrInvalidNotation, fen, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			p := pieceFromFEN(c)
			if p == NoPiece {
				return Board{}, fmt.Errorf("%w: invalid FEN %q: bad piece character %q", ErrInvalidNotation, fen, c)
			}
			if file > 7 {
				return Board{}, fmt.Errorf("%w: invalid FEN %q: too many squares in rank %d", ErrInvalidNotation, fen, rank+1)
			}
			b.squares[NewSquare(file, rank)] = p
			file++
		}
		if file != 8 {
			return Board{}, fmt.Errorf("%w: invalid FEN %q: rank %d has %d squares", ErrInvalidNotation, fen, rank+1, file)
		}
	}

	switch parts[1] {
	case "w":
		b.SideToMove = White
	case "b":
		b.SideToMove = Black
	default:
		return Board{}, fmt.Errorf("%w: invalid FEN %q: bad side to move %q", ErrInvalidNotation, fen, parts[1])
	}

	if parts[2] != "-" {
		for j := 0; j < len(parts[2]); j++ {
			switch parts[2][j] {
			case 'K':
				b.Castling |= WhiteKingSide
			case 'Q':
				b.Castling |= WhiteQueenSide
			case 'k':
				b.Castling |= BlackKingSide
			case 'q':
				b.Castling |= BlackQueenSide
			default:
				return Board{}, fmt.Errorf("%w: invalid FEN %q: bad castling field %q", ErrInvalidNotation, fen, parts[2])
			}
		}
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return Board{}, fmt.Errorf("invalid FEN %q: bad en-passant square: %w", fen, err)
		}
		b.EnPassant = sq
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return Board{}, fmt.Errorf("%w: invalid FEN %q: bad half-move clock %q", ErrInvalidNotation, fen, parts[4])
		}
		b.HalfMoveClock = hmc
	}
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return Board{}, fmt.Errorf("%w: invalid FEN %q: bad full-move number %q", ErrInvalidNotation, fen, parts[5])
		}
		b.FullMoveNumber = fmn
	}

	return b, nil
}

// FEN renders the position as a full six-field Forsyth-Edwards record.
func (b *Board) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[NewSquare(file, rank)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	stm := "w"
	if b.SideToMove == Black {
		stm = "b"
	}
	fmt.Fprintf(&sb, " %s %s %s %d %d",
		stm, b.Castling, b.EnPassant, b.HalfMoveClock, b.FullMoveNumber)

	return sb.String()
}

// Validate checks board invariants that legal play preserves: exactly one
// king per side and no pawns on the back ranks.
func (b *Board) Validate() error {
	var kings [2]int
	for sq := Square(0); sq < 64; sq++ {
		p := b.squares[sq]
		if p == NoPiece {
			continue
		}
		if p.Kind() == King {
			kings[p.Color()]++
		}
		if p.Kind() == Pawn && (sq.Rank() == 0 || sq.Rank() == 7) {
			return fmt.Errorf("pawn on back rank %s", sq)
		}
	}
	if kings[White] != 1 {
		return fmt.Errorf("white has %d kings, want 1", kings[White])
	}
	if kings[Black] != 1 {
		return fmt.Errorf("black has %d kings, want 1", kings[Black])
	}
	return nil
}
