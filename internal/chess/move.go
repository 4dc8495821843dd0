package chess

import "fmt"

// Move is a source square, a destination square and an optional promotion
// kind. Castling and en passant are derived from the position when the move
// is applied, not stored here, so two equal Moves are always interchangeable.
type Move struct {
	From      Square
	To        Square
	Promotion PieceKind // NoPieceKind unless the move promotes a pawn
}

// NoMove is the zero-ish sentinel used where no move exists.
var NoMove = Move{From: NoSquare, To: NoSquare, Promotion: NoPieceKind}

// NewMove builds a non-promoting move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Promotion: NoPieceKind}
}

// NewPromotion builds a promoting move.
func NewPromotion(from, to Square, promo PieceKind) Move {
	return Move{From: from, To: to, Promotion: promo}
}

// String renders coordinate notation: "e2e4", or "e7e8q" for promotions.
func (m Move) String() string {
	if !m.From.Valid() || !m.To.Valid() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	switch m.Promotion {
	case Knight:
		s += "n"
	case Bishop:
		s += "b"
	case Rook:
		s += "r"
	case Queen:
		s += "q"
	}
	return s
}

// ParseMove parses coordinate notation as produced by Move.String.
// ParseMove(m.String()) == m for every well-formed move, so text is a
// faithful exchange format at the CLI and tournament boundary.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: bad move %q", ErrInvalidNotation, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	promo := NoPieceKind
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("%w: bad promotion %q", ErrInvalidNotation, s)
		}
	}

	return Move{From: from, To: to, Promotion: promo}, nil
}
