// Package chess implements the rules of chess: board representation,
// legal move generation and the game state machine.
package chess

import "fmt"

// Square indexes a board square, A1=0 through H8=63 (rank-major).
// NoSquare is the explicit off-board marker; coordinates are never wrapped.
type Square uint8

// NoSquare marks an absent or off-board square, e.g. no en-passant target.
const NoSquare Square = 64

// NewSquare builds a square from 0-indexed file and rank.
// Out-of-range coordinates yield NoSquare.
func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

// File returns the square's file, 0 (a) through 7 (h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the square's rank, 0 (first) through 7 (eighth).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// Valid reports whether the square is on the board.
func (sq Square) Valid() bool {
	return sq < NoSquare
}

// String returns coordinate notation, e.g. "e4", or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// ParseSquare parses coordinate notation like "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: bad square %q", ErrInvalidNotation, s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("%w: bad square %q", ErrInvalidNotation, s)
	}
	return NewSquare(file, rank), nil
}
