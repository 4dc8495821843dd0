package chess

import "errors"

// Recoverable error kinds returned to callers. All are checked with errors.Is.
var (
	// ErrIllegalMove means the move is not in the legal set for the
	// current position. The caller should re-prompt or re-search.
	ErrIllegalMove = errors.New("illegal move")

	// ErrGameOver means a move was applied to a finished game.
	ErrGameOver = errors.New("game is over")

	// ErrInvalidNotation means a move string does not parse.
	ErrInvalidNotation = errors.New("invalid notation")
)
