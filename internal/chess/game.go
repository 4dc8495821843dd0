package chess

import "fmt"

// Status is the lifecycle state of a game.
type Status uint8

const (
	InProgress Status = iota
	Checkmate
	Stalemate
	Draw
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// DrawReason explains a Draw status.
type DrawReason uint8

const (
	NoDraw DrawReason = iota
	FiftyMoveRule
	ThreefoldRepetition
	InsufficientMaterial
)

func (r DrawReason) String() string {
	switch r {
	case FiftyMoveRule:
		return "fifty_move_rule"
	case ThreefoldRepetition:
		return "threefold_repetition"
	case InsufficientMaterial:
		return "insufficient_material"
	default:
		return "none"
	}
}

// Game drives a single game: it owns the current board, the move history
// and an append-only fingerprint history for repetition detection. Boards
// never point back at their past; the Game is the only owner of history.
type Game struct {
	board      Board
	initial    Board
	moves      []Move
	seen       []uint64 // fingerprints of every position reached, initial included
	status     Status
	winner     Color
	drawReason DrawReason
}

// NewGame starts a game from the standard initial position.
func NewGame() *Game {
	g, err := NewGameFrom(NewBoard())
	if err != nil {
		panic("chess: standard position rejected: " + err.Error())
	}
	return g
}

// NewGameFrom starts a game from a supplied position. The position must
// satisfy the board invariants and the game may already be terminal, e.g.
// a checkmate position loaded from FEN.
func NewGameFrom(b Board) (*Game, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid position: %w", err)
	}
	g := &Game{
		board:   b,
		initial: b,
		seen:    []uint64{b.Fingerprint()},
	}
	g.updateStatus()
	return g, nil
}

// Board returns a copy of the current position.
func (g *Game) Board() Board {
	return g.board
}

// InitialBoard returns a copy of the position the game started from.
func (g *Game) InitialBoard() Board {
	return g.initial
}

// Moves returns the moves played so far, in order.
func (g *Game) Moves() []Move {
	out := make([]Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// Status returns the game's lifecycle state.
func (g *Game) Status() Status {
	return g.status
}

// Winner returns the winning color for Checkmate games, NoColor otherwise.
func (g *Game) Winner() Color {
	if g.status != Checkmate {
		return NoColor
	}
	return g.winner
}

// DrawReason returns why a Draw game ended, NoDraw otherwise.
func (g *Game) DrawReason() DrawReason {
	return g.drawReason
}

// LegalMoves returns the legal moves in the current position, empty when
// the game is terminal.
func (g *Game) LegalMoves() []Move {
	if g.status != InProgress {
		return nil
	}
	return LegalMoves(&g.board)
}

// Apply plays m. It fails with ErrGameOver on a finished game and with
// ErrIllegalMove when m is not in the legal set; otherwise it advances the
// board, appends to history and re-evaluates the terminal status.
func (g *Game) Apply(m Move) error {
	if g.status != InProgress {
		return fmt.Errorf("%w: game ended with %s", ErrGameOver, g.status)
	}

	legal := false
	for _, lm := range LegalMoves(&g.board) {
		if lm == m {
			legal = true
			break
		}
	}
	if !legal {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}

	g.board = g.board.Apply(m)
	g.moves = append(g.moves, m)
	g.seen = append(g.seen, g.board.Fingerprint())
	g.updateStatus()
	return nil
}

// updateStatus re-evaluates terminal conditions for the current position.
// No legal moves means checkmate or stalemate; otherwise the 50-move rule,
// threefold repetition and dead material each draw the game.
func (g *Game) updateStatus() {
	if !HasLegalMoves(&g.board) {
		if g.board.InCheck(g.board.SideToMove) {
			g.status = Checkmate
			g.winner = g.board.SideToMove.Other()
		} else {
			g.status = Stalemate
		}
		return
	}

	switch {
	case g.board.HalfMoveClock >= 100:
		g.status = Draw
		g.drawReason = FiftyMoveRule
	case g.repetitions() >= 3:
		g.status = Draw
		g.drawReason = ThreefoldRepetition
	case g.board.InsufficientMaterial():
		g.status = Draw
		g.drawReason = InsufficientMaterial
	default:
		g.status = InProgress
	}
}

// repetitions counts how often the current position has occurred.
func (g *Game) repetitions() int {
	current := g.seen[len(g.seen)-1]
	n := 0
	for _, fp := range g.seen {
		if fp == current {
			n++
		}
	}
	return n
}
