package chess

import (
	"errors"
	"testing"
)

func playMoves(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, s := range moves {
		if err := g.Apply(mustParseMove(t, s)); err != nil {
			t.Fatalf("Failed to apply %s: %v", s, err)
		}
	}
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	playMoves(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	if g.Status() != Checkmate {
		t.Fatalf("status = %s, want checkmate", g.Status())
	}
	if g.Winner() != Black {
		t.Errorf("winner = %s, want black", g.Winner())
	}
	if moves := g.LegalMoves(); len(moves) != 0 {
		t.Errorf("legal moves in checkmate = %v, want none", moves)
	}
}

func TestStalemate(t *testing.T) {
	b := mustParseFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	g, err := NewGameFrom(b)
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}

	if g.Status() != Stalemate {
		t.Fatalf("status = %s, want stalemate", g.Status())
	}
	if b.InCheck(Black) {
		t.Errorf("stalemated king must not be in check")
	}
	if moves := g.LegalMoves(); len(moves) != 0 {
		t.Errorf("legal moves in stalemate = %v, want none", moves)
	}
}

func TestDrawDetection(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		moves      []string
		wantStatus Status
		wantReason DrawReason
	}{
		{
			name:       "Insufficient material king vs king",
			fen:        "8/8/8/4k3/8/3K4/8/8 w - - 0 1",
			wantStatus: Draw,
			wantReason: InsufficientMaterial,
		},
		{
			name:       "Insufficient material king and bishop vs king",
			fen:        "8/8/8/4k3/8/3KB3/8/8 w - - 0 1",
			wantStatus: Draw,
			wantReason: InsufficientMaterial,
		},
		{
			name:       "Insufficient material king and knight vs king",
			fen:        "8/8/8/4k3/8/3KN3/8/8 w - - 0 1",
			wantStatus: Draw,
			wantReason: InsufficientMaterial,
		},
		{
			name:       "Rook endgame is not insufficient",
			fen:        "8/8/8/4k3/8/3KR3/8/8 w - - 0 1",
			wantStatus: InProgress,
		},
		{
			name:       "Fifty move rule trips at clock 100",
			fen:        "8/8/8/4k3/8/8/4K3/7R w - - 99 70",
			moves:      []string{"h1h2"},
			wantStatus: Draw,
			wantReason: FiftyMoveRule,
		},
		{
			name:       "Pawn move resets the clock",
			fen:        "8/8/8/4k3/8/4P3/4K3/7R w - - 99 70",
			moves:      []string{"e3e4"},
			wantStatus: InProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGameFrom(mustParseFEN(t, tt.fen))
			if err != nil {
				t.Fatalf("Failed to create game: %v", err)
			}
			for _, s := range tt.moves {
				if err := g.Apply(mustParseMove(t, s)); err != nil {
					t.Fatalf("Failed to apply %s: %v", s, err)
				}
			}
			if g.Status() != tt.wantStatus {
				t.Fatalf("status = %s, want %s", g.Status(), tt.wantStatus)
			}
			if tt.wantStatus == Draw && g.DrawReason() != tt.wantReason {
				t.Errorf("draw reason = %s, want %s", g.DrawReason(), tt.wantReason)
			}
		})
	}
}

func TestThreefoldRepetition(t *testing.T) {
	g := NewGame()
	// Both knights shuttle out and back twice: the starting position
	// occurs for the third time on the final move.
	playMoves(t, g,
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8",
	)

	if g.Status() != Draw {
		t.Fatalf("status = %s, want draw", g.Status())
	}
	if g.DrawReason() != ThreefoldRepetition {
		t.Errorf("draw reason = %s, want threefold repetition", g.DrawReason())
	}
}

func TestApplyRejectsIllegalMove(t *testing.T) {
	g := NewGame()

	err := g.Apply(mustParseMove(t, "e2e5"))
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("Apply(e2e5) = %v, want ErrIllegalMove", err)
	}

	// The failed apply must not have touched the game.
	if len(g.Moves()) != 0 {
		t.Errorf("illegal move was recorded: %v", g.Moves())
	}
	if g.Status() != InProgress {
		t.Errorf("status changed after illegal move: %s", g.Status())
	}
}

func TestApplyRejectsMovesAfterGameOver(t *testing.T) {
	g := NewGame()
	playMoves(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	err := g.Apply(mustParseMove(t, "a2a3"))
	if !errors.Is(err, ErrGameOver) {
		t.Fatalf("Apply after checkmate = %v, want ErrGameOver", err)
	}
}

func TestNewGameFromRejectsBrokenPositions(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"No white king", "4k3/8/8/8/8/8/8/8 w - - 0 1"},
		{"Two black kings", "4k1k1/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"Pawn on back rank", "4k3/8/8/8/8/8/8/P3K3 w - - 0 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParseFEN(t, tt.fen)
			if _, err := NewGameFrom(b); err == nil {
				t.Errorf("NewGameFrom(%q) accepted an invalid position", tt.fen)
			}
		})
	}
}

func TestGameRecordsHistory(t *testing.T) {
	g := NewGame()
	playMoves(t, g, "e2e4", "e7e5")

	moves := g.Moves()
	if len(moves) != 2 {
		t.Fatalf("recorded %d moves, want 2", len(moves))
	}
	if moves[0].String() != "e2e4" || moves[1].String() != "e7e5" {
		t.Errorf("history = %v %v, want e2e4 e7e5", moves[0], moves[1])
	}

	initial := g.InitialBoard()
	if initial.FEN() != StartFEN {
		t.Errorf("initial board drifted: %s", initial.FEN())
	}
}
