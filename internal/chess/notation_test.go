package chess

import (
	"errors"
	"testing"
)

func TestMoveStringRoundTrip(t *testing.T) {
	// Every legal move must survive render-then-parse unchanged.
	positions := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pp2pppp/8/2ppP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
		"8/P6k/8/8/8/8/6K1/8 w - - 0 1",
	}
	for _, fen := range positions {
		b := mustParseFEN(t, fen)
		for _, m := range LegalMoves(&b) {
			got, err := ParseMove(m.String())
			if err != nil {
				t.Fatalf("ParseMove(%q): %v", m.String(), err)
			}
			if got != m {
				t.Errorf("round trip %q: got %v, want %v", m.String(), got, m)
			}
		}
	}
}

func TestParseMoveRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "e2", "e2e", "e2e9", "i2i4", "e2e4x", "e7e8k", "0000"} {
		if _, err := ParseMove(in); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) error = %v, want ErrInvalidNotation", in, err)
		}
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pp2pppp/8/2ppP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 12 42",
	}
	for _, fen := range fens {
		b := mustParseFEN(t, fen)
		if got := b.FEN(); got != fen {
			t.Errorf("FEN round trip:\n got %q\nwant %q", got, fen)
		}
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // rank too wide
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KXkq - 0 1", // bad castling flag
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0", // full-move below 1
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1", // bad piece character
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseFEN(%q) error = %v, want ErrInvalidNotation", fen, err)
		}
	}
}

func TestSAN(t *testing.T) {
	cases := []struct {
		fen  string
		move string
		want string
	}{
		{StartFEN, "e2e4", "e4"},
		{StartFEN, "g1f3", "Nf3"},
		{"rnbqkbnr/pppp1ppp/8/4p3/3P4/8/PPP1PPPP/RNBQKBNR w KQkq e6 0 2", "d4e5", "dxe5"},
		{"r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R b KQkq - 0 1", "e8c8", "O-O-O"},
		{"8/P6k/8/8/8/8/6K1/8 w - - 0 1", "a7a8q", "a8=Q"},
		// Two knights reach d2; disambiguate by file.
		{"4k3/8/8/8/8/5N2/8/1N2K3 w - - 0 1", "b1d2", "Nbd2"},
		// Rooks on same file need a rank disambiguator.
		{"4k3/8/8/7R/8/8/8/4K2R w - - 0 1", "h5h3", "R5h3"},
		// The fool's mate killer blow.
		{"rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2", "d8h4", "Qh4#"},
		{"4k3/4q3/8/8/8/8/8/4K3 b - - 0 1", "e7e4", "Qe4+"},
	}
	for _, tc := range cases {
		b := mustParseFEN(t, tc.fen)
		m := mustParseMove(t, tc.move)
		if got := SAN(&b, m); got != tc.want {
			t.Errorf("SAN(%s, %s) = %q, want %q", tc.fen, tc.move, got, tc.want)
		}
	}
}
