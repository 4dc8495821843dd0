package chess

// CastlingRights is the set of castling options still available.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// String returns the FEN castling field, e.g. "KQkq" or "-".
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSide != 0 {
		s += "K"
	}
	if cr&WhiteQueenSide != 0 {
		s += "Q"
	}
	if cr&BlackKingSide != 0 {
		s += "k"
	}
	if cr&BlackQueenSide != 0 {
		s += "q"
	}
	return s
}

// Board is a complete position: piece placement, side to move, castling
// rights, en-passant target and move counters. It is a pure value; copying
// by assignment yields an independent, interchangeable position. All
// mutating operations return a new Board and leave the receiver untouched.
type Board struct {
	squares        [64]Piece
	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square // capture target square, NoSquare if none
	HalfMoveClock  int    // plies since the last pawn move or capture
	FullMoveNumber int    // starts at 1, increments after black moves
}

// PieceAt returns the piece on sq, NoPiece if empty or off-board.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.squares[sq]
}

// KingSquare returns the square of c's king.
// Exactly one king per color is a board invariant; a missing king is a
// programming error and panics.
func (b *Board) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	for sq := Square(0); sq < 64; sq++ {
		if b.squares[sq] == king {
			return sq
		}
	}
	panic("chess: board has no " + c.String() + " king")
}

// InCheck reports whether c's king is attacked by the opposing side.
func (b *Board) InCheck(c Color) bool {
	return b.IsAttacked(b.KingSquare(c), c.Other())
}

// Apply plays m and returns the successor position. The move must come from
// LegalMoves; Apply reconstructs capture removal, en-passant capture,
// castling rook relocation and promotion from the position itself.
func (b Board) Apply(m Move) Board {
	moved := b.squares[m.From]
	captured := b.squares[m.To]
	isPawn := moved.Kind() == Pawn

	// En-passant capture: a pawn moving diagonally onto the empty target
	// square removes the pawn that just passed it.
	if isPawn && m.To == b.EnPassant && captured == NoPiece && m.From.File() != m.To.File() {
		capSq := NewSquare(m.To.File(), m.From.Rank())
		b.squares[capSq] = NoPiece
		captured = NewPiece(Pawn, moved.Color().Other())
	}

	b.squares[m.To] = moved
	b.squares[m.From] = NoPiece

	// Castling: the king travels two files, the rook jumps over it.
	if moved.Kind() == King && abs(m.To.File()-m.From.File()) == 2 {
		rank := m.From.Rank()
		if m.To.File() == 6 { // king side
			b.squares[NewSquare(5, rank)] = b.squares[NewSquare(7, rank)]
			b.squares[NewSquare(7, rank)] = NoPiece
		} else { // queen side
			b.squares[NewSquare(3, rank)] = b.squares[NewSquare(0, rank)]
			b.squares[NewSquare(0, rank)] = NoPiece
		}
	}

	if m.Promotion != NoPieceKind {
		b.squares[m.To] = NewPiece(m.Promotion, moved.Color())
	}

	b.updateCastlingRights(m)

	// A double pawn push exposes the skipped square to en passant;
	// every other move clears the target.
	b.EnPassant = NoSquare
	if isPawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		b.EnPassant = NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}

	if isPawn || captured != NoPiece {
		b.HalfMoveClock = 0
	} else {
		b.HalfMoveClock++
	}
	if b.SideToMove == Black {
		b.FullMoveNumber++
	}
	b.SideToMove = b.SideToMove.Other()

	return b
}

// updateCastlingRights drops rights when a king or rook leaves its home
// square, or when a rook is captured on one.
func (b *Board) updateCastlingRights(m Move) {
	clear := func(sq Square) {
		switch sq {
		case NewSquare(4, 0):
			b.Castling &^= WhiteKingSide | WhiteQueenSide
		case NewSquare(0, 0):
			b.Castling &^= WhiteQueenSide
		case NewSquare(7, 0):
			b.Castling &^= WhiteKingSide
		case NewSquare(4, 7):
			b.Castling &^= BlackKingSide | BlackQueenSide
		case NewSquare(0, 7):
			b.Castling &^= BlackQueenSide
		case NewSquare(7, 7):
			b.Castling &^= BlackKingSide
		}
	}
	clear(m.From)
	clear(m.To)
}

// InsufficientMaterial reports whether neither side retains enough material
// to deliver mate: only kings, kings with minor pieces that cannot force
// mate (a lone bishop, a lone knight, or two knights).
func (b *Board) InsufficientMaterial() bool {
	return b.sideCannotMate(White) && b.sideCannotMate(Black)
}

func (b *Board) sideCannotMate(c Color) bool {
	knights, bishops := 0, 0
	for sq := Square(0); sq < 64; sq++ {
		p := b.squares[sq]
		if p == NoPiece || p.Color() != c {
			continue
		}
		switch p.Kind() {
		case Pawn, Rook, Queen:
			return false
		case Knight:
			knights++
		case Bishop:
			bishops++
		}
	}
	// Bishop plus knight can force mate; two bishops can as well.
	if bishops >= 2 || (bishops >= 1 && knights >= 1) {
		return false
	}
	return knights <= 2
}

// String renders the board for logs and the CLI, white at the bottom.
func (b *Board) String() string {
	s := ""
	for rank := 7; rank >= 0; rank-- {
		s += string('1' + byte(rank))
		s += "  "
		for file := 0; file < 8; file++ {
			p := b.squares[NewSquare(file, rank)]
			if p == NoPiece {
				s += ". "
			} else {
				s += p.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n"
	return s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
