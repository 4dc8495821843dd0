package chess

// Movement deltas as (file, rank) offsets. Order is fixed: together with the
// A1..H8 square scan it makes move generation fully deterministic, which the
// search relies on for reproducible tie-breaks.
var (
	knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingDeltas   = [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	bishopRays   = [4][2]int{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	rookRays     = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
)

// promotionKinds is the order promotions are enumerated in.
var promotionKinds = [4]PieceKind{Queen, Rook, Bishop, Knight}

// LegalMoves generates every legal move for the side to move, in a
// deterministic order. A pseudo-legal move survives the filter iff playing
// it does not leave the mover's own king attacked.
func LegalMoves(b *Board) []Move {
	us := b.SideToMove
	pseudo := pseudoLegalMoves(b)
	legal := pseudo[:0]
	for _, m := range pseudo {
		child := b.Apply(m)
		if !child.InCheck(us) {
			legal = append(legal, m)
		}
	}
	return legal
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func HasLegalMoves(b *Board) bool {
	us := b.SideToMove
	for _, m := range pseudoLegalMoves(b) {
		child := b.Apply(m)
		if !child.InCheck(us) {
			return true
		}
	}
	return false
}

// pseudoLegalMoves enumerates moves obeying each piece's movement pattern,
// before the king-safety filter. Castling is the exception: its no-check
// conditions are inherently position-wide, so they are verified here.
func pseudoLegalMoves(b *Board) []Move {
	moves := make([]Move, 0, 48)
	us := b.SideToMove

	for from := Square(0); from < 64; from++ {
		p := b.squares[from]
		if p == NoPiece || p.Color() != us {
			continue
		}
		switch p.Kind() {
		case Pawn:
			moves = appendPawnMoves(b, from, moves)
		case Knight:
			moves = appendStepMoves(b, from, knightDeltas[:], moves)
		case Bishop:
			moves = appendSlideMoves(b, from, bishopRays[:], moves)
		case Rook:
			moves = appendSlideMoves(b, from, rookRays[:], moves)
		case Queen:
			moves = appendSlideMoves(b, from, bishopRays[:], moves)
			moves = appendSlideMoves(b, from, rookRays[:], moves)
		case King:
			moves = appendStepMoves(b, from, kingDeltas[:], moves)
			moves = appendCastlingMoves(b, from, moves)
		}
	}
	return moves
}

func appendPawnMoves(b *Board, from Square, moves []Move) []Move {
	us := b.squares[from].Color()
	dir := 1
	startRank, promoRank := 1, 7
	if us == Black {
		dir = -1
		startRank, promoRank = 6, 0
	}

	push := func(to Square) []Move {
		if to.Rank() == promoRank {
			for _, k := range promotionKinds {
				moves = append(moves, NewPromotion(from, to, k))
			}
		} else {
			moves = append(moves, NewMove(from, to))
		}
		return moves
	}

	// Forward pushes.
	one := NewSquare(from.File(), from.Rank()+dir)
	if one.Valid() && b.squares[one] == NoPiece {
		moves = push(one)
		if from.Rank() == startRank {
			two := NewSquare(from.File(), from.Rank()+2*dir)
			if b.squares[two] == NoPiece {
				moves = append(moves, NewMove(from, two))
			}
		}
	}

	// Diagonal captures, including en passant.
	for _, df := range [2]int{-1, 1} {
		to := NewSquare(from.File()+df, from.Rank()+dir)
		if !to.Valid() {
			continue
		}
		target := b.squares[to]
		if target != NoPiece && target.Color() == us.Other() {
			moves = push(to)
		} else if target == NoPiece && to == b.EnPassant {
			moves = append(moves, NewMove(from, to))
		}
	}
	return moves
}

func appendStepMoves(b *Board, from Square, deltas [][2]int, moves []Move) []Move {
	us := b.squares[from].Color()
	for _, d := range deltas {
		to := NewSquare(from.File()+d[0], from.Rank()+d[1])
		if !to.Valid() {
			continue
		}
		target := b.squares[to]
		if target == NoPiece || target.Color() != us {
			moves = append(moves, NewMove(from, to))
		}
	}
	return moves
}

func appendSlideMoves(b *Board, from Square, rays [][2]int, moves []Move) []Move {
	us := b.squares[from].Color()
	for _, d := range rays {
		file, rank := from.File(), from.Rank()
		for {
			file += d[0]
			rank += d[1]
			to := NewSquare(file, rank)
			if !to.Valid() {
				break
			}
			target := b.squares[to]
			if target == NoPiece {
				moves = append(moves, NewMove(from, to))
				continue
			}
			if target.Color() != us {
				moves = append(moves, NewMove(from, to))
			}
			break
		}
	}
	return moves
}

// appendCastlingMoves emits castling when the rights survive, the squares
// between king and rook are empty, and the king neither starts, crosses
// nor lands on an attacked square.
func appendCastlingMoves(b *Board, from Square, moves []Move) []Move {
	us := b.squares[from].Color()
	rank := 0
	kingSide, queenSide := WhiteKingSide, WhiteQueenSide
	if us == Black {
		rank = 7
		kingSide, queenSide = BlackKingSide, BlackQueenSide
	}
	if from != NewSquare(4, rank) {
		return moves
	}
	them := us.Other()

	if b.Castling&kingSide != 0 &&
		b.squares[NewSquare(5, rank)] == NoPiece &&
		b.squares[NewSquare(6, rank)] == NoPiece &&
		!b.IsAttacked(NewSquare(4, rank), them) &&
		!b.IsAttacked(NewSquare(5, rank), them) &&
		!b.IsAttacked(NewSquare(6, rank), them) {
		moves = append(moves, NewMove(from, NewSquare(6, rank)))
	}

	if b.Castling&queenSide != 0 &&
		b.squares[NewSquare(1, rank)] == NoPiece &&
		b.squares[NewSquare(2, rank)] == NoPiece &&
		b.squares[NewSquare(3, rank)] == NoPiece &&
		!b.IsAttacked(NewSquare(4, rank), them) &&
		!b.IsAttacked(NewSquare(3, rank), them) &&
		!b.IsAttacked(NewSquare(2, rank), them) {
		moves = append(moves, NewMove(from, NewSquare(2, rank)))
	}
	return moves
}

// IsAttacked reports whether any piece of color by attacks sq.
func (b *Board) IsAttacked(sq Square, by Color) bool {
	file, rank := sq.File(), sq.Rank()

	// Pawns attack one rank toward their opponent.
	pawnDir := 1
	if by == Black {
		pawnDir = -1
	}
	pawn := NewPiece(Pawn, by)
	for _, df := range [2]int{-1, 1} {
		from := NewSquare(file+df, rank-pawnDir)
		if from.Valid() && b.squares[from] == pawn {
			return true
		}
	}

	knight := NewPiece(Knight, by)
	for _, d := range knightDeltas {
		from := NewSquare(file+d[0], rank+d[1])
		if from.Valid() && b.squares[from] == knight {
			return true
		}
	}

	king := NewPiece(King, by)
	for _, d := range kingDeltas {
		from := NewSquare(file+d[0], rank+d[1])
		if from.Valid() && b.squares[from] == king {
			return true
		}
	}

	bishop, rook, queen := NewPiece(Bishop, by), NewPiece(Rook, by), NewPiece(Queen, by)
	if b.rayHits(sq, bishopRays[:], bishop, queen) {
		return true
	}
	return b.rayHits(sq, rookRays[:], rook, queen)
}

// rayHits walks each ray away from sq until a piece blocks it and reports
// whether that piece is one of the two attackers.
func (b *Board) rayHits(sq Square, rays [][2]int, attacker, alsoAttacker Piece) bool {
	for _, d := range rays {
		file, rank := sq.File(), sq.Rank()
		for {
			file += d[0]
			rank += d[1]
			from := NewSquare(file, rank)
			if !from.Valid() {
				break
			}
			p := b.squares[from]
			if p == NoPiece {
				continue
			}
			if p == attacker || p == alsoAttacker {
				return true
			}
			break
		}
	}
	return false
}
