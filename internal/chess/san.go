package chess

import "strings"

// SAN renders m in standard algebraic notation relative to b, the position
// the move is played from. Used for logs and stored game records; the
// machine-exchange format remains coordinate notation (Move.String).
func SAN(b *Board, m Move) string {
	piece := b.PieceAt(m.From)
	if piece == NoPiece {
		return m.String()
	}

	var sb strings.Builder

	isCastle := piece.Kind() == King && abs(m.To.File()-m.From.File()) == 2
	isCapture := b.PieceAt(m.To) != NoPiece ||
		(piece.Kind() == Pawn && m.To == b.EnPassant && m.From.File() != m.To.File())

	switch {
	case isCastle && m.To.File() == 6:
		sb.WriteString("O-O")
	case isCastle:
		sb.WriteString("O-O-O")
	case piece.Kind() == Pawn:
		if isCapture {
			sb.WriteByte('a' + byte(m.From.File()))
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.Promotion != NoPieceKind {
			sb.WriteByte('=')
			sb.WriteByte(pieceLetter(m.Promotion))
		}
	default:
		sb.WriteByte(pieceLetter(piece.Kind()))
		sb.WriteString(disambiguation(b, m, piece))
		if isCapture {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
	}

	child := b.Apply(m)
	if child.InCheck(child.SideToMove) {
		if HasLegalMoves(&child) {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	return sb.String()
}

func pieceLetter(k PieceKind) byte {
	return "PNBRQK"[k]
}

// disambiguation returns the minimal file/rank qualifier when another piece
// of the same kind could legally reach the destination.
func disambiguation(b *Board, m Move, piece Piece) string {
	sameFile, sameRank, ambiguous := false, false, false
	for _, other := range LegalMoves(b) {
		if other.To != m.To || other.From == m.From {
			continue
		}
		if b.PieceAt(other.From) != piece {
			continue
		}
		ambiguous = true
		if other.From.File() == m.From.File() {
			sameFile = true
		}
		if other.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string([]byte{'a' + byte(m.From.File())})
	case !sameRank:
		return string([]byte{'1' + byte(m.From.Rank())})
	default:
		return m.From.String()
	}
}
