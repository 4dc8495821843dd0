// Package engine implements the move-search AI: a weighted position
// evaluator, negamax search with alpha-beta pruning, a concurrent
// transposition cache and a parallel root-move orchestrator.
package engine

import (
	"github.com/justinabrahms/thunderdome/internal/chess"
)

// Piece material values in centipawns, indexed by chess.PieceKind.
// The king carries no material value; exactly one per side is a board
// invariant, so it can never net out.
var pieceValue = [6]int{100, 320, 330, 500, 900, 0}

// mobilityUnit is the centipawn value of one extra legal move.
const mobilityUnit = 2

// Weights scale the evaluator's three terms. Distinct weight vectors give
// tournament engines distinct personalities while sharing one evaluator.
type Weights struct {
	Material float64 `json:"material" mapstructure:"material"`
	Position float64 `json:"position" mapstructure:"position"`
	Mobility float64 `json:"mobility" mapstructure:"mobility"`
}

// DefaultWeights is a balanced configuration: full material and positional
// terms with a light mobility preference.
func DefaultWeights() Weights {
	return Weights{Material: 1.0, Position: 1.0, Mobility: 0.5}
}

// Evaluate scores the position from the perspective of the side to move,
// in centipawns. It combines material balance, piece-square preferences
// and a legal-mobility differential, and is antisymmetric under a color
// swap: the same placement scored for the other side negates exactly.
func Evaluate(b *chess.Board, w Weights) int {
	material, position := 0, 0
	for sq := chess.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p == chess.NoPiece {
			continue
		}
		k := p.Kind()
		if p.Color() == chess.White {
			material += pieceValue[k]
			position += pieceSquare[k][int(sq)^56]
		} else {
			material -= pieceValue[k]
			position -= pieceSquare[k][sq]
		}
	}

	mobility := (mobilityCount(b, chess.White) - mobilityCount(b, chess.Black)) * mobilityUnit

	white := w.Material*float64(material) + w.Position*float64(position) + w.Mobility*float64(mobility)
	score := int(white)
	if b.SideToMove == chess.Black {
		return -score
	}
	return score
}

// mobilityCount counts c's legal moves on a copy with c to move. The
// en-passant target is cleared so the count depends only on the placement,
// keeping the evaluation a pure, antisymmetric function of the position.
func mobilityCount(b *chess.Board, c chess.Color) int {
	view := *b
	view.SideToMove = c
	view.EnPassant = chess.NoSquare
	return len(chess.LegalMoves(&view))
}

// Piece-square preference tables in centipawns, from white's point of view,
// written with rank 8 at the top. White pieces index with sq^56, black with
// sq. Standard midgame values; tuning is deliberately conservative.
var pieceSquare = [6][64]int{
	{ // pawn
		0, 0, 0, 0, 0, 0, 0, 0,
		50, 50, 50, 50, 50, 50, 50, 50,
		10, 10, 20, 30, 30, 20, 10, 10,
		5, 5, 10, 25, 25, 10, 5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, -5, -10, 0, 0, -10, -5, 5,
		5, 10, 10, -20, -20, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	{ // knight
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	{ // bishop
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	{ // rook
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, 10, 10, 10, 10, 5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		0, 0, 0, 5, 5, 0, 0, 0,
	},
	{ // queen
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	{ // king
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		20, 20, 0, 0, 0, 0, 20, 20,
		20, 30, 10, 0, 0, 10, 30, 20,
	},
}
