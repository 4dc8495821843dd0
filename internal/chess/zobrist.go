package chess

// Zobrist keys for position fingerprinting. A fixed-seed xorshift64* PRNG
// keeps the keys reproducible across runs, so fingerprints are stable and
// usable as cache keys and for repetition history.
var (
	zobristPiece      [12][64]uint64
	zobristCastling   [16]uint64
	zobristEnPassant  [8]uint64 // one per file
	zobristSideToMove uint64
)

type zobristPRNG struct {
	state uint64
}

func (z *zobristPRNG) next() uint64 {
	z.state ^= z.state >> 12
	z.state ^= z.state << 25
	z.state ^= z.state >> 27
	return z.state * 0x2545F4914F6CDD1D
}

func init() {
	rng := zobristPRNG{state: 0x6C078965B1E2D3C4}
	for p := 0; p < 12; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rng.next()
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// Fingerprint returns a deterministic hash of the gameplay-relevant fields:
// piece placement, side to move, castling rights and the en-passant target.
// Two boards with equal fingerprints transpose into the same position for
// caching and repetition purposes; the move counters are deliberately
// excluded.
func (b *Board) Fingerprint() uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		if p := b.squares[sq]; p != NoPiece {
			h ^= zobristPiece[p][sq]
		}
	}
	h ^= zobristCastling[b.Castling]
	if b.EnPassant.Valid() {
		h ^= zobristEnPassant[b.EnPassant.File()]
	}
	if b.SideToMove == Black {
		h ^= zobristSideToMove
	}
	return h
}
