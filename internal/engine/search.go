package engine

import (
	"sort"

	"github.com/justinabrahms/thunderdome/internal/chess"
)

const (
	// MateScore is the sentinel for checkmate, signed by who is mated.
	// Actual mate scores are offset by the ply they occur at, so nearer
	// mates score higher and searches prefer the forcing line.
	MateScore = 100000

	// DrawScore is returned for stalemates and rule draws.
	DrawScore = 0

	// Infinity bounds the alpha-beta window outside any reachable score.
	Infinity = MateScore + 1000

	// mateBound separates mate scores from evaluation scores.
	mateBound = MateScore - 1000
)

// Result is the outcome of a search: the best move (chess.NoMove when the
// position has none), its score from the searched side's perspective, and
// the depth it was computed at.
type Result struct {
	Move  chess.Move
	Score int
	Depth int
}

// HasMove reports whether the search found a playable move.
func (r Result) HasMove() bool {
	return r.Move != chess.NoMove
}

// Searcher runs negamax alpha-beta searches for one weight configuration.
// The cache is threaded in explicitly so callers control sharing; a nil
// cache disables memoization. Searchers hold no mutable state and any
// number may share one cache concurrently.
type Searcher struct {
	weights Weights
	cache   *Cache
}

// NewSearcher builds a searcher with the given evaluation weights.
func NewSearcher(w Weights, cache *Cache) *Searcher {
	return &Searcher{weights: w, cache: cache}
}

// Search evaluates b to the given depth with a full alpha-beta window and
// returns the best move and score for the side to move.
func (s *Searcher) Search(b chess.Board, depth int) Result {
	score, move := s.negamax(b, depth, 0, -Infinity, Infinity)
	return Result{Move: move, Score: score, Depth: depth}
}

// negamax is a minimax search in negamax form: one recursion serves both
// players by negating the child's score and swapping the window. Alpha-beta
// cutoffs are exact given the fixed move ordering; ties between equal
// scores go to the earlier move in ordering, which keeps results
// deterministic for identical inputs.
func (s *Searcher) negamax(b chess.Board, depth, ply, alpha, beta int) (int, chess.Move) {
	legal := chess.LegalMoves(&b)
	if len(legal) == 0 {
		if b.InCheck(b.SideToMove) {
			return -(MateScore - ply), chess.NoMove
		}
		return DrawScore, chess.NoMove
	}
	if b.HalfMoveClock >= 100 || b.InsufficientMaterial() {
		return DrawScore, chess.NoMove
	}
	if depth <= 0 {
		return Evaluate(&b, s.weights), chess.NoMove
	}

	// Hits are restricted to the exact depth: a deeper entry holds the true
	// value of a different-horizon search, and serving it would make the
	// result depend on which worker populated the cache first.
	fingerprint := b.Fingerprint()
	if s.cache != nil {
		if e, ok := s.cache.Get(fingerprint); ok && e.Depth == depth {
			return fromCacheScore(e.Score, ply), e.Move
		}
	}

	orderMoves(&b, legal)

	alphaOrig := alpha
	best := -Infinity
	bestMove := chess.NoMove
	for _, m := range legal {
		child := b.Apply(m)
		score, _ := s.negamax(child, depth-1, ply+1, -beta, -alpha)
		score = -score

		if score > best {
			best = score
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}

	// Only scores settled inside the window are exact; bounded results
	// from a cutoff would poison other subtrees, so they are not cached.
	if s.cache != nil && best > alphaOrig && best < beta {
		s.cache.Put(fingerprint, Entry{
			Depth: depth,
			Score: toCacheScore(best, ply),
			Move:  bestMove,
		})
	}

	return best, bestMove
}

// Mate scores depend on the ply a node sits at, but cache entries are keyed
// by position alone. Stored mate scores are therefore normalized to
// mate-distance-from-this-node and re-offset on retrieval.
func toCacheScore(score, ply int) int {
	if score > mateBound {
		return score + ply
	}
	if score < -mateBound {
		return score - ply
	}
	return score
}

func fromCacheScore(score, ply int) int {
	if score > mateBound {
		return score - ply
	}
	if score < -mateBound {
		return score + ply
	}
	return score
}

// orderMoves sorts captures first (most valuable victim, least valuable
// attacker), then checking moves, then the rest. Better ordering tightens
// the window earlier and prunes more; the sort is stable so equal keys
// keep their generation order.
func orderMoves(b *chess.Board, moves []chess.Move) {
	type scored struct {
		move chess.Move
		key  int
	}
	ranked := make([]scored, len(moves))
	for i, m := range moves {
		ranked[i] = scored{move: m, key: orderKey(b, m)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].key > ranked[j].key
	})
	for i := range ranked {
		moves[i] = ranked[i].move
	}
}

func orderKey(b *chess.Board, m chess.Move) int {
	attacker := b.PieceAt(m.From)
	victim := b.PieceAt(m.To)

	// En passant captures land on an empty square.
	if victim == chess.NoPiece && attacker.Kind() == chess.Pawn &&
		m.To == b.EnPassant && m.From.File() != m.To.File() {
		victim = chess.NewPiece(chess.Pawn, attacker.Color().Other())
	}

	if victim != chess.NoPiece {
		return 2_000_000 + 10*pieceValue[victim.Kind()] - pieceValue[attacker.Kind()]
	}

	child := b.Apply(m)
	if child.InCheck(child.SideToMove) {
		return 1_000_000
	}
	return 0
}
