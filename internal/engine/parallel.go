package engine

import (
	"runtime"
	"sync"

	"github.com/justinabrahms/thunderdome/internal/chess"
)

// Orchestrator fans the root's candidate moves out across a fixed-size
// worker pool. Every candidate subtree is searched to the full requested
// depth (root siblings never cut each other off), so concurrent evaluation
// scores identically to a sequential pass; the workers share one
// transposition cache and each task otherwise owns its board copy.
type Orchestrator struct {
	weights Weights
	workers int
}

// NewOrchestrator builds an orchestrator with the given evaluation weights.
// workers <= 0 selects one worker per CPU.
func NewOrchestrator(w Weights, workers int) *Orchestrator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Orchestrator{weights: w, workers: workers}
}

// BestMove scores every legal root move concurrently to the given depth and
// returns the best under the deterministic tie-break: equal scores go to
// the earlier move in generation order. The call blocks until all
// candidates are scored. On a terminal game it returns ok=false rather
// than failing.
func (o *Orchestrator) BestMove(g *chess.Game, depth int, cache *Cache) (Result, bool) {
	legal := g.LegalMoves()
	if len(legal) == 0 {
		return Result{Move: chess.NoMove, Depth: depth}, false
	}

	root := g.Board()
	scores := make([]int, len(legal))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := NewSearcher(o.weights, cache)
			for i := range jobs {
				child := root.Apply(legal[i])
				score, _ := s.negamax(child, depth-1, 1, -Infinity, Infinity)
				scores[i] = -score
			}
		}()
	}
	for i := range legal {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	best := 0
	for i := 1; i < len(legal); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}

	return Result{Move: legal[best], Score: scores[best], Depth: depth}, true
}
