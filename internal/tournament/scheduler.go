package tournament

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/justinabrahms/thunderdome/internal/store"
)

// Scheduler runs an endless tournament: it keeps pairing random engines
// from the roster and playing them against each other, up to Concurrency
// games at a time. Every game gets its own state machine and caches;
// nothing is shared between games but the store and the roster.
type Scheduler struct {
	Roster      []EngineConfig
	Store       *store.Store
	Hub         Broadcaster // optional
	Concurrency int
	MoveCap     int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewScheduler validates the roster and builds a scheduler.
func NewScheduler(roster []EngineConfig, st *store.Store, hub Broadcaster, concurrency int, seed int64) (*Scheduler, error) {
	if len(roster) < 2 {
		return nil, fmt.Errorf("roster needs at least 2 engines, got %d", len(roster))
	}
	seen := make(map[string]bool, len(roster))
	for _, cfg := range roster {
		if !store.ValidEngineID(cfg.ID) {
			return nil, fmt.Errorf("invalid engine ID %q", cfg.ID)
		}
		if seen[cfg.ID] {
			return nil, fmt.Errorf("duplicate engine ID %q", cfg.ID)
		}
		seen[cfg.ID] = true
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Scheduler{
		Roster:      roster,
		Store:       st,
		Hub:         hub,
		Concurrency: concurrency,
		MoveCap:     DefaultMoveCap,
		rng:         rand.New(rand.NewSource(seed)),
	}, nil
}

// Run plays games until ctx is cancelled, then waits for in-flight games
// to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	sem := make(chan struct{}, s.Concurrency)
	var wg sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		case sem <- struct{}{}:
		}

		white, black := s.pair()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			s.playAndRecord(ctx, white, black)
		}()
	}
}

// pair picks two distinct roster engines at random.
func (s *Scheduler) pair() (EngineConfig, EngineConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.rng.Intn(len(s.Roster))
	j := s.rng.Intn(len(s.Roster) - 1)
	if j >= i {
		j++
	}
	return s.Roster[i], s.Roster[j]
}

func (s *Scheduler) playAndRecord(ctx context.Context, white, black EngineConfig) {
	rec, err := PlayGame(ctx, white, black, s.MoveCap, s.Hub)
	if err != nil {
		log.Error().Err(err).
			Str("white", white.ID).
			Str("black", black.ID).
			Msg("Game failed")
		return
	}

	if err := s.Store.SaveGame(rec); err != nil {
		log.Error().Err(err).Str("gameID", rec.ID).Msg("Failed to save game record")
		return
	}

	// Abandoned games carry no rating information.
	if rec.Status == StatusAbandoned {
		return
	}

	whiteScore := Score(rec)
	err = s.Store.UpdateStandings(white.ID, black.ID, func(w, b *store.Standing) {
		w.Elo, b.Elo = UpdateElo(w.Elo, b.Elo, whiteScore)
		switch whiteScore {
		case WhiteWin:
			w.Wins++
			b.Losses++
		case BlackWin:
			w.Losses++
			b.Wins++
		default:
			w.Draws++
			b.Draws++
		}
	})
	if err != nil {
		log.Error().Err(err).Str("gameID", rec.ID).Msg("Failed to update standings")
	}
}
