// Package tournament plays AI configurations against each other and turns
// finished games into persistent records and Elo standings.
package tournament

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/justinabrahms/thunderdome/internal/chess"
	"github.com/justinabrahms/thunderdome/internal/engine"
	"github.com/justinabrahms/thunderdome/internal/store"
)

// EngineConfig identifies one AI contestant: its evaluation weights and
// how deep and wide it searches.
type EngineConfig struct {
	ID      string         `json:"id" mapstructure:"id"`
	Weights engine.Weights `json:"weights" mapstructure:"weights"`
	Depth   int            `json:"depth" mapstructure:"depth"`
	Workers int            `json:"workers" mapstructure:"workers"`
}

// Game statuses as stored in records.
const (
	StatusCheckmate   = "checkmate"
	StatusStalemate   = "stalemate"
	StatusDraw        = "draw"
	StatusAdjudicated = "adjudicated_draw"
	StatusAbandoned   = "abandoned"
)

// DefaultMoveCap bounds runaway games; a game reaching it is adjudicated
// as a draw rather than played forever.
const DefaultMoveCap = 300

// Broadcaster receives live updates as games progress. Implementations
// must be safe for concurrent use; a nil Broadcaster disables updates.
type Broadcaster interface {
	Broadcast(gameID, event string, payload interface{})
}

// MoveUpdate is the payload broadcast after each applied move.
type MoveUpdate struct {
	Move string `json:"move"`
	SAN  string `json:"san"`
	FEN  string `json:"fen"`
	By   string `json:"by"` // engine config ID
}

// ResultUpdate is the payload broadcast when a game ends.
type ResultUpdate struct {
	Status string `json:"status"`
	Winner string `json:"winner,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// PlayGame plays one game between two engine configurations to completion
// and returns its record. Each side searches with its own fresh
// transposition cache: cached scores depend on the evaluation weights, so
// caches are never shared between differently-configured engines, and a
// fresh cache per game keeps a long-running tournament's memory bounded.
func PlayGame(ctx context.Context, white, black EngineConfig, moveCap int, hub Broadcaster) (*store.GameRecord, error) {
	if moveCap <= 0 {
		moveCap = DefaultMoveCap
	}

	g := chess.NewGame()
	rec := &store.GameRecord{
		ID:         uuid.NewString(),
		White:      white.ID,
		Black:      black.ID,
		InitialFEN: chess.StartFEN,
	}

	players := map[chess.Color]participant{
		chess.White: newParticipant(white),
		chess.Black: newParticipant(black),
	}

	for g.Status() == chess.InProgress && len(rec.Moves) < moveCap {
		if err := ctx.Err(); err != nil {
			rec.Status = StatusAbandoned
			finishRecord(rec, g)
			return rec, nil
		}

		board := g.Board()
		p := players[board.SideToMove]

		result, ok := p.orchestrator.BestMove(g, p.config.Depth, p.cache)
		if !ok {
			// Status said InProgress but search found no move; the
			// state machine and the generator disagree, which is a
			// programming error worth failing loudly over.
			return nil, fmt.Errorf("engine %s found no move in non-terminal position %s", p.config.ID, board.FEN())
		}

		san := chess.SAN(&board, result.Move)
		if err := g.Apply(result.Move); err != nil {
			return nil, fmt.Errorf("engine %s produced unplayable move %s: %w", p.config.ID, result.Move, err)
		}

		rec.Moves = append(rec.Moves, result.Move.String())
		rec.SAN = append(rec.SAN, san)

		if hub != nil {
			fen := g.Board()
			hub.Broadcast(rec.ID, "move", MoveUpdate{
				Move: result.Move.String(),
				SAN:  san,
				FEN:  fen.FEN(),
				By:   p.config.ID,
			})
		}
	}

	switch g.Status() {
	case chess.Checkmate:
		rec.Status = StatusCheckmate
		if g.Winner() == chess.White {
			rec.Winner = white.ID
		} else {
			rec.Winner = black.ID
		}
	case chess.Stalemate:
		rec.Status = StatusStalemate
	case chess.Draw:
		rec.Status = StatusDraw
		rec.DrawReason = g.DrawReason().String()
	default:
		rec.Status = StatusAdjudicated
	}
	finishRecord(rec, g)

	if hub != nil {
		hub.Broadcast(rec.ID, "game_end", ResultUpdate{
			Status: rec.Status,
			Winner: rec.Winner,
			Reason: rec.DrawReason,
		})
	}

	log.Info().
		Str("gameID", rec.ID).
		Str("white", white.ID).
		Str("black", black.ID).
		Str("status", rec.Status).
		Int("moves", len(rec.Moves)).
		Msg("Game finished")

	return rec, nil
}

type participant struct {
	config       EngineConfig
	orchestrator *engine.Orchestrator
	cache        *engine.Cache
}

func newParticipant(cfg EngineConfig) participant {
	return participant{
		config:       cfg,
		orchestrator: engine.NewOrchestrator(cfg.Weights, cfg.Workers),
		cache:        engine.NewCache(),
	}
}

func finishRecord(rec *store.GameRecord, g *chess.Game) {
	final := g.Board()
	rec.FinalFEN = final.FEN()
	rec.CompletedAt = time.Now().UTC()
}

// Score returns the game's result from white's perspective for rating
// purposes. Abandoned games score as unplayed draws.
func Score(rec *store.GameRecord) float64 {
	switch {
	case rec.Status == StatusCheckmate && rec.Winner == rec.White:
		return WhiteWin
	case rec.Status == StatusCheckmate && rec.Winner == rec.Black:
		return BlackWin
	default:
		return DrawGame
	}
}
