// Package web exposes the tournament's results over HTTP: standings, game
// records and a live WebSocket feed. The API is read-only; games are only
// ever created by the scheduler.
package web

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/justinabrahms/thunderdome/internal/store"
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Router wires all HTTP routes, including the spectator WebSocket.
func (s *Service) Router(hub *Hub) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.HealthHandler).Methods("GET")
	r.HandleFunc("/api/standings", s.StandingsHandler).Methods("GET")
	r.HandleFunc("/api/games", s.GamesHandler).Methods("GET")
	r.HandleFunc("/api/games/{id}", s.GameHandler).Methods("GET")
	r.HandleFunc("/ws", s.WebSocketHandler(hub)).Methods("GET")
	return r
}

func (s *Service) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// StandingsHandler lists engine standings, best Elo first.
func (s *Service) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	standings, err := s.store.ListStandings()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list standings")
		http.Error(w, "Failed to list standings", http.StatusInternalServerError)
		return
	}
	sort.Slice(standings, func(i, j int) bool {
		return standings[i].Elo > standings[j].Elo
	})
	writeJSON(w, map[string]interface{}{
		"standings": standings,
		"total":     len(standings),
	})
}

// GamesHandler lists completed game records, most recent first.
func (s *Service) GamesHandler(w http.ResponseWriter, r *http.Request) {
	games, err := s.store.ListGames(100)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list games")
		http.Error(w, "Failed to list games", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{
		"games": games,
		"total": len(games),
	})
}

// GameHandler returns one game record with its full move list.
func (s *Service) GameHandler(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]
	if gameID == "" {
		http.Error(w, "Missing game ID", http.StatusBadRequest)
		return
	}

	game, err := s.store.GetGame(gameID)
	if err != nil {
		log.Error().Err(err).Str("gameID", gameID).Msg("Failed to fetch game")
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}
	writeJSON(w, game)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
