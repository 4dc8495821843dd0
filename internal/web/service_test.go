package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justinabrahms/thunderdome/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store, *Hub) {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)

	hub := NewHub()
	go hub.Run()

	srv := httptest.NewServer(NewService(st).Router(hub))
	t.Cleanup(func() {
		srv.Close()
		st.Close()
	})
	return srv, st, hub
}

func TestHealthEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestStandingsEndpointSortsByElo(t *testing.T) {
	srv, st, _ := newTestServer(t)

	require.NoError(t, st.UpdateStandings("strong", "weak", func(w, b *store.Standing) {
		w.Elo, b.Elo = 1600, 1400
		w.Wins, b.Losses = 1, 1
	}))

	resp, err := http.Get(srv.URL + "/api/standings")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Standings []store.Standing `json:"standings"`
		Total     int              `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 2, body.Total)
	assert.Equal(t, "strong", body.Standings[0].EngineID)
	assert.Equal(t, "weak", body.Standings[1].EngineID)
	assert.Greater(t, body.Standings[0].Elo, body.Standings[1].Elo)
}

func TestGamesEndpoints(t *testing.T) {
	srv, st, _ := newTestServer(t)

	rec := &store.GameRecord{
		ID:         "g1",
		White:      "alpha",
		Black:      "beta",
		InitialFEN: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Moves:      []string{"e2e4", "e7e5"},
		SAN:        []string{"e4", "e5"},
		Status:     "adjudicated_draw",
	}
	require.NoError(t, st.SaveGame(rec))

	resp, err := http.Get(srv.URL + "/api/games")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Games []store.GameRecord `json:"games"`
		Total int                `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "g1", list.Games[0].ID)

	resp, err = http.Get(srv.URL + "/api/games/g1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got store.GameRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, rec.Moves, got.Moves)
	assert.Equal(t, rec.SAN, got.SAN)
}

func TestGameEndpointNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/games/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
