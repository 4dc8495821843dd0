// Package store persists tournament outcomes in BadgerDB: one record per
// completed game and one standing per engine configuration.
package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes. Game records and engine standings share one keyspace.
const (
	gamePrefix   = "game:"
	enginePrefix = "engine:"
)

// DefaultElo is the rating a previously unseen engine starts at.
const DefaultElo = 1500.0

// GameRecord is everything the harness persists for one completed game:
// where it started, every move played, how it ended and who was playing.
type GameRecord struct {
	ID          string    `json:"id"`
	White       string    `json:"white"` // engine config ID
	Black       string    `json:"black"` // engine config ID
	InitialFEN  string    `json:"initialFen"`
	FinalFEN    string    `json:"finalFen"`
	Moves       []string  `json:"moves"` // coordinate notation, in order
	SAN         []string  `json:"san"`   // same moves in standard algebraic notation
	Status      string    `json:"status"`
	Winner      string    `json:"winner,omitempty"` // engine config ID
	DrawReason  string    `json:"drawReason,omitempty"`
	CompletedAt time.Time `json:"completedAt"`
}

// Standing is an engine's running tournament record.
type Standing struct {
	EngineID string  `json:"engineId"`
	Elo      float64 `json:"elo"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Draws    int     `json:"draws"`
}

// Store wraps BadgerDB. Safe for concurrent use by many game runners.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // badger's own logging is noisy; callers log instead

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame persists a completed game record.
func (s *Store) SaveGame(rec *GameRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal game %s: %w", rec.ID, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(gamePrefix+rec.ID), data)
	})
}

// GetGame loads one game record by ID.
func (s *Store) GetGame(id string) (*GameRecord, error) {
	var rec GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(gamePrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("game %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListGames returns up to limit game records, most recently completed
// first; limit <= 0 means all. Keys iterate in ID order, so records are
// collected in full and sorted before the limit applies.
func (s *Store) ListGames(limit int) ([]*GameRecord, error) {
	var records []*GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec GameRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			records = append(records, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CompletedAt.After(records[j].CompletedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// GetStanding loads an engine's standing, a fresh one at DefaultElo if the
// engine has not played yet.
func (s *Store) GetStanding(engineID string) (*Standing, error) {
	standing := &Standing{EngineID: engineID, Elo: DefaultElo}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(enginePrefix + engineID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, standing)
		})
	})
	return standing, err
}

// ListStandings returns every known engine standing.
func (s *Store) ListStandings() ([]*Standing, error) {
	var standings []*Standing
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(enginePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var standing Standing
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &standing)
			})
			if err != nil {
				return err
			}
			standings = append(standings, &standing)
		}
		return nil
	})
	return standings, err
}

// UpdateStandings loads both players' standings, applies update and writes
// the results back in one transaction, so concurrent game runners never
// lose a result to interleaved read-modify-write.
func (s *Store) UpdateStandings(whiteID, blackID string, update func(white, black *Standing)) error {
	for {
		err := s.updateStandingsOnce(whiteID, blackID, update)
		if err != badger.ErrConflict {
			return err
		}
		// Two games finished against the same engine at once; retry.
	}
}

func (s *Store) updateStandingsOnce(whiteID, blackID string, update func(white, black *Standing)) error {
	return s.db.Update(func(txn *badger.Txn) error {
		load := func(engineID string) (*Standing, error) {
			standing := &Standing{EngineID: engineID, Elo: DefaultElo}
			item, err := txn.Get([]byte(enginePrefix + engineID))
			if err == badger.ErrKeyNotFound {
				return standing, nil
			}
			if err != nil {
				return nil, err
			}
			err = item.Value(func(val []byte) error {
				return json.Unmarshal(val, standing)
			})
			return standing, err
		}

		white, err := load(whiteID)
		if err != nil {
			return err
		}
		black, err := load(blackID)
		if err != nil {
			return err
		}

		update(white, black)

		for _, standing := range []*Standing{white, black} {
			data, err := json.Marshal(standing)
			if err != nil {
				return err
			}
			if err := txn.Set([]byte(enginePrefix+standing.EngineID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// ValidEngineID reports whether an engine ID is usable as a key component.
func ValidEngineID(id string) bool {
	return id != "" && !strings.ContainsAny(id, ": \t\n")
}
