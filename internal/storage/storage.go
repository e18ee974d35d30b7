// Package storage persists game snapshots in BadgerDB.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/dgraph-io/badger/v4"
)

const gamePrefix = "game/"

var ErrNotFound = errors.New("game not found in storage")

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens the database in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(gamePrefix + id)
}

// SaveGame stores state under its game ID, replacing any earlier snapshot.
func (s *Storage) SaveGame(state model.GameState) error {
	if state.ID == "" {
		return errors.New("save game: empty id")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(state.ID), data)
	})
}

func (s *Storage) LoadGame(id string) (model.GameState, error) {
	var state model.GameState

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &state)
		})
	})

	return state, err
}

// ListGames returns the IDs of all stored games in key order.
func (s *Storage) ListGames() ([]string, error) {
	var ids []string
	prefix := []byte(gamePrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			ids = append(ids, string(key[len(prefix):]))
		}
		return nil
	})

	return ids, err
}

func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(gameKey(id))
	})
}
