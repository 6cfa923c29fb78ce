package store

import (
	"context"
	"sync"

	"github.com/chessroyale/core/chesstypes"
)

// MemoryStore is an in-process PlayerStore backed by a map, used by the
// room-service test harness and anywhere a real badger directory isn't
// wanted.
type MemoryStore struct {
	mu      sync.RWMutex
	byNick  map[string]Record
	byEmail map[string]string // email -> nick
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byNick:  make(map[string]Record),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nick, ok := s.byEmail[email]
	if !ok {
		return Record{}, ErrNotFound
	}
	return s.byNick[nick], nil
}

func (s *MemoryStore) ExistsByNick(_ context.Context, nick string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byNick[nick]
	return ok, nil
}

func (s *MemoryStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *MemoryStore) Insert(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byNick[rec.Nick] = rec
	s.byEmail[rec.Email] = rec.Nick
	return nil
}

func (s *MemoryStore) UpdateElo(_ context.Context, nick string, gameType chesstypes.GameType, elo int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byNick[nick]
	if !ok {
		return ErrNotFound
	}
	rec.Elo[gameType] = elo
	s.byNick[nick] = rec
	return nil
}
