package session

import (
	"context"
	"sync"
	"time"

	"estoquefront/internal/domain"
)

// MemoryStore é uma implementação em memória da interface Store, usada em
// testes e em execução local sem Redis. Sessões não sobrevivem ao processo.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]domain.TokenPair
	counters map[string]memoryCounter
}

type memoryCounter struct {
	count   int64
	expires time.Time
}

// NewMemoryStore cria um novo store de sessões em memória.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]domain.TokenPair),
		counters: make(map[string]memoryCounter),
	}
}

// Set grava o par de tokens da sessão, sobrescrevendo qualquer par anterior.
func (s *MemoryStore) Set(_ context.Context, id string, pair domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = pair
	return nil
}

// Get recupera o par de tokens da sessão.
func (s *MemoryStore) Get(_ context.Context, id string) (domain.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pair, ok := s.sessions[id]
	if !ok {
		return domain.TokenPair{}, ErrSessionMiss
	}
	return pair, nil
}

// Clear remove os tokens da sessão.
func (s *MemoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Incr incrementa um contador com janela fixa.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c, ok := s.counters[key]
	if !ok || now.After(c.expires) {
		c = memoryCounter{count: 0, expires: now.Add(window)}
	}
	c.count++
	s.counters[key] = c
	return c.count, nil
}
