package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ronincompetition/ronin/internal/model"
)

// Memory is a process-local Repository for tests and single-instance
// deployments without Redis. TTLs are honored lazily on read.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value   any
	expires time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) GetRoster(ctx context.Context) ([]model.Athlete, error) {
	if v, ok := m.get(rosterKey); ok {
		return v.([]model.Athlete), nil
	}
	return nil, nil
}

func (m *Memory) SetRoster(ctx context.Context, roster []model.Athlete, ttl time.Duration) error {
	m.set(rosterKey, roster, ttl)
	return nil
}

func (m *Memory) GetBouts(ctx context.Context, kind ListKind, athleteID model.AthleteID) ([]model.Bout, error) {
	if v, ok := m.get(boutsKey(kind, athleteID)); ok {
		return v.([]model.Bout), nil
	}
	return nil, nil
}

func (m *Memory) SetBouts(ctx context.Context, kind ListKind, athleteID model.AthleteID, bouts []model.Bout, ttl time.Duration) error {
	m.set(boutsKey(kind, athleteID), bouts, ttl)
	return nil
}

func (m *Memory) InvalidateBouts(ctx context.Context, athleteIDs ...model.AthleteID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range athleteIDs {
		delete(m.entries, boutsKey(ListPending, id))
		delete(m.entries, boutsKey(ListIncomplete, id))
	}
	return nil
}

func (m *Memory) get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		delete(m.entries, key)
		return nil, false
	}
	return e.value, true
}

func (m *Memory) set(key string, value any, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = time.Now().Add(ttl)
	}
	m.entries[key] = e
}
