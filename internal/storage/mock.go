package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/realm-engine/pkg/state"
)

// MockStorage is an in-memory Storage for tests.
type MockStorage struct {
	mu     sync.RWMutex
	states map[uuid.UUID]*state.GameState

	// FailPing makes Ping return an error, for health-check tests.
	FailPing bool
}

var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates an empty in-memory store.
func NewMockStorage() *MockStorage {
	return &MockStorage{states: make(map[uuid.UUID]*state.GameState)}
}

func (m *MockStorage) Ping(ctx context.Context) error {
	if m.FailPing {
		return context.DeadlineExceeded
	}
	return nil
}

func (m *MockStorage) Close() error { return nil }

func (m *MockStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[id] = gs.Clone()
	return nil
}

func (m *MockStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	gs, ok := m.states[id]
	if !ok {
		return nil, nil
	}
	return gs.Clone(), nil
}

func (m *MockStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, id)
	return nil
}
