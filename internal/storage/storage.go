// Package storage owns the authoritative game state snapshots. Sessions
// live in Redis; the reconciler produces new snapshots and handlers adopt
// them here atomically.
package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/realm-engine/pkg/state"
)

// Storage is the session store interface.
type Storage interface {
	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases the storage connection.
	Close() error

	// SaveGameState persists a snapshot, replacing any previous one.
	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error

	// LoadGameState returns the snapshot for a session, or nil when the
	// session does not exist.
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)

	// DeleteGameState removes a session.
	DeleteGameState(ctx context.Context, id uuid.UUID) error
}
