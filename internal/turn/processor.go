// Package turn orchestrates one request/response cycle: mark the session
// busy, ask the narrator, reconcile the delta, commit the new snapshot.
package turn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jwebster45206/realm-engine/internal/services"
	"github.com/jwebster45206/realm-engine/internal/storage"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

var (
	// ErrSessionNotFound means no snapshot exists for the session ID.
	ErrSessionNotFound = errors.New("game session not found")

	// ErrTurnInFlight means a turn is already being processed for the
	// session. One reconciliation at a time; submissions are rejected,
	// not queued.
	ErrTurnInFlight = errors.New("a turn is already in flight")
)

// Result is the outcome of a processed turn.
type Result struct {
	GameState     *state.GameState     `json:"gamestate"`
	Notifications []state.Notification `json:"notifications,omitempty"`
	LevelsGained  int                  `json:"levels_gained,omitempty"`
}

// Processor runs turns against the session store.
type Processor struct {
	storage  storage.Storage
	narrator *services.Narrator
	logger   *slog.Logger
}

// NewProcessor creates a turn processor.
func NewProcessor(storage storage.Storage, narrator *services.Narrator, logger *slog.Logger) *Processor {
	return &Processor{
		storage:  storage,
		narrator: narrator,
		logger:   logger,
	}
}

// ProcessTurn runs one turn for the session. The busy flag is committed
// before the narrator call so concurrent submissions are rejected, and the
// reconciler clears it on the snapshot it produces.
func (p *Processor) ProcessTurn(ctx context.Context, id uuid.UUID, command string) (*Result, error) {
	gs, err := p.storage.LoadGameState(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load game state: %w", err)
	}
	if gs == nil {
		return nil, ErrSessionNotFound
	}
	if gs.IsLoading {
		return nil, ErrTurnInFlight
	}

	busy := gs.Clone()
	busy.IsLoading = true
	busy.SuggestedActions = nil
	if err := p.storage.SaveGameState(ctx, id, busy); err != nil {
		return nil, fmt.Errorf("failed to mark session busy: %w", err)
	}

	// The narrator never fails; transport errors come back as an inert
	// delta with an apologetic narration.
	delta := p.narrator.RequestTurn(ctx, busy, command)

	next, notifications := state.NewReconciler(busy, delta, p.logger).Apply(command)
	levels := state.ApplyLevelUps(next)

	if err := p.storage.SaveGameState(ctx, id, next); err != nil {
		// Put the original snapshot back so the session is not stuck
		// busy until the TTL expires.
		if rbErr := p.storage.SaveGameState(ctx, id, gs); rbErr != nil {
			p.logger.Error("Failed to roll back busy session", "error", rbErr, "game_id", id)
		}
		return nil, fmt.Errorf("failed to commit turn: %w", err)
	}

	p.logger.Debug("Turn processed",
		"game_id", id,
		"command", command,
		"levels_gained", levels,
		"notifications", len(notifications))

	return &Result{
		GameState:     next,
		Notifications: notifications,
		LevelsGained:  levels,
	}, nil
}

// AcceptQuestOffer clears the pending offer and submits the canonical
// acceptance command for it.
func (p *Processor) AcceptQuestOffer(ctx context.Context, id uuid.UUID) (*Result, error) {
	return p.resolveQuestOffer(ctx, id, "Terima quest '%s'")
}

// RejectQuestOffer clears the pending offer and submits the canonical
// rejection command for it.
func (p *Processor) RejectQuestOffer(ctx context.Context, id uuid.UUID) (*Result, error) {
	return p.resolveQuestOffer(ctx, id, "Tolak quest '%s'")
}

func (p *Processor) resolveQuestOffer(ctx context.Context, id uuid.UUID, commandFormat string) (*Result, error) {
	gs, err := p.storage.LoadGameState(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load game state: %w", err)
	}
	if gs == nil {
		return nil, ErrSessionNotFound
	}
	if gs.QuestOffer == nil {
		return nil, fmt.Errorf("no quest offer is pending")
	}

	offerID := gs.QuestOffer.ID
	cleared := gs.Clone()
	cleared.QuestOffer = nil
	if err := p.storage.SaveGameState(ctx, id, cleared); err != nil {
		return nil, fmt.Errorf("failed to clear quest offer: %w", err)
	}

	return p.ProcessTurn(ctx, id, fmt.Sprintf(commandFormat, offerID))
}

// IntroCommand is the opening command submitted automatically when a new
// character enters the world.
func IntroCommand(playerName string) string {
	return fmt.Sprintf("Perkenalkan karakterku, %s, yang baru saja tiba di dunia ini. Mulai petualangan.", playerName)
}
