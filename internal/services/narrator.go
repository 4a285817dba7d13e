package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jwebster45206/realm-engine/pkg/prompts"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

// Fallback narrations when the narrator cannot be reached or answers with
// something unparseable. They read as in-world events so the failure stays
// inside the fiction.
const (
	fallbackTransportNarration = "Sang Game Master terdiam sejenak, pikirannya kabur. Sesuatu yang aneh terjadi. (Error: Gagal berkomunikasi dengan server. Coba lagi nanti.)"
	fallbackBusyNarration      = "Para dewa sepertinya sedang sibuk dan membutuhkan istirahat sejenak. (Error: Terlalu banyak permintaan dalam waktu singkat. Mohon tunggu beberapa saat.)"
)

// Narrator wraps an LLMService with the contract the turn processor relies
// on: RequestTurn never fails. Any backend or parse error is converted into
// an inert delta whose narration explains the problem, so reconciling it
// yields an unchanged-except-for-log state.
type Narrator struct {
	svc    LLMService
	logger *slog.Logger
}

// NewNarrator creates a narrator around the given backend.
func NewNarrator(svc LLMService, logger *slog.Logger) *Narrator {
	return &Narrator{svc: svc, logger: logger}
}

// RequestTurn builds the prompt for the snapshot and command, queries the
// backend, and returns the resulting delta. On any failure it returns a
// synthesized no-op delta instead of an error.
func (n *Narrator) RequestTurn(ctx context.Context, gs *state.GameState, command string) *state.TurnDelta {
	messages, err := prompts.New().
		WithGameState(gs).
		WithCommand(command).
		Build()
	if err != nil {
		n.logger.Error("Failed to build narrator prompt", "error", err, "game_id", gs.ID)
		return fallbackDelta(err)
	}

	delta, err := n.svc.GenerateTurn(ctx, messages)
	if err != nil {
		n.logger.Error("Narrator turn failed", "error", err, "game_id", gs.ID)
		return fallbackDelta(err)
	}
	return delta
}

// fallbackDelta synthesizes the inert delta for a failed turn. It makes no
// state-mutating claims by construction.
func fallbackDelta(cause error) *state.TurnDelta {
	narration := fallbackTransportNarration
	if isRateLimited(cause) {
		narration = fallbackBusyNarration
	}
	return &state.TurnDelta{
		Narration:  narration,
		LogEntries: []string{"Sistem: Narator tidak merespons."},
	}
}

func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "rate limit")
}
