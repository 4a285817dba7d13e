package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/realm-engine/internal/turn"
)

// Turn actions beyond a free-text command.
const (
	ActionAcceptOffer = "accept_offer"
	ActionRejectOffer = "reject_offer"
)

// TurnRequest defines the request body for submitting a turn.
// Either a free-text command or a quest-offer action must be present.
type TurnRequest struct {
	GameID  uuid.UUID `json:"game_id"`
	Command string    `json:"command,omitempty"`
	Action  string    `json:"action,omitempty"`
}

type TurnHandler struct {
	processor *turn.Processor
	logger    *slog.Logger
}

func NewTurnHandler(processor *turn.Processor, logger *slog.Logger) *TurnHandler {
	return &TurnHandler{
		processor: processor,
		logger:    logger,
	}
}

// ServeHTTP handles POST /v1/turn. A turn already in flight for the
// session is rejected with 409; the client retries after the current one
// lands.
func (h *TurnHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for turn endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
		return
	}

	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid turn request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.GameID == uuid.Nil {
		writeError(w, h.logger, http.StatusBadRequest, "game_id is required")
		return
	}

	var result *turn.Result
	var err error
	switch req.Action {
	case ActionAcceptOffer:
		result, err = h.processor.AcceptQuestOffer(r.Context(), req.GameID)
	case ActionRejectOffer:
		result, err = h.processor.RejectQuestOffer(r.Context(), req.GameID)
	case "":
		if strings.TrimSpace(req.Command) == "" {
			writeError(w, h.logger, http.StatusBadRequest, "command is required")
			return
		}
		result, err = h.processor.ProcessTurn(r.Context(), req.GameID, req.Command)
	default:
		writeError(w, h.logger, http.StatusBadRequest, "Unknown action: "+req.Action)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, turn.ErrSessionNotFound):
			writeError(w, h.logger, http.StatusNotFound, "Game state not found")
		case errors.Is(err, turn.ErrTurnInFlight):
			writeError(w, h.logger, http.StatusConflict, "A turn is already being processed for this session")
		default:
			h.logger.Error("Failed to process turn", "error", err, "game_id", req.GameID)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to process turn")
		}
		return
	}

	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("Failed to encode turn response", "error", err)
	}
}
