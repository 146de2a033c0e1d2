package handler

import (
	"encoding/json"
	"net/http"

	"github.com/statline-game/statline/internal/api/request"
	"github.com/statline-game/statline/internal/api/response"
	"github.com/statline-game/statline/internal/model"
	"github.com/statline-game/statline/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	controller *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller *game.Controller) *GameHandler {
	return &GameHandler{controller: controller}
}

// StartDaily handles POST /api/v1/games/daily
func (h *GameHandler) StartDaily(w http.ResponseWriter, r *http.Request) {
	started, err := h.controller.StartDaily(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.StartGameFromModel(started))
}

// StartRandom handles POST /api/v1/games/random
func (h *GameHandler) StartRandom(w http.ResponseWriter, r *http.Request) {
	started, err := h.controller.StartRandom(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.StartGameFromModel(started))
}

// Guess handles POST /api/v1/games/guess
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	// Reject before touching any store
	if req.SessionID == "" {
		WriteError(w, NewInvalidRequestError("missing session_id"))
		return
	}
	if req.Guess == "" {
		WriteError(w, NewInvalidRequestError("missing guess"))
		return
	}

	outcome, err := h.controller.EvaluateGuess(r.Context(), model.SessionID(req.SessionID), req.Guess)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GuessFromModel(outcome))
}

// Reveal handles POST /api/v1/games/reveal
func (h *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	var req request.RevealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.SessionID == "" {
		WriteError(w, NewInvalidRequestError("missing session_id"))
		return
	}

	identity, err := h.controller.Reveal(r.Context(), model.SessionID(req.SessionID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RevealFromModel(identity))
}

// Autocomplete handles GET /api/v1/players/autocomplete
func (h *GameHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	names, err := h.controller.AutocompleteNames(r.Context(), query)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AutocompleteResponse{Players: names})
}
