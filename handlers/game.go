package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"challenges-backend/game"
	"challenges-backend/models"
	"challenges-backend/storage"
)

// GameHandler serves the tic-tac-toe example board: applying moves and
// reading positions against a pluggable keyed store.
type GameHandler struct {
	*BaseHandler
	store storage.GameStore
}

// NewGameHandler creates a game handler backed by the given store.
func NewGameHandler(store storage.GameStore) *GameHandler {
	return &GameHandler{BaseHandler: NewBaseHandler(), store: store}
}

// MoveRequest is the body of a move call.
type MoveRequest struct {
	GameID string `json:"gameId"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// MoveResponse echoes the updated position.
type MoveResponse struct {
	Status    string      `json:"status"`
	GameState *game.State `json:"gameState"`
}

// HandleMove applies a move to a game, creating the game on first touch.
// @Summary Make a tic-tac-toe move
// @Tags Game
// @Accept json
// @Produce json
// @Success 200 {object} handlers.MoveResponse
// @Failure 400 {object} models.ActionError
// @Router /api/game/move [post]
func (h *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.sendJSON(w, http.StatusMethodNotAllowed, models.ActionError{Message: "Method not allowed"})
		return
	}

	defer r.Body.Close()
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendJSON(w, http.StatusBadRequest, models.ActionError{Message: "invalid JSON request body"})
		return
	}
	if req.GameID == "" {
		h.sendJSON(w, http.StatusBadRequest, models.ActionError{Message: "gameId: missing required parameter"})
		return
	}

	state, err := h.store.GetGame(r.Context(), req.GameID)
	if errors.Is(err, storage.ErrNotFound) {
		state = game.NewState()
	} else if err != nil {
		h.sendJSON(w, http.StatusBadRequest, models.ActionError{Message: "An unknown error occurred"})
		return
	}

	if err := state.Move(req.Row, req.Col); err != nil {
		h.sendJSON(w, models.ErrorStatus(err), models.ActionError{Message: models.ErrorMessage(err)})
		return
	}

	if err := h.store.PutGame(r.Context(), req.GameID, state); err != nil {
		h.sendJSON(w, http.StatusBadRequest, models.ActionError{Message: "An unknown error occurred"})
		return
	}

	h.sendJSON(w, http.StatusOK, MoveResponse{Status: "Move successful", GameState: state})
}

// HandleState returns the current position of a game.
func (h *GameHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.sendJSON(w, http.StatusMethodNotAllowed, models.ActionError{Message: "Method not allowed"})
		return
	}

	id := r.URL.Query().Get("gameId")
	if id == "" {
		h.sendJSON(w, http.StatusBadRequest, models.ActionError{Message: "gameId: missing required parameter"})
		return
	}

	state, err := h.store.GetGame(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		h.sendJSON(w, http.StatusNotFound, models.ActionError{Message: "game not found"})
		return
	}
	if err != nil {
		h.sendJSON(w, http.StatusBadRequest, models.ActionError{Message: "An unknown error occurred"})
		return
	}
	h.sendJSON(w, http.StatusOK, state)
}
