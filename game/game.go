// Package game holds the tic-tac-toe board logic backing the game action
// family. State is a value owned by whichever keyed store the caller plugs
// in; this package never stores anything itself.
package game

import (
	"challenges-backend/models"
)

// Marks placed on the board.
const (
	MarkX = "X"
	MarkO = "O"
)

// Status is the tagged phase of a game.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
)

// State is a full game position. Winner is set only when Status is won.
type State struct {
	Board         [3][3]string `json:"board"`
	CurrentPlayer string       `json:"currentPlayer"`
	Status        Status       `json:"status"`
	Winner        string       `json:"winner,omitempty"`
}

// NewState starts a fresh game with X to move.
func NewState() *State {
	return &State{CurrentPlayer: MarkX, Status: StatusInProgress}
}

// Move places the current player's mark at (row, col) and advances the game:
// win and draw are detected, otherwise the turn passes. Moves into finished
// games, out-of-range cells, or occupied cells are rejected.
func (s *State) Move(row, col int) error {
	if s.Status != StatusInProgress {
		return models.NewValidationError("move", "game is already over")
	}
	if row < 0 || row > 2 || col < 0 || col > 2 {
		return models.NewValidationError("move", "cell out of range")
	}
	if s.Board[row][col] != "" {
		return models.NewValidationError("move", "cell is already taken")
	}

	s.Board[row][col] = s.CurrentPlayer

	switch {
	case checkWin(s.Board, s.CurrentPlayer):
		s.Status = StatusWon
		s.Winner = s.CurrentPlayer
	case isDraw(s.Board):
		s.Status = StatusDraw
	default:
		if s.CurrentPlayer == MarkX {
			s.CurrentPlayer = MarkO
		} else {
			s.CurrentPlayer = MarkX
		}
	}
	return nil
}

func checkWin(board [3][3]string, player string) bool {
	for i := 0; i < 3; i++ {
		if board[i][0] == player && board[i][1] == player && board[i][2] == player {
			return true
		}
		if board[0][i] == player && board[1][i] == player && board[2][i] == player {
			return true
		}
	}
	if board[0][0] == player && board[1][1] == player && board[2][2] == player {
		return true
	}
	return board[0][2] == player && board[1][1] == player && board[2][0] == player
}

func isDraw(board [3][3]string) bool {
	for _, row := range board {
		for _, cell := range row {
			if cell == "" {
				return false
			}
		}
	}
	return true
}
