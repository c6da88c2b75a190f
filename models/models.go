package models

import (
	"time"

	"challenges-backend/config"
)

// ChallengeType distinguishes the action families that create records in the
// registry.
type ChallengeType string

const (
	ChallengeTypeGeneric   ChallengeType = "challenge"
	ChallengeTypeTicTacToe ChallengeType = "tic-tac-toe"
)

// ChallengeIntent captures a validated create request. It is immutable once
// constructed and consumed exactly once to create the registry record.
type ChallengeIntent struct {
	Name      string          `json:"challengeName"`
	Type      ChallengeType   `json:"challengeType"`
	Currency  config.Currency `json:"currency"`
	Wager     string          `json:"wagerAmount"`
	StartDate int64           `json:"startDate"` // unix milliseconds
	EndDate   int64           `json:"endDate"`   // unix milliseconds
	Cluster   config.Cluster  `json:"cluster"`
}

// ChallengeRecord is a challenge as stored by the external registry. The
// backend only reads it or triggers its creation, never mutates it.
type ChallengeRecord struct {
	ID        int64           `json:"challengeID"`
	Name      string          `json:"challengeName"`
	Type      ChallengeType   `json:"challengeType"`
	Currency  config.Currency `json:"currency"`
	Wager     string          `json:"wagerAmount"`
	Media     string          `json:"media,omitempty"`
	StartDate int64           `json:"startDate"`
	EndDate   int64           `json:"endDate"`
	Cluster   config.Cluster  `json:"cluster"`
}

// HealthResponse is the /api/health payload.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// NewHealthResponse reports a healthy service.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Message:   "challenge actions backend is running",
		Timestamp: time.Now().Unix(),
	}
}
