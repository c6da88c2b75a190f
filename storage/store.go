// Package storage provides the keyed stores the backend plugs in: game
// state for the tic-tac-toe example and the confirm-phase signature ledger
// that makes registry record creation idempotent.
package storage

import (
	"context"
	"errors"

	"challenges-backend/game"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: not found")

// GameStore keeps game state by game ID.
type GameStore interface {
	GetGame(ctx context.Context, id string) (*game.State, error)
	PutGame(ctx context.Context, id string, state *game.State) error
}

// SignatureStore records which broadcast signature already produced which
// challenge record, so a replayed Confirm call returns the original record
// instead of creating a duplicate.
type SignatureStore interface {
	// LookupSignature returns the challenge ID recorded for a signature,
	// or ErrNotFound.
	LookupSignature(ctx context.Context, signature string) (int64, error)
	RecordSignature(ctx context.Context, signature string, challengeID int64) error
}

// Store is the combined backend interface.
type Store interface {
	GameStore
	SignatureStore
	Close() error
}
