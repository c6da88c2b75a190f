package storage

import (
	"context"
	"errors"
	"testing"

	"challenges-backend/game"
)

func TestMemoryStoreGameRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.GetGame(ctx, "g1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetGame on empty store = %v, want ErrNotFound", err)
	}

	st := game.NewState()
	if err := st.Move(1, 1); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if err := store.PutGame(ctx, "g1", st); err != nil {
		t.Fatalf("PutGame failed: %v", err)
	}

	got, err := store.GetGame(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGame failed: %v", err)
	}
	if got.Board[1][1] != game.MarkX {
		t.Fatalf("stored board cell = %q, want %q", got.Board[1][1], game.MarkX)
	}
	if got.CurrentPlayer != game.MarkO {
		t.Fatalf("stored current player = %q, want %q", got.CurrentPlayer, game.MarkO)
	}
}

func TestMemoryStoreGameIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	st := game.NewState()
	if err := store.PutGame(ctx, "g1", st); err != nil {
		t.Fatalf("PutGame failed: %v", err)
	}

	// Mutating the caller's copy must not leak into the store.
	st.Board[0][0] = game.MarkX

	got, err := store.GetGame(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGame failed: %v", err)
	}
	if got.Board[0][0] != "" {
		t.Fatal("store returned aliased state")
	}
}

func TestMemoryStoreSignatures(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.LookupSignature(ctx, "sig1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LookupSignature on empty store = %v, want ErrNotFound", err)
	}

	if err := store.RecordSignature(ctx, "sig1", 42); err != nil {
		t.Fatalf("RecordSignature failed: %v", err)
	}
	id, err := store.LookupSignature(ctx, "sig1")
	if err != nil {
		t.Fatalf("LookupSignature failed: %v", err)
	}
	if id != 42 {
		t.Fatalf("LookupSignature = %d, want 42", id)
	}
}
