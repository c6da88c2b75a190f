package container

import (
	"fmt"

	"challenges-backend/config"
	"challenges-backend/handlers"
	"challenges-backend/models"
	"challenges-backend/registry"
	"challenges-backend/solana"
	"challenges-backend/storage"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Store    storage.Store
	Chain    *solana.Service
	Registry *registry.Client

	// Handlers
	CreateChallengeHandler *handlers.CreateActionHandler
	CreateTicTacToeHandler *handlers.CreateActionHandler
	JoinChallengeHandler   *handlers.JoinActionHandler
	JoinTicTacToeHandler   *handlers.JoinActionHandler
	GameHandler            *handlers.GameHandler
	QRCodeHandler          *handlers.QRCodeHandler
	HealthHandler          *handlers.HealthHandler
}

// NewContainer wires services and handlers from the loaded configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	chain := solana.NewService(cfg)
	reg := registry.NewClient(cfg)

	challengeFamily := handlers.ActionFamily{
		Slug:        "create-challenge",
		JoinSlug:    "join-challenge",
		Type:        models.ChallengeTypeGeneric,
		Title:       "Create a Challenge",
		Description: "Create a custom challenge with a wager, start time, and duration.",
		Label:       "Create",
		Icon:        "/name.png",
		Noun:        "challenge",
	}
	ticTacToeFamily := handlers.ActionFamily{
		Slug:        "create-tic-tac-toe",
		JoinSlug:    "join-tic-tac-toe",
		Type:        models.ChallengeTypeTicTacToe,
		Title:       "Create Tic Tac Toe Challenge",
		Description: "Create a custom Tic Tac Toe challenge with specific parameters such as wager, start time, and duration.",
		Label:       "Create",
		Icon:        "/tic-tac-toe.png",
		Noun:        "tic-tac-toe challenge",
	}
	joinChallengeFamily := handlers.ActionFamily{
		JoinSlug: "join-challenge",
		Title:    "Join Challenge",
		Label:    "Join",
		Icon:     "/join.png",
	}
	joinTicTacToeFamily := handlers.ActionFamily{
		JoinSlug: "join-tic-tac-toe",
		Title:    "Join Tic Tac Toe",
		Label:    "Join",
		Icon:     "/tic-tac-toe.png",
	}

	return &Container{
		Config:   cfg,
		Store:    store,
		Chain:    chain,
		Registry: reg,

		CreateChallengeHandler: handlers.NewCreateActionHandler(challengeFamily, chain, reg, store, cfg.BaseURL),
		CreateTicTacToeHandler: handlers.NewCreateActionHandler(ticTacToeFamily, chain, reg, store, cfg.BaseURL),
		JoinChallengeHandler:   handlers.NewJoinActionHandler(joinChallengeFamily, chain, reg, cfg.BaseURL),
		JoinTicTacToeHandler:   handlers.NewJoinActionHandler(joinTicTacToeFamily, chain, reg, cfg.BaseURL),
		GameHandler:            handlers.NewGameHandler(store),
		QRCodeHandler:          handlers.NewQRCodeHandler(cfg.BaseURL),
		HealthHandler:          handlers.NewHealthHandler(),
	}, nil
}

func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreDriver {
	case "", "memory":
		return storage.NewMemoryStore(), nil
	case "postgres":
		return storage.NewPGStore(cfg.PGDSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
