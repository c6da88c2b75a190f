package main

import (
	"log"
	"net/http"

	"challenges-backend/config"
	"challenges-backend/container"
	"challenges-backend/metrics"
	"challenges-backend/middleware"

	_ "challenges-backend/docs"
)

// @title Challenge Actions Backend
// @version 1.0
// @description Solana Actions backend for wagered challenges
// @BasePath /
func main() {
	cfg := config.Load()

	c, err := container.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	defer c.Store.Close()

	mux := http.NewServeMux()

	handler := middleware.Recovery(
		middleware.Logging(
			middleware.ActionHeaders(
				middleware.Timeout(cfg.RequestTimeout)(
					setupRoutes(mux, c),
				),
			),
		),
	)

	log.Println("Server starting on :" + cfg.Port)
	log.Println("Action endpoints at: " + cfg.BaseURL + "/api/actions/")
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}

func setupRoutes(mux *http.ServeMux, c *container.Container) http.Handler {
	// Health endpoint
	mux.HandleFunc("/api/health", c.HealthHandler.HandleHealth)

	// Challenge action family
	mux.HandleFunc("/api/actions/create-challenge", c.CreateChallengeHandler.Handle)
	mux.HandleFunc("/api/actions/create-challenge/next-action", c.CreateChallengeHandler.HandleNextAction)
	mux.HandleFunc("/api/actions/join-challenge", c.JoinChallengeHandler.Handle)

	// Tic-tac-toe action family
	mux.HandleFunc("/api/actions/create-tic-tac-toe", c.CreateTicTacToeHandler.Handle)
	mux.HandleFunc("/api/actions/create-tic-tac-toe/next-action", c.CreateTicTacToeHandler.HandleNextAction)
	mux.HandleFunc("/api/actions/join-tic-tac-toe", c.JoinTicTacToeHandler.Handle)

	// Game example endpoints
	mux.HandleFunc("/api/game/move", c.GameHandler.HandleMove)
	mux.HandleFunc("/api/game", c.GameHandler.HandleState)

	// QR code endpoint
	mux.HandleFunc("/api/qrcode", c.QRCodeHandler.HandleGenerateQRCode)

	// Prometheus scrape endpoint
	mux.Handle("/metrics", metrics.Handler())

	return mux
}
