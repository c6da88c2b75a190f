package main

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"challenges-backend/config"
	"challenges-backend/mcp"
	"challenges-backend/registry"
)

func main() {
	cfg := config.Load()

	reg := registry.NewClient(cfg)
	mcpServer := mcp.NewMCPServer(reg, cfg.BaseURL)

	log.Println("Challenge Actions MCP server starting")

	// Serve over stdio transport
	if err := server.ServeStdio(mcpServer.GetMCPServer()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
