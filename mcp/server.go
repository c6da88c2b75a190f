// Package mcp exposes the challenge registry to agent tooling over the
// Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"challenges-backend/config"
	"challenges-backend/handlers"
	"challenges-backend/models"
)

// MCPServer wraps the mcp-go server with the challenge tools.
type MCPServer struct {
	mcpServer *server.MCPServer
	registry  handlers.Registry
	baseURL   string
}

// NewMCPServer creates an MCP server exposing the challenge registry.
func NewMCPServer(registry handlers.Registry, baseURL string) *MCPServer {
	mcpServer := server.NewMCPServer(
		"Challenge Actions MCP Server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		mcpServer: mcpServer,
		registry:  registry,
		baseURL:   baseURL,
	}

	s.registerTools()

	return s
}

// GetMCPServer returns the underlying MCP server for transport setup.
func (s *MCPServer) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *MCPServer) registerTools() {
	s.registerGetChallengeTool()
	s.registerCreateChallengeTool()
	s.registerJoinLinkTool()
}

func (s *MCPServer) cluster(request mcp.CallToolRequest) (config.Cluster, error) {
	raw := request.GetString("clusterurl", string(config.DefaultCluster))
	if !config.ValidCluster(raw) {
		return "", fmt.Errorf("unsupported cluster %q", raw)
	}
	return config.Cluster(raw), nil
}

// registerGetChallengeTool creates a tool for fetching a challenge record.
func (s *MCPServer) registerGetChallengeTool() {
	tool := mcp.NewTool("get_challenge",
		mcp.WithDescription("Get a challenge record by ID"),
		mcp.WithNumber("challenge_id", mcp.Required(), mcp.Description("ID of the challenge")),
		mcp.WithString("clusterurl", mcp.Description("Cluster (devnet or mainnet, defaults to devnet)")),
	)

	s.mcpServer.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cluster, err := s.cluster(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := request.RequireFloat("challenge_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		record, err := s.registry.GetChallengeByID(ctx, cluster, int64(id))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get challenge: %v", err)), nil
		}

		raw, _ := json.MarshalIndent(record, "", "  ")
		return mcp.NewToolResultText(fmt.Sprintf("Challenge details:\n\n%s", raw)), nil
	})
}

// registerCreateChallengeTool creates a tool for creating a challenge
// record directly through the registry. Unlike the action protocol, no
// creation fee transaction is involved; this is an operator tool.
func (s *MCPServer) registerCreateChallengeTool() {
	tool := mcp.NewTool("create_challenge",
		mcp.WithDescription("Create a challenge record in the registry"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Challenge name")),
		mcp.WithString("token", mcp.Required(), mcp.Description("Wager currency: SOL, USDC, or BONK")),
		mcp.WithString("wager", mcp.Required(), mcp.Description("Wager amount as a decimal string")),
		mcp.WithNumber("start_date", mcp.Required(), mcp.Description("Start, unix milliseconds")),
		mcp.WithNumber("end_date", mcp.Required(), mcp.Description("End, unix milliseconds")),
		mcp.WithString("clusterurl", mcp.Description("Cluster (devnet or mainnet, defaults to devnet)")),
	)

	s.mcpServer.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cluster, err := s.cluster(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		token, err := request.RequireString("token")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !config.ValidCurrency(token) {
			return mcp.NewToolResultError(fmt.Sprintf("unsupported currency %q", token)), nil
		}
		wager, err := request.RequireString("wager")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		startDate, err := request.RequireFloat("start_date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		endDate, err := request.RequireFloat("end_date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		intent := models.ChallengeIntent{
			Name:      name,
			Type:      models.ChallengeTypeGeneric,
			Currency:  config.Currency(token),
			Wager:     wager,
			StartDate: int64(startDate),
			EndDate:   int64(endDate),
			Cluster:   cluster,
		}
		record, err := s.registry.CreateChallenge(ctx, cluster, intent)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create challenge: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Created challenge %d (%s)", record.ID, record.Name)), nil
	})
}

// registerJoinLinkTool creates a tool that renders the shareable join
// blink link for a challenge.
func (s *MCPServer) registerJoinLinkTool() {
	tool := mcp.NewTool("challenge_join_link",
		mcp.WithDescription("Get the shareable join blink link for a challenge"),
		mcp.WithNumber("challenge_id", mcp.Required(), mcp.Description("ID of the challenge")),
		mcp.WithString("clusterurl", mcp.Description("Cluster (devnet or mainnet, defaults to devnet)")),
	)

	s.mcpServer.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cluster, err := s.cluster(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := request.RequireFloat("challenge_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		joinURL := fmt.Sprintf("%s/api/actions/join-challenge?clusterurl=%s&challengeID=%d", s.baseURL, cluster, int64(id))
		blink := fmt.Sprintf("https://dial.to/?action=%s&cluster=%s",
			url.QueryEscape("solana-action:"+joinURL), cluster)

		return mcp.NewToolResultText(blink), nil
	})
}
