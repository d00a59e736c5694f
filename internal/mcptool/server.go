// Package mcptool exposes the triage engine as an MCP (Model Context
// Protocol) tool, so agents can request a review over stdio instead of
// shelling out to the CLI. It is a thin external collaborator: all the
// algorithmic work happens in internal/triage.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/entitytriage/triage/internal/config"
	"github.com/entitytriage/triage/internal/gitscope"
	"github.com/entitytriage/triage/internal/triage"
)

// Server wraps an MCP server exposing the review_diff tool.
type Server struct {
	mcpServer *server.MCPServer
	repoRoot  string
	cfg       *config.Config
}

// New creates a new MCP server rooted at repoRoot, loading its triage
// configuration (or defaults, if none is found).
func New(repoRoot string) (*Server, error) {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"triage",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{mcpServer: mcpServer, repoRoot: repoRoot, cfg: cfg}
	s.registerReviewDiffTool()
	return s, nil
}

// ServeStdio runs the server over stdio until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerReviewDiffTool() {
	tool := mcp.NewTool("review_diff",
		mcp.WithDescription("Review a git scope (commit, range, or working tree) and return risk-scored changes."),
		mcp.WithString("commit",
			mcp.Description("Review a single commit, diffed against its parent"),
		),
		mcp.WithString("from",
			mcp.Description("Start of a commit range (requires 'to')"),
		),
		mcp.WithString("to",
			mcp.Description("End of a commit range (requires 'from')"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleReviewDiff)
}

func (s *Server) handleReviewDiff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	commit, _ := req.Params.Arguments["commit"].(string)
	from, _ := req.Params.Arguments["from"].(string)
	to, _ := req.Params.Arguments["to"].(string)

	if (from == "") != (to == "") {
		return mcp.NewToolResultError("'from' and 'to' must be supplied together"), nil
	}

	scope := gitscope.Scope{Commit: commit, From: from, To: to}

	result, err := triage.Analyze(ctx, s.repoRoot, scope, triage.Options{ImpactCap: s.cfg.Impact.Cap})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(string(body)), nil
}
