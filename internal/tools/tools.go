package tools

import (
	"context"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/vhscom/calc/internal/session"
)

const (
	ServerName    = "calc"
	ServerVersion = "1.0.0"
)

// Tool name prefix for all MCP tools
const ToolPrefix = "calc."

const ToolEvaluate = ToolPrefix + "evaluate"

// NewServer returns an MCP server exposing the calculator tools.
func NewServer(eval session.Evaluator, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false))

	evaluateTool := NewEvaluateTool(eval, log)
	s.AddTool(evaluateTool.GetTool(), evaluateTool.Handle)

	return s
}

// ServeStdio serves s over the given streams until ctx is done or in is
// closed.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, in, out)
}
