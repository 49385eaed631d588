package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vhscom/calc/internal/calc"
	"github.com/vhscom/calc/internal/session"
)

// EvaluateTool handles expression evaluation requests
type EvaluateTool struct {
	eval session.Evaluator
	log  *slog.Logger
}

// NewEvaluateTool creates a new evaluation tool
func NewEvaluateTool(eval session.Evaluator, log *slog.Logger) *EvaluateTool {
	return &EvaluateTool{eval: eval, log: log}
}

// GetTool returns the MCP tool definition
func (t *EvaluateTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolEvaluate,
		mcp.WithDescription("Evaluate an arithmetic expression over digits, + - * / ( ) . and %. "+
			"A number followed by % is divided by 100."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression to evaluate, e.g. 10/4 or 200*5%")),
	)
}

// Handle processes the tool request
func (t *EvaluateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, ok := req.GetArguments()["expression"]; !ok {
		return mcp.NewToolResultError("expression parameter is required"), nil
	}
	expr := mcp.ParseString(req, "expression", "")

	res, err := t.eval.Evaluate(ctx, expr)
	if err != nil {
		t.log.Debug("tool evaluation failed", "expression", expr, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", calc.KindOf(err), err)), nil
	}
	if res == "" {
		res = "0"
	}
	return mcp.NewToolResultText(res), nil
}
