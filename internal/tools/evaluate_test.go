package tools

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhscom/calc/internal/session"
)

func callEvaluate(t *testing.T, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := NewEvaluateTool(session.Local{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	request := mcp.CallToolRequest{}
	request.Params.Name = ToolEvaluate
	request.Params.Arguments = args

	result, err := tool.Handle(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestEvaluateToolDefinition(t *testing.T) {
	tool := NewEvaluateTool(session.Local{}, nil).GetTool()
	assert.Equal(t, "calc.evaluate", tool.Name)
	assert.Contains(t, tool.InputSchema.Required, "expression")
}

func TestEvaluateToolResults(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"sum", "2+2", "4"},
		{"division", "10/4", "2.5"},
		{"percent", "5%", "0.05"},
		{"empty", "", "0"},
		{"not a number", "0/0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callEvaluate(t, map[string]any{"expression": tt.expr})
			assert.False(t, result.IsError)
			assert.Equal(t, tt.want, resultText(t, result))
		})
	}
}

func TestEvaluateToolErrors(t *testing.T) {
	tests := []struct {
		expr     string
		wantKind string
	}{
		{"1/0", "DIVISION_BY_ZERO"},
		{"a+1", "INVALID_CHARACTERS"},
		{"(1+2", "MALFORMED_EXPRESSION"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			result := callEvaluate(t, map[string]any{"expression": tt.expr})
			assert.True(t, result.IsError)
			assert.True(t, strings.HasPrefix(resultText(t, result), tt.wantKind+":"), resultText(t, result))
		})
	}
}

func TestEvaluateToolMissingArgument(t *testing.T) {
	result := callEvaluate(t, map[string]any{})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "expression parameter is required")
}

func TestNewServerRegistersTool(t *testing.T) {
	s := NewServer(session.Local{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	msg := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"calc.evaluate","arguments":{"expression":"6*7"}}}`
	resp := s.HandleMessage(context.Background(), []byte(msg))

	rpc, ok := resp.(mcp.JSONRPCResponse)
	require.True(t, ok, "expected JSON-RPC response, got %T", resp)
	result, ok := rpc.Result.(mcp.CallToolResult)
	require.True(t, ok, "expected tool result, got %T", rpc.Result)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "42", resultText(t, &result))
}
