package api

import (
	"context"
	"net/http"
)

// Evaluate asks the server to evaluate expr. It satisfies the session
// package's Evaluator interface.
func (c *Client) Evaluate(ctx context.Context, expr string) (string, error) {
	var out EvaluateResponse
	if err := c.do(ctx, http.MethodPost, "/evaluate", EvaluateRequest{Expression: expr}, &out); err != nil {
		return "", err
	}
	return out.Result, nil
}

// Health checks that the server is reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}
