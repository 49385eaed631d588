package api

import (
	"fmt"

	"github.com/vhscom/calc/internal/calc"
)

// APIError is the JSON body of an error response.
type APIError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Error codes that are not evaluation kinds.
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeInvalidToken = "INVALID_TOKEN"
)

// Error is a decoded error response. Evaluation failures unwrap to the
// matching calc sentinel, so errors.Is(err, calc.ErrDivisionByZero) holds
// for a remote division by zero.
type Error struct {
	Status  int
	Message string
	Code    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.Message, e.Code)
}

func (e *Error) Unwrap() error {
	return calc.ErrorForKind(calc.Kind(e.Code))
}

// EvaluateRequest is the request body for POST /evaluate.
type EvaluateRequest struct {
	Expression string `json:"expression"`
}

// EvaluateResponse is the response from POST /evaluate. An empty Result
// means the expression had no numeric value.
type EvaluateResponse struct {
	Result string `json:"result"`
}

// KeyFrame is a client-to-server WebSocket frame on /keypad.
type KeyFrame struct {
	Key string `json:"key"`
}

// DisplayFrame is a server-to-client WebSocket frame on /keypad.
type DisplayFrame struct {
	Display string `json:"display"`
}
