package server

import (
	"log/slog"
	"net/http"

	"github.com/vhscom/calc/internal/api"
	"github.com/vhscom/calc/internal/calc"
)

// maxBodyBytes bounds POST /evaluate bodies.
const maxBodyBytes = 64 << 10

type EvaluateHandler struct {
	log *slog.Logger
}

func NewEvaluateHandler(log *slog.Logger) *EvaluateHandler {
	return &EvaluateHandler{log: log}
}

// Evaluate handles POST /evaluate. Malformed syntax is always reported
// with its own code; whether to hide it is up to the caller.
func (h *EvaluateHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req api.EvaluateRequest
	if err := ParseJSONBody(r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid JSON", api.CodeBadRequest)
		return
	}

	res, err := calc.Evaluate(req.Expression)
	if err != nil {
		kind := calc.KindOf(err)
		h.log.Debug("evaluation failed",
			"request_id", RequestID(r.Context()),
			"kind", kind,
			"error", err,
		)
		ErrorResponse(w, http.StatusUnprocessableEntity, err.Error(), string(kind))
		return
	}

	JSONResponse(w, http.StatusOK, api.EvaluateResponse{Result: res})
}
