package server

import (
	"log/slog"
	"net/http"

	"github.com/vhscom/calc/internal/session"
)

// Options configure the HTTP API.
type Options struct {
	// Token, when set, is required as a bearer token on /evaluate and
	// /keypad.
	Token   string
	Session session.Options
	Logger  *slog.Logger
}

func NewRouter(opts Options) *http.ServeMux {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	mux := http.NewServeMux()

	evaluateHandler := NewEvaluateHandler(log)
	keypadHandler := NewKeypadHandler(opts.Session, log)

	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return WithRequestID(WithLogging(log, RequireToken(opts.Token, h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /evaluate", wrap(evaluateHandler.Evaluate))
	mux.HandleFunc("GET /keypad", wrap(keypadHandler.Serve))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("calc API v1"))
	})

	return mux
}
