package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vhscom/calc/internal/api"
	"github.com/vhscom/calc/internal/session"
)

// frameBuffer is how many display frames may queue behind a slow client
// before new ones are dropped.
const frameBuffer = 64

// KeypadHandler serves one calculator session per WebSocket connection.
type KeypadHandler struct {
	opts session.Options
	log  *slog.Logger
}

func NewKeypadHandler(opts session.Options, log *slog.Logger) *KeypadHandler {
	opts.Logger = log
	return &KeypadHandler{opts: opts, log: log}
}

// Serve handles GET /keypad. The client sends {"key": "..."} frames and
// receives {"display": "..."} after every change, starting with "0".
func (h *KeypadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Warn("websocket accept failed", "request_id", RequestID(r.Context()), "error", err)
		return
	}
	defer c.CloseNow()

	ctx := r.Context()
	frames := make(chan string, frameBuffer)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for text := range frames {
			if err := wsjson.Write(ctx, c, api.DisplayFrame{Display: text}); err != nil {
				h.log.Debug("keypad write failed", "request_id", RequestID(ctx), "error", err)
				return
			}
		}
	}()

	sess := session.New(session.Local{}, func(text string) {
		select {
		case frames <- text:
		default:
			h.log.Warn("keypad client too slow, dropping frame", "request_id", RequestID(ctx))
		}
	}, h.opts)
	sess.Clear()

	for {
		var f api.KeyFrame
		if err := wsjson.Read(ctx, c, &f); err != nil {
			if status := websocket.CloseStatus(err); status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && !errors.Is(err, ctx.Err()) {
				h.log.Debug("keypad read failed", "request_id", RequestID(ctx), "error", err)
			}
			break
		}
		if !sess.Press(ctx, f.Key) {
			h.log.Debug("ignoring key", "request_id", RequestID(ctx), "key", f.Key)
		}
	}

	sess.Stop()
	close(frames)
	<-done
	c.Close(websocket.StatusNormalClosure, "")
}
