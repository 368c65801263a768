package preview

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matzehuels/hexwalk/pkg/observability"
	"github.com/matzehuels/hexwalk/pkg/plot"
)

const writeWait = 5 * time.Second

// restartMessage makes the server replay the current drawing from the
// first instruction.
const restartMessage = "restart"

type wireInstruction struct {
	Op string  `json:"op"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type batchMessage struct {
	From         int               `json:"from"`
	Instructions []wireInstruction `json:"instructions"`
}

type doneMessage struct {
	Done bool `json:"done"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	hooks := observability.Preview()
	hooks.OnClient(ctx, true)
	defer hooks.OnClient(context.WithoutCancel(ctx), false)
	s.opts.Logger.Debug("preview client connected", "remote", r.RemoteAddr)

	restart := make(chan struct{}, 1)
	writeErr := make(chan error, 1)
	go func() { writeErr <- s.stream(ctx, conn, restart) }()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if string(bytes.TrimSpace(msg)) == restartMessage {
			select {
			case restart <- struct{}{}:
			default:
			}
		}
	}

	cancel()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))

	select {
	case err := <-writeErr:
		if err != nil && ctx.Err() == nil {
			s.opts.Logger.Debug("preview stream stopped", "error", err)
		}
	case <-time.After(500 * time.Millisecond):
	}
	s.opts.Logger.Debug("preview client disconnected", "remote", r.RemoteAddr)
}

// stream writes the drawing in batches, then a done message, and waits
// for a restart. Each pass picks up the drawing current at its start.
func (s *Server) stream(ctx context.Context, conn *websocket.Conn, restart <-chan struct{}) error {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

animate:
	for {
		instrs := s.Document().Instructions
		for from := 0; from < len(instrs); from += s.opts.Batch {
			to := min(from+s.opts.Batch, len(instrs))
			if err := send(conn, batchMessage{From: from, Instructions: toWire(instrs[from:to])}); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-restart:
				continue animate
			case <-ticker.C:
			}
		}

		if err := send(conn, doneMessage{Done: true}); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-restart:
		}
	}
}

func send(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

func toWire(instrs []plot.Instruction) []wireInstruction {
	out := make([]wireInstruction, len(instrs))
	for i, in := range instrs {
		out[i] = wireInstruction{Op: in.Op.String(), X: in.Point.X, Y: in.Point.Y}
	}
	return out
}
