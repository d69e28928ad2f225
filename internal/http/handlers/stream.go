package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/trivia-admin-service/internal/ingest"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// StreamMessage is one frame on a run's progress stream.
type StreamMessage struct {
	Type     string           `json:"type"`
	Progress *ingest.Progress `json:"progress,omitempty"`
	Run      *ingest.View     `json:"run,omitempty"`
}

// StreamRun upgrades to a websocket and pushes the run's progress. A
// snapshot is sent on connect and after every finished phase.
func (h *Handler) StreamRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.run(w, r)
	if !ok {
		return
	}
	logger := logging.With(loggerFromContext(r, h.logger), logging.FieldRunID, run.ID())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logger, "stream upgrade failed", logging.FieldError, err)
		return
	}
	defer conn.Close()

	updates, cancel := run.Subscribe()
	defer cancel()

	send := func(msg StreamMessage) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteJSON(msg); err != nil {
			logging.Debug(logger, "stream write failed", logging.FieldError, err)
			return false
		}
		return true
	}

	snapshot := run.Snapshot()
	if !send(StreamMessage{Type: "snapshot", Run: &snapshot}) {
		return
	}

	// The client never sends data; reading keeps pongs flowing and notices
	// a closed connection.
	closed := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case p, ok := <-updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "run discarded"),
					time.Now().Add(streamWriteWait))
				return
			}
			if !send(StreamMessage{Type: "progress", Progress: &p}) {
				return
			}
			if p.Done {
				snapshot := run.Snapshot()
				if !send(StreamMessage{Type: "snapshot", Run: &snapshot}) {
					return
				}
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
