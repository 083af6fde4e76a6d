package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/upliftr/upliftr/internal/assistant"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPongTimeout  = 90 * time.Second
	wsPingInterval = 30 * time.Second
)

// wsClientFrame is a message from the widget to the server.
type wsClientFrame struct {
	Type string `json:"type"` // "message"
	Text string `json:"text"`
}

// wsServerFrame is a message from the server to the widget.
type wsServerFrame struct {
	Type      string              `json:"type"` // "session", "reply", "error"
	SessionID string              `json:"sessionId,omitempty"`
	Messages  []assistant.Message `json:"messages,omitempty"`
	Booked    bool                `json:"booked,omitempty"`
	BookedNow bool                `json:"bookedNow,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// handleChatSocket runs a chat session over a WebSocket connection. Each
// connection owns exactly one session; the session is removed from the
// registry when the connection closes.
func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request) {
	if s.assistant == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "chat unavailable"})
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sess := s.sessions.Create()
	defer s.sessions.Remove(sess.ID)

	log := s.log.Sub("ws")
	log.Info().Str("session", sess.ID).Str("remote", r.RemoteAddr).Msg("chat connected")
	defer log.Info().Str("session", sess.ID).Msg("chat disconnected")

	conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	})

	send := func(f wsServerFrame) error {
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		return conn.WriteJSON(f)
	}

	// Greet with the session ID and the seeded welcome message.
	if err := send(wsServerFrame{
		Type:      "session",
		SessionID: sess.ID,
		Messages:  sess.Messages(),
	}); err != nil {
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		ticker := time.NewTicker(wsPingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		var frame wsClientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Str("session", sess.ID).Msg("read error")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsPongTimeout))

		if frame.Type != "message" {
			send(wsServerFrame{Type: "error", Error: "unknown frame type"})
			continue
		}

		result, err := s.assistant.Send(ctx, sess, frame.Text)
		if err != nil {
			switch {
			case errors.Is(err, assistant.ErrEmptyMessage):
				send(wsServerFrame{Type: "error", Error: "message is empty"})
			case errors.Is(err, assistant.ErrBusy):
				// Unreachable on a single read loop, but the registry
				// session may also be driven via /api/chat.
				send(wsServerFrame{Type: "error", Error: "a reply is already in progress"})
			default:
				log.Error().Err(err).Str("session", sess.ID).Msg("chat turn failed")
				send(wsServerFrame{Type: "error", Error: "internal error"})
			}
			continue
		}

		if err := send(wsServerFrame{
			Type:      "reply",
			Messages:  result.Replies,
			Booked:    result.Booked,
			BookedNow: result.BookedNow,
		}); err != nil {
			return
		}
	}
}
