package site

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docpage/internal/interact"
)

const writeWait = 10 * time.Second

// socketOutbox serializes commands onto a websocket connection.
type socketOutbox struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (o *socketOutbox) Send(cmd interact.Command) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return o.conn.WriteJSON(cmd)
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	page, ok := s.hub.Claim(r.URL.Query().Get("session"))
	if !ok {
		http.Error(w, "unknown or expired session", http.StatusNotFound)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	sess := interact.NewSession(page, &socketOutbox{conn: conn}, s.sessionOptions())
	sess.Start(ctx)
	defer func() {
		cancel()
		sess.Close()
	}()

	log := s.logger.With(zap.String("slug", page.Slug))
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("websocket read", zap.Error(err))
			}
			return
		}

		var ev interact.Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			log.Debug("invalid event", zap.Error(err))
			continue
		}
		if err := sess.Handle(ctx, ev); err != nil {
			log.Debug("event rejected", zap.String("type", ev.Type), zap.Error(err))
		}
	}
}
