// =======================
// server/websocket.go
// =======================

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // any origin may watch
	},
}

const closeGrace = time.Second

// messageWriter sends every Write as one text message.
type messageWriter struct{ conn *websocket.Conn }

func (m messageWriter) Write(p []byte) (int, error) {
	if err := m.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WebSocketHandler upgrades each request and streams a session over it.
// The session stops when the client goes away or the request context ends.
// Once ServeWebSocket has returned, requests are refused with 503.
func (s *Server) WebSocketHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.ws.enter() {
			http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
			return
		}
		defer s.ws.leave()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Printf("websocket upgrade from %s: %v", r.RemoteAddr, err)
			return
		}
		defer conn.Close()

		peer := r.RemoteAddr
		s.logPeer(peer)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Reads only matter for close frames and disconnects.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		s.run(ctx, messageWriter{conn}, peer)

		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGrace))
	})
}

// ServeWebSocket serves WebSocket sessions on ln until ctx is cancelled.
func (s *Server) ServeWebSocket(ctx context.Context, ln net.Listener) error {
	if err := s.cfg.Validate(); err != nil {
		ln.Close()
		return err
	}

	hs := &http.Server{
		Handler:           s.WebSocketHandler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	stop := context.AfterFunc(ctx, func() { hs.Close() })
	defer stop()

	err := hs.Serve(ln)
	s.ws.closeAndWait()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// ListenAndServeWebSocket listens on addr and calls ServeWebSocket.
func (s *Server) ListenAndServeWebSocket(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.logger.Printf("WebSocket server listening on ws://%s", ln.Addr())
	return s.ServeWebSocket(ctx, ln)
}
