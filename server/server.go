// =======================
// server/server.go
// =======================

// Package server hands every connected client its own animation session.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"cubecast/session"
)

// Server streams sessions over raw TCP and, optionally, WebSocket.
type Server struct {
	cfg    session.Config
	logger *log.Logger
	active atomic.Int64
	tcp    sync.WaitGroup
	ws     sessionGate
}

// sessionGate counts running sessions. Once closed it admits no more, so
// every Add on the group happens before the Wait in closeAndWait.
type sessionGate struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
}

func (g *sessionGate) enter() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.wg.Add(1)
	return true
}

func (g *sessionGate) leave() { g.wg.Done() }

func (g *sessionGate) closeAndWait() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
	g.wg.Wait()
}

// New creates a server. A nil logger discards log output.
func New(cfg session.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{cfg: cfg, logger: logger}
}

// Active is the number of sessions currently running.
func (s *Server) Active() int { return int(s.active.Load()) }

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.logger.Printf("Server listening on %s", ln.Addr())
	return s.Serve(ctx, ln)
}

// Serve accepts connections until ctx is cancelled or the listener fails.
// Each connection gets its own session; a session that fails only closes
// its own connection. Serve closes ln and waits for running sessions
// before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer ln.Close()
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	defer s.tcp.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		peer := conn.RemoteAddr().String()
		s.logPeer(peer)

		s.tcp.Add(1)
		go func() {
			defer s.tcp.Done()
			s.handle(ctx, conn, peer)
		}()
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn, peer string) {
	defer conn.Close()
	// unblock a write stuck on a client that stopped reading
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	s.run(ctx, conn, peer)
}

func (s *Server) run(ctx context.Context, w io.Writer, peer string) {
	s.active.Add(1)
	defer s.active.Add(-1)

	start := time.Now()
	err := session.Run(ctx, w, s.cfg)
	elapsed := time.Since(start).Round(time.Millisecond)

	switch {
	case err == nil:
		s.logger.Printf("session %s finished after %s", peer, elapsed)
	case ctx.Err() != nil:
		s.logger.Printf("session %s stopped after %s", peer, elapsed)
	default:
		s.logger.Printf("session %s ended after %s: %v", peer, elapsed, err)
	}
}

// logPeer records a new client as a JSON object.
func (s *Server) logPeer(peer string) {
	j, err := json.Marshal(map[string]string{"ip": peer})
	if err != nil {
		s.logger.Printf("peer %s: %v", peer, err)
		return
	}
	s.logger.Println(string(j))
}
