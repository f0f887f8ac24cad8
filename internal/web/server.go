// Package web serves the browser client's websocket endpoint. It speaks a
// small JSON protocol instead of the telnet line protocol, but drives the
// same accounts and commands.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/darkfang/darkfang/internal/game"
	"github.com/gorilla/websocket"
)

type Server struct {
	addr string
	game *game.Game
	sub  game.Subscriber

	upgrader websocket.Upgrader
}

func NewServer(addr string, g *game.Game, sub game.Subscriber) *Server {
	return &Server{
		addr: addr,
		game: g,
		sub:  sub,
		upgrader: websocket.Upgrader{
			// The game client may be served from anywhere.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Start serves until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.handleWS(ctx, w, r)
	})

	srv := &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.InfoContext(ctx, "listening for websocket clients", "addr", s.addr)

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("upgrading websocket", "remote", r.RemoteAddr, "error", err)
		return
	}

	// Shutdown doesn't reach hijacked connections, so close explicitly.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	newWsSession(s, conn).run()
}
