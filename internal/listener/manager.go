// Package listener accepts telnet and ssh connections and hands each one to
// the session protocol.
package listener

import (
	"context"
	"io"
	"log/slog"

	"github.com/darkfang/darkfang/internal/session"
)

// ConnectionManager is the junction between transports and sessions. Every
// listener delivers accepted connections here.
type ConnectionManager struct {
	sessions *session.Manager
}

func NewConnectionManager(sessions *session.Manager) *ConnectionManager {
	return &ConnectionManager{sessions: sessions}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.sessions.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "player session ended with error", "error", err)
	}
}
