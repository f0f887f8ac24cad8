package web

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/darkfang/darkfang/internal/game"
	"github.com/google/uuid"
)

// clientMessage is the union of every inbound frame; Type selects which
// fields matter.
type clientMessage struct {
	Type     string `json:"type"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Command  string `json:"command,omitempty"`
	Index    int    `json:"index,omitempty"`
	Name     string `json:"name,omitempty"`
}

type serverMessage struct {
	Type         string           `json:"type"`
	ConnectionId string           `json:"connection_id,omitempty"`
	Characters   []characterEntry `json:"characters,omitempty"`
	Result       string           `json:"result,omitempty"`
	Message      string           `json:"message,omitempty"`
}

type characterEntry struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// frameWriter is the websocket surface the session writes to. It exists so
// tests can capture frames without a network.
type frameWriter interface {
	WriteJSON(v any) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

type wsSession struct {
	server *Server
	conn   frameWriter
	connId string

	writeMu sync.Mutex

	player       *game.Player
	subscribedId string
	unsubscribe  func()
}

func newWsSession(s *Server, conn frameWriter) *wsSession {
	return &wsSession{
		server: s,
		conn:   conn,
		connId: uuid.NewString(),
	}
}

func (s *wsSession) run() {
	defer s.cleanup()

	s.sendJSON(serverMessage{Type: "connected", ConnectionId: s.connId})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError("Invalid message format: " + err.Error())
			continue
		}

		s.dispatch(msg)
	}
}

func (s *wsSession) dispatch(msg clientMessage) {
	switch msg.Type {
	case "login":
		s.handleLogin(msg)
	case "register":
		s.handleRegister(msg)
	case "command":
		s.handleCommand(msg)
	case "select_character":
		s.handleSelectCharacter(msg)
	case "create_character":
		s.handleCreateCharacter(msg)
	case "logout":
		s.handleLogout()
	}

	s.reconcileSubscription()
}

func (s *wsSession) handleLogin(msg clientMessage) {
	p, err := s.server.game.Authenticate(msg.Email, msg.Password)
	if err != nil {
		s.sendError("Invalid email or password")
		return
	}

	s.player = p
	p.Connect(s.connId)

	characters := p.Characters()
	entries := make([]characterEntry, len(characters))
	for i, c := range characters {
		entries[i] = characterEntry{Index: i, Name: c.Name}
	}

	s.sendJSON(serverMessage{Type: "login_success", Characters: entries})
}

func (s *wsSession) handleRegister(msg clientMessage) {
	p, err := s.server.game.CreatePlayer(msg.Email, msg.Password)
	if err != nil {
		s.sendError("Email already in use")
		return
	}

	s.player = p
	p.Connect(s.connId)

	s.sendJSON(serverMessage{Type: "register_success"})
}

func (s *wsSession) handleCommand(msg clientMessage) {
	if s.player == nil {
		s.sendError("Not logged in")
		return
	}
	if s.player.Active() == nil {
		s.sendError("No active character")
		return
	}

	command := strings.TrimSpace(msg.Command)
	if command == "" {
		return
	}

	var result string
	if strings.HasPrefix(command, "/") {
		parts := strings.Fields(command[1:])
		if len(parts) == 0 {
			return
		}
		result = s.server.game.ProcessCommand(s.player, parts[0], parts[1:])
	} else {
		// Bare text is an implicit say, same as the line protocol.
		result = s.server.game.ProcessCommand(s.player, "say", []string{command})
	}

	s.sendJSON(serverMessage{Type: "command_result", Result: result})
}

func (s *wsSession) handleSelectCharacter(msg clientMessage) {
	if s.player == nil {
		s.sendError("Not logged in")
		return
	}

	result := s.player.SelectCharacter(msg.Index)
	s.sendJSON(serverMessage{Type: "command_result", Result: result})
}

func (s *wsSession) handleCreateCharacter(msg clientMessage) {
	if s.player == nil {
		s.sendError("Not logged in")
		return
	}

	name := strings.TrimSpace(msg.Name)
	if name == "" {
		s.sendError("Invalid character name")
		return
	}

	result := s.player.CreateCharacter(name)
	s.sendJSON(serverMessage{Type: "command_result", Result: result})
}

func (s *wsSession) handleLogout() {
	if s.player == nil {
		return
	}

	if s.player.Active() != nil {
		s.player.Logout()
	}
	s.player.Disconnect()
	s.player = nil

	s.sendJSON(serverMessage{Type: "logout_success"})
}

func (s *wsSession) reconcileSubscription() {
	want := ""
	if s.player != nil {
		if c := s.player.Active(); c != nil {
			want = c.Id
		}
	}

	if want == s.subscribedId {
		return
	}

	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
		s.subscribedId = ""
	}

	if want == "" {
		return
	}

	unsub, err := s.server.sub.SubscribeCharacter(want, func(message string) {
		s.sendJSON(serverMessage{Type: "game_message", Message: message})
	})
	if err != nil {
		slog.Error("subscribing character channel failed", "character", want, "error", err)
		return
	}
	s.unsubscribe = unsub
	s.subscribedId = want
}

// sendJSON serializes writes; subscription deliveries race with command
// replies otherwise.
func (s *wsSession) sendJSON(v any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.WriteJSON(v); err != nil {
		slog.Debug("websocket write failed", "connection", s.connId, "error", err)
	}
}

func (s *wsSession) sendError(message string) {
	s.sendJSON(serverMessage{Type: "error", Message: message})
}

func (s *wsSession) cleanup() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
		s.subscribedId = ""
	}

	if s.player != nil {
		if s.player.Active() != nil {
			s.player.Logout()
		}
		s.player.Disconnect()
		s.player = nil
	}

	s.conn.Close()
}
