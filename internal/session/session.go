// Package session runs the line-oriented protocol spoken over telnet and
// ssh: the welcome banner, login and registration, and slash command
// dispatch for a logged-in player.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/darkfang/darkfang/internal/display"
	"github.com/darkfang/darkfang/internal/game"
	"github.com/google/uuid"
)

const defaultBanner = `
Welcome to {{.Title}}
{{.Description}}

Please log in or create a new account.
Use '/login <email> <password>' to log in.
Use '/register <email> <password> <confirm_password>' to create a new account.
`

const loginHint = "Use '/login <email> <password>' to log in.\n" +
	"Use '/register <email> <password> <confirm_password>' to create a new account."

// Manager creates sessions over raw line transports. One manager serves
// every telnet and ssh listener.
type Manager struct {
	game   *game.Game
	sub    game.Subscriber
	banner string
}

func NewManager(g *game.Game, sub game.Subscriber, banner string) *Manager {
	if banner == "" {
		banner = defaultBanner
	}
	return &Manager{
		game:   g,
		sub:    sub,
		banner: banner,
	}
}

// RunSession drives one connection until the peer disconnects, quits, or the
// context is cancelled. The transport owns the connection; RunSession only
// reads and writes it.
func (m *Manager) RunSession(ctx context.Context, rw io.ReadWriter) error {
	s := &session{
		manager: m,
		connId:  uuid.NewString(),
		out:     rw,
		msgs:    make(chan string, 32),
	}
	defer s.cleanup()

	s.sendBanner()

	input := make(chan string)
	go func() {
		defer close(input)
		scanner := bufio.NewScanner(rw)
		for scanner.Scan() {
			select {
			case input <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-s.msgs:
			s.send(msg)
		case line, ok := <-input:
			if !ok {
				return nil
			}
			if quit := s.handleLine(line); quit {
				return nil
			}
		}
	}
}

type session struct {
	manager *Manager
	connId  string
	out     io.Writer
	msgs    chan string

	player       *game.Player
	subscribedId string
	unsubscribe  func()
}

func (s *session) send(message string) {
	if _, err := fmt.Fprintf(s.out, "%s\n", message); err != nil {
		slog.Debug("session write failed", "connection", s.connId, "error", err)
	}
}

func (s *session) sendBanner() {
	settings := s.manager.game.Settings()
	banner, err := display.ExpandTemplate(s.manager.banner, struct {
		Title       string
		Description string
	}{settings.Title, settings.Description})
	if err != nil {
		slog.Warn("expanding banner failed", "error", err)
		banner = s.manager.banner
	}
	s.send(banner)
}

// handleLine routes one line of input. A leading slash makes it a command;
// bare text from a logged-in player is an implicit say.
func (s *session) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, "/") {
		return s.handleCommand(line[1:])
	}

	if s.player != nil {
		return s.handleCommand("say " + line)
	}

	s.send("Please log in first.")
	s.send(loginHint)
	return false
}

func (s *session) handleCommand(commandLine string) bool {
	parts := strings.Fields(commandLine)
	if len(parts) == 0 {
		return false
	}
	name := strings.ToLower(parts[0])
	args := parts[1:]

	if s.player == nil {
		switch name {
		case "login", "register", "quit", "exit":
		default:
			s.send("Please log in first.")
			return false
		}
	}

	switch name {
	case "login":
		s.handleLogin(args)
	case "register":
		s.handleRegister(args)
	case "quit", "exit":
		if s.player != nil && s.player.Active() != nil {
			s.player.Logout()
		}
		s.send("Goodbye!")
		return true
	default:
		s.send(s.manager.game.ProcessCommand(s.player, name, args))
	}

	s.reconcileSubscription()
	return false
}

func (s *session) handleLogin(args []string) {
	if len(args) < 2 {
		s.send("Usage: /login <email> <password>")
		return
	}

	p, err := s.manager.game.Authenticate(args[0], args[1])
	if err != nil {
		s.send("Invalid email or password.")
		return
	}

	s.player = p
	p.Connect(s.connId)

	s.send(fmt.Sprintf("Login successful! Welcome back, %s.", p.Email))
	s.send(p.CharacterMenu())
}

func (s *session) handleRegister(args []string) {
	if len(args) < 3 {
		s.send("Usage: /register <email> <password> <confirm_password>")
		return
	}

	email, password, confirm := args[0], args[1], args[2]
	if password != confirm {
		s.send("Passwords do not match.")
		return
	}

	if s.manager.game.Player(email) != nil {
		s.send("A player with that email already exists.")
		return
	}

	p, err := s.manager.game.CreatePlayer(email, password)
	if err != nil {
		s.send("Error creating player.")
		return
	}

	s.player = p
	p.Connect(s.connId)

	s.send(fmt.Sprintf("Registration successful! Welcome, %s.", email))
	s.send("Use '/create <character_name>' to create a new character.")
}

// reconcileSubscription keeps the NATS subscription pointed at the active
// character, picking up selects and logouts as they happen.
func (s *session) reconcileSubscription() {
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

	unsub, err := s.manager.sub.SubscribeCharacter(want, s.deliver)
	if err != nil {
		slog.Error("subscribing character channel failed", "character", want, "error", err)
		return
	}
	s.unsubscribe = unsub
	s.subscribedId = want
}

// deliver runs on the subscription's goroutine. A full buffer drops the
// message rather than blocking delivery to other sessions.
func (s *session) deliver(message string) {
	select {
	case s.msgs <- message:
	default:
		slog.Warn("session message buffer full, dropping", "connection", s.connId)
	}
}

func (s *session) cleanup() {
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
}
