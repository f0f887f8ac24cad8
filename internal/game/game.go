package game

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/darkfang/darkfang/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords, so login failures never reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrPlayerExists = errors.New("player already exists")
)

// Settings carries the game-wide tunables from configuration.
type Settings struct {
	Title          string
	Description    string
	StartRoom      string
	MaxCarryWeight int
}

// Game is the account registry and command dispatcher. It owns the loaded
// player accounts and the world they play in.
type Game struct {
	world      *World
	pub        Publisher
	players    storage.Storer[*Player]
	characters storage.Storer[*Character]
	settings   Settings

	mu       sync.RWMutex
	accounts map[string]*Player
	commands map[string]Command
}

// NewGame loads every player account and resolves their characters. A
// character id that no longer resolves to a record is logged and skipped
// rather than failing the whole account.
func NewGame(world *World, pub Publisher, players storage.Storer[*Player], characters storage.Storer[*Character], settings Settings) *Game {
	if settings.MaxCarryWeight <= 0 {
		settings.MaxCarryWeight = DefaultMaxCarryWeight
	}

	g := &Game{
		world:      world,
		pub:        pub,
		players:    players,
		characters: characters,
		settings:   settings,
		accounts:   map[string]*Player{},
		commands:   map[string]Command{},
	}

	for email, p := range players.GetAll() {
		p.game = g
		for _, id := range p.CharacterIds {
			c := characters.Get(id)
			if c == nil {
				slog.Error("character record missing", "player", email, "character", id)
				continue
			}
			c.Resolve(world, characters, pub, p, settings.MaxCarryWeight)
			p.characters = append(p.characters, c)
		}
		g.accounts[email] = p
	}

	return g
}

func (g *Game) World() *World {
	return g.world
}

func (g *Game) Settings() Settings {
	return g.settings
}

// Player returns the loaded account for an email, nil when unknown.
func (g *Game) Player(email string) *Player {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.accounts[email]
}

// Authenticate checks credentials and returns the account on success.
func (g *Game) Authenticate(email, password string) (*Player, error) {
	p := g.Player(email)
	if p == nil || !p.Authenticate(password) {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

// CreatePlayer registers a new account with a bcrypt-hashed password.
func (g *Game) CreatePlayer(email, password string) (*Player, error) {
	g.mu.Lock()
	if _, ok := g.accounts[email]; ok {
		g.mu.Unlock()
		return nil, ErrPlayerExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		g.mu.Unlock()
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	p := &Player{
		Email:        email,
		PasswordHash: string(hash),
		CharacterIds: []string{},
		game:         g,
	}
	g.accounts[email] = p
	g.mu.Unlock()

	g.SavePlayer(p)

	return p, nil
}

// SavePlayer writes the account record. Persistence is fire-and-forget; a
// failure is logged and the in-memory state stands.
func (g *Game) SavePlayer(p *Player) {
	if err := g.players.Save(p.Email, p); err != nil {
		slog.Error("saving player failed", "player", p.Email, "error", err)
	}
}

// RegisterCommand adds a command to the dispatch table. A repeated name
// replaces the earlier registration.
func (g *Game) RegisterCommand(cmd Command) {
	g.mu.Lock()
	defer g.mu.Unlock()

	name := strings.ToLower(cmd.Name())
	if _, ok := g.commands[name]; ok {
		slog.Debug("command registration replaced", "command", name)
	}
	g.commands[name] = cmd
}

// Commands returns a snapshot of the dispatch table.
func (g *Game) Commands() map[string]Command {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make(map[string]Command, len(g.commands))
	for name, cmd := range g.commands {
		out[name] = cmd
	}
	return out
}

// ProcessCommand dispatches one parsed command for a player. Unknown names
// get a pointer at /help and change nothing.
func (g *Game) ProcessCommand(p *Player, name string, args []string) string {
	g.mu.RLock()
	cmd := g.commands[strings.ToLower(name)]
	g.mu.RUnlock()

	if cmd == nil {
		return fmt.Sprintf("Unknown command: %s. Type /help for a list of commands.", name)
	}
	return cmd.Execute(p, args)
}

// Broadcast delivers a message to every connected player with an active
// character, skipping the account named by exceptEmail.
func (g *Game) Broadcast(message string, exceptEmail string) {
	g.mu.RLock()
	targets := make([]*Player, 0, len(g.accounts))
	for email, p := range g.accounts {
		if email == exceptEmail {
			continue
		}
		targets = append(targets, p)
	}
	g.mu.RUnlock()

	for _, p := range targets {
		if !p.Connected() {
			continue
		}
		c := p.Active()
		if c == nil {
			continue
		}
		if err := g.pub.PublishToCharacter(c.Id, message); err != nil {
			slog.Warn("broadcast delivery failed", "player", p.Email, "error", err)
		}
	}
}
