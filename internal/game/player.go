package game

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pixil98/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// Player is an account. The exported fields are the persisted record, keyed
// by email; the runtime fields track the resolved characters, the active
// selection, and the connection currently driving the account.
type Player struct {
	Email        string   `json:"email"`
	PasswordHash string   `json:"password_hash"`
	CharacterIds []string `json:"characters"`

	mu         sync.Mutex
	game       *Game
	characters []*Character
	active     *Character
	connId     string
}

// Validate satisfies storage.ValidatingSpec.
func (p *Player) Validate() error {
	el := errors.NewErrorList()

	if p.Email == "" {
		el.Add(fmt.Errorf("player email is required"))
	}
	if p.PasswordHash == "" {
		el.Add(fmt.Errorf("player password_hash is required"))
	}

	return el.Err()
}

// Authenticate checks a candidate password against the stored hash.
func (p *Player) Authenticate(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) == nil
}

// Characters returns a snapshot of the account's characters in creation
// order. The order is what the one-based /select index refers to.
func (p *Player) Characters() []*Character {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*Character(nil), p.characters...)
}

// Active returns the character the player is currently playing, nil when the
// player is at character selection.
func (p *Player) Active() *Character {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.active
}

// Connect binds the account to a connection. Each account has at most one
// driving connection; a new login simply takes over the binding.
func (p *Player) Connect(connId string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.connId = connId
}

func (p *Player) Disconnect() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.connId = ""
}

// Connected reports whether a connection is currently driving the account.
func (p *Player) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.connId != ""
}

// DisplayName is the active character's name, or the email when no character
// is selected.
func (p *Player) DisplayName() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active != nil {
		return p.active.Name
	}
	return p.Email
}

// CreateCharacter makes a new character on the account. Names must be at
// least three characters and unique within the account, case-insensitively.
func (p *Player) CreateCharacter(name string) string {
	if len(name) < 3 {
		return "Character name must be at least 3 characters long."
	}

	p.mu.Lock()
	for _, c := range p.characters {
		if strings.EqualFold(c.Name, name) {
			p.mu.Unlock()
			return "You already have a character with that name."
		}
	}

	c := NewCharacter(name)
	c.Resolve(p.game.world, p.game.characters, p.game.pub, p, p.game.settings.MaxCarryWeight)
	p.characters = append(p.characters, c)
	p.CharacterIds = append(p.CharacterIds, c.Id)
	position := len(p.characters)
	p.mu.Unlock()

	c.save()
	p.save()

	return fmt.Sprintf("Character %s created successfully. Use '/select %d' to play as this character.", name, position)
}

// SelectCharacter activates the character at a zero-based index and places
// it in its last known room, falling back to the start room.
func (p *Player) SelectCharacter(index int) string {
	p.mu.Lock()
	if index < 0 || index >= len(p.characters) {
		n := len(p.characters)
		p.mu.Unlock()
		return fmt.Sprintf("Invalid character number. Use '/select <number>' where number is between 1 and %d.", n)
	}
	c := p.characters[index]
	p.active = c
	p.mu.Unlock()

	room := p.game.world.Room(c.RoomId)
	if room == nil {
		room = p.game.world.StartRoom()
	}
	c.EnterRoom(room)

	return fmt.Sprintf("You are now playing as %s.\n%s", c.Name, c.Look())
}

// Logout leaves the world, clears the active character and returns the
// character selection text.
func (p *Player) Logout() string {
	p.mu.Lock()
	c := p.active
	p.active = nil
	p.mu.Unlock()

	if c != nil {
		c.LeaveRoom()
	}

	return "You have been logged out of your character.\n" + p.CharacterMenu()
}

// CharacterMenu renders the selection prompt shown after login and logout.
func (p *Player) CharacterMenu() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var sb strings.Builder
	if len(p.characters) == 0 {
		sb.WriteString("You don't have any characters yet.\n")
		sb.WriteString("Use '/create <character_name>' to create a new character.")
		return sb.String()
	}

	sb.WriteString("Your characters:\n")
	for i, c := range p.characters {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, c.Name)
	}
	sb.WriteString("Use '/select <number>' to select a character.\n")
	sb.WriteString("Use '/create <character_name>' to create a new character.")
	return sb.String()
}

// The world-facing verbs all require an active character.

func (p *Player) Look() string {
	if c := p.Active(); c != nil {
		return c.Look()
	}
	return "You need to select a character first."
}

func (p *Player) Move(direction string) string {
	if c := p.Active(); c != nil {
		return c.Move(direction)
	}
	return "You need to select a character first."
}

func (p *Player) Say(message string) string {
	if c := p.Active(); c != nil {
		return c.Say(message)
	}
	return "You need to select a character first."
}

// Shout reaches every connected player in the world, not just the room.
func (p *Player) Shout(message string) string {
	c := p.Active()
	if c == nil {
		return "You need to select a character first."
	}

	p.game.Broadcast(fmt.Sprintf("%s shouts: %s", c.Name, message), p.Email)
	return fmt.Sprintf("You shout: %s", message)
}

func (p *Player) ShowInventory() string {
	if c := p.Active(); c != nil {
		return c.ShowInventory()
	}
	return "You need to select a character first."
}

func (p *Player) TakeItem(name string) string {
	if c := p.Active(); c != nil {
		return c.TakeItem(name)
	}
	return "You need to select a character first."
}

func (p *Player) DropItem(name string) string {
	if c := p.Active(); c != nil {
		return c.DropItem(name)
	}
	return "You need to select a character first."
}

func (p *Player) save() {
	if p.game != nil {
		p.game.SavePlayer(p)
	}
}
