package game

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/darkfang/darkfang/internal/storage"
	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
)

const (
	DefaultMaxHealth      = 100
	DefaultMaxCarryWeight = 10
)

// Character is a player's in-world avatar. The exported fields form the
// persisted record; the unexported fields are runtime state attached by
// Resolve after loading. Every mutating operation ends with a save; a failed
// save is logged and the in-memory mutation stands.
type Character struct {
	Id        string          `json:"id"`
	Name      string          `json:"name"`
	Health    int             `json:"health"`
	MaxHealth int             `json:"max_health"`
	RoomId    string          `json:"room_id"`
	Inventory []*ItemInstance `json:"inventory"`

	mu             sync.Mutex
	room           *RoomInstance
	world          *World
	store          storage.Storer[*Character]
	pub            Publisher
	player         *Player
	maxCarryWeight int
}

func NewCharacter(name string) *Character {
	return &Character{
		Id:        uuid.NewString(),
		Name:      name,
		Health:    DefaultMaxHealth,
		MaxHealth: DefaultMaxHealth,
		RoomId:    defaultStartRoomId,
		Inventory: []*ItemInstance{},
	}
}

// Validate satisfies storage.ValidatingSpec.
func (c *Character) Validate() error {
	el := errors.NewErrorList()

	if c.Id == "" {
		el.Add(fmt.Errorf("character id is required"))
	}
	if c.Name == "" {
		el.Add(fmt.Errorf("character name is required"))
	}
	if c.MaxHealth < 0 {
		el.Add(fmt.Errorf("max_health cannot be negative"))
	}
	if c.Health < 0 || (c.MaxHealth > 0 && c.Health > c.MaxHealth) {
		el.Add(fmt.Errorf("health must be between 0 and max_health"))
	}

	return el.Err()
}

// Resolve attaches runtime collaborators after the record is loaded or
// created, and fills in defaults for records predating the health fields.
func (c *Character) Resolve(world *World, store storage.Storer[*Character], pub Publisher, owner *Player, maxCarryWeight int) {
	c.world = world
	c.store = store
	c.pub = pub
	c.player = owner
	c.maxCarryWeight = maxCarryWeight
	if c.maxCarryWeight <= 0 {
		c.maxCarryWeight = DefaultMaxCarryWeight
	}
	if c.MaxHealth == 0 {
		c.MaxHealth = DefaultMaxHealth
		c.Health = DefaultMaxHealth
	}
	if c.Inventory == nil {
		c.Inventory = []*ItemInstance{}
	}
	if c.RoomId == "" {
		c.RoomId = defaultStartRoomId
	}
}

// Room returns the live room the character occupies, nil when not placed.
func (c *Character) Room() *RoomInstance {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.room
}

// CurrentHealth returns the character's health.
func (c *Character) CurrentHealth() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.Health
}

// EnterRoom moves the character into room, leaving the previous room first.
// It is one of the two occupancy mutators (with LeaveRoom), which keeps the
// exactly-one-room invariant.
func (c *Character) EnterRoom(room *RoomInstance) {
	c.mu.Lock()
	prev := c.room
	c.room = room
	c.RoomId = room.Id()
	c.mu.Unlock()

	if prev != nil {
		prev.RemoveCharacter(c)
	}
	room.AddCharacter(c)

	c.save()
}

// LeaveRoom removes the character from its room without entering another.
// The persisted room id is kept so the character returns there next login.
func (c *Character) LeaveRoom() {
	c.mu.Lock()
	prev := c.room
	c.room = nil
	c.mu.Unlock()

	if prev != nil {
		prev.RemoveCharacter(c)
	}
}

// Look renders the current room.
func (c *Character) Look() string {
	room := c.Room()
	if room == nil {
		return "You are not in a room."
	}
	return room.Describe()
}

// Move walks the character through an exit. Invalid directions and dangling
// exit targets return a descriptive message without mutating anything.
func (c *Character) Move(direction string) string {
	room := c.Room()
	if room == nil {
		return "You are not in a room."
	}

	targetId, ok := room.Exit(direction)
	if !ok {
		return fmt.Sprintf("You cannot go %s from here.", direction)
	}

	target := c.world.Room(targetId)
	if target == nil {
		return fmt.Sprintf("Error: Room '%s' not found.", targetId)
	}

	c.EnterRoom(target)

	return fmt.Sprintf("You move %s to %s.\n\n%s", direction, target.Name(), c.Look())
}

// Say broadcasts to the room, excluding the speaker.
func (c *Character) Say(message string) string {
	room := c.Room()
	if room == nil {
		return "You are not in a room."
	}

	room.Broadcast(fmt.Sprintf("%s says: %s", c.Name, message), c.Id)
	return fmt.Sprintf("You say: %s", message)
}

// ShowInventory lists carried items and the weight capacity.
func (c *Character) ShowInventory() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.Inventory) == 0 {
		return "Your inventory is empty."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Your inventory (%d/%d weight):\n", c.carriedWeightLocked(), c.maxCarryWeight)
	for _, item := range c.Inventory {
		fmt.Fprintf(&sb, "- %s (%d)\n", item.Name, item.Weight)
	}
	return sb.String()
}

func (c *Character) carriedWeightLocked() int {
	total := 0
	for _, item := range c.Inventory {
		total += item.Weight
	}
	return total
}

// TakeItem moves an item from the room into the inventory, subject to the
// weight capacity bound. The room broadcasts the disappearance.
func (c *Character) TakeItem(name string) string {
	room := c.Room()
	if room == nil {
		return "You are not in a room."
	}

	item := room.FindItem(name)
	if item == nil {
		return fmt.Sprintf("There is no %s here.", name)
	}

	c.mu.Lock()
	if c.carriedWeightLocked()+item.Weight > c.maxCarryWeight {
		c.mu.Unlock()
		return "You cannot carry any more. Your inventory is full."
	}
	c.mu.Unlock()

	// Someone else may have grabbed it between the lookup and here.
	if !room.RemoveItem(item) {
		return fmt.Sprintf("There is no %s here.", name)
	}

	c.mu.Lock()
	// A concurrent take may have landed since the capacity check.
	if c.carriedWeightLocked()+item.Weight > c.maxCarryWeight {
		c.mu.Unlock()
		room.AddItem(item)
		return "You cannot carry any more. Your inventory is full."
	}
	c.Inventory = append(c.Inventory, item)
	c.mu.Unlock()

	c.save()

	return fmt.Sprintf("You take the %s.", item.Name)
}

// DropItem moves an item from the inventory into the room. The room
// broadcasts the appearance.
func (c *Character) DropItem(name string) string {
	room := c.Room()
	if room == nil {
		return "You are not in a room."
	}

	c.mu.Lock()
	idx := -1
	for i, item := range c.Inventory {
		if item.MatchName(name) {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Sprintf("You don't have a %s.", name)
	}
	item := c.Inventory[idx]
	c.Inventory = append(c.Inventory[:idx], c.Inventory[idx+1:]...)
	c.mu.Unlock()

	room.AddItem(item)

	c.save()

	return fmt.Sprintf("You drop the %s.", item.Name)
}

// TakeDamage lowers health, clamped at zero. Reaching zero triggers death:
// the inventory drops into the current room, health resets, and the
// character is returned to the start room.
func (c *Character) TakeDamage(amount int) {
	c.mu.Lock()
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
	died := c.Health == 0
	c.mu.Unlock()

	if died {
		c.die()
	}

	c.save()
}

// Heal raises health, clamped at max_health.
func (c *Character) Heal(amount int) {
	c.mu.Lock()
	c.Health += amount
	if c.Health > c.MaxHealth {
		c.Health = c.MaxHealth
	}
	c.mu.Unlock()

	c.save()
}

func (c *Character) die() {
	c.mu.Lock()
	dropped := c.Inventory
	c.Inventory = []*ItemInstance{}
	c.Health = c.MaxHealth
	room := c.room
	c.mu.Unlock()

	// Items fall where the character died, before the trip back to start.
	if room != nil {
		for _, item := range dropped {
			room.AddItem(item)
		}
	}

	if start := c.world.StartRoom(); start != nil {
		c.EnterRoom(start)
	}

	c.notifyOwner("You have died and lost all your items. You have been returned to the starting room.")
}

func (c *Character) notifyOwner(message string) {
	if c.pub == nil {
		return
	}
	if err := c.pub.PublishToCharacter(c.Id, message); err != nil {
		slog.Warn("notifying character owner failed", "character", c.Id, "error", err)
	}
}

func (c *Character) save() {
	if c.store == nil {
		return
	}
	if err := c.store.Save(c.Id, c); err != nil {
		slog.Error("saving character failed", "character", c.Id, "error", err)
	}
}
