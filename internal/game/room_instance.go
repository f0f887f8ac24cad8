package game

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/darkfang/darkfang/internal/display"
)

// RoomInstance is the mutable runtime aggregate for one room: its occupant
// set, item list and automation state. All access goes through its methods.
// Mutators change structure first, snapshot the occupant set, release the
// lock, and only then fan out notifications, so a stalled peer can never
// block the room.
type RoomInstance struct {
	id  string
	def *Room
	pub Publisher

	mu          sync.RWMutex
	items       []*ItemInstance
	occupants   map[string]*Character
	automations []*automationState
}

func NewRoomInstance(id string, def *Room, pub Publisher) (*RoomInstance, error) {
	ri := &RoomInstance{
		id:        id,
		def:       def,
		pub:       pub,
		occupants: map[string]*Character{},
	}

	for i, rule := range def.Automation {
		state, err := newAutomationState(rule)
		if err != nil {
			return nil, fmt.Errorf("room %q automation %d: %w", id, i, err)
		}
		ri.automations = append(ri.automations, state)
	}

	return ri, nil
}

func (ri *RoomInstance) Id() string {
	return ri.id
}

func (ri *RoomInstance) Name() string {
	return ri.def.Name
}

// Exit returns the target room id for a direction, if the room has one.
func (ri *RoomInstance) Exit(direction string) (string, bool) {
	target, ok := ri.def.Exits[direction]
	return target, ok
}

// AddCharacter inserts a character into the occupant set and tells everyone
// else. Occupancy is keyed by character id, never by reference identity.
func (ri *RoomInstance) AddCharacter(c *Character) {
	ri.mu.Lock()
	ri.occupants[c.Id] = c
	ri.mu.Unlock()

	ri.Broadcast(fmt.Sprintf("%s has entered the room.", c.Name), c.Id)
}

// RemoveCharacter removes a character from the occupant set and tells
// everyone left behind.
func (ri *RoomInstance) RemoveCharacter(c *Character) {
	ri.mu.Lock()
	delete(ri.occupants, c.Id)
	ri.mu.Unlock()

	ri.Broadcast(fmt.Sprintf("%s has left the room.", c.Name), c.Id)
}

// HasOccupant reports whether the character id is present in the room.
func (ri *RoomInstance) HasOccupant(charId string) bool {
	ri.mu.RLock()
	defer ri.mu.RUnlock()

	_, ok := ri.occupants[charId]
	return ok
}

// OccupantNames returns the display names of everyone in the room, sorted.
func (ri *RoomInstance) OccupantNames() []string {
	ri.mu.RLock()
	names := make([]string, 0, len(ri.occupants))
	for _, c := range ri.occupants {
		names = append(names, c.Name)
	}
	ri.mu.RUnlock()

	sort.Strings(names)
	return names
}

// AddItem places an item into the room.
func (ri *RoomInstance) AddItem(item *ItemInstance) {
	ri.mu.Lock()
	ri.items = append(ri.items, item)
	ri.mu.Unlock()

	ri.Broadcast(fmt.Sprintf("A %s appears in the room.", item.Name), "")
}

// RemoveItem takes an item out of the room. It reports false if the item is
// no longer present, which callers treat as losing the race to another taker.
func (ri *RoomInstance) RemoveItem(item *ItemInstance) bool {
	ri.mu.Lock()
	idx := -1
	for i, it := range ri.items {
		if it == item {
			idx = i
			break
		}
	}
	if idx < 0 {
		ri.mu.Unlock()
		return false
	}
	ri.items = append(ri.items[:idx], ri.items[idx+1:]...)
	ri.mu.Unlock()

	ri.Broadcast(fmt.Sprintf("The %s disappears from the room.", item.Name), "")
	return true
}

// FindItem looks up an item by case-insensitive exact name.
func (ri *RoomInstance) FindItem(name string) *ItemInstance {
	ri.mu.RLock()
	defer ri.mu.RUnlock()

	for _, item := range ri.items {
		if item.MatchName(name) {
			return item
		}
	}
	return nil
}

// Items returns a snapshot of the room's item list.
func (ri *RoomInstance) Items() []*ItemInstance {
	ri.mu.RLock()
	defer ri.mu.RUnlock()

	return append([]*ItemInstance(nil), ri.items...)
}

// Broadcast delivers a message to every occupant except exceptId. Failures
// are logged and skipped; one broken session never hides the message from
// the rest of the room.
func (ri *RoomInstance) Broadcast(message string, exceptId string) {
	ri.mu.RLock()
	targets := make([]string, 0, len(ri.occupants))
	for id := range ri.occupants {
		if id == exceptId {
			continue
		}
		targets = append(targets, id)
	}
	ri.mu.RUnlock()

	for _, id := range targets {
		if err := ri.pub.PublishToCharacter(id, message); err != nil {
			slog.Warn("room broadcast delivery failed", "room", ri.id, "character", id, "error", err)
		}
	}
}

// Describe renders the look text for the room.
func (ri *RoomInstance) Describe() string {
	ri.mu.RLock()
	itemNames := make([]string, 0, len(ri.items))
	for _, item := range ri.items {
		itemNames = append(itemNames, item.Name)
	}
	ri.mu.RUnlock()

	exits := make([]string, 0, len(ri.def.Exits))
	for dir := range ri.def.Exits {
		exits = append(exits, dir)
	}
	sort.Strings(exits)

	return fmt.Sprintf("%s\n\n%s\n\nExits: %s\nItems: %s\nPlayers: %s",
		ri.def.Name,
		display.Wrap(ri.def.Description),
		strings.Join(exits, ", "),
		strings.Join(itemNames, ", "),
		strings.Join(ri.OccupantNames(), ", "))
}

// runAutomations evaluates every rule against now. A failing rule is logged
// and skipped so it cannot starve the rules after it.
func (ri *RoomInstance) runAutomations(now time.Time) {
	for _, a := range ri.automations {
		if !a.due(now) {
			continue
		}
		if err := a.run(now, ri); err != nil {
			slog.Error("automation rule failed", "room", ri.id, "error", err)
		}
	}
}
