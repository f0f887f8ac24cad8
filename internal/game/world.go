package game

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/darkfang/darkfang/internal/storage"
	"github.com/pixil98/go-errors"
)

const defaultStartRoomId = "start"

// World owns the room catalog and the item template catalog, both loaded
// once at startup. Rooms are read-mostly; all mutable state lives on the
// individual RoomInstance aggregates.
type World struct {
	rooms       map[string]*RoomInstance
	items       storage.Storer[*ItemTemplate]
	startRoomId string
}

func NewWorld(rooms storage.Storer[*Room], items storage.Storer[*ItemTemplate], pub Publisher, startRoomId string) (*World, error) {
	if startRoomId == "" {
		startRoomId = defaultStartRoomId
	}

	w := &World{
		rooms:       map[string]*RoomInstance{},
		items:       items,
		startRoomId: startRoomId,
	}

	el := errors.NewErrorList()
	for id, def := range rooms.GetAll() {
		ri, err := NewRoomInstance(id, def, pub)
		if err != nil {
			el.Add(err)
			continue
		}

		// Seed the room's starting items from its content definition.
		for _, templateId := range def.Items {
			item, err := w.CreateItemInstance(templateId)
			if err != nil {
				el.Add(fmt.Errorf("room %q: %w", id, err))
				continue
			}
			ri.items = append(ri.items, item)
		}

		w.rooms[id] = ri
	}
	if err := el.Err(); err != nil {
		return nil, err
	}

	if len(w.rooms) == 0 {
		return nil, fmt.Errorf("world has no rooms")
	}
	if w.StartRoom() == nil {
		return nil, fmt.Errorf("start room %q not found", startRoomId)
	}

	return w, nil
}

// Room returns the instance for a room id, or nil if it does not resolve.
func (w *World) Room(id string) *RoomInstance {
	return w.rooms[id]
}

// StartRoom returns the designated start room, falling back to the
// lexicographically first room when the configured id is missing.
func (w *World) StartRoom() *RoomInstance {
	if ri, ok := w.rooms[w.startRoomId]; ok {
		return ri
	}

	ids := make([]string, 0, len(w.rooms))
	for id := range w.rooms {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Strings(ids)
	return w.rooms[ids[0]]
}

// CreateItemInstance stamps a fresh instance from an item template.
func (w *World) CreateItemInstance(templateId string) (*ItemInstance, error) {
	t := w.items.Get(templateId)
	if t == nil {
		return nil, fmt.Errorf("item template %q not found", templateId)
	}
	return NewItemInstance(templateId, t), nil
}

// RunAutomations evaluates every room's automation rules against now.
func (w *World) RunAutomations(now time.Time) {
	for _, ri := range w.rooms {
		ri.runAutomations(now)
	}
}

// Tick lets the world act as a driver manager.
func (w *World) Tick(ctx context.Context) error {
	w.RunAutomations(time.Now())
	return nil
}
