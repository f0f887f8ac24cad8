package game

import (
	"sync"
	"testing"

	"github.com/darkfang/darkfang/internal/storage"
)

// recordingPublisher captures every published message for assertions.
type recordingPublisher struct {
	mu   sync.Mutex
	msgs []publishedMsg
}

type publishedMsg struct {
	CharId  string
	Message string
}

func (p *recordingPublisher) PublishToCharacter(charId string, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.msgs = append(p.msgs, publishedMsg{CharId: charId, Message: message})
	return nil
}

func (p *recordingPublisher) forCharacter(charId string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []string
	for _, m := range p.msgs {
		if m.CharId == charId {
			out = append(out, m.Message)
		}
	}
	return out
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.msgs = nil
}

// memStore is an in-memory Storer. saveErr, when set, makes every Save fail.
type memStore[T storage.ValidatingSpec] struct {
	mu      sync.Mutex
	records map[string]T
	saveErr error
	saves   int
}

func newMemStore[T storage.ValidatingSpec]() *memStore[T] {
	return &memStore[T]{records: map[string]T{}}
}

func (s *memStore[T]) Save(id string, o T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}
	s.records[id] = o
	s.saves++
	return nil
}

func (s *memStore[T]) Get(id string) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, ok := s.records[id]
	if !ok {
		var nilVal T
		return nilVal
	}
	return val
}

func (s *memStore[T]) GetAll() map[string]T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]T, len(s.records))
	for id, v := range s.records {
		out[id] = v
	}
	return out
}

func testRoomStore() *memStore[*Room] {
	rooms := newMemStore[*Room]()
	rooms.records["start"] = &Room{
		Name:        "Town Square",
		Description: "The town square bustles with activity.",
		Exits:       map[string]string{"north": "forest", "east": "cliff"},
		Items:       []string{"sword"},
	}
	rooms.records["forest"] = &Room{
		Name:        "Forest",
		Description: "Tall trees block out most of the light.",
		Exits:       map[string]string{"south": "start"},
		Items:       []string{"rock"},
	}
	rooms.records["cliff"] = &Room{
		Name:        "Cliff",
		Description: "A sheer drop to the sea below.",
		Exits:       map[string]string{"west": "start", "east": "missing"},
	}
	return rooms
}

func testItemStore() *memStore[*ItemTemplate] {
	items := newMemStore[*ItemTemplate]()
	items.records["sword"] = &ItemTemplate{Name: "Sword", Description: "A sharp blade.", Weight: 3, Type: "weapon", Attack: 5}
	items.records["rock"] = &ItemTemplate{Name: "Rock", Description: "A heavy rock.", Weight: 8, Type: "misc"}
	return items
}

func newTestWorld(t *testing.T, pub Publisher) *World {
	t.Helper()

	w, err := NewWorld(testRoomStore(), testItemStore(), pub, "start")
	if err != nil {
		t.Fatalf("building world: %v", err)
	}
	return w
}

func newTestGame(t *testing.T) (*Game, *recordingPublisher) {
	t.Helper()

	pub := &recordingPublisher{}
	w := newTestWorld(t, pub)
	g := NewGame(w, pub, newMemStore[*Player](), newMemStore[*Character](), Settings{
		Title:          "Testfang",
		Description:    "A test world",
		StartRoom:      "start",
		MaxCarryWeight: 10,
	})
	return g, pub
}

// newTestCharacter makes a resolved character placed in the start room.
func newTestCharacter(t *testing.T, w *World, pub Publisher, name string) (*Character, *memStore[*Character]) {
	t.Helper()

	store := newMemStore[*Character]()
	c := NewCharacter(name)
	c.Resolve(w, store, pub, nil, DefaultMaxCarryWeight)
	c.EnterRoom(w.StartRoom())
	return c, store
}
