package game

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestGameCreatePlayerAndAuthenticate(t *testing.T) {
	g, _ := newTestGame(t)

	p, err := g.CreatePlayer("hero@example.com", "secret")
	if err != nil {
		t.Fatalf("creating player: %v", err)
	}
	testutil.AssertEqual(t, "email", p.Email, "hero@example.com")
	if p.PasswordHash == "secret" {
		t.Error("password stored in plaintext")
	}

	got, err := g.Authenticate("hero@example.com", "secret")
	if err != nil {
		t.Fatalf("authenticating: %v", err)
	}
	if got != p {
		t.Error("expected the same account back")
	}
}

func TestGameAuthenticateFailuresLookAlike(t *testing.T) {
	g, _ := newTestGame(t)
	g.CreatePlayer("hero@example.com", "secret")

	_, wrongPassword := g.Authenticate("hero@example.com", "nope")
	_, unknownEmail := g.Authenticate("ghost@example.com", "secret")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", unknownEmail)
	}
}

func TestGameCreatePlayerDuplicate(t *testing.T) {
	g, _ := newTestGame(t)
	g.CreatePlayer("hero@example.com", "secret")

	_, err := g.CreatePlayer("hero@example.com", "other")
	if !errors.Is(err, ErrPlayerExists) {
		t.Errorf("duplicate: got %v, want ErrPlayerExists", err)
	}
}

func TestGameProcessCommandUnknown(t *testing.T) {
	g, _ := newTestGame(t)
	p, _ := g.CreatePlayer("hero@example.com", "secret")

	result := g.ProcessCommand(p, "dance", nil)
	testutil.AssertEqual(t, "result", result, "Unknown command: dance. Type /help for a list of commands.")
}

type stubCommand struct {
	name   string
	result string
}

func (c *stubCommand) Name() string        { return c.name }
func (c *stubCommand) Description() string { return "stub" }
func (c *stubCommand) Execute(p *Player, args []string) string {
	return c.result
}

func TestGameRegisterCommandLastWins(t *testing.T) {
	g, _ := newTestGame(t)
	p, _ := g.CreatePlayer("hero@example.com", "secret")

	g.RegisterCommand(&stubCommand{name: "wave", result: "first"})
	g.RegisterCommand(&stubCommand{name: "wave", result: "second"})

	testutil.AssertEqual(t, "replaced", g.ProcessCommand(p, "wave", nil), "second")
	testutil.AssertEqual(t, "case-insensitive dispatch", g.ProcessCommand(p, "WAVE", nil), "second")
}

func TestPlayerCreateCharacter(t *testing.T) {
	g, _ := newTestGame(t)
	p, _ := g.CreatePlayer("hero@example.com", "secret")

	tests := map[string]struct {
		name string
		exp  string
	}{
		"too short": {name: "Al", exp: "Character name must be at least 3 characters long."},
		"empty":     {name: "", exp: "Character name must be at least 3 characters long."},
		"valid":     {name: "Alice", exp: "Character Alice created successfully. Use '/select 1' to play as this character."},
		"duplicate": {name: "alice", exp: "You already have a character with that name."},
	}

	// Order matters: valid before duplicate.
	for _, name := range []string{"too short", "empty", "valid", "duplicate"} {
		tt := tests[name]
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "result", p.CreateCharacter(tt.name), tt.exp)
		})
	}

	testutil.AssertEqual(t, "character count", len(p.Characters()), 1)
	testutil.AssertEqual(t, "id recorded", len(p.CharacterIds), 1)
}

func TestPlayerSelectCharacter(t *testing.T) {
	g, _ := newTestGame(t)
	p, _ := g.CreatePlayer("hero@example.com", "secret")
	p.CreateCharacter("Alice")

	result := p.SelectCharacter(-1)
	testutil.AssertEqual(t, "below range", result,
		"Invalid character number. Use '/select <number>' where number is between 1 and 1.")

	result = p.SelectCharacter(1)
	testutil.AssertEqual(t, "above range", result,
		"Invalid character number. Use '/select <number>' where number is between 1 and 1.")

	result = p.SelectCharacter(0)
	if !strings.HasPrefix(result, "You are now playing as Alice.\n") {
		t.Errorf("unexpected select result: %q", result)
	}

	c := p.Active()
	if c == nil {
		t.Fatal("expected active character")
	}
	testutil.AssertEqual(t, "placed at start", g.World().Room("start").HasOccupant(c.Id), true)
}

func TestPlayerLogout(t *testing.T) {
	g, _ := newTestGame(t)
	p, _ := g.CreatePlayer("hero@example.com", "secret")
	p.CreateCharacter("Alice")
	p.SelectCharacter(0)
	c := p.Active()

	result := p.Logout()

	if !strings.HasPrefix(result, "You have been logged out of your character.\n") {
		t.Errorf("unexpected logout text: %q", result)
	}
	if !strings.Contains(result, "1. Alice\n") {
		t.Errorf("expected character listing, got %q", result)
	}
	if p.Active() != nil {
		t.Error("expected no active character")
	}
	testutil.AssertEqual(t, "left room", g.World().Room("start").HasOccupant(c.Id), false)
	// The room is remembered for the next session.
	testutil.AssertEqual(t, "room id kept", c.RoomId, "start")
}

func TestPlayerVerbsRequireCharacter(t *testing.T) {
	g, _ := newTestGame(t)
	p, _ := g.CreatePlayer("hero@example.com", "secret")

	const want = "You need to select a character first."
	testutil.AssertEqual(t, "look", p.Look(), want)
	testutil.AssertEqual(t, "move", p.Move("north"), want)
	testutil.AssertEqual(t, "say", p.Say("hi"), want)
	testutil.AssertEqual(t, "shout", p.Shout("hi"), want)
	testutil.AssertEqual(t, "inventory", p.ShowInventory(), want)
	testutil.AssertEqual(t, "take", p.TakeItem("sword"), want)
	testutil.AssertEqual(t, "drop", p.DropItem("sword"), want)
}

func TestGameBroadcast(t *testing.T) {
	g, pub := newTestGame(t)

	chars := map[string]*Character{}
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		p, _ := g.CreatePlayer(email, "secret")
		p.CreateCharacter(fmt.Sprintf("Char%d", i))
		p.SelectCharacter(0)
		p.Connect(fmt.Sprintf("conn-%d", i))
		chars[email] = p.Active()
	}

	// One player with no active character, one disconnected.
	idle, _ := g.CreatePlayer("idle@example.com", "secret")
	idle.Connect("conn-idle")
	offline, _ := g.CreatePlayer("offline@example.com", "secret")
	offline.CreateCharacter("Ghost")
	offline.SelectCharacter(0)
	ghost := offline.Active()

	pub.reset()
	g.Broadcast("Char0 shouts: hello", "a@example.com")

	testutil.AssertEqual(t, "sender excluded", len(pub.forCharacter(chars["a@example.com"].Id)), 0)
	testutil.AssertEqual(t, "b heard", len(pub.forCharacter(chars["b@example.com"].Id)), 1)
	testutil.AssertEqual(t, "c heard", len(pub.forCharacter(chars["c@example.com"].Id)), 1)
	testutil.AssertEqual(t, "disconnected skipped", len(pub.forCharacter(ghost.Id)), 0)
}

func TestPlayerShout(t *testing.T) {
	g, pub := newTestGame(t)

	a, _ := g.CreatePlayer("a@example.com", "secret")
	a.CreateCharacter("Alice")
	a.SelectCharacter(0)
	a.Connect("conn-a")

	b, _ := g.CreatePlayer("b@example.com", "secret")
	b.CreateCharacter("Bob")
	b.SelectCharacter(0)
	b.Connect("conn-b")

	pub.reset()
	result := a.Shout("beware")

	testutil.AssertEqual(t, "echo", result, "You shout: beware")
	testutil.AssertEqual(t, "bob heard", pub.forCharacter(b.Active().Id)[0], "Alice shouts: beware")
	testutil.AssertEqual(t, "alice excluded", len(pub.forCharacter(a.Active().Id)), 0)
}

func TestGameLoadsPlayersAndCharacters(t *testing.T) {
	pub := &recordingPublisher{}
	w := newTestWorld(t, pub)

	charStore := newMemStore[*Character]()
	charStore.records["char-1"] = &Character{Id: "char-1", Name: "Alice", Health: 80, MaxHealth: 100, RoomId: "forest"}

	playerStore := newMemStore[*Player]()
	playerStore.records["hero@example.com"] = &Player{
		Email:        "hero@example.com",
		PasswordHash: "x",
		CharacterIds: []string{"char-1", "char-gone"},
	}

	g := NewGame(w, pub, playerStore, charStore, Settings{MaxCarryWeight: 10})

	p := g.Player("hero@example.com")
	if p == nil {
		t.Fatal("expected account loaded")
	}
	// The dangling character id is skipped, not fatal.
	testutil.AssertEqual(t, "characters resolved", len(p.Characters()), 1)
	testutil.AssertEqual(t, "health preserved", p.Characters()[0].Health, 80)
}
