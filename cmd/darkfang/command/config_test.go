package command

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestListenerTypeUnmarshalText(t *testing.T) {
	tests := map[string]struct {
		text   string
		exp    ListenerType
		expErr bool
	}{
		"telnet":  {text: "telnet", exp: ListenerTypeTelnet},
		"ssh":     {text: "ssh", exp: ListenerTypeSSH},
		"unknown": {text: "gopher", expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var lt ListenerType
			err := lt.UnmarshalText([]byte(tt.text))
			if tt.expErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "type", lt, tt.exp)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()

	cfg := Config{
		TickInterval: "2s",
		Listeners: []ListenerConfig{
			{Protocol: ListenerTypeTelnet, Port: 4000},
		},
		Web: WebConfig{Addr: ":8080"},
		Game: GameConfig{Title: "Darkfang", MaxCarryWeight: 10},
	}
	cfg.Storage.Players.Path = dir
	cfg.Storage.Characters.Path = dir
	cfg.Storage.Rooms.Path = dir
	cfg.Storage.Items.Path = dir

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := cfg
	bad.TickInterval = "50ms"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for sub-second tick interval")
	}

	bad = cfg
	bad.Game.Title = ""
	if err := bad.Validate(); err == nil {
		t.Error("expected error for missing title")
	}

	bad = cfg
	bad.Web.Addr = "no-port"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for malformed web addr")
	}

	bad = cfg
	bad.Listeners = []ListenerConfig{{Protocol: ListenerTypeTelnet}}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for listener without port")
	}

	bad = cfg
	bad.Storage.Rooms.Path = ""
	if err := bad.Validate(); err == nil {
		t.Error("expected error for missing storage path")
	}
}
