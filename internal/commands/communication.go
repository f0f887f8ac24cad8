package commands

import (
	"strings"

	"github.com/darkfang/darkfang/internal/game"
)

type sayCommand struct{}

func (c *sayCommand) Name() string        { return "say" }
func (c *sayCommand) Description() string { return "Say something to everyone in the room" }

func (c *sayCommand) Execute(p *game.Player, args []string) string {
	return p.Say(strings.Join(args, " "))
}

type shoutCommand struct{}

func (c *shoutCommand) Name() string        { return "shout" }
func (c *shoutCommand) Description() string { return "Shout something to everyone in the game" }

func (c *shoutCommand) Execute(p *game.Player, args []string) string {
	return p.Shout(strings.Join(args, " "))
}
