package commands

import "github.com/darkfang/darkfang/internal/game"

type lookCommand struct{}

func (c *lookCommand) Name() string        { return "look" }
func (c *lookCommand) Description() string { return "Look around the current room" }

func (c *lookCommand) Execute(p *game.Player, args []string) string {
	return p.Look()
}
