package commands

import "github.com/darkfang/darkfang/internal/game"

var directions = []string{"north", "south", "east", "west", "up", "down"}

func registerMovement(g *game.Game) {
	g.RegisterCommand(&goCommand{})

	for _, dir := range directions {
		g.RegisterCommand(&directionCommand{name: dir, direction: dir})
		g.RegisterCommand(&directionCommand{name: dir[:1], direction: dir})
	}
}

type goCommand struct{}

func (c *goCommand) Name() string        { return "go" }
func (c *goCommand) Description() string { return "Move in a direction" }

func (c *goCommand) Execute(p *game.Player, args []string) string {
	if len(args) == 0 {
		return "Go where? Use '/go <direction>'."
	}
	return p.Move(args[0])
}

// directionCommand covers the six direction names and their single-letter
// shorthands, each a fixed /go.
type directionCommand struct {
	name      string
	direction string
}

func (c *directionCommand) Name() string        { return c.name }
func (c *directionCommand) Description() string { return "Move " + c.direction }

func (c *directionCommand) Execute(p *game.Player, args []string) string {
	return p.Move(c.direction)
}
