package commands

import (
	"strings"

	"github.com/darkfang/darkfang/internal/game"
)

// inventoryCommand is registered twice, as /inventory and the /i shorthand.
type inventoryCommand struct {
	name string
}

func (c *inventoryCommand) Name() string        { return c.name }
func (c *inventoryCommand) Description() string { return "View your inventory" }

func (c *inventoryCommand) Execute(p *game.Player, args []string) string {
	return p.ShowInventory()
}

type takeCommand struct{}

func (c *takeCommand) Name() string        { return "take" }
func (c *takeCommand) Description() string { return "Take an item" }

func (c *takeCommand) Execute(p *game.Player, args []string) string {
	return p.TakeItem(strings.Join(args, " "))
}

type dropCommand struct{}

func (c *dropCommand) Name() string        { return "drop" }
func (c *dropCommand) Description() string { return "Drop an item" }

func (c *dropCommand) Execute(p *game.Player, args []string) string {
	return p.DropItem(strings.Join(args, " "))
}
