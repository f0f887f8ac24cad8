// Package commands holds the slash command implementations and registers
// them with the game's dispatch table.
package commands

import "github.com/darkfang/darkfang/internal/game"

// RegisterAll wires every command into the game.
func RegisterAll(g *game.Game) {
	g.RegisterCommand(&lookCommand{})
	registerMovement(g)
	g.RegisterCommand(&sayCommand{})
	g.RegisterCommand(&shoutCommand{})
	g.RegisterCommand(&createCommand{})
	g.RegisterCommand(&selectCommand{})
	g.RegisterCommand(&logoutCommand{})
	g.RegisterCommand(&inventoryCommand{name: "inventory"})
	g.RegisterCommand(&inventoryCommand{name: "i"})
	g.RegisterCommand(&takeCommand{})
	g.RegisterCommand(&dropCommand{})
	g.RegisterCommand(&helpCommand{game: g})
}
