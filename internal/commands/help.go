package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/darkfang/darkfang/internal/game"
)

type helpCommand struct {
	game *game.Game
}

func (c *helpCommand) Name() string        { return "help" }
func (c *helpCommand) Description() string { return "Show available commands" }

func (c *helpCommand) Execute(p *game.Player, args []string) string {
	commands := c.game.Commands()

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("Available commands:\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "  /%s - %s\n", name, commands[name].Description())
	}
	return sb.String()
}
