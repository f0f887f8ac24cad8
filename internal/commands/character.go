package commands

import (
	"strconv"
	"strings"

	"github.com/darkfang/darkfang/internal/game"
)

type createCommand struct{}

func (c *createCommand) Name() string        { return "create" }
func (c *createCommand) Description() string { return "Create a new character" }

func (c *createCommand) Execute(p *game.Player, args []string) string {
	return p.CreateCharacter(strings.Join(args, " "))
}

type selectCommand struct{}

func (c *selectCommand) Name() string        { return "select" }
func (c *selectCommand) Description() string { return "Select a character" }

func (c *selectCommand) Execute(p *game.Player, args []string) string {
	// Anything non-numeric falls through as index -1, which SelectCharacter
	// rejects with the usage message.
	number := 0
	if len(args) > 0 {
		number, _ = strconv.Atoi(args[0])
	}
	return p.SelectCharacter(number - 1)
}

type logoutCommand struct{}

func (c *logoutCommand) Name() string        { return "logout" }
func (c *logoutCommand) Description() string { return "Return to character selection" }

func (c *logoutCommand) Execute(p *game.Player, args []string) string {
	return p.Logout()
}
