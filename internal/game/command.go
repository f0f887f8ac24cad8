package game

// Command is one slash command. Execute returns the text shown to the
// invoking player; user mistakes (bad arguments, missing targets) come back
// as that text, never as Go errors.
type Command interface {
	Name() string
	Description() string
	Execute(p *Player, args []string) string
}
