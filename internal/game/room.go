package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Room is the read-only content definition of a location. The runtime
// counterpart holding occupants and items is RoomInstance.
type Room struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Exits       map[string]string `json:"exits,omitempty"` // direction -> room id
	Items       []string          `json:"items,omitempty"` // template ids seeded at startup
	Automation  []*AutomationRule `json:"automation,omitempty"`
}

// Validate satisfies storage.ValidatingSpec. Exit targets are not
// cross-checked against the room catalog here; a dangling exit surfaces as a
// "room not found" error when someone walks through it.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}
	if r.Description == "" {
		el.Add(fmt.Errorf("room description is required"))
	}

	for dir, target := range r.Exits {
		if target == "" {
			el.Add(fmt.Errorf("exit %s: room id is required", dir))
		}
	}

	for i, rule := range r.Automation {
		if err := rule.Validate(); err != nil {
			el.Add(fmt.Errorf("automation %d: %w", i, err))
		}
	}

	return el.Err()
}
