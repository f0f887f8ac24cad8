package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string           `json:"tick_interval"`
	Listeners    []ListenerConfig `json:"listeners"`
	Web          WebConfig        `json:"web"`
	Nats         NatsConfig       `json:"nats"`
	Storage      StorageConfig    `json:"storage"`
	Game         GameConfig       `json:"game"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
		}
	}

	for i, l := range c.Listeners {
		if err := l.Validate(); err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Web.Validate())
	el.Add(c.Nats.Validate())
	el.Add(c.Storage.Validate())
	el.Add(c.Game.Validate())

	return el.Err()
}

type GameConfig struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	StartRoom      string `json:"start_room"`
	MaxCarryWeight int    `json:"max_carry_weight"`
	Banner         string `json:"banner"`
}

func (c *GameConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Title == "" {
		el.Add(fmt.Errorf("game title is required"))
	}
	if c.MaxCarryWeight < 0 {
		el.Add(fmt.Errorf("max_carry_weight cannot be negative"))
	}

	return el.Err()
}
